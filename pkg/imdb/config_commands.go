package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/Kellerman81/go_imdb_lists/pkg/main/config"
	"github.com/spf13/cobra"
)

func newConfigCommand(configPath *string) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration utilities",
	}
	configCmd.AddCommand(newConfigInitCommand(configPath))
	configCmd.AddCommand(newConfigValidateCommand(configPath))
	return configCmd
}

func newConfigInitCommand(configPath *string) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			target := *configPath
			if !force {
				if _, err := os.Stat(target); err == nil {
					return fmt.Errorf("config file already exists at %s (use --force to replace it)", target)
				} else if !errors.Is(err, fs.ErrNotExist) {
					return fmt.Errorf("check config path: %w", err)
				}
			}
			def := config.Default()
			if err := config.WriteCfg(target, &def); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote default configuration to %s\n", target)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing configuration file")
	return cmd
}

func newConfigValidateCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate the configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Readconfigtoml(*configPath)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			crit, _ := cfg.Criteria()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Config path: %s\n", *configPath)
			fmt.Fprintf(out, "Filter: %s\n", crit)
			fmt.Fprintln(out, "Configuration valid")
			return nil
		},
	}
}
