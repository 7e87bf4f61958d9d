// Command imdblists merges the IMDb plain-text genre, keyword, rating and
// plot lists into one record per movie, filters them and writes the result
// as SQL dumps or JSON.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
)

var (
	version    string
	buildstamp string
	githash    string
)

func main() {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
