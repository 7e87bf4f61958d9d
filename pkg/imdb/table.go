package main

import (
	"strconv"
	"time"

	"github.com/Kellerman81/go_imdb_lists/pkg/main/importer"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

func renderSummary(res *importer.Result) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.SetTitle("Run " + res.RunID)
	tw.AppendHeader(table.Row{"List", "Lines", "Applied", "Excluded", "Malformed", "Time", "Status"})

	for _, s := range res.Sources {
		status := "ok"
		if s.Err != nil {
			status = "failed"
		}
		tw.AppendRow(table.Row{
			s.Name,
			s.Stats.Lines,
			s.Stats.Applied,
			s.Stats.Excluded,
			s.Stats.Malformed,
			s.Elapsed.Round(time.Millisecond).String(),
			status,
		})
	}

	filtered := "-"
	if res.Filtered != nil {
		filtered = strconv.Itoa(res.Filtered.Len())
	}
	tw.AppendFooter(table.Row{"movies", res.Movies.Len(), "filtered", filtered, "", res.Elapsed.Round(time.Millisecond).String(), res.Criteria.String()})

	configs := make([]table.ColumnConfig, 0, 6)
	for i := 2; i <= 6; i++ {
		configs = append(configs, table.ColumnConfig{Number: i, Align: text.AlignRight, AlignHeader: text.AlignLeft})
	}
	tw.SetColumnConfigs(configs)
	return tw.Render()
}
