package app

import (
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/hitoshi/podfeed/internal/model"
)

// renderLintReport は検査結果を1フィード1行の表にする。
func renderLintReport(targets []model.LintTarget) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Feed", "Status", "Items", "Fallbacks", "Error"})

	for _, t := range targets {
		tw.AppendRow(table.Row{
			t.FeedURL,
			lintStatus(t),
			strconv.Itoa(t.LastItemCount),
			strconv.Itoa(t.LastFallbacks),
			t.ErrorMessage,
		})
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 4, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})
	return tw.Render()
}

// lintStatus は表に出す状態名を返す。
func lintStatus(t model.LintTarget) string {
	switch {
	case t.ErrorMessage != "" && t.FetchStatus == model.FetchStatusActive:
		return "retrying"
	case t.LastCheckedAt.IsZero() && t.FetchStatus == model.FetchStatusActive:
		return "pending"
	default:
		return string(t.FetchStatus)
	}
}

func countFailed(targets []model.LintTarget) int {
	n := 0
	for _, t := range targets {
		if t.ErrorMessage != "" {
			n++
		}
	}
	return n
}
