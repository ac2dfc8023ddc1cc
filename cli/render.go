package cli

import (
	"fmt"
	"io"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"apiprobe/toolkit"
)

// renderSummary prints the run summary and, when anything failed, a detail
// table of the failed tests.
func renderSummary(w io.Writer, rep toolkit.Report) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Test Summary Report")

	summary := table.NewWriter()
	summary.SetOutputMirror(w)
	summary.AppendHeader(table.Row{"Metric", "Value"})
	summary.AppendRows([]table.Row{
		{"Total Tests", rep.Summary.Total},
		{"Passed", rep.Summary.Passed},
		{"Failed", rep.Summary.Failed},
		{"Pass Rate", fmt.Sprintf("%.1f%%", rep.Summary.PassRate)},
	})
	summary.SetStyle(table.StyleLight)
	summary.Render()

	if len(rep.Categories) > 0 {
		cats := table.NewWriter()
		cats.SetOutputMirror(w)
		cats.AppendHeader(table.Row{"Category", "Cases"})
		for _, cat := range sortedKeys(rep.Categories) {
			cats.AppendRow(table.Row{cat, rep.Categories[cat]})
		}
		cats.SetStyle(table.StyleLight)
		cats.Render()
	}

	if rep.Summary.Failed == 0 {
		return
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Failed Tests Details")
	failed := table.NewWriter()
	failed.SetOutputMirror(w)
	failed.AppendHeader(table.Row{"Test", "Details"})
	failed.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, WidthMax: 80},
	})
	for _, outcome := range rep.Tests {
		if !outcome.Passed() {
			failed.AppendRow(table.Row{text.FgRed.Sprint(outcome.Test), outcome.Details})
		}
	}
	failed.SetStyle(table.StyleLight)
	failed.Render()
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
