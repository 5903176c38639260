package formatter

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/devfeed/devfeed/internal/core/model"
)

// TableFormatter prints per-date activity counts as a bordered table.
type TableFormatter struct {
	headers []string
	out     io.Writer
}

func NewTableFormatter() *TableFormatter {
	return NewTableFormatterWriter(os.Stdout)
}

// NewTableFormatterWriter creates a TableFormatter with an explicit
// writer, used by tests.
func NewTableFormatterWriter(out io.Writer) *TableFormatter {
	return &TableFormatter{
		headers: []string{
			"Date", "Commits", "Issues", "Pull Requests", "Forks", "Releases", "Other", "Total",
		},
		out: out,
	}
}

func (f *TableFormatter) Format(snapshot model.LogSnapshot) error {
	rows := make([][]string, 0, len(snapshot.Groups))
	totals := make(map[model.Activity]int)
	grandTotal := 0

	for _, group := range snapshot.Groups {
		counts := make(map[model.Activity]int)
		for _, record := range group.Records {
			counts[record.Activity]++
			totals[record.Activity]++
		}
		grandTotal += len(group.Records)
		rows = append(rows, f.countRow(group.DateKey(), counts, len(group.Records)))
	}

	widths := f.columnWidths(rows)

	f.printBorder(widths)
	f.printRow(f.headers, widths)
	f.printBorder(widths)
	for _, row := range rows {
		f.printRow(row, widths)
	}
	f.printBorder(widths)
	f.printRow(f.countRow("Total", totals, grandTotal), widths)
	f.printBorder(widths)

	return nil
}

func (f *TableFormatter) countRow(label string, counts map[model.Activity]int, total int) []string {
	return []string{
		label,
		fmt.Sprintf("%d", counts[model.ActivityCommit]),
		fmt.Sprintf("%d", counts[model.ActivityIssue]),
		fmt.Sprintf("%d", counts[model.ActivityPullRequest]),
		fmt.Sprintf("%d", counts[model.ActivityFork]),
		fmt.Sprintf("%d", counts[model.ActivityRelease]),
		fmt.Sprintf("%d", counts[model.ActivityUnknown]),
		fmt.Sprintf("%d", total),
	}
}

func (f *TableFormatter) columnWidths(rows [][]string) []int {
	widths := make([]int, len(f.headers))
	for i, h := range f.headers {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if w := runewidth.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}
	return widths
}

func (f *TableFormatter) printBorder(widths []int) {
	parts := make([]string, len(widths))
	for i, w := range widths {
		parts[i] = strings.Repeat("-", w+2)
	}
	fmt.Fprintf(f.out, "+%s+\n", strings.Join(parts, "+"))
}

func (f *TableFormatter) printRow(cells []string, widths []int) {
	parts := make([]string, len(cells))
	for i, cell := range cells {
		parts[i] = " " + runewidth.FillRight(cell, widths[i]) + " "
	}
	fmt.Fprintf(f.out, "|%s|\n", strings.Join(parts, "|"))
}
