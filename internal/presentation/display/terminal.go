package display

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"

	"github.com/devfeed/devfeed/internal/core/model"
	"github.com/devfeed/devfeed/internal/util"
)

const (
	iconColumnWidth = 2
	maxRepoWidth    = 28
	fallbackWidth   = 80
)

// DisplayConfig carries presentation settings
type DisplayConfig struct {
	TimeFormat string // "12h" or "24h"
}

// TerminalDisplay renders date groups to a terminal. It is purely
// presentational: it performs no filtering, grouping, or ordering.
type TerminalDisplay struct {
	config *DisplayConfig
	out    io.Writer
	width  int
}

// NewTerminalDisplay creates a display writing to stdout, sized to the
// current terminal width.
func NewTerminalDisplay(config *DisplayConfig) *TerminalDisplay {
	width := fallbackWidth
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		width = w
	}

	return &TerminalDisplay{
		config: config,
		out:    os.Stdout,
		width:  width,
	}
}

// NewTerminalDisplayWriter creates a display with an explicit writer
// and width, used by tests.
func NewTerminalDisplayWriter(config *DisplayConfig, out io.Writer, width int) *TerminalDisplay {
	return &TerminalDisplay{config: config, out: out, width: width}
}

// RenderBatch renders groups in the given order: a heading per date,
// then one line per record with marker, local time, repository, and
// description.
func (td *TerminalDisplay) RenderBatch(groups []model.DateGroup) {
	tp := util.GetTimeProvider()

	for _, group := range groups {
		heading := tp.FormatDateHeading(group.Date)
		fmt.Fprintf(td.out, "\r\n%s\r\n%s\r\n", heading, strings.Repeat("─", runewidth.StringWidth(heading)))

		repoWidth := td.repoColumnWidth(group)
		for _, record := range group.Records {
			fmt.Fprintf(td.out, "%s\r\n", td.formatRecordLine(record, repoWidth))
		}
	}
}

// RenderProgress shows how much of the snapshot has been revealed.
func (td *TerminalDisplay) RenderProgress(revealed, total int, exhausted bool) {
	if exhausted {
		fmt.Fprintf(td.out, "\r\n-- all %d dates shown · r refresh · q quit --\r\n", total)
		return
	}
	fmt.Fprintf(td.out, "\r\n-- %d/%d dates · space for more · q quit --\r\n", revealed, total)
}

// RenderNotice shows a one-line status message (stale data, errors).
func (td *TerminalDisplay) RenderNotice(msg string) {
	fmt.Fprintf(td.out, "\r\n!! %s\r\n", msg)
}

func (td *TerminalDisplay) repoColumnWidth(group model.DateGroup) int {
	width := 0
	for _, record := range group.Records {
		if w := runewidth.StringWidth(record.Repository); w > width {
			width = w
		}
	}
	if width > maxRepoWidth {
		width = maxRepoWidth
	}
	return width
}

func (td *TerminalDisplay) formatRecordLine(record model.LogRecord, repoWidth int) string {
	tp := util.GetTimeProvider()

	icon := runewidth.FillRight(record.Activity.Icon(), iconColumnWidth)
	timeStr := tp.FormatTimeOfDay(record.Time, td.config.TimeFormat)
	repo := runewidth.FillRight(runewidth.Truncate(record.Repository, maxRepoWidth, "…"), repoWidth)

	line := fmt.Sprintf("  %s%s  %s  %s", icon, timeStr, repo, record.Description)
	return runewidth.Truncate(line, td.width, "…")
}
