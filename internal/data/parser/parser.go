package parser

import (
	"fmt"
	"strings"
	"time"

	"github.com/devfeed/devfeed/internal/core/model"
	"github.com/devfeed/devfeed/internal/util"
)

// Feed header fields recognized when interpreting rows as records.
const (
	FieldDate        = "date"
	FieldTime        = "time"
	FieldActivity    = "activity"
	FieldRepository  = "repository"
	FieldDescription = "description"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04:05"
)

// Row maps header names to field values for one data row.
type Row map[string]string

// Result is the outcome of splitting raw feed text into rows.
type Result struct {
	Headers []string
	Rows    []Row
}

// ParseRows splits raw feed text into header-keyed rows. The first
// non-empty line is the header; header order defines field identity for
// this pass. Malformed rows never abort the parse: a row with fewer
// fields than headers yields empty strings for the missing trailing
// fields, and surplus fields beyond the header count are ignored.
func ParseRows(raw string) Result {
	lines := strings.Split(raw, "\n")

	var result Result
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}

		fields := splitFields(line)
		if result.Headers == nil {
			result.Headers = fields
			continue
		}

		row := make(Row, len(result.Headers))
		for i, name := range result.Headers {
			if i < len(fields) {
				row[name] = fields[i]
			} else {
				row[name] = ""
			}
		}
		result.Rows = append(result.Rows, row)
	}

	return result
}

// splitFields splits one line on commas that lie outside any
// double-quoted span, then trims each field and strips one layer of
// wrapping quotes. No escaped-quote unescaping is performed.
func splitFields(line string) []string {
	var fields []string
	var buf strings.Builder
	inQuotes := false

	for _, r := range line {
		switch {
		case r == '"':
			inQuotes = !inQuotes
			buf.WriteRune(r)
		case r == ',' && !inQuotes:
			fields = append(fields, unquote(buf.String()))
			buf.Reset()
		default:
			buf.WriteRune(r)
		}
	}
	fields = append(fields, unquote(buf.String()))

	return fields
}

// unquote trims surrounding whitespace and strips a single matching
// pair of wrapping double quotes.
func unquote(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) {
		s = s[1 : len(s)-1]
	}
	return s
}

// Records interprets parsed rows as typed log records in the given
// timezone. A row whose date or time fails to parse is dropped; one bad
// row never aborts the batch.
func Records(res Result, loc *time.Location) []model.LogRecord {
	records := make([]model.LogRecord, 0, len(res.Rows))

	for i, row := range res.Rows {
		record, err := interpretRow(row, loc)
		if err != nil {
			util.LogDebug(fmt.Sprintf("Dropping invalid row %d: %v", i+1, err))
			continue
		}
		records = append(records, record)
	}

	return records
}

func interpretRow(row Row, loc *time.Location) (model.LogRecord, error) {
	date, err := time.ParseInLocation(dateLayout, row[FieldDate], loc)
	if err != nil {
		return model.LogRecord{}, fmt.Errorf("unparsable date %q: %w", row[FieldDate], err)
	}

	tod, err := time.ParseInLocation(timeLayout, row[FieldTime], loc)
	if err != nil {
		return model.LogRecord{}, fmt.Errorf("unparsable time %q: %w", row[FieldTime], err)
	}

	timestamp := time.Date(date.Year(), date.Month(), date.Day(),
		tod.Hour(), tod.Minute(), tod.Second(), 0, loc)

	return model.LogRecord{
		Date:        date,
		Time:        timestamp,
		Activity:    model.ParseActivity(row[FieldActivity]),
		Repository:  row[FieldRepository],
		Description: row[FieldDescription],
	}, nil
}

// ParseFeed runs the full parse pass: raw text to valid typed records.
func ParseFeed(raw string, loc *time.Location) []model.LogRecord {
	result := ParseRows(raw)
	records := Records(result, loc)

	if dropped := len(result.Rows) - len(records); dropped > 0 {
		util.LogDebug(fmt.Sprintf("Parsed %d rows, dropped %d invalid", len(result.Rows), dropped))
	}

	return records
}
