package formatter

import (
	"encoding/csv"
	"io"
	"os"

	"github.com/devfeed/devfeed/internal/core/model"
)

// CSVFormatter emits flat records in feed order: groups most recent
// date first, records within a date ascending by time.
type CSVFormatter struct {
	out io.Writer
}

func NewCSVFormatter() *CSVFormatter {
	return &CSVFormatter{out: os.Stdout}
}

// NewCSVFormatterWriter creates a CSVFormatter with an explicit writer,
// used by tests.
func NewCSVFormatterWriter(out io.Writer) *CSVFormatter {
	return &CSVFormatter{out: out}
}

func (f *CSVFormatter) Format(snapshot model.LogSnapshot) error {
	w := csv.NewWriter(f.out)

	if err := w.Write([]string{"date", "time", "activity", "repository", "description"}); err != nil {
		return err
	}

	for _, group := range snapshot.Groups {
		for _, record := range group.Records {
			row := []string{
				record.DateKey(),
				record.Time.Format("15:04:05"),
				string(record.Activity),
				record.Repository,
				record.Description,
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}

	w.Flush()
	return w.Error()
}
