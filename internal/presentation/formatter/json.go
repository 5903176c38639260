package formatter

import (
	"fmt"
	"io"
	"os"

	"github.com/bytedance/sonic"

	"github.com/devfeed/devfeed/internal/core/model"
)

// JSONFormatter emits the snapshot as indented JSON.
type JSONFormatter struct {
	out io.Writer
}

func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{out: os.Stdout}
}

// NewJSONFormatterWriter creates a JSONFormatter with an explicit
// writer, used by tests.
func NewJSONFormatterWriter(out io.Writer) *JSONFormatter {
	return &JSONFormatter{out: out}
}

type jsonRecord struct {
	Date        string `json:"date"`
	Time        string `json:"time"`
	Activity    string `json:"activity"`
	Repository  string `json:"repository"`
	Description string `json:"description"`
}

type jsonGroup struct {
	Date    string       `json:"date"`
	Records []jsonRecord `json:"records"`
}

func (f *JSONFormatter) Format(snapshot model.LogSnapshot) error {
	groups := make([]jsonGroup, 0, len(snapshot.Groups))
	for _, group := range snapshot.Groups {
		jg := jsonGroup{
			Date:    group.DateKey(),
			Records: make([]jsonRecord, 0, len(group.Records)),
		}
		for _, record := range group.Records {
			jg.Records = append(jg.Records, jsonRecord{
				Date:        record.DateKey(),
				Time:        record.Time.Format("15:04:05"),
				Activity:    string(record.Activity),
				Repository:  record.Repository,
				Description: record.Description,
			})
		}
		groups = append(groups, jg)
	}

	data, err := sonic.MarshalIndent(groups, "", "  ")
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(f.out, string(data))
	return err
}
