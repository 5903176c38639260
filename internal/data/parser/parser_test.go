package parser

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devfeed/devfeed/internal/core/model"
)

func TestSplitFields(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		expected []string
	}{
		{
			name:     "plain fields",
			line:     "2024-01-02,09:00:00,commit,repoA,tidy up",
			expected: []string{"2024-01-02", "09:00:00", "commit", "repoA", "tidy up"},
		},
		{
			name:     "quoted field with embedded comma",
			line:     `2024-01-02,09:00:00,commit,repoA,"fix, cleanup"`,
			expected: []string{"2024-01-02", "09:00:00", "commit", "repoA", "fix, cleanup"},
		},
		{
			name:     "quoted field with several commas",
			line:     `a,"wrote code, tested it, shipped it",b`,
			expected: []string{"a", "wrote code, tested it, shipped it", "b"},
		},
		{
			name:     "whitespace around fields is trimmed",
			line:     " a , b ,c",
			expected: []string{"a", "b", "c"},
		},
		{
			name:     "only one quote layer is stripped",
			line:     `a,""quoted"",b`,
			expected: []string{"a", `"quoted"`, "b"},
		},
		{
			name:     "empty fields survive",
			line:     "a,,c",
			expected: []string{"a", "", "c"},
		},
		{
			name:     "single field",
			line:     "alone",
			expected: []string{"alone"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, splitFields(tt.line))
		})
	}
}

func TestParseRowsHeaderMapping(t *testing.T) {
	raw := "date,time,activity,repository,description\n" +
		"2024-01-02,09:00:00,commit,repoA,tidy up\n"

	result := ParseRows(raw)

	require.Equal(t, []string{"date", "time", "activity", "repository", "description"}, result.Headers)
	require.Len(t, result.Rows, 1)
	assert.Equal(t, "2024-01-02", result.Rows[0]["date"])
	assert.Equal(t, "09:00:00", result.Rows[0]["time"])
	assert.Equal(t, "commit", result.Rows[0]["activity"])
	assert.Equal(t, "repoA", result.Rows[0]["repository"])
	assert.Equal(t, "tidy up", result.Rows[0]["description"])
}

func TestParseRowsHeaderOrderDefinesIdentity(t *testing.T) {
	// Same data, reordered columns: field identity follows the header
	raw := "repository,date,time,activity,description\n" +
		"repoA,2024-01-02,09:00:00,commit,tidy up\n"

	result := ParseRows(raw)

	require.Len(t, result.Rows, 1)
	assert.Equal(t, "repoA", result.Rows[0]["repository"])
	assert.Equal(t, "2024-01-02", result.Rows[0]["date"])
}

func TestParseRowsMissingTrailingFields(t *testing.T) {
	raw := "date,time,activity,repository,description\n" +
		"2024-01-02,09:00:00,commit\n"

	result := ParseRows(raw)

	require.Len(t, result.Rows, 1)
	assert.Equal(t, "commit", result.Rows[0]["activity"])
	assert.Equal(t, "", result.Rows[0]["repository"])
	assert.Equal(t, "", result.Rows[0]["description"])
}

func TestParseRowsSurplusFieldsIgnored(t *testing.T) {
	raw := "date,time\n" +
		"2024-01-02,09:00:00,extra,more\n"

	result := ParseRows(raw)

	require.Len(t, result.Rows, 1)
	assert.Len(t, result.Rows[0], 2)
}

func TestParseRowsSkipsBlankLines(t *testing.T) {
	raw := "date,time\n\n2024-01-02,09:00:00\n\n"

	result := ParseRows(raw)

	assert.Len(t, result.Rows, 1)
}

func TestRecordsDropsInvalidDateTime(t *testing.T) {
	tests := []struct {
		name  string
		date  string
		time  string
		valid bool
	}{
		{"valid", "2024-01-02", "09:00:00", true},
		{"bad date", "not-a-date", "09:00:00", false},
		{"bad time", "2024-01-02", "25:99:00", false},
		{"empty date", "", "09:00:00", false},
		{"empty time", "2024-01-02", "", false},
		{"date without time component", "2024-01-02", "09:00", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := Result{
				Headers: []string{FieldDate, FieldTime, FieldActivity, FieldRepository, FieldDescription},
				Rows: []Row{{
					FieldDate:     tt.date,
					FieldTime:     tt.time,
					FieldActivity: "commit",
				}},
			}

			records := Records(rows, time.UTC)
			if tt.valid {
				assert.Len(t, records, 1)
			} else {
				assert.Empty(t, records)
			}
		})
	}
}

func TestRecordsOneBadRowNeverAbortsBatch(t *testing.T) {
	raw := "date,time,activity,repository,description\n" +
		"2024-01-02,09:00:00,commit,repoA,ok\n" +
		"garbage line without structure\n" +
		"2024-01-03,10:00:00,issue,repoB,also ok\n"

	records := ParseFeed(raw, time.UTC)

	require.Len(t, records, 2)
	assert.Equal(t, "repoA", records[0].Repository)
	assert.Equal(t, "repoB", records[1].Repository)
}

func TestParseFeedQuotedCommaRoundTrip(t *testing.T) {
	raw := "date,time,activity,repository,description\n" +
		`2024-01-02,09:00:00,commit,repoA,"fixed bug, added tests"` + "\n"

	records := ParseFeed(raw, time.UTC)

	require.Len(t, records, 1)
	assert.Equal(t, "fixed bug, added tests", records[0].Description)
}

func TestParseFeedTypedFields(t *testing.T) {
	raw := "date,time,activity,repository,description\n" +
		"2024-01-02,09:30:15,pull_request,repoA,review\n" +
		"2024-01-02,09:30:15,starred,repoB,whatever\n"

	records := ParseFeed(raw, time.UTC)
	require.Len(t, records, 2)

	first := records[0]
	assert.Equal(t, model.ActivityPullRequest, first.Activity)
	assert.Equal(t, "2024-01-02", first.DateKey())
	assert.Equal(t, time.Date(2024, 1, 2, 9, 30, 15, 0, time.UTC), first.Time)

	// Unrecognized activity degrades to unknown, not an error
	assert.Equal(t, model.ActivityUnknown, records[1].Activity)
}

func TestParseFeedLocalWallClock(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Shanghai")
	require.NoError(t, err)

	raw := "date,time,activity,repository,description\n" +
		"2024-01-02,09:00:00,commit,repoA,morning\n"

	records := ParseFeed(raw, loc)

	require.Len(t, records, 1)
	assert.Equal(t, time.Date(2024, 1, 2, 9, 0, 0, 0, loc), records[0].Time)
}

func TestParseFeedEmptyInput(t *testing.T) {
	assert.Empty(t, ParseFeed("", time.UTC))
	assert.Empty(t, ParseFeed("date,time,activity,repository,description\n", time.UTC))
}
