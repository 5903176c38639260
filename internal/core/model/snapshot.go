package model

import "time"

// DateGroup holds all records sharing one calendar date.
// Records are ordered ascending by local timestamp.
type DateGroup struct {
	Date    time.Time   `json:"date"`
	Records []LogRecord `json:"records"`
}

// DateKey returns the group's calendar date in YYYY-MM-DD form.
func (g DateGroup) DateKey() string {
	return g.Date.Format("2006-01-02")
}

// LogSnapshot is the full result of one parse+group pass. Groups are
// ordered descending by date (most recent first) with unique dates.
type LogSnapshot struct {
	Groups []DateGroup `json:"groups"`
}

// GroupCount returns the number of date groups in the snapshot.
func (s LogSnapshot) GroupCount() int {
	return len(s.Groups)
}

// RecordCount returns the total number of records across all groups.
func (s LogSnapshot) RecordCount() int {
	total := 0
	for _, g := range s.Groups {
		total += len(g.Records)
	}
	return total
}
