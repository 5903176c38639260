package model

import "time"

// Activity classifies one feed event.
type Activity string

const (
	ActivityCommit      Activity = "commit"
	ActivityIssue       Activity = "issue"
	ActivityPullRequest Activity = "pull_request"
	ActivityFork        Activity = "fork"
	ActivityRelease     Activity = "release"
	ActivityUnknown     Activity = "unknown"
)

// ParseActivity maps a raw feed value to an Activity.
// Unrecognized values degrade to ActivityUnknown, never an error.
func ParseActivity(s string) Activity {
	switch Activity(s) {
	case ActivityCommit, ActivityIssue, ActivityPullRequest, ActivityFork, ActivityRelease:
		return Activity(s)
	default:
		return ActivityUnknown
	}
}

// activityIcons is the static activity-to-marker mapping.
// ActivityUnknown is deliberately absent so it maps to the neutral marker.
var activityIcons = map[Activity]string{
	ActivityCommit:      "●",
	ActivityIssue:       "◉",
	ActivityPullRequest: "⇄",
	ActivityFork:        "⑂",
	ActivityRelease:     "✦",
}

// Icon returns the display marker for the activity, or an empty
// neutral marker for unrecognized activities.
func (a Activity) Icon() string {
	return activityIcons[a]
}

// LogRecord is one parsed activity event. Records are constructed fresh on
// every parse pass and are immutable after construction.
type LogRecord struct {
	Date        time.Time `json:"date"`      // calendar date, midnight in the feed's timezone
	Time        time.Time `json:"time"`      // full local timestamp (date + time of day)
	Activity    Activity  `json:"activity"`
	Repository  string    `json:"repository"`
	Description string    `json:"description"`
}

// DateKey returns the record's calendar date in YYYY-MM-DD form,
// the exact-equality key used for grouping.
func (r LogRecord) DateKey() string {
	return r.Date.Format("2006-01-02")
}
