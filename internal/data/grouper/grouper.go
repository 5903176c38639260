package grouper

import (
	"sort"

	"github.com/devfeed/devfeed/internal/core/model"
)

// Group buckets records by calendar date and imposes a deterministic
// total order: groups descending by date (most recent first), records
// within a group ascending by local timestamp, ties preserving input
// order. Pure function; safe to call repeatedly with different inputs.
func Group(records []model.LogRecord) model.LogSnapshot {
	byDate := make(map[string]*model.DateGroup)
	keys := make([]string, 0)

	for _, record := range records {
		key := record.DateKey()
		group, ok := byDate[key]
		if !ok {
			group = &model.DateGroup{Date: record.Date}
			byDate[key] = group
			keys = append(keys, key)
		}
		group.Records = append(group.Records, record)
	}

	// YYYY-MM-DD keys compare lexicographically in date order
	sort.Slice(keys, func(i, j int) bool {
		return keys[i] > keys[j]
	})

	snapshot := model.LogSnapshot{Groups: make([]model.DateGroup, 0, len(keys))}
	for _, key := range keys {
		group := byDate[key]
		sort.SliceStable(group.Records, func(i, j int) bool {
			return group.Records[i].Time.Before(group.Records[j].Time)
		})
		snapshot.Groups = append(snapshot.Groups, *group)
	}

	return snapshot
}
