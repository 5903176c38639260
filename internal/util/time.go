package util

import (
	"fmt"
	"sync"
	"time"
)

// TimeProvider is a global time utility that handles timezone-aware time operations
type TimeProvider struct {
	location *time.Location
	mu       sync.RWMutex
}

var (
	globalTimeProvider *TimeProvider
	timeProviderMu     sync.Mutex
)

// InitializeTimeProvider initializes the global time provider with the specified timezone
func InitializeTimeProvider(timezone string) error {
	timeProviderMu.Lock()
	defer timeProviderMu.Unlock()

	provider := &TimeProvider{}
	if err := provider.SetTimezone(timezone); err != nil {
		return err
	}

	globalTimeProvider = provider
	return nil
}

// GetTimeProvider returns the global time provider instance.
// If not initialized, it defaults to Local timezone.
func GetTimeProvider() *TimeProvider {
	timeProviderMu.Lock()
	defer timeProviderMu.Unlock()

	if globalTimeProvider == nil {
		globalTimeProvider = &TimeProvider{location: time.Local}
	}
	return globalTimeProvider
}

// SetTimezone updates the timezone for the time provider
func (tp *TimeProvider) SetTimezone(timezone string) error {
	tp.mu.Lock()
	defer tp.mu.Unlock()

	loc := time.Local
	if timezone != "" && timezone != "Local" {
		l, err := time.LoadLocation(timezone)
		if err != nil {
			return fmt.Errorf("invalid timezone '%s': %w\nValid examples: Local, UTC, America/New_York, Asia/Shanghai, Europe/London", timezone, err)
		}
		loc = l
	}

	tp.location = loc
	return nil
}

// Location returns the configured timezone location
func (tp *TimeProvider) Location() *time.Location {
	tp.mu.RLock()
	defer tp.mu.RUnlock()
	return tp.location
}

// Now returns the current time in the configured timezone
func (tp *TimeProvider) Now() time.Time {
	return time.Now().In(tp.Location())
}

// FormatTimeOfDay formats a timestamp's time component per the configured style
func (tp *TimeProvider) FormatTimeOfDay(t time.Time, timeFormat string) string {
	t = t.In(tp.Location())
	if timeFormat == "12h" {
		return t.Format("03:04:05 PM")
	}
	return t.Format("15:04:05")
}

// FormatDateHeading formats a calendar date for display headings
func (tp *TimeProvider) FormatDateHeading(t time.Time) string {
	return t.In(tp.Location()).Format("Mon, Jan 2 2006")
}
