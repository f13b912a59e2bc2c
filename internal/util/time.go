package util

import (
	"fmt"
	"sync"
	"time"

	"github.com/penwyp/psvr-exporter/internal/core/constants"
)

// fallbackEasternOffset is EST, used when no tz database is available.
const fallbackEasternOffset = -5 * time.Hour

// TimeProvider describes the zone the poker client writes wall-clock times
// in, and how those times relate to US Eastern time.
type TimeProvider struct {
	location     *time.Location
	abbreviation string

	etOnce   sync.Once
	etOffset time.Duration

	mu sync.RWMutex
}

var (
	globalTimeProvider *TimeProvider
	mu                 sync.Mutex
)

// NewTimeProvider creates a provider for the given zone name ("" or "Local"
// for the system zone). An empty abbreviation means the zone's own name is
// printed, e.g. CET or CEST.
func NewTimeProvider(timezone, abbreviation string) (*TimeProvider, error) {
	tp := &TimeProvider{abbreviation: abbreviation}
	if err := tp.SetTimezone(timezone); err != nil {
		return nil, err
	}
	return tp, nil
}

// NewFixedTimeProvider creates a provider with a pinned ET offset. Used
// where the offset must not depend on the current date.
func NewFixedTimeProvider(loc *time.Location, abbreviation string, etOffset time.Duration) *TimeProvider {
	tp := &TimeProvider{
		location:     loc,
		abbreviation: abbreviation,
		etOffset:     etOffset,
	}
	tp.etOnce.Do(func() {})
	return tp
}

// InitializeTimeProvider initializes the global time provider
func InitializeTimeProvider(timezone, abbreviation string) error {
	mu.Lock()
	defer mu.Unlock()

	provider, err := NewTimeProvider(timezone, abbreviation)
	if err != nil {
		return err
	}

	globalTimeProvider = provider
	return nil
}

// GetTimeProvider returns the global time provider instance
// If not initialized, it defaults to Local timezone
func GetTimeProvider() *TimeProvider {
	mu.Lock()
	defer mu.Unlock()
	if globalTimeProvider == nil {
		globalTimeProvider, _ = NewTimeProvider("Local", "")
	}
	return globalTimeProvider
}

// SetTimezone updates the source timezone
func (tp *TimeProvider) SetTimezone(timezone string) error {
	tp.mu.Lock()
	defer tp.mu.Unlock()

	loc := time.Local
	if timezone != "" && timezone != "Local" {
		l, err := time.LoadLocation(timezone)
		if err != nil {
			return fmt.Errorf("invalid timezone '%s': %w\nValid examples: Local, UTC, Europe/Amsterdam, America/New_York", timezone, err)
		}
		loc = l
	}
	tp.location = loc
	return nil
}

// Location returns the source timezone
func (tp *TimeProvider) Location() *time.Location {
	tp.mu.RLock()
	defer tp.mu.RUnlock()
	return tp.location
}

// Abbreviation returns the zone label printed after a local hand time.
func (tp *TimeProvider) Abbreviation(t time.Time) string {
	tp.mu.RLock()
	defer tp.mu.RUnlock()
	if tp.abbreviation != "" {
		return tp.abbreviation
	}
	name, _ := t.In(tp.location).Zone()
	return name
}

// EasternOffset returns ET minus the source zone's UTC offset. It is
// computed once per provider, at the time of first use.
func (tp *TimeProvider) EasternOffset() time.Duration {
	tp.etOnce.Do(func() {
		tp.etOffset = easternOffsetAt(time.Now(), tp.Location())
	})
	return tp.etOffset
}

func easternOffsetAt(now time.Time, loc *time.Location) time.Duration {
	_, localOffset := now.In(loc).Zone()

	et, err := time.LoadLocation(constants.EasternZone)
	if err != nil {
		LogWarnf("Eastern timezone unavailable, assuming EST: %v", err)
		return fallbackEasternOffset - time.Duration(localOffset)*time.Second
	}
	_, etOffset := now.In(et).Zone()
	return time.Duration(etOffset-localOffset) * time.Second
}
