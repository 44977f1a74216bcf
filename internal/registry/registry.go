// Package registry implements the derived-data core of the membership
// system: reference-label resolution, member relationship assembly, global
// statistics and the time-windowed birthday/calendar views. All computations
// read the record store fresh on every call; nothing is cached.
package registry

import (
	"strings"
	"time"

	"github.com/KIFUA/Church-Buses/internal/store"
)

// Registry computes derived views over the record store.
type Registry struct {
	store    store.Store
	resolver *Resolver
	now      func() time.Time
}

func New(s store.Store) *Registry {
	return &Registry{store: s, resolver: NewResolver(s), now: time.Now}
}

// Caller-facing date fields are ISO strings originating from the legacy
// import (naive datetimes) or from API input (plain dates). Calendar
// correctness is never validated; anything unparseable is skipped by the
// views that need a real date.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05.999999",
	"2006-01-02",
}

func parseDate(raw string) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	s = strings.TrimSuffix(s, "Z")
	for _, layout := range dateLayouts[1:] {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// MonthRange returns the [first, next) ISO date bounds of a month, used for
// string-ordered range filters on event dates.
func MonthRange(year, month int) (start, end string) {
	start = formatMonthStart(year, month)
	if month == 12 {
		end = formatMonthStart(year+1, 1)
	} else {
		end = formatMonthStart(year, month+1)
	}
	return start, end
}

func formatMonthStart(year, month int) string {
	return time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC).Format("2006-01-02")
}
