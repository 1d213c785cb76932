// Package dutchtime formats timestamps for a Dutch-language publication.
package dutchtime

import (
	"fmt"
	"sync"
	"time"
)

var months = [...]string{
	"januari", "februari", "maart", "april", "mei", "juni",
	"juli", "augustus", "september", "oktober", "november", "december",
}

var locOnce = sync.OnceValue(func() *time.Location {
	loc, err := time.LoadLocation("Europe/Amsterdam")
	if err != nil {
		return time.FixedZone("CET", 1*60*60)
	}
	return loc
})

// Location returns the publication timezone. Falls back to a fixed CET zone
// when the tz database is unavailable.
func Location() *time.Location {
	return locOnce()
}

// Now returns the current time in the publication timezone.
func Now() time.Time {
	return time.Now().In(Location())
}

// ISO renders t as RFC 3339 with second precision, in the publication zone.
func ISO(t time.Time) string {
	return t.In(Location()).Format(time.RFC3339)
}

// Readable renders t as a Dutch human-readable datetime,
// e.g. "2 januari 2026 om 15:04".
func Readable(t time.Time) string {
	t = t.In(Location())
	return fmt.Sprintf("%d %s %d om %02d:%02d",
		t.Day(), months[t.Month()-1], t.Year(), t.Hour(), t.Minute())
}
