package kernel

import (
	"fmt"
	"strings"
	"time"

	"fitcourse/internal/pkg/errs"
)

// DefaultZoneID is used whenever a participant has no usable timezone.
const DefaultZoneID = "Europe/Moscow"

// Zone is a resolved IANA timezone. It is resolved once per scheduling
// decision and passed around by value.
type Zone struct {
	id  string
	loc *time.Location
}

// ResolveZone loads zoneID and falls back to DefaultZoneID when the
// identifier is empty or unknown. The returned zone is always usable; a
// non-nil error wraps errs.ErrInvalidTimezone and is meant for a warning log.
func ResolveZone(zoneID string) (Zone, error) {
	return ResolveZoneWithDefault(zoneID, DefaultZoneID)
}

// ResolveZoneWithDefault is ResolveZone with a configurable fallback. An
// unusable fallback degrades to UTC.
func ResolveZoneWithDefault(zoneID, fallbackID string) (Zone, error) {
	trimmed := strings.TrimSpace(zoneID)
	if trimmed == "" {
		return fallbackZone(fallbackID), errs.NewInvalidTimezoneError(zoneID, nil)
	}

	loc, err := time.LoadLocation(trimmed)
	if err != nil {
		return fallbackZone(fallbackID), errs.NewInvalidTimezoneError(trimmed, err)
	}
	return Zone{id: trimmed, loc: loc}, nil
}

// MustZone resolves a known-good identifier, panicking otherwise.
func MustZone(zoneID string) Zone {
	loc, err := time.LoadLocation(zoneID)
	if err != nil {
		panic(err)
	}
	return Zone{id: zoneID, loc: loc}
}

func fallbackZone(fallbackID string) Zone {
	if loc, err := time.LoadLocation(fallbackID); err == nil {
		return Zone{id: fallbackID, loc: loc}
	}
	return Zone{id: "UTC", loc: time.UTC}
}

func (z Zone) ID() string {
	if z.loc == nil {
		return "UTC"
	}
	return z.id
}

func (z Zone) Location() *time.Location {
	if z.loc == nil {
		return time.UTC
	}
	return z.loc
}

// In converts an instant to wall-clock time in the zone.
func (z Zone) In(t time.Time) time.Time {
	return t.In(z.Location())
}

// Now returns the clock's current time in the zone.
func (z Zone) Now(clock Clock) time.Time {
	return z.In(clock.Now())
}

// NextOccurrence returns the absolute instant of hour:minute local time,
// daysAhead days after the local date of now. time.Date normalizes wall
// times that fall into a DST gap, so the result is always a real instant.
func (z Zone) NextOccurrence(now time.Time, hour, minute, daysAhead int) time.Time {
	local := z.In(now)
	y, m, d := local.Date()
	return time.Date(y, m, d+daysAhead, hour, minute, 0, 0, z.Location())
}

// CronSpec returns a standard five-field spec firing daily at hour:minute in
// the zone.
func (z Zone) CronSpec(hour, minute int) string {
	return fmt.Sprintf("CRON_TZ=%s %d %d * * *", z.ID(), minute, hour)
}
