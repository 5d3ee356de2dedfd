// Package prayer holds the prayer-time engine: expanding a day's raw
// timestamps into the seven named events, and deciding which prayer is
// next relative to wall-clock time.
package prayer

import (
	"errors"
	"fmt"
	"time"

	"github.com/solatku/solatku/internal/api"
)

// Canonical event names, in chronological order.
const (
	Imsak   = "Imsak"
	Fajr    = "Fajr"
	Syuruk  = "Syuruk"
	Dhuhr   = "Dhuhr"
	Asr     = "Asr"
	Maghrib = "Maghrib"
	Isha    = "Isha"
)

// EventNames lists the seven daily events in canonical order.
var EventNames = []string{Imsak, Fajr, Syuruk, Dhuhr, Asr, Maghrib, Isha}

// MalayNames maps canonical event names to their Malay display names.
var MalayNames = map[string]string{
	Imsak:   "Imsak",
	Fajr:    "Subuh",
	Syuruk:  "Syuruk",
	Dhuhr:   "Zohor",
	Asr:     "Asar",
	Maghrib: "Maghrib",
	Isha:    "Isyak",
}

// informational marks events that are time markers, not prayer deadlines.
// They are shown in schedules but never returned as "the next prayer".
var informational = map[string]bool{
	Imsak:  true,
	Syuruk: true,
}

// Informational reports whether name is a marker rather than a prayer.
func Informational(name string) bool {
	return informational[name]
}

// Event is a single named event on a concrete calendar day.
type Event struct {
	Name string
	Time time.Time
}

var (
	// ErrDataUnavailable means no record exists for the requested day
	// (including the tomorrow-rollover case at a month boundary).
	ErrDataUnavailable = errors.New("prayer data unavailable")
	// ErrInvalidTime means a raw timestamp cannot represent a valid instant.
	ErrInvalidTime = errors.New("invalid prayer time")
)

// ErrMonthBoundary marks the rollover case where tomorrow falls outside
// the schedule's month. It wraps ErrDataUnavailable so existing checks
// still match; only callers able to fetch the following month should
// key on it.
var ErrMonthBoundary = fmt.Errorf("next day crosses month boundary: %w", ErrDataUnavailable)

// imsakOffset is how long before Fajr the Imsak marker falls.
const imsakOffset = 10 * time.Minute

// RecordForDay finds the record matching a day-of-month inside a monthly
// schedule. The schedule is assumed to cover the right year and month;
// only the day number is matched.
func RecordForDay(s *api.MonthlySchedule, day int) (api.DayRecord, error) {
	for _, rec := range s.Days {
		if rec.Day == day {
			return rec, nil
		}
	}
	return api.DayRecord{}, fmt.Errorf("no record for day %d in %s %s: %w",
		day, s.Zone, s.Month, ErrDataUnavailable)
}

// anchorClock converts an epoch timestamp to a wall-clock time re-anchored
// onto ref's calendar date. Only the time-of-day component of the epoch is
// trusted: the data source encodes the zone's local prayer time, but its
// date/timezone metadata is not reliable, so the date always comes from ref.
func anchorClock(epoch int64, ref time.Time) time.Time {
	clock := time.Unix(epoch, 0).In(ref.Location())
	return time.Date(ref.Year(), ref.Month(), ref.Day(),
		clock.Hour(), clock.Minute(), clock.Second(), 0, ref.Location())
}

// ExpandDay expands one day's raw record into the seven named events,
// re-anchored onto ref's calendar date, in canonical order. Imsak is
// derived as Fajr minus ten minutes. The expansion is all-or-nothing: a
// non-positive timestamp fails with ErrInvalidTime rather than producing a
// partial list.
func ExpandDay(rec api.DayRecord, ref time.Time) ([]Event, error) {
	raw := []struct {
		name  string
		epoch int64
	}{
		{Fajr, rec.Fajr},
		{Syuruk, rec.Syuruk},
		{Dhuhr, rec.Dhuhr},
		{Asr, rec.Asr},
		{Maghrib, rec.Maghrib},
		{Isha, rec.Isha},
	}

	events := make([]Event, 0, len(raw)+1)
	for _, r := range raw {
		if r.epoch <= 0 {
			return nil, fmt.Errorf("day %d: %s timestamp %d: %w", rec.Day, r.name, r.epoch, ErrInvalidTime)
		}
		events = append(events, Event{Name: r.name, Time: anchorClock(r.epoch, ref)})
	}

	// Imsak rides on the anchored Fajr so the two always share a
	// reference day, even for a Fajr in the first minutes after midnight.
	imsak := Event{Name: Imsak, Time: events[0].Time.Add(-imsakOffset)}
	return append([]Event{imsak}, events...), nil
}
