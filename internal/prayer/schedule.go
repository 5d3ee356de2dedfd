package prayer

import (
	"fmt"
	"time"

	"github.com/solatku/solatku/internal/api"
	"github.com/solatku/solatku/internal/hijri"
)

// Info is the computed next-prayer result. It is built fresh on every
// computation and never mutated afterwards.
type Info struct {
	Name             string
	Time             time.Time
	SecondsRemaining int
	Zone             string
	District         string
	HijriLabel       string
}

// Next decides which prayer is next relative to now, given the monthly
// schedule covering now's month. Imsak and Syuruk never qualify. If all of
// today's actionable prayers have passed, the result is tomorrow's Fajr; a
// tomorrow that falls outside the schedule's month surfaces
// ErrMonthBoundary so the caller can fetch the following month. Any other
// missing record stays a plain ErrDataUnavailable.
//
// Next is a pure function of (now, schedule): it holds no state and is
// safe to re-invoke at any time.
func Next(s *api.MonthlySchedule, now time.Time) (*Info, error) {
	rec, err := RecordForDay(s, now.Day())
	if err != nil {
		return nil, err
	}

	events, err := ExpandDay(rec, now)
	if err != nil {
		return nil, err
	}

	if next := Upcoming(events, now); next != nil {
		return buildInfo(s, rec, *next, now)
	}

	// Everything actionable today has passed: roll over to tomorrow's Fajr.
	tomorrow := now.AddDate(0, 0, 1)
	if tomorrow.Month() != now.Month() {
		return nil, fmt.Errorf("tomorrow (%s) is outside schedule %s %s: %w",
			tomorrow.Format("2006-01-02"), s.Zone, s.Month, ErrMonthBoundary)
	}
	return FajrOn(s, tomorrow, now)
}

// FajrOn returns the Fajr event of the given calendar date with the
// remaining seconds computed against now. It exists for the rollover
// cases: tomorrow within the same month (used by Next) and the first day
// of the following month (used by callers holding next month's schedule).
func FajrOn(s *api.MonthlySchedule, date, now time.Time) (*Info, error) {
	rec, err := RecordForDay(s, date.Day())
	if err != nil {
		return nil, err
	}

	events, err := ExpandDay(rec, date)
	if err != nil {
		return nil, err
	}

	for _, ev := range events {
		if ev.Name == Fajr {
			return buildInfo(s, rec, ev, now)
		}
	}
	// ExpandDay always yields Fajr; reaching here means a bug.
	return nil, fmt.Errorf("no Fajr event for day %d: %w", rec.Day, ErrInvalidTime)
}

// Upcoming picks the earliest event strictly after now that is an
// actionable prayer (not Imsak, not Syuruk). Returns nil if none remain.
func Upcoming(events []Event, now time.Time) *Event {
	var next *Event
	for i := range events {
		ev := &events[i]
		if !ev.Time.After(now) || Informational(ev.Name) {
			continue
		}
		if next == nil || ev.Time.Before(next.Time) {
			next = ev
		}
	}
	return next
}

// buildInfo assembles the Info for a chosen event, attaching the zone code
// and the formatted Hijri label of the event's day.
func buildInfo(s *api.MonthlySchedule, rec api.DayRecord, ev Event, now time.Time) (*Info, error) {
	if ev.Time.IsZero() {
		return nil, fmt.Errorf("%s: %w", ev.Name, ErrInvalidTime)
	}

	label, err := hijri.FormatLabel(rec.Hijri, "-")
	if err != nil {
		return nil, fmt.Errorf("day %d hijri date: %w", rec.Day, err)
	}

	return &Info{
		Name:             ev.Name,
		Time:             ev.Time,
		SecondsRemaining: int(ev.Time.Sub(now) / time.Second),
		Zone:             s.Zone,
		HijriLabel:       label,
	}, nil
}
