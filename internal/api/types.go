package api

import (
	"fmt"
)

// MonthlySchedule is one calendar month of prayer data for a JAKIM zone.
type MonthlySchedule struct {
	Zone        string `json:"zone"`
	Year        int    `json:"year"`
	Month       string `json:"month"` // short month label, e.g. "SEP"
	MonthNumber int    `json:"month_number,omitempty"`
	LastUpdated string `json:"last_updated,omitempty"`
	// Days holds one record per day of the month, keyed by day number.
	Days []DayRecord `json:"prayers"`
}

// DayRecord is one day's raw prayer data. All prayer times are epoch
// seconds representing a moment of that calendar day in the zone's local
// time; the date component of the epoch is not trusted (see prayer.ExpandDay).
type DayRecord struct {
	Day     int    `json:"day"`
	Hijri   string `json:"hijri"` // "yyyy-mm-dd"
	Fajr    int64  `json:"fajr"`
	Syuruk  int64  `json:"syuruk"`
	Dhuhr   int64  `json:"dhuhr"`
	Asr     int64  `json:"asr"`
	Maghrib int64  `json:"maghrib"`
	Isha    int64  `json:"isha"`
}

// Timestamps returns the six raw prayer timestamps in canonical order.
func (r DayRecord) Timestamps() [6]int64 {
	return [6]int64{r.Fajr, r.Syuruk, r.Dhuhr, r.Asr, r.Maghrib, r.Isha}
}

// Validate checks the schedule invariants: at most one record per
// day-of-month, and timestamps non-decreasing in prayer order within a day.
func (s *MonthlySchedule) Validate() error {
	seen := make(map[int]bool, len(s.Days))
	for _, rec := range s.Days {
		if rec.Day < 1 || rec.Day > 31 {
			return fmt.Errorf("schedule %s: day %d out of range", s.Zone, rec.Day)
		}
		if seen[rec.Day] {
			return fmt.Errorf("schedule %s: duplicate record for day %d", s.Zone, rec.Day)
		}
		seen[rec.Day] = true

		ts := rec.Timestamps()
		for i := 1; i < len(ts); i++ {
			if ts[i] < ts[i-1] {
				return fmt.Errorf("schedule %s day %d: prayer times out of order", s.Zone, rec.Day)
			}
		}
	}
	return nil
}

// Zone is one entry of the JAKIM zone directory.
type Zone struct {
	JakimCode string `json:"jakimCode"` // e.g. "WLY01"
	Negeri    string `json:"negeri"`    // state name
	Daerah    string `json:"daerah"`    // district name(s)
}
