package cli

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/solatku/solatku/internal/api"
	"github.com/solatku/solatku/internal/config"
	"github.com/solatku/solatku/internal/prayer"
)

var myt = time.FixedZone("MYT", 8*3600)

// monthRecord builds a day record with fixed clock times on the given date.
func monthRecord(year int, month time.Month, day int) api.DayRecord {
	at := func(hour, min int) int64 {
		return time.Date(year, month, day, hour, min, 0, 0, myt).Unix()
	}
	return api.DayRecord{
		Day:     day,
		Hijri:   "1446-02-27",
		Fajr:    at(5, 57),
		Syuruk:  at(7, 9),
		Dhuhr:   at(13, 13),
		Asr:     at(16, 23),
		Maghrib: at(19, 13),
		Isha:    at(20, 23),
	}
}

// monthSchedule builds a full schedule for the given month.
func monthSchedule(zone string, year int, month time.Month) *api.MonthlySchedule {
	s := &api.MonthlySchedule{
		Zone:        zone,
		Year:        year,
		Month:       month.String(),
		MonthNumber: int(month),
	}
	last := time.Date(year, month, 1, 0, 0, 0, 0, myt).AddDate(0, 1, -1).Day()
	for d := 1; d <= last; d++ {
		s.Days = append(s.Days, monthRecord(year, month, d))
	}
	return s
}

// ---- nextPrayer ----

func TestNextPrayer_WithinMonth(t *testing.T) {
	fetch := func(zone string, year int, month time.Month) (*api.MonthlySchedule, error) {
		return monthSchedule(zone, year, month), nil
	}

	now := time.Date(2024, time.September, 15, 12, 0, 0, 0, myt)
	info, err := nextPrayer(fetch, "WLY01", "Kuala Lumpur", now)
	if err != nil {
		t.Fatalf("nextPrayer: %v", err)
	}

	if info.Name != prayer.Dhuhr {
		t.Errorf("next = %s, want %s", info.Name, prayer.Dhuhr)
	}
	if info.Zone != "WLY01" {
		t.Errorf("zone = %q, want WLY01", info.Zone)
	}
	if info.District != "Kuala Lumpur" {
		t.Errorf("district = %q, want Kuala Lumpur", info.District)
	}
}

func TestNextPrayer_CrossMonthRollover(t *testing.T) {
	var fetched []string
	fetch := func(zone string, year int, month time.Month) (*api.MonthlySchedule, error) {
		fetched = append(fetched, fmt.Sprintf("%d-%s", year, month))
		return monthSchedule(zone, year, month), nil
	}

	// After Isha on the last day of September.
	now := time.Date(2024, time.September, 30, 22, 0, 0, 0, myt)
	info, err := nextPrayer(fetch, "WLY01", "Kuala Lumpur", now)
	if err != nil {
		t.Fatalf("nextPrayer: %v", err)
	}

	if info.Name != prayer.Fajr {
		t.Errorf("next = %s, want %s", info.Name, prayer.Fajr)
	}
	if info.Time.Month() != time.October || info.Time.Day() != 1 {
		t.Errorf("next time = %v, want Oct 1 Fajr", info.Time)
	}
	if len(fetched) != 2 || fetched[1] != "2024-October" {
		t.Errorf("expected a second fetch for October, got %v", fetched)
	}
	if info.District != "Kuala Lumpur" {
		t.Errorf("district = %q, want Kuala Lumpur", info.District)
	}
}

func TestNextPrayer_MissingTodayRecordFailsLoudly(t *testing.T) {
	// A mid-month gap in the schedule must surface as an error, not be
	// papered over with the following day's Fajr.
	var fetches int
	fetch := func(zone string, year int, month time.Month) (*api.MonthlySchedule, error) {
		fetches++
		s := monthSchedule(zone, year, month)
		days := s.Days[:0]
		for _, rec := range s.Days {
			if rec.Day != 15 {
				days = append(days, rec)
			}
		}
		s.Days = days
		return s, nil
	}

	now := time.Date(2024, time.September, 15, 10, 0, 0, 0, myt)
	_, err := nextPrayer(fetch, "WLY01", "", now)
	if !errors.Is(err, prayer.ErrDataUnavailable) {
		t.Fatalf("error = %v, want ErrDataUnavailable", err)
	}
	if fetches != 1 {
		t.Errorf("fetches = %d, want 1 (no fallback fetch for a mid-month gap)", fetches)
	}
}

func TestNextPrayer_FetchError(t *testing.T) {
	wantErr := errors.New("network down")
	fetch := func(zone string, year int, month time.Month) (*api.MonthlySchedule, error) {
		return nil, wantErr
	}

	_, err := nextPrayer(fetch, "WLY01", "", time.Now())
	if !errors.Is(err, wantErr) {
		t.Errorf("error = %v, want %v", err, wantErr)
	}
}

func TestNextPrayer_NextMonthFetchError(t *testing.T) {
	wantErr := errors.New("network down")
	fetch := func(zone string, year int, month time.Month) (*api.MonthlySchedule, error) {
		if month == time.October {
			return nil, wantErr
		}
		return monthSchedule(zone, year, month), nil
	}

	now := time.Date(2024, time.September, 30, 22, 0, 0, 0, myt)
	_, err := nextPrayer(fetch, "WLY01", "", now)
	if !errors.Is(err, wantErr) {
		t.Errorf("error = %v, want wrapped %v", err, wantErr)
	}
}

// ---- resolveZone ----

func TestResolveZone_ExplicitZone(t *testing.T) {
	cfg := &config.Config{Zone: "sgr01"}

	got, err := resolveZone(cfg, func() ([]api.Zone, error) {
		t.Fatal("zones should not be fetched when a zone is set")
		return nil, nil
	})
	if err != nil {
		t.Fatalf("resolveZone: %v", err)
	}
	if got != "SGR01" {
		t.Errorf("zone = %q, want SGR01 (uppercased)", got)
	}
}

func TestResolveZone_DistrictLookup(t *testing.T) {
	cfg := &config.Config{District: "gombak"}
	zones := []api.Zone{
		{JakimCode: "WLY01", Negeri: "Wilayah Persekutuan", Daerah: "Kuala Lumpur"},
		{JakimCode: "SGR01", Negeri: "Selangor", Daerah: "Gombak"},
	}

	got, err := resolveZone(cfg, func() ([]api.Zone, error) { return zones, nil })
	if err != nil {
		t.Fatalf("resolveZone: %v", err)
	}
	if got != "SGR01" {
		t.Errorf("zone = %q, want SGR01", got)
	}
}

func TestResolveZone_UnknownDistrict(t *testing.T) {
	cfg := &config.Config{District: "Atlantis"}

	_, err := resolveZone(cfg, func() ([]api.Zone, error) { return nil, nil })
	if err == nil {
		t.Fatal("expected error for unknown district")
	}
}

func TestResolveZone_ZonesFetchError(t *testing.T) {
	cfg := &config.Config{District: "Gombak"}
	wantErr := errors.New("network down")

	_, err := resolveZone(cfg, func() ([]api.Zone, error) { return nil, wantErr })
	if !errors.Is(err, wantErr) {
		t.Errorf("error = %v, want wrapped %v", err, wantErr)
	}
}

func TestResolveZone_Default(t *testing.T) {
	got, err := resolveZone(&config.Config{}, func() ([]api.Zone, error) { return nil, nil })
	if err != nil {
		t.Fatalf("resolveZone: %v", err)
	}
	if got != "WLY01" {
		t.Errorf("zone = %q, want default WLY01", got)
	}
}
