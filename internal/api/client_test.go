package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

const sampleScheduleJSON = `{
  "zone": "WLY01",
  "year": 2024,
  "month": "SEP",
  "month_number": 9,
  "last_updated": "2024-08-30T01:15:00Z",
  "prayers": [
    {
      "day": 1,
      "hijri": "1446-02-27",
      "fajr": 1725141420,
      "syuruk": 1725145740,
      "dhuhr": 1725167580,
      "asr": 1725178980,
      "maghrib": 1725189180,
      "isha": 1725193380
    },
    {
      "day": 2,
      "hijri": "1446-02-28",
      "fajr": 1725227820,
      "syuruk": 1725232140,
      "dhuhr": 1725253920,
      "asr": 1725265320,
      "maghrib": 1725275520,
      "isha": 1725279720
    }
  ]
}`

const sampleZonesJSON = `[
  {"jakimCode": "WLY01", "negeri": "Wilayah Persekutuan", "daerah": "Kuala Lumpur"},
  {"jakimCode": "WLY02", "negeri": "Wilayah Persekutuan", "daerah": "Labuan"},
  {"jakimCode": "SGR01", "negeri": "Selangor", "daerah": "Gombak"}
]`

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewClient()
	c.BaseURL = srv.URL
	return c, srv
}

// ---------------------------------------------------------------------------
// FetchMonth
// ---------------------------------------------------------------------------

func TestFetchMonth_OK(t *testing.T) {
	var gotPath, gotQuery string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		w.Write([]byte(sampleScheduleJSON))
	})

	sched, err := c.FetchMonth("WLY01", 2024, time.September)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotPath != "/v2/solat/WLY01" {
		t.Errorf("request path = %q, want /v2/solat/WLY01", gotPath)
	}
	if gotQuery != "month=9&year=2024" {
		t.Errorf("request query = %q, want month=9&year=2024", gotQuery)
	}

	if sched.Zone != "WLY01" || sched.Year != 2024 {
		t.Errorf("schedule header = %s/%d, want WLY01/2024", sched.Zone, sched.Year)
	}
	if len(sched.Days) != 2 {
		t.Fatalf("expected 2 day records, got %d", len(sched.Days))
	}
	if sched.Days[0].Hijri != "1446-02-27" {
		t.Errorf("day 1 hijri = %q, want 1446-02-27", sched.Days[0].Hijri)
	}
	if sched.Days[1].Fajr != 1725227820 {
		t.Errorf("day 2 fajr = %d, want 1725227820", sched.Days[1].Fajr)
	}
}

func TestFetchMonth_NotFound(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no such zone", http.StatusNotFound)
	})

	_, err := c.FetchMonth("XXX99", 2024, time.September)
	if !errors.Is(err, ErrZoneNotFound) {
		t.Errorf("error = %v, want ErrZoneNotFound", err)
	}
}

func TestFetchMonth_ServerError(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	_, err := c.FetchMonth("WLY01", 2024, time.September)
	if !errors.Is(err, ErrUpstreamServer) {
		t.Errorf("error = %v, want ErrUpstreamServer", err)
	}
}

func TestFetchMonth_OtherStatus(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "slow down", http.StatusTooManyRequests)
	})

	_, err := c.FetchMonth("WLY01", 2024, time.September)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if errors.Is(err, ErrZoneNotFound) || errors.Is(err, ErrUpstreamServer) {
		t.Errorf("429 should be a generic failure, got %v", err)
	}
}

func TestFetchMonth_BadJSON(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("{not json"))
	})

	if _, err := c.FetchMonth("WLY01", 2024, time.September); err == nil {
		t.Fatal("expected decode error, got nil")
	}
}

func TestFetchMonth_InvalidSchedule(t *testing.T) {
	// Duplicate day records must be rejected, not passed through.
	dup := `{"zone":"WLY01","year":2024,"month":"SEP","prayers":[
	  {"day":1,"hijri":"1446-02-27","fajr":10,"syuruk":20,"dhuhr":30,"asr":40,"maghrib":50,"isha":60},
	  {"day":1,"hijri":"1446-02-27","fajr":10,"syuruk":20,"dhuhr":30,"asr":40,"maghrib":50,"isha":60}
	]}`
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(dup))
	})

	if _, err := c.FetchMonth("WLY01", 2024, time.September); err == nil {
		t.Fatal("expected validation error, got nil")
	}
}

// ---------------------------------------------------------------------------
// FetchZones / FetchZone
// ---------------------------------------------------------------------------

func TestFetchZones_OK(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/zones" {
			t.Errorf("request path = %q, want /zones", r.URL.Path)
		}
		w.Write([]byte(sampleZonesJSON))
	})

	zones, err := c.FetchZones()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(zones) != 3 {
		t.Fatalf("expected 3 zones, got %d", len(zones))
	}
	if zones[0].JakimCode != "WLY01" || zones[0].Negeri != "Wilayah Persekutuan" {
		t.Errorf("unexpected first zone: %+v", zones[0])
	}
}

func TestFetchZone_OK(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/zones/SGR01" {
			t.Errorf("request path = %q, want /zones/SGR01", r.URL.Path)
		}
		w.Write([]byte(`[{"jakimCode":"SGR01","negeri":"Selangor","daerah":"Gombak"}]`))
	})

	zones, err := c.FetchZone("SGR01")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(zones) != 1 || zones[0].Daerah != "Gombak" {
		t.Errorf("unexpected zones: %+v", zones)
	}
}

func TestFetchZone_NotFound(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusNotFound)
	})

	if _, err := c.FetchZone("XXX99"); !errors.Is(err, ErrZoneNotFound) {
		t.Errorf("error = %v, want ErrZoneNotFound", err)
	}
}
