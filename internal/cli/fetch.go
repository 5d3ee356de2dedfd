package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/solatku/solatku/internal/api"
	"github.com/solatku/solatku/internal/cache"
	"github.com/solatku/solatku/internal/config"
	"github.com/solatku/solatku/internal/prayer"
	"github.com/solatku/solatku/internal/zone"
)

// scheduleFetcher returns the monthly schedule of a zone. Commands build
// one with newFetcher; tests inject their own.
type scheduleFetcher func(zoneCode string, year int, month time.Month) (*api.MonthlySchedule, error)

// zonesFetcher returns the JAKIM zone directory.
type zonesFetcher func() ([]api.Zone, error)

// newClient builds the API client, honoring a configured base URL.
func newClient(cfg *config.Config) *api.Client {
	client := api.NewClient()
	if cfg.APIURL != "" {
		client.BaseURL = cfg.APIURL
	}
	return client
}

// openCache initializes the schedule cache. Failure is non-fatal: the
// commands just skip caching.
func openCache(cfg *config.Config) *cache.Cache {
	c, err := cache.New(cfg.CacheDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: cache disabled: %v\n", err)
		return nil
	}
	return c
}

// newFetcher builds the cache-then-API fetch path for monthly schedules.
func newFetcher(cfg *config.Config, c *cache.Cache) scheduleFetcher {
	client := newClient(cfg)
	return func(zoneCode string, year int, month time.Month) (*api.MonthlySchedule, error) {
		if c != nil {
			if s := c.LoadSchedule(zoneCode, year, month); s != nil {
				return s, nil
			}
		}
		s, err := client.FetchMonth(zoneCode, year, month)
		if err != nil {
			return nil, err
		}
		if c != nil {
			_ = c.SaveSchedule(s, zoneCode, year, month) // best-effort
		}
		return s, nil
	}
}

// resolveZone picks the effective zone code. An explicit zone wins; a
// configured district is looked up in the zone directory; otherwise the
// default zone applies.
func resolveZone(cfg *config.Config, fetchZones zonesFetcher) (string, error) {
	if cfg.Zone != "" {
		return strings.ToUpper(cfg.Zone), nil
	}
	if cfg.District != "" {
		zones, err := fetchZones()
		if err != nil {
			return "", fmt.Errorf("failed to resolve district %q: %w", cfg.District, err)
		}
		groups := zone.GroupByState(zones)
		if code := zone.CodeForDistrict(cfg.District, groups); code != "" {
			return code, nil
		}
		return "", fmt.Errorf("unknown district %q", cfg.District)
	}
	return config.Defaults().Zone, nil
}

// nextPrayer computes the next prayer for a zone, fetching the following
// month's schedule when the rollover crosses a month boundary. A record
// missing mid-month is not papered over: only ErrMonthBoundary triggers
// the extra fetch, everything else is surfaced.
func nextPrayer(fetch scheduleFetcher, zoneCode, district string, now time.Time) (*prayer.Info, error) {
	sched, err := fetch(zoneCode, now.Year(), now.Month())
	if err != nil {
		return nil, err
	}

	info, err := prayer.Next(sched, now)
	if err == nil {
		info.District = district
		return info, nil
	}
	if !errors.Is(err, prayer.ErrMonthBoundary) {
		return nil, err
	}

	// All of today's prayers have passed and tomorrow falls in the next
	// month: the answer is the first Fajr of that month's schedule.
	tomorrow := now.AddDate(0, 0, 1)
	nextSched, fetchErr := fetch(zoneCode, tomorrow.Year(), tomorrow.Month())
	if fetchErr != nil {
		return nil, fmt.Errorf("failed to fetch %s %d: %w", tomorrow.Month(), tomorrow.Year(), fetchErr)
	}
	info, err = prayer.FajrOn(nextSched, tomorrow, now)
	if err != nil {
		return nil, err
	}
	info.District = district
	return info, nil
}
