package cli

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/solatku/solatku/internal/display"
	"github.com/solatku/solatku/internal/hijri"
	"github.com/solatku/solatku/internal/prayer"
)

func runToday(cmd *cobra.Command, args []string) error {
	// Get merged config (CLI flags > config file > defaults).
	cfg := effectiveConfig(cmd)

	c := openCache(cfg)
	client := newClient(cfg)

	zoneCode, err := resolveZone(cfg, client.FetchZones)
	if err != nil {
		return err
	}

	now := time.Now()
	fetch := newFetcher(cfg, c)

	sched, err := fetch(zoneCode, now.Year(), now.Month())
	if err != nil {
		return err
	}

	rec, err := prayer.RecordForDay(sched, now.Day())
	if err != nil {
		return err
	}

	events, err := prayer.ExpandDay(rec, now)
	if err != nil {
		return err
	}

	hijriLabel, err := hijri.FormatLabel(rec.Hijri, "-")
	if err != nil {
		return err
	}

	next := prayer.Upcoming(events, now)
	layout := prayer.TimeLayout(cfg.TimeFormat)

	if FlagJSON {
		return printTodayJSON(events, next, now, zoneCode, cfg.District, hijriLabel, layout)
	}

	printTodayRich(events, next, now, zoneCode, cfg.District, hijriLabel, layout)
	return nil
}

// printTodayRich renders the colored terminal output for today's schedule.
func printTodayRich(events []prayer.Event, next *prayer.Event, now time.Time, zoneCode, district, hijriLabel, layout string) {
	fmt.Println()
	fmt.Printf("  %s\n", display.Bold("Waktu Solat"))
	fmt.Println()

	loc := zoneCode
	if district != "" {
		loc = district + " (" + zoneCode + ")"
	}
	fmt.Printf("  %s\n", loc)
	fmt.Printf("  %s\n", now.Format("Mon, 02 Jan 2006"))
	fmt.Printf("  %s\n", hijriLabel)
	fmt.Println()

	tbl := display.NewTable([]string{"Waktu", "Masa", ""})
	for i, ev := range events {
		row := []string{prayer.MalayNames[ev.Name], ev.Time.Format(layout), ""}
		if next != nil && ev.Name == next.Name {
			remaining := prayer.FormatRemaining(int(ev.Time.Sub(now) / time.Second))
			row[2] = "dalam " + remaining
			tbl.SetHighlightRow(i)
		}
		if prayer.Informational(ev.Name) {
			tbl.SetDimRow(i)
		}
		tbl.AddRow(row)
	}

	fmt.Print(tbl.Render())
	fmt.Println()
}

// todayJSON is the JSON output structure for the root command.
type todayJSON struct {
	Zone     string            `json:"zone"`
	District string            `json:"district,omitempty"`
	Date     todayJSONDate     `json:"date"`
	Timings  map[string]string `json:"timings"`
	Next     *todayJSONNext    `json:"next,omitempty"`
}

type todayJSONDate struct {
	Gregorian string `json:"gregorian"`
	Hijri     string `json:"hijri"`
}

type todayJSONNext struct {
	Prayer    string `json:"prayer"`
	Time      string `json:"time"`
	Remaining string `json:"remaining"`
}

// printTodayJSON renders structured JSON output.
func printTodayJSON(events []prayer.Event, next *prayer.Event, now time.Time, zoneCode, district, hijriLabel, layout string) error {
	timings := make(map[string]string, len(events))
	for _, ev := range events {
		timings[strings.ToLower(ev.Name)] = ev.Time.Format(layout)
	}

	out := todayJSON{
		Zone:     zoneCode,
		District: district,
		Date: todayJSONDate{
			Gregorian: now.Format("2006-01-02"),
			Hijri:     hijriLabel,
		},
		Timings: timings,
	}

	if next != nil {
		remaining := prayer.FormatRemaining(int(next.Time.Sub(now) / time.Second))
		out.Next = &todayJSONNext{
			Prayer:    strings.ToLower(next.Name),
			Time:      next.Time.Format(layout),
			Remaining: remaining,
		}
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Println(string(data))
	return nil
}
