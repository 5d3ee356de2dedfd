package cli

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/solatku/solatku/internal/api"
	"github.com/solatku/solatku/internal/display"
	"github.com/solatku/solatku/internal/hijri"
	"github.com/solatku/solatku/internal/prayer"
)

var (
	flagMonth int
	flagYear  int
)

func newMonthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "month",
		Short: "Show the full monthly schedule",
		Long:  "Display the complete prayer schedule of a month as a table.\nDefaults to the current month.",
		RunE:  runMonth,
	}

	cmd.Flags().IntVar(&flagMonth, "month", 0, "Month number 1-12 (default: current month)")
	cmd.Flags().IntVar(&flagYear, "year", 0, "Year (default: current year)")

	return cmd
}

func runMonth(cmd *cobra.Command, args []string) error {
	cfg := effectiveConfig(cmd)

	c := openCache(cfg)
	client := newClient(cfg)

	zoneCode, err := resolveZone(cfg, client.FetchZones)
	if err != nil {
		return err
	}

	now := time.Now()
	year, month := now.Year(), now.Month()
	if flagYear != 0 {
		year = flagYear
	}
	if flagMonth != 0 {
		if flagMonth < 1 || flagMonth > 12 {
			return fmt.Errorf("invalid month %d (must be 1-12)", flagMonth)
		}
		month = time.Month(flagMonth)
	}

	sched, err := newFetcher(cfg, c)(zoneCode, year, month)
	if err != nil {
		return err
	}

	layout := prayer.TimeLayout(cfg.TimeFormat)
	currentMonth := year == now.Year() && month == now.Month()

	if FlagJSON {
		return printMonthJSON(sched, year, month, layout, now.Location())
	}

	fmt.Println()
	fmt.Printf("  %s\n", display.Boldf("Waktu Solat — %s %d", month, year))
	fmt.Println()
	fmt.Printf("  %s\n", zoneCode)
	fmt.Println()

	headers := []string{"Tarikh", "Hijri"}
	for _, name := range prayer.EventNames {
		headers = append(headers, prayer.MalayNames[name])
	}
	tbl := display.NewTable(headers)

	for i, rec := range sched.Days {
		date := time.Date(year, month, rec.Day, 0, 0, 0, 0, now.Location())

		events, err := prayer.ExpandDay(rec, date)
		if err != nil {
			return err
		}
		label, err := hijri.FormatLabel(rec.Hijri, "-")
		if err != nil {
			return err
		}

		row := []string{date.Format("Mon 02"), label}
		for _, ev := range events {
			row = append(row, ev.Time.Format(layout))
		}
		tbl.AddRow(row)

		if currentMonth && rec.Day == now.Day() {
			tbl.SetHighlightRow(i)
		}
	}

	fmt.Print(tbl.Render())
	fmt.Println()
	return nil
}

// monthJSONDay is one day in the month command's JSON output.
type monthJSONDay struct {
	Day     int               `json:"day"`
	Hijri   string            `json:"hijri"`
	Timings map[string]string `json:"timings"`
}

type monthJSON struct {
	Zone  string         `json:"zone"`
	Year  int            `json:"year"`
	Month string         `json:"month"`
	Days  []monthJSONDay `json:"days"`
}

func printMonthJSON(sched *api.MonthlySchedule, year int, month time.Month, layout string, loc *time.Location) error {
	out := monthJSON{
		Zone:  sched.Zone,
		Year:  year,
		Month: month.String(),
	}

	for _, rec := range sched.Days {
		date := time.Date(year, month, rec.Day, 0, 0, 0, 0, loc)

		events, err := prayer.ExpandDay(rec, date)
		if err != nil {
			return err
		}
		label, err := hijri.FormatLabel(rec.Hijri, "-")
		if err != nil {
			return err
		}

		timings := make(map[string]string, len(events))
		for _, ev := range events {
			timings[ev.Name] = ev.Time.Format(layout)
		}
		out.Days = append(out.Days, monthJSONDay{Day: rec.Day, Hijri: label, Timings: timings})
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Println(string(data))
	return nil
}
