package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/solatku/solatku/internal/prayer"
)

var flagFormat string

func newNextCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "next",
		Short: "Show the next prayer with countdown",
		Long:  "Display the next upcoming prayer time with the remaining duration.\nThe output is a single line, suitable for status bars.",
		RunE:  runNext,
	}

	cmd.Flags().StringVar(&flagFormat, "format", prayer.FormatFull, "Display format: time-remaining, next-prayer-time, name-and-time, name-and-remaining, full, or a custom Go template")

	return cmd
}

func runNext(cmd *cobra.Command, args []string) error {
	cfg := effectiveConfig(cmd)

	c := openCache(cfg)
	client := newClient(cfg)

	zoneCode, err := resolveZone(cfg, client.FetchZones)
	if err != nil {
		return err
	}

	info, err := nextPrayer(newFetcher(cfg, c), zoneCode, cfg.District, time.Now())
	if err != nil {
		return err
	}

	layout := prayer.TimeLayout(cfg.TimeFormat)
	fmt.Println(prayer.FormatOutput(*info, flagFormat, layout))
	return nil
}
