package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/solatku/solatku/internal/config"
	"github.com/solatku/solatku/internal/countdown"
	"github.com/solatku/solatku/internal/display"
	"github.com/solatku/solatku/internal/logger"
	"github.com/solatku/solatku/internal/prayer"
)

func newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Live countdown to the next prayer",
		Long: "Continuously display a ticking countdown to the next prayer.\n" +
			"When a prayer time arrives the countdown rolls over to the one after it.\n" +
			"Changes to the config file are picked up without restarting. Ctrl-C exits.",
		RunE: runWatch,
	}
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg := effectiveConfig(cmd)

	log := logger.New(cfg.LogPath, FlagVerbose)
	defer log.Sync()

	c := openCache(cfg)
	client := newClient(cfg)

	zoneCode, err := resolveZone(cfg, client.FetchZones)
	if err != nil {
		return err
	}

	fetch := newFetcher(cfg, c)
	layout := prayer.TimeLayout(cfg.TimeFormat)

	// Preference store: reflects the config file, polled so that edits
	// made by another process (or `solatku config set`) take effect live.
	store := config.NewStore(config.PreferenceOf(cfg))
	defer store.Close()

	stopWatch := make(chan struct{})
	defer close(stopWatch)
	if path, err := config.Path(); err == nil {
		go store.Watch(path, 2*time.Second, stopWatch)
	}
	sub := store.Subscribe()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sig)

	pres := countdown.New()
	defer pres.Stop()

	log.Info("watch started", zap.String("zone", zoneCode))

	for {
		info, err := nextPrayer(fetch, zoneCode, cfg.District, time.Now())
		if err != nil {
			return err
		}
		log.Info("next prayer",
			zap.String("name", info.Name),
			zap.Time("at", info.Time),
			zap.String("zone", info.Zone))

		ticks, done, err := pres.Start(info.Time)
		if err != nil {
			return err
		}

		name := prayer.MalayNames[info.Name]
		timeStr := info.Time.Format(layout)

	countdownLoop:
		for {
			select {
			case t := <-ticks:
				// Redraw in place: carriage return + clear to end of line.
				fmt.Printf("\r\033[K  %s %s  %s",
					display.Accent(name), timeStr,
					display.Dim(prayer.FormatRemaining(t.Total)))
			case <-done:
				// The prayer time arrived: recompute for the one after it.
				fmt.Println()
				break countdownLoop
			case p := <-sub:
				cfg.Zone, cfg.District, cfg.Theme = p.Zone, p.District, p.Theme
				display.SetTheme(cfg.NightTheme())
				z, zErr := resolveZone(cfg, client.FetchZones)
				if zErr != nil {
					log.Warn("preference change ignored", zap.Error(zErr))
					continue
				}
				if z != zoneCode {
					zoneCode = z
					log.Info("zone changed", zap.String("zone", z))
				}
				fmt.Println()
				break countdownLoop
			case <-sig:
				fmt.Println()
				log.Info("watch stopped")
				return nil
			}
		}
	}
}
