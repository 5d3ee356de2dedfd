package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/solatku/solatku/internal/display"
	"github.com/solatku/solatku/internal/zone"
)

var flagState string

func newZonesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "zones",
		Short: "List JAKIM zones grouped by state",
		Long:  "Print the directory of JAKIM prayer-time zones, grouped by state.\nUse --state to narrow the listing.",
		RunE:  runZones,
	}

	cmd.Flags().StringVar(&flagState, "state", "", "Filter by state name (substring match)")

	return cmd
}

func runZones(cmd *cobra.Command, args []string) error {
	cfg := effectiveConfig(cmd)

	zones, err := newClient(cfg).FetchZones()
	if err != nil {
		return err
	}

	groups := zone.FilterByState(zone.GroupByState(zones), flagState)
	if len(groups) == 0 {
		return fmt.Errorf("no state matches %q", flagState)
	}

	if FlagJSON {
		data, err := json.MarshalIndent(groups, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	fmt.Println()
	for _, g := range groups {
		fmt.Printf("  %s\n", display.Bold(g.Negeri))
		for _, d := range g.Districts {
			code := fmt.Sprintf("%-7s", d.JakimCode)
			fmt.Printf("    %s %s\n", display.Cyan(code), d.Name)
		}
		fmt.Println()
	}
	return nil
}
