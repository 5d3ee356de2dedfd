package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/solatku/solatku/internal/hijri"
)

var flagFromHijri bool

func newHijriCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hijri [date]",
		Short: "Convert between Gregorian and Hijri dates",
		Long: "Convert a Gregorian date (YYYY-MM-DD) to its Hijri equivalent.\n" +
			"With no argument, today's date is converted.\n" +
			"With --from-hijri, the argument is a Hijri date and the Gregorian date is printed.",
		Args: cobra.MaximumNArgs(1),
		RunE: runHijri,
	}

	cmd.Flags().BoolVar(&flagFromHijri, "from-hijri", false, "Treat the argument as a Hijri date and convert to Gregorian")

	return cmd
}

func runHijri(cmd *cobra.Command, args []string) error {
	if flagFromHijri {
		if len(args) == 0 {
			return fmt.Errorf("--from-hijri requires a date argument, e.g. 1446-03-15")
		}
		g, err := hijri.ToTime(args[0], "-", time.Local)
		if err != nil {
			return err
		}
		fmt.Println(g.Format("Mon, 02 Jan 2006"))
		return nil
	}

	t := time.Now()
	if len(args) > 0 {
		parsed, err := time.ParseInLocation("2006-01-02", args[0], time.Local)
		if err != nil {
			return fmt.Errorf("invalid date %q (expected YYYY-MM-DD): %w", args[0], err)
		}
		t = parsed
	}

	hy, hm, hd := hijri.FromTime(t)
	fmt.Printf("%d %s %dH\n", hd, hijri.MonthNames[hm], hy)
	return nil
}
