package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/solatku/solatku/internal/config"
)

func newThemeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "theme [day|night|toggle]",
		Short: "Show or switch the color theme",
		Long: "Print the active theme, set it to day or night, or flip it with toggle.\n" +
			"The theme changes the accent color used for the next-prayer highlight.",
		Args: cobra.MaximumNArgs(1),
		RunE: runTheme,
	}
}

func runTheme(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	current := cfg.Theme
	if current == "" {
		current = config.Defaults().Theme
	}

	if len(args) == 0 {
		fmt.Println(current)
		return nil
	}

	next := args[0]
	if next == "toggle" {
		next = "night"
		if current == "night" {
			next = "day"
		}
	}

	if err := cfg.Set("theme", next); err != nil {
		return err
	}
	if err := cfg.Save(); err != nil {
		return err
	}

	fmt.Printf("Theme set to %s\n", next)
	return nil
}
