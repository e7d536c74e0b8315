package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/smokyabdulrahman/salat/internal/times"
	"github.com/spf13/cobra"
)

var (
	flagFormat  string
	flagPrayers string
)

func newNextCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "next",
		Short: "Show the next prayer with countdown",
		Long:  "Display the next upcoming prayer time with a countdown.\nDesigned for status bars (tmux, i3blocks, polybar).",
		RunE:  runNext,
	}

	cmd.Flags().StringVar(&flagFormat, "format", times.FormatFull, "Display format: time-remaining, next-prayer-time, name-and-time, name-and-remaining, short-name-and-time, short-name-and-remaining, full, or a custom Go template")
	cmd.Flags().StringVar(&flagPrayers, "prayers", "", "Comma-separated list of prayers to track (overrides config)")

	return cmd
}

func runNext(cmd *cobra.Command, args []string) error {
	// Get merged config (CLI flags > config file > defaults).
	cfg := effectiveConfig(cmd)

	// Priority: --prayers flag > config > defaults.
	override := ""
	if cmd.Flags().Changed("prayers") && flagPrayers != "" {
		override = flagPrayers
	}
	names := selectedPrayers(override, cfg)
	goTimeFmt := goTimeFormat(cfg)

	eng, err := newEngine(cfg)
	if err != nil {
		return err
	}

	now := time.Now()

	day, err := eng.dayTimes(now)
	if err != nil {
		return err
	}

	prayers, err := day.Select(names)
	if err != nil {
		return err
	}

	// Find the next prayer.
	next := times.NextPrayer(prayers, now)

	// All of today's prayers have passed: roll over to tomorrow.
	if next == nil {
		tomorrow, err := eng.dayTimes(now.AddDate(0, 0, 1))
		if err != nil {
			return err
		}
		tomorrowPrayers, err := tomorrow.Select(names)
		if err != nil {
			return err
		}
		if len(tomorrowPrayers) > 0 {
			next = &tomorrowPrayers[0]
		}
	}

	if next == nil {
		return fmt.Errorf("could not determine next prayer")
	}

	// Format and print. No trailing newline: status bars render the raw string.
	output := times.FormatOutput(*next, now, strings.TrimSpace(flagFormat), goTimeFmt)
	fmt.Print(output)

	return nil
}
