package cli

import (
	"fmt"
	"strconv"

	"github.com/smokyabdulrahman/salat/internal/adjust"
	"github.com/smokyabdulrahman/salat/internal/config"
	"github.com/smokyabdulrahman/salat/internal/display"
	"github.com/spf13/cobra"
)

func newAdjustCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "adjust",
		Short: "Show or set per-prayer minute adjustments",
		Long: fmt.Sprintf("Shift individual prayer times by a fixed number of minutes, to follow\na local mosque timetable. Offsets are clamped to +-%d minutes and apply\nonly to Fajr, Dhuhr, Asr, Maghrib and Isha.\n\nWhen run without subcommands, shows the current adjustments.", adjust.Limit),
		RunE:  runAdjustShow,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set <prayer> <minutes>",
		Short: "Set the offset for one prayer",
		Long:  fmt.Sprintf("Set the minute offset for one prayer. Values outside +-%d are clamped.\n\nExamples:\n  salat adjust set Fajr -5\n  salat adjust set Isha 10", adjust.Limit),
		Args:  cobra.ExactArgs(2),
		RunE:  runAdjustSet,
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Clear all adjustments",
		Args:  cobra.NoArgs,
		RunE:  runAdjustReset,
	})

	return cmd
}

func openAdjustStore() (*adjust.Store, error) {
	path, err := config.AdjustmentsPath()
	if err != nil {
		return nil, err
	}
	return adjust.OpenStore(path), nil
}

// runAdjustShow displays the stored offsets.
func runAdjustShow(cmd *cobra.Command, args []string) error {
	store, err := openAdjustStore()
	if err != nil {
		return err
	}
	m := store.Snapshot()

	fmt.Println()
	fmt.Printf("  %s\n", display.Bold("Adjustments"))
	fmt.Println()

	for _, p := range adjust.Prayers {
		line := fmt.Sprintf("  %-8s %+d min", p, m[p])
		if m[p] == 0 {
			fmt.Println(display.Dim(line))
		} else {
			fmt.Println(line)
		}
	}

	fmt.Println()
	return nil
}

// runAdjustSet stores an offset for one prayer.
func runAdjustSet(cmd *cobra.Command, args []string) error {
	p, err := adjust.ParsePrayer(args[0])
	if err != nil {
		return err
	}
	minutes, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid minutes %q: must be an integer", args[1])
	}

	store, err := openAdjustStore()
	if err != nil {
		return err
	}

	stored := store.Set(p, minutes)
	if stored != minutes {
		fmt.Printf("Set %s = %+d min (clamped from %+d)\n", p, stored, minutes)
	} else {
		fmt.Printf("Set %s = %+d min\n", p, stored)
	}
	return nil
}

// runAdjustReset zeroes every offset.
func runAdjustReset(cmd *cobra.Command, args []string) error {
	store, err := openAdjustStore()
	if err != nil {
		return err
	}
	store.Reset()
	fmt.Println("Adjustments cleared.")
	return nil
}
