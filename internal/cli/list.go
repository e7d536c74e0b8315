package cli

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/smokyabdulrahman/salat/internal/display"
	"github.com/spf13/cobra"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list [days]",
		Short: "List prayer times for the coming days",
		Long:  "Display a table of prayer times for the given number of days, starting today (default 7).",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, args, 7)
		},
	}
}

func newWeekCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "week",
		Short: "List prayer times for the next 7 days",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, nil, 7)
		},
	}
}

func newMonthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "month",
		Short: "List prayer times for the next 30 days",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, nil, 30)
		},
	}
}

// runList is the handler for the list subcommand and its week/month aliases.
func runList(cmd *cobra.Command, args []string, defaultDays int) error {
	days := defaultDays
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 {
			return fmt.Errorf("invalid number of days: %q (must be a positive integer)", args[0])
		}
		days = n
	}

	cfg := effectiveConfig(cmd)

	names := selectedPrayers("", cfg)
	goTimeFmt := goTimeFormat(cfg)

	eng, err := newEngine(cfg)
	if err != nil {
		return err
	}

	now := time.Now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	if FlagJSON {
		return printListJSON(eng, start, days, names, goTimeFmt)
	}

	// Rich terminal output.
	fmt.Println()
	fmt.Printf("  %s\n", display.Bold(fmt.Sprintf("Prayer Times - %d Days", days)))
	fmt.Println()
	fmt.Printf("  %s\n", eng.coords.String())
	fmt.Println()

	// Build table.
	headers := []string{"Date"}
	headers = append(headers, names...)
	tbl := display.NewTable(headers)

	for i := 0; i < days; i++ {
		date := start.AddDate(0, 0, i)

		day, err := eng.dayTimes(date)
		if err != nil {
			return err
		}
		prayers, err := day.Select(names)
		if err != nil {
			return err
		}

		row := []string{date.Format("Mon 02 Jan")}
		for _, p := range prayers {
			row = append(row, p.Time.Format(goTimeFmt))
		}
		tbl.AddRow(row)

		// Highlight today's row.
		if i == 0 {
			tbl.SetHighlightRow(0)
		}
	}

	fmt.Print(tbl.Render())
	fmt.Println()
	return nil
}

// listJSONOutput is the JSON structure for the list command.
type listJSONOutput struct {
	Location struct {
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	} `json:"location"`
	Method string        `json:"method"`
	Madhab string        `json:"madhab"`
	Days   []listJSONDay `json:"days"`
}

type listJSONDay struct {
	Date    string            `json:"date"`
	Timings map[string]string `json:"timings"`
}

func printListJSON(eng *engine, start time.Time, days int, names []string, goTimeFmt string) error {
	var out listJSONOutput
	out.Location.Latitude = eng.coords.Latitude
	out.Location.Longitude = eng.coords.Longitude
	out.Method = eng.method.String()
	out.Madhab = eng.madhab.String()

	for i := 0; i < days; i++ {
		date := start.AddDate(0, 0, i)

		day, err := eng.dayTimes(date)
		if err != nil {
			return err
		}
		prayers, err := day.Select(names)
		if err != nil {
			return err
		}

		timings := make(map[string]string)
		for _, p := range prayers {
			timings[strings.ToLower(p.Name)] = p.Time.Format(goTimeFmt)
		}

		out.Days = append(out.Days, listJSONDay{
			Date:    date.Format("2006-01-02"),
			Timings: timings,
		})
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Println(string(data))
	return nil
}
