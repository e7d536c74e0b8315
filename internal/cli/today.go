package cli

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/smokyabdulrahman/salat/internal/display"
	"github.com/smokyabdulrahman/salat/internal/times"
	"github.com/spf13/cobra"
)

func runToday(cmd *cobra.Command, args []string) error {
	// Get merged config (CLI flags > config file > defaults).
	cfg := effectiveConfig(cmd)

	names := selectedPrayers("", cfg)
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

	// Find current and next prayers.
	current := times.CurrentPrayer(prayers, now)
	next := times.NextPrayer(prayers, now)

	if FlagJSON {
		return printTodayJSON(eng, prayers, current, next, now, goTimeFmt)
	}

	printTodayRich(eng, prayers, current, next, now, goTimeFmt)
	return nil
}

// printTodayRich renders the colored terminal output for today's prayer schedule.
func printTodayRich(eng *engine, prayers []times.Prayer, current, next *times.Prayer, now time.Time, goTimeFmt string) {
	fmt.Println()
	fmt.Printf("  %s\n", display.Bold("Prayer Times"))
	fmt.Println()

	fmt.Printf("  %s\n", eng.coords.String())
	fmt.Printf("  %s, %s madhab\n", eng.method.Description(), eng.madhab)
	fmt.Printf("  %s\n", now.Format("02 Jan 2006"))

	if !eng.adjust.Snapshot().IsZero() {
		fmt.Printf("  %s\n", display.Dim("(manual adjustments active)"))
	}

	fmt.Println()

	// Find the max prayer name length for alignment.
	maxNameLen := 0
	for _, p := range prayers {
		if len(p.Name) > maxNameLen {
			maxNameLen = len(p.Name)
		}
	}

	// Print each prayer.
	for _, p := range prayers {
		timeStr := p.Time.Format(goTimeFmt)
		line := fmt.Sprintf("  %-*s  %s", maxNameLen, p.Name, timeStr)

		switch {
		case current != nil && p.Name == current.Name:
			// Current prayer: dimmed.
			fmt.Println(display.Dim(line))
		case next != nil && p.Name == next.Name:
			// Next prayer: accent color + countdown.
			remaining := times.FormatRemaining(times.TimeRemaining(p, now))
			suffix := fmt.Sprintf("  <- next in %s", remaining)
			fmt.Println(display.Accent(line) + display.Accent(suffix))
		default:
			fmt.Println(line)
		}
	}

	fmt.Println()
}

// todayJSON is the JSON output structure for the root command.
type todayJSON struct {
	Location struct {
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	} `json:"location"`
	Date    string            `json:"date"`
	Method  string            `json:"method"`
	Madhab  string            `json:"madhab"`
	Timings map[string]string `json:"timings"`
	Current string            `json:"current,omitempty"`
	Next    *todayJSONNext    `json:"next,omitempty"`
}

type todayJSONNext struct {
	Prayer    string `json:"prayer"`
	Time      string `json:"time"`
	Remaining string `json:"remaining"`
}

// printTodayJSON renders structured JSON output.
func printTodayJSON(eng *engine, prayers []times.Prayer, current, next *times.Prayer, now time.Time, goTimeFmt string) error {
	timings := make(map[string]string)
	for _, p := range prayers {
		timings[strings.ToLower(p.Name)] = p.Time.Format(goTimeFmt)
	}

	var out todayJSON
	out.Location.Latitude = eng.coords.Latitude
	out.Location.Longitude = eng.coords.Longitude
	out.Date = now.Format("2006-01-02")
	out.Method = eng.method.String()
	out.Madhab = eng.madhab.String()
	out.Timings = timings

	if current != nil {
		out.Current = strings.ToLower(current.Name)
	}
	if next != nil {
		remaining := times.FormatRemaining(times.TimeRemaining(*next, now))
		out.Next = &todayJSONNext{
			Prayer:    strings.ToLower(next.Name),
			Time:      next.Time.Format(goTimeFmt),
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
