package cli

import (
	"encoding/json"
	"fmt"

	"github.com/smokyabdulrahman/salat/internal/display"
	"github.com/smokyabdulrahman/salat/internal/geo"
	"github.com/spf13/cobra"
)

func newQiblaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "qibla",
		Short: "Show the qibla direction from the configured location",
		Long:  "Display the great-circle bearing from the configured location to the Kaaba in Makkah, as degrees clockwise from true north.",
		Args:  cobra.NoArgs,
		RunE:  runQibla,
	}
}

func runQibla(cmd *cobra.Command, args []string) error {
	cfg := effectiveConfig(cmd)

	if cfg.Latitude == 0 && cfg.Longitude == 0 {
		return fmt.Errorf("no location configured: set latitude/longitude via flags or 'salat config set'")
	}
	coords, err := geo.New(cfg.Latitude, cfg.Longitude)
	if err != nil {
		return err
	}

	bearing := geo.QiblaBearing(coords)
	compass := geo.CompassPoint(bearing)

	if FlagJSON {
		out := struct {
			Latitude  float64 `json:"latitude"`
			Longitude float64 `json:"longitude"`
			Bearing   float64 `json:"bearing"`
			Compass   string  `json:"compass"`
		}{coords.Latitude, coords.Longitude, bearing, compass}

		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	fmt.Println()
	fmt.Printf("  %s\n", display.Bold("Qibla Direction"))
	fmt.Println()
	fmt.Printf("  %s\n", coords.String())
	fmt.Printf("  %s from true north\n", display.Accent(fmt.Sprintf("%.1f° (%s)", bearing, compass)))
	fmt.Println()
	return nil
}
