package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/smokyabdulrahman/salat/internal/adjust"
	"github.com/smokyabdulrahman/salat/internal/cache"
	"github.com/smokyabdulrahman/salat/internal/config"
	"github.com/smokyabdulrahman/salat/internal/geo"
	"github.com/smokyabdulrahman/salat/internal/method"
	"github.com/smokyabdulrahman/salat/internal/times"
)

// engine bundles the resolved inputs and shared state a command needs to
// compute prayer times.
type engine struct {
	coords geo.Coordinates
	method method.Method
	madhab method.Madhab
	cache  *cache.Cache
	adjust *adjust.Store
}

// newEngine resolves coordinates, method, and madhab from the merged config
// and opens the cache and the adjustment store.
func newEngine(cfg *config.Config) (*engine, error) {
	if cfg.Latitude == 0 && cfg.Longitude == 0 {
		return nil, errors.New("no location configured: set latitude/longitude via flags or 'salat config set'")
	}
	coords, err := geo.New(cfg.Latitude, cfg.Longitude)
	if err != nil {
		return nil, err
	}

	m, err := method.Parse(cfg.Method)
	if err != nil {
		return nil, err
	}
	md, err := method.ParseMadhab(cfg.Madhab)
	if err != nil {
		return nil, err
	}

	// Cache init failure is non-fatal; we just skip caching.
	c, err := cache.New(cfg.CacheDir)
	if err != nil {
		c = nil
		fmt.Fprintf(os.Stderr, "warning: cache disabled: %v\n", err)
	}

	adjPath, err := config.AdjustmentsPath()
	if err != nil {
		return nil, err
	}

	return &engine{
		coords: coords,
		method: m,
		madhab: md,
		cache:  c,
		adjust: adjust.OpenStore(adjPath),
	}, nil
}

// dayTimes returns the (adjusted) prayer times for the calendar day `date`
// falls on, consulting the cache first. Cached entries hold the raw
// composition; adjustments are applied on the way out so a later offset
// change never requires recomputation.
func (e *engine) dayTimes(date time.Time) (*times.Times, error) {
	var computed *times.Times

	if e.cache != nil {
		if entry := e.cache.Get(e.coords, date, e.method, e.madhab); entry != nil {
			t := entry.Times
			computed = &t
		}
	}

	if computed == nil {
		t, err := times.Compute(e.coords, date, e.method, e.madhab)
		if err != nil {
			return nil, err
		}
		computed = t

		if e.cache != nil {
			e.cache.Put(e.coords, date, e.method, e.madhab, computed)
		}
	}

	return e.adjust.Snapshot().Apply(computed), nil
}

// selectedPrayers determines which prayers to track.
// Priority: explicit override > config > defaults.
func selectedPrayers(override string, cfg *config.Config) []string {
	raw := cfg.Prayers
	if override != "" {
		raw = override
	}
	if raw == "" {
		return times.DefaultNames
	}

	names := strings.Split(raw, ",")
	for i := range names {
		names[i] = strings.TrimSpace(names[i])
	}
	return names
}

// goTimeFormat maps the config's time_format to a Go layout string.
func goTimeFormat(cfg *config.Config) string {
	if cfg.TimeFormat == "12h" {
		return "3:04 PM"
	}
	return "15:04"
}
