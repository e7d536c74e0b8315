// Package adjust applies bounded per-prayer minute offsets on top of
// computed prayer times. Only the five ordinal prayers are adjustable;
// sunrise and the derived night markers are informational and never move.
//
// The Store persists offsets as JSON and serializes writers behind a mutex;
// reads get a consistent snapshot. Persistence is fire-and-forget: a failed
// write is logged and retried on the next write, never surfaced to the
// calculation pipeline.
package adjust

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/smokyabdulrahman/salat/internal/times"
)

// Limit bounds a single adjustment to +-30 minutes. Out-of-range requests
// saturate silently.
const Limit = 30

// Prayer identifies one of the five ordinal prayers — the only key space
// adjustments (and downstream notification schedulers) operate on.
type Prayer int

const (
	Fajr Prayer = iota
	Dhuhr
	Asr
	Maghrib
	Isha
)

// Prayers lists the ordinal prayers in daily order.
var Prayers = []Prayer{Fajr, Dhuhr, Asr, Maghrib, Isha}

// String returns the prayer's display name.
func (p Prayer) String() string {
	switch p {
	case Fajr:
		return "Fajr"
	case Dhuhr:
		return "Dhuhr"
	case Asr:
		return "Asr"
	case Maghrib:
		return "Maghrib"
	case Isha:
		return "Isha"
	default:
		return fmt.Sprintf("prayer(%d)", int(p))
	}
}

// ParsePrayer resolves a display name into an ordinal Prayer, ignoring
// case. Sunrise/Imsak/Midnight and the thirds are deliberately not
// parseable: they are derived markers, not adjustable obligations.
func ParsePrayer(s string) (Prayer, error) {
	for _, p := range Prayers {
		if strings.EqualFold(p.String(), s) {
			return p, nil
		}
	}
	return 0, fmt.Errorf("unknown adjustable prayer %q (valid: Fajr, Dhuhr, Asr, Maghrib, Isha)", s)
}

// Map carries one offset in minutes per ordinal prayer. A Map produced by
// this package is always fully populated: every key present, default 0.
type Map map[Prayer]int

// NewMap returns a fully populated zero map.
func NewMap() Map {
	m := make(Map, len(Prayers))
	for _, p := range Prayers {
		m[p] = 0
	}
	return m
}

// clone returns an independent copy.
func (m Map) clone() Map {
	out := make(Map, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// IsZero reports whether every offset is 0.
func (m Map) IsZero() bool {
	for _, v := range m {
		if v != 0 {
			return false
		}
	}
	return true
}

// Apply returns a new Times with each ordinal prayer shifted by its offset.
// The input is never mutated; derived markers pass through untouched.
func (m Map) Apply(t *times.Times) *times.Times {
	out := *t
	out.Fajr = shift(t.Fajr, m[Fajr])
	out.Dhuhr = shift(t.Dhuhr, m[Dhuhr])
	out.Asr = shift(t.Asr, m[Asr])
	out.Maghrib = shift(t.Maghrib, m[Maghrib])
	out.Isha = shift(t.Isha, m[Isha])
	return &out
}

func shift(t time.Time, minutes int) time.Time {
	return t.Add(time.Duration(minutes) * time.Minute)
}

// clampMinutes saturates an offset into [-Limit, Limit].
func clampMinutes(minutes int) int {
	if minutes > Limit {
		return Limit
	}
	if minutes < -Limit {
		return -Limit
	}
	return minutes
}

// Store owns the persisted adjustment map. Writers are serialized; readers
// always see a fully populated snapshot.
type Store struct {
	mu   sync.RWMutex
	path string
	m    Map
	subs []chan struct{}
}

// persisted is the on-disk JSON shape, keyed by prayer name so the file
// stays human-editable.
type persisted map[string]int

// OpenStore loads the adjustment store at path, creating a zeroed map when
// the file is missing or unreadable. A corrupt or partial file never
// produces a partially populated map: missing keys default to 0, values are
// re-clamped on load.
func OpenStore(path string) *Store {
	s := &Store{path: path, m: NewMap()}

	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Warn().Err(err).Str("path", path).Msg("could not read adjustments, starting from defaults")
		}
		return s
	}

	var raw persisted
	if err := json.Unmarshal(data, &raw); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("corrupt adjustments file, starting from defaults")
		return s
	}

	for _, p := range Prayers {
		if v, ok := raw[p.String()]; ok {
			s.m[p] = clampMinutes(v)
		}
	}
	return s
}

// Get returns the stored offset for one prayer.
func (s *Store) Get(p Prayer) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.m[p]
}

// Snapshot returns a copy of the full map, safe to hold across writes.
func (s *Store) Snapshot() Map {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.m.clone()
}

// Set stores an offset for one prayer, clamped to [-Limit, Limit], persists
// the map best-effort, and notifies subscribers. The clamped value that was
// actually stored is returned.
func (s *Store) Set(p Prayer, minutes int) int {
	clamped := clampMinutes(minutes)

	s.mu.Lock()
	s.m[p] = clamped
	snapshot := s.m.clone()
	s.mu.Unlock()

	s.persist(snapshot)
	s.notify()
	return clamped
}

// Reset zeroes every offset, persists, and notifies subscribers.
func (s *Store) Reset() {
	s.mu.Lock()
	s.m = NewMap()
	snapshot := s.m.clone()
	s.mu.Unlock()

	s.persist(snapshot)
	s.notify()
}

// Subscribe returns a channel that receives a signal whenever the
// adjustments change. The signal carries no payload; subscribers re-read
// the store. Slow subscribers miss intermediate signals but always see the
// latest state on their next read.
func (s *Store) Subscribe() <-chan struct{} {
	ch := make(chan struct{}, 1)
	s.mu.Lock()
	s.subs = append(s.subs, ch)
	s.mu.Unlock()
	return ch
}

// notify signals every subscriber without blocking on any of them.
func (s *Store) notify() {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, ch := range s.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// persist writes the map to disk. Failures are logged, never returned: the
// next Set retries with the then-current state anyway.
func (s *Store) persist(m Map) {
	raw := make(persisted, len(m))
	for p, v := range m {
		raw[p.String()] = v
	}

	data, err := json.MarshalIndent(raw, "", "  ")
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal adjustments")
		return
	}
	data = append(data, '\n')

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		log.Error().Err(err).Str("path", s.path).Msg("failed to create adjustments directory")
		return
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		log.Error().Err(err).Str("path", s.path).Msg("failed to write adjustments")
	}
}
