// Package store persists the player record in a single JSON save slot.
package store

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"lifesim/internal/game"
)

// schemaVersion is the current save format. Saves without a version field
// predate versioning and are treated as version 0.
const schemaVersion = 1

const versionKey = "schema_version"

// Store owns one save slot on disk. Writes are serialized so rapid
// sequential actions cannot race on the file.
type Store struct {
	mu   sync.Mutex
	path string
	log  *slog.Logger
}

// New returns a store for the given slot path.
func New(path string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{path: path, log: logger}
}

// DefaultPath is the slot location under the user's home directory.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".life", "save.json"), nil
}

// Path returns the slot location.
func (s *Store) Path() string {
	return s.path
}

// Save writes the full record to the slot.
func (s *Store) Save(rec game.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}
	var envelope map[string]any
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return fmt.Errorf("encode record: %w", err)
	}
	envelope[versionKey] = schemaVersion

	body, err := json.MarshalIndent(envelope, "", "  ")
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create save dir: %w", err)
	}
	if err := os.WriteFile(s.path, body, 0o600); err != nil {
		return fmt.Errorf("write save: %w", err)
	}
	return nil
}

// Load reads the slot, migrating older saves forward and re-deriving the
// premium flag from its expiry. A missing or unreadable slot is reported as
// no save present; the caller falls back to a fresh record.
func (s *Store) Load(now time.Time) (game.Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	body, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.log.Warn("save slot unreadable, starting fresh", "path", s.path, "error", err)
		}
		return game.Record{}, false
	}

	var raw map[string]any
	if err := json.Unmarshal(body, &raw); err != nil {
		s.log.Warn("save slot corrupt, starting fresh", "path", s.path, "error", err)
		return game.Record{}, false
	}

	// The version field is untrusted input and must never index the
	// migrations table out of range.
	v := versionOf(raw)
	if v < 0 {
		s.log.Warn("save slot corrupt, starting fresh", "path", s.path, "version", v)
		return game.Record{}, false
	}
	for ; v < schemaVersion; v++ {
		raw = migrations[v](raw)
	}

	rec, err := decodeRecord(raw)
	if err != nil {
		s.log.Warn("save slot corrupt, starting fresh", "path", s.path, "error", err)
		return game.Record{}, false
	}

	// Expiry is evaluated at load time, not continuously during play.
	rec.HasPremium = game.PremiumActive(rec, now)
	if !rec.HasPremium {
		rec.PremiumExpiry = 0
	}
	return rec, true
}

// Wipe deletes the slot. Missing slot is not an error.
func (s *Store) Wipe() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func versionOf(raw map[string]any) int {
	v, ok := raw[versionKey].(float64)
	if !ok {
		return 0
	}
	return int(v)
}

// migrations holds one deterministic upgrade step per version increment;
// migrations[n] rewrites a version-n save into version n+1. Steps are
// additive: present fields are never altered, absent ones gain defaults.
var migrations = [schemaVersion]func(map[string]any) map[string]any{
	migrateV0,
}

// migrateV0 backfills the fields the earliest saves never carried.
func migrateV0(raw map[string]any) map[string]any {
	if id, ok := raw["id"].(string); !ok || id == "" {
		raw["id"] = uuid.NewString()
	}
	if _, ok := raw["rubles"]; !ok {
		raw["rubles"] = game.StartRubles
	}
	if _, ok := raw["hc_coins"]; !ok {
		raw["hc_coins"] = 0
	}
	if _, ok := raw["upgrades"]; !ok {
		raw["upgrades"] = map[string]any{}
	}
	if _, ok := raw["has_premium"]; !ok {
		raw["has_premium"] = false
	}
	if _, ok := raw["premium_expiry"]; !ok {
		raw["premium_expiry"] = 0
	}
	raw[versionKey] = 1
	return raw
}

func decodeRecord(raw map[string]any) (game.Record, error) {
	body, err := json.Marshal(raw)
	if err != nil {
		return game.Record{}, err
	}
	var rec game.Record
	if err := json.Unmarshal(body, &rec); err != nil {
		return game.Record{}, err
	}
	return rec, nil
}
