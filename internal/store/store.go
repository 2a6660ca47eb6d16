// Package store persists the whole game state as one versioned JSON
// blob and handles the tagged export/import boundary.
package store

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/overgrown-games/melonpatch/internal/game"
)

const (
	DefaultSaveFile = "melonpatch-save.json"

	formatVersion = 1

	// ExportTag prefixes every export blob; imports without it are
	// rejected before any parsing.
	ExportTag = "MELONPATCH1:"
)

var saveFilePattern = regexp.MustCompile(`^[A-Za-z0-9._-]+\.json$`)

type SavedGame struct {
	FormatVersion int            `json:"format_version"`
	SaveID        string         `json:"save_id"`
	SavedAt       time.Time      `json:"saved_at"`
	Game          game.GameState `json:"game"`
}

var validate = validator.New()

// ValidateSavePath restricts save files to bare .json filenames in the
// working directory; anything with a path component is rejected.
func ValidateSavePath(path string) error {
	if !saveFilePattern.MatchString(path) {
		return fmt.Errorf("invalid save file name %q", path)
	}
	return nil
}

// Save writes the full state with a refreshed timestamp. The caller's
// state is captured verbatim; only the envelope changes per save.
func Save(path string, g *game.GameState) error {
	if err := ValidateSavePath(path); err != nil {
		return err
	}
	payload := SavedGame{
		FormatVersion: formatVersion,
		SaveID:        uuid.NewString(),
		SavedAt:       time.Now().UTC(),
		Game:          *g,
	}
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("encode save: %w", err)
	}
	return os.WriteFile(path, data, 0o600)
}

// Load reads a save and applies offline catch-up exactly once, using
// the timestamp stored in the blob before stamping it to now. A missing
// file returns (nil, nil): the caller starts a new game. A malformed
// file returns an error; the caller logs it and starts a new game.
func Load(path string, now time.Time) (*game.GameState, error) {
	if err := ValidateSavePath(path); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read save: %w", err)
	}
	return restore(data, now)
}

// Export packages the current state as an opaque tagged blob suitable
// for copy/paste transfer.
func Export(g *game.GameState) (string, error) {
	payload := SavedGame{
		FormatVersion: formatVersion,
		SaveID:        uuid.NewString(),
		SavedAt:       time.Now().UTC(),
		Game:          *g,
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("encode export: %w", err)
	}
	return ExportTag + base64.StdEncoding.EncodeToString(data), nil
}

// Import accepts only blobs bearing the export tag. Rejection leaves
// the caller's state untouched; the returned error is user-facing.
func Import(blob string, now time.Time) (*game.GameState, error) {
	blob = strings.TrimSpace(blob)
	if !strings.HasPrefix(blob, ExportTag) {
		return nil, fmt.Errorf("not a Melon Patch export")
	}
	data, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(blob, ExportTag))
	if err != nil {
		return nil, fmt.Errorf("corrupt export blob")
	}
	return restore(data, now)
}

func restore(data []byte, now time.Time) (*game.GameState, error) {
	var payload SavedGame
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("parse save: %w", err)
	}
	if payload.FormatVersion != formatVersion {
		return nil, fmt.Errorf("unsupported save format %d", payload.FormatVersion)
	}
	g := payload.Game
	if err := checkState(&g); err != nil {
		return nil, err
	}
	g.EnsureRuntime()
	g.ApplyOfflineCatchup(now)
	return &g, nil
}

// checkState enforces structural invariants on restored state: bounded
// zoom, known area, non-negative resources, known tiers and types.
func checkState(g *game.GameState) error {
	if err := validate.Struct(g); err != nil {
		return fmt.Errorf("invalid save state: %w", err)
	}
	for t, n := range g.Player.SeedInventory {
		if !game.ValidSeedType(t) {
			return fmt.Errorf("invalid save state: unknown seed type %q", t)
		}
		if n < 0 {
			return fmt.Errorf("invalid save state: negative %s seed count", t)
		}
	}
	for _, t := range g.UnlockedSeeds {
		if !game.ValidSeedType(t) {
			return fmt.Errorf("invalid save state: unknown unlocked type %q", t)
		}
	}
	for _, c := range g.Farm.Chickens {
		if !game.ValidChickenTier(c.Tier) {
			return fmt.Errorf("invalid save state: unknown chicken tier %q", c.Tier)
		}
	}
	for _, p := range g.Farm.Plots {
		if p.Planted && !game.ValidSeedType(p.SeedType) {
			return fmt.Errorf("invalid save state: plot %d planted with unknown seed", p.ID)
		}
	}
	return nil
}
