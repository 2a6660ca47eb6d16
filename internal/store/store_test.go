package store

import (
	"math"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/overgrown-games/melonpatch/internal/game"
)

func withTempCWD(t *testing.T) {
	t.Helper()
	orig, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}

	tmp := t.TempDir()
	if err := os.Chdir(tmp); err != nil {
		t.Fatalf("chdir temp: %v", err)
	}

	t.Cleanup(func() {
		_ = os.Chdir(orig)
	})
}

func TestValidateSavePath(t *testing.T) {
	allowed := []string{DefaultSaveFile, "slot-2.json", "My_Save.1.json"}
	for _, path := range allowed {
		if err := ValidateSavePath(path); err != nil {
			t.Fatalf("expected allowed path %q, got error: %v", path, err)
		}
	}

	rejected := []string{
		"/tmp/melonpatch-save.json",
		"../melonpatch-save.json",
		"nested/melonpatch-save.json",
		"melonpatch-save.txt",
		"melon patch.json",
		"",
	}
	for _, path := range rejected {
		if err := ValidateSavePath(path); err == nil {
			t.Fatalf("expected path %q to be rejected", path)
		}
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	withTempCWD(t)

	now := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	g := game.NewGameState(7, now)
	g.Player.Coins = 323.5
	g.Player.SeedInventory[game.SeedBasic] = 4
	if !g.UnlockSeedType(game.SeedSilver) {
		t.Fatalf("unlock silver before saving")
	}

	if err := Save(DefaultSaveFile, g); err != nil {
		t.Fatalf("save: %v", err)
	}

	info, err := os.Stat(DefaultSaveFile)
	if err != nil {
		t.Fatalf("stat save: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Fatalf("save file perms: got %v want 0600", info.Mode().Perm())
	}

	loaded, err := Load(DefaultSaveFile, now)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded == nil {
		t.Fatalf("load returned no state for an existing file")
	}
	if loaded.Player.Coins != g.Player.Coins {
		t.Fatalf("coins: got %f want %f", loaded.Player.Coins, g.Player.Coins)
	}
	if loaded.Player.SeedInventory[game.SeedBasic] != 4 {
		t.Fatalf("inventory lost in round trip: %v", loaded.Player.SeedInventory)
	}
	if !loaded.SeedUnlocked(game.SeedSilver) {
		t.Fatalf("unlocked seeds lost in round trip")
	}
	if !loaded.LastUpdate.Equal(now) {
		t.Fatalf("load did not stamp LastUpdate: %v", loaded.LastUpdate)
	}
}

func TestLoadMissingFileStartsFresh(t *testing.T) {
	withTempCWD(t)

	g, err := Load(DefaultSaveFile, time.Now())
	if err != nil {
		t.Fatalf("missing save should not error: %v", err)
	}
	if g != nil {
		t.Fatalf("missing save should return nil state")
	}
}

func TestLoadRejectsMalformedSave(t *testing.T) {
	withTempCWD(t)

	if err := os.WriteFile(DefaultSaveFile, []byte("{not json"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(DefaultSaveFile, time.Now()); err == nil {
		t.Fatalf("malformed save accepted")
	}
}

func TestLoadRejectsUnknownFormatVersion(t *testing.T) {
	withTempCWD(t)

	blob := `{"format_version": 99, "game": {"area": "farm", "zoom": 1}}`
	if err := os.WriteFile(DefaultSaveFile, []byte(blob), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(DefaultSaveFile, time.Now()); err == nil {
		t.Fatalf("future format version accepted")
	}
}

func TestLoadAppliesOfflineCatchup(t *testing.T) {
	withTempCWD(t)

	start := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	g := game.NewGameState(7, start)
	g.Farm.Chickens[0].FedUntil = start.Add(60 * time.Second)
	if err := Save(DefaultSaveFile, g); err != nil {
		t.Fatalf("save: %v", err)
	}

	later := start.Add(2 * time.Hour)
	loaded, err := Load(DefaultSaveFile, later)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	// One minute of fed time at one egg per minute.
	if math.Abs(loaded.Player.Eggs-1.0) > 1e-9 {
		t.Fatalf("offline eggs: got %f want 1.0", loaded.Player.Eggs)
	}
	if !loaded.LastUpdate.Equal(later) {
		t.Fatalf("catchup did not stamp LastUpdate")
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	now := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	g := game.NewGameState(11, now)
	g.Player.Watermelons = 6

	blob, err := Export(g)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if !strings.HasPrefix(blob, ExportTag) {
		t.Fatalf("export blob missing tag: %q", blob[:20])
	}

	imported, err := Import(blob, now)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if imported.Player.Watermelons != 6 || imported.WorldSeed != 11 {
		t.Fatalf("import round trip lost state: melons=%d seed=%d", imported.Player.Watermelons, imported.WorldSeed)
	}
}

func TestImportRejectsBadBlobs(t *testing.T) {
	now := time.Now()

	if _, err := Import("SOMETHINGELSE1:abcd", now); err == nil {
		t.Fatalf("blob without the export tag accepted")
	}
	if _, err := Import(ExportTag+"%%%not base64%%%", now); err == nil {
		t.Fatalf("non-base64 blob accepted")
	}
}

func TestRestoreRejectsTamperedState(t *testing.T) {
	withTempCWD(t)

	now := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	g := game.NewGameState(3, now)

	cases := []struct {
		name   string
		mutate func(*game.GameState)
	}{
		{"negative coins", func(g *game.GameState) { g.Player.Coins = -10 }},
		{"zoom out of range", func(g *game.GameState) { g.Zoom = 9 }},
		{"unknown area", func(g *game.GameState) { g.Area = "dungeon" }},
		{"unknown chicken tier", func(g *game.GameState) { g.Farm.Chickens[0].Tier = "dodo" }},
		{"negative seed count", func(g *game.GameState) { g.Player.SeedInventory[game.SeedBasic] = -1 }},
		{"unknown unlocked type", func(g *game.GameState) { g.UnlockedSeeds = append(g.UnlockedSeeds, "mango") }},
	}
	for _, tc := range cases {
		tampered := *g
		tampered.Player.SeedInventory = map[game.SeedType]int{}
		tampered.UnlockedSeeds = []game.SeedType{game.SeedBasic}
		tampered.Farm.Chickens = append([]game.Chicken(nil), g.Farm.Chickens...)
		tc.mutate(&tampered)

		blob, err := Export(&tampered)
		if err != nil {
			t.Fatalf("%s: export: %v", tc.name, err)
		}
		if _, err := Import(blob, now); err == nil {
			t.Fatalf("%s: tampered state accepted", tc.name)
		}
	}
}
