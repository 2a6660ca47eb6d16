//go:build cgo

// Package gui is the raylib presentation and input adapter. It reads
// engine state, draws it, and forwards one input snapshot per frame;
// all game rules stay in internal/game.
package gui

import (
	"log/slog"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/overgrown-games/melonpatch/internal/config"
	"github.com/overgrown-games/melonpatch/internal/game"
	"github.com/overgrown-games/melonpatch/internal/store"
)

type App struct {
	cfg config.Config
	log *slog.Logger

	state           *game.GameState
	lastSave        time.Time
	selectedChicken int
	statusLine      string
	statusUntil     time.Time
}

func NewApp(cfg config.Config, log *slog.Logger) *App {
	return &App{cfg: cfg, log: log, selectedChicken: -1}
}

func (a *App) Run() error {
	now := time.Now()

	st, err := store.Load(a.cfg.SaveFile, now)
	if err != nil {
		a.log.Warn("save file unreadable, starting a new game", "file", a.cfg.SaveFile, "error", err)
	}
	if st == nil {
		seed := a.cfg.WorldSeed
		if seed == 0 {
			seed = now.UnixNano()
		}
		st = game.NewGameState(seed, now)
	}
	a.state = st
	a.lastSave = now

	rl.InitWindow(int32(a.cfg.WindowWidth), int32(a.cfg.WindowHeight), "Melon Patch")
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)

	for !rl.WindowShouldClose() {
		now = time.Now()
		dt := time.Duration(rl.GetFrameTime() * float32(time.Second))
		if dt > game.MaxTickDelta {
			dt = game.MaxTickDelta
		}

		a.state.Tick(readMovement(), now, dt)
		a.handleActions(now)
		a.maybeAutosave(now)
		a.draw(now)
	}

	if err := store.Save(a.cfg.SaveFile, a.state); err != nil {
		a.log.Error("final save failed", "error", err)
		return err
	}
	return nil
}

func (a *App) handleActions(now time.Time) {
	if rl.IsKeyPressed(rl.KeyE) || rl.IsKeyPressed(rl.KeySpace) {
		if res := a.state.Interact(now); res.Message != "" {
			a.setStatus(res.Message, now)
		}
	}
	if rl.IsKeyPressed(rl.KeyTab) {
		a.state.SwitchArea()
		a.selectedChicken = -1
	}

	for i, key := range []int32{rl.KeyOne, rl.KeyTwo, rl.KeyThree, rl.KeyFour, rl.KeyFive} {
		if rl.IsKeyPressed(key) {
			kind := game.UpgradeKinds()[i]
			if a.state.BuyUpgrade(kind) {
				a.setStatus("Upgraded "+game.UpgradeSpecFor(kind).Name, now)
			}
		}
	}
	if rl.IsKeyPressed(rl.KeySix) && a.state.BuyPlot() {
		a.setStatus("Bought a new plot", now)
	}
	if rl.IsKeyPressed(rl.KeySeven) && a.state.BuyChicken() {
		a.setStatus("Bought a new chicken", now)
	}
	unlockKeys := map[int32]game.SeedType{
		rl.KeyEight: game.SeedSilver,
		rl.KeyNine:  game.SeedGold,
		rl.KeyZero:  game.SeedCrystal,
	}
	for key, seed := range unlockKeys {
		if rl.IsKeyPressed(key) && a.state.UnlockSeedType(seed) {
			a.setStatus("Unlocked "+string(seed)+" seeds", now)
		}
	}

	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		a.state.HandleZoom(float64(wheel))
	}

	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) && a.state.Area == game.AreaFarm {
		world := rl.GetScreenToWorld2D(rl.GetMousePosition(), a.camera())
		if id, ok := a.state.ChickenAt(game.Vec2{X: float64(world.X), Y: float64(world.Y)}); ok {
			a.selectedChicken = id
		} else {
			a.selectedChicken = -1
		}
	}
	if rl.IsKeyPressed(rl.KeyU) && a.selectedChicken >= 0 {
		if a.state.UpgradeChicken(a.selectedChicken) {
			a.setStatus("Chicken upgraded", now)
		}
	}
}

func (a *App) maybeAutosave(now time.Time) {
	if now.Sub(a.lastSave) < a.cfg.AutosaveInterval {
		return
	}
	a.lastSave = now
	if err := store.Save(a.cfg.SaveFile, a.state); err != nil {
		a.log.Error("autosave failed", "error", err)
		return
	}
	a.log.Debug("autosaved", "file", a.cfg.SaveFile)
}

func (a *App) setStatus(line string, now time.Time) {
	a.statusLine = line
	a.statusUntil = now.Add(3 * time.Second)
}

func (a *App) camera() rl.Camera2D {
	return rl.Camera2D{
		Offset: rl.NewVector2(float32(a.cfg.WindowWidth)/2, float32(a.cfg.WindowHeight)/2),
		Target: rl.NewVector2(float32(a.state.Player.Position.X), float32(a.state.Player.Position.Y)),
		Zoom:   float32(a.state.Zoom),
	}
}

func readMovement() game.Input {
	return game.Input{
		Up:    rl.IsKeyDown(rl.KeyW) || rl.IsKeyDown(rl.KeyUp),
		Down:  rl.IsKeyDown(rl.KeyS) || rl.IsKeyDown(rl.KeyDown),
		Left:  rl.IsKeyDown(rl.KeyA) || rl.IsKeyDown(rl.KeyLeft),
		Right: rl.IsKeyDown(rl.KeyD) || rl.IsKeyDown(rl.KeyRight),
	}
}
