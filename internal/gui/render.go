//go:build cgo

package gui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/overgrown-games/melonpatch/internal/game"
)

var (
	colorForestBG = rl.NewColor(34, 72, 41, 255)
	colorFarmBG   = rl.NewColor(112, 84, 48, 255)
	colorPanel    = rl.NewColor(24, 26, 33, 220)
	colorBorder   = rl.NewColor(92, 99, 115, 255)
	colorAccent   = rl.NewColor(240, 200, 90, 255)
	colorText     = rl.NewColor(226, 229, 235, 255)
	colorCanopy   = rl.NewColor(28, 104, 52, 255)
	colorTrunk    = rl.NewColor(92, 62, 34, 255)
	colorBush     = rl.NewColor(52, 128, 66, 255)
	colorSoil     = rl.NewColor(74, 52, 32, 255)
	colorRipe     = rl.NewColor(108, 190, 76, 255)
	colorPlayer   = rl.NewColor(235, 235, 245, 255)
	colorHungry   = rl.NewColor(200, 120, 110, 255)
)

var seedColors = map[game.SeedType]rl.Color{
	game.SeedBasic:   rl.NewColor(150, 150, 150, 255),
	game.SeedSilver:  rl.NewColor(200, 205, 215, 255),
	game.SeedGold:    rl.NewColor(238, 190, 70, 255),
	game.SeedCrystal: rl.NewColor(140, 200, 250, 255),
}

var chickenColors = map[game.ChickenTier]rl.Color{
	game.ChickenBasic:  rl.NewColor(235, 230, 215, 255),
	game.ChickenFat:    rl.NewColor(220, 190, 160, 255),
	game.ChickenGolden: rl.NewColor(240, 200, 90, 255),
	game.ChickenCosmic: rl.NewColor(170, 120, 240, 255),
}

func (a *App) draw(now time.Time) {
	rl.BeginDrawing()
	if a.state.Area == game.AreaForest {
		rl.ClearBackground(colorForestBG)
	} else {
		rl.ClearBackground(colorFarmBG)
	}

	rl.BeginMode2D(a.camera())
	switch a.state.Area {
	case game.AreaForest:
		a.drawForest()
	case game.AreaFarm:
		a.drawFarm(now)
	}
	pos := a.state.Player.Position
	rl.DrawCircle(int32(pos.X), int32(pos.Y), game.PlayerRadius, colorPlayer)
	rl.EndMode2D()

	a.drawHUD(now)
	rl.EndDrawing()
}

func (a *App) drawForest() {
	for _, b := range a.state.Forest.Bushes {
		rl.DrawCircle(int32(b.Position.X), int32(b.Position.Y), 18, colorBush)
	}
	for _, s := range a.state.Forest.Seeds {
		if s.Collected {
			continue
		}
		rl.DrawCircle(int32(s.Position.X), int32(s.Position.Y-14), 6, seedColors[s.Type])
	}
	for _, t := range a.state.Forest.Trees {
		trunk := t.TrunkCenter()
		rl.DrawCircle(int32(trunk.X), int32(trunk.Y), float32(t.TrunkRadius()), colorTrunk)
		rl.DrawCircle(int32(t.Position.X), int32(t.Position.Y-10), float32(18+6*t.Size), colorCanopy)
	}
}

func (a *App) drawFarm(now time.Time) {
	for _, p := range a.state.Farm.Plots {
		x, y := int32(p.Position.X), int32(p.Position.Y)
		rl.DrawRectangle(x-40, y-40, 80, 80, colorSoil)
		rl.DrawRectangleLines(x-40, y-40, 80, 80, colorBorder)
		if !p.Planted {
			continue
		}
		if p.Progress >= 1 {
			rl.DrawCircle(x, y, 22, colorRipe)
			continue
		}
		rl.DrawRectangle(x-34, y+26, int32(68*p.Progress), 8, seedColors[p.SeedType])
		rl.DrawRectangleLines(x-34, y+26, 68, 8, colorBorder)
	}

	for _, c := range a.state.Farm.Chickens {
		x, y := int32(c.Position.X), int32(c.Position.Y)
		body := chickenColors[c.Tier]
		if !c.Fed(now) {
			body = colorHungry
		}
		rl.DrawCircle(x, y, 20, body)
		if c.ID == a.selectedChicken {
			rl.DrawCircleLines(x, y, 26, colorAccent)
		}
	}
}

func (a *App) drawHUD(now time.Time) {
	st := a.state
	panel := rl.Rectangle{X: 10, Y: 10, Width: 340, Height: 150}
	rl.DrawRectangleRounded(panel, 0.08, 8, colorPanel)
	rl.DrawRectangleRoundedLinesEx(panel, 0.08, 8, 2, colorBorder)

	lines := []string{
		fmt.Sprintf("Coins: %.0f   Melons: %d   Eggs: %.1f", st.Player.Coins, st.Player.Watermelons, st.Player.Eggs),
		fmt.Sprintf("Seeds  b:%d s:%d g:%d c:%d (cap %d)",
			st.Player.SeedInventory[game.SeedBasic],
			st.Player.SeedInventory[game.SeedSilver],
			st.Player.SeedInventory[game.SeedGold],
			st.Player.SeedInventory[game.SeedCrystal],
			st.Upgrades.SeedBagCapacity()),
		fmt.Sprintf("Area: %s   Zoom: %.1f", st.Area, st.Zoom),
		"E interact  Tab switch  1-5 upgrades",
		"6 plot  7 chicken  8-0 unlocks  U tier up",
	}
	for i, line := range lines {
		rl.DrawText(line, 24, 22+int32(i)*26, 20, colorText)
	}

	if hint := st.Hint(); hint != "" {
		drawCenteredBanner(hint, int32(a.cfg.WindowHeight)-72, colorAccent, a.cfg.WindowWidth)
	}
	if a.statusLine != "" && now.Before(a.statusUntil) {
		drawCenteredBanner(a.statusLine, int32(a.cfg.WindowHeight)-40, colorText, a.cfg.WindowWidth)
	}
}

func drawCenteredBanner(text string, y int32, clr rl.Color, windowWidth int) {
	width := rl.MeasureText(text, 22)
	rl.DrawText(text, (int32(windowWidth)-width)/2, y, 22, clr)
}
