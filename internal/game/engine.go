package game

import (
	"fmt"
	"math"
	"time"
)

type Area string

const (
	AreaForest Area = "forest"
	AreaFarm   Area = "farm"
)

type Player struct {
	Position      Vec2             `json:"position"`
	SeedInventory map[SeedType]int `json:"seed_inventory"`
	Watermelons   int              `json:"watermelons" validate:"gte=0"`
	Coins         float64          `json:"coins" validate:"gte=0"`
	Eggs          float64          `json:"eggs" validate:"gte=0"`
}

// Input is the per-tick snapshot of player intent produced by the
// adapters; the engine consumes it exactly once per tick.
type Input struct {
	Up    bool
	Down  bool
	Left  bool
	Right bool
}

// InteractResult mirrors the advisory-command model: failed interactions
// leave state untouched and just report what (if anything) happened.
type InteractResult struct {
	Handled bool
	Message string
}

// GameState is the single root of all simulation state. It is mutated in
// place by engine methods, driven sequentially by one frame loop; there
// is never a concurrent writer.
type GameState struct {
	Player        Player      `json:"player"`
	Forest        ForestState `json:"forest"`
	Farm          FarmState   `json:"farm"`
	Upgrades      Upgrades    `json:"upgrades"`
	Area          Area        `json:"area" validate:"oneof=forest farm"`
	UnlockedSeeds []SeedType  `json:"unlocked_seeds"`
	LifetimeCoins float64     `json:"lifetime_coins" validate:"gte=0"`
	LastUpdate    time.Time   `json:"last_update"`
	Zoom          float64     `json:"zoom" validate:"gte=0.5,lte=2"`
	WorldSeed     int64       `json:"world_seed"`
}

func areaCenter() Vec2 {
	return Vec2{X: WorldWidth / 2, Y: WorldHeight / 2}
}

// NewGameState generates a fresh world from the given seed.
func NewGameState(seed int64, now time.Time) *GameState {
	rng := newSeededRand(seed)
	g := &GameState{
		Player: Player{
			Position:      areaCenter(),
			SeedInventory: map[SeedType]int{},
			Coins:         StartingCoins,
		},
		Forest:        GenerateForest(rng),
		Farm:          GenerateFarm(),
		Area:          AreaFarm,
		UnlockedSeeds: []SeedType{SeedBasic},
		LastUpdate:    now,
		Zoom:          1,
		WorldSeed:     seed,
	}
	return g
}

// EnsureRuntime rebuilds non-persisted runtime pieces after a load.
func (g *GameState) EnsureRuntime() {
	if g.Player.SeedInventory == nil {
		g.Player.SeedInventory = map[SeedType]int{}
	}
	if len(g.UnlockedSeeds) == 0 {
		g.UnlockedSeeds = []SeedType{SeedBasic}
	}
	if g.Zoom == 0 {
		g.Zoom = 1
	}
	g.Forest.EnsureRuntime(g.WorldSeed)
}

func (g *GameState) unlockedSet() map[SeedType]bool {
	set := make(map[SeedType]bool, len(g.UnlockedSeeds))
	for _, t := range g.UnlockedSeeds {
		set[t] = true
	}
	return set
}

func (g *GameState) SeedUnlocked(t SeedType) bool {
	for _, u := range g.UnlockedSeeds {
		if u == t {
			return true
		}
	}
	return false
}

// Tick advances the whole simulation by dt. Movement resolves first,
// then the forest respawn pass, then farm production, whose deltas land
// on the player. dt is clamped defensively even though the frame driver
// clamps it too.
func (g *GameState) Tick(in Input, now time.Time, dt time.Duration) {
	if dt < 0 {
		dt = 0
	}
	if dt > MaxTickDelta {
		dt = MaxTickDelta
	}

	g.resolveMovement(in, dt)
	g.Forest.Tick(now)

	res := g.Farm.Tick(g.Upgrades, now, dt)
	g.Player.Eggs += res.Eggs
	g.Player.Coins += res.Coins
	g.LifetimeCoins += res.Coins

	g.LastUpdate = now
}

// resolveMovement turns the directional snapshot into a normalized step
// and applies it with an axis-slide fallback against tree trunks:
// diagonal first, then horizontal only, then vertical only, else hold.
func (g *GameState) resolveMovement(in Input, dt time.Duration) {
	dx, dy := 0.0, 0.0
	if in.Left {
		dx -= 1
	}
	if in.Right {
		dx += 1
	}
	if in.Up {
		dy -= 1
	}
	if in.Down {
		dy += 1
	}
	if dx == 0 && dy == 0 {
		return
	}
	length := math.Hypot(dx, dy)
	speed := BasePlayerSpeed * g.Upgrades.WalkSpeedMult() * dt.Seconds()
	dx = dx / length * speed
	dy = dy / length * speed

	cur := g.Player.Position
	clampPos := func(p Vec2) Vec2 {
		p.X = clampFloat(p.X, worldMargin, WorldWidth-worldMargin)
		p.Y = clampFloat(p.Y, worldMargin, WorldHeight-worldMargin)
		return p
	}

	candidates := []Vec2{
		{X: cur.X + dx, Y: cur.Y + dy},
		{X: cur.X + dx, Y: cur.Y},
		{X: cur.X, Y: cur.Y + dy},
	}
	for _, cand := range candidates {
		cand = clampPos(cand)
		if g.Area == AreaForest && g.Forest.CollidesTree(cand, PlayerRadius) {
			continue
		}
		g.Player.Position = cand
		return
	}
}

// Interact performs the single area-dependent action: collect in the
// forest; plant/harvest a nearby plot or feed a nearby chicken on the
// farm. Plots take priority over chickens.
func (g *GameState) Interact(now time.Time) InteractResult {
	switch g.Area {
	case AreaForest:
		return g.interactForest(now)
	case AreaFarm:
		return g.interactFarm(now)
	}
	return InteractResult{}
}

func (g *GameState) interactForest(now time.Time) InteractResult {
	seed, ok := g.Forest.CollectibleAt(g.Player.Position, g.unlockedSet())
	if !ok {
		return InteractResult{}
	}
	// A full bag rejects the pickup outright; the field seed stays
	// available rather than being consumed and lost.
	if g.Player.SeedInventory[seed.Type] >= g.Upgrades.SeedBagCapacity() {
		return InteractResult{Message: "Seed bag is full."}
	}
	if !g.Forest.Collect(seed.ID, now) {
		return InteractResult{}
	}
	g.Player.SeedInventory[seed.Type]++
	return InteractResult{Handled: true, Message: fmt.Sprintf("Picked up a %s seed.", seed.Type)}
}

func (g *GameState) interactFarm(now time.Time) InteractResult {
	if plot, ok := g.Farm.NearbyPlot(g.Player.Position); ok {
		if !plot.Planted {
			seed, ok := g.bestPlantableSeed()
			if !ok {
				return InteractResult{Message: "No seeds to plant."}
			}
			if !g.Farm.Plant(plot.ID, seed, now) {
				return InteractResult{}
			}
			g.Player.SeedInventory[seed]--
			return InteractResult{Handled: true, Message: fmt.Sprintf("Planted a %s seed.", seed)}
		}
		if plot.Progress >= 1 {
			yield := g.Farm.Harvest(plot.ID)
			g.Player.Watermelons += yield
			return InteractResult{Handled: true, Message: fmt.Sprintf("Harvested %d watermelons.", yield)}
		}
		return InteractResult{}
	}

	if chicken, ok := g.Farm.NearbyChicken(g.Player.Position); ok && g.Player.Watermelons >= 1 {
		consumed, fed := g.Farm.Feed(chicken.ID, g.Upgrades, now)
		if !fed {
			return InteractResult{}
		}
		g.Player.Watermelons -= consumed
		return InteractResult{Handled: true, Message: "Fed the chicken a watermelon."}
	}
	return InteractResult{}
}

// bestPlantableSeed picks the highest-rarity seed type the player both
// owns and has unlocked.
func (g *GameState) bestPlantableSeed() (SeedType, bool) {
	unlocked := g.unlockedSet()
	for _, t := range SeedTypesByRarity {
		if unlocked[t] && g.Player.SeedInventory[t] > 0 {
			return t, true
		}
	}
	return "", false
}

// BuyUpgrade deducts the next-level cost and advances the upgrade.
// Rejected (state unchanged) at max level or when unaffordable.
func (g *GameState) BuyUpgrade(k UpgradeKind) bool {
	cost, ok := g.Upgrades.NextCost(k)
	if !ok || g.Player.Coins < cost {
		return false
	}
	g.Player.Coins -= cost
	return g.Upgrades.Advance(k)
}

// BuyPlot prices the next plot linearly against the current count.
func (g *GameState) BuyPlot() bool {
	cost := PlotCost * float64(len(g.Farm.Plots)+1)
	if g.Player.Coins < cost {
		return false
	}
	g.Player.Coins -= cost
	g.Farm.BuyPlot()
	return true
}

func (g *GameState) BuyChicken() bool {
	cost := ChickenCost * float64(len(g.Farm.Chickens)+1)
	if g.Player.Coins < cost {
		return false
	}
	g.Player.Coins -= cost
	g.Farm.BuyChicken()
	return true
}

// UpgradeChicken checks affordability before any mutation: the cost and
// the tier step commit together or not at all.
func (g *GameState) UpgradeChicken(chickenID int) bool {
	cost, _, ok := g.Farm.NextTierCost(chickenID)
	if !ok || g.Player.Coins < cost {
		return false
	}
	g.Player.Coins -= cost
	return g.Farm.UpgradeTier(chickenID)
}

// UnlockSeedType appends a seed type to the unlocked list, which only
// ever grows. Rejected when unknown, already unlocked, or unaffordable.
func (g *GameState) UnlockSeedType(t SeedType) bool {
	if !ValidSeedType(t) || g.SeedUnlocked(t) {
		return false
	}
	cost := SeedSpecFor(t).UnlockCost
	if g.Player.Coins < cost {
		return false
	}
	g.Player.Coins -= cost
	g.UnlockedSeeds = append(g.UnlockedSeeds, t)
	return true
}

// SwitchArea toggles between forest and farm, recentering the player and
// discarding any in-flight movement.
func (g *GameState) SwitchArea() {
	if g.Area == AreaForest {
		g.Area = AreaFarm
	} else {
		g.Area = AreaForest
	}
	g.Player.Position = areaCenter()
}

// HandleZoom nudges the camera zoom by one step per scroll unit within
// fixed bounds.
func (g *GameState) HandleZoom(delta float64) {
	g.Zoom = clampFloat(g.Zoom+delta*ZoomStep, ZoomMin, ZoomMax)
}

// ChickenAt resolves a world-space point (already inverse-projected by
// the adapter) to a chicken id for selection.
func (g *GameState) ChickenAt(world Vec2) (int, bool) {
	for _, c := range g.Farm.Chickens {
		if world.DistanceTo(c.Position) <= 30 {
			return c.ID, true
		}
	}
	return 0, false
}

// Hint projects the nearest available action into a UI string. Pure
// read; recomputed each frame by the adapters.
func (g *GameState) Hint() string {
	switch g.Area {
	case AreaForest:
		seed, ok := g.Forest.NearbySeed(g.Player.Position, g.unlockedSet())
		if !ok {
			return ""
		}
		if g.Player.SeedInventory[seed.Type] >= g.Upgrades.SeedBagCapacity() {
			return "Seed bag is full"
		}
		return fmt.Sprintf("Collect %s seed", seed.Type)
	case AreaFarm:
		if plot, ok := g.Farm.NearbyPlot(g.Player.Position); ok {
			switch {
			case !plot.Planted:
				if _, has := g.bestPlantableSeed(); has {
					return "Plant a seed"
				}
				return ""
			case plot.Progress >= 1:
				return "Harvest watermelons"
			default:
				return fmt.Sprintf("Growing... %d%%", int(plot.Progress*100))
			}
		}
		if _, ok := g.Farm.NearbyChicken(g.Player.Position); ok {
			if g.Player.Watermelons >= 1 {
				return "Feed chicken"
			}
			return "Chicken wants a watermelon"
		}
	}
	return ""
}

// ApplyOfflineCatchup settles farm production against the stored
// LastUpdate and stamps the state current. Callers apply this exactly
// once per load.
func (g *GameState) ApplyOfflineCatchup(now time.Time) FarmTickResult {
	res := g.Farm.OfflineCatchup(g.Upgrades, g.LastUpdate, now)
	g.Player.Eggs += res.Eggs
	g.Player.Coins += res.Coins
	g.LifetimeCoins += res.Coins
	g.LastUpdate = now
	return res
}
