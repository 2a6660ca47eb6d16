package game

import (
	"math/rand/v2"
	"time"
)

// Discovery summary:
// - Tree and bush positions are fixed at world generation; only seed
//   availability and rarity change afterwards.
// - Seed rarity depends on the bush's fixed distance-from-center band and
//   is re-rolled from the same band on every respawn.
// - Nearby/collect scans return the first qualifying entity in stored
//   order, not the geometrically nearest; callers rely on that being
//   deterministic.

type Tree struct {
	ID       int  `json:"id"`
	Position Vec2 `json:"position"`
	Size     int  `json:"size"` // 1..3
}

// TrunkCenter anchors the collision circle a little below the sprite
// origin so the canopy stays walkable.
func (t Tree) TrunkCenter() Vec2 {
	return Vec2{X: t.Position.X, Y: t.Position.Y + 20}
}

func (t Tree) TrunkRadius() float64 {
	return 8 + 4*float64(t.Size)
}

type Bush struct {
	ID       int  `json:"id"`
	Position Vec2 `json:"position"`
}

type FieldSeed struct {
	ID        int       `json:"id"`
	Type      SeedType  `json:"type"`
	Position  Vec2      `json:"position"`
	Collected bool      `json:"collected"`
	RespawnAt time.Time `json:"respawn_at"`
}

type ForestState struct {
	Trees  []Tree      `json:"trees"`
	Bushes []Bush      `json:"bushes"`
	Seeds  []FieldSeed `json:"seeds"`

	rng *rand.Rand
}

// Rarity bands: three concentric rings around the forest center, each a
// cumulative probability table over seed types evaluated against one
// uniform draw. Farther rings roll rarer seeds more often.
type rarityCut struct {
	UpTo float64
	Type SeedType
}

type rarityBand struct {
	MaxDist float64
	Cuts    []rarityCut
}

var rarityBands = []rarityBand{
	{MaxDist: 300, Cuts: []rarityCut{
		{UpTo: 0.01, Type: SeedCrystal},
		{UpTo: 0.05, Type: SeedGold},
		{UpTo: 0.20, Type: SeedSilver},
		{UpTo: 1.00, Type: SeedBasic},
	}},
	{MaxDist: 560, Cuts: []rarityCut{
		{UpTo: 0.03, Type: SeedCrystal},
		{UpTo: 0.13, Type: SeedGold},
		{UpTo: 0.43, Type: SeedSilver},
		{UpTo: 1.00, Type: SeedBasic},
	}},
	{MaxDist: 1e18, Cuts: []rarityCut{
		{UpTo: 0.08, Type: SeedCrystal},
		{UpTo: 0.30, Type: SeedGold},
		{UpTo: 0.70, Type: SeedSilver},
		{UpTo: 1.00, Type: SeedBasic},
	}},
}

func forestCenter() Vec2 {
	return Vec2{X: WorldWidth / 2, Y: WorldHeight / 2}
}

func rollRarity(rng *rand.Rand, pos Vec2) SeedType {
	dist := pos.DistanceTo(forestCenter())
	draw := rng.Float64()
	for _, band := range rarityBands {
		if dist > band.MaxDist {
			continue
		}
		for _, cut := range band.Cuts {
			if draw <= cut.UpTo {
				return cut.Type
			}
		}
		return SeedBasic
	}
	return SeedBasic
}

const worldMargin = 40.0

func randomWorldPos(rng *rand.Rand) Vec2 {
	return Vec2{
		X: worldMargin + rng.Float64()*(WorldWidth-2*worldMargin),
		Y: worldMargin + rng.Float64()*(WorldHeight-2*worldMargin),
	}
}

// GenerateForest lays out trees and bush+seed pairs outside the central
// exclusion zone. Placement is deterministic for a given rng stream.
func GenerateForest(rng *rand.Rand) ForestState {
	f := ForestState{rng: rng}
	center := forestCenter()

	for len(f.Trees) < ForestTreeCount {
		pos := randomWorldPos(rng)
		if pos.DistanceTo(center) < CenterExclusionZone {
			continue
		}
		tooClose := false
		for _, t := range f.Trees {
			if pos.DistanceTo(t.Position) < TreeSpacing {
				tooClose = true
				break
			}
		}
		if tooClose {
			continue
		}
		f.Trees = append(f.Trees, Tree{
			ID:       len(f.Trees),
			Position: pos,
			Size:     1 + rng.IntN(3),
		})
	}

	for len(f.Bushes) < ForestSeedCount {
		pos := randomWorldPos(rng)
		if pos.DistanceTo(center) < CenterExclusionZone {
			continue
		}
		blocked := false
		for _, t := range f.Trees {
			if pos.DistanceTo(t.TrunkCenter()) < t.TrunkRadius()+30 {
				blocked = true
				break
			}
		}
		for _, b := range f.Bushes {
			if pos.DistanceTo(b.Position) < BushSpacing {
				blocked = true
				break
			}
		}
		if blocked {
			continue
		}
		id := len(f.Bushes)
		f.Bushes = append(f.Bushes, Bush{ID: id, Position: pos})
		f.Seeds = append(f.Seeds, FieldSeed{
			ID:       id,
			Type:     rollRarity(rng, pos),
			Position: pos,
		})
	}

	return f
}

// EnsureRuntime rebuilds the unexported rng after a load; respawn rolls
// continue from a fresh stream seeded off the world seed.
func (f *ForestState) EnsureRuntime(seed int64) {
	if f.rng == nil {
		f.rng = newSeededRand(seed + 1)
	}
}

// Tick flips collected seeds whose respawn deadline has passed back to
// available, re-rolling rarity from the seed's fixed position.
func (f *ForestState) Tick(now time.Time) {
	for i := range f.Seeds {
		s := &f.Seeds[i]
		if !s.Collected || now.Before(s.RespawnAt) {
			continue
		}
		s.Collected = false
		s.Type = rollRarity(f.rng, s.Position)
	}
}

// CollectibleAt returns the first available seed of an unlocked type
// within CollectRadius of pos, in stored order.
func (f *ForestState) CollectibleAt(pos Vec2, unlocked map[SeedType]bool) (FieldSeed, bool) {
	return f.scanSeeds(pos, unlocked, CollectRadius)
}

// NearbySeed is the read-only hint scan; same semantics as CollectibleAt
// with the wider hint radius.
func (f *ForestState) NearbySeed(pos Vec2, unlocked map[SeedType]bool) (FieldSeed, bool) {
	return f.scanSeeds(pos, unlocked, HintRadius)
}

func (f *ForestState) scanSeeds(pos Vec2, unlocked map[SeedType]bool, radius float64) (FieldSeed, bool) {
	for _, s := range f.Seeds {
		if s.Collected || !unlocked[s.Type] {
			continue
		}
		if pos.DistanceTo(s.Position) <= radius {
			return s, true
		}
	}
	return FieldSeed{}, false
}

// Collect marks a seed collected and schedules its respawn. At most one
// seed changes per call.
func (f *ForestState) Collect(id int, now time.Time) bool {
	for i := range f.Seeds {
		s := &f.Seeds[i]
		if s.ID != id || s.Collected {
			continue
		}
		s.Collected = true
		s.RespawnAt = now.Add(SeedRespawnDelay)
		return true
	}
	return false
}

// CollidesTree reports whether a circle at pos overlaps any tree trunk.
func (f *ForestState) CollidesTree(pos Vec2, radius float64) bool {
	for _, t := range f.Trees {
		if pos.DistanceTo(t.TrunkCenter()) < radius+t.TrunkRadius() {
			return true
		}
	}
	return false
}
