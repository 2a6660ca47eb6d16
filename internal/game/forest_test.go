package game

import (
	"reflect"
	"testing"
	"time"
)

func allUnlocked() map[SeedType]bool {
	set := map[SeedType]bool{}
	for _, t := range SeedTypeOrder {
		set[t] = true
	}
	return set
}

func TestGenerateForestDeterministic(t *testing.T) {
	a := GenerateForest(newSeededRand(42))
	b := GenerateForest(newSeededRand(42))

	if !reflect.DeepEqual(a.Trees, b.Trees) {
		t.Fatalf("tree layout differs for identical seeds")
	}
	if !reflect.DeepEqual(a.Seeds, b.Seeds) {
		t.Fatalf("seed layout differs for identical seeds")
	}
}

func TestGenerateForestRespectsExclusionZone(t *testing.T) {
	f := GenerateForest(newSeededRand(7))
	center := forestCenter()

	if len(f.Trees) != ForestTreeCount {
		t.Fatalf("expected %d trees, got %d", ForestTreeCount, len(f.Trees))
	}
	if len(f.Seeds) != ForestSeedCount || len(f.Bushes) != ForestSeedCount {
		t.Fatalf("expected %d bush+seed pairs, got %d/%d", ForestSeedCount, len(f.Bushes), len(f.Seeds))
	}
	for _, tr := range f.Trees {
		if tr.Position.DistanceTo(center) < CenterExclusionZone {
			t.Fatalf("tree %d inside exclusion zone", tr.ID)
		}
		if tr.Size < 1 || tr.Size > 3 {
			t.Fatalf("tree %d has size %d outside 1..3", tr.ID, tr.Size)
		}
	}
	for _, s := range f.Seeds {
		if s.Position.DistanceTo(center) < CenterExclusionZone {
			t.Fatalf("seed %d inside exclusion zone", s.ID)
		}
		if !ValidSeedType(s.Type) {
			t.Fatalf("seed %d has invalid type %q", s.ID, s.Type)
		}
		if s.Collected {
			t.Fatalf("seed %d spawned collected", s.ID)
		}
	}
}

func TestCollectMarksSeedAndSchedulesRespawn(t *testing.T) {
	f := GenerateForest(newSeededRand(3))
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	target := f.Seeds[0]
	got, ok := f.CollectibleAt(target.Position, allUnlocked())
	if !ok || got.ID != target.ID {
		t.Fatalf("expected to find seed %d at its own position", target.ID)
	}
	if !f.Collect(got.ID, now) {
		t.Fatalf("collect failed")
	}

	s := f.Seeds[0]
	if !s.Collected {
		t.Fatalf("seed not marked collected")
	}
	if !s.RespawnAt.Equal(now.Add(SeedRespawnDelay)) {
		t.Fatalf("respawn deadline: got %v want %v", s.RespawnAt, now.Add(SeedRespawnDelay))
	}

	// A second collect of the same seed is refused.
	if f.Collect(got.ID, now) {
		t.Fatalf("expected already-collected seed to refuse collection")
	}
}

func TestTickRespawnsDueSeedsOnly(t *testing.T) {
	f := GenerateForest(newSeededRand(9))
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	f.Collect(f.Seeds[0].ID, now)
	f.Collect(f.Seeds[1].ID, now.Add(10*time.Second))

	f.Tick(now.Add(SeedRespawnDelay))
	if f.Seeds[0].Collected {
		t.Fatalf("due seed did not respawn")
	}
	if !ValidSeedType(f.Seeds[0].Type) {
		t.Fatalf("respawned seed re-rolled to invalid type %q", f.Seeds[0].Type)
	}
	if !f.Seeds[1].Collected {
		t.Fatalf("not-yet-due seed respawned early")
	}
}

func TestCollectibleAtFiltersLockedTypes(t *testing.T) {
	f := GenerateForest(newSeededRand(5))
	f.Seeds[0].Type = SeedCrystal

	onlyBasic := map[SeedType]bool{SeedBasic: true}
	if s, ok := f.CollectibleAt(f.Seeds[0].Position, onlyBasic); ok && s.ID == f.Seeds[0].ID {
		t.Fatalf("locked crystal seed was collectible")
	}
	if _, ok := f.CollectibleAt(f.Seeds[0].Position, allUnlocked()); !ok {
		t.Fatalf("unlocked seed not collectible")
	}
}

func TestCollectibleAtRadius(t *testing.T) {
	f := GenerateForest(newSeededRand(11))
	pos := f.Seeds[0].Position
	far := Vec2{X: pos.X + CollectRadius + 1, Y: pos.Y}

	// Guard against another seed happening to sit near the probe point.
	lone := ForestState{Seeds: []FieldSeed{f.Seeds[0]}}
	if _, ok := lone.CollectibleAt(far, allUnlocked()); ok {
		t.Fatalf("seed collectible beyond radius")
	}
	near := Vec2{X: pos.X + CollectRadius - 1, Y: pos.Y}
	if _, ok := lone.CollectibleAt(near, allUnlocked()); !ok {
		t.Fatalf("seed not collectible inside radius")
	}
}

func TestCollidesTreeUsesTrunkAnchor(t *testing.T) {
	f := ForestState{Trees: []Tree{{ID: 0, Position: Vec2{X: 500, Y: 500}, Size: 2}}}
	trunk := Vec2{X: 500, Y: 520}

	if !f.CollidesTree(trunk, 1) {
		t.Fatalf("expected collision at trunk center")
	}
	if f.CollidesTree(Vec2{X: 500, Y: 500 - 40}, 1) {
		t.Fatalf("expected canopy area above trunk to stay walkable")
	}
	edge := Vec2{X: trunk.X + f.Trees[0].TrunkRadius() + 2, Y: trunk.Y}
	if f.CollidesTree(edge, 1) {
		t.Fatalf("expected no collision just past trunk radius")
	}
}

func TestRarityRollHonoursBandTables(t *testing.T) {
	rng := newSeededRand(1)
	counts := map[SeedType]int{}
	outer := Vec2{X: worldMargin, Y: worldMargin} // far from center
	for i := 0; i < 2000; i++ {
		counts[rollRarity(rng, outer)]++
	}
	// Outer band: 8% crystal, so 2000 draws should see plenty of each.
	for _, tp := range SeedTypeOrder {
		if counts[tp] == 0 {
			t.Fatalf("outer band never rolled %s in 2000 draws: %v", tp, counts)
		}
	}
	if counts[SeedBasic] < counts[SeedCrystal] {
		t.Fatalf("expected basic to dominate crystal in outer band: %v", counts)
	}
}
