package game

import "math"

type UpgradeKind int

const (
	UpgradeSeedBag UpgradeKind = iota
	UpgradeWalkSpeed
	UpgradePlotFertility
	UpgradeFeedDuration
	UpgradeEggValue
	upgradeKindCount
)

func UpgradeKinds() []UpgradeKind {
	return []UpgradeKind{
		UpgradeSeedBag,
		UpgradeWalkSpeed,
		UpgradePlotFertility,
		UpgradeFeedDuration,
		UpgradeEggValue,
	}
}

type UpgradeSpec struct {
	Name     string
	Base     float64
	Effect   float64 // value gained per level
	BaseCost float64
	CostMult float64
	MaxLevel int
}

var upgradeCatalog = [upgradeKindCount]UpgradeSpec{
	UpgradeSeedBag:       {Name: "Seed Bag", Base: 10, Effect: 5, BaseCost: 50, CostMult: 1.6, MaxLevel: 8},
	UpgradeWalkSpeed:     {Name: "Walk Speed", Base: 1.0, Effect: 0.15, BaseCost: 75, CostMult: 1.7, MaxLevel: 6},
	UpgradePlotFertility: {Name: "Fertility", Base: 1.0, Effect: 0.25, BaseCost: 120, CostMult: 1.8, MaxLevel: 8},
	UpgradeFeedDuration:  {Name: "Hearty Feed", Base: 1.0, Effect: 0.3, BaseCost: 90, CostMult: 1.7, MaxLevel: 6},
	UpgradeEggValue:      {Name: "Egg Value", Base: 1.0, Effect: 0.5, BaseCost: 150, CostMult: 1.8, MaxLevel: 10},
}

func UpgradeSpecFor(k UpgradeKind) UpgradeSpec {
	if k < 0 || k >= upgradeKindCount {
		return UpgradeSpec{}
	}
	return upgradeCatalog[k]
}

// Upgrades stores an explicit integer level per upgrade. Effective values
// are always derived from the level, never the other way around, so no
// floating-point inversion can drift a level.
type Upgrades struct {
	Levels [upgradeKindCount]int `json:"levels"`
}

func (u Upgrades) Level(k UpgradeKind) int {
	if k < 0 || k >= upgradeKindCount {
		return 0
	}
	return u.Levels[k]
}

// Value is the effective magnitude of an upgrade: base + level*effect.
func (u Upgrades) Value(k UpgradeKind) float64 {
	spec := UpgradeSpecFor(k)
	return spec.Base + float64(u.Level(k))*spec.Effect
}

// NextCost prices the next level as baseCost * costMult^level.
// ok is false when the upgrade is already at max level.
func (u Upgrades) NextCost(k UpgradeKind) (float64, bool) {
	if k < 0 || k >= upgradeKindCount {
		return 0, false
	}
	spec := upgradeCatalog[k]
	lvl := u.Levels[k]
	if lvl >= spec.MaxLevel {
		return 0, false
	}
	return spec.BaseCost * math.Pow(spec.CostMult, float64(lvl)), true
}

// Advance adds one level, refusing past max level.
func (u *Upgrades) Advance(k UpgradeKind) bool {
	if k < 0 || k >= upgradeKindCount {
		return false
	}
	if u.Levels[k] >= upgradeCatalog[k].MaxLevel {
		return false
	}
	u.Levels[k]++
	return true
}

func (u Upgrades) SeedBagCapacity() int {
	return int(u.Value(UpgradeSeedBag))
}

func (u Upgrades) WalkSpeedMult() float64 {
	return u.Value(UpgradeWalkSpeed)
}

func (u Upgrades) FertilityMult() float64 {
	return u.Value(UpgradePlotFertility)
}

func (u Upgrades) FeedDurationMult() float64 {
	return u.Value(UpgradeFeedDuration)
}

func (u Upgrades) EggValueMult() float64 {
	return u.Value(UpgradeEggValue)
}
