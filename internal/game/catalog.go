package game

import "time"

// Discovery summary:
// - All tuning values live here so simulation code stays formula-only.
// - Seed and chicken catalogs are ordered tier tables; gating and cost
//   curves read them rather than hard-coding per-tier branches.
// - World geometry constants are shared by the engine and the GUI so the
//   render adapter never invents its own distances.

const (
	WorldWidth  = 1600.0
	WorldHeight = 1200.0

	// Forest generation.
	ForestTreeCount     = 30
	ForestSeedCount     = 18
	CenterExclusionZone = 180.0
	TreeSpacing         = 60.0
	BushSpacing         = 50.0

	// Interaction distances.
	CollectRadius    = 40.0
	HintRadius       = 50.0
	FarmEntityRadius = 50.0
	PlayerRadius     = 16.0

	BasePlayerSpeed = 160.0 // world units per second

	SeedRespawnDelay = 15 * time.Second
	OfflineCap       = 24 * time.Hour
	MaxTickDelta     = 100 * time.Millisecond

	PlotCost    = 100.0
	ChickenCost = 250.0

	// Coins credited per egg before the egg-value upgrade multiplier.
	EggCoinRate = 2.0

	ZoomStep = 0.1
	ZoomMin  = 0.5
	ZoomMax  = 2.0

	StartingCoins = 50.0
)

type SeedType string

const (
	SeedBasic   SeedType = "basic"
	SeedSilver  SeedType = "silver"
	SeedGold    SeedType = "gold"
	SeedCrystal SeedType = "crystal"
)

// SeedTypeOrder lists seed types lowest rarity first.
var SeedTypeOrder = []SeedType{SeedBasic, SeedSilver, SeedGold, SeedCrystal}

// SeedTypesByRarity lists seed types highest rarity first, the order the
// engine prefers when auto-picking a seed to plant.
var SeedTypesByRarity = []SeedType{SeedCrystal, SeedGold, SeedSilver, SeedBasic}

type SeedSpec struct {
	GrowTime   time.Duration
	Yield      int
	UnlockCost float64
}

var seedCatalog = map[SeedType]SeedSpec{
	SeedBasic:   {GrowTime: 30 * time.Second, Yield: 1, UnlockCost: 0},
	SeedSilver:  {GrowTime: 60 * time.Second, Yield: 2, UnlockCost: 200},
	SeedGold:    {GrowTime: 2 * time.Minute, Yield: 4, UnlockCost: 750},
	SeedCrystal: {GrowTime: 4 * time.Minute, Yield: 9, UnlockCost: 2500},
}

func SeedSpecFor(t SeedType) SeedSpec {
	return seedCatalog[t]
}

func ValidSeedType(t SeedType) bool {
	_, ok := seedCatalog[t]
	return ok
}

type ChickenTier string

const (
	ChickenBasic  ChickenTier = "basic"
	ChickenFat    ChickenTier = "fat"
	ChickenGolden ChickenTier = "golden"
	ChickenCosmic ChickenTier = "cosmic"
)

// ChickenTierOrder is the fixed, irreversible upgrade path.
var ChickenTierOrder = []ChickenTier{ChickenBasic, ChickenFat, ChickenGolden, ChickenCosmic}

type ChickenSpec struct {
	EggsPerMinute float64
	FeedDuration  time.Duration
	// UpgradeCost is the price of upgrading INTO this tier from the one below.
	UpgradeCost float64
}

var chickenCatalog = map[ChickenTier]ChickenSpec{
	ChickenBasic:  {EggsPerMinute: 1, FeedDuration: 60 * time.Second, UpgradeCost: 0},
	ChickenFat:    {EggsPerMinute: 2.5, FeedDuration: 90 * time.Second, UpgradeCost: 400},
	ChickenGolden: {EggsPerMinute: 6, FeedDuration: 2 * time.Minute, UpgradeCost: 1500},
	ChickenCosmic: {EggsPerMinute: 15, FeedDuration: 3 * time.Minute, UpgradeCost: 6000},
}

func ChickenSpecFor(t ChickenTier) ChickenSpec {
	return chickenCatalog[t]
}

func ValidChickenTier(t ChickenTier) bool {
	_, ok := chickenCatalog[t]
	return ok
}

// NextChickenTier returns the tier one step up the order, or ok=false at
// the top of the ladder.
func NextChickenTier(t ChickenTier) (ChickenTier, bool) {
	for i, tier := range ChickenTierOrder {
		if tier == t && i+1 < len(ChickenTierOrder) {
			return ChickenTierOrder[i+1], true
		}
	}
	return "", false
}
