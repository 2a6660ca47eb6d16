package game

import "time"

// Discovery summary:
// - Plot growth is recomputed from the planting timestamp every tick
//   (never accumulated), so irregular tick intervals and offline windows
//   produce identical curves.
// - Chicken egg output integrates only over time actually spent fed;
//   offline catch-up bounds production by the pre-catchup FedUntil.
// - Cost gating lives in the engine; farm mutators append/mutate
//   unconditionally and report what happened.

type Plot struct {
	ID        int       `json:"id"`
	Position  Vec2      `json:"position"`
	Planted   bool      `json:"planted"`
	SeedType  SeedType  `json:"seed_type,omitempty"`
	PlantedAt time.Time `json:"planted_at,omitempty"`
	Progress  float64   `json:"progress"`
	Fertility float64   `json:"fertility"`
}

type Chicken struct {
	ID           int         `json:"id"`
	Position     Vec2        `json:"position"`
	Tier         ChickenTier `json:"tier"`
	FedUntil     time.Time   `json:"fed_until"`
	EggsProduced float64     `json:"eggs_produced"`
}

func (c Chicken) Fed(now time.Time) bool {
	return now.Before(c.FedUntil)
}

type FarmState struct {
	Plots    []Plot    `json:"plots"`
	Chickens []Chicken `json:"chickens"`
}

// FarmTickResult carries the production deltas of one tick or one
// offline window; the engine applies them to the player.
type FarmTickResult struct {
	Eggs  float64
	Coins float64
}

func plotPosition(i int) Vec2 {
	col := i % 4
	row := i / 4
	return Vec2{X: 320 + float64(col)*120, Y: 420 + float64(row)*140}
}

func chickenPosition(i int) Vec2 {
	col := i % 3
	row := i / 3
	return Vec2{X: 1020 + float64(col)*110, Y: 420 + float64(row)*130}
}

// GenerateFarm starts with two plots and one hungry basic chicken on the
// fixed grid layout.
func GenerateFarm() FarmState {
	fm := FarmState{}
	for i := 0; i < 2; i++ {
		fm.Plots = append(fm.Plots, Plot{ID: i, Position: plotPosition(i), Fertility: 1})
	}
	fm.Chickens = append(fm.Chickens, Chicken{ID: 0, Position: chickenPosition(0), Tier: ChickenBasic})
	return fm
}

// growthProgress is the single growth formula shared by live ticks and
// offline catch-up: elapsed over effective grow time, clamped to [0,1].
func growthProgress(seed SeedType, fertility float64, elapsed time.Duration) float64 {
	if elapsed < 0 {
		return 0
	}
	spec := SeedSpecFor(seed)
	if spec.GrowTime <= 0 || fertility <= 0 {
		return 0
	}
	effective := spec.GrowTime.Seconds() / fertility
	return clampFloat(elapsed.Seconds()/effective, 0, 1)
}

// Tick recomputes plot growth from absolute timestamps and accrues egg
// production for fed chickens over dt. Coin conversion uses the caller's
// egg-value upgrade.
func (fm *FarmState) Tick(up Upgrades, now time.Time, dt time.Duration) FarmTickResult {
	for i := range fm.Plots {
		p := &fm.Plots[i]
		if !p.Planted {
			continue
		}
		p.Progress = growthProgress(p.SeedType, p.Fertility*up.FertilityMult(), now.Sub(p.PlantedAt))
	}

	var res FarmTickResult
	for i := range fm.Chickens {
		c := &fm.Chickens[i]
		if !c.Fed(now) {
			continue
		}
		eggs := ChickenSpecFor(c.Tier).EggsPerMinute / 60 * dt.Seconds()
		c.EggsProduced += eggs
		res.Eggs += eggs
	}
	res.Coins = res.Eggs * up.EggValueMult() * EggCoinRate
	return res
}

// Plant succeeds only when the target plot exists and is empty.
func (fm *FarmState) Plant(plotID int, seed SeedType, now time.Time) bool {
	p := fm.plot(plotID)
	if p == nil || p.Planted {
		return false
	}
	p.Planted = true
	p.SeedType = seed
	p.PlantedAt = now
	p.Progress = 0
	return true
}

// Harvest yields the seed type's configured watermelon count once the
// plot is fully grown, resetting it to empty. Anything else yields 0.
func (fm *FarmState) Harvest(plotID int) int {
	p := fm.plot(plotID)
	if p == nil || !p.Planted || p.Progress < 1 {
		return 0
	}
	yield := SeedSpecFor(p.SeedType).Yield
	p.Planted = false
	p.SeedType = ""
	p.PlantedAt = time.Time{}
	p.Progress = 0
	return yield
}

// Feed extends the chicken's fed deadline to now plus its tier feed
// duration scaled by the hunger upgrade, reporting one watermelon
// consumed. The caller must have verified melon availability.
func (fm *FarmState) Feed(chickenID int, up Upgrades, now time.Time) (consumed int, ok bool) {
	c := fm.chicken(chickenID)
	if c == nil {
		return 0, false
	}
	duration := time.Duration(float64(ChickenSpecFor(c.Tier).FeedDuration) * up.FeedDurationMult())
	c.FedUntil = now.Add(duration)
	return 1, true
}

// BuyPlot appends a plot at the next sequential id and grid slot. No cost
// gating here.
func (fm *FarmState) BuyPlot() *Plot {
	id := len(fm.Plots)
	fm.Plots = append(fm.Plots, Plot{ID: id, Position: plotPosition(id), Fertility: 1})
	return &fm.Plots[id]
}

// BuyChicken appends a hungry basic chicken at the next grid slot.
func (fm *FarmState) BuyChicken() *Chicken {
	id := len(fm.Chickens)
	fm.Chickens = append(fm.Chickens, Chicken{ID: id, Position: chickenPosition(id), Tier: ChickenBasic})
	return &fm.Chickens[id]
}

// NextTierCost reports the tier the chicken would upgrade into and its
// cost. ok is false for unknown chickens and top-tier chickens.
func (fm *FarmState) NextTierCost(chickenID int) (cost float64, next ChickenTier, ok bool) {
	c := fm.chicken(chickenID)
	if c == nil {
		return 0, "", false
	}
	next, ok = NextChickenTier(c.Tier)
	if !ok {
		return 0, "", false
	}
	return ChickenSpecFor(next).UpgradeCost, next, true
}

// UpgradeTier advances the chicken exactly one step along the tier
// order. Affordability is the engine's responsibility, checked before
// this is called.
func (fm *FarmState) UpgradeTier(chickenID int) bool {
	c := fm.chicken(chickenID)
	if c == nil {
		return false
	}
	next, ok := NextChickenTier(c.Tier)
	if !ok {
		return false
	}
	c.Tier = next
	return true
}

// OfflineCatchup settles production for the wall-clock gap since
// lastUpdate, capped at OfflineCap. Plot growth uses the same absolute
// formula as live ticks; each chicken produces only for the portion of
// the capped window during which it was still fed.
func (fm *FarmState) OfflineCatchup(up Upgrades, lastUpdate, now time.Time) FarmTickResult {
	elapsed := now.Sub(lastUpdate)
	if elapsed <= 0 {
		return FarmTickResult{}
	}
	if elapsed > OfflineCap {
		elapsed = OfflineCap
	}

	for i := range fm.Plots {
		p := &fm.Plots[i]
		if !p.Planted {
			continue
		}
		p.Progress = growthProgress(p.SeedType, p.Fertility*up.FertilityMult(), now.Sub(p.PlantedAt))
	}

	var res FarmTickResult
	for i := range fm.Chickens {
		c := &fm.Chickens[i]
		fedSeconds := clampFloat(c.FedUntil.Sub(lastUpdate).Seconds(), 0, elapsed.Seconds())
		if fedSeconds <= 0 {
			continue
		}
		eggs := ChickenSpecFor(c.Tier).EggsPerMinute / 60 * fedSeconds
		c.EggsProduced += eggs
		res.Eggs += eggs
	}
	res.Coins = res.Eggs * up.EggValueMult() * EggCoinRate
	return res
}

// NearbyPlot returns the first plot in stored order within
// FarmEntityRadius of pos.
func (fm *FarmState) NearbyPlot(pos Vec2) (*Plot, bool) {
	for i := range fm.Plots {
		if pos.DistanceTo(fm.Plots[i].Position) <= FarmEntityRadius {
			return &fm.Plots[i], true
		}
	}
	return nil, false
}

// NearbyChicken returns the first chicken in stored order within
// FarmEntityRadius of pos.
func (fm *FarmState) NearbyChicken(pos Vec2) (*Chicken, bool) {
	for i := range fm.Chickens {
		if pos.DistanceTo(fm.Chickens[i].Position) <= FarmEntityRadius {
			return &fm.Chickens[i], true
		}
	}
	return nil, false
}

func (fm *FarmState) plot(id int) *Plot {
	for i := range fm.Plots {
		if fm.Plots[i].ID == id {
			return &fm.Plots[i]
		}
	}
	return nil
}

func (fm *FarmState) chicken(id int) *Chicken {
	for i := range fm.Chickens {
		if fm.Chickens[i].ID == id {
			return &fm.Chickens[i]
		}
	}
	return nil
}
