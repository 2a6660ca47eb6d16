package game

import (
	"math"
	"math/rand/v2"
)

// Vec2 is a world-space position.
type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (v Vec2) DistanceTo(o Vec2) float64 {
	dx := v.X - o.X
	dy := v.Y - o.Y
	return math.Hypot(dx, dy)
}

func newSeededRand(seed int64) *rand.Rand {
	s1 := uint64(seed)
	s2 := s1 ^ uint64(0x9e3779b97f4a7c15)
	return rand.New(rand.NewPCG(s1, s2))
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
