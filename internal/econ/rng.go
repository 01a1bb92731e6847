// Package econ implements spec.md §2's Inflation & Market Returns
// subsystem: per-trial seeded inflation draws and per-asset-class
// Gaussian market-return sampling.
package econ

import (
	"math"
	"math/rand/v2"
)

// RNG is the per-trial deterministic random source used for inflation
// draws, market returns, and Roth headroom search. Seeded from the trial
// index so that two runs with the same index are bit-identical
// (spec.md §5 Determinism), grounded on other_examples/
// JustinWhittecar-slic__main.go's per-goroutine rand.New(rand.NewPCG(...))
// worker-pool pattern — here the two PCG seed halves are derived from the
// trial index instead of rand.Uint64(), since the whole point is
// reproducibility rather than fresh entropy per goroutine.
type RNG struct {
	r         *rand.Rand
	haveSpare bool
	spare     float64
}

// NewRNG seeds a deterministic RNG from trialIndex. Spreads the index
// across both 64-bit PCG seed halves so nearby trial indices do not
// produce visibly correlated streams.
func NewRNG(trialIndex int) *RNG {
	seedHi := uint64(trialIndex)*0x9E3779B97F4A7C15 + 1
	seedLo := uint64(trialIndex)*0xBF58476D1CE4E5B9 + 1
	return &RNG{r: rand.New(rand.NewPCG(seedHi, seedLo))}
}

// Float64 returns a uniform draw in [0, 1).
func (g *RNG) Float64() float64 {
	return g.r.Float64()
}

// Normal draws from Normal(mean, stddev) via the Marsaglia polar method.
// math/rand/v2 does not expose a NormFloat64 method off rand.Rand for a
// custom-seeded source the way math/rand (v1) does, so this wraps the
// PCG-backed uniform source directly — see SPEC_FULL.md §11 for the
// stdlib-vs-library justification recorded in DESIGN.md.
func (g *RNG) Normal(mean, stddev float64) float64 {
	if g.haveSpare {
		g.haveSpare = false
		return mean + stddev*g.spare
	}
	var u, v, s float64
	for {
		u = 2*g.r.Float64() - 1
		v = 2*g.r.Float64() - 1
		s = u*u + v*v
		if s > 0 && s < 1 {
			break
		}
	}
	mul := math.Sqrt(-2 * math.Log(s) / s)
	g.spare = v * mul
	g.haveSpare = true
	return mean + stddev*u*mul
}
