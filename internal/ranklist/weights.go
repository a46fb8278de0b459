package ranklist

import (
	"math"

	"github.com/progclub/clubhub/internal/models"
)

const (
	// DefaultWeight applies when an event pairing carries no usable weight.
	DefaultWeight = 1.0
	// DefaultUpsolveFactor is the fraction of credit an upsolve earns
	// relative to an in-contest solve.
	DefaultUpsolveFactor = 0.25
)

// EffectiveWeight returns the stored pair weight, falling back to the
// default when unset, negative or non-finite. A stored zero is a valid
// weight and is returned as-is.
func EffectiveWeight(w *float64) float64 {
	if w == nil || math.IsNaN(*w) || math.IsInf(*w, 0) || *w < 0 {
		return DefaultWeight
	}
	return *w
}

// UpsolveFactor returns the ranklist's upsolve factor, falling back to the
// default when unset or outside [0,1]. A stored zero means upsolves earn
// nothing. Misconfiguration here is tolerated rather than surfaced, weight
// is optional configuration.
func UpsolveFactor(rl models.Ranklist) float64 {
	if rl.UpsolveWeight == nil {
		return DefaultUpsolveFactor
	}
	u := *rl.UpsolveWeight
	if math.IsNaN(u) || u < 0 || u > 1 {
		return DefaultUpsolveFactor
	}
	return u
}
