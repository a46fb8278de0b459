package ranklist

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// Contribution is one event's share of a user's score.
type Contribution struct {
	EventID      uuid.UUID `json:"event_id"`
	EventTitle   string    `json:"event_title"`
	Weight       float64   `json:"weight"`
	SolveCount   uint      `json:"solve_count"`
	UpsolveCount uint      `json:"upsolve_count"`
	IsPresent    bool      `json:"is_present"`
	Points       float64   `json:"points"`
}

// scoreUser aggregates one user's score over the snapshot's events.
// Returns the score, the raw total solve count (tie-break key), and the
// per-event breakdown in event order.
func scoreUser(snap *Snapshot, userID uuid.UUID) (float64, uint, []Contribution) {
	factor := UpsolveFactor(snap.Ranklist)
	strict := snap.Ranklist.ConsiderStrictAttendance

	var total float64
	var totalSolves uint
	breakdown := make([]Contribution, 0, len(snap.Events))

	for _, we := range snap.Events {
		w := EffectiveWeight(we.Weight)
		stat := snap.Stat(we.Event.ID, userID)

		points := w * (float64(stat.SolveCount) + factor*float64(stat.UpsolveCount))
		// Strict attendance zeroes the whole event, solves included.
		if strict && !stat.IsPresent {
			points = 0
		}

		total += points
		totalSolves += stat.SolveCount
		breakdown = append(breakdown, Contribution{
			EventID:      we.Event.ID,
			EventTitle:   we.Event.Title,
			Weight:       w,
			SolveCount:   stat.SolveCount,
			UpsolveCount: stat.UpsolveCount,
			IsPresent:    stat.IsPresent,
			Points:       points,
		})
	}
	return total, totalSolves, breakdown
}

// ComputeScore computes one user's score for one ranklist. A user that is
// not attached to the ranklist is ErrNotFound, never a silent zero.
func (e *Engine) ComputeScore(ctx context.Context, userID, ranklistID uuid.UUID) (float64, error) {
	snap, err := e.Accessor.Load(ctx, ranklistID)
	if err != nil {
		return 0, err
	}
	if !snapHasUser(snap, userID) {
		return 0, fmt.Errorf("user %s not on ranklist %s: %w", userID, ranklistID, ErrNotFound)
	}
	score, _, _ := scoreUser(snap, userID)
	return score, nil
}

func snapHasUser(snap *Snapshot, userID uuid.UUID) bool {
	for _, u := range snap.Users {
		if u.ID == userID {
			return true
		}
	}
	return false
}
