package ranklist

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/progclub/clubhub/internal/metrics"
	"github.com/progclub/clubhub/internal/models"
	"gorm.io/gorm"
)

// Engine computes ranklist standings from authoritative solve stats. The
// cached per-user score column is only ever written through PersistScores.
type Engine struct {
	Accessor Accessor
	DB       *gorm.DB // only needed for PersistScores
}

// Standing is one row of a materialized leaderboard.
type Standing struct {
	Rank        int            `json:"rank"`
	User        models.User    `json:"user"`
	Score       float64        `json:"score"`
	TotalSolves uint           `json:"total_solves"`
	Breakdown   []Contribution `json:"breakdown"`
}

// Materialize scores every attached user and returns the ordered
// leaderboard. Pure read: recomputed fresh on every call, identical output
// for an unchanged data snapshot.
//
// Order: score desc, then total solve count desc, then name asc. Rank is
// competition-style: rows with equal score and equal solve count share a
// rank, the next distinct row resumes at its position.
func (e *Engine) Materialize(ctx context.Context, ranklistID uuid.UUID) ([]Standing, error) {
	start := time.Now()
	snap, err := e.Accessor.Load(ctx, ranklistID)
	if err != nil {
		return nil, err
	}

	standings := make([]Standing, 0, len(snap.Users))
	for _, u := range snap.Users {
		score, solves, breakdown := scoreUser(snap, u.ID)
		standings = append(standings, Standing{
			User:        u,
			Score:       score,
			TotalSolves: solves,
			Breakdown:   breakdown,
		})
	}

	// Stable so fully-tied rows keep the accessor's order across calls.
	sort.SliceStable(standings, func(i, j int) bool {
		if standings[i].Score != standings[j].Score {
			return standings[i].Score > standings[j].Score
		}
		if standings[i].TotalSolves != standings[j].TotalSolves {
			return standings[i].TotalSolves > standings[j].TotalSolves
		}
		return standings[i].User.Name < standings[j].User.Name
	})

	for i := range standings {
		if i > 0 && tied(standings[i], standings[i-1]) {
			standings[i].Rank = standings[i-1].Rank
			continue
		}
		standings[i].Rank = i + 1
	}

	metrics.MaterializeDuration.Observe(time.Since(start).Seconds())
	return standings, nil
}

func tied(a, b Standing) bool {
	return a.Score == b.Score && a.TotalSolves == b.TotalSolves && a.User.Name == b.User.Name
}

// PersistScores writes computed scores back into the cached ranklist_users
// score column. Idempotent; skipping it leaves reads fully correct since
// Materialize never consults the cache.
func (e *Engine) PersistScores(ctx context.Context, ranklistID uuid.UUID, standings []Standing) error {
	return e.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, s := range standings {
			err := tx.Model(&models.RanklistUser{}).
				Where("ranklist_id = ? AND user_id = ?", ranklistID, s.User.ID).
				Update("score", s.Score).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// Rescore is the refresh entry point used by the worker and the admin API:
// materialize, then persist the cache.
func (e *Engine) Rescore(ctx context.Context, ranklistID uuid.UUID) ([]Standing, error) {
	standings, err := e.Materialize(ctx, ranklistID)
	if err != nil {
		return nil, err
	}
	if err := e.PersistScores(ctx, ranklistID, standings); err != nil {
		return nil, err
	}
	return standings, nil
}
