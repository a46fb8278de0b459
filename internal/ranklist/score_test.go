package ranklist

import (
	"context"
	"fmt"
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/progclub/clubhub/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAccessor struct {
	snapshots map[uuid.UUID]*Snapshot
}

func (f *fakeAccessor) Load(_ context.Context, ranklistID uuid.UUID) (*Snapshot, error) {
	snap, ok := f.snapshots[ranklistID]
	if !ok {
		return nil, fmt.Errorf("ranklist %s: %w", ranklistID, ErrNotFound)
	}
	return snap, nil
}

func newEngine(snaps ...*Snapshot) *Engine {
	acc := &fakeAccessor{snapshots: map[uuid.UUID]*Snapshot{}}
	for _, s := range snaps {
		acc.snapshots[s.Ranklist.ID] = s
	}
	return &Engine{Accessor: acc}
}

func fptr(v float64) *float64 { return &v }

func newSnapshot(upsolveWeight float64, strict bool) *Snapshot {
	return &Snapshot{
		Ranklist: models.Ranklist{
			ID:                       uuid.New(),
			Title:                    "Test Season",
			Keyword:                  "test-season",
			UpsolveWeight:            fptr(upsolveWeight),
			ConsiderStrictAttendance: strict,
		},
		Stats: map[StatKey]Stat{},
	}
}

func (s *Snapshot) addEvent(title string, weight float64) uuid.UUID {
	return s.addEventWeighted(title, fptr(weight))
}

func (s *Snapshot) addEventWeighted(title string, weight *float64) uuid.UUID {
	id := uuid.New()
	s.Events = append(s.Events, WeightedEvent{
		Event:  models.Event{ID: id, Title: title, Type: models.EventContest},
		Weight: weight,
	})
	return id
}

func (s *Snapshot) addUser(name string) uuid.UUID {
	id := uuid.New()
	s.Users = append(s.Users, models.User{ID: id, Name: name, Username: name})
	return id
}

func (s *Snapshot) addStat(eventID, userID uuid.UUID, solves, upsolves uint, present bool) {
	s.Stats[StatKey{EventID: eventID, UserID: userID}] = Stat{
		SolveCount:   solves,
		UpsolveCount: upsolves,
		IsPresent:    present,
	}
}

func TestComputeScoreWeightedSum(t *testing.T) {
	snap := newSnapshot(0.25, false)
	e1 := snap.addEvent("E1", 1.0)
	e2 := snap.addEvent("E2", 2.0)
	alice := snap.addUser("Alice")
	snap.addStat(e1, alice, 3, 2, true)
	snap.addStat(e2, alice, 1, 0, true)

	engine := newEngine(snap)
	score, err := engine.ComputeScore(context.Background(), alice, snap.Ranklist.ID)
	require.NoError(t, err)
	// 1.0*(3 + 0.25*2) + 2.0*(1 + 0) = 3.5 + 2.0
	assert.Equal(t, 5.5, score)
}

func TestStrictAttendanceZeroesAbsentEvents(t *testing.T) {
	snap := newSnapshot(0.25, true)
	e1 := snap.addEvent("E1", 1.0)
	e2 := snap.addEvent("E2", 2.0)
	bob := snap.addUser("Bob")
	snap.addStat(e1, bob, 4, 0, false) // absent: solves don't count at all
	snap.addStat(e2, bob, 2, 0, true)

	engine := newEngine(snap)
	score, err := engine.ComputeScore(context.Background(), bob, snap.Ranklist.ID)
	require.NoError(t, err)
	assert.Equal(t, 4.0, score)
}

func TestZeroWeightEventStillCountsAsAttended(t *testing.T) {
	snap := newSnapshot(0.25, true)
	e1 := snap.addEvent("E1", 0.0)
	e2 := snap.addEvent("E2", 1.0)
	u := snap.addUser("Carol")
	snap.addStat(e1, u, 5, 1, true) // present, but weight 0 yields no points
	snap.addStat(e2, u, 2, 0, true)

	engine := newEngine(snap)
	score, err := engine.ComputeScore(context.Background(), u, snap.Ranklist.ID)
	require.NoError(t, err)
	assert.Equal(t, 2.0, score)
}

func TestUserWithNoStatsScoresExactlyZero(t *testing.T) {
	snap := newSnapshot(0.25, false)
	snap.addEvent("E1", 1.0)
	snap.addEvent("E2", 2.0)
	ghost := snap.addUser("Ghost")

	engine := newEngine(snap)
	score, err := engine.ComputeScore(context.Background(), ghost, snap.Ranklist.ID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, score)
}

func TestComputeScoreDetachedUserErrors(t *testing.T) {
	snap := newSnapshot(0.25, false)
	snap.addEvent("E1", 1.0)
	snap.addUser("Alice")

	engine := newEngine(snap)
	_, err := engine.ComputeScore(context.Background(), uuid.New(), snap.Ranklist.ID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestComputeScoreUnknownRanklistErrors(t *testing.T) {
	engine := newEngine()
	_, err := engine.ComputeScore(context.Background(), uuid.New(), uuid.New())
	require.ErrorIs(t, err, ErrNotFound)
}

func TestWeightMonotonicity(t *testing.T) {
	build := func(weight float64) (*Engine, uuid.UUID, uuid.UUID) {
		snap := newSnapshot(0.25, false)
		e1 := snap.addEvent("E1", weight)
		e2 := snap.addEvent("E2", 2.0)
		u := snap.addUser("Dina")
		snap.addStat(e1, u, 3, 1, true)
		snap.addStat(e2, u, 1, 0, true)
		return newEngine(snap), u, snap.Ranklist.ID
	}

	prev := math.Inf(-1)
	for _, w := range []float64{0, 0.5, 1.0, 2.5, 10} {
		engine, user, rl := build(w)
		score, err := engine.ComputeScore(context.Background(), user, rl)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, score, prev, "weight %v", w)
		prev = score
	}
}

func TestWeightDefaults(t *testing.T) {
	assert.Equal(t, 0.0, EffectiveWeight(fptr(0)))
	assert.Equal(t, 2.5, EffectiveWeight(fptr(2.5)))
	assert.Equal(t, DefaultWeight, EffectiveWeight(nil))
	assert.Equal(t, DefaultWeight, EffectiveWeight(fptr(-1)))
	assert.Equal(t, DefaultWeight, EffectiveWeight(fptr(math.NaN())))
	assert.Equal(t, DefaultWeight, EffectiveWeight(fptr(math.Inf(1))))
}

func TestUpsolveFactorDefaults(t *testing.T) {
	assert.Equal(t, 0.5, UpsolveFactor(models.Ranklist{UpsolveWeight: fptr(0.5)}))
	assert.Equal(t, 0.0, UpsolveFactor(models.Ranklist{UpsolveWeight: fptr(0)}))
	assert.Equal(t, 1.0, UpsolveFactor(models.Ranklist{UpsolveWeight: fptr(1)}))
	assert.Equal(t, DefaultUpsolveFactor, UpsolveFactor(models.Ranklist{UpsolveWeight: nil}))
	assert.Equal(t, DefaultUpsolveFactor, UpsolveFactor(models.Ranklist{UpsolveWeight: fptr(1.5)}))
	assert.Equal(t, DefaultUpsolveFactor, UpsolveFactor(models.Ranklist{UpsolveWeight: fptr(-0.1)}))
	assert.Equal(t, DefaultUpsolveFactor, UpsolveFactor(models.Ranklist{UpsolveWeight: fptr(math.NaN())}))
}

func TestUnsetWeightStaysDistinctFromZero(t *testing.T) {
	// An explicitly stored 0 must not collapse into the 1.0 default:
	// the unweighted event falls back, the zero-weight one scores nothing.
	snap := newSnapshot(0.25, false)
	defaulted := snap.addEventWeighted("Unweighted", nil)
	zeroed := snap.addEventWeighted("Zero", fptr(0))
	u := snap.addUser("Eve")
	snap.addStat(defaulted, u, 2, 0, true)
	snap.addStat(zeroed, u, 7, 0, true)

	engine := newEngine(snap)
	score, err := engine.ComputeScore(context.Background(), u, snap.Ranklist.ID)
	require.NoError(t, err)
	assert.Equal(t, 2.0, score)
}
