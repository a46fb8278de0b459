package ranklist

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaterializeOrdersByScoreDesc(t *testing.T) {
	snap := newSnapshot(0.25, false)
	e1 := snap.addEvent("E1", 1.0)
	alice := snap.addUser("Alice")
	bob := snap.addUser("Bob")
	carol := snap.addUser("Carol")
	snap.addStat(e1, alice, 2, 0, true)
	snap.addStat(e1, bob, 5, 0, true)
	snap.addStat(e1, carol, 3, 0, true)

	engine := newEngine(snap)
	standings, err := engine.Materialize(context.Background(), snap.Ranklist.ID)
	require.NoError(t, err)
	require.Len(t, standings, 3)

	assert.Equal(t, "Bob", standings[0].User.Name)
	assert.Equal(t, "Carol", standings[1].User.Name)
	assert.Equal(t, "Alice", standings[2].User.Name)
	assert.Equal(t, []int{1, 2, 3}, ranks(standings))
}

func TestMaterializeTieBreakBySolveCount(t *testing.T) {
	// Equal scores, different routes there: more in-contest solves wins.
	snap := newSnapshot(0.5, false)
	e1 := snap.addEvent("E1", 1.0)
	fewSolves := snap.addUser("Aaron") // 4 solves + 3 upsolves = 5.5
	manySolves := snap.addUser("Zoe")  // 5 solves + 1 upsolve  = 5.5
	snap.addStat(e1, fewSolves, 4, 3, true)
	snap.addStat(e1, manySolves, 5, 1, true)

	engine := newEngine(snap)
	standings, err := engine.Materialize(context.Background(), snap.Ranklist.ID)
	require.NoError(t, err)
	require.Len(t, standings, 2)

	assert.Equal(t, standings[0].Score, standings[1].Score)
	assert.Equal(t, "Zoe", standings[0].User.Name)
	assert.Equal(t, []int{1, 2}, ranks(standings))
}

func TestMaterializeTieBreakByNameThenCompetitionRanks(t *testing.T) {
	snap := newSnapshot(0.25, false)
	e1 := snap.addEvent("E1", 1.0)
	zoe := snap.addUser("Zoe")
	amy := snap.addUser("Amy")
	sam1 := snap.addUser("Sam")
	sam2 := snap.addUser("Sam") // genuinely indistinguishable from sam1
	low := snap.addUser("Lena")
	for _, u := range []uuid.UUID{zoe, amy, sam1, sam2} {
		snap.addStat(e1, u, 3, 0, true)
	}
	snap.addStat(e1, low, 1, 0, true)

	engine := newEngine(snap)
	standings, err := engine.Materialize(context.Background(), snap.Ranklist.ID)
	require.NoError(t, err)
	require.Len(t, standings, 5)

	// Same score and solves: alphabetical by name; identical rows share a
	// rank and the next distinct row resumes at its position.
	assert.Equal(t, "Amy", standings[0].User.Name)
	assert.Equal(t, "Sam", standings[1].User.Name)
	assert.Equal(t, "Sam", standings[2].User.Name)
	assert.Equal(t, "Zoe", standings[3].User.Name)
	assert.Equal(t, "Lena", standings[4].User.Name)
	assert.Equal(t, []int{1, 2, 2, 4, 5}, ranks(standings))
}

func TestMaterializeIdempotent(t *testing.T) {
	snap := newSnapshot(0.25, true)
	e1 := snap.addEvent("E1", 1.0)
	e2 := snap.addEvent("E2", 2.0)
	alice := snap.addUser("Alice")
	bob := snap.addUser("Bob")
	snap.addStat(e1, alice, 3, 2, true)
	snap.addStat(e2, alice, 1, 0, true)
	snap.addStat(e1, bob, 4, 0, false)
	snap.addStat(e2, bob, 2, 0, true)

	engine := newEngine(snap)
	first, err := engine.Materialize(context.Background(), snap.Ranklist.ID)
	require.NoError(t, err)
	second, err := engine.Materialize(context.Background(), snap.Ranklist.ID)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestMaterializeEmptyRanklist(t *testing.T) {
	snap := newSnapshot(0.25, false)

	engine := newEngine(snap)
	standings, err := engine.Materialize(context.Background(), snap.Ranklist.ID)
	require.NoError(t, err)
	assert.Empty(t, standings)
}

func TestMaterializeUnknownRanklist(t *testing.T) {
	engine := newEngine()
	_, err := engine.Materialize(context.Background(), uuid.New())
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMaterializeBreakdown(t *testing.T) {
	snap := newSnapshot(0.25, true)
	e1 := snap.addEvent("E1", 1.0)
	e2 := snap.addEvent("E2", 2.0)
	bob := snap.addUser("Bob")
	snap.addStat(e1, bob, 4, 0, false)
	snap.addStat(e2, bob, 2, 0, true)

	engine := newEngine(snap)
	standings, err := engine.Materialize(context.Background(), snap.Ranklist.ID)
	require.NoError(t, err)
	require.Len(t, standings, 1)

	b := standings[0].Breakdown
	require.Len(t, b, 2)
	assert.Equal(t, e1, b[0].EventID)
	assert.Equal(t, 0.0, b[0].Points) // zeroed by strict attendance
	assert.Equal(t, uint(4), b[0].SolveCount)
	assert.False(t, b[0].IsPresent)
	assert.Equal(t, 4.0, b[1].Points)
	assert.Equal(t, 4.0, standings[0].Score)
	assert.Equal(t, uint(6), standings[0].TotalSolves)
}

func ranks(standings []Standing) []int {
	out := make([]int, len(standings))
	for i, s := range standings {
		out[i] = s.Rank
	}
	return out
}
