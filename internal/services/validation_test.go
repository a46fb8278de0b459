package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/progclub/clubhub/internal/models"
	"github.com/progclub/clubhub/internal/ranklist"
	"github.com/stretchr/testify/require"
)

func TestUpsertSolveStatRejectsNegativeCounts(t *testing.T) {
	err := UpsertSolveStat(nil, SolveStatInput{
		EventID:    uuid.New(),
		UserID:     uuid.New(),
		SolveCount: -1,
	})
	require.ErrorIs(t, err, ranklist.ErrInvalidConfiguration)

	err = UpsertSolveStat(nil, SolveStatInput{
		EventID:      uuid.New(),
		UserID:       uuid.New(),
		UpsolveCount: -3,
	})
	require.ErrorIs(t, err, ranklist.ErrInvalidConfiguration)
}

func TestCreateRanklistRejectsBadUpsolveWeight(t *testing.T) {
	bad := 1.5
	err := CreateRanklist(nil, &models.Ranklist{Keyword: "bad", UpsolveWeight: &bad})
	require.ErrorIs(t, err, ranklist.ErrInvalidConfiguration)

	bad = -0.5
	err = CreateRanklist(nil, &models.Ranklist{Keyword: "bad", UpsolveWeight: &bad})
	require.ErrorIs(t, err, ranklist.ErrInvalidConfiguration)
}

func TestAttachEventRejectsNegativeWeight(t *testing.T) {
	neg := -2.0
	err := AttachEvent(nil, uuid.New(), uuid.New(), &neg)
	require.ErrorIs(t, err, ranklist.ErrInvalidConfiguration)
}
