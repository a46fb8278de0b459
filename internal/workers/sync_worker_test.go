package workers

import (
	"testing"

	"github.com/progclub/clubhub/internal/elastic"
	"github.com/progclub/clubhub/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Failed deletes must land in the DLQ as DELETE outbox ops, not as raw
// bulk actions, or the retry re-indexes a row that should be gone.
func TestActionToOp(t *testing.T) {
	assert.Equal(t, services.OpDelete, actionToOp("delete"))
	assert.Equal(t, services.OpUpsert, actionToOp("index"))
}

func TestIndexToEntity(t *testing.T) {
	assert.Equal(t, services.EntityUser, indexToEntity(elastic.IdxUsers))
	assert.Equal(t, services.EntityEvent, indexToEntity(elastic.IdxEvents))
	assert.Equal(t, services.EntityPost, indexToEntity(elastic.IdxPosts))
	assert.Equal(t, "unknown", indexToEntity("club_ghosts_v1"))
}

func TestNewBulkIndexerRejectsNilClient(t *testing.T) {
	_, err := NewBulkIndexer(nil)
	require.Error(t, err)
}
