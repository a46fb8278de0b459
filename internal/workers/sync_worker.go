// internal/workers/sync_worker.go
package workers

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"time"

	es "github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esutil"
	"github.com/google/uuid"
	"github.com/progclub/clubhub/internal/elastic"
	"github.com/progclub/clubhub/internal/metrics"
	"github.com/progclub/clubhub/internal/models"
	"github.com/progclub/clubhub/internal/ranklist"
	"github.com/progclub/clubhub/internal/services"
	"gorm.io/gorm"
)

// SyncWorker drains the outbox: UPSERT/DELETE ops feed the search indexes,
// RESCORE ops refresh a ranklist's cached scores. Ranklists are independent,
// so rescore events can land in any order within a batch.
type SyncWorker struct {
	DB     *gorm.DB
	ES     *es.Client
	Engine *ranklist.Engine
}

func (w *SyncWorker) Run(ctx context.Context) {
	if err := elastic.EnsureIndexes(ctx, w.ES); err != nil {
		log.Fatalf("ensure indexes: %v", err)
	}
	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := w.processOnce(ctx); err != nil {
				log.Printf("worker error: %v", err)
			}
		}
	}
}

// NewBulkIndexer builds the bulk indexer every outbox-apply path shares.
func NewBulkIndexer(client *es.Client) (esutil.BulkIndexer, error) {
	return esutil.NewBulkIndexer(esutil.BulkIndexerConfig{
		Client: client, Index: "", FlushBytes: 5 << 20, NumWorkers: 2,
	})
}

func (w *SyncWorker) processOnce(ctx context.Context) error {
	batch, err := FetchOutboxBatch(ctx, w.DB, 200)
	if err != nil {
		return err
	}
	if len(batch.Events) == 0 {
		return nil
	}

	bi, err := NewBulkIndexer(w.ES)
	if err != nil {
		return err
	}

	for _, e := range batch.Events {
		if err := w.applyEvent(ctx, bi, e); err != nil {
			// Put back to DLQ (already marked processed to avoid infinite loop)
			metrics.FailedEvents.Inc()
			PutDLQ(w.DB, e, err.Error())
			log.Printf("DLQ outbox_id=%d: %v", e.ID, err)
			continue
		}
		metrics.ProcessedEvents.Inc()
	}

	if err := bi.Close(ctx); err != nil {
		return err
	}
	stats := bi.Stats()
	log.Printf("bulk ok=%d failed=%d", stats.NumFlushed, stats.NumFailed)
	return nil
}

func (w *SyncWorker) ApplyEvent(ctx context.Context, bi esutil.BulkIndexer, e models.Outbox) error {
	return w.applyEvent(ctx, bi, e)
}

func (w *SyncWorker) applyEvent(ctx context.Context, bi esutil.BulkIndexer, e models.Outbox) error {
	switch e.EntityType {
	case services.EntityUser:
		var u models.User
		if e.Op == services.OpDelete {
			return w.add(bi, elastic.IdxUsers, e.EntityID.String(), e.ID, "delete", nil)
		}
		if err := w.DB.First(&u, "id = ?", e.EntityID).Error; err != nil {
			return err
		}
		doc, err := elastic.BuildUserDoc(u)
		if err != nil {
			return err
		}
		return w.add(bi, elastic.IdxUsers, e.EntityID.String(), e.ID, "index", doc)

	case services.EntityEvent:
		var ev models.Event
		if e.Op == services.OpDelete {
			return w.add(bi, elastic.IdxEvents, e.EntityID.String(), e.ID, "delete", nil)
		}
		if err := w.DB.First(&ev, "id = ?", e.EntityID).Error; err != nil {
			return err
		}
		doc, err := elastic.BuildEventDoc(ev)
		if err != nil {
			return err
		}
		return w.add(bi, elastic.IdxEvents, e.EntityID.String(), e.ID, "index", doc)

	case services.EntityPost:
		var p models.Post
		if e.Op == services.OpDelete {
			return w.add(bi, elastic.IdxPosts, e.EntityID.String(), e.ID, "delete", nil)
		}
		if err := w.DB.First(&p, "id = ?", e.EntityID).Error; err != nil {
			return err
		}
		doc, err := elastic.BuildPostDoc(p)
		if err != nil {
			return err
		}
		return w.add(bi, elastic.IdxPosts, e.EntityID.String(), e.ID, "index", doc)

	case services.EntityRanklist:
		if e.Op != services.OpRescore {
			return fmt.Errorf("unsupported ranklist op=%s", e.Op)
		}
		var rl models.Ranklist
		if err := w.DB.First(&rl, "id = ?", e.EntityID).Error; err != nil {
			return err
		}
		// Archived ranklists are frozen: background rescores don't touch
		// their cached scores. An explicit refresh via the API still can.
		if rl.IsArchived {
			log.Printf("⏭️ skipping rescore of archived ranklist id=%s", e.EntityID)
			return nil
		}
		if _, err := w.Engine.Rescore(ctx, e.EntityID); err != nil {
			return err
		}
		metrics.RescoredRanklists.Inc()
		log.Printf("✅ rescored ranklist id=%s", e.EntityID)
		return nil
	}
	return fmt.Errorf("unknown entity_type=%s", e.EntityType)
}

func (w *SyncWorker) add(bi esutil.BulkIndexer, index, docID string, outboxID int64, action string, body []byte) error {
	item := esutil.BulkIndexerItem{
		Action:     action,
		DocumentID: docID,
		Index:      index,
		Body:       nil,
		OnSuccess: func(ctx context.Context, item esutil.BulkIndexerItem, res esutil.BulkIndexerResponseItem) {
			log.Printf("✅ synced %s id=%s", index, docID)
		},
		OnFailure: func(ctx context.Context, item esutil.BulkIndexerItem, res esutil.BulkIndexerResponseItem, err error) {
			msg := ""
			switch {
			case err != nil:
				msg = err.Error()
			case res.Error.Reason != "":
				msg = fmt.Sprintf("%s: %s", res.Error.Type, res.Error.Reason)
			default:
				msg = fmt.Sprintf("status=%d failed to index", res.Status)
			}

			// DLQ rows carry outbox ops, not bulk actions, so a failed
			// delete retries as a delete.
			ob := models.Outbox{
				ID:         outboxID,
				EntityType: indexToEntity(index),
				EntityID:   uuid.MustParse(docID),
				Op:         actionToOp(action),
				Payload:    nil,
			}
			PutDLQ(w.DB, ob, msg)
			log.Printf("💀 DLQ created for outbox_id=%d index=%s id=%s reason=%s", outboxID, index, docID, msg)
		},
	}

	if len(body) > 0 {
		item.Body = bytes.NewReader(body)
	}
	return bi.Add(context.Background(), item)
}

func actionToOp(action string) string {
	if action == "delete" {
		return services.OpDelete
	}
	return services.OpUpsert
}

func indexToEntity(index string) string {
	switch index {
	case elastic.IdxUsers:
		return services.EntityUser
	case elastic.IdxEvents:
		return services.EntityEvent
	case elastic.IdxPosts:
		return services.EntityPost
	default:
		return "unknown"
	}
}
