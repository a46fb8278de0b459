package ranklist

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/progclub/clubhub/internal/models"
	"gorm.io/gorm"
)

// Stat is the per-(event,user) activity record the engine consumes. The
// zero value means the user did not participate: no solves, not present.
type Stat struct {
	SolveCount   uint
	UpsolveCount uint
	IsPresent    bool
}

// WeightedEvent is an event as attached to a ranklist, carrying the
// stored pair weight. A nil weight means the pairing never set one and
// the engine default applies.
type WeightedEvent struct {
	Event  models.Event
	Weight *float64
}

type StatKey struct {
	EventID uuid.UUID
	UserID  uuid.UUID
}

// Snapshot is everything needed to score one ranklist, loaded in a single
// pass so the computation sees a consistent view.
type Snapshot struct {
	Ranklist models.Ranklist
	Events   []WeightedEvent
	Users    []models.User
	Stats    map[StatKey]Stat
}

// Stat returns the recorded stat for the pair, or the zero stat when the
// user has no row for the event.
func (s *Snapshot) Stat(eventID, userID uuid.UUID) Stat {
	return s.Stats[StatKey{EventID: eventID, UserID: userID}]
}

// Accessor loads ranklist snapshots. Read-only, no side effects.
type Accessor interface {
	Load(ctx context.Context, ranklistID uuid.UUID) (*Snapshot, error)
}

// GormAccessor loads snapshots from Postgres.
type GormAccessor struct {
	DB *gorm.DB
}

func (a *GormAccessor) Load(ctx context.Context, ranklistID uuid.UUID) (*Snapshot, error) {
	db := a.DB.WithContext(ctx)

	var rl models.Ranklist
	if err := db.First(&rl, "id = ?", ranklistID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("ranklist %s: %w", ranklistID, ErrNotFound)
		}
		return nil, err
	}

	var pairs []models.RanklistEvent
	if err := db.Where("ranklist_id = ?", rl.ID).Order("created_at asc").Find(&pairs).Error; err != nil {
		return nil, err
	}
	eventIDs := make([]uuid.UUID, 0, len(pairs))
	weightByEvent := make(map[uuid.UUID]*float64, len(pairs))
	for _, p := range pairs {
		eventIDs = append(eventIDs, p.EventID)
		weightByEvent[p.EventID] = p.Weight
	}

	snap := &Snapshot{Ranklist: rl, Stats: map[StatKey]Stat{}}

	if len(eventIDs) > 0 {
		var events []models.Event
		if err := db.Where("id IN ?", eventIDs).Order("starts_at asc, id asc").Find(&events).Error; err != nil {
			return nil, err
		}
		for _, e := range events {
			snap.Events = append(snap.Events, WeightedEvent{Event: e, Weight: weightByEvent[e.ID]})
		}
	}

	var memberships []models.RanklistUser
	if err := db.Where("ranklist_id = ?", rl.ID).Find(&memberships).Error; err != nil {
		return nil, err
	}
	userIDs := make([]uuid.UUID, 0, len(memberships))
	for _, m := range memberships {
		userIDs = append(userIDs, m.UserID)
	}
	if len(userIDs) > 0 {
		if err := db.Where("id IN ?", userIDs).Order("id asc").Find(&snap.Users).Error; err != nil {
			return nil, err
		}
	}

	if len(eventIDs) > 0 && len(userIDs) > 0 {
		var stats []models.SolveStat
		if err := db.Where("event_id IN ? AND user_id IN ?", eventIDs, userIDs).Find(&stats).Error; err != nil {
			return nil, err
		}
		for _, s := range stats {
			snap.Stats[StatKey{EventID: s.EventID, UserID: s.UserID}] = Stat{
				SolveCount:   s.SolveCount,
				UpsolveCount: s.UpsolveCount,
				IsPresent:    s.IsPresent,
			}
		}
	}

	return snap, nil
}

// ResolveID maps a keyword or uuid string to a ranklist id.
func ResolveID(ctx context.Context, db *gorm.DB, keywordOrID string) (uuid.UUID, error) {
	if id, err := uuid.Parse(keywordOrID); err == nil {
		return id, nil
	}
	var rl models.Ranklist
	if err := db.WithContext(ctx).Select("id").First(&rl, "keyword = ?", keywordOrID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, fmt.Errorf("ranklist %q: %w", keywordOrID, ErrNotFound)
		}
		return uuid.Nil, err
	}
	return rl.ID, nil
}
