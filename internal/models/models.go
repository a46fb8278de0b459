package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// EventType classifies what kind of gathering an event is.
type EventType string

const (
	EventClass   EventType = "class"
	EventContest EventType = "contest"
	EventMeeting EventType = "meeting"
)

// AttendanceScope restricts who may attend an event.
type AttendanceScope string

const (
	ScopePublic            AttendanceScope = "public"
	ScopeOnlyGirls         AttendanceScope = "only_girls"
	ScopeJuniorProgrammers AttendanceScope = "junior_programmers"
)

// ---------------- USERS ----------------
type User struct {
	ID               uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Username         string    `gorm:"uniqueIndex;not null"`
	Email            string    `gorm:"uniqueIndex;not null"`
	Name             string    `gorm:"not null"`
	CodeforcesHandle string
	AtcoderHandle    string
	VjudgeHandle     string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// ---------------- EVENTS ----------------
type Event struct {
	ID                uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Title             string    `gorm:"index;not null"`
	Description       string
	StartsAt          time.Time
	EndsAt            time.Time
	Type              EventType       `gorm:"not null;default:'contest'"`
	Scope             AttendanceScope `gorm:"not null;default:'public'"`
	OpenForAttendance bool            `gorm:"default:false"`
	ExternalLink      string
	EventPassword     string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// ---------------- RANKLISTS ----------------
// UpsolveWeight is a pointer so a stored 0 (upsolve credit disabled) stays
// distinct from unset (engine default applies). A `default` tag here would
// make GORM drop the zero from the INSERT and resurrect the default.
type Ranklist struct {
	ID                       uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Title                    string    `gorm:"not null"`
	Keyword                  string    `gorm:"uniqueIndex;not null"`
	UpsolveWeight            *float64
	ConsiderStrictAttendance bool `gorm:"default:false"`
	IsArchived               bool `gorm:"default:false"`
	CreatedAt                time.Time
	UpdatedAt                time.Time
}

// RanklistEvent attaches an event to a ranklist with a per-pair weight.
// Weight is a pointer for the same zero-vs-unset reason as UpsolveWeight:
// weight 0 is a valid stored value and must survive the INSERT.
type RanklistEvent struct {
	ID         int64     `gorm:"primaryKey;autoIncrement"`
	RanklistID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_ranklist_event"`
	EventID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_ranklist_event"`
	Weight     *float64
	CreatedAt  time.Time
}

// RanklistUser attaches a user to a ranklist. Score is a denormalized
// cache of the engine's computation, refreshed by explicit rescore only.
type RanklistUser struct {
	ID         int64     `gorm:"primaryKey;autoIncrement"`
	RanklistID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_ranklist_user"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_ranklist_user"`
	Score      float64   `gorm:"default:0.0"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ---------------- SOLVE STATS ----------------
// SolveStat is the authoritative fact table: one row per (event, user).
// Absence of a row means the user did not participate at all.
type SolveStat struct {
	ID           int64     `gorm:"primaryKey;autoIncrement"`
	EventID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_event_user"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_event_user"`
	SolveCount   uint      `gorm:"default:0"`
	UpsolveCount uint      `gorm:"default:0"`
	IsPresent    bool      `gorm:"default:false"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ---------------- POSTS ----------------
type Post struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Title     string    `gorm:"not null"`
	Slug      string    `gorm:"uniqueIndex;not null"`
	Body      string
	Tags      datatypes.JSON // e.g. ["announcement","editorial"]
	Published bool           `gorm:"default:false"`
	AuthorID  uuid.UUID      `gorm:"type:uuid"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ---------------- OUTBOX (for sync + rescore events) ----------------
type Outbox struct {
	ID         int64     `gorm:"primaryKey;autoIncrement"`
	EntityType string    `gorm:"index;not null"`
	EntityID   uuid.UUID `gorm:"type:uuid;not null"`
	Op         string    `gorm:"not null"` // UPSERT | DELETE | RESCORE
	Payload    datatypes.JSON
	CreatedAt  time.Time
	Processed  bool `gorm:"default:false"`
}
