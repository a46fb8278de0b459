// internal/elastic/docs.go
package elastic

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/progclub/clubhub/internal/models"
)

type UserDoc struct {
	Username         string    `json:"username"`
	Email            string    `json:"email"`
	Name             string    `json:"name"`
	CodeforcesHandle string    `json:"codeforces_handle"`
	AtcoderHandle    string    `json:"atcoder_handle"`
	VjudgeHandle     string    `json:"vjudge_handle"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func BuildUserDoc(u models.User) ([]byte, error) {
	return json.Marshal(UserDoc{
		Username:         u.Username,
		Email:            u.Email,
		Name:             u.Name,
		CodeforcesHandle: u.CodeforcesHandle,
		AtcoderHandle:    u.AtcoderHandle,
		VjudgeHandle:     u.VjudgeHandle,
		UpdatedAt:        u.UpdatedAt,
	})
}

type EventDoc struct {
	Title             string    `json:"title"`
	Description       string    `json:"description"`
	Type              string    `json:"type"`
	Scope             string    `json:"scope"`
	StartsAt          time.Time `json:"starts_at"`
	EndsAt            time.Time `json:"ends_at"`
	OpenForAttendance bool      `json:"open_for_attendance"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func BuildEventDoc(e models.Event) ([]byte, error) {
	return json.Marshal(EventDoc{
		Title:             e.Title,
		Description:       e.Description,
		Type:              string(e.Type),
		Scope:             string(e.Scope),
		StartsAt:          e.StartsAt,
		EndsAt:            e.EndsAt,
		OpenForAttendance: e.OpenForAttendance,
		UpdatedAt:         e.UpdatedAt,
	})
}

type PostDoc struct {
	Title     string    `json:"title"`
	Slug      string    `json:"slug"`
	Body      string    `json:"body"`
	Tags      []string  `json:"tags"`
	Published bool      `json:"published"`
	AuthorID  uuid.UUID `json:"author_id"`
	UpdatedAt time.Time `json:"updated_at"`
}

func BuildPostDoc(p models.Post) ([]byte, error) {
	var tags []string
	_ = json.Unmarshal(p.Tags, &tags)
	return json.Marshal(PostDoc{
		Title:     p.Title,
		Slug:      p.Slug,
		Body:      p.Body,
		Tags:      tags,
		Published: p.Published,
		AuthorID:  p.AuthorID,
		UpdatedAt: p.UpdatedAt,
	})
}
