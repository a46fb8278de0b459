package main

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/rs/cors"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/progclub/clubhub/internal/db"
	"github.com/progclub/clubhub/internal/elastic"
	"github.com/progclub/clubhub/internal/models"
	"github.com/progclub/clubhub/internal/ranklist"
	"github.com/progclub/clubhub/internal/services"

	"github.com/progclub/clubhub/internal/metrics"
	"github.com/progclub/clubhub/internal/workers"
	"gorm.io/gorm"
)

func main() {
	_ = godotenv.Load()

	pg := db.Connect()
	db.Migrate(pg)
	db.Seed(pg)

	metrics.Register()

	corsMiddleware := cors.New(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000", "http://localhost:5173"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	es := elastic.Connect()
	engine := &ranklist.Engine{
		Accessor: &ranklist.GormAccessor{DB: pg},
		DB:       pg,
	}
	worker := &workers.SyncWorker{DB: pg, ES: es, Engine: engine}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go worker.Run(ctx)
	go worker.RetryDLQ(ctx)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	mux.HandleFunc("/api/ranklists", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", 405)
			return
		}
		var rl models.Ranklist
		if err := json.NewDecoder(r.Body).Decode(&rl); err != nil {
			http.Error(w, err.Error(), 400)
			return
		}
		if err := services.CreateRanklist(pg, &rl); err != nil {
			writeEngineError(w, err)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{"status": "created", "id": rl.ID})
	})

	// /api/ranklists/{keyword-or-id}/standings  (GET, pure read)
	// /api/ranklists/{keyword-or-id}/refresh    (POST, persists score cache)
	// /api/ranklists/{keyword-or-id}/rescore    (POST, queues async refresh)
	// /api/ranklists/{keyword-or-id}/events     (POST attach, DELETE detach)
	// /api/ranklists/{keyword-or-id}/users      (POST attach, DELETE detach)
	mux.HandleFunc("/api/ranklists/", func(w http.ResponseWriter, r *http.Request) {
		rest := strings.Trim(r.URL.Path[len("/api/ranklists/"):], "/")
		parts := strings.Split(rest, "/")
		if len(parts) != 2 {
			http.Error(w, "not found", 404)
			return
		}
		id, err := ranklist.ResolveID(r.Context(), pg, parts[0])
		if err != nil {
			writeEngineError(w, err)
			return
		}
		switch {
		case parts[1] == "standings" && r.Method == http.MethodGet:
			standings, err := engine.Materialize(r.Context(), id)
			if err != nil {
				writeEngineError(w, err)
				return
			}
			json.NewEncoder(w).Encode(standings)
		case parts[1] == "refresh" && r.Method == http.MethodPost:
			standings, err := engine.Rescore(r.Context(), id)
			if err != nil {
				writeEngineError(w, err)
				return
			}
			metrics.RescoredRanklists.Inc()
			json.NewEncoder(w).Encode(standings)
		case parts[1] == "rescore" && r.Method == http.MethodPost:
			if err := services.RequestRescore(pg, id); err != nil {
				http.Error(w, err.Error(), 500)
				return
			}
			json.NewEncoder(w).Encode(map[string]string{"status": "queued"})
		case parts[1] == "events":
			// Weight is a pointer so an omitted field (engine default)
			// stays distinct from an explicit 0.
			var body struct {
				EventID uuid.UUID `json:"event_id"`
				Weight  *float64  `json:"weight"`
			}
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				http.Error(w, err.Error(), 400)
				return
			}
			switch r.Method {
			case http.MethodPost:
				err = services.AttachEvent(pg, id, body.EventID, body.Weight)
			case http.MethodDelete:
				err = services.DetachEvent(pg, id, body.EventID)
			default:
				http.Error(w, "method not allowed", 405)
				return
			}
			if err != nil {
				writeEngineError(w, err)
				return
			}
			json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
		case parts[1] == "users":
			var body struct {
				UserID uuid.UUID `json:"user_id"`
			}
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				http.Error(w, err.Error(), 400)
				return
			}
			switch r.Method {
			case http.MethodPost:
				err = services.AttachUser(pg, id, body.UserID)
			case http.MethodDelete:
				err = services.DetachUser(pg, id, body.UserID)
			default:
				http.Error(w, "method not allowed", 405)
				return
			}
			if err != nil {
				writeEngineError(w, err)
				return
			}
			json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
		default:
			http.Error(w, "not found", 404)
		}
	})

	// computeScore(userId, ranklistId)
	mux.HandleFunc("/api/score", func(w http.ResponseWriter, r *http.Request) {
		userID, err := uuid.Parse(r.URL.Query().Get("user"))
		if err != nil {
			http.Error(w, "bad user id", 400)
			return
		}
		rlID, err := ranklist.ResolveID(r.Context(), pg, r.URL.Query().Get("ranklist"))
		if err != nil {
			writeEngineError(w, err)
			return
		}
		score, err := engine.ComputeScore(r.Context(), userID, rlID)
		if err != nil {
			writeEngineError(w, err)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{"user_id": userID, "ranklist_id": rlID, "score": score})
	})

	mux.HandleFunc("/api/events", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", 405)
			return
		}
		var e models.Event
		if err := json.NewDecoder(r.Body).Decode(&e); err != nil {
			http.Error(w, err.Error(), 400)
			return
		}
		if err := services.CreateEvent(pg, &e); err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{"status": "created", "id": e.ID})
	})

	mux.HandleFunc("/api/events/", func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(r.URL.Path[len("/api/events/"):])
		if err != nil {
			http.Error(w, "bad event id", 400)
			return
		}
		switch r.Method {
		case http.MethodPut:
			var updates map[string]any
			if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
				http.Error(w, err.Error(), 400)
				return
			}
			err = services.UpdateEvent(pg, id, updates)
		case http.MethodDelete:
			err = services.DeleteEvent(pg, id)
		default:
			http.Error(w, "method not allowed", 405)
			return
		}
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	mux.HandleFunc("/api/users", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", 405)
			return
		}
		var u models.User
		if err := json.NewDecoder(r.Body).Decode(&u); err != nil {
			http.Error(w, err.Error(), 400)
			return
		}
		if err := services.CreateUser(pg, &u); err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{"status": "created", "id": u.ID})
	})

	mux.HandleFunc("/api/users/", func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(r.URL.Path[len("/api/users/"):])
		if err != nil {
			http.Error(w, "bad user id", 400)
			return
		}
		switch r.Method {
		case http.MethodPut:
			var updates map[string]any
			if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
				http.Error(w, err.Error(), 400)
				return
			}
			err = services.UpdateUser(pg, id, updates)
		case http.MethodDelete:
			err = services.DeleteUser(pg, id)
		default:
			http.Error(w, "method not allowed", 405)
			return
		}
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	mux.HandleFunc("/api/posts", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", 405)
			return
		}
		var p models.Post
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			http.Error(w, err.Error(), 400)
			return
		}
		if err := services.CreatePost(pg, &p); err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{"status": "created", "id": p.ID})
	})

	mux.HandleFunc("/api/posts/", func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(r.URL.Path[len("/api/posts/"):])
		if err != nil {
			http.Error(w, "bad post id", 400)
			return
		}
		switch r.Method {
		case http.MethodPut:
			var updates map[string]any
			if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
				http.Error(w, err.Error(), 400)
				return
			}
			err = services.UpdatePost(pg, id, updates)
		case http.MethodDelete:
			err = services.DeletePost(pg, id)
		default:
			http.Error(w, "method not allowed", 405)
			return
		}
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	// stand-in for the contest-fetch integration: reports solve stats
	mux.HandleFunc("/api/solve-stats", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", 405)
			return
		}
		var in services.SolveStatInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			http.Error(w, err.Error(), 400)
			return
		}
		if err := services.UpsertSolveStat(pg, in); err != nil {
			writeEngineError(w, err)
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"status": "recorded"})
	})

	mux.HandleFunc("/api/outbox", func(w http.ResponseWriter, r *http.Request) {
		var outboxes []models.Outbox
		pg.Order("id desc").Limit(100).Find(&outboxes)
		json.NewEncoder(w).Encode(outboxes)
	})
	mux.HandleFunc("/api/dlq", func(w http.ResponseWriter, r *http.Request) {
		var dlq []models.DLQ
		pg.Order("id desc").Limit(100).Find(&dlq)
		json.NewEncoder(w).Encode(dlq)
	})
	mux.HandleFunc("/api/retry/", func(rw http.ResponseWriter, r *http.Request) {
		id := r.URL.Path[len("/api/retry/"):]
		var d models.DLQ
		if err := pg.First(&d, "id = ?", id).Error; err != nil {
			http.Error(rw, "not found", 404)
			return
		}
		entityID, err := uuid.Parse(d.EntityID)
		if err != nil {
			http.Error(rw, "bad entity id: "+err.Error(), 500)
			return
		}
		ob := models.Outbox{
			ID:         d.OutboxID,
			EntityType: d.EntityType,
			EntityID:   entityID,
			Op:         d.Op,
		}
		bi, err := workers.NewBulkIndexer(es)
		if err != nil {
			http.Error(rw, "bulk indexer init failed: "+err.Error(), 500)
			return
		}
		if err := worker.ApplyEvent(ctx, bi, ob); err != nil {
			workers.PutDLQ(pg, ob, err.Error())
			http.Error(rw, "retry failed: "+err.Error(), 500)
			return
		}
		markResolved(pg, d.ID)
		json.NewEncoder(rw).Encode(map[string]string{"status": "retried"})
	})

	log.Println("🧭 Admin API running on :8080")
	if err := http.ListenAndServe(":8080", corsMiddleware.Handler(mux)); err != nil {
		log.Fatalf("admin API listener failed: %v", err)
	}
}

func writeEngineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ranklist.ErrNotFound):
		http.Error(w, err.Error(), 404)
	case errors.Is(err, ranklist.ErrInvalidConfiguration):
		http.Error(w, err.Error(), 400)
	default:
		http.Error(w, err.Error(), 500)
	}
}

func markResolved(pg *gorm.DB, dlqID int64) {
	now := time.Now()
	pg.Model(&models.DLQ{}).Where("id = ?", dlqID).Updates(map[string]any{"resolved": true, "retried_at": &now})
}
