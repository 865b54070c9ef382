package update

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"reforma-painel/http-server/respond"
	"reforma-painel/internal/storage"
)

type PendencyUpdater interface {
	Edit(ctx context.Context, id int64, edit storage.PendencyEdit) error
	Move(ctx context.Context, id int64, target string) (*storage.Pendency, error)
}

// EditPendency saves the edit modal; every field is writable, status included.
func EditPendency(log *slog.Logger, updater PendencyUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.pendencies.EditPendency"

		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			http.Error(w, "id inválido", http.StatusBadRequest)
			return
		}

		var req storage.PendencyEdit
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Invalid JSON", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "dados inválidos", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := updater.Edit(ctx, id, req); err != nil {
			respond.Error(w, log, op, err, "erro ao salvar pendência")
			return
		}

		render.JSON(w, r, map[string]interface{}{
			"status": strconv.Itoa(http.StatusOK),
			"id":     id,
		})
	}
}

// MovePendency is the quick-action endpoint: {"status": "Fazendo"}.
func MovePendency(log *slog.Logger, updater PendencyUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.pendencies.MovePendency"

		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			http.Error(w, "id inválido", http.StatusBadRequest)
			return
		}

		var req struct {
			Status string `json:"status"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Invalid JSON", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "dados inválidos", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		p, err := updater.Move(ctx, id, req.Status)
		if err != nil {
			respond.Error(w, log, op, err, "erro ao mover pendência")
			return
		}

		log.Info("pendency moved", slog.Int64("id", id), slog.String("status", p.Status))

		render.JSON(w, r, p)
	}
}
