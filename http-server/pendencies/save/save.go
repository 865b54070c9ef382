package save

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"reforma-painel/http-server/respond"
	"reforma-painel/internal/storage"
)

type PendencyCreator interface {
	Create(ctx context.Context, in storage.PendencyInput) (int64, error)
}

// SavePendency adds a card to the A Fazer lane.
func SavePendency(log *slog.Logger, creator PendencyCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.pendencies.SavePendency"

		var req storage.PendencyInput
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Invalid JSON", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "dados inválidos", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		id, err := creator.Create(ctx, req)
		if err != nil {
			respond.Error(w, log, op, err, "erro ao criar pendência")
			return
		}

		log.Info("pendency created", slog.Int64("id", id))

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, map[string]interface{}{
			"status": "created",
			"id":     id,
		})
	}
}
