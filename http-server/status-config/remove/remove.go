package remove

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"reforma-painel/http-server/respond"
)

type StatusRemover interface {
	DeleteStatus(ctx context.Context, id int64, reassignTo *int64) error
}

// DeleteStatus removes a status. A status still used by work items is only
// deleted when ?reassign_to= names the status they move to.
func DeleteStatus(log *slog.Logger, remover StatusRemover) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.status_config.DeleteStatus"

		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			http.Error(w, "id inválido", http.StatusBadRequest)
			return
		}

		var reassignTo *int64
		if raw := r.URL.Query().Get("reassign_to"); raw != "" {
			target, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				http.Error(w, "reassign_to inválido", http.StatusBadRequest)
				return
			}
			reassignTo = &target
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := remover.DeleteStatus(ctx, id, reassignTo); err != nil {
			respond.Error(w, log, op, err, "erro ao excluir status")
			return
		}

		log.Info("status deleted", slog.Int64("id", id))

		render.JSON(w, r, map[string]interface{}{
			"status": strconv.Itoa(http.StatusOK),
			"id":     id,
		})
	}
}
