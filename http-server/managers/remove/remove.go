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

type ManagerRemover interface {
	DeleteManager(ctx context.Context, id int64) error
}

func DeleteManager(log *slog.Logger, remover ManagerRemover) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.managers.DeleteManager"

		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			http.Error(w, "id inválido", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := remover.DeleteManager(ctx, id); err != nil {
			respond.Error(w, log, op, err, "erro ao excluir gestor")
			return
		}

		log.Info("manager deleted", slog.Int64("id", id))

		render.JSON(w, r, map[string]interface{}{
			"status": strconv.Itoa(http.StatusOK),
			"id":     id,
		})
	}
}
