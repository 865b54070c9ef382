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

type WorkItemUpdater interface {
	UpdateWorkItem(ctx context.Context, id int64, upd storage.WorkItemUpdate) error
}

func UpdateWorkItem(log *slog.Logger, updater WorkItemUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.work_items.UpdateWorkItem"

		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			http.Error(w, "id inválido", http.StatusBadRequest)
			return
		}

		var req storage.WorkItemUpdate
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Invalid JSON", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "dados inválidos", http.StatusBadRequest)
			return
		}

		if req.StatusID == 0 {
			http.Error(w, "status obrigatório", http.StatusBadRequest)
			return
		}
		if req.GestorID == 0 {
			http.Error(w, "responsável obrigatório", http.StatusBadRequest)
			return
		}
		if req.Progresso < 0 || req.Progresso > 100 {
			http.Error(w, "progresso deve estar entre 0 e 100", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := updater.UpdateWorkItem(ctx, id, req); err != nil {
			respond.Error(w, log, op, err, "erro ao atualizar máquina")
			return
		}

		log.Info("work item updated", slog.Int64("id", id))

		render.JSON(w, r, map[string]interface{}{
			"status": strconv.Itoa(http.StatusOK),
			"id":     id,
		})
	}
}
