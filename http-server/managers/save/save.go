package save

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/render"

	"reforma-painel/http-server/respond"
	"reforma-painel/internal/storage"
)

type ManagerCreator interface {
	CreateManager(ctx context.Context, m storage.Manager) (int64, error)
}

func SaveManager(log *slog.Logger, creator ManagerCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.managers.SaveManager"

		var req storage.Manager
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Invalid JSON", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "dados inválidos", http.StatusBadRequest)
			return
		}

		req.Nome = strings.TrimSpace(req.Nome)
		if req.Nome == "" {
			http.Error(w, "nome obrigatório", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		id, err := creator.CreateManager(ctx, req)
		if err != nil {
			respond.Error(w, log, op, err, "erro ao criar gestor")
			return
		}

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, map[string]interface{}{
			"status": "created",
			"id":     id,
		})
	}
}
