package save

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/go-chi/render"

	"reforma-painel/http-server/respond"
	"reforma-painel/internal/storage"
)

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

type StatusCreator interface {
	CreateStatus(ctx context.Context, st storage.StatusConfig) (int64, error)
}

func SaveStatus(log *slog.Logger, creator StatusCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.status_config.SaveStatus"

		var req storage.StatusConfig
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Invalid JSON", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "dados inválidos", http.StatusBadRequest)
			return
		}

		req.Nome = strings.TrimSpace(req.Nome)
		if req.Nome == "" {
			http.Error(w, "nome do status obrigatório", http.StatusBadRequest)
			return
		}
		if !hexColor.MatchString(req.Cor) {
			http.Error(w, "cor deve estar no formato #rrggbb", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		id, err := creator.CreateStatus(ctx, req)
		if err != nil {
			respond.Error(w, log, op, err, "erro ao criar status")
			return
		}

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, map[string]interface{}{
			"status": "created",
			"id":     id,
		})
	}
}
