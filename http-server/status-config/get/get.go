package get

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"reforma-painel/http-server/respond"
	"reforma-painel/internal/storage"
)

type StatusProvider interface {
	GetAllStatuses(ctx context.Context) ([]storage.StatusConfig, error)
}

func GetStatuses(log *slog.Logger, provider StatusProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.status_config.GetStatuses"

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		statuses, err := provider.GetAllStatuses(ctx)
		if err != nil {
			respond.Error(w, log, op, err, "erro ao carregar status")
			return
		}

		render.JSON(w, r, statuses)
	}
}
