package get

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"reforma-painel/http-server/respond"
)

type LotsProvider interface {
	GetLots(ctx context.Context) ([]string, error)
}

func GetLots(log *slog.Logger, provider LotsProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.lots.GetLots"

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		lots, err := provider.GetLots(ctx)
		if err != nil {
			respond.Error(w, log, op, err, "erro ao carregar lotes")
			return
		}

		render.JSON(w, r, lots)
	}
}
