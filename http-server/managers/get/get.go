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

type ManagersProvider interface {
	GetAllManagers(ctx context.Context) ([]storage.Manager, error)
}

func GetManagers(log *slog.Logger, provider ManagersProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.managers.GetManagers"

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		managers, err := provider.GetAllManagers(ctx)
		if err != nil {
			respond.Error(w, log, op, err, "erro ao carregar gestores")
			return
		}

		render.JSON(w, r, managers)
	}
}
