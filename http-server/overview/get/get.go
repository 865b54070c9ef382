package get

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"reforma-painel/http-server/respond"
	"reforma-painel/internal/service/overview"
)

type OverviewProvider interface {
	Overview(ctx context.Context, lots []string) (*overview.Overview, error)
}

// GetOverview serves the panel for the lots in ?lote= (repeatable), all lots
// when none is given.
func GetOverview(log *slog.Logger, provider OverviewProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.overview.GetOverview"

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		ov, err := provider.Overview(ctx, r.URL.Query()["lote"])
		if err != nil {
			respond.Error(w, log, op, err, "erro ao carregar painel")
			return
		}

		render.JSON(w, r, ov)
	}
}
