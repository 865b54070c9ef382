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

type WorkItemsProvider interface {
	WorkItems(ctx context.Context, lote, q string) ([]overview.Row, error)
}

// GetWorkItems lists work items of ?lote= (empty or "Todos" for all) whose fleet
// code contains ?q=.
func GetWorkItems(log *slog.Logger, provider WorkItemsProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.work_items.GetWorkItems"

		lote := r.URL.Query().Get("lote")
		q := r.URL.Query().Get("q")

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		rows, err := provider.WorkItems(ctx, lote, q)
		if err != nil {
			respond.Error(w, log, op, err, "erro ao carregar máquinas")
			return
		}

		render.JSON(w, r, rows)
	}
}
