package remove

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/render"

	"reforma-painel/http-server/respond"
	"reforma-painel/internal/storage"
)

type FleetRemover interface {
	RemoveFleetUnits(ctx context.Context, req storage.FleetRemoval) (int64, error)
}

func RemoveFleetUnits(log *slog.Logger, remover FleetRemover) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.lots.RemoveFleetUnits"

		var req storage.FleetRemoval
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Invalid JSON", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "dados inválidos", http.StatusBadRequest)
			return
		}

		if req.Lote == "" {
			http.Error(w, "lote obrigatório", http.StatusBadRequest)
			return
		}
		if len(req.Frotas) == 0 {
			http.Error(w, "selecione ao menos uma frota", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		removed, err := remover.RemoveFleetUnits(ctx, req)
		if err != nil {
			respond.Error(w, log, op, err, "erro ao remover frotas")
			return
		}

		log.Info("fleet units removed", slog.String("lote", req.Lote), slog.Int64("removed", removed))

		render.JSON(w, r, map[string]interface{}{
			"status":  strconv.Itoa(http.StatusOK),
			"removed": removed,
		})
	}
}
