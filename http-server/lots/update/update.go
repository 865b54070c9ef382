package update

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

type ManagerReassigner interface {
	ReassignManager(ctx context.Context, req storage.ManagerReassign) (int64, error)
}

// ReassignManager moves the selected fleet-units, or the whole lot when none are
// selected, to another manager in a single transaction.
func ReassignManager(log *slog.Logger, reassigner ManagerReassigner) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.lots.ReassignManager"

		var req storage.ManagerReassign
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Invalid JSON", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "dados inválidos", http.StatusBadRequest)
			return
		}

		if req.Lote == "" {
			http.Error(w, "lote obrigatório", http.StatusBadRequest)
			return
		}
		if req.GestorID == 0 {
			http.Error(w, "responsável obrigatório", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		updated, err := reassigner.ReassignManager(ctx, req)
		if err != nil {
			respond.Error(w, log, op, err, "erro ao trocar responsável")
			return
		}

		log.Info("manager reassigned", slog.String("lote", req.Lote), slog.Int64("updated", updated))

		render.JSON(w, r, map[string]interface{}{
			"status":  strconv.Itoa(http.StatusOK),
			"updated": updated,
		})
	}
}
