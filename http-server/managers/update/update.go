package update

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/render"

	"reforma-painel/http-server/respond"
	"reforma-painel/internal/storage"
)

type ManagerSyncer interface {
	SyncManagers(ctx context.Context, managers []storage.Manager) error
}

// SyncManagers replaces the managers table with the submitted grid. Rows with
// id 0 are new, rows missing from the grid are deleted.
func SyncManagers(log *slog.Logger, syncer ManagerSyncer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.managers.SyncManagers"

		var req []storage.Manager
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Invalid JSON", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "dados inválidos", http.StatusBadRequest)
			return
		}

		for i := range req {
			req[i].Nome = strings.TrimSpace(req[i].Nome)
			// blank rows without id are empty grid lines and get dropped downstream
			if req[i].ID != 0 && req[i].Nome == "" {
				http.Error(w, fmt.Sprintf("nome obrigatório (gestor %d)", req[i].ID), http.StatusBadRequest)
				return
			}
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := syncer.SyncManagers(ctx, req); err != nil {
			respond.Error(w, log, op, err, "erro ao salvar gestores")
			return
		}

		log.Info("managers synced", slog.Int("rows", len(req)))

		render.JSON(w, r, map[string]interface{}{
			"status": strconv.Itoa(http.StatusOK),
		})
	}
}
