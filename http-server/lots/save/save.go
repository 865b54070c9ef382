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
	"reforma-painel/internal/service/board"
	"reforma-painel/internal/storage"
)

type LotRegistrar interface {
	RegisterLot(ctx context.Context, req storage.LotRegistration, today string) (int, error)
	AddFleetUnit(ctx context.Context, lote string, unit storage.FleetUnit, today string) (int64, error)
}

// RegisterLot creates one work item per grid row with a fleet code. The whole
// batch is written or nothing is.
func RegisterLot(log *slog.Logger, registrar LotRegistrar) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.lots.RegisterLot"

		var req storage.LotRegistration
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Invalid JSON", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "dados inválidos", http.StatusBadRequest)
			return
		}

		req.Lote = strings.TrimSpace(req.Lote)
		if req.Lote == "" {
			http.Error(w, "nome do lote obrigatório", http.StatusBadRequest)
			return
		}
		if req.GestorID == 0 {
			http.Error(w, "responsável obrigatório", http.StatusBadRequest)
			return
		}
		if req.DataPrevisao != "" {
			if _, ok := board.ParseDate(req.DataPrevisao); !ok {
				http.Error(w, "data de previsão inválida, use AAAA-MM-DD", http.StatusBadRequest)
				return
			}
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		created, err := registrar.RegisterLot(ctx, req, time.Now().Format(time.DateOnly))
		if err != nil {
			respond.Error(w, log, op, err, "erro ao cadastrar lote")
			return
		}

		log.Info("lot registered", slog.String("lote", req.Lote), slog.Int("created", created))

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, map[string]interface{}{
			"status":  "created",
			"lote":    req.Lote,
			"created": created,
		})
	}
}

func AddFleetUnit(log *slog.Logger, registrar LotRegistrar) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.lots.AddFleetUnit"

		var req struct {
			Lote string `json:"lote"`
			storage.FleetUnit
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Invalid JSON", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "dados inválidos", http.StatusBadRequest)
			return
		}

		req.Frota = strings.TrimSpace(req.Frota)
		if req.Lote == "" {
			http.Error(w, "lote obrigatório", http.StatusBadRequest)
			return
		}
		if req.Frota == "" {
			http.Error(w, "frota obrigatória", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		id, err := registrar.AddFleetUnit(ctx, req.Lote, req.FleetUnit, time.Now().Format(time.DateOnly))
		if err != nil {
			respond.Error(w, log, op, err, "erro ao adicionar frota")
			return
		}

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, map[string]interface{}{
			"status": "created",
			"id":     id,
		})
	}
}
