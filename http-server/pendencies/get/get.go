package get

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/render"

	"reforma-painel/http-server/respond"
	"reforma-painel/internal/service/board"
)

type BoardProvider interface {
	Board(ctx context.Context, gestores []int64) (*board.Board, error)
}

// GetBoard returns the three lanes. Repeat ?gestor= to filter by managers.
func GetBoard(log *slog.Logger, provider BoardProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.pendencies.GetBoard"

		var gestores []int64
		for _, raw := range r.URL.Query()["gestor"] {
			id, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				http.Error(w, "gestor inválido", http.StatusBadRequest)
				return
			}
			gestores = append(gestores, id)
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		b, err := provider.Board(ctx, gestores)
		if err != nil {
			respond.Error(w, log, op, err, "erro ao carregar quadro")
			return
		}

		render.JSON(w, r, b)
	}
}
