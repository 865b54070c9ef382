package generate_html

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	htmlsvc "reforma-painel/internal/service/generate-html"
)

type GenerateHTMLHandler interface {
	GenerateReport(ctx context.Context) (*htmlsvc.Report, error)
}

// GenerateReportHTML downloads the printable kanban report.
func GenerateReportHTML(log *slog.Logger, gen GenerateHTMLHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.export.GenerateReportHTML"

		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
		defer cancel()

		rep, err := gen.GenerateReport(ctx)
		if err != nil {
			log.Error("failed to generate report", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Erro ao gerar relatório", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Content-Disposition", "attachment; filename="+htmlsvc.FileName(rep.Day))
		if _, err := w.Write(rep.HTML); err != nil {
			log.Error("failed to write report", slog.String("op", op), slog.String("error", err.Error()))
		}
	}
}

// GenerateReportLink returns the report as a data-URI link the client can
// offer for download without a server-side file.
func GenerateReportLink(log *slog.Logger, gen GenerateHTMLHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.export.GenerateReportLink"

		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
		defer cancel()

		rep, err := gen.GenerateReport(ctx)
		if err != nil {
			log.Error("failed to generate report", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Erro ao gerar relatório", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, map[string]string{
			"href":     htmlsvc.DataURI(rep.HTML),
			"filename": htmlsvc.FileName(rep.Day),
		})
	}
}
