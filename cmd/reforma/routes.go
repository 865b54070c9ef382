package main

import (
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	excelhandler "reforma-painel/http-server/generate-report/generate-excel"
	htmlhandler "reforma-painel/http-server/generate-report/generate-html"
	getlots "reforma-painel/http-server/lots/get"
	removelots "reforma-painel/http-server/lots/remove"
	savelots "reforma-painel/http-server/lots/save"
	uplots "reforma-painel/http-server/lots/update"
	getmanagers "reforma-painel/http-server/managers/get"
	removemanagers "reforma-painel/http-server/managers/remove"
	savemanagers "reforma-painel/http-server/managers/save"
	upmanagers "reforma-painel/http-server/managers/update"
	getoverview "reforma-painel/http-server/overview/get"
	getboard "reforma-painel/http-server/pendencies/get"
	removependencies "reforma-painel/http-server/pendencies/remove"
	savependencies "reforma-painel/http-server/pendencies/save"
	uppendencies "reforma-painel/http-server/pendencies/update"
	getstatus "reforma-painel/http-server/status-config/get"
	removestatus "reforma-painel/http-server/status-config/remove"
	savestatus "reforma-painel/http-server/status-config/save"
	getworkitems "reforma-painel/http-server/work-items/get"
	upworkitems "reforma-painel/http-server/work-items/update"
	"reforma-painel/internal/config"
	"reforma-painel/internal/service/board"
	generate_excel "reforma-painel/internal/service/generate-excel"
	generate_html "reforma-painel/internal/service/generate-html"
	"reforma-painel/internal/service/overview"
	"reforma-painel/internal/storage/sqlstore"
)

type services struct {
	board    *board.Service
	overview *overview.Service
	excel    *generate_excel.GenerateExcelService
	report   *generate_html.GenerateHTMLService
}

func routes(cfg config.Config, log *slog.Logger, storage *sqlstore.Storage, svc services) *chi.Mux {
	router := chi.NewRouter()

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
	})

	router.Use(corsHandler.Handler)
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	router.Route("/api", func(r chi.Router) {
		r.Get("/overview", getoverview.GetOverview(log, svc.overview))

		r.Get("/lots", getlots.GetLots(log, storage))
		r.Post("/lots", savelots.RegisterLot(log, storage))
		r.Post("/lots/units", savelots.AddFleetUnit(log, storage))
		r.Post("/lots/units/remove", removelots.RemoveFleetUnits(log, storage))
		r.Put("/lots/manager", uplots.ReassignManager(log, storage))

		r.Get("/work-items", getworkitems.GetWorkItems(log, svc.overview))
		r.Put("/work-items/{id}", upworkitems.UpdateWorkItem(log, storage))

		r.Get("/managers", getmanagers.GetManagers(log, storage))
		r.Post("/managers", savemanagers.SaveManager(log, storage))
		r.Put("/managers", upmanagers.SyncManagers(log, storage))
		r.Delete("/managers/{id}", removemanagers.DeleteManager(log, storage))

		r.Get("/status", getstatus.GetStatuses(log, storage))
		r.Post("/status", savestatus.SaveStatus(log, storage))
		r.Delete("/status/{id}", removestatus.DeleteStatus(log, storage))

		r.Get("/board", getboard.GetBoard(log, svc.board))
		r.Post("/pendencies", savependencies.SavePendency(log, svc.board))
		r.Put("/pendencies/{id}", uppendencies.EditPendency(log, svc.board))
		r.Post("/pendencies/{id}/move", uppendencies.MovePendency(log, svc.board))
		r.Delete("/pendencies/{id}", removependencies.DeletePendency(log, svc.board))

		r.Get("/export/excel", excelhandler.GenerateReportExcel(log, svc.excel))
		r.Get("/export/report", htmlhandler.GenerateReportHTML(log, svc.report))
		r.Get("/export/report/link", htmlhandler.GenerateReportLink(log, svc.report))
	})

	mountFrontend(router, log, cfg.FrontendDir)

	return router
}

// mountFrontend serves the built client with an SPA fallback to index.html. The
// API keeps working when the bundle is absent.
func mountFrontend(router *chi.Mux, log *slog.Logger, frontendDir string) {
	if frontendDir == "" {
		return
	}
	if _, err := os.Stat(frontendDir); err != nil {
		log.Warn("frontend directory not found, serving API only", slog.String("path", frontendDir))
		return
	}

	fileServer := http.FileServer(http.Dir(frontendDir))
	router.Handle("/assets/*", fileServer)

	router.HandleFunc("/*", func(w http.ResponseWriter, r *http.Request) {
		path := filepath.Join(frontendDir, filepath.Clean("/"+r.URL.Path))
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			http.ServeFile(w, r, path)
			return
		}
		http.ServeFile(w, r, filepath.Join(frontendDir, "index.html"))
	})
}
