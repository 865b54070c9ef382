package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reforma-painel/internal/config"
	"reforma-painel/internal/service/board"
	generate_excel "reforma-painel/internal/service/generate-excel"
	generate_html "reforma-painel/internal/service/generate-html"
	"reforma-painel/internal/service/overview"
	"reforma-painel/internal/storage"
	"reforma-painel/internal/storage/sqlstore"
)

func setupServer(t *testing.T) *httptest.Server {
	t.Helper()

	st, err := sqlstore.New(config.Storage{Driver: sqlstore.DriverSQLite, Path: filepath.Join(t.TempDir(), "reforma.sqlite")})
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.Init(context.Background()))

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := services{
		board:    board.NewService(st, log, 15, time.Now),
		overview: overview.NewService(st, "Peça Pendente"),
		excel:    generate_excel.NewGenerateService(st),
		report:   generate_html.NewGenerateService(st, time.Now),
	}

	srv := httptest.NewServer(routes(config.Config{}, log, st, svc))
	t.Cleanup(srv.Close)
	return srv
}

func call(t *testing.T, srv *httptest.Server, method, path, body string, out any) int {
	t.Helper()

	req, err := http.NewRequest(method, srv.URL+path, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil && resp.StatusCode < 300 {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func idByName[T any](t *testing.T, items []T, name func(T) string, id func(T) int64, want string) int64 {
	t.Helper()
	for _, it := range items {
		if name(it) == want {
			return id(it)
		}
	}
	t.Fatalf("%q not found", want)
	return 0
}

func TestLotLifecycle(t *testing.T) {
	srv := setupServer(t)

	var managers []storage.Manager
	require.Equal(t, http.StatusOK, call(t, srv, http.MethodGet, "/api/managers", "", &managers))
	wendell := idByName(t, managers, func(m storage.Manager) string { return m.Nome }, func(m storage.Manager) int64 { return m.ID }, "Wendell")

	var statuses []storage.StatusConfig
	require.Equal(t, http.StatusOK, call(t, srv, http.MethodGet, "/api/status", "", &statuses))
	concluido := idByName(t, statuses, func(s storage.StatusConfig) string { return s.Nome }, func(s storage.StatusConfig) int64 { return s.ID }, "Concluído")

	body := fmt.Sprintf(`{"lote":"L1","gestor_id":%d,"data_previsao":"2026-12-01","units":[{"frota":"F01"},{"frota":""}]}`, wendell)
	require.Equal(t, http.StatusCreated, call(t, srv, http.MethodPost, "/api/lots", body, nil))

	var rows []map[string]any
	require.Equal(t, http.StatusOK, call(t, srv, http.MethodGet, "/api/work-items?lote=L1", "", &rows))
	require.Len(t, rows, 1)
	id := int64(rows[0]["id"].(float64))

	upd := fmt.Sprintf(`{"status_id":%d,"progresso":100,"gestor_id":%d}`, concluido, wendell)
	require.Equal(t, http.StatusOK, call(t, srv, http.MethodPut, fmt.Sprintf("/api/work-items/%d", id), upd, nil))

	var ov overview.Summary
	var panel struct {
		Resumo *overview.Summary `json:"resumo"`
	}
	panel.Resumo = &ov
	require.Equal(t, http.StatusOK, call(t, srv, http.MethodGet, "/api/overview?lote=L1", "", &panel))
	assert.Equal(t, 1, ov.Total)
	assert.Equal(t, 1, ov.Concluidas)
	assert.Equal(t, 100, ov.MediaProgresso)

	assert.Equal(t, http.StatusConflict, call(t, srv, http.MethodDelete, fmt.Sprintf("/api/status/%d", concluido), "", nil))
}

func TestBoardLifecycle(t *testing.T) {
	srv := setupServer(t)

	var managers []storage.Manager
	require.Equal(t, http.StatusOK, call(t, srv, http.MethodGet, "/api/managers", "", &managers))

	var created struct {
		ID int64 `json:"id"`
	}
	body := fmt.Sprintf(`{"titulo":"Comprar filtro","gestor_id":%d,"prioridade":"Alta"}`, managers[0].ID)
	require.Equal(t, http.StatusCreated, call(t, srv, http.MethodPost, "/api/pendencies", body, &created))

	move := func(status string) int {
		return call(t, srv, http.MethodPost, fmt.Sprintf("/api/pendencies/%d/move", created.ID), `{"status":"`+status+`"}`, nil)
	}
	remove := func() int {
		return call(t, srv, http.MethodDelete, fmt.Sprintf("/api/pendencies/%d", created.ID), "", nil)
	}

	assert.Equal(t, http.StatusConflict, move("Feito"))
	assert.Equal(t, http.StatusConflict, remove())
	assert.Equal(t, http.StatusOK, move("Fazendo"))
	assert.Equal(t, http.StatusOK, move("Feito"))

	var b struct {
		Lanes []struct {
			Status string           `json:"status"`
			Cards  []map[string]any `json:"cards"`
		} `json:"lanes"`
	}
	require.Equal(t, http.StatusOK, call(t, srv, http.MethodGet, "/api/board", "", &b))
	require.Len(t, b.Lanes, 3)
	assert.Equal(t, "Feito", b.Lanes[2].Status)
	require.Len(t, b.Lanes[2].Cards, 1)
	assert.Equal(t, "Comprar filtro", b.Lanes[2].Cards[0]["titulo"])

	assert.Equal(t, http.StatusOK, remove())
}

func TestExports(t *testing.T) {
	srv := setupServer(t)

	resp, err := srv.Client().Get(srv.URL + "/api/export/excel")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var link map[string]string
	require.Equal(t, http.StatusOK, call(t, srv, http.MethodGet, "/api/export/report/link", "", &link))
	assert.True(t, strings.HasPrefix(link["href"], "data:text/html;base64,"))
}
