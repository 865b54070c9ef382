package update

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"reforma-painel/internal/storage"
)

type MockWorkItemUpdater struct {
	mock.Mock
}

func (m *MockWorkItemUpdater) UpdateWorkItem(ctx context.Context, id int64, upd storage.WorkItemUpdate) error {
	args := m.Called(ctx, id, upd)
	return args.Error(0)
}

func serve(h http.HandlerFunc, id, body string) *httptest.ResponseRecorder {
	router := chi.NewRouter()
	router.Put("/api/work-items/{id}", h)

	req := httptest.NewRequest(http.MethodPut, "/api/work-items/"+id, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func TestUpdateWorkItem_Success(t *testing.T) {
	m := new(MockWorkItemUpdater)
	m.On("UpdateWorkItem", mock.Anything, int64(4), storage.WorkItemUpdate{
		StatusID: 2, Progresso: 100, Observacao: "ok", GestorID: 1,
	}).Return(nil)

	rr := serve(UpdateWorkItem(discard, m), "4", `{"status_id":2,"progresso":100,"observacao":"ok","gestor_id":1}`)

	require.Equal(t, http.StatusOK, rr.Code)
	var resp map[string]interface{}
	require.NoError(t, render.DecodeJSON(rr.Body, &resp))
	assert.Equal(t, float64(4), resp["id"])
	m.AssertExpectations(t)
}

func TestUpdateWorkItem_Validation(t *testing.T) {
	tests := []struct {
		name string
		id   string
		body string
		msg  string
	}{
		{"bad id", "abc", `{}`, "id inválido"},
		{"bad json", "1", `{`, "dados inválidos"},
		{"no status", "1", `{"gestor_id":1,"progresso":10}`, "status obrigatório"},
		{"no manager", "1", `{"status_id":1,"progresso":10}`, "responsável obrigatório"},
		{"progress above 100", "1", `{"status_id":1,"gestor_id":1,"progresso":101}`, "progresso"},
		{"negative progress", "1", `{"status_id":1,"gestor_id":1,"progresso":-1}`, "progresso"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := new(MockWorkItemUpdater)
			rr := serve(UpdateWorkItem(discard, m), tt.id, tt.body)

			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.Contains(t, rr.Body.String(), tt.msg)
			m.AssertNotCalled(t, "UpdateWorkItem")
		})
	}
}

func TestUpdateWorkItem_StorageErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"not found", fmt.Errorf("op: %w", storage.ErrNotFound), http.StatusNotFound},
		{"unknown status", fmt.Errorf("op: %w", storage.ErrUnknownStatus), http.StatusBadRequest},
		{"database", fmt.Errorf("database is locked"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := new(MockWorkItemUpdater)
			m.On("UpdateWorkItem", mock.Anything, int64(1), mock.Anything).Return(tt.err)

			rr := serve(UpdateWorkItem(discard, m), "1", `{"status_id":1,"gestor_id":1,"progresso":50}`)
			assert.Equal(t, tt.code, rr.Code)
		})
	}
}
