package update

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"reforma-painel/internal/storage"
)

type MockManagerReassigner struct {
	mock.Mock
}

func (m *MockManagerReassigner) ReassignManager(ctx context.Context, req storage.ManagerReassign) (int64, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(int64), args.Error(1)
}

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func put(h http.HandlerFunc, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPut, "/api/lots/manager", strings.NewReader(body))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestReassignManager_WholeLot(t *testing.T) {
	m := new(MockManagerReassigner)
	m.On("ReassignManager", mock.Anything, storage.ManagerReassign{Lote: "L1", GestorID: 3}).Return(int64(5), nil)

	rr := put(ReassignManager(discard, m), `{"lote":"L1","gestor_id":3}`)

	require.Equal(t, http.StatusOK, rr.Code)
	var resp map[string]interface{}
	require.NoError(t, render.DecodeJSON(rr.Body, &resp))
	assert.Equal(t, float64(5), resp["updated"])
}

func TestReassignManager_Validation(t *testing.T) {
	m := new(MockManagerReassigner)

	assert.Equal(t, http.StatusBadRequest, put(ReassignManager(discard, m), `{"gestor_id":3}`).Code)
	assert.Equal(t, http.StatusBadRequest, put(ReassignManager(discard, m), `{"lote":"L1"}`).Code)
	m.AssertNotCalled(t, "ReassignManager")
}

func TestReassignManager_UnknownManager(t *testing.T) {
	m := new(MockManagerReassigner)
	m.On("ReassignManager", mock.Anything, mock.Anything).Return(int64(0), storage.ErrUnknownManager)

	rr := put(ReassignManager(discard, m), `{"lote":"L1","gestor_id":42,"frotas":["F01"]}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
