package get

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"reforma-painel/internal/service/overview"
)

type MockOverviewProvider struct {
	mock.Mock
}

func (m *MockOverviewProvider) Overview(ctx context.Context, lots []string) (*overview.Overview, error) {
	args := m.Called(ctx, lots)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*overview.Overview), args.Error(1)
}

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func TestGetOverview(t *testing.T) {
	m := new(MockOverviewProvider)
	m.On("Overview", mock.Anything, []string{"L1", "L2"}).Return(&overview.Overview{
		Lotes:        []string{"L1", "L2", "L3"},
		Selecionados: []string{"L1", "L2"},
		Resumo:       overview.Summary{Total: 2, Concluidas: 1, MediaProgresso: 50, Andamento: "50%"},
	}, nil)

	rr := httptest.NewRecorder()
	GetOverview(discard, m).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/overview?lote=L1&lote=L2", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	var resp overview.Overview
	require.NoError(t, render.DecodeJSON(rr.Body, &resp))
	assert.Equal(t, "50%", resp.Resumo.Andamento)
	assert.Equal(t, 1, resp.Resumo.Concluidas)
}

func TestGetOverview_Error(t *testing.T) {
	m := new(MockOverviewProvider)
	m.On("Overview", mock.Anything, []string(nil)).Return(nil, errors.New("no such table: reformas"))

	rr := httptest.NewRecorder()
	GetOverview(discard, m).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/overview", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.NotContains(t, rr.Body.String(), "reformas")
}
