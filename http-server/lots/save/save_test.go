package save

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"reforma-painel/internal/storage"
)

type MockLotRegistrar struct {
	mock.Mock
}

func (m *MockLotRegistrar) RegisterLot(ctx context.Context, req storage.LotRegistration, today string) (int, error) {
	args := m.Called(ctx, req, today)
	return args.Int(0), args.Error(1)
}

func (m *MockLotRegistrar) AddFleetUnit(ctx context.Context, lote string, unit storage.FleetUnit, today string) (int64, error) {
	args := m.Called(ctx, lote, unit, today)
	return args.Get(0).(int64), args.Error(1)
}

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func post(h http.HandlerFunc, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/lots", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestRegisterLot_Success(t *testing.T) {
	m := new(MockLotRegistrar)
	m.On("RegisterLot", mock.Anything, mock.MatchedBy(func(req storage.LotRegistration) bool {
		return req.Lote == "L1" && req.GestorID == 2 && len(req.Units) == 2
	}), mock.MatchedBy(func(today string) bool {
		_, err := time.Parse(time.DateOnly, today)
		return err == nil
	})).Return(1, nil)

	rr := post(RegisterLot(discard, m), `{
		"lote": " L1 ", "gestor_id": 2, "data_previsao": "2026-05-01",
		"units": [{"frota": "F01", "modelo": "PC200"}, {"frota": ""}]
	}`)

	require.Equal(t, http.StatusCreated, rr.Code)
	var resp map[string]interface{}
	require.NoError(t, render.DecodeJSON(rr.Body, &resp))
	assert.Equal(t, float64(1), resp["created"])
	assert.Equal(t, "L1", resp["lote"])
	m.AssertExpectations(t)
}

func TestRegisterLot_Validation(t *testing.T) {
	tests := []struct {
		name string
		body string
		msg  string
	}{
		{"bad json", `{"lote":`, "dados inválidos"},
		{"blank lot", `{"lote":"  ","gestor_id":1}`, "nome do lote obrigatório"},
		{"no manager", `{"lote":"L1"}`, "responsável obrigatório"},
		{"bad date", `{"lote":"L1","gestor_id":1,"data_previsao":"01/05/2026"}`, "data de previsão inválida"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := new(MockLotRegistrar)
			rr := post(RegisterLot(discard, m), tt.body)

			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.Contains(t, rr.Body.String(), tt.msg)
			m.AssertNotCalled(t, "RegisterLot")
		})
	}
}

func TestRegisterLot_UnknownManager(t *testing.T) {
	m := new(MockLotRegistrar)
	m.On("RegisterLot", mock.Anything, mock.Anything, mock.Anything).
		Return(0, fmt.Errorf("storage.sqlstore.RegisterLot: %w", storage.ErrUnknownManager))

	rr := post(RegisterLot(discard, m), `{"lote":"L1","gestor_id":99}`)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), storage.ErrUnknownManager.Error())
}

func TestAddFleetUnit(t *testing.T) {
	m := new(MockLotRegistrar)
	m.On("AddFleetUnit", mock.Anything, "L1", storage.FleetUnit{Frota: "F09", Modelo: "D6"}, mock.Anything).
		Return(int64(12), nil)

	rr := post(AddFleetUnit(discard, m), `{"lote":"L1","frota":" F09 ","modelo":"D6"}`)

	require.Equal(t, http.StatusCreated, rr.Code)
	var resp map[string]interface{}
	require.NoError(t, render.DecodeJSON(rr.Body, &resp))
	assert.Equal(t, float64(12), resp["id"])
}

func TestAddFleetUnit_LotNotFound(t *testing.T) {
	m := new(MockLotRegistrar)
	m.On("AddFleetUnit", mock.Anything, "L9", mock.Anything, mock.Anything).
		Return(int64(0), fmt.Errorf("op: %w", storage.ErrNotFound))

	rr := post(AddFleetUnit(discard, m), `{"lote":"L9","frota":"F01"}`)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestAddFleetUnit_MissingFrota(t *testing.T) {
	m := new(MockLotRegistrar)
	rr := post(AddFleetUnit(discard, m), `{"lote":"L1","frota":" "}`)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	m.AssertNotCalled(t, "AddFleetUnit")
}
