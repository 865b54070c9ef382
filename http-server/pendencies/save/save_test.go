package save

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"reforma-painel/internal/service/board"
	"reforma-painel/internal/storage"
)

type MockPendencyCreator struct {
	mock.Mock
}

func (m *MockPendencyCreator) Create(ctx context.Context, in storage.PendencyInput) (int64, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(int64), args.Error(1)
}

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func post(h http.HandlerFunc, body string) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/pendencies", strings.NewReader(body)))
	return rr
}

func TestSavePendency(t *testing.T) {
	frota := "F01"
	m := new(MockPendencyCreator)
	m.On("Create", mock.Anything, storage.PendencyInput{
		Titulo: "Comprar filtro", GestorID: 1, Prioridade: "Alta", FrotaVinculada: &frota, DataPrazo: "2026-03-12",
	}).Return(int64(10), nil)

	rr := post(SavePendency(discard, m),
		`{"titulo":"Comprar filtro","gestor_id":1,"prioridade":"Alta","frota_vinculada":"F01","data_prazo":"2026-03-12"}`)

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Contains(t, rr.Body.String(), `"id":10`)
}

func TestSavePendency_ValidationFromService(t *testing.T) {
	m := new(MockPendencyCreator)
	m.On("Create", mock.Anything, mock.Anything).
		Return(int64(0), &board.ValidationError{Field: "titulo", Message: "título obrigatório"})

	rr := post(SavePendency(discard, m), `{"gestor_id":1,"prioridade":"Alta"}`)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "título obrigatório")
}
