package remove

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"reforma-painel/internal/storage"
)

type MockStatusRemover struct {
	mock.Mock
}

func (m *MockStatusRemover) DeleteStatus(ctx context.Context, id int64, reassignTo *int64) error {
	return m.Called(ctx, id, reassignTo).Error(0)
}

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func del(h http.HandlerFunc, target string) *httptest.ResponseRecorder {
	router := chi.NewRouter()
	router.Delete("/api/status/{id}", h)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodDelete, target, nil))
	return rr
}

func TestDeleteStatus_Unused(t *testing.T) {
	m := new(MockStatusRemover)
	m.On("DeleteStatus", mock.Anything, int64(3), (*int64)(nil)).Return(nil)

	assert.Equal(t, http.StatusOK, del(DeleteStatus(discard, m), "/api/status/3").Code)
	m.AssertExpectations(t)
}

func TestDeleteStatus_InUse(t *testing.T) {
	m := new(MockStatusRemover)
	m.On("DeleteStatus", mock.Anything, int64(3), (*int64)(nil)).
		Return(fmt.Errorf("storage.sqlstore.DeleteStatus: id=3: %w", storage.ErrStatusInUse))

	rr := del(DeleteStatus(discard, m), "/api/status/3")

	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Contains(t, rr.Body.String(), storage.ErrStatusInUse.Error())
}

func TestDeleteStatus_Reassign(t *testing.T) {
	m := new(MockStatusRemover)
	m.On("DeleteStatus", mock.Anything, int64(3), mock.MatchedBy(func(to *int64) bool {
		return to != nil && *to == 1
	})).Return(nil)

	assert.Equal(t, http.StatusOK, del(DeleteStatus(discard, m), "/api/status/3?reassign_to=1").Code)
	m.AssertExpectations(t)
}

func TestDeleteStatus_BadParams(t *testing.T) {
	m := new(MockStatusRemover)

	assert.Equal(t, http.StatusBadRequest, del(DeleteStatus(discard, m), "/api/status/x").Code)
	assert.Equal(t, http.StatusBadRequest, del(DeleteStatus(discard, m), "/api/status/3?reassign_to=abc").Code)
	m.AssertNotCalled(t, "DeleteStatus")
}
