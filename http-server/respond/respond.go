// Package respond maps domain errors to HTTP responses for every handler.
package respond

import (
	"errors"
	"log/slog"
	"net/http"

	"reforma-painel/internal/service/board"
	"reforma-painel/internal/storage"
)

var (
	badRequest = []error{storage.ErrUnknownStatus, storage.ErrUnknownManager}
	conflict   = []error{
		storage.ErrStatusInUse, storage.ErrStatusExists, storage.ErrManagerExists,
		board.ErrInvalidTransition, board.ErrNotDone,
	}
)

// Status returns the HTTP status for err and the message safe to show the
// operator. Unknown errors get 500 and the generic message.
func Status(err error, generic string) (int, string) {
	var ve *board.ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest, ve.Error()
	}
	if errors.Is(err, storage.ErrNotFound) {
		return http.StatusNotFound, storage.ErrNotFound.Error()
	}
	for _, target := range badRequest {
		if errors.Is(err, target) {
			return http.StatusBadRequest, target.Error()
		}
	}
	for _, target := range conflict {
		if errors.Is(err, target) {
			return http.StatusConflict, target.Error()
		}
	}
	return http.StatusInternalServerError, generic
}

// Error writes the mapped response. Server faults are logged as errors, client
// faults as warnings.
func Error(w http.ResponseWriter, log *slog.Logger, op string, err error, generic string) {
	code, msg := Status(err, generic)
	if code >= http.StatusInternalServerError {
		log.Error(generic, slog.String("op", op), slog.String("error", err.Error()))
	} else {
		log.Warn(msg, slog.String("op", op), slog.String("error", err.Error()))
	}
	http.Error(w, msg, code)
}
