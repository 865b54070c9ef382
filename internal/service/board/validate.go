package board

import (
	"strings"

	"reforma-painel/internal/constants"
	"reforma-painel/internal/storage"
)

// ValidationError is a missing or malformed form field; nothing was written.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

func ValidateInput(in storage.PendencyInput) error {
	if strings.TrimSpace(in.Titulo) == "" {
		return &ValidationError{Field: "titulo", Message: "título obrigatório"}
	}
	if in.GestorID == 0 {
		return &ValidationError{Field: "gestor_id", Message: "responsável obrigatório"}
	}
	if !constants.IsPrioridade(in.Prioridade) {
		return &ValidationError{Field: "prioridade", Message: "prioridade deve ser Alta, Média ou Baixa"}
	}
	if in.DataPrazo != "" {
		if _, ok := ParseDate(in.DataPrazo); !ok {
			return &ValidationError{Field: "data_prazo", Message: "data inválida, use AAAA-MM-DD"}
		}
	}
	return nil
}
