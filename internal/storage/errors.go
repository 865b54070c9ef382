package storage

import "errors"

var (
	ErrNotFound       = errors.New("registro não encontrado")
	ErrStatusExists   = errors.New("status já cadastrado")
	ErrStatusInUse    = errors.New("status em uso por máquinas")
	ErrUnknownStatus  = errors.New("status inexistente")
	ErrManagerExists  = errors.New("gestor já cadastrado")
	ErrUnknownManager = errors.New("gestor inexistente")
)
