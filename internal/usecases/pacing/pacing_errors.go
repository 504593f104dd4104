package pacing

import "errors"

// Erros específicos para o contexto da máquina de status
var (
	ErrBrandNotLoaded    = errors.New("campanha sem marca carregada")
	ErrDatabaseOperation = errors.New("erro ao persistir status da campanha")
)
