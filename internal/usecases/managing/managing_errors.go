package managing

import (
	"errors"
	"fmt"
)

// Erros específicos para o contexto de gerenciamento de marcas e campanhas
var (
	ErrBrandNotFound    = errors.New("marca não encontrada")
	ErrCampaignNotFound = errors.New("campanha não encontrada")
	ErrNameRequired     = errors.New("nome é obrigatório")
	ErrBrandIDRequired  = errors.New("ID da marca é obrigatório")
	ErrNegativeBudget   = errors.New("orçamento não pode ser negativo")
	ErrInvalidStatus    = errors.New("status inválido para override manual")
	ErrDuplicateName    = errors.New("nome já em uso")
	ErrInvalidSchedule  = errors.New("cronograma de dayparting inválido")

	ErrDatabaseOperation = errors.New("erro ao realizar operação no banco de dados")
)

// ManagementError é um erro com contexto adicional para gerenciamento
type ManagementError struct {
	Err     error  // Erro base
	Code    string // Código de erro para API
	Details string // Detalhes adicionais
}

// Error implementa a interface error
func (e *ManagementError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

// Unwrap retorna o erro subjacente
func (e *ManagementError) Unwrap() error {
	return e.Err
}

// NewManagementError cria um novo ManagementError
func NewManagementError(err error, code string, details string) *ManagementError {
	return &ManagementError{
		Err:     err,
		Code:    code,
		Details: details,
	}
}
