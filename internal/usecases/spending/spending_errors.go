package spending

import (
	"errors"
	"fmt"
)

// Erros específicos para o contexto de registro de gastos
var (
	// ErrCampaignNotFound indica campanha inexistente; o chamador deve
	// re-resolver o identificador em vez de repetir a chamada
	ErrCampaignNotFound = errors.New("campanha não encontrada")
	// ErrNegativeAmount indica valor negativo; zero é permitido
	ErrNegativeAmount = errors.New("valor de gasto não pode ser negativo")

	ErrGenerateID        = errors.New("erro ao gerar identificador do evento")
	ErrDatabaseOperation = errors.New("erro ao realizar operação no banco de dados")
)

// SpendError é um erro com contexto adicional para registro de gastos
type SpendError struct {
	Err        error  // Erro base
	Code       string // Código de erro para API
	CampaignID string // ID da campanha envolvida (quando aplicável)
	Details    string // Detalhes adicionais
}

// Error implementa a interface error
func (e *SpendError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

// Unwrap retorna o erro subjacente
func (e *SpendError) Unwrap() error {
	return e.Err
}

// NewSpendError cria um novo SpendError
func NewSpendError(err error, code string, campaignID string, details string) *SpendError {
	return &SpendError{
		Err:        err,
		Code:       code,
		CampaignID: campaignID,
		Details:    details,
	}
}
