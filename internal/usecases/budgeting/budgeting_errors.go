package budgeting

import "errors"

// Erros específicos para o contexto do livro-razão de orçamento
var (
	ErrSumSpendEvents = errors.New("erro ao somar eventos de gasto")
	ErrPersistSpends  = errors.New("erro ao persistir gastos recalculados")
	ErrFetchBrands    = errors.New("erro ao buscar marcas no banco de dados")
)
