package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Brand é o anunciante dono dos orçamentos. DailySpend e MonthlySpend são
// caches derivados do log de eventos de gasto: podem ser zerados ou
// recalculados a qualquer momento sem perda de histórico.
type Brand struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	DailyBudget   decimal.Decimal `json:"daily_budget"`
	MonthlyBudget decimal.Decimal `json:"monthly_budget"`
	DailySpend    decimal.Decimal `json:"daily_spend"`
	MonthlySpend  decimal.Decimal `json:"monthly_spend"`
	IsActive      bool            `json:"is_active"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// DailyBudgetRemaining retorna quanto ainda pode ser gasto hoje, nunca
// negativo.
func (b *Brand) DailyBudgetRemaining() decimal.Decimal {
	remaining := b.DailyBudget.Sub(b.DailySpend)
	if remaining.IsNegative() {
		return decimal.Zero
	}
	return remaining
}

// MonthlyBudgetRemaining retorna quanto ainda pode ser gasto no mês, nunca
// negativo.
func (b *Brand) MonthlyBudgetRemaining() decimal.Decimal {
	remaining := b.MonthlyBudget.Sub(b.MonthlySpend)
	if remaining.IsNegative() {
		return decimal.Zero
	}
	return remaining
}

// DailyBudgetExceeded é verdadeiro quando o gasto do dia atingiu o teto.
// Teto zero está sempre estourado: marca sem verba não veicula.
func (b *Brand) DailyBudgetExceeded() bool {
	return b.DailySpend.GreaterThanOrEqual(b.DailyBudget)
}

// MonthlyBudgetExceeded é verdadeiro quando o gasto do mês atingiu o teto.
func (b *Brand) MonthlyBudgetExceeded() bool {
	return b.MonthlySpend.GreaterThanOrEqual(b.MonthlyBudget)
}

// BudgetExceeded é verdadeiro quando qualquer um dos tetos foi atingido.
func (b *Brand) BudgetExceeded() bool {
	return b.DailyBudgetExceeded() || b.MonthlyBudgetExceeded()
}

// CreateBrandRequest é o payload de criação de marca.
type CreateBrandRequest struct {
	Name          string          `json:"name"`
	DailyBudget   decimal.Decimal `json:"daily_budget"`
	MonthlyBudget decimal.Decimal `json:"monthly_budget"`
}

// UpdateBrandRequest é o payload de edição de marca. Campos nil não são alterados.
type UpdateBrandRequest struct {
	ID            string           `json:"-"`
	Name          *string          `json:"name,omitempty"`
	DailyBudget   *decimal.Decimal `json:"daily_budget,omitempty"`
	MonthlyBudget *decimal.Decimal `json:"monthly_budget,omitempty"`
	IsActive      *bool            `json:"is_active,omitempty"`
}
