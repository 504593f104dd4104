package domain

import "github.com/shopspring/decimal"

// StatusSweepResult é a contagem de transições aplicadas por uma varredura de
// status. Transições para paused nunca aparecem aqui: a máquina de status não
// transiciona para esse estado, ele é exclusivo do operador.
type StatusSweepResult struct {
	Activated        int `json:"activated"`
	BudgetPaused     int `json:"budget_paused"`
	DaypartingPaused int `json:"dayparting_paused"`
	Deactivated      int `json:"deactivated"`
}

// Total retorna o número total de campanhas que mudaram de status na varredura.
func (r StatusSweepResult) Total() int {
	return r.Activated + r.BudgetPaused + r.DaypartingPaused + r.Deactivated
}

// ResetPeriod identifica qual cache de gasto um reset zera.
type ResetPeriod string

const (
	ResetPeriodDaily   ResetPeriod = "daily"
	ResetPeriodMonthly ResetPeriod = "monthly"
)

// ResetReport é o resultado de um reset diário ou mensal. Em dry-run nada é
// persistido e Reactivated informa quantas campanhas SERIAM reativadas
// segundo o predicado ShouldBeActive.
type ResetReport struct {
	Period         ResetPeriod `json:"period"`
	DryRun         bool        `json:"dry_run"`
	BrandsReset    int         `json:"brands_reset"`
	CampaignsReset int         `json:"campaigns_reset"`
	Reactivated    int         `json:"reactivated"`
}

// Tipos de alerta de orçamento emitidos pela varredura de alertas.
const (
	AlertTypeDailyBudgetWarning   = "daily_budget_warning"
	AlertTypeMonthlyBudgetWarning = "monthly_budget_warning"
)

// BudgetAlert é um alerta de marca se aproximando do teto (>= 90%). Alertas
// são diagnósticos: retornados e logados, nunca persistidos. PercentUsed é o
// percentual de uso na escala 0-100 (90.0 = 90%), arredondado a duas casas;
// float64 por ser informativo, não financeiro.
type BudgetAlert struct {
	Type        string  `json:"type"`
	Brand       string  `json:"brand"`
	PercentUsed float64 `json:"percent_used"`
	Spend       float64 `json:"spend"`
	Budget      float64 `json:"budget"`
}

// BudgetSummary é o resumo agregado do estado de orçamento de todas as
// marcas. Os totais de saldo somam o saldo de cada marca já truncado em zero:
// marcas estouradas contribuem com zero, nunca com saldo negativo.
type BudgetSummary struct {
	TotalBrands           int             `json:"total_brands"`
	ActiveBrands          int             `json:"active_brands"`
	DailyBudgetExceeded   int             `json:"daily_budget_exceeded"`
	MonthlyBudgetExceeded int             `json:"monthly_budget_exceeded"`
	TotalDailySpend       decimal.Decimal `json:"total_daily_spend"`
	TotalMonthlySpend     decimal.Decimal `json:"total_monthly_spend"`
	TotalDailyBudget      decimal.Decimal `json:"total_daily_budget"`
	TotalMonthlyBudget    decimal.Decimal `json:"total_monthly_budget"`
	TotalDailyRemaining   decimal.Decimal `json:"total_daily_remaining"`
	TotalMonthlyRemaining decimal.Decimal `json:"total_monthly_remaining"`
}
