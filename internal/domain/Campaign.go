package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CampaignStatus é o status corrente de uma campanha.
type CampaignStatus string

const (
	// CampaignStatusActive indica campanha veiculando normalmente
	CampaignStatusActive CampaignStatus = "active"
	// CampaignStatusPaused é um override manual do operador. A máquina de
	// status nunca transiciona PARA este estado nem o limpa automaticamente.
	CampaignStatusPaused CampaignStatus = "paused"
	// CampaignStatusBudgetExceeded indica pausa automática por estouro de orçamento da marca
	CampaignStatusBudgetExceeded CampaignStatus = "budget_exceeded"
	// CampaignStatusDaypartingPaused indica pausa automática por estar fora da janela de dayparting
	CampaignStatusDaypartingPaused CampaignStatus = "dayparting_paused"
	// CampaignStatusInactive indica campanha de marca desativada
	CampaignStatusInactive CampaignStatus = "inactive"
)

// Valid verifica se o status é um dos valores conhecidos.
func (s CampaignStatus) Valid() bool {
	switch s {
	case CampaignStatusActive,
		CampaignStatusPaused,
		CampaignStatusBudgetExceeded,
		CampaignStatusDaypartingPaused,
		CampaignStatusInactive:
		return true
	}
	return false
}

// Campaign é a unidade geradora de gasto de uma marca. Os campos de gasto têm
// a mesma semântica de cache dos campos da Brand, porém no escopo da campanha.
type Campaign struct {
	ID                 string             `json:"id"`
	BrandID            string             `json:"brand_id"`
	Name               string             `json:"name"`
	Status             CampaignStatus     `json:"status"`
	DailySpend         decimal.Decimal    `json:"daily_spend"`
	MonthlySpend       decimal.Decimal    `json:"monthly_spend"`
	DaypartingEnabled  bool               `json:"dayparting_enabled"`
	DaypartingSchedule DaypartingSchedule `json:"dayparting_schedule"`
	CreatedAt          time.Time          `json:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at"`

	// Brand é preenchida nas consultas com join; pode ser nil em listagens cruas
	Brand *Brand `json:"brand,omitempty"`
}

// CreateCampaignRequest é o payload de criação de campanha.
type CreateCampaignRequest struct {
	BrandID            string             `json:"brand_id"`
	Name               string             `json:"name"`
	DaypartingEnabled  bool               `json:"dayparting_enabled"`
	DaypartingSchedule DaypartingSchedule `json:"dayparting_schedule,omitempty"`
}

// UpdateCampaignRequest é o payload de edição de campanha. Campos nil não são alterados.
type UpdateCampaignRequest struct {
	ID                 string              `json:"-"`
	Name               *string             `json:"name,omitempty"`
	DaypartingEnabled  *bool               `json:"dayparting_enabled,omitempty"`
	DaypartingSchedule *DaypartingSchedule `json:"dayparting_schedule,omitempty"`
}

// SetCampaignStatusRequest é o payload do override manual de status. Apenas
// paused e active são aceitos pelo handler; os demais estados são computados.
type SetCampaignStatusRequest struct {
	Status CampaignStatus `json:"status"`
}
