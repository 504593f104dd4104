package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SpendEvent é o registro imutável de um gasto contra uma campanha. Eventos
// são append-only: os jobs de reset zeram apenas os caches de agregado, nunca
// apagam o histórico.
type SpendEvent struct {
	ID          string          `json:"id"`
	CampaignID  string          `json:"campaign_id"`
	Amount      decimal.Decimal `json:"amount"`
	Timestamp   time.Time       `json:"timestamp"`
	Description string          `json:"description"`
}

// RecordSpendRequest é o payload de registro de gasto via API.
type RecordSpendRequest struct {
	CampaignID  string          `json:"campaign_id"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
}
