// Package spending registra eventos de gasto e dispara o recálculo do
// livro-razão e a reavaliação de status da campanha.
package spending

import (
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/budget-planner-api/infrastructure/repository"
	"github.com/vfg2006/budget-planner-api/internal/domain"
	"github.com/vfg2006/budget-planner-api/internal/metrics"
	"github.com/vfg2006/budget-planner-api/internal/usecases/budgeting"
	"github.com/vfg2006/budget-planner-api/internal/usecases/pacing"
	"github.com/vfg2006/budget-planner-api/pkg/apiErrors"
	"github.com/vfg2006/budget-planner-api/pkg/utils"
)

type Recorder interface {
	RecordSpend(campaignID string, amount decimal.Decimal, description string) (*domain.SpendEvent, error)
}

type Service struct {
	campaignRepo   repository.CampaignRepository
	spendEventRepo repository.SpendEventRepository
	ledger         budgeting.Ledger
	pacer          pacing.Pacer
}

func NewService(
	campaignRepo repository.CampaignRepository,
	spendEventRepo repository.SpendEventRepository,
	ledger budgeting.Ledger,
	pacer pacing.Pacer,
) Recorder {
	return &Service{
		campaignRepo:   campaignRepo,
		spendEventRepo: spendEventRepo,
		ledger:         ledger,
		pacer:          pacer,
	}
}

// RecordSpend valida e grava um evento imutável de gasto, recalcula os caches
// da campanha e da marca (nesta ordem) e reavalia o status da campanha, para
// que o gasto possa virar budget_exceeded imediatamente.
func (s *Service) RecordSpend(campaignID string, amount decimal.Decimal, description string) (*domain.SpendEvent, error) {
	// Campanha inexistente tem precedência sobre a validação do valor
	campaign, err := s.campaignRepo.GetByID(campaignID)
	if err != nil {
		return nil, NewSpendError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, campaignID, "Falha ao buscar campanha")
	}
	if campaign == nil {
		return nil, NewSpendError(ErrCampaignNotFound, apiErrors.ErrCampaignNotFound, campaignID, "")
	}

	// Validação antes de qualquer efeito: nada é gravado em caso de erro
	if amount.IsNegative() {
		return nil, NewSpendError(ErrNegativeAmount, apiErrors.ErrNegativeAmount, campaignID, amount.String())
	}

	eventID, err := utils.GenerateID()
	if err != nil {
		return nil, NewSpendError(ErrGenerateID, apiErrors.ErrInternalServer, campaignID, "")
	}

	event := &domain.SpendEvent{
		ID:          eventID,
		CampaignID:  campaign.ID,
		Amount:      amount,
		Description: description,
	}

	if err := s.spendEventRepo.Create(event); err != nil {
		return nil, NewSpendError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, campaignID, "Falha ao gravar evento de gasto")
	}

	// Sempre campanha e depois marca
	if err := s.ledger.RecomputeCampaign(campaign); err != nil {
		return nil, NewSpendError(err, apiErrors.ErrDatabaseOperation, campaignID, "Falha ao recalcular gastos da campanha")
	}

	if err := s.ledger.RecomputeBrand(campaign.Brand); err != nil {
		return nil, NewSpendError(err, apiErrors.ErrDatabaseOperation, campaignID, "Falha ao recalcular gastos da marca")
	}

	if _, err := s.pacer.EvaluateAndApply(campaign); err != nil {
		return nil, NewSpendError(err, apiErrors.ErrDatabaseOperation, campaignID, "Falha ao reavaliar status da campanha")
	}

	metrics.SpendsRecorded.Inc()

	logrus.WithFields(logrus.Fields{
		"campaign_id": campaign.ID,
		"amount":      amount.String(),
		"status":      campaign.Status,
	}).Debug("Gasto registrado")

	return event, nil
}
