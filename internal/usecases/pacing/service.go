// Package pacing implementa a máquina de status das campanhas: combina o
// estado de orçamento da marca com a avaliação de dayparting e decide o
// próximo status.
package pacing

import (
	"time"

	"github.com/pkg/errors"
	"github.com/vfg2006/budget-planner-api/infrastructure/repository"
	"github.com/vfg2006/budget-planner-api/internal/domain"
	"github.com/vfg2006/budget-planner-api/internal/usecases/dayparting"
)

type Pacer interface {
	EvaluateAndApply(campaign *domain.Campaign) (*domain.Campaign, error)
	ShouldBeActive(campaign *domain.Campaign) bool
}

type Service struct {
	campaignRepo repository.CampaignRepository
	location     *time.Location
}

func NewService(campaignRepo repository.CampaignRepository, location *time.Location) *Service {
	if location == nil {
		location = time.UTC
	}

	return &Service{
		campaignRepo: campaignRepo,
		location:     location,
	}
}

// NextStatus é a função pura da máquina de status. A ordem das regras define
// a precedência: marca inativa > orçamento estourado > fora da janela >
// liberação de pausa automática. paused nunca é computado aqui: é um override
// do operador que a máquina não limpa (o default preserva o status atual).
func NextStatus(brand *domain.Brand, withinWindow bool, current domain.CampaignStatus) domain.CampaignStatus {
	switch {
	case !brand.IsActive:
		return domain.CampaignStatusInactive
	case brand.BudgetExceeded():
		return domain.CampaignStatusBudgetExceeded
	case !withinWindow:
		return domain.CampaignStatusDaypartingPaused
	case current == domain.CampaignStatusBudgetExceeded || current == domain.CampaignStatusDaypartingPaused:
		// A condição que causou a pausa automática foi liberada
		return domain.CampaignStatusActive
	default:
		return current
	}
}

// EvaluateAndApply avalia a campanha agora e persiste o status resultante.
// A escrita acontece mesmo quando o status não mudou (escrita idempotente,
// atualiza o updated_at).
func (s *Service) EvaluateAndApply(campaign *domain.Campaign) (*domain.Campaign, error) {
	return s.evaluateAt(campaign, time.Now().In(s.location))
}

func (s *Service) evaluateAt(campaign *domain.Campaign, now time.Time) (*domain.Campaign, error) {
	if campaign.Brand == nil {
		return nil, ErrBrandNotLoaded
	}

	withinWindow := dayparting.IsWithinWindow(campaign, now)
	campaign.Status = NextStatus(campaign.Brand, withinWindow, campaign.Status)

	if err := s.campaignRepo.UpdateStatus(campaign.ID, campaign.Status); err != nil {
		return nil, errors.Wrap(err, ErrDatabaseOperation.Error())
	}

	campaign.UpdatedAt = now

	return campaign, nil
}

// ShouldBeActive é o predicado puro usado pelo dry-run: verdadeiro se a
// campanha estaria elegível a veicular agora. Não escreve nada. Diverge de
// EvaluateAndApply de propósito para campanhas paused cuja condição de
// bloqueio já passou: a máquina preserva o override do operador, o predicado
// só reporta elegibilidade.
func (s *Service) ShouldBeActive(campaign *domain.Campaign) bool {
	return shouldBeActiveAt(campaign, time.Now().In(s.location))
}

func shouldBeActiveAt(campaign *domain.Campaign, now time.Time) bool {
	if campaign.Brand == nil || !campaign.Brand.IsActive {
		return false
	}

	if campaign.Brand.BudgetExceeded() {
		return false
	}

	if campaign.DaypartingEnabled && !dayparting.IsWithinWindow(campaign, now) {
		return false
	}

	return campaign.Status != domain.CampaignStatusInactive &&
		campaign.Status != domain.CampaignStatusPaused
}
