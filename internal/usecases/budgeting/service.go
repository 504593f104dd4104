// Package budgeting mantém o livro-razão de orçamento: os caches de gasto
// diário e mensal de marcas e campanhas, sempre recalculáveis a partir do log
// de eventos de gasto.
package budgeting

import (
	"time"

	"github.com/pkg/errors"
	"github.com/vfg2006/budget-planner-api/infrastructure/repository"
	"github.com/vfg2006/budget-planner-api/internal/domain"
	"github.com/vfg2006/budget-planner-api/pkg/utils"
)

type Ledger interface {
	RecomputeCampaign(campaign *domain.Campaign) error
	RecomputeBrand(brand *domain.Brand) error
	Summary() (*domain.BudgetSummary, error)
}

type Service struct {
	brandRepo      repository.BrandRepository
	campaignRepo   repository.CampaignRepository
	spendEventRepo repository.SpendEventRepository
	location       *time.Location
}

func NewService(
	brandRepo repository.BrandRepository,
	campaignRepo repository.CampaignRepository,
	spendEventRepo repository.SpendEventRepository,
	location *time.Location,
) *Service {
	if location == nil {
		location = time.UTC
	}

	return &Service{
		brandRepo:      brandRepo,
		campaignRepo:   campaignRepo,
		spendEventRepo: spendEventRepo,
		location:       location,
	}
}

// RecomputeCampaign recalcula os caches de gasto da campanha a partir da soma
// dos eventos do dia corrente e do mês corrente, e persiste o resultado.
func (s *Service) RecomputeCampaign(campaign *domain.Campaign) error {
	return s.recomputeCampaignAt(campaign, time.Now().In(s.location))
}

func (s *Service) recomputeCampaignAt(campaign *domain.Campaign, now time.Time) error {
	dayStart, nextDay, monthStart := periodBounds(now)

	dailyTotal, err := s.spendEventRepo.SumByCampaignBetween(campaign.ID, dayStart, nextDay)
	if err != nil {
		return errors.Wrap(err, ErrSumSpendEvents.Error())
	}

	monthlyTotal, err := s.spendEventRepo.SumByCampaignSince(campaign.ID, monthStart)
	if err != nil {
		return errors.Wrap(err, ErrSumSpendEvents.Error())
	}

	campaign.DailySpend = dailyTotal
	campaign.MonthlySpend = monthlyTotal

	if err := s.campaignRepo.UpdateSpends(campaign.ID, dailyTotal, monthlyTotal); err != nil {
		return errors.Wrap(err, ErrPersistSpends.Error())
	}

	return nil
}

// RecomputeBrand recalcula os caches de gasto da marca somando os eventos de
// todas as suas campanhas direto do log, sem passar pelos caches das
// campanhas.
func (s *Service) RecomputeBrand(brand *domain.Brand) error {
	return s.recomputeBrandAt(brand, time.Now().In(s.location))
}

func (s *Service) recomputeBrandAt(brand *domain.Brand, now time.Time) error {
	dayStart, nextDay, monthStart := periodBounds(now)

	dailyTotal, err := s.spendEventRepo.SumByBrandBetween(brand.ID, dayStart, nextDay)
	if err != nil {
		return errors.Wrap(err, ErrSumSpendEvents.Error())
	}

	monthlyTotal, err := s.spendEventRepo.SumByBrandSince(brand.ID, monthStart)
	if err != nil {
		return errors.Wrap(err, ErrSumSpendEvents.Error())
	}

	brand.DailySpend = dailyTotal
	brand.MonthlySpend = monthlyTotal

	if err := s.brandRepo.UpdateSpends(brand.ID, dailyTotal, monthlyTotal); err != nil {
		return errors.Wrap(err, ErrPersistSpends.Error())
	}

	return nil
}

// Summary agrega o estado de orçamento de todas as marcas.
func (s *Service) Summary() (*domain.BudgetSummary, error) {
	brands, err := s.brandRepo.List()
	if err != nil {
		return nil, errors.Wrap(err, ErrFetchBrands.Error())
	}

	summary := &domain.BudgetSummary{
		TotalBrands: len(brands),
	}

	for _, brand := range brands {
		if brand.IsActive {
			summary.ActiveBrands++
		}
		if brand.DailyBudgetExceeded() {
			summary.DailyBudgetExceeded++
		}
		if brand.MonthlyBudgetExceeded() {
			summary.MonthlyBudgetExceeded++
		}

		summary.TotalDailySpend = summary.TotalDailySpend.Add(brand.DailySpend)
		summary.TotalMonthlySpend = summary.TotalMonthlySpend.Add(brand.MonthlySpend)
		summary.TotalDailyBudget = summary.TotalDailyBudget.Add(brand.DailyBudget)
		summary.TotalMonthlyBudget = summary.TotalMonthlyBudget.Add(brand.MonthlyBudget)
		summary.TotalDailyRemaining = summary.TotalDailyRemaining.Add(brand.DailyBudgetRemaining())
		summary.TotalMonthlyRemaining = summary.TotalMonthlyRemaining.Add(brand.MonthlyBudgetRemaining())
	}

	return summary, nil
}

// periodBounds retorna as fronteiras do dia corrente e do mês corrente no
// fuso de now. O dia é [meia-noite, meia-noite seguinte); o mês é dia 1 até o
// momento corrente.
func periodBounds(now time.Time) (dayStart, nextDay, monthStart time.Time) {
	dayStart = utils.StartOfDay(now)
	nextDay = dayStart.AddDate(0, 0, 1)
	monthStart = utils.FirstDayOfMonth(now)
	return dayStart, nextDay, monthStart
}
