package scheduler

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	repomocks "github.com/vfg2006/budget-planner-api/infrastructure/repository/mocks"
	"github.com/vfg2006/budget-planner-api/internal/config"
	"github.com/vfg2006/budget-planner-api/internal/domain"
	pacingmocks "github.com/vfg2006/budget-planner-api/internal/usecases/pacing/mocks"
	"go.uber.org/mock/gomock"
)

func sweepTestConfig() *config.Config {
	return &config.Config{
		StatusSweep: config.StatusSweep{
			CronSchedule: "*/5 * * * *",
			Enabled:      true,
		},
	}
}

func campaignInStatus(id string, status domain.CampaignStatus) *domain.Campaign {
	return &domain.Campaign{
		ID:     id,
		Status: status,
		Brand: &domain.Brand{
			ID:            "BRAND01",
			DailyBudget:   decimal.NewFromInt(100),
			MonthlyBudget: decimal.NewFromInt(2000),
			IsActive:      true,
		},
	}
}

func TestStatusSweepService_sweepCampaigns(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockCampaignRepo := repomocks.NewMockCampaignRepository(ctrl)
	mockPacer := pacingmocks.NewMockPacer(ctrl)

	service := NewStatusSweepService(mockCampaignRepo, mockPacer, sweepTestConfig(), nil)

	t.Run("Tabula as transições por estado de destino", func(t *testing.T) {
		unchanged := campaignInStatus("CAMP01", domain.CampaignStatusActive)
		released := campaignInStatus("CAMP02", domain.CampaignStatusBudgetExceeded)
		paused := campaignInStatus("CAMP03", domain.CampaignStatusActive)
		closed := campaignInStatus("CAMP04", domain.CampaignStatusActive)

		mockPacer.EXPECT().EvaluateAndApply(unchanged).Return(unchanged, nil)
		mockPacer.EXPECT().EvaluateAndApply(released).
			DoAndReturn(func(c *domain.Campaign) (*domain.Campaign, error) {
				c.Status = domain.CampaignStatusActive
				return c, nil
			})
		mockPacer.EXPECT().EvaluateAndApply(paused).
			DoAndReturn(func(c *domain.Campaign) (*domain.Campaign, error) {
				c.Status = domain.CampaignStatusBudgetExceeded
				return c, nil
			})
		mockPacer.EXPECT().EvaluateAndApply(closed).
			DoAndReturn(func(c *domain.Campaign) (*domain.Campaign, error) {
				c.Status = domain.CampaignStatusDaypartingPaused
				return c, nil
			})

		result := service.sweepCampaigns([]*domain.Campaign{unchanged, released, paused, closed})

		assert.Equal(t, 1, result.Activated)
		assert.Equal(t, 1, result.BudgetPaused)
		assert.Equal(t, 1, result.DaypartingPaused)
		assert.Equal(t, 0, result.Deactivated)
		assert.Equal(t, 3, result.Total())
	})

	t.Run("Erro em uma campanha não interrompe a varredura", func(t *testing.T) {
		broken := campaignInStatus("CAMP01", domain.CampaignStatusActive)
		healthy := campaignInStatus("CAMP02", domain.CampaignStatusDaypartingPaused)

		mockPacer.EXPECT().EvaluateAndApply(broken).Return(nil, errors.New("conexão perdida"))
		mockPacer.EXPECT().EvaluateAndApply(healthy).
			DoAndReturn(func(c *domain.Campaign) (*domain.Campaign, error) {
				c.Status = domain.CampaignStatusActive
				return c, nil
			})

		result := service.sweepCampaigns([]*domain.Campaign{broken, healthy})

		assert.Equal(t, 1, result.Activated)
		assert.Equal(t, 1, result.Total())
	})
}

func TestStatusSweepService_RunStatusSweep(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockCampaignRepo := repomocks.NewMockCampaignRepository(ctrl)
	mockPacer := pacingmocks.NewMockPacer(ctrl)

	service := NewStatusSweepService(mockCampaignRepo, mockPacer, sweepTestConfig(), nil)

	t.Run("Falha ao listar campanhas é propagada", func(t *testing.T) {
		mockCampaignRepo.EXPECT().ListAll().Return(nil, errors.New("conexão perdida"))

		_, err := service.RunStatusSweep()
		assert.Error(t, err)
	})

	t.Run("Varredura completa guarda o resultado no status", func(t *testing.T) {
		campaign := campaignInStatus("CAMP01", domain.CampaignStatusActive)

		mockCampaignRepo.EXPECT().ListAll().Return([]*domain.Campaign{campaign}, nil)
		mockPacer.EXPECT().EvaluateAndApply(campaign).
			DoAndReturn(func(c *domain.Campaign) (*domain.Campaign, error) {
				c.Status = domain.CampaignStatusInactive
				return c, nil
			})

		result, err := service.RunStatusSweep()
		assert.NoError(t, err)
		assert.Equal(t, 1, result.Deactivated)

		status := service.GetStatus()
		assert.Equal(t, *result, status["last_sweep_result"])
	})
}
