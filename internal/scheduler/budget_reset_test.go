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

func resetTestConfig() *config.Config {
	return &config.Config{
		BudgetReset: config.BudgetReset{
			DailyCronSchedule:   "0 0 * * *",
			MonthlyCronSchedule: "0 0 1 * *",
			Enabled:             true,
		},
	}
}

func TestBudgetResetService_applyReset(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockBrandRepo := repomocks.NewMockBrandRepository(ctrl)
	mockCampaignRepo := repomocks.NewMockCampaignRepository(ctrl)
	mockPacer := pacingmocks.NewMockPacer(ctrl)

	service := NewBudgetResetService(mockBrandRepo, mockCampaignRepo, mockPacer, resetTestConfig(), nil)

	t.Run("Reset diário zera os caches e conta as reativações", func(t *testing.T) {
		reactivatable := campaignInStatus("CAMP01", domain.CampaignStatusBudgetExceeded)
		stillPaused := campaignInStatus("CAMP02", domain.CampaignStatusPaused)

		mockBrandRepo.EXPECT().ResetDailySpends().Return(int64(3), nil)
		mockCampaignRepo.EXPECT().ResetDailySpends().Return(int64(5), nil)
		mockCampaignRepo.EXPECT().ListAll().
			Return([]*domain.Campaign{reactivatable, stillPaused}, nil)

		mockPacer.EXPECT().EvaluateAndApply(reactivatable).
			DoAndReturn(func(c *domain.Campaign) (*domain.Campaign, error) {
				c.Status = domain.CampaignStatusActive
				return c, nil
			})
		mockPacer.EXPECT().EvaluateAndApply(stillPaused).Return(stillPaused, nil)

		report, err := service.RunDailyReset(false)
		assert.NoError(t, err)
		assert.Equal(t, domain.ResetPeriodDaily, report.Period)
		assert.False(t, report.DryRun)
		assert.Equal(t, 3, report.BrandsReset)
		assert.Equal(t, 5, report.CampaignsReset)
		assert.Equal(t, 1, report.Reactivated)
	})

	t.Run("Reset mensal usa os contadores mensais", func(t *testing.T) {
		mockBrandRepo.EXPECT().ResetMonthlySpends().Return(int64(2), nil)
		mockCampaignRepo.EXPECT().ResetMonthlySpends().Return(int64(4), nil)
		mockCampaignRepo.EXPECT().ListAll().Return([]*domain.Campaign{}, nil)

		report, err := service.RunMonthlyReset(false)
		assert.NoError(t, err)
		assert.Equal(t, domain.ResetPeriodMonthly, report.Period)
		assert.Equal(t, 2, report.BrandsReset)
		assert.Equal(t, 4, report.CampaignsReset)
	})

	t.Run("Falha ao zerar os caches interrompe o reset", func(t *testing.T) {
		mockBrandRepo.EXPECT().ResetDailySpends().Return(int64(0), errors.New("conexão perdida"))

		_, err := service.RunDailyReset(false)
		assert.Error(t, err)
	})
}

func TestBudgetResetService_simulateReset(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockBrandRepo := repomocks.NewMockBrandRepository(ctrl)
	mockCampaignRepo := repomocks.NewMockCampaignRepository(ctrl)
	mockPacer := pacingmocks.NewMockPacer(ctrl)

	service := NewBudgetResetService(mockBrandRepo, mockCampaignRepo, mockPacer, resetTestConfig(), nil)

	t.Run("Dry-run não escreve nada e estima as reativações", func(t *testing.T) {
		exceeded := campaignInStatus("CAMP01", domain.CampaignStatusBudgetExceeded)
		exceeded.DailySpend = decimal.NewFromInt(80)
		exceeded.Brand.DailySpend = decimal.NewFromInt(80)

		untouched := campaignInStatus("CAMP02", domain.CampaignStatusActive)

		mockBrandRepo.EXPECT().Count().Return(2, nil)
		mockCampaignRepo.EXPECT().Count().Return(2, nil)
		mockCampaignRepo.EXPECT().ListAll().
			Return([]*domain.Campaign{exceeded, untouched}, nil)

		// O predicado recebe cópias com o cache diário zerado
		mockPacer.EXPECT().ShouldBeActive(gomock.Any()).
			DoAndReturn(func(c *domain.Campaign) bool {
				assert.True(t, c.DailySpend.IsZero())
				assert.True(t, c.Brand.DailySpend.IsZero())
				return true
			})

		report, err := service.RunDailyReset(true)
		assert.NoError(t, err)
		assert.True(t, report.DryRun)
		assert.Equal(t, 2, report.BrandsReset)
		assert.Equal(t, 2, report.CampaignsReset)
		assert.Equal(t, 1, report.Reactivated)

		// As entidades originais permanecem intactas
		assert.True(t, exceeded.DailySpend.Equal(decimal.NewFromInt(80)))
		assert.Equal(t, domain.CampaignStatusBudgetExceeded, exceeded.Status)
	})

	t.Run("Contagem do dry-run bate com a do reset real", func(t *testing.T) {
		// O reset real reporta o RowsAffected do UPDATE incondicional; a
		// simulação conta da mesma forma, todas as linhas
		mockBrandRepo.EXPECT().Count().Return(3, nil)
		mockCampaignRepo.EXPECT().Count().Return(5, nil)
		mockCampaignRepo.EXPECT().ListAll().Return([]*domain.Campaign{}, nil)

		dryReport, err := service.RunDailyReset(true)
		assert.NoError(t, err)

		mockBrandRepo.EXPECT().ResetDailySpends().Return(int64(3), nil)
		mockCampaignRepo.EXPECT().ResetDailySpends().Return(int64(5), nil)
		mockCampaignRepo.EXPECT().ListAll().Return([]*domain.Campaign{}, nil)

		realReport, err := service.RunDailyReset(false)
		assert.NoError(t, err)

		assert.Equal(t, realReport.BrandsReset, dryReport.BrandsReset)
		assert.Equal(t, realReport.CampaignsReset, dryReport.CampaignsReset)
	})

	t.Run("Campanha pausada pelo operador não entra na estimativa", func(t *testing.T) {
		paused := campaignInStatus("CAMP01", domain.CampaignStatusPaused)
		paused.DailySpend = decimal.NewFromInt(10)

		mockBrandRepo.EXPECT().Count().Return(1, nil)
		mockCampaignRepo.EXPECT().Count().Return(1, nil)
		mockCampaignRepo.EXPECT().ListAll().Return([]*domain.Campaign{paused}, nil)

		report, err := service.RunDailyReset(true)
		assert.NoError(t, err)
		assert.Equal(t, 1, report.CampaignsReset)
		assert.Equal(t, 0, report.Reactivated)
	})
}
