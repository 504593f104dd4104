package scheduler

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	repomocks "github.com/vfg2006/budget-planner-api/infrastructure/repository/mocks"
	"github.com/vfg2006/budget-planner-api/internal/config"
	"github.com/vfg2006/budget-planner-api/internal/domain"
	"go.uber.org/mock/gomock"
)

func alertsTestConfig() *config.Config {
	return &config.Config{
		BudgetAlerts: config.BudgetAlerts{
			CronSchedule: "*/15 * * * *",
			Threshold:    0.9,
			Enabled:      true,
		},
	}
}

func TestBudgetAlertsService_scanBrands(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockBrandRepo := repomocks.NewMockBrandRepository(ctrl)
	service := NewBudgetAlertsService(mockBrandRepo, alertsTestConfig(), nil)

	t.Run("Limiar é inclusivo", func(t *testing.T) {
		brand := &domain.Brand{
			Name:          "Marca no limiar",
			DailyBudget:   decimal.NewFromInt(100),
			DailySpend:    decimal.NewFromInt(90),
			MonthlyBudget: decimal.NewFromInt(2000),
			MonthlySpend:  decimal.NewFromInt(100),
		}

		alerts := service.scanBrands([]*domain.Brand{brand})

		assert.Len(t, alerts, 1)
		assert.Equal(t, domain.AlertTypeDailyBudgetWarning, alerts[0].Type)
		assert.Equal(t, "Marca no limiar", alerts[0].Brand)
		assert.InDelta(t, 90.0, alerts[0].PercentUsed, 0.0001)
	})

	t.Run("Percentual é reportado na escala 0-100 com duas casas", func(t *testing.T) {
		brand := &domain.Brand{
			Name:          "Marca quase no teto",
			DailyBudget:   decimal.NewFromInt(3),
			DailySpend:    decimal.RequireFromString("2.90"),
			MonthlyBudget: decimal.NewFromInt(2000),
			MonthlySpend:  decimal.NewFromInt(100),
		}

		alerts := service.scanBrands([]*domain.Brand{brand})

		assert.Len(t, alerts, 1)
		assert.InDelta(t, 96.67, alerts[0].PercentUsed, 0.0001)
	})

	t.Run("Abaixo do limiar não emite nada", func(t *testing.T) {
		brand := &domain.Brand{
			Name:          "Marca folgada",
			DailyBudget:   decimal.NewFromInt(100),
			DailySpend:    decimal.NewFromInt(89),
			MonthlyBudget: decimal.NewFromInt(2000),
			MonthlySpend:  decimal.NewFromInt(500),
		}

		alerts := service.scanBrands([]*domain.Brand{brand})
		assert.Empty(t, alerts)
	})

	t.Run("Diário e mensal estourados geram dois alertas", func(t *testing.T) {
		brand := &domain.Brand{
			Name:          "Marca no teto",
			DailyBudget:   decimal.NewFromInt(100),
			DailySpend:    decimal.NewFromInt(100),
			MonthlyBudget: decimal.NewFromInt(1000),
			MonthlySpend:  decimal.NewFromInt(950),
		}

		alerts := service.scanBrands([]*domain.Brand{brand})

		assert.Len(t, alerts, 2)
		assert.Equal(t, domain.AlertTypeDailyBudgetWarning, alerts[0].Type)
		assert.Equal(t, domain.AlertTypeMonthlyBudgetWarning, alerts[1].Type)
	})

	t.Run("Teto zero nunca emite alerta", func(t *testing.T) {
		brand := &domain.Brand{
			Name:          "Marca sem verba",
			DailyBudget:   decimal.Zero,
			DailySpend:    decimal.NewFromInt(10),
			MonthlyBudget: decimal.Zero,
			MonthlySpend:  decimal.NewFromInt(10),
		}

		alerts := service.scanBrands([]*domain.Brand{brand})
		assert.Empty(t, alerts)
	})
}

func TestBudgetAlertsService_RunAlertScan(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockBrandRepo := repomocks.NewMockBrandRepository(ctrl)
	service := NewBudgetAlertsService(mockBrandRepo, alertsTestConfig(), nil)

	brand := &domain.Brand{
		Name:          "Marca no teto",
		DailyBudget:   decimal.NewFromInt(100),
		DailySpend:    decimal.NewFromInt(95),
		MonthlyBudget: decimal.NewFromInt(2000),
		MonthlySpend:  decimal.NewFromInt(100),
		IsActive:      true,
	}

	mockBrandRepo.EXPECT().ListActive().Return([]*domain.Brand{brand}, nil)

	alerts, err := service.RunAlertScan()
	assert.NoError(t, err)
	assert.Len(t, alerts, 1)

	status := service.GetStatus()
	assert.Equal(t, alerts, status["last_scan_alerts"])
}
