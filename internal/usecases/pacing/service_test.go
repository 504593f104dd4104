package pacing

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/budget-planner-api/infrastructure/repository/mocks"
	"github.com/vfg2006/budget-planner-api/internal/domain"
	"go.uber.org/mock/gomock"
)

// Terça-feira, 10:30 UTC
var tuesdayMorning = time.Date(2024, 1, 16, 10, 30, 0, 0, time.UTC)

func activeBrand() *domain.Brand {
	return &domain.Brand{
		ID:            "BRAND01",
		Name:          "Marca Teste",
		DailyBudget:   decimal.NewFromInt(100),
		MonthlyBudget: decimal.NewFromInt(2000),
		DailySpend:    decimal.NewFromInt(10),
		MonthlySpend:  decimal.NewFromInt(50),
		IsActive:      true,
	}
}

func TestNextStatus(t *testing.T) {
	exceededBrand := activeBrand()
	exceededBrand.DailySpend = decimal.NewFromInt(100)

	inactiveBrand := activeBrand()
	inactiveBrand.IsActive = false
	inactiveBrand.DailySpend = decimal.NewFromInt(100)

	zeroBudgetBrand := activeBrand()
	zeroBudgetBrand.DailyBudget = decimal.Zero
	zeroBudgetBrand.DailySpend = decimal.Zero

	tests := []struct {
		name         string
		brand        *domain.Brand
		withinWindow bool
		current      domain.CampaignStatus
		expected     domain.CampaignStatus
	}{
		{
			name:         "Marca inativa vence todas as outras condições",
			brand:        inactiveBrand,
			withinWindow: false,
			current:      domain.CampaignStatusActive,
			expected:     domain.CampaignStatusInactive,
		},
		{
			name:         "Orçamento estourado vence dayparting",
			brand:        exceededBrand,
			withinWindow: false,
			current:      domain.CampaignStatusActive,
			expected:     domain.CampaignStatusBudgetExceeded,
		},
		{
			name:         "Teto zero está sempre estourado",
			brand:        zeroBudgetBrand,
			withinWindow: true,
			current:      domain.CampaignStatusActive,
			expected:     domain.CampaignStatusBudgetExceeded,
		},
		{
			name:         "Fora da janela pausa por dayparting",
			brand:        activeBrand(),
			withinWindow: false,
			current:      domain.CampaignStatusActive,
			expected:     domain.CampaignStatusDaypartingPaused,
		},
		{
			name:         "Pausa por orçamento é liberada quando a condição passa",
			brand:        activeBrand(),
			withinWindow: true,
			current:      domain.CampaignStatusBudgetExceeded,
			expected:     domain.CampaignStatusActive,
		},
		{
			name:         "Pausa por dayparting é liberada quando a janela abre",
			brand:        activeBrand(),
			withinWindow: true,
			current:      domain.CampaignStatusDaypartingPaused,
			expected:     domain.CampaignStatusActive,
		},
		{
			name:         "Paused manual não é limpo pela máquina",
			brand:        activeBrand(),
			withinWindow: true,
			current:      domain.CampaignStatusPaused,
			expected:     domain.CampaignStatusPaused,
		},
		{
			name:         "Active sem condição adversa permanece active",
			brand:        activeBrand(),
			withinWindow: true,
			current:      domain.CampaignStatusActive,
			expected:     domain.CampaignStatusActive,
		},
		{
			name:         "Inactive de marca reativada sem outra condição permanece inactive",
			brand:        activeBrand(),
			withinWindow: true,
			current:      domain.CampaignStatusInactive,
			expected:     domain.CampaignStatusInactive,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NextStatus(tt.brand, tt.withinWindow, tt.current))
		})
	}
}

func TestService_evaluateAt(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockCampaignRepo := mocks.NewMockCampaignRepository(ctrl)
	service := NewService(mockCampaignRepo, time.UTC)

	t.Run("Persiste o status mesmo sem mudança", func(t *testing.T) {
		campaign := &domain.Campaign{
			ID:     "CAMP01",
			Status: domain.CampaignStatusActive,
			Brand:  activeBrand(),
		}

		mockCampaignRepo.EXPECT().
			UpdateStatus("CAMP01", domain.CampaignStatusActive).
			Return(nil)

		updated, err := service.evaluateAt(campaign, tuesdayMorning)
		assert.NoError(t, err)
		assert.Equal(t, domain.CampaignStatusActive, updated.Status)
	})

	t.Run("Aplica budget_exceeded quando a marca estoura", func(t *testing.T) {
		brand := activeBrand()
		brand.MonthlySpend = decimal.NewFromInt(2000)

		campaign := &domain.Campaign{
			ID:     "CAMP01",
			Status: domain.CampaignStatusActive,
			Brand:  brand,
		}

		mockCampaignRepo.EXPECT().
			UpdateStatus("CAMP01", domain.CampaignStatusBudgetExceeded).
			Return(nil)

		updated, err := service.evaluateAt(campaign, tuesdayMorning)
		assert.NoError(t, err)
		assert.Equal(t, domain.CampaignStatusBudgetExceeded, updated.Status)
	})

	t.Run("Campanha sem marca carregada é erro", func(t *testing.T) {
		campaign := &domain.Campaign{
			ID:     "CAMP01",
			Status: domain.CampaignStatusActive,
		}

		_, err := service.evaluateAt(campaign, tuesdayMorning)
		assert.ErrorIs(t, err, ErrBrandNotLoaded)
	})

	t.Run("Falha de escrita é propagada", func(t *testing.T) {
		campaign := &domain.Campaign{
			ID:     "CAMP01",
			Status: domain.CampaignStatusActive,
			Brand:  activeBrand(),
		}

		mockCampaignRepo.EXPECT().
			UpdateStatus("CAMP01", domain.CampaignStatusActive).
			Return(errors.New("conexão perdida"))

		_, err := service.evaluateAt(campaign, tuesdayMorning)
		assert.Error(t, err)
	})
}

func TestShouldBeActiveAt(t *testing.T) {
	outsideWindowSchedule := domain.DaypartingSchedule{
		"tuesday": {{Start: "18:00", End: "22:00"}},
	}

	tests := []struct {
		name     string
		campaign *domain.Campaign
		expected bool
	}{
		{
			name: "Campanha ativa dentro das condições",
			campaign: &domain.Campaign{
				Status: domain.CampaignStatusActive,
				Brand:  activeBrand(),
			},
			expected: true,
		},
		{
			name: "Sem marca carregada nunca é elegível",
			campaign: &domain.Campaign{
				Status: domain.CampaignStatusActive,
			},
			expected: false,
		},
		{
			name: "Marca inativa",
			campaign: &domain.Campaign{
				Status: domain.CampaignStatusActive,
				Brand: &domain.Brand{
					DailyBudget:   decimal.NewFromInt(100),
					MonthlyBudget: decimal.NewFromInt(2000),
					IsActive:      false,
				},
			},
			expected: false,
		},
		{
			name: "Fora da janela de dayparting",
			campaign: &domain.Campaign{
				Status:             domain.CampaignStatusActive,
				DaypartingEnabled:  true,
				DaypartingSchedule: outsideWindowSchedule,
				Brand:              activeBrand(),
			},
			expected: false,
		},
		{
			name: "Paused manual não é elegível mesmo com tudo liberado",
			campaign: &domain.Campaign{
				Status: domain.CampaignStatusPaused,
				Brand:  activeBrand(),
			},
			expected: false,
		},
		{
			name: "Budget_exceeded com orçamento liberado é elegível",
			campaign: &domain.Campaign{
				Status: domain.CampaignStatusBudgetExceeded,
				Brand:  activeBrand(),
			},
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, shouldBeActiveAt(tt.campaign, tuesdayMorning))
		})
	}
}
