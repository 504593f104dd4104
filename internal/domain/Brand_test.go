package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestBrand_BudgetRemaining(t *testing.T) {
	tests := []struct {
		name             string
		brand            Brand
		dailyRemaining   decimal.Decimal
		monthlyRemaining decimal.Decimal
	}{
		{
			name: "Saldo é teto menos gasto",
			brand: Brand{
				DailyBudget:   decimal.NewFromInt(100),
				MonthlyBudget: decimal.NewFromInt(2000),
				DailySpend:    decimal.NewFromInt(40),
				MonthlySpend:  decimal.NewFromInt(500),
			},
			dailyRemaining:   decimal.NewFromInt(60),
			monthlyRemaining: decimal.NewFromInt(1500),
		},
		{
			name: "Gasto acima do teto trunca o saldo em zero",
			brand: Brand{
				DailyBudget:   decimal.NewFromInt(100),
				MonthlyBudget: decimal.NewFromInt(2000),
				DailySpend:    decimal.NewFromInt(150),
				MonthlySpend:  decimal.NewFromInt(2500),
			},
			dailyRemaining:   decimal.Zero,
			monthlyRemaining: decimal.Zero,
		},
		{
			name: "Gasto exatamente no teto zera o saldo",
			brand: Brand{
				DailyBudget:   decimal.NewFromInt(100),
				MonthlyBudget: decimal.NewFromInt(2000),
				DailySpend:    decimal.NewFromInt(100),
				MonthlySpend:  decimal.NewFromInt(2000),
			},
			dailyRemaining:   decimal.Zero,
			monthlyRemaining: decimal.Zero,
		},
		{
			name: "Teto zero com gasto residual não fica negativo",
			brand: Brand{
				DailySpend:   decimal.NewFromInt(10),
				MonthlySpend: decimal.NewFromInt(10),
			},
			dailyRemaining:   decimal.Zero,
			monthlyRemaining: decimal.Zero,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.brand.DailyBudgetRemaining().Equal(tt.dailyRemaining))
			assert.True(t, tt.brand.MonthlyBudgetRemaining().Equal(tt.monthlyRemaining))
			assert.False(t, tt.brand.DailyBudgetRemaining().IsNegative())
			assert.False(t, tt.brand.MonthlyBudgetRemaining().IsNegative())
		})
	}
}

func TestBrand_BudgetExceeded(t *testing.T) {
	t.Run("Teto zero está sempre estourado", func(t *testing.T) {
		brand := Brand{}
		assert.True(t, brand.DailyBudgetExceeded())
		assert.True(t, brand.MonthlyBudgetExceeded())
		assert.True(t, brand.BudgetExceeded())
	})

	t.Run("Um período estourado basta", func(t *testing.T) {
		brand := Brand{
			DailyBudget:   decimal.NewFromInt(100),
			MonthlyBudget: decimal.NewFromInt(2000),
			DailySpend:    decimal.NewFromInt(100),
			MonthlySpend:  decimal.NewFromInt(10),
		}
		assert.True(t, brand.DailyBudgetExceeded())
		assert.False(t, brand.MonthlyBudgetExceeded())
		assert.True(t, brand.BudgetExceeded())
	})
}
