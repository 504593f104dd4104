package dayparting

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/budget-planner-api/internal/domain"
)

// Terça-feira, 10:30 UTC
var tuesdayMorning = time.Date(2024, 1, 16, 10, 30, 0, 0, time.UTC)

func schedule(days map[string][]domain.DaypartingWindow) domain.DaypartingSchedule {
	return domain.DaypartingSchedule(days)
}

func TestIsWithinWindow(t *testing.T) {
	tests := []struct {
		name     string
		campaign *domain.Campaign
		now      time.Time
		expected bool
	}{
		{
			name: "Dayparting desligado nunca restringe",
			campaign: &domain.Campaign{
				DaypartingEnabled: false,
				DaypartingSchedule: schedule(map[string][]domain.DaypartingWindow{
					"tuesday": {{Start: "00:00", End: "00:01"}},
				}),
			},
			now:      tuesdayMorning,
			expected: true,
		},
		{
			name: "Dentro da janela",
			campaign: &domain.Campaign{
				DaypartingEnabled: true,
				DaypartingSchedule: schedule(map[string][]domain.DaypartingWindow{
					"tuesday": {{Start: "09:00", End: "17:00"}},
				}),
			},
			now:      tuesdayMorning,
			expected: true,
		},
		{
			name: "Limite inicial é inclusivo",
			campaign: &domain.Campaign{
				DaypartingEnabled: true,
				DaypartingSchedule: schedule(map[string][]domain.DaypartingWindow{
					"tuesday": {{Start: "09:00", End: "17:00"}},
				}),
			},
			now:      time.Date(2024, 1, 16, 9, 0, 0, 0, time.UTC),
			expected: true,
		},
		{
			name: "Limite final é inclusivo",
			campaign: &domain.Campaign{
				DaypartingEnabled: true,
				DaypartingSchedule: schedule(map[string][]domain.DaypartingWindow{
					"tuesday": {{Start: "09:00", End: "17:00"}},
				}),
			},
			now:      time.Date(2024, 1, 16, 17, 0, 0, 0, time.UTC),
			expected: true,
		},
		{
			name: "Um minuto antes da janela",
			campaign: &domain.Campaign{
				DaypartingEnabled: true,
				DaypartingSchedule: schedule(map[string][]domain.DaypartingWindow{
					"tuesday": {{Start: "09:00", End: "17:00"}},
				}),
			},
			now:      time.Date(2024, 1, 16, 8, 59, 0, 0, time.UTC),
			expected: false,
		},
		{
			name: "Um minuto depois da janela",
			campaign: &domain.Campaign{
				DaypartingEnabled: true,
				DaypartingSchedule: schedule(map[string][]domain.DaypartingWindow{
					"tuesday": {{Start: "09:00", End: "17:00"}},
				}),
			},
			now:      time.Date(2024, 1, 16, 17, 1, 0, 0, time.UTC),
			expected: false,
		},
		{
			name: "Dia sem entrada no cronograma fica fechado",
			campaign: &domain.Campaign{
				DaypartingEnabled: true,
				DaypartingSchedule: schedule(map[string][]domain.DaypartingWindow{
					"monday": {{Start: "00:00", End: "23:59"}},
				}),
			},
			now:      tuesdayMorning,
			expected: false,
		},
		{
			name: "Cronograma vazio fecha todos os dias",
			campaign: &domain.Campaign{
				DaypartingEnabled:  true,
				DaypartingSchedule: schedule(map[string][]domain.DaypartingWindow{}),
			},
			now:      tuesdayMorning,
			expected: false,
		},
		{
			name: "Múltiplas janelas fazem OR",
			campaign: &domain.Campaign{
				DaypartingEnabled: true,
				DaypartingSchedule: schedule(map[string][]domain.DaypartingWindow{
					"tuesday": {
						{Start: "00:00", End: "06:00"},
						{Start: "10:00", End: "12:00"},
					},
				}),
			},
			now:      tuesdayMorning,
			expected: true,
		},
		{
			name: "Janela malformada é ignorada sem quebrar as demais",
			campaign: &domain.Campaign{
				DaypartingEnabled: true,
				DaypartingSchedule: schedule(map[string][]domain.DaypartingWindow{
					"tuesday": {
						{Start: "9h", End: "17h"},
						{Start: "10:00", End: "12:00"},
					},
				}),
			},
			now:      tuesdayMorning,
			expected: true,
		},
		{
			name: "Apenas janelas malformadas degrada para fechado",
			campaign: &domain.Campaign{
				DaypartingEnabled: true,
				DaypartingSchedule: schedule(map[string][]domain.DaypartingWindow{
					"tuesday": {{Start: "25:00", End: "26:00"}},
				}),
			},
			now:      tuesdayMorning,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsWithinWindow(tt.campaign, tt.now))
		})
	}
}

func TestValidateSchedule(t *testing.T) {
	tests := []struct {
		name      string
		schedule  domain.DaypartingSchedule
		expectErr bool
	}{
		{
			name: "Cronograma válido",
			schedule: schedule(map[string][]domain.DaypartingWindow{
				"monday": {{Start: "09:00", End: "18:00"}},
				"sunday": {{Start: "00:00", End: "23:59"}},
			}),
			expectErr: false,
		},
		{
			name:      "Cronograma vazio é válido",
			schedule:  schedule(map[string][]domain.DaypartingWindow{}),
			expectErr: false,
		},
		{
			name: "Dia da semana desconhecido",
			schedule: schedule(map[string][]domain.DaypartingWindow{
				"segunda": {{Start: "09:00", End: "18:00"}},
			}),
			expectErr: true,
		},
		{
			name: "Horário fora do formato HH:MM",
			schedule: schedule(map[string][]domain.DaypartingWindow{
				"monday": {{Start: "9:00", End: "18:00"}},
			}),
			expectErr: true,
		},
		{
			name: "Janela invertida",
			schedule: schedule(map[string][]domain.DaypartingWindow{
				"monday": {{Start: "18:00", End: "09:00"}},
			}),
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSchedule(tt.schedule)
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
