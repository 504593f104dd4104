// Package dayparting avalia se uma campanha está dentro das janelas de
// horário permitidas do seu cronograma.
package dayparting

import (
	"time"

	"github.com/vfg2006/budget-planner-api/internal/domain"
	"github.com/vfg2006/budget-planner-api/pkg/utils"
)

// IsWithinWindow responde se now cai dentro de alguma janela permitida da
// campanha. Dayparting é opt-in: com dayparting_enabled desligado a campanha
// nunca é restringida por horário. Dia sem entrada no cronograma significa
// dia fechado.
func IsWithinWindow(campaign *domain.Campaign, now time.Time) bool {
	if !campaign.DaypartingEnabled {
		return true
	}

	windows := campaign.DaypartingSchedule[utils.WeekdayKey(now)]
	current := utils.ClockString(now)

	// OR entre as janelas: sobreposição e desordem são inofensivas
	for _, window := range windows {
		if !validClock(window.Start) || !validClock(window.End) {
			// Entrada malformada degrada para "fechada" em vez de quebrar
			// a varredura inteira
			continue
		}

		// Limites inclusivos nas duas pontas, comparação lexical de "HH:MM"
		if window.Start <= current && current <= window.End {
			return true
		}
	}

	return false
}

// validClock verifica o formato "HH:MM" de 24 horas com zero à esquerda,
// único formato em que a comparação lexical equivale à temporal.
func validClock(clock string) bool {
	if len(clock) != 5 || clock[2] != ':' {
		return false
	}

	for i, c := range clock {
		if i == 2 {
			continue
		}
		if c < '0' || c > '9' {
			return false
		}
	}

	return clock <= "23:59"
}
