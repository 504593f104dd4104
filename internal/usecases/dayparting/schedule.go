package dayparting

import (
	"fmt"

	"github.com/vfg2006/budget-planner-api/internal/domain"
)

// Dias da semana aceitos como chave de cronograma
var validWeekdays = map[string]bool{
	"monday":    true,
	"tuesday":   true,
	"wednesday": true,
	"thursday":  true,
	"friday":    true,
	"saturday":  true,
	"sunday":    true,
}

// ValidateSchedule verifica a forma do cronograma antes de persistir: chaves
// de dia conhecidas, janelas "HH:MM" bem formadas e início antes do fim. A
// avaliação em runtime tolera entradas malformadas, mas a escrita não aceita.
func ValidateSchedule(schedule domain.DaypartingSchedule) error {
	for day, windows := range schedule {
		if !validWeekdays[day] {
			return fmt.Errorf("dia da semana inválido no cronograma: %q", day)
		}

		for _, window := range windows {
			if !validClock(window.Start) {
				return fmt.Errorf("horário inicial inválido em %s: %q", day, window.Start)
			}
			if !validClock(window.End) {
				return fmt.Errorf("horário final inválido em %s: %q", day, window.End)
			}
			if window.Start > window.End {
				return fmt.Errorf("janela invertida em %s: %s > %s", day, window.Start, window.End)
			}
		}
	}

	return nil
}
