package utils

import (
	"strings"
	"time"
)

// StartOfDay retorna meia-noite do dia de ref, no fuso de ref.
func StartOfDay(ref time.Time) time.Time {
	return time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, ref.Location())
}

// FirstDayOfMonth retorna meia-noite do dia 1 do mês de ref, no fuso de ref.
func FirstDayOfMonth(ref time.Time) time.Time {
	return time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location())
}

// WeekdayKey retorna o nome do dia da semana em inglês minúsculo, no formato
// usado como chave do dayparting_schedule (monday..sunday).
func WeekdayKey(ref time.Time) string {
	return strings.ToLower(ref.Weekday().String())
}

// ClockString retorna o horário de ref como "HH:MM" de 24 horas com zero à
// esquerda. Strings nesse formato podem ser comparadas lexicamente.
func ClockString(ref time.Time) string {
	return ref.Format("15:04")
}
