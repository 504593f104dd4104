package domain

// DaypartingWindow é uma janela de horário permitido dentro de um dia,
// com limites "HH:MM" de 24 horas, inclusivos nas duas pontas.
type DaypartingWindow struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// DaypartingSchedule mapeia o nome do dia da semana em inglês minúsculo
// (monday..sunday) para a lista de janelas permitidas daquele dia. Dia sem
// entrada significa dia sem janelas (campanha fechada o dia todo).
type DaypartingSchedule map[string][]DaypartingWindow
