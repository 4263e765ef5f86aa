package entities

import "time"

type Emotion struct {
	IdEmocion int64  `json:"IdEmocion"`
	Nombre    string `json:"Nombre"`
	Color     string `json:"Color"`
	Icono     string `json:"Icono"`
}

type EmotionLogEntry struct {
	IdRegistro    int64     `json:"IdRegistro"`
	IdUsuario     int64     `json:"IdUsuario"`
	IdEmocion     int64     `json:"IdEmocion"`
	Nota          string    `json:"Nota"`
	FechaRegistro time.Time `json:"FechaRegistro"`
}

// EmotionHistoryEntry is a log entry joined with its emotion, with the local
// date and time of day derived from FechaRegistro.
type EmotionHistoryEntry struct {
	Nombre        string    `json:"Nombre"`
	Color         string    `json:"Color"`
	Icono         string    `json:"Icono"`
	Nota          string    `json:"Nota"`
	FechaRegistro time.Time `json:"FechaRegistro"`
	Fecha         string    `json:"Fecha"`
	Hora          string    `json:"Hora"`
}

// CalendarEntry is the calendar view of a log entry. The key names match what
// the calendar widget reads.
type CalendarEntry struct {
	Emocion       string    `json:"emocion"`
	Color         string    `json:"Color"`
	Icono         string    `json:"Icono"`
	Nota          string    `json:"Nota"`
	FechaRegistro time.Time `json:"FechaRegistro"`
	Fecha         string    `json:"fecha"`
	Hora          string    `json:"Hora"`
}
