package entities

import "time"

// PointsPerExercise is what every completed exercise or gratitude entry earns.
const PointsPerExercise = 10

type Exercise struct {
	IdEjercicio int64  `json:"IdEjercicio"`
	Nombre      string `json:"Nombre"`
}

type ExerciseSession struct {
	IdSesion          int64     `json:"IdSesion"`
	IdUsuario         int64     `json:"IdUsuario"`
	IdEjercicio       int64     `json:"IdEjercicio"`
	FechaSesion       time.Time `json:"FechaSesion"`
	Completado        bool      `json:"Completado"`
	RespuestaGratitud *string   `json:"RespuestaGratitud"`
}

// ExerciseResult is returned after a session is stored.
type ExerciseResult struct {
	Success       bool   `json:"success"`
	Message       string `json:"message"`
	PuntosGanados int    `json:"puntosGanados"`
	IdSesion      int64  `json:"idSesion"`
}
