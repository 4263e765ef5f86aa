package entities

type StatsSummary struct {
	EmocionesRegistradas int64 `json:"emocionesRegistradas"`
	EjerciciosRealizados int64 `json:"ejerciciosRealizados"`
	RetosCompletados     int64 `json:"retosCompletados"`
	DiasConsecutivos     int   `json:"diasConsecutivos"`
}
