package entities

import "time"

const (
	ChallengePending   = "Pending"
	ChallengeFulfilled = "Fulfilled"
	ChallengeFailed    = "Failed"
)

type Challenge struct {
	IdReto        int64      `json:"IdReto"`
	IdUsuario     int64      `json:"IdUsuario"`
	Titulo        string     `json:"Titulo"`
	Estado        string     `json:"Estado"`
	FechaCreacion time.Time  `json:"FechaCreacion"`
	FechaCumplido *time.Time `json:"FechaCumplido"`
}
