package entities

import "time"

// PetSpecies is a row of the species catalog.
type PetSpecies struct {
	IdMascota int64  `json:"IdMascota"`
	Nombre    string `json:"Nombre"`
	Tipo      string `json:"Tipo"`
	Imagen    string `json:"Imagen"`
}

// PetStats are the gameplay fields a client may overwrite.
type PetStats struct {
	Nivel                int    `json:"Nivel"`
	Experiencia          int    `json:"Experiencia"`
	ExperienciaNecesaria int    `json:"ExperienciaNecesaria"`
	Felicidad            int    `json:"Felicidad"`
	Energia              int    `json:"Energia"`
	Hambre               int    `json:"Hambre"`
	Monedas              int    `json:"Monedas"`
	Estado               string `json:"Estado"`
}

// StarterStats are given to a freshly adopted pet.
var StarterStats = PetStats{
	Nivel:                1,
	Experiencia:          0,
	ExperienciaNecesaria: 100,
	Felicidad:            100,
	Energia:              100,
	Hambre:               0,
	Monedas:              50,
	Estado:               "Happy",
}

// UserPet is one adoption. At most one per user is Activa.
type UserPet struct {
	IdUsuarioMascota int64     `json:"IdUsuarioMascota"`
	IdUsuario        int64     `json:"IdUsuario"`
	IdMascota        int64     `json:"IdMascota"`
	Tipo             string    `json:"Tipo"`
	FechaAdopcion    time.Time `json:"FechaAdopcion"`
	Activa           bool      `json:"Activa"`
	PetStats
}
