package entities

import "time"

// User is an account. Column names double as JSON keys for the web client.
type User struct {
	IdUsuario     int64     `json:"IdUsuario"`
	Nombre        string    `json:"Nombre"`
	Correo        string    `json:"Correo"`
	Contrasena    string    `json:"-"`
	Nivel         int       `json:"Nivel"`
	Puntos        int       `json:"Puntos"`
	FechaRegistro time.Time `json:"FechaRegistro"`
}

// Profile is the optional one-to-one extension of a User.
type Profile struct {
	IdPerfil          int64   `json:"IdPerfil"`
	IdUsuario         int64   `json:"IdUsuario"`
	NombreCompleto    *string `json:"NombreCompleto"`
	CorreoElectronico *string `json:"CorreoElectronico"`
	FechaDeNacimiento *string `json:"FechaDeNacimiento"`
	Genero            *string `json:"Genero"`
	Biografia         *string `json:"Biografia"`
}
