package repositories

import (
	"mentesana-server/db"
	"mentesana-server/entities"
)

func toUser(row db.Row) *entities.User {
	return &entities.User{
		IdUsuario:     row.Int64("IdUsuario"),
		Nombre:        row.String("Nombre"),
		Correo:        row.String("Correo"),
		Contrasena:    row.String("Contrasena"),
		Nivel:         row.Int("Nivel"),
		Puntos:        row.Int("Puntos"),
		FechaRegistro: row.Time("FechaRegistro"),
	}
}

func toProfile(row db.Row) *entities.Profile {
	return &entities.Profile{
		IdPerfil:          row.Int64("IdPerfil"),
		IdUsuario:         row.Int64("IdUsuario"),
		NombreCompleto:    row.NullString("NombreCompleto"),
		CorreoElectronico: row.NullString("CorreoElectronico"),
		FechaDeNacimiento: row.NullString("FechaDeNacimiento"),
		Genero:            row.NullString("Genero"),
		Biografia:         row.NullString("Biografia"),
	}
}

func toEmotion(row db.Row) entities.Emotion {
	return entities.Emotion{
		IdEmocion: row.Int64("IdEmocion"),
		Nombre:    row.String("Nombre"),
		Color:     row.String("Color"),
		Icono:     row.String("Icono"),
	}
}

func toExercise(row db.Row) entities.Exercise {
	return entities.Exercise{
		IdEjercicio: row.Int64("IdEjercicio"),
		Nombre:      row.String("Nombre"),
	}
}

func toChallenge(row db.Row) entities.Challenge {
	return entities.Challenge{
		IdReto:        row.Int64("IdReto"),
		IdUsuario:     row.Int64("IdUsuario"),
		Titulo:        row.String("Titulo"),
		Estado:        row.String("Estado"),
		FechaCreacion: row.Time("FechaCreacion"),
		FechaCumplido: row.NullTime("FechaCumplido"),
	}
}

func toSpecies(row db.Row) entities.PetSpecies {
	return entities.PetSpecies{
		IdMascota: row.Int64("IdMascota"),
		Nombre:    row.String("Nombre"),
		Tipo:      row.String("Tipo"),
		Imagen:    row.String("Imagen"),
	}
}

func toUserPet(row db.Row) *entities.UserPet {
	return &entities.UserPet{
		IdUsuarioMascota: row.Int64("IdUsuarioMascota"),
		IdUsuario:        row.Int64("IdUsuario"),
		IdMascota:        row.Int64("IdMascota"),
		Tipo:             row.String("Tipo"),
		FechaAdopcion:    row.Time("FechaAdopcion"),
		Activa:           row.Bool("Activa"),
		PetStats: entities.PetStats{
			Nivel:                row.Int("Nivel"),
			Experiencia:          row.Int("Experiencia"),
			ExperienciaNecesaria: row.Int("ExperienciaNecesaria"),
			Felicidad:            row.Int("Felicidad"),
			Energia:              row.Int("Energia"),
			Hambre:               row.Int("Hambre"),
			Monedas:              row.Int("Monedas"),
			Estado:               row.String("Estado"),
		},
	}
}
