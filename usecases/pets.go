package usecases

import (
	"context"
	"errors"
	"strings"

	"mentesana-server/apperr"
	"mentesana-server/db"
	"mentesana-server/entities"
	"mentesana-server/repositories"
)

type PetUseCase struct {
	DB       db.Database
	PetRepo  repositories.PetRepository
	Notifier Notifier
}

func NewPetUseCase(database db.Database, notifier Notifier) *PetUseCase {
	return &PetUseCase{
		DB:       database,
		PetRepo:  repositories.NewPetSqlRepository(database),
		Notifier: notifierOrNop(notifier),
	}
}

// GetActive returns the user's active pet, or nil when there is none.
func (uc *PetUseCase) GetActive(ctx context.Context, userID int64) (*entities.UserPet, error) {
	pet, err := uc.PetRepo.GetActive(ctx, userID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, failure("Could not load pet", err)
	}
	return pet, nil
}

// Select makes a pet of species tipo the user's only active pet. The most
// recent earlier adoption of that species is reused; otherwise a new pet is
// adopted with starter stats. Everything happens in one unit of work.
func (uc *PetUseCase) Select(ctx context.Context, userID int64, tipo string) (*entities.UserPet, error) {
	tipo = strings.ToLower(strings.TrimSpace(tipo))
	if tipo == "" {
		return nil, apperr.BadRequest("Pet type is required")
	}

	var selected *entities.UserPet
	err := uc.DB.Atomic(ctx, func(tx db.Tx) error {
		pets := repositories.NewPetSqlRepository(tx)
		if _, err := pets.DeactivateAll(ctx, userID); err != nil {
			return err
		}

		existing, err := pets.LatestByType(ctx, userID, tipo)
		if err == nil {
			if err := pets.Activate(ctx, existing.IdUsuarioMascota); err != nil {
				return err
			}
			existing.Activa = true
			selected = existing
			return nil
		}
		if !errors.Is(err, repositories.ErrNotFound) {
			return err
		}

		species, err := pets.GetSpecies(ctx, tipo)
		if errors.Is(err, repositories.ErrNotFound) {
			return apperr.BadRequest("Invalid pet type")
		}
		if err != nil {
			return err
		}
		pet := &entities.UserPet{
			IdUsuario: userID,
			IdMascota: species.IdMascota,
			Tipo:      species.Tipo,
			Activa:    true,
			PetStats:  entities.StarterStats,
		}
		if err := pets.Create(ctx, pet); err != nil {
			return err
		}
		selected = pet
		return nil
	})
	if err != nil {
		return nil, failure("Could not select pet", err)
	}

	uc.Notifier.Notify(userID, entities.Event{Type: entities.EventPetChanged, Data: selected})
	return selected, nil
}

// UpdateStats overwrites the stats of a pet the user owns.
func (uc *PetUseCase) UpdateStats(ctx context.Context, userID, petID int64, stats entities.PetStats) error {
	if petID <= 0 {
		return apperr.BadRequest("IdUsuarioMascota is required")
	}
	pet, err := uc.PetRepo.GetByID(ctx, petID)
	if errors.Is(err, repositories.ErrNotFound) || (err == nil && pet.IdUsuario != userID) {
		return apperr.Forbidden("Not allowed to update this pet")
	}
	if err != nil {
		return failure("Could not update pet", err)
	}
	if err := uc.PetRepo.UpdateStats(ctx, petID, stats); err != nil {
		return failure("Could not update pet", err)
	}
	return nil
}
