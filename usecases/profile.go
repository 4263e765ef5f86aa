package usecases

import (
	"context"
	"errors"

	"mentesana-server/apperr"
	"mentesana-server/db"
	"mentesana-server/entities"
	"mentesana-server/repositories"
)

type ProfileUseCase struct {
	UserRepo    repositories.UserRepository
	ProfileRepo repositories.ProfileRepository
}

func NewProfileUseCase(database db.Database) *ProfileUseCase {
	return &ProfileUseCase{
		UserRepo:    repositories.NewUserSqlRepository(database),
		ProfileRepo: repositories.NewProfileSqlRepository(database),
	}
}

// Save creates or replaces the profile of profile.IdUsuario.
func (uc *ProfileUseCase) Save(ctx context.Context, profile *entities.Profile) error {
	if profile.IdUsuario <= 0 {
		return apperr.BadRequest("idUsuario is required")
	}
	if _, err := uc.UserRepo.GetByID(ctx, profile.IdUsuario); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperr.NotFound("User not found")
		}
		return failure("Could not save profile", err)
	}
	if err := uc.ProfileRepo.Upsert(ctx, profile); err != nil {
		return failure("Could not save profile", err)
	}
	return nil
}

// Get returns the user's profile, or nil when there is none.
func (uc *ProfileUseCase) Get(ctx context.Context, userID int64) (*entities.Profile, error) {
	profile, err := uc.ProfileRepo.GetByUserID(ctx, userID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, failure("Could not load profile", err)
	}
	return profile, nil
}
