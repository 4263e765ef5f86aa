package usecases

import (
	"context"
	"errors"
	"strings"
	"time"

	"mentesana-server/apperr"
	"mentesana-server/db"
	"mentesana-server/entities"
	"mentesana-server/repositories"
)

type ChallengeUseCase struct {
	ChallengeRepo repositories.ChallengeRepository
}

func NewChallengeUseCase(database db.Database) *ChallengeUseCase {
	return &ChallengeUseCase{ChallengeRepo: repositories.NewChallengeSqlRepository(database)}
}

// List returns the user's challenges, newest first.
func (uc *ChallengeUseCase) List(ctx context.Context, userID int64) ([]entities.Challenge, error) {
	list, err := uc.ChallengeRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, failure("Could not load challenges", err)
	}
	return list, nil
}

// Create adds a pending challenge.
func (uc *ChallengeUseCase) Create(ctx context.Context, userID int64, title string) (*entities.Challenge, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, apperr.BadRequest("Title is required")
	}
	challenge := &entities.Challenge{IdUsuario: userID, Titulo: title, Estado: entities.ChallengePending}
	if err := uc.ChallengeRepo.Create(ctx, challenge); err != nil {
		return nil, failure("Could not save challenge", err)
	}
	return challenge, nil
}

// SetFulfilled marks the challenge Fulfilled (stamping the time) or Failed.
func (uc *ChallengeUseCase) SetFulfilled(ctx context.Context, userID, id int64, fulfilled bool) (*entities.Challenge, error) {
	if id <= 0 {
		return nil, apperr.BadRequest("Invalid challenge id")
	}
	estado := entities.ChallengeFailed
	var at *time.Time
	if fulfilled {
		estado = entities.ChallengeFulfilled
		now := time.Now().UTC()
		at = &now
	}
	challenge, err := uc.ChallengeRepo.UpdateStatus(ctx, id, userID, estado, at)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, apperr.NotFound("Challenge not found")
	}
	if err != nil {
		return nil, failure("Could not update challenge", err)
	}
	return challenge, nil
}

func (uc *ChallengeUseCase) Delete(ctx context.Context, userID, id int64) error {
	if id <= 0 {
		return apperr.BadRequest("Invalid challenge id")
	}
	err := uc.ChallengeRepo.Delete(ctx, id, userID)
	if errors.Is(err, repositories.ErrNotFound) {
		return apperr.NotFound("Challenge not found")
	}
	if err != nil {
		return failure("Could not delete challenge", err)
	}
	return nil
}
