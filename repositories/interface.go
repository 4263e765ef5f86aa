package repositories

import (
	"context"
	"errors"
	"time"

	"mentesana-server/db"
	"mentesana-server/entities"
)

// ErrNotFound is returned when a lookup or scoped write matches no row.
var ErrNotFound = errors.New("record not found")

type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	GetByID(ctx context.Context, id int64) (*entities.User, error)
	GetByEmail(ctx context.Context, email string) (*entities.User, error)
	AddPoints(ctx context.Context, id int64, points int) error
}

type ProfileRepository interface {
	CreateEmpty(ctx context.Context, userID int64) error
	Upsert(ctx context.Context, profile *entities.Profile) error
	GetByUserID(ctx context.Context, userID int64) (*entities.Profile, error)
}

type EmotionRepository interface {
	GetAll(ctx context.Context) ([]entities.Emotion, error)
	GetByName(ctx context.Context, name string) (*entities.Emotion, error)
	Log(ctx context.Context, entry *entities.EmotionLogEntry) error
	History(ctx context.Context, userID int64) ([]entities.EmotionHistoryEntry, error)
	CountByUser(ctx context.Context, userID int64) (int64, error)
	LoggedSince(ctx context.Context, userID int64, since time.Time) ([]time.Time, error)
}

type ExerciseRepository interface {
	GetAll(ctx context.Context) ([]entities.Exercise, error)
	GetByID(ctx context.Context, id int64) (*entities.Exercise, error)
	CreateSession(ctx context.Context, session *entities.ExerciseSession) error
	CountSessions(ctx context.Context, userID int64) (int64, error)
}

type ChallengeRepository interface {
	GetByUserID(ctx context.Context, userID int64) ([]entities.Challenge, error)
	Create(ctx context.Context, challenge *entities.Challenge) error
	UpdateStatus(ctx context.Context, id, userID int64, estado string, fulfilledAt *time.Time) (*entities.Challenge, error)
	Delete(ctx context.Context, id, userID int64) error
	CountFulfilled(ctx context.Context, userID int64) (int64, error)
}

type PetRepository interface {
	ListSpecies(ctx context.Context) ([]entities.PetSpecies, error)
	GetSpecies(ctx context.Context, tipo string) (*entities.PetSpecies, error)
	GetActive(ctx context.Context, userID int64) (*entities.UserPet, error)
	GetByID(ctx context.Context, id int64) (*entities.UserPet, error)
	LatestByType(ctx context.Context, userID int64, tipo string) (*entities.UserPet, error)
	DeactivateAll(ctx context.Context, userID int64) ([]int64, error)
	Activate(ctx context.Context, id int64) error
	Create(ctx context.Context, pet *entities.UserPet) error
	UpdateStats(ctx context.Context, id int64, stats entities.PetStats) error
}

// compensate registers an undo statement when ex is a compensating unit of
// work. On the pool and on native transactions it does nothing.
func compensate(ex db.Executor, query string, params db.Params) {
	if tx, ok := ex.(db.Tx); ok {
		tx.Compensate(query, params)
	}
}
