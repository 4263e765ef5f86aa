package usecases

import (
	"context"
	"time"

	"mentesana-server/db"
	"mentesana-server/entities"
	"mentesana-server/repositories"
)

// activityWindowDays is the trailing window, today included, for
// DiasConsecutivos.
const activityWindowDays = 7

type StatsUseCase struct {
	EmotionRepo   repositories.EmotionRepository
	ExerciseRepo  repositories.ExerciseRepository
	ChallengeRepo repositories.ChallengeRepository
	Location      *time.Location
	now           func() time.Time
}

func NewStatsUseCase(database db.Database, loc *time.Location) *StatsUseCase {
	if loc == nil {
		loc = time.UTC
	}
	return &StatsUseCase{
		EmotionRepo:   repositories.NewEmotionSqlRepository(database),
		ExerciseRepo:  repositories.NewExerciseSqlRepository(database),
		ChallengeRepo: repositories.NewChallengeSqlRepository(database),
		Location:      loc,
		now:           time.Now,
	}
}

// Summary counts the user's activity.
func (uc *StatsUseCase) Summary(ctx context.Context, userID int64) (*entities.StatsSummary, error) {
	emotions, err := uc.EmotionRepo.CountByUser(ctx, userID)
	if err != nil {
		return nil, failure("Could not load statistics", err)
	}
	sessions, err := uc.ExerciseRepo.CountSessions(ctx, userID)
	if err != nil {
		return nil, failure("Could not load statistics", err)
	}
	fulfilled, err := uc.ChallengeRepo.CountFulfilled(ctx, userID)
	if err != nil {
		return nil, failure("Could not load statistics", err)
	}
	days, err := uc.activeDays(ctx, userID)
	if err != nil {
		return nil, failure("Could not load statistics", err)
	}
	return &entities.StatsSummary{
		EmocionesRegistradas: emotions,
		EjerciciosRealizados: sessions,
		RetosCompletados:     fulfilled,
		DiasConsecutivos:     days,
	}, nil
}

// activeDays counts distinct local dates with an emotion entry from six
// days ago through today.
func (uc *StatsUseCase) activeDays(ctx context.Context, userID int64) (int, error) {
	now := uc.now().In(uc.Location)
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, uc.Location)
	start := today.AddDate(0, 0, -(activityWindowDays - 1))
	end := today.AddDate(0, 0, 1)

	stamps, err := uc.EmotionRepo.LoggedSince(ctx, userID, start.UTC())
	if err != nil {
		return 0, err
	}
	seen := make(map[string]struct{}, activityWindowDays)
	for _, t := range stamps {
		if !t.Before(end) {
			continue
		}
		seen[localDate(t, uc.Location)] = struct{}{}
	}
	return len(seen), nil
}
