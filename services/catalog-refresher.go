package services

import (
	"context"
	"time"

	"mentesana-server/cache"
	"mentesana-server/db"
	"mentesana-server/entities"
	"mentesana-server/logger"
	"mentesana-server/metrics"
	"mentesana-server/repositories"
)

// CatalogService serves the lookup tables from memory and reloads them from
// the database when they go stale.
type CatalogService struct {
	cache     *cache.CatalogCache
	emotions  repositories.EmotionRepository
	exercises repositories.ExerciseRepository
	pets      repositories.PetRepository
	interval  time.Duration
}

func NewCatalogService(database db.Database, catalogCache *cache.CatalogCache, interval time.Duration) *CatalogService {
	return &CatalogService{
		cache:     catalogCache,
		emotions:  repositories.NewEmotionSqlRepository(database),
		exercises: repositories.NewExerciseSqlRepository(database),
		pets:      repositories.NewPetSqlRepository(database),
		interval:  interval,
	}
}

// Start reloads every catalog on a ticker until ctx is done.
func (s *CatalogService) Start(ctx context.Context) {
	if s.interval <= 0 {
		return
	}
	ticker := time.NewTicker(s.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := s.Refresh(ctx); err != nil {
					logger.Warn("catalog refresh failed", "err", err)
				}
			}
		}
	}()
}

// Refresh reloads every catalog from the database.
func (s *CatalogService) Refresh(ctx context.Context) error {
	if _, err := s.loadEmotions(ctx); err != nil {
		return err
	}
	if _, err := s.loadExercises(ctx); err != nil {
		return err
	}
	if _, err := s.loadSpecies(ctx); err != nil {
		return err
	}
	logger.Debug("catalogs refreshed")
	return nil
}

func (s *CatalogService) Emotions(ctx context.Context) ([]entities.Emotion, error) {
	if list, ok := s.cache.Emotions(); ok {
		metrics.RecordCacheLookup(cache.CatalogEmotions, true)
		return list, nil
	}
	metrics.RecordCacheLookup(cache.CatalogEmotions, false)
	return s.loadEmotions(ctx)
}

func (s *CatalogService) Exercises(ctx context.Context) ([]entities.Exercise, error) {
	if list, ok := s.cache.Exercises(); ok {
		metrics.RecordCacheLookup(cache.CatalogExercises, true)
		return list, nil
	}
	metrics.RecordCacheLookup(cache.CatalogExercises, false)
	return s.loadExercises(ctx)
}

func (s *CatalogService) Species(ctx context.Context) ([]entities.PetSpecies, error) {
	if list, ok := s.cache.Species(); ok {
		metrics.RecordCacheLookup(cache.CatalogSpecies, true)
		return list, nil
	}
	metrics.RecordCacheLookup(cache.CatalogSpecies, false)
	return s.loadSpecies(ctx)
}

func (s *CatalogService) GetCacheStats() map[string]interface{} {
	return s.cache.GetCacheStats()
}

func (s *CatalogService) ClearCache() {
	s.cache.ClearCache()
}

func (s *CatalogService) loadEmotions(ctx context.Context) ([]entities.Emotion, error) {
	list, err := s.emotions.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.SetEmotions(list)
	return list, nil
}

func (s *CatalogService) loadExercises(ctx context.Context) ([]entities.Exercise, error) {
	list, err := s.exercises.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.SetExercises(list)
	return list, nil
}

func (s *CatalogService) loadSpecies(ctx context.Context) ([]entities.PetSpecies, error) {
	list, err := s.pets.ListSpecies(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.SetSpecies(list)
	return list, nil
}
