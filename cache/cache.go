package cache

import (
	"sync"
	"time"

	"mentesana-server/entities"
)

// Catalog names, also used as metric labels.
const (
	CatalogEmotions  = "emotions"
	CatalogExercises = "exercises"
	CatalogSpecies   = "species"
)

type catalogEntry struct {
	loadedAt time.Time
	hits     int
	misses   int
}

// CatalogCache keeps read-mostly copies of the lookup tables. Entries older
// than ttl are reported as misses so callers reload them.
type CatalogCache struct {
	mu        sync.RWMutex
	ttl       time.Duration
	emotions  []entities.Emotion
	exercises []entities.Exercise
	species   []entities.PetSpecies
	entries   map[string]*catalogEntry
	now       func() time.Time
}

func NewCatalogCache(ttl time.Duration) *CatalogCache {
	return &CatalogCache{
		ttl:     ttl,
		entries: make(map[string]*catalogEntry),
		now:     time.Now,
	}
}

func (cc *CatalogCache) SetEmotions(list []entities.Emotion) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.emotions = append([]entities.Emotion(nil), list...)
	cc.touch(CatalogEmotions)
}

func (cc *CatalogCache) SetExercises(list []entities.Exercise) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.exercises = append([]entities.Exercise(nil), list...)
	cc.touch(CatalogExercises)
}

func (cc *CatalogCache) SetSpecies(list []entities.PetSpecies) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.species = append([]entities.PetSpecies(nil), list...)
	cc.touch(CatalogSpecies)
}

// Emotions returns a copy of the cached emotions and whether it is fresh.
func (cc *CatalogCache) Emotions() ([]entities.Emotion, bool) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	if !cc.lookup(CatalogEmotions) {
		return nil, false
	}
	return append([]entities.Emotion(nil), cc.emotions...), true
}

func (cc *CatalogCache) Exercises() ([]entities.Exercise, bool) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	if !cc.lookup(CatalogExercises) {
		return nil, false
	}
	return append([]entities.Exercise(nil), cc.exercises...), true
}

func (cc *CatalogCache) Species() ([]entities.PetSpecies, bool) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	if !cc.lookup(CatalogSpecies) {
		return nil, false
	}
	return append([]entities.PetSpecies(nil), cc.species...), true
}

// GetCacheStats returns statistics about the current cache
func (cc *CatalogCache) GetCacheStats() map[string]interface{} {
	cc.mu.RLock()
	defer cc.mu.RUnlock()

	catalogs := make(map[string]interface{}, len(cc.entries))
	for name, e := range cc.entries {
		catalogs[name] = map[string]interface{}{
			"loaded_at": e.loadedAt.UTC().Format(time.RFC3339),
			"hits":      e.hits,
			"misses":    e.misses,
		}
	}
	return map[string]interface{}{
		"ttl_seconds": int(cc.ttl.Seconds()),
		"emotions":    len(cc.emotions),
		"exercises":   len(cc.exercises),
		"species":     len(cc.species),
		"catalogs":    catalogs,
	}
}

// ClearCache drops every catalog so the next lookup reloads it.
func (cc *CatalogCache) ClearCache() {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.emotions = nil
	cc.exercises = nil
	cc.species = nil
	cc.entries = make(map[string]*catalogEntry)
}

func (cc *CatalogCache) touch(name string) {
	e, ok := cc.entries[name]
	if !ok {
		e = &catalogEntry{}
		cc.entries[name] = e
	}
	e.loadedAt = cc.now()
}

// lookup reports whether name is loaded and fresh, counting the outcome.
func (cc *CatalogCache) lookup(name string) bool {
	e, ok := cc.entries[name]
	if !ok {
		return false
	}
	if cc.ttl > 0 && cc.now().Sub(e.loadedAt) > cc.ttl {
		e.misses++
		return false
	}
	e.hits++
	return true
}
