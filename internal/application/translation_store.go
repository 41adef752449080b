package application

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"

	"translayer/internal/domain"
	"translayer/internal/domain/entities"
	"translayer/internal/ports/output"
)

// DeleteOutcome reports what DeleteForRow did.
type DeleteOutcome int

const (
	DeleteNothing DeleteOutcome = iota
	DeleteRemoved
	DeleteStoreMissing
)

// TranslationStore fronts the per-locale translation tables with a
// process-wide cache. A locale's records are loaded wholesale on first use and
// kept until Invalidate.
type TranslationStore struct {
	repo  output.TranslationRepository
	group singleflight.Group

	mu    sync.Mutex // held for map access only, never across I/O
	cache map[string][]entities.Translation
	gens  map[string]uint64
}

func NewTranslationStore(repo output.TranslationRepository) *TranslationStore {
	return &TranslationStore{
		repo:  repo,
		cache: make(map[string][]entities.Translation),
		gens:  make(map[string]uint64),
	}
}

// Load returns every record of locale's store. The returned slice is shared
// and must not be modified.
func (s *TranslationStore) Load(ctx context.Context, locale string) ([]entities.Translation, error) {
	s.mu.Lock()
	records, ok := s.cache[locale]
	gen := s.gens[locale]
	s.mu.Unlock()
	if ok {
		return records, nil
	}

	// Readers arriving after an Invalidate start their own flight.
	key := fmt.Sprintf("%s#%d", locale, gen)
	v, err, _ := s.group.Do(key, func() (any, error) {
		records, err := s.repo.LoadAll(ctx, locale)
		if err != nil {
			return nil, err
		}
		s.mu.Lock()
		// An Invalidate raced with this load: serve the snapshot, do not keep it.
		if s.gens[locale] == gen {
			s.cache[locale] = records
		}
		s.mu.Unlock()
		return records, nil
	})
	if err != nil {
		return nil, fmt.Errorf("load translations %s: %w", locale, err)
	}
	return v.([]entities.Translation), nil
}

// Upsert writes one record. A missing store table is not an error.
func (s *TranslationStore) Upsert(ctx context.Context, locale, table, field, rowID, text string) error {
	err := s.repo.Upsert(ctx, locale, entities.Translation{
		RelatedTable: table,
		RelatedField: field,
		RelatedID:    rowID,
		Text:         text,
	})
	if err != nil && !errors.Is(err, domain.ErrStoreMissing) {
		return fmt.Errorf("upsert translation %s.%s#%s (%s): %w", table, field, rowID, locale, err)
	}
	return nil
}

// DeleteForRow removes every record of (table, rowID) in locale's store.
func (s *TranslationStore) DeleteForRow(ctx context.Context, locale, table, rowID string) (DeleteOutcome, error) {
	n, err := s.repo.DeleteForRow(ctx, locale, table, rowID)
	switch {
	case errors.Is(err, domain.ErrStoreMissing):
		return DeleteStoreMissing, nil
	case err != nil:
		return DeleteNothing, fmt.Errorf("delete translations %s#%s (%s): %w", table, rowID, locale, err)
	case n == 0:
		return DeleteNothing, nil
	}
	return DeleteRemoved, nil
}

// Invalidate drops locale's cached records.
func (s *TranslationStore) Invalidate(locale string) {
	s.mu.Lock()
	delete(s.cache, locale)
	s.gens[locale]++
	s.mu.Unlock()
}
