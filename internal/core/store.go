package core

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/JonMunkholm/lifecharts/internal/logging"
)

// ErrNoDataset is returned when nothing has been loaded yet.
var ErrNoDataset = errors.New("dataset not loaded")

// Store holds the current Dataset and reloads it from a Source.
//
// Readers call Current and get a complete, immutable Dataset. Reloads are
// serialized; a failed reload keeps the previous Dataset.
type Store struct {
	source  Source
	current atomic.Pointer[Dataset]
	mu      sync.Mutex // serializes Reload
}

// NewStore creates an empty store for source.
func NewStore(source Source) *Store {
	return &Store{source: source}
}

// Current returns the loaded Dataset, or nil before the first successful load.
func (s *Store) Current() *Dataset {
	return s.current.Load()
}

// Dataset is Current with an error for the not-loaded case.
func (s *Store) Dataset() (*Dataset, error) {
	ds := s.current.Load()
	if ds == nil {
		return nil, ErrNoDataset
	}
	return ds, nil
}

// Swap replaces the current Dataset and returns the previous one.
func (s *Store) Swap(ds *Dataset) *Dataset {
	return s.current.Swap(ds)
}

// Reload loads a new Dataset from the source and swaps it in.
func (s *Store) Reload(ctx context.Context) (*Dataset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	logger := logging.WithFields(ctx, "source", s.source.String())

	ds, err := s.source.Load(ctx)
	if err != nil {
		logger.Error("dataset load failed", "error", err)
		return nil, err
	}

	prev := s.current.Swap(ds)
	attrs := []any{
		"dataset_id", ds.ID.String(),
		"rows", ds.Len(),
		"countries", len(ds.Countries()),
	}
	if prev != nil {
		attrs = append(attrs, "previous_id", prev.ID.String())
	}
	logger.Info("dataset loaded", attrs...)

	return ds, nil
}

// SourceName describes where the store loads from.
func (s *Store) SourceName() string {
	return s.source.String()
}
