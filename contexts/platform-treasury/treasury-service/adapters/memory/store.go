package memory

import (
	"context"
	"sync"
	"time"

	domainerrors "soundmint/contexts/platform-treasury/treasury-service/domain/errors"
	"soundmint/contexts/platform-treasury/treasury-service/ports"
)

type Store struct {
	mu       sync.RWMutex
	treasury *ports.Treasury
}

func NewStore() *Store {
	return &Store{}
}

func (s *Store) CreateTreasury(_ context.Context, treasury ports.Treasury) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.treasury != nil {
		return domainerrors.ErrAlreadyInitialized
	}
	item := treasury
	s.treasury = &item
	return nil
}

func (s *Store) GetTreasury(_ context.Context) (ports.Treasury, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.treasury == nil {
		return ports.Treasury{}, domainerrors.ErrNotInitialized
	}
	return *s.treasury, nil
}

func (s *Store) UpdateTreasury(_ context.Context, treasury ports.Treasury) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.treasury == nil {
		return domainerrors.ErrNotInitialized
	}
	item := treasury
	s.treasury = &item
	return nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}
