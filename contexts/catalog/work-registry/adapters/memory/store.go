package memory

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"soundmint/contexts/catalog/work-registry/domain/entities"
	domainerrors "soundmint/contexts/catalog/work-registry/domain/errors"
	"soundmint/contexts/catalog/work-registry/ports"
)

type outboxRow struct {
	message   ports.OutboxMessage
	published bool
}

// Store is an in-memory repository for tests and local runs.
type Store struct {
	mu          sync.RWMutex
	works       map[string]entities.MasterWork
	collections map[string]entities.Collection
	outbox      []outboxRow
}

func NewStore() *Store {
	return &Store{
		works:       make(map[string]entities.MasterWork),
		collections: make(map[string]entities.Collection),
	}
}

func (s *Store) CreateWork(_ context.Context, work entities.MasterWork) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.works[work.WorkID]; ok {
		return domainerrors.ErrWorkExists
	}
	s.works[work.WorkID] = cloneWork(work)
	return nil
}

func (s *Store) GetWork(_ context.Context, workID string) (entities.MasterWork, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	work, ok := s.works[workID]
	if !ok {
		return entities.MasterWork{}, domainerrors.ErrWorkNotFound
	}
	return cloneWork(work), nil
}

func (s *Store) UpdateWork(_ context.Context, work entities.MasterWork) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.works[work.WorkID]; !ok {
		return domainerrors.ErrWorkNotFound
	}
	s.works[work.WorkID] = cloneWork(work)
	return nil
}

func (s *Store) ListWorksByArtist(_ context.Context, authorityID string) ([]entities.MasterWork, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []entities.MasterWork
	for _, work := range s.works {
		if work.ArtistAuthority == authorityID {
			out = append(out, cloneWork(work))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s *Store) CreateCollection(_ context.Context, collection entities.Collection) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.collections[collection.CollectionID]; ok {
		return domainerrors.ErrInvalidInput
	}
	s.collections[collection.CollectionID] = collection
	return nil
}

func (s *Store) GetCollection(_ context.Context, collectionID string) (entities.Collection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	collection, ok := s.collections[collectionID]
	if !ok {
		return entities.Collection{}, domainerrors.ErrCollectionNotFound
	}
	return collection, nil
}

func (s *Store) UpdateCollection(_ context.Context, collection entities.Collection) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.collections[collection.CollectionID]; !ok {
		return domainerrors.ErrCollectionNotFound
	}
	s.collections[collection.CollectionID] = collection
	return nil
}

func (s *Store) AppendOutbox(_ context.Context, envelope ports.EventEnvelope) error {
	payload, err := json.Marshal(envelope)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.outbox = append(s.outbox, outboxRow{message: ports.OutboxMessage{
		OutboxID:  envelope.EventID,
		EventType: envelope.EventType,
		EntityID:  envelope.EntityID,
		Payload:   payload,
		CreatedAt: envelope.OccurredAtUTC,
	}})
	return nil
}

func (s *Store) ListPendingOutbox(_ context.Context, limit int) ([]ports.OutboxMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []ports.OutboxMessage
	for _, row := range s.outbox {
		if row.published {
			continue
		}
		out = append(out, row.message)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

func (s *Store) MarkOutboxPublished(_ context.Context, outboxID string, _ time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.outbox {
		if s.outbox[i].message.OutboxID == outboxID {
			s.outbox[i].published = true
			return nil
		}
	}
	return domainerrors.ErrInvalidInput
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(context.Context) (string, error) {
	return uuid.NewString(), nil
}

func cloneWork(work entities.MasterWork) entities.MasterWork {
	work.Metadata = append([]entities.MetadataItem(nil), work.Metadata...)
	return work
}
