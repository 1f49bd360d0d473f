package memory

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"

	"soundmint/contexts/finance-core/royalty-ledger/domain/entities"
	domainerrors "soundmint/contexts/finance-core/royalty-ledger/domain/errors"
	"soundmint/contexts/finance-core/royalty-ledger/ports"
)

type outboxRow struct {
	message   ports.OutboxMessage
	published bool
}

// Store is an in-memory repository for tests and local runs.
type Store struct {
	mu       sync.RWMutex
	splits   map[string]entities.RoyaltySplit
	trackers map[string]entities.RevenueTracker
	outbox   []outboxRow
}

func NewStore() *Store {
	return &Store{
		splits:   make(map[string]entities.RoyaltySplit),
		trackers: make(map[string]entities.RevenueTracker),
	}
}

func (s *Store) CreateSplit(_ context.Context, split entities.RoyaltySplit) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.splits[split.WorkID]; ok {
		return domainerrors.ErrSplitExists
	}
	s.splits[split.WorkID] = cloneSplit(split)
	return nil
}

func (s *Store) GetSplit(_ context.Context, workID string) (entities.RoyaltySplit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	split, ok := s.splits[workID]
	if !ok {
		return entities.RoyaltySplit{}, domainerrors.ErrSplitNotFound
	}
	return cloneSplit(split), nil
}

func (s *Store) UpdateSplit(_ context.Context, split entities.RoyaltySplit) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.splits[split.WorkID]; !ok {
		return domainerrors.ErrSplitNotFound
	}
	s.splits[split.WorkID] = cloneSplit(split)
	return nil
}

func (s *Store) GetTracker(_ context.Context, workID string) (entities.RevenueTracker, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	tracker, ok := s.trackers[workID]
	if !ok {
		return entities.RevenueTracker{}, domainerrors.ErrTrackerNotFound
	}
	return cloneTracker(tracker), nil
}

func (s *Store) SaveTracker(_ context.Context, tracker entities.RevenueTracker) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trackers[tracker.WorkID] = cloneTracker(tracker)
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

func cloneSplit(split entities.RoyaltySplit) entities.RoyaltySplit {
	split.Collaborators = append([]entities.Collaborator(nil), split.Collaborators...)
	return split
}

func cloneTracker(tracker entities.RevenueTracker) entities.RevenueTracker {
	tracker.Transactions = append([]entities.RevenueTransaction(nil), tracker.Transactions...)
	return tracker
}
