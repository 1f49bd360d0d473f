package ports

import (
	"context"
	"time"

	"soundmint/contexts/finance-core/royalty-ledger/domain/entities"
	"soundmint/internal/shared/events"
)

const (
	TotalBasisPoints = 10_000

	MaxCollaborators       = 10
	MaxCollaboratorNameLen = 50
	MaxSourceLength        = 20
	MaxTxDescriptionLength = 100
	MaxTrackedTransactions = 100
	MaxStreamingBatchSize  = 20
)

type CollaboratorInput struct {
	Address          string
	Name             string
	ShareBasisPoints uint64
}

type StreamingRecord struct {
	WorkID string
	Source string
	Amount uint64
}

type Repository interface {
	CreateSplit(ctx context.Context, split entities.RoyaltySplit) error
	GetSplit(ctx context.Context, workID string) (entities.RoyaltySplit, error)
	UpdateSplit(ctx context.Context, split entities.RoyaltySplit) error
	GetTracker(ctx context.Context, workID string) (entities.RevenueTracker, error)
	SaveTracker(ctx context.Context, tracker entities.RevenueTracker) error
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

// Works is implemented by the catalog context; the ledger only needs to know
// which authority owns a work.
type Works interface {
	WorkAuthority(ctx context.Context, workID string) (string, error)
}

type DistributionPolicy struct {
	StreamingProvider      string
	TreasuryWallet         string
	PlatformFeeBasisPoints uint64
}

// Treasury is implemented by the platform-treasury context.
type Treasury interface {
	DistributionPolicy(ctx context.Context) (DistributionPolicy, error)
	AccrueRevenue(ctx context.Context, amount uint64) error
	ReverseRevenue(ctx context.Context, amount uint64) error
}

type Ledger interface {
	Transfer(ctx context.Context, from string, to string, amount uint64) error
}

type EventEnvelope = events.Envelope

type OutboxMessage struct {
	OutboxID  string
	EventType string
	EntityID  string
	Payload   []byte
	CreatedAt time.Time
}

type OutboxWriter interface {
	AppendOutbox(ctx context.Context, envelope EventEnvelope) error
}

type OutboxRepository interface {
	ListPendingOutbox(ctx context.Context, limit int) ([]OutboxMessage, error)
	MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error
}

type EventPublisher interface {
	Publish(ctx context.Context, topic string, event EventEnvelope) error
}
