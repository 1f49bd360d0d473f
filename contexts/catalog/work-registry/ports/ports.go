package ports

import (
	"context"
	"time"

	"soundmint/contexts/catalog/work-registry/domain/entities"
	"soundmint/internal/shared/events"
)

const (
	MaxTitleLength       = 100
	MaxDescriptionLength = 500
	MaxURILength         = 200
	MaxMetadataItems     = 10
	MaxMetadataKeyLength = 50
	MaxMetadataValLength = 50
)

type MintWorkInput struct {
	ArtistAuthority string
	Title           string
	Description     string
	AudioURI        string
	ArtworkURI      string
	Metadata        []entities.MetadataItem
}

// UpdateWorkInput models "omitted means unchanged"; Metadata, when present,
// replaces the stored sequence.
type UpdateWorkInput struct {
	Description    *string
	Metadata       *[]entities.MetadataItem
	IsTransferable *bool
	Status         *string
}

type Repository interface {
	CreateWork(ctx context.Context, work entities.MasterWork) error
	GetWork(ctx context.Context, workID string) (entities.MasterWork, error)
	UpdateWork(ctx context.Context, work entities.MasterWork) error
	ListWorksByArtist(ctx context.Context, authorityID string) ([]entities.MasterWork, error)
	CreateCollection(ctx context.Context, collection entities.Collection) error
	GetCollection(ctx context.Context, collectionID string) (entities.Collection, error)
	UpdateCollection(ctx context.Context, collection entities.Collection) error
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

// ArtistProfileView is the slice of the artist profile the registry needs.
type ArtistProfileView struct {
	Authority  string
	IsVerified bool
	TrackCount uint64
}

// Profiles is implemented by the artist-identity context.
type Profiles interface {
	GetProfile(ctx context.Context, authorityID string) (ArtistProfileView, error)
	RegisterWork(ctx context.Context, authorityID string) error
}

type MintPolicy struct {
	TreasuryWallet string
	MintFee        uint64
}

// Treasury is implemented by the platform-treasury context: minting charges
// the mint fee and accrues it as platform revenue. ReverseRevenue backs a
// fee out again when a mint fails after the fee settled.
type Treasury interface {
	MintPolicy(ctx context.Context) (MintPolicy, error)
	AccrueRevenue(ctx context.Context, amount uint64) error
	ReverseRevenue(ctx context.Context, amount uint64) error
}

// Ledger is the external value-transfer collaborator.
type Ledger interface {
	Transfer(ctx context.Context, from string, to string, amount uint64) error
}

// AssetIssuer is the external asset-issuance collaborator backing each work.
type AssetIssuer interface {
	IssueAsset(ctx context.Context, title string, metadataURI string) (string, error)
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
