package application

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"soundmint/contexts/catalog/work-registry/domain/entities"
	domainerrors "soundmint/contexts/catalog/work-registry/domain/errors"
	"soundmint/contexts/catalog/work-registry/ports"
	"soundmint/internal/shared/address"
	"soundmint/internal/shared/authority"
)

const (
	serviceName        = "work-registry"
	eventTypeMinted    = "work.minted"
	eventSchemaVersion = 1
)

// Service owns the catalog of minted works and their collections.
type Service struct {
	Repo        ports.Repository
	Profiles    ports.Profiles
	Treasury    ports.Treasury
	Ledger      ports.Ledger
	AssetIssuer ports.AssetIssuer
	Outbox      ports.OutboxWriter
	Clock       ports.Clock
	IDGen       ports.IDGenerator
	Logger      *slog.Logger
}

type mintedEventData struct {
	WorkID          string `json:"work_id"`
	ArtistAuthority string `json:"artist_authority"`
	Title           string `json:"title"`
	AssetID         string `json:"asset_id"`
	MintFee         uint64 `json:"mint_fee"`
}

// MintWork charges the platform mint fee, issues the backing asset, persists
// the work and records the mint on the owning profile. The fee is charged
// before any state is written so an uncovered caller mints nothing.
func (s Service) MintWork(ctx context.Context, caller string, input ports.MintWorkInput) (entities.MasterWork, error) {
	input.ArtistAuthority = strings.TrimSpace(input.ArtistAuthority)
	input.Title = strings.TrimSpace(input.Title)
	if input.ArtistAuthority == "" {
		return entities.MasterWork{}, fmt.Errorf("%w: artist authority is required", domainerrors.ErrInvalidInput)
	}
	if input.Title == "" {
		return entities.MasterWork{}, fmt.Errorf("%w: title is required", domainerrors.ErrInvalidInput)
	}
	if err := validateWorkFields(input.Title, input.Description, input.AudioURI, input.ArtworkURI); err != nil {
		return entities.MasterWork{}, err
	}
	if err := validateMetadata(input.Metadata); err != nil {
		return entities.MasterWork{}, err
	}

	profile, err := s.Profiles.GetProfile(ctx, input.ArtistAuthority)
	if err != nil {
		return entities.MasterWork{}, err
	}
	if err := authority.Require(profile.Authority, caller); err != nil {
		return entities.MasterWork{}, err
	}

	policy, err := s.Treasury.MintPolicy(ctx)
	if err != nil {
		return entities.MasterWork{}, err
	}
	if policy.MintFee > 0 {
		if err := s.Ledger.Transfer(ctx, caller, policy.TreasuryWallet, policy.MintFee); err != nil {
			return entities.MasterWork{}, err
		}
		if err := s.Treasury.AccrueRevenue(ctx, policy.MintFee); err != nil {
			s.refundTransfer(ctx, caller, policy)
			return entities.MasterWork{}, err
		}
	}

	assetID, err := s.AssetIssuer.IssueAsset(ctx, input.Title, input.ArtworkURI)
	if err != nil {
		s.refundMintFee(ctx, caller, policy)
		return entities.MasterWork{}, fmt.Errorf("issue asset: %w", err)
	}

	now := s.now()
	work := entities.MasterWork{
		WorkID:          address.Derive(address.NamespaceMasterWork, assetID),
		Title:           input.Title,
		Description:     input.Description,
		ArtistAuthority: input.ArtistAuthority,
		AudioURI:        input.AudioURI,
		ArtworkURI:      input.ArtworkURI,
		Metadata:        append([]entities.MetadataItem(nil), input.Metadata...),
		AssetID:         assetID,
		IsTransferable:  true,
		Status:          entities.WorkStatusActive,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.Repo.CreateWork(ctx, work); err != nil {
		s.refundMintFee(ctx, caller, policy)
		return entities.MasterWork{}, err
	}
	if err := s.Profiles.RegisterWork(ctx, input.ArtistAuthority); err != nil {
		s.refundMintFee(ctx, caller, policy)
		return entities.MasterWork{}, err
	}
	if err := s.appendMintedEvent(ctx, work, policy.MintFee); err != nil {
		s.refundMintFee(ctx, caller, policy)
		return entities.MasterWork{}, err
	}

	s.logger().InfoContext(ctx, "master work minted",
		slog.String("event", "work_minted"),
		slog.String("module", serviceName),
		slog.String("work_id", work.WorkID),
		slog.String("artist", work.ArtistAuthority),
		slog.Uint64("mint_fee", policy.MintFee),
	)
	return work, nil
}

// refundMintFee compensates a mint that failed after the fee settled: the
// fee goes back to the caller and the treasury accrual is reversed. Refund
// failures are logged so operators can reconcile; the caller still sees the
// original failure.
func (s Service) refundMintFee(ctx context.Context, caller string, policy ports.MintPolicy) {
	if policy.MintFee == 0 {
		return
	}
	s.refundTransfer(ctx, caller, policy)
	if err := s.Treasury.ReverseRevenue(ctx, policy.MintFee); err != nil {
		s.logger().ErrorContext(ctx, "mint fee accrual reversal failed",
			slog.String("event", "work_mint_fee_reversal_failed"),
			slog.String("module", serviceName),
			slog.Uint64("amount", policy.MintFee),
			slog.String("error", err.Error()),
		)
	}
}

func (s Service) refundTransfer(ctx context.Context, caller string, policy ports.MintPolicy) {
	if policy.MintFee == 0 {
		return
	}
	if err := s.Ledger.Transfer(ctx, policy.TreasuryWallet, caller, policy.MintFee); err != nil {
		s.logger().ErrorContext(ctx, "mint fee refund failed",
			slog.String("event", "work_mint_fee_refund_failed"),
			slog.String("module", serviceName),
			slog.String("caller", caller),
			slog.Uint64("amount", policy.MintFee),
			slog.String("error", err.Error()),
		)
	}
}

func (s Service) GetWork(ctx context.Context, workID string) (entities.MasterWork, error) {
	return s.Repo.GetWork(ctx, workID)
}

func (s Service) ListWorksByArtist(ctx context.Context, authorityID string) ([]entities.MasterWork, error) {
	return s.Repo.ListWorksByArtist(ctx, strings.TrimSpace(authorityID))
}

// UpdateWork changes the mutable fields of a work. Omitted fields are
// retained; metadata, when present, replaces the stored sequence.
func (s Service) UpdateWork(ctx context.Context, caller string, workID string, input ports.UpdateWorkInput) (entities.MasterWork, error) {
	work, err := s.Repo.GetWork(ctx, workID)
	if err != nil {
		return entities.MasterWork{}, err
	}
	if err := authority.Require(work.ArtistAuthority, caller); err != nil {
		return entities.MasterWork{}, err
	}

	// Validate every present field before touching the record.
	if input.Description != nil && len(*input.Description) > ports.MaxDescriptionLength {
		return entities.MasterWork{}, fmt.Errorf("%w: description", domainerrors.ErrStringTooLong)
	}
	if input.Metadata != nil {
		if err := validateMetadata(*input.Metadata); err != nil {
			return entities.MasterWork{}, err
		}
	}
	var status entities.WorkStatus
	if input.Status != nil {
		status = entities.WorkStatus(strings.TrimSpace(*input.Status))
		if !entities.IsValidWorkStatus(status) {
			return entities.MasterWork{}, fmt.Errorf("%w: %q", domainerrors.ErrInvalidStatus, *input.Status)
		}
	}

	if input.Description != nil {
		work.Description = *input.Description
	}
	if input.Metadata != nil {
		work.Metadata = append([]entities.MetadataItem(nil), *input.Metadata...)
	}
	if input.IsTransferable != nil {
		work.IsTransferable = *input.IsTransferable
	}
	if input.Status != nil {
		work.Status = status
	}
	work.UpdatedAt = s.now()

	if err := s.Repo.UpdateWork(ctx, work); err != nil {
		return entities.MasterWork{}, err
	}
	return work, nil
}

func (s Service) CreateCollection(ctx context.Context, caller string, name string, description string, uri string) (entities.Collection, error) {
	name = strings.TrimSpace(name)
	if strings.TrimSpace(caller) == "" {
		return entities.Collection{}, authority.ErrUnauthorized
	}
	if name == "" {
		return entities.Collection{}, fmt.Errorf("%w: name is required", domainerrors.ErrInvalidInput)
	}
	if len(name) > ports.MaxTitleLength {
		return entities.Collection{}, fmt.Errorf("%w: name", domainerrors.ErrStringTooLong)
	}
	if len(description) > ports.MaxDescriptionLength {
		return entities.Collection{}, fmt.Errorf("%w: description", domainerrors.ErrStringTooLong)
	}
	if len(uri) > ports.MaxURILength {
		return entities.Collection{}, fmt.Errorf("%w: uri", domainerrors.ErrStringTooLong)
	}

	id, err := s.IDGen.NewID(ctx)
	if err != nil {
		return entities.Collection{}, fmt.Errorf("generate collection id: %w", err)
	}
	now := s.now()
	collection := entities.Collection{
		CollectionID: address.Derive(address.NamespaceCollection, id),
		Name:         name,
		Description:  description,
		URI:          uri,
		Authority:    caller,
		WorkCount:    0,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Repo.CreateCollection(ctx, collection); err != nil {
		return entities.Collection{}, err
	}
	return collection, nil
}

func (s Service) GetCollection(ctx context.Context, collectionID string) (entities.Collection, error) {
	return s.Repo.GetCollection(ctx, collectionID)
}

// AddToCollection records one more work under the collection. Only the
// collection authority may add, and the work must exist.
func (s Service) AddToCollection(ctx context.Context, caller string, collectionID string, workID string) (entities.Collection, error) {
	collection, err := s.Repo.GetCollection(ctx, collectionID)
	if err != nil {
		return entities.Collection{}, err
	}
	if err := authority.Require(collection.Authority, caller); err != nil {
		return entities.Collection{}, err
	}
	if _, err := s.Repo.GetWork(ctx, workID); err != nil {
		return entities.Collection{}, err
	}

	collection.WorkCount++
	collection.UpdatedAt = s.now()
	if err := s.Repo.UpdateCollection(ctx, collection); err != nil {
		return entities.Collection{}, err
	}
	return collection, nil
}

func (s Service) appendMintedEvent(ctx context.Context, work entities.MasterWork, mintFee uint64) error {
	eventID, err := s.IDGen.NewID(ctx)
	if err != nil {
		return fmt.Errorf("generate event id: %w", err)
	}
	data, err := json.Marshal(mintedEventData{
		WorkID:          work.WorkID,
		ArtistAuthority: work.ArtistAuthority,
		Title:           work.Title,
		AssetID:         work.AssetID,
		MintFee:         mintFee,
	})
	if err != nil {
		return fmt.Errorf("encode minted event: %w", err)
	}
	return s.Outbox.AppendOutbox(ctx, ports.EventEnvelope{
		EventID:       eventID,
		EventType:     eventTypeMinted,
		SourceService: serviceName,
		OccurredAtUTC: s.now().UTC(),
		EntityType:    "master_work",
		EntityID:      work.WorkID,
		SchemaVersion: eventSchemaVersion,
		Data:          data,
	})
}

func validateWorkFields(title string, description string, audioURI string, artworkURI string) error {
	if len(title) > ports.MaxTitleLength {
		return fmt.Errorf("%w: title", domainerrors.ErrStringTooLong)
	}
	if len(description) > ports.MaxDescriptionLength {
		return fmt.Errorf("%w: description", domainerrors.ErrStringTooLong)
	}
	if len(audioURI) > ports.MaxURILength {
		return fmt.Errorf("%w: audio uri", domainerrors.ErrStringTooLong)
	}
	if len(artworkURI) > ports.MaxURILength {
		return fmt.Errorf("%w: artwork uri", domainerrors.ErrStringTooLong)
	}
	return nil
}

func validateMetadata(items []entities.MetadataItem) error {
	if len(items) > ports.MaxMetadataItems {
		return domainerrors.ErrTooManyMetadataItems
	}
	for _, item := range items {
		if len(item.Key) > ports.MaxMetadataKeyLength || len(item.Value) > ports.MaxMetadataValLength {
			return fmt.Errorf("%w: metadata item", domainerrors.ErrStringTooLong)
		}
	}
	return nil
}

func (s Service) now() time.Time {
	if s.Clock == nil {
		return time.Now().UTC()
	}
	return s.Clock.Now()
}

func (s Service) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.Default()
	}
	return s.Logger
}
