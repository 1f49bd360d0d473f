package application

import (
	"context"
	"errors"
	"strings"
	"testing"

	"soundmint/contexts/catalog/work-registry/adapters/memory"
	"soundmint/contexts/catalog/work-registry/domain/entities"
	domainerrors "soundmint/contexts/catalog/work-registry/domain/errors"
	"soundmint/contexts/catalog/work-registry/ports"
	"soundmint/internal/platform/ledger"
	"soundmint/internal/shared/authority"
)

type stubProfiles struct {
	profiles   map[string]ports.ArtistProfileView
	registered map[string]int
	notFound   error
}

func (s *stubProfiles) GetProfile(_ context.Context, authorityID string) (ports.ArtistProfileView, error) {
	profile, ok := s.profiles[authorityID]
	if !ok {
		return ports.ArtistProfileView{}, s.notFound
	}
	return profile, nil
}

func (s *stubProfiles) RegisterWork(_ context.Context, authorityID string) error {
	s.registered[authorityID]++
	return nil
}

type stubTreasury struct {
	policy   ports.MintPolicy
	accrued  uint64
	reversed uint64
}

func (s *stubTreasury) MintPolicy(context.Context) (ports.MintPolicy, error) {
	return s.policy, nil
}

func (s *stubTreasury) AccrueRevenue(_ context.Context, amount uint64) error {
	s.accrued += amount
	return nil
}

func (s *stubTreasury) ReverseRevenue(_ context.Context, amount uint64) error {
	s.accrued -= amount
	s.reversed += amount
	return nil
}

type stubIssuer struct {
	next string
}

func (s stubIssuer) IssueAsset(context.Context, string, string) (string, error) {
	return s.next, nil
}

type fixture struct {
	service  Service
	store    *memory.Store
	profiles *stubProfiles
	treasury *stubTreasury
	book     *ledger.Ledger
}

func newFixture(mintFee uint64) fixture {
	store := memory.NewStore()
	profiles := &stubProfiles{
		profiles:   map[string]ports.ArtistProfileView{"artist-1": {Authority: "artist-1"}},
		registered: make(map[string]int),
		notFound:   errors.New("profile not found"),
	}
	treasury := &stubTreasury{policy: ports.MintPolicy{TreasuryWallet: "treasury-wallet", MintFee: mintFee}}
	book := ledger.New(nil)
	return fixture{
		service: Service{
			Repo:        store,
			Profiles:    profiles,
			Treasury:    treasury,
			Ledger:      book,
			AssetIssuer: stubIssuer{next: "asset-1"},
			Outbox:      store,
			Clock:       store,
			IDGen:       store,
		},
		store:    store,
		profiles: profiles,
		treasury: treasury,
		book:     book,
	}
}

func mintInput() ports.MintWorkInput {
	return ports.MintWorkInput{
		ArtistAuthority: "artist-1",
		Title:           "Midnight Signal",
		Description:     "first single",
		AudioURI:        "ipfs://audio",
		ArtworkURI:      "ipfs://artwork",
	}
}

func TestMintWorkChargesFeeAndRecords(t *testing.T) {
	fx := newFixture(10_000_000)
	ctx := context.Background()
	fx.book.Deposit("artist-1", 10_000_000)

	work, err := fx.service.MintWork(ctx, "artist-1", mintInput())
	if err != nil {
		t.Fatalf("mint failed: %v", err)
	}
	if work.Status != entities.WorkStatusActive || !work.IsTransferable {
		t.Fatalf("unexpected defaults: %+v", work)
	}
	if work.AssetID != "asset-1" {
		t.Fatalf("unexpected asset id %s", work.AssetID)
	}
	if balance := fx.book.Balance("treasury-wallet"); balance != 10_000_000 {
		t.Fatalf("fee not transferred, treasury balance %d", balance)
	}
	if fx.treasury.accrued != 10_000_000 {
		t.Fatalf("fee not accrued, got %d", fx.treasury.accrued)
	}
	if fx.profiles.registered["artist-1"] != 1 {
		t.Fatal("mint must be recorded on the owning profile")
	}

	pending, err := fx.store.ListPendingOutbox(ctx, 10)
	if err != nil {
		t.Fatalf("list outbox failed: %v", err)
	}
	if len(pending) != 1 || pending[0].EventType != "work.minted" {
		t.Fatalf("expected one work.minted event, got %+v", pending)
	}

	stored, err := fx.service.GetWork(ctx, work.WorkID)
	if err != nil {
		t.Fatalf("get work failed: %v", err)
	}
	if stored.Title != "Midnight Signal" {
		t.Fatalf("unexpected title %s", stored.Title)
	}
}

func TestMintWorkByNonOwnerFails(t *testing.T) {
	fx := newFixture(0)

	_, err := fx.service.MintWork(context.Background(), "intruder", mintInput())
	if !errors.Is(err, authority.ErrUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
	if fx.profiles.registered["artist-1"] != 0 {
		t.Fatal("failed mint must not touch the profile")
	}
}

func TestMintWorkInsufficientFunds(t *testing.T) {
	fx := newFixture(10_000_000)
	ctx := context.Background()
	fx.book.Deposit("artist-1", 9_999_999)

	_, err := fx.service.MintWork(ctx, "artist-1", mintInput())
	if !errors.Is(err, ledger.ErrInsufficientFunds) {
		t.Fatalf("expected insufficient funds, got %v", err)
	}
	works, _ := fx.service.ListWorksByArtist(ctx, "artist-1")
	if len(works) != 0 {
		t.Fatal("failed mint must not persist a work")
	}
	if balance := fx.book.Balance("artist-1"); balance != 9_999_999 {
		t.Fatalf("failed mint must not move funds, balance %d", balance)
	}
}

func TestMintWorkRefundsFeeWhenPersistFails(t *testing.T) {
	fx := newFixture(10_000_000)
	ctx := context.Background()
	fx.book.Deposit("artist-1", 20_000_000)

	if _, err := fx.service.MintWork(ctx, "artist-1", mintInput()); err != nil {
		t.Fatalf("first mint failed: %v", err)
	}

	// The stub issuer hands out the same asset id, so the second mint
	// collides on persist after the fee has already moved.
	_, err := fx.service.MintWork(ctx, "artist-1", mintInput())
	if !errors.Is(err, domainerrors.ErrWorkExists) {
		t.Fatalf("expected work-exists, got %v", err)
	}

	if balance := fx.book.Balance("artist-1"); balance != 10_000_000 {
		t.Fatalf("fee must be refunded on failed mint, balance %d", balance)
	}
	if balance := fx.book.Balance("treasury-wallet"); balance != 10_000_000 {
		t.Fatalf("treasury must keep only the first fee, balance %d", balance)
	}
	if fx.treasury.accrued != 10_000_000 {
		t.Fatalf("second accrual must be reversed, got %d", fx.treasury.accrued)
	}
	if fx.treasury.reversed != 10_000_000 {
		t.Fatalf("expected one reversed fee, got %d", fx.treasury.reversed)
	}
	if fx.profiles.registered["artist-1"] != 1 {
		t.Fatalf("failed mint must not touch the profile, got %d", fx.profiles.registered["artist-1"])
	}
	works, _ := fx.service.ListWorksByArtist(ctx, "artist-1")
	if len(works) != 1 {
		t.Fatalf("expected one persisted work, got %d", len(works))
	}
}

func TestMintWorkMetadataLimits(t *testing.T) {
	fx := newFixture(0)
	ctx := context.Background()

	input := mintInput()
	input.Metadata = make([]entities.MetadataItem, 11)
	for i := range input.Metadata {
		input.Metadata[i] = entities.MetadataItem{Key: "k", Value: "v"}
	}
	if _, err := fx.service.MintWork(ctx, "artist-1", input); !errors.Is(err, domainerrors.ErrTooManyMetadataItems) {
		t.Fatalf("expected too-many-metadata, got %v", err)
	}

	input = mintInput()
	input.Metadata = []entities.MetadataItem{{Key: strings.Repeat("k", 51), Value: "v"}}
	if _, err := fx.service.MintWork(ctx, "artist-1", input); !errors.Is(err, domainerrors.ErrStringTooLong) {
		t.Fatalf("expected string-too-long, got %v", err)
	}

	input = mintInput()
	input.Title = strings.Repeat("t", 101)
	if _, err := fx.service.MintWork(ctx, "artist-1", input); !errors.Is(err, domainerrors.ErrStringTooLong) {
		t.Fatalf("expected string-too-long title, got %v", err)
	}
}

func TestUpdateWorkOmittedFieldsRetained(t *testing.T) {
	fx := newFixture(0)
	ctx := context.Background()
	work, err := fx.service.MintWork(ctx, "artist-1", mintInput())
	if err != nil {
		t.Fatalf("mint failed: %v", err)
	}

	status := "delisted"
	updated, err := fx.service.UpdateWork(ctx, "artist-1", work.WorkID, ports.UpdateWorkInput{Status: &status})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Status != entities.WorkStatusDelisted {
		t.Fatalf("unexpected status %s", updated.Status)
	}
	if updated.Description != "first single" || !updated.IsTransferable {
		t.Fatalf("omitted fields must be retained: %+v", updated)
	}
	if updated.Title != work.Title || updated.AssetID != work.AssetID {
		t.Fatal("immutable fields changed")
	}

	bad := "archived"
	if _, err := fx.service.UpdateWork(ctx, "artist-1", work.WorkID, ports.UpdateWorkInput{Status: &bad}); !errors.Is(err, domainerrors.ErrInvalidStatus) {
		t.Fatalf("expected invalid status, got %v", err)
	}
}

func TestUpdateWorkUnauthorized(t *testing.T) {
	fx := newFixture(0)
	ctx := context.Background()
	work, err := fx.service.MintWork(ctx, "artist-1", mintInput())
	if err != nil {
		t.Fatalf("mint failed: %v", err)
	}

	flag := false
	_, err = fx.service.UpdateWork(ctx, "intruder", work.WorkID, ports.UpdateWorkInput{IsTransferable: &flag})
	if !errors.Is(err, authority.ErrUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
	stored, _ := fx.service.GetWork(ctx, work.WorkID)
	if !stored.IsTransferable {
		t.Fatal("failed update must not mutate")
	}
}

func TestCollectionsTrackMemberCount(t *testing.T) {
	fx := newFixture(0)
	ctx := context.Background()
	work, err := fx.service.MintWork(ctx, "artist-1", mintInput())
	if err != nil {
		t.Fatalf("mint failed: %v", err)
	}

	collection, err := fx.service.CreateCollection(ctx, "artist-1", "Debut EP", "", "ipfs://collection")
	if err != nil {
		t.Fatalf("create collection failed: %v", err)
	}
	if collection.WorkCount != 0 {
		t.Fatalf("new collection must be empty, got %d", collection.WorkCount)
	}

	if _, err := fx.service.AddToCollection(ctx, "intruder", collection.CollectionID, work.WorkID); !errors.Is(err, authority.ErrUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
	if _, err := fx.service.AddToCollection(ctx, "artist-1", collection.CollectionID, "missing-work"); !errors.Is(err, domainerrors.ErrWorkNotFound) {
		t.Fatalf("expected work-not-found, got %v", err)
	}

	collection, err = fx.service.AddToCollection(ctx, "artist-1", collection.CollectionID, work.WorkID)
	if err != nil {
		t.Fatalf("add to collection failed: %v", err)
	}
	if collection.WorkCount != 1 {
		t.Fatalf("expected work count 1, got %d", collection.WorkCount)
	}
}
