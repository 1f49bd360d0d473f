package application

import (
	"context"
	"errors"
	"testing"

	"soundmint/contexts/platform-treasury/treasury-service/adapters/memory"
	domainerrors "soundmint/contexts/platform-treasury/treasury-service/domain/errors"
	"soundmint/contexts/platform-treasury/treasury-service/ports"
	"soundmint/internal/platform/ledger"
	"soundmint/internal/shared/authority"
)

func newService(led *ledger.Ledger) (Service, *memory.Store) {
	store := memory.NewStore()
	return Service{
		Repo:         store,
		Clock:        store,
		Ledger:       led,
		FloatAccount: "float",
	}, store
}

func TestInitializeDefaults(t *testing.T) {
	service, _ := newService(ledger.New(nil))

	treasury, err := service.Initialize(context.Background(), "admin-wallet", "treasury-wallet")
	if err != nil {
		t.Fatalf("initialize failed: %v", err)
	}
	if treasury.MintFee != 10_000_000 {
		t.Fatalf("unexpected default mint fee %d", treasury.MintFee)
	}
	if treasury.PlatformFeeBasisPoints != 500 {
		t.Fatalf("unexpected default platform fee %d", treasury.PlatformFeeBasisPoints)
	}
	if treasury.TotalRevenueCollected != 0 {
		t.Fatalf("expected zero collected revenue, got %d", treasury.TotalRevenueCollected)
	}
}

func TestInitializeTwiceFails(t *testing.T) {
	service, _ := newService(ledger.New(nil))
	ctx := context.Background()

	first, err := service.Initialize(ctx, "admin-wallet", "treasury-wallet")
	if err != nil {
		t.Fatalf("first initialize failed: %v", err)
	}
	_, err = service.Initialize(ctx, "other-admin", "other-wallet")
	if !errors.Is(err, domainerrors.ErrAlreadyInitialized) {
		t.Fatalf("expected already-initialized, got %v", err)
	}

	stored, err := service.GetTreasury(ctx)
	if err != nil {
		t.Fatalf("get treasury failed: %v", err)
	}
	if stored.Authority != first.Authority || stored.TreasuryWallet != first.TreasuryWallet {
		t.Fatal("second initialize must leave the first record unchanged")
	}
}

func TestUpdateConfigBasisPointBounds(t *testing.T) {
	service, _ := newService(ledger.New(nil))
	ctx := context.Background()
	if _, err := service.Initialize(ctx, "admin-wallet", "treasury-wallet"); err != nil {
		t.Fatalf("initialize failed: %v", err)
	}

	for _, bps := range []uint64{0, 1, 500, 9999, 10000} {
		value := bps
		treasury, err := service.UpdateConfig(ctx, "admin-wallet", ports.UpdateConfigInput{
			PlatformFeeBasisPoints: &value,
		})
		if err != nil {
			t.Fatalf("update with %d basis points failed: %v", bps, err)
		}
		if treasury.PlatformFeeBasisPoints != bps {
			t.Fatalf("expected %d basis points stored, got %d", bps, treasury.PlatformFeeBasisPoints)
		}
	}

	over := uint64(10_001)
	_, err := service.UpdateConfig(ctx, "admin-wallet", ports.UpdateConfigInput{
		PlatformFeeBasisPoints: &over,
	})
	if !errors.Is(err, domainerrors.ErrInvalidBasisPoints) {
		t.Fatalf("expected invalid basis points, got %v", err)
	}
	stored, _ := service.GetTreasury(ctx)
	if stored.PlatformFeeBasisPoints != 10000 {
		t.Fatalf("rejected update must leave stored value, got %d", stored.PlatformFeeBasisPoints)
	}
}

func TestUpdateConfigOmittedFieldsRetained(t *testing.T) {
	service, _ := newService(ledger.New(nil))
	ctx := context.Background()
	if _, err := service.Initialize(ctx, "admin-wallet", "treasury-wallet"); err != nil {
		t.Fatalf("initialize failed: %v", err)
	}

	fee := uint64(42)
	treasury, err := service.UpdateConfig(ctx, "admin-wallet", ports.UpdateConfigInput{MintFee: &fee})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if treasury.MintFee != 42 {
		t.Fatalf("expected mint fee 42, got %d", treasury.MintFee)
	}
	if treasury.PlatformFeeBasisPoints != 500 || treasury.TreasuryWallet != "treasury-wallet" {
		t.Fatal("omitted fields must be retained")
	}

	// An over-limit basis point value must leave every field unchanged,
	// including ones supplied in the same request.
	bigFee := uint64(77)
	over := uint64(20_000)
	_, err = service.UpdateConfig(ctx, "admin-wallet", ports.UpdateConfigInput{
		MintFee:                &bigFee,
		PlatformFeeBasisPoints: &over,
	})
	if !errors.Is(err, domainerrors.ErrInvalidBasisPoints) {
		t.Fatalf("expected invalid basis points, got %v", err)
	}
	stored, _ := service.GetTreasury(ctx)
	if stored.MintFee != 42 {
		t.Fatalf("atomic validation violated, mint fee became %d", stored.MintFee)
	}
}

func TestUpdateConfigUnauthorized(t *testing.T) {
	service, _ := newService(ledger.New(nil))
	ctx := context.Background()
	if _, err := service.Initialize(ctx, "admin-wallet", "treasury-wallet"); err != nil {
		t.Fatalf("initialize failed: %v", err)
	}

	fee := uint64(1)
	_, err := service.UpdateConfig(ctx, "intruder", ports.UpdateConfigInput{MintFee: &fee})
	if !errors.Is(err, authority.ErrUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestUpdateStreamingProvider(t *testing.T) {
	service, _ := newService(ledger.New(nil))
	ctx := context.Background()
	if _, err := service.Initialize(ctx, "admin-wallet", "treasury-wallet"); err != nil {
		t.Fatalf("initialize failed: %v", err)
	}

	treasury, err := service.UpdateStreamingProvider(ctx, "admin-wallet", "provider-1")
	if err != nil {
		t.Fatalf("update streaming provider failed: %v", err)
	}
	if treasury.StreamingProvider != "provider-1" {
		t.Fatalf("unexpected provider %s", treasury.StreamingProvider)
	}

	_, err = service.UpdateStreamingProvider(ctx, "provider-1", "provider-2")
	if !errors.Is(err, authority.ErrUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestWithdrawFunds(t *testing.T) {
	led := ledger.New(nil)
	service, _ := newService(led)
	ctx := context.Background()
	if _, err := service.Initialize(ctx, "admin-wallet", "treasury-wallet"); err != nil {
		t.Fatalf("initialize failed: %v", err)
	}

	if err := service.WithdrawFunds(ctx, "admin-wallet", 0); !errors.Is(err, domainerrors.ErrInvalidAmount) {
		t.Fatalf("expected invalid amount, got %v", err)
	}
	if err := service.WithdrawFunds(ctx, "admin-wallet", 100); !errors.Is(err, ledger.ErrInsufficientFunds) {
		t.Fatalf("expected insufficient funds, got %v", err)
	}

	led.Deposit("float", 150)
	if err := service.WithdrawFunds(ctx, "admin-wallet", 100); err != nil {
		t.Fatalf("withdraw failed: %v", err)
	}
	if led.Balance("treasury-wallet") != 100 {
		t.Fatalf("expected 100 in treasury wallet, got %d", led.Balance("treasury-wallet"))
	}
}
