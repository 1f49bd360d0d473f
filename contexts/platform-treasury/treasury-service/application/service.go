package application

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	domainerrors "soundmint/contexts/platform-treasury/treasury-service/domain/errors"
	"soundmint/contexts/platform-treasury/treasury-service/ports"
	"soundmint/internal/shared/address"
	"soundmint/internal/shared/authority"
)

type Service struct {
	Repo   ports.Repository
	Clock  ports.Clock
	Ledger ports.Ledger
	// FloatAccount is the platform account withdrawals are paid from.
	FloatAccount string
	Logger       *slog.Logger
}

func (s Service) Initialize(ctx context.Context, authorityID string, treasuryWallet string) (ports.Treasury, error) {
	authorityID = strings.TrimSpace(authorityID)
	treasuryWallet = strings.TrimSpace(treasuryWallet)
	if authorityID == "" || treasuryWallet == "" {
		return ports.Treasury{}, domainerrors.ErrInvalidInput
	}

	now := s.now()
	treasury := ports.Treasury{
		Address:                address.Derive(address.NamespaceTreasury),
		Authority:              authorityID,
		TreasuryWallet:         treasuryWallet,
		MintFee:                ports.DefaultMintFee,
		PlatformFeeBasisPoints: ports.DefaultPlatformFeeBasisPoints,
		TotalRevenueCollected:  0,
		CreatedAt:              now,
		UpdatedAt:              now,
	}
	if err := s.Repo.CreateTreasury(ctx, treasury); err != nil {
		return ports.Treasury{}, err
	}

	resolveLogger(s.Logger).Info("treasury initialized",
		"event", "treasury_initialized",
		"module", "platform-treasury/treasury-service",
		"layer", "application",
		"authority", treasury.Authority,
		"treasury_wallet", treasury.TreasuryWallet,
	)
	return treasury, nil
}

func (s Service) GetTreasury(ctx context.Context) (ports.Treasury, error) {
	return s.Repo.GetTreasury(ctx)
}

func (s Service) UpdateConfig(ctx context.Context, caller string, input ports.UpdateConfigInput) (ports.Treasury, error) {
	treasury, err := s.Repo.GetTreasury(ctx)
	if err != nil {
		return ports.Treasury{}, err
	}
	if err := authority.Require(treasury.Authority, caller); err != nil {
		return ports.Treasury{}, err
	}

	// Validate everything before mutating anything.
	if input.PlatformFeeBasisPoints != nil && *input.PlatformFeeBasisPoints > ports.TotalBasisPoints {
		return ports.Treasury{}, domainerrors.ErrInvalidBasisPoints
	}
	if input.TreasuryWallet != nil && strings.TrimSpace(*input.TreasuryWallet) == "" {
		return ports.Treasury{}, domainerrors.ErrInvalidInput
	}

	if input.MintFee != nil {
		treasury.MintFee = *input.MintFee
	}
	if input.PlatformFeeBasisPoints != nil {
		treasury.PlatformFeeBasisPoints = *input.PlatformFeeBasisPoints
	}
	if input.TreasuryWallet != nil {
		treasury.TreasuryWallet = strings.TrimSpace(*input.TreasuryWallet)
	}
	treasury.UpdatedAt = s.now()

	if err := s.Repo.UpdateTreasury(ctx, treasury); err != nil {
		return ports.Treasury{}, err
	}

	resolveLogger(s.Logger).Info("treasury config updated",
		"event", "treasury_config_updated",
		"module", "platform-treasury/treasury-service",
		"layer", "application",
		"mint_fee", treasury.MintFee,
		"platform_fee_basis_points", treasury.PlatformFeeBasisPoints,
	)
	return treasury, nil
}

func (s Service) UpdateStreamingProvider(ctx context.Context, caller string, newProvider string) (ports.Treasury, error) {
	newProvider = strings.TrimSpace(newProvider)
	if newProvider == "" {
		return ports.Treasury{}, domainerrors.ErrInvalidInput
	}
	treasury, err := s.Repo.GetTreasury(ctx)
	if err != nil {
		return ports.Treasury{}, err
	}
	if err := authority.Require(treasury.Authority, caller); err != nil {
		return ports.Treasury{}, err
	}

	treasury.StreamingProvider = newProvider
	treasury.UpdatedAt = s.now()
	if err := s.Repo.UpdateTreasury(ctx, treasury); err != nil {
		return ports.Treasury{}, err
	}

	resolveLogger(s.Logger).Info("streaming provider updated",
		"event", "treasury_streaming_provider_updated",
		"module", "platform-treasury/treasury-service",
		"layer", "application",
		"streaming_provider", treasury.StreamingProvider,
	)
	return treasury, nil
}

func (s Service) WithdrawFunds(ctx context.Context, caller string, amount uint64) error {
	if amount == 0 {
		return domainerrors.ErrInvalidAmount
	}
	treasury, err := s.Repo.GetTreasury(ctx)
	if err != nil {
		return err
	}
	if err := authority.Require(treasury.Authority, caller); err != nil {
		return err
	}

	if err := s.Ledger.Transfer(ctx, s.FloatAccount, treasury.TreasuryWallet, amount); err != nil {
		return err
	}

	resolveLogger(s.Logger).Info("treasury funds withdrawn",
		"event", "treasury_funds_withdrawn",
		"module", "platform-treasury/treasury-service",
		"layer", "application",
		"amount", amount,
		"treasury_wallet", treasury.TreasuryWallet,
	)
	return nil
}

// AccrueRevenue adds collected platform fees to the treasury accumulator.
// Internal surface only, consumed by minting and revenue distribution.
func (s Service) AccrueRevenue(ctx context.Context, amount uint64) error {
	if amount == 0 {
		return nil
	}
	treasury, err := s.Repo.GetTreasury(ctx)
	if err != nil {
		return err
	}
	if treasury.TotalRevenueCollected > math.MaxUint64-amount {
		return domainerrors.ErrRevenueOverflow
	}
	treasury.TotalRevenueCollected += amount
	treasury.UpdatedAt = s.now()
	return s.Repo.UpdateTreasury(ctx, treasury)
}

// ReverseRevenue backs previously accrued fees out of the accumulator. Used
// by the consuming contexts to compensate an operation that failed after its
// fee settled.
func (s Service) ReverseRevenue(ctx context.Context, amount uint64) error {
	if amount == 0 {
		return nil
	}
	treasury, err := s.Repo.GetTreasury(ctx)
	if err != nil {
		return err
	}
	if treasury.TotalRevenueCollected < amount {
		return fmt.Errorf("%w: reversal exceeds collected revenue", domainerrors.ErrInvalidAmount)
	}
	treasury.TotalRevenueCollected -= amount
	treasury.UpdatedAt = s.now()
	return s.Repo.UpdateTreasury(ctx, treasury)
}

func (s Service) now() time.Time {
	if s.Clock == nil {
		return time.Now().UTC()
	}
	return s.Clock.Now().UTC()
}

func resolveLogger(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}
