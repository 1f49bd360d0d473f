package ports

import (
	"context"
	"time"
)

const (
	// TotalBasisPoints is 100% expressed in basis points.
	TotalBasisPoints = 10_000

	DefaultMintFee                = 10_000_000
	DefaultPlatformFeeBasisPoints = 500
)

type Treasury struct {
	Address                string
	Authority              string
	TreasuryWallet         string
	StreamingProvider      string
	MintFee                uint64
	PlatformFeeBasisPoints uint64
	TotalRevenueCollected  uint64
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

// UpdateConfigInput models "omitted means unchanged": a nil field retains the
// stored value, a present field replaces it.
type UpdateConfigInput struct {
	MintFee                *uint64
	PlatformFeeBasisPoints *uint64
	TreasuryWallet         *string
}

type Repository interface {
	CreateTreasury(ctx context.Context, treasury Treasury) error
	GetTreasury(ctx context.Context) (Treasury, error)
	UpdateTreasury(ctx context.Context, treasury Treasury) error
}

type Clock interface {
	Now() time.Time
}

// Ledger is the external value-transfer collaborator. A failed transfer aborts
// the enclosing operation.
type Ledger interface {
	Transfer(ctx context.Context, from string, to string, amount uint64) error
}
