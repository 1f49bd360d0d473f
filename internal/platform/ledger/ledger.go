package ledger

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/google/uuid"
)

// ErrInsufficientFunds is surfaced to callers when a transfer cannot be
// covered; the enclosing operation must abort without persisting anything.
var ErrInsufficientFunds = errors.New("insufficient funds for this operation")

// Ledger is the value-transfer collaborator. Current implementation is an
// in-process balance book while external settlement wiring is finalized;
// accounts start empty, so deployments fund callers through the
// LEDGER_SEED_ACCOUNTS config or an explicit Deposit.
type Ledger struct {
	mu       sync.Mutex
	balances map[string]uint64
	logger   *slog.Logger
}

func New(logger *slog.Logger) *Ledger {
	return &Ledger{
		balances: make(map[string]uint64),
		logger:   logger,
	}
}

// Deposit credits an account. Used by bootstrap seeding and tests.
func (l *Ledger) Deposit(account string, amount uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.balances[account] += amount
}

func (l *Ledger) Balance(account string) uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.balances[account]
}

func (l *Ledger) Transfer(ctx context.Context, from string, to string, amount uint64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.balances[from] < amount {
		return ErrInsufficientFunds
	}
	l.balances[from] -= amount
	l.balances[to] += amount

	if l.logger != nil {
		l.logger.Info("value transferred",
			"event", "ledger_transfer",
			"module", "internal/platform/ledger",
			"layer", "platform",
			"from", from,
			"to", to,
			"amount", amount,
		)
	}
	return nil
}

// AssetIssuer is the asset-issuance collaborator: it mints the unique token
// behind a master work and returns its identity.
type AssetIssuer struct {
	logger *slog.Logger
}

func NewAssetIssuer(logger *slog.Logger) *AssetIssuer {
	return &AssetIssuer{logger: logger}
}

func (a *AssetIssuer) IssueAsset(ctx context.Context, title string, metadataURI string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	assetID := uuid.NewString()
	if a.logger != nil {
		a.logger.Info("asset issued",
			"event", "asset_issued",
			"module", "internal/platform/ledger",
			"layer", "platform",
			"asset_id", assetID,
			"title", title,
		)
	}
	return assetID, nil
}
