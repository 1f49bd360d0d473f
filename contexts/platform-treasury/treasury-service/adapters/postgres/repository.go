package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	domainerrors "soundmint/contexts/platform-treasury/treasury-service/domain/errors"
	"soundmint/contexts/platform-treasury/treasury-service/ports"
	"soundmint/internal/shared/address"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

func (r *Repository) CreateTreasury(ctx context.Context, treasury ports.Treasury) error {
	row := treasuryModelFromRecord(treasury)
	createResult := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "address"}},
			DoNothing: true,
		}).
		Create(&row)
	if createResult.Error != nil {
		if isUniqueViolation(createResult.Error) {
			return domainerrors.ErrAlreadyInitialized
		}
		return createResult.Error
	}
	if createResult.RowsAffected == 0 {
		return domainerrors.ErrAlreadyInitialized
	}
	return nil
}

func (r *Repository) GetTreasury(ctx context.Context) (ports.Treasury, error) {
	var row treasuryModel
	err := r.db.WithContext(ctx).
		Where("address = ?", address.Derive(address.NamespaceTreasury)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.Treasury{}, domainerrors.ErrNotInitialized
		}
		return ports.Treasury{}, err
	}
	return row.toRecord(), nil
}

func (r *Repository) UpdateTreasury(ctx context.Context, treasury ports.Treasury) error {
	row := treasuryModelFromRecord(treasury)
	result := r.db.WithContext(ctx).
		Model(&treasuryModel{}).
		Where("address = ?", row.Address).
		Updates(map[string]any{
			"authority":                 row.Authority,
			"treasury_wallet":           row.TreasuryWallet,
			"streaming_provider":        row.StreamingProvider,
			"mint_fee":                  row.MintFee,
			"platform_fee_basis_points": row.PlatformFeeBasisPoints,
			"total_revenue_collected":   row.TotalRevenueCollected,
			"updated_at":                row.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotInitialized
	}
	return nil
}

type treasuryModel struct {
	Address                string    `gorm:"column:address;primaryKey"`
	Authority              string    `gorm:"column:authority"`
	TreasuryWallet         string    `gorm:"column:treasury_wallet"`
	StreamingProvider      string    `gorm:"column:streaming_provider"`
	MintFee                uint64    `gorm:"column:mint_fee"`
	PlatformFeeBasisPoints uint64    `gorm:"column:platform_fee_basis_points"`
	TotalRevenueCollected  uint64    `gorm:"column:total_revenue_collected"`
	CreatedAt              time.Time `gorm:"column:created_at"`
	UpdatedAt              time.Time `gorm:"column:updated_at"`
}

func (treasuryModel) TableName() string {
	return "treasury"
}

func treasuryModelFromRecord(item ports.Treasury) treasuryModel {
	return treasuryModel{
		Address:                strings.TrimSpace(item.Address),
		Authority:              strings.TrimSpace(item.Authority),
		TreasuryWallet:         strings.TrimSpace(item.TreasuryWallet),
		StreamingProvider:      strings.TrimSpace(item.StreamingProvider),
		MintFee:                item.MintFee,
		PlatformFeeBasisPoints: item.PlatformFeeBasisPoints,
		TotalRevenueCollected:  item.TotalRevenueCollected,
		CreatedAt:              item.CreatedAt.UTC(),
		UpdatedAt:              item.UpdatedAt.UTC(),
	}
}

func (m treasuryModel) toRecord() ports.Treasury {
	return ports.Treasury{
		Address:                m.Address,
		Authority:              m.Authority,
		TreasuryWallet:         m.TreasuryWallet,
		StreamingProvider:      m.StreamingProvider,
		MintFee:                m.MintFee,
		PlatformFeeBasisPoints: m.PlatformFeeBasisPoints,
		TotalRevenueCollected:  m.TotalRevenueCollected,
		CreatedAt:              m.CreatedAt.UTC(),
		UpdatedAt:              m.UpdatedAt.UTC(),
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
