package postgresadapter

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"soundmint/contexts/finance-core/royalty-ledger/domain/entities"
	domainerrors "soundmint/contexts/finance-core/royalty-ledger/domain/errors"
	"soundmint/contexts/finance-core/royalty-ledger/ports"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
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

func (r *Repository) CreateSplit(ctx context.Context, split entities.RoyaltySplit) error {
	row, err := splitModelFromEntity(split)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrSplitExists
		}
		return err
	}
	return nil
}

func (r *Repository) GetSplit(ctx context.Context, workID string) (entities.RoyaltySplit, error) {
	var row splitModel
	err := r.db.WithContext(ctx).
		Where("work_id = ?", workID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.RoyaltySplit{}, domainerrors.ErrSplitNotFound
		}
		return entities.RoyaltySplit{}, err
	}
	return row.toEntity()
}

func (r *Repository) UpdateSplit(ctx context.Context, split entities.RoyaltySplit) error {
	row, err := splitModelFromEntity(split)
	if err != nil {
		return err
	}
	result := r.db.WithContext(ctx).
		Model(&splitModel{}).
		Where("work_id = ?", row.WorkID).
		Updates(map[string]any{
			"collaborators":           row.Collaborators,
			"total_revenue_collected": row.TotalRevenueCollected,
			"last_revenue_at":         row.LastRevenueAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrSplitNotFound
	}
	return nil
}

func (r *Repository) GetTracker(ctx context.Context, workID string) (entities.RevenueTracker, error) {
	var row trackerModel
	err := r.db.WithContext(ctx).
		Where("work_id = ?", workID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.RevenueTracker{}, domainerrors.ErrTrackerNotFound
		}
		return entities.RevenueTracker{}, err
	}
	return row.toEntity()
}

func (r *Repository) SaveTracker(ctx context.Context, tracker entities.RevenueTracker) error {
	row, err := trackerModelFromEntity(tracker)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Save(&row).Error
}

func (r *Repository) AppendOutbox(ctx context.Context, envelope ports.EventEnvelope) error {
	payload, err := json.Marshal(envelope)
	if err != nil {
		return err
	}
	row := outboxModel{
		OutboxID:  envelope.EventID,
		EventType: envelope.EventType,
		EntityID:  envelope.EntityID,
		Payload:   payload,
		CreatedAt: envelope.OccurredAtUTC,
	}
	return r.db.WithContext(ctx).Create(&row).Error
}

func (r *Repository) ListPendingOutbox(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	var rows []outboxModel
	query := r.db.WithContext(ctx).
		Where("published_at IS NULL").
		Order("created_at ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]ports.OutboxMessage, 0, len(rows))
	for _, row := range rows {
		out = append(out, ports.OutboxMessage{
			OutboxID:  row.OutboxID,
			EventType: row.EventType,
			EntityID:  row.EntityID,
			Payload:   row.Payload,
			CreatedAt: row.CreatedAt,
		})
	}
	return out, nil
}

func (r *Repository) MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&outboxModel{}).
		Where("outbox_id = ?", outboxID).
		Update("published_at", publishedAt.UTC())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrInvalidInput
	}
	return nil
}

type splitModel struct {
	SplitID               string    `gorm:"column:split_id;primaryKey"`
	WorkID                string    `gorm:"column:work_id;uniqueIndex"`
	Collaborators         []byte    `gorm:"column:collaborators;type:jsonb"`
	TotalBasisPoints      uint64    `gorm:"column:total_basis_points"`
	TotalRevenueCollected uint64    `gorm:"column:total_revenue_collected"`
	CreatedAt             time.Time `gorm:"column:created_at"`
	LastRevenueAt         time.Time `gorm:"column:last_revenue_at"`
}

func (splitModel) TableName() string {
	return "royalty_splits"
}

type collaboratorRow struct {
	Address          string `json:"address"`
	Name             string `json:"name"`
	ShareBasisPoints uint64 `json:"share_basis_points"`
	AmountEarned     uint64 `json:"amount_earned"`
	AmountClaimed    uint64 `json:"amount_claimed"`
}

func splitModelFromEntity(item entities.RoyaltySplit) (splitModel, error) {
	rows := make([]collaboratorRow, 0, len(item.Collaborators))
	for _, member := range item.Collaborators {
		rows = append(rows, collaboratorRow{
			Address:          member.Address,
			Name:             member.Name,
			ShareBasisPoints: member.ShareBasisPoints,
			AmountEarned:     member.AmountEarned,
			AmountClaimed:    member.AmountClaimed,
		})
	}
	payload, err := json.Marshal(rows)
	if err != nil {
		return splitModel{}, err
	}
	return splitModel{
		SplitID:               item.SplitID,
		WorkID:                item.WorkID,
		Collaborators:         payload,
		TotalBasisPoints:      item.TotalBasisPoints,
		TotalRevenueCollected: item.TotalRevenueCollected,
		CreatedAt:             item.CreatedAt.UTC(),
		LastRevenueAt:         item.LastRevenueAt.UTC(),
	}, nil
}

func (m splitModel) toEntity() (entities.RoyaltySplit, error) {
	var rows []collaboratorRow
	if len(m.Collaborators) > 0 {
		if err := json.Unmarshal(m.Collaborators, &rows); err != nil {
			return entities.RoyaltySplit{}, err
		}
	}
	members := make([]entities.Collaborator, 0, len(rows))
	for _, row := range rows {
		members = append(members, entities.Collaborator{
			Address:          row.Address,
			Name:             row.Name,
			ShareBasisPoints: row.ShareBasisPoints,
			AmountEarned:     row.AmountEarned,
			AmountClaimed:    row.AmountClaimed,
		})
	}
	return entities.RoyaltySplit{
		SplitID:               m.SplitID,
		WorkID:                m.WorkID,
		Collaborators:         members,
		TotalBasisPoints:      m.TotalBasisPoints,
		TotalRevenueCollected: m.TotalRevenueCollected,
		CreatedAt:             m.CreatedAt.UTC(),
		LastRevenueAt:         m.LastRevenueAt.UTC(),
	}, nil
}

type trackerModel struct {
	TrackerID      string    `gorm:"column:tracker_id;primaryKey"`
	WorkID         string    `gorm:"column:work_id;uniqueIndex"`
	StreamingTotal uint64    `gorm:"column:streaming_total"`
	SalesTotal     uint64    `gorm:"column:sales_total"`
	OtherTotal     uint64    `gorm:"column:other_total"`
	TotalRevenue   uint64    `gorm:"column:total_revenue"`
	Transactions   []byte    `gorm:"column:transactions;type:jsonb"`
	CreatedAt      time.Time `gorm:"column:created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at"`
}

func (trackerModel) TableName() string {
	return "revenue_trackers"
}

type transactionRow struct {
	Amount      uint64    `json:"amount"`
	Source      string    `json:"source"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	OccurredAt  time.Time `json:"occurred_at"`
}

func trackerModelFromEntity(item entities.RevenueTracker) (trackerModel, error) {
	rows := make([]transactionRow, 0, len(item.Transactions))
	for _, tx := range item.Transactions {
		rows = append(rows, transactionRow{
			Amount:      tx.Amount,
			Source:      tx.Source,
			Description: tx.Description,
			Category:    string(tx.Category),
			OccurredAt:  tx.OccurredAt.UTC(),
		})
	}
	payload, err := json.Marshal(rows)
	if err != nil {
		return trackerModel{}, err
	}
	return trackerModel{
		TrackerID:      item.TrackerID,
		WorkID:         item.WorkID,
		StreamingTotal: item.StreamingTotal,
		SalesTotal:     item.SalesTotal,
		OtherTotal:     item.OtherTotal,
		TotalRevenue:   item.TotalRevenue,
		Transactions:   payload,
		CreatedAt:      item.CreatedAt.UTC(),
		UpdatedAt:      item.UpdatedAt.UTC(),
	}, nil
}

func (m trackerModel) toEntity() (entities.RevenueTracker, error) {
	var rows []transactionRow
	if len(m.Transactions) > 0 {
		if err := json.Unmarshal(m.Transactions, &rows); err != nil {
			return entities.RevenueTracker{}, err
		}
	}
	transactions := make([]entities.RevenueTransaction, 0, len(rows))
	for _, row := range rows {
		transactions = append(transactions, entities.RevenueTransaction{
			Amount:      row.Amount,
			Source:      row.Source,
			Description: row.Description,
			Category:    entities.RevenueCategory(row.Category),
			OccurredAt:  row.OccurredAt.UTC(),
		})
	}
	return entities.RevenueTracker{
		TrackerID:      m.TrackerID,
		WorkID:         m.WorkID,
		StreamingTotal: m.StreamingTotal,
		SalesTotal:     m.SalesTotal,
		OtherTotal:     m.OtherTotal,
		TotalRevenue:   m.TotalRevenue,
		Transactions:   transactions,
		CreatedAt:      m.CreatedAt.UTC(),
		UpdatedAt:      m.UpdatedAt.UTC(),
	}, nil
}

type outboxModel struct {
	OutboxID    string     `gorm:"column:outbox_id;primaryKey"`
	EventType   string     `gorm:"column:event_type"`
	EntityID    string     `gorm:"column:entity_id"`
	Payload     []byte     `gorm:"column:payload;type:jsonb"`
	CreatedAt   time.Time  `gorm:"column:created_at"`
	PublishedAt *time.Time `gorm:"column:published_at"`
}

func (outboxModel) TableName() string {
	return "royalty_ledger_outbox"
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
