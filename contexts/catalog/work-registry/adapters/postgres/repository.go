package postgresadapter

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"soundmint/contexts/catalog/work-registry/domain/entities"
	domainerrors "soundmint/contexts/catalog/work-registry/domain/errors"
	"soundmint/contexts/catalog/work-registry/ports"

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

func (r *Repository) CreateWork(ctx context.Context, work entities.MasterWork) error {
	row, err := workModelFromEntity(work)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrWorkExists
		}
		return err
	}
	return nil
}

func (r *Repository) GetWork(ctx context.Context, workID string) (entities.MasterWork, error) {
	var row workModel
	err := r.db.WithContext(ctx).
		Where("work_id = ?", workID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.MasterWork{}, domainerrors.ErrWorkNotFound
		}
		return entities.MasterWork{}, err
	}
	return row.toEntity()
}

func (r *Repository) UpdateWork(ctx context.Context, work entities.MasterWork) error {
	row, err := workModelFromEntity(work)
	if err != nil {
		return err
	}
	result := r.db.WithContext(ctx).
		Model(&workModel{}).
		Where("work_id = ?", row.WorkID).
		Updates(map[string]any{
			"description":     row.Description,
			"metadata":        row.Metadata,
			"is_transferable": row.IsTransferable,
			"status":          row.Status,
			"updated_at":      row.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrWorkNotFound
	}
	return nil
}

func (r *Repository) ListWorksByArtist(ctx context.Context, authorityID string) ([]entities.MasterWork, error) {
	var rows []workModel
	err := r.db.WithContext(ctx).
		Where("artist_authority = ?", authorityID).
		Order("created_at ASC").
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}
	out := make([]entities.MasterWork, 0, len(rows))
	for _, row := range rows {
		work, err := row.toEntity()
		if err != nil {
			return nil, err
		}
		out = append(out, work)
	}
	return out, nil
}

func (r *Repository) CreateCollection(ctx context.Context, collection entities.Collection) error {
	row := collectionModelFromEntity(collection)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrInvalidInput
		}
		return err
	}
	return nil
}

func (r *Repository) GetCollection(ctx context.Context, collectionID string) (entities.Collection, error) {
	var row collectionModel
	err := r.db.WithContext(ctx).
		Where("collection_id = ?", collectionID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Collection{}, domainerrors.ErrCollectionNotFound
		}
		return entities.Collection{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) UpdateCollection(ctx context.Context, collection entities.Collection) error {
	row := collectionModelFromEntity(collection)
	result := r.db.WithContext(ctx).
		Model(&collectionModel{}).
		Where("collection_id = ?", row.CollectionID).
		Updates(map[string]any{
			"work_count": row.WorkCount,
			"updated_at": row.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrCollectionNotFound
	}
	return nil
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

type workModel struct {
	WorkID          string    `gorm:"column:work_id;primaryKey"`
	Title           string    `gorm:"column:title"`
	Description     string    `gorm:"column:description"`
	ArtistAuthority string    `gorm:"column:artist_authority;index"`
	AudioURI        string    `gorm:"column:audio_uri"`
	ArtworkURI      string    `gorm:"column:artwork_uri"`
	Metadata        []byte    `gorm:"column:metadata;type:jsonb"`
	AssetID         string    `gorm:"column:asset_id;uniqueIndex"`
	IsTransferable  bool      `gorm:"column:is_transferable"`
	Status          string    `gorm:"column:status"`
	CreatedAt       time.Time `gorm:"column:created_at"`
	UpdatedAt       time.Time `gorm:"column:updated_at"`
}

func (workModel) TableName() string {
	return "master_works"
}

type metadataRow struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

func workModelFromEntity(item entities.MasterWork) (workModel, error) {
	rows := make([]metadataRow, 0, len(item.Metadata))
	for _, entry := range item.Metadata {
		rows = append(rows, metadataRow{Key: entry.Key, Value: entry.Value})
	}
	payload, err := json.Marshal(rows)
	if err != nil {
		return workModel{}, err
	}
	return workModel{
		WorkID:          item.WorkID,
		Title:           item.Title,
		Description:     item.Description,
		ArtistAuthority: item.ArtistAuthority,
		AudioURI:        item.AudioURI,
		ArtworkURI:      item.ArtworkURI,
		Metadata:        payload,
		AssetID:         item.AssetID,
		IsTransferable:  item.IsTransferable,
		Status:          string(item.Status),
		CreatedAt:       item.CreatedAt.UTC(),
		UpdatedAt:       item.UpdatedAt.UTC(),
	}, nil
}

func (m workModel) toEntity() (entities.MasterWork, error) {
	var rows []metadataRow
	if len(m.Metadata) > 0 {
		if err := json.Unmarshal(m.Metadata, &rows); err != nil {
			return entities.MasterWork{}, err
		}
	}
	metadata := make([]entities.MetadataItem, 0, len(rows))
	for _, row := range rows {
		metadata = append(metadata, entities.MetadataItem{Key: row.Key, Value: row.Value})
	}
	return entities.MasterWork{
		WorkID:          m.WorkID,
		Title:           m.Title,
		Description:     m.Description,
		ArtistAuthority: m.ArtistAuthority,
		AudioURI:        m.AudioURI,
		ArtworkURI:      m.ArtworkURI,
		Metadata:        metadata,
		AssetID:         m.AssetID,
		IsTransferable:  m.IsTransferable,
		Status:          entities.WorkStatus(m.Status),
		CreatedAt:       m.CreatedAt.UTC(),
		UpdatedAt:       m.UpdatedAt.UTC(),
	}, nil
}

type collectionModel struct {
	CollectionID string    `gorm:"column:collection_id;primaryKey"`
	Name         string    `gorm:"column:name"`
	Description  string    `gorm:"column:description"`
	URI          string    `gorm:"column:uri"`
	Authority    string    `gorm:"column:authority;index"`
	WorkCount    uint64    `gorm:"column:work_count"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (collectionModel) TableName() string {
	return "collections"
}

func collectionModelFromEntity(item entities.Collection) collectionModel {
	return collectionModel{
		CollectionID: item.CollectionID,
		Name:         item.Name,
		Description:  item.Description,
		URI:          item.URI,
		Authority:    item.Authority,
		WorkCount:    item.WorkCount,
		CreatedAt:    item.CreatedAt.UTC(),
		UpdatedAt:    item.UpdatedAt.UTC(),
	}
}

func (m collectionModel) toEntity() entities.Collection {
	return entities.Collection{
		CollectionID: m.CollectionID,
		Name:         m.Name,
		Description:  m.Description,
		URI:          m.URI,
		Authority:    m.Authority,
		WorkCount:    m.WorkCount,
		CreatedAt:    m.CreatedAt.UTC(),
		UpdatedAt:    m.UpdatedAt.UTC(),
	}
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
	return "work_registry_outbox"
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
