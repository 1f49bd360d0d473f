package postgresadapter

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	domainerrors "soundmint/contexts/artist-identity/profile-service/domain/errors"
	"soundmint/contexts/artist-identity/profile-service/ports"

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

func (r *Repository) CreateProfile(ctx context.Context, profile ports.ArtistProfile) error {
	row, err := profileModelFromRecord(profile)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrProfileExists
		}
		return err
	}
	return nil
}

func (r *Repository) GetProfile(ctx context.Context, authorityID string) (ports.ArtistProfile, error) {
	var row profileModel
	err := r.db.WithContext(ctx).
		Where("authority = ?", strings.TrimSpace(authorityID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.ArtistProfile{}, domainerrors.ErrProfileNotFound
		}
		return ports.ArtistProfile{}, err
	}
	return row.toRecord()
}

func (r *Repository) UpdateProfile(ctx context.Context, profile ports.ArtistProfile) error {
	row, err := profileModelFromRecord(profile)
	if err != nil {
		return err
	}
	result := r.db.WithContext(ctx).
		Model(&profileModel{}).
		Where("authority = ?", row.Authority).
		Updates(map[string]any{
			"name":              row.Name,
			"description":       row.Description,
			"profile_image_uri": row.ProfileImageURI,
			"social_links":      row.SocialLinks,
			"is_verified":       row.IsVerified,
			"track_count":       row.TrackCount,
			"updated_at":        row.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrProfileNotFound
	}
	return nil
}

type profileModel struct {
	Address         string    `gorm:"column:address;primaryKey"`
	Authority       string    `gorm:"column:authority;uniqueIndex"`
	Name            string    `gorm:"column:name"`
	Description     string    `gorm:"column:description"`
	ProfileImageURI string    `gorm:"column:profile_image_uri"`
	SocialLinks     []byte    `gorm:"column:social_links;type:jsonb"`
	IsVerified      bool      `gorm:"column:is_verified"`
	TrackCount      uint64    `gorm:"column:track_count"`
	CreatedAt       time.Time `gorm:"column:created_at"`
	UpdatedAt       time.Time `gorm:"column:updated_at"`
}

func (profileModel) TableName() string {
	return "artist_profiles"
}

type socialLinkRow struct {
	Platform string `json:"platform"`
	URL      string `json:"url"`
}

func profileModelFromRecord(item ports.ArtistProfile) (profileModel, error) {
	links := make([]socialLinkRow, 0, len(item.SocialLinks))
	for _, link := range item.SocialLinks {
		links = append(links, socialLinkRow{Platform: link.Platform, URL: link.URL})
	}
	payload, err := json.Marshal(links)
	if err != nil {
		return profileModel{}, err
	}
	return profileModel{
		Address:         strings.TrimSpace(item.Address),
		Authority:       strings.TrimSpace(item.Authority),
		Name:            item.Name,
		Description:     item.Description,
		ProfileImageURI: item.ProfileImageURI,
		SocialLinks:     payload,
		IsVerified:      item.IsVerified,
		TrackCount:      item.TrackCount,
		CreatedAt:       item.CreatedAt.UTC(),
		UpdatedAt:       item.UpdatedAt.UTC(),
	}, nil
}

func (m profileModel) toRecord() (ports.ArtistProfile, error) {
	var rows []socialLinkRow
	if len(m.SocialLinks) > 0 {
		if err := json.Unmarshal(m.SocialLinks, &rows); err != nil {
			return ports.ArtistProfile{}, err
		}
	}
	links := make([]ports.SocialLink, 0, len(rows))
	for _, row := range rows {
		links = append(links, ports.SocialLink{Platform: row.Platform, URL: row.URL})
	}
	return ports.ArtistProfile{
		Address:         m.Address,
		Authority:       m.Authority,
		Name:            m.Name,
		Description:     m.Description,
		ProfileImageURI: m.ProfileImageURI,
		SocialLinks:     links,
		IsVerified:      m.IsVerified,
		TrackCount:      m.TrackCount,
		CreatedAt:       m.CreatedAt.UTC(),
		UpdatedAt:       m.UpdatedAt.UTC(),
	}, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
