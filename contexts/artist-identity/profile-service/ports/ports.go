package ports

import (
	"context"
	"time"
)

const (
	MaxNameLength        = 50
	MaxDescriptionLength = 200
	MaxURILength         = 200
	MaxSocialLinks       = 5
	MaxPlatformLength    = 20
	MaxURLLength         = 100
)

type SocialLink struct {
	Platform string
	URL      string
}

type ArtistProfile struct {
	Address         string
	Authority       string
	Name            string
	Description     string
	ProfileImageURI string
	SocialLinks     []SocialLink
	IsVerified      bool
	TrackCount      uint64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// UpdateProfileInput models "omitted means unchanged". SocialLinks, when
// present, replaces the stored sequence wholesale.
type UpdateProfileInput struct {
	Name            *string
	Description     *string
	ProfileImageURI *string
	SocialLinks     *[]SocialLink
}

type Repository interface {
	CreateProfile(ctx context.Context, profile ArtistProfile) error
	GetProfile(ctx context.Context, authorityID string) (ArtistProfile, error)
	UpdateProfile(ctx context.Context, profile ArtistProfile) error
}

type Clock interface {
	Now() time.Time
}

// TreasuryReader resolves the platform admin identity for verification
// decisions. Implemented by the treasury service.
type TreasuryReader interface {
	TreasuryAuthority(ctx context.Context) (string, error)
}
