package application

import (
	"context"
	"log/slog"
	"math"
	"strings"
	"time"

	domainerrors "soundmint/contexts/artist-identity/profile-service/domain/errors"
	"soundmint/contexts/artist-identity/profile-service/ports"
	"soundmint/internal/shared/address"
	"soundmint/internal/shared/authority"
)

type Service struct {
	Repo     ports.Repository
	Treasury ports.TreasuryReader
	Clock    ports.Clock
	Logger   *slog.Logger
}

func (s Service) CreateProfile(
	ctx context.Context,
	authorityID string,
	name string,
	description string,
	profileImageURI string,
) (ports.ArtistProfile, error) {
	authorityID = strings.TrimSpace(authorityID)
	if authorityID == "" || strings.TrimSpace(name) == "" {
		return ports.ArtistProfile{}, domainerrors.ErrInvalidInput
	}
	if len(name) > ports.MaxNameLength ||
		len(description) > ports.MaxDescriptionLength ||
		len(profileImageURI) > ports.MaxURILength {
		return ports.ArtistProfile{}, domainerrors.ErrStringTooLong
	}

	now := s.now()
	profile := ports.ArtistProfile{
		Address:         address.Derive(address.NamespaceArtistProfile, authorityID),
		Authority:       authorityID,
		Name:            name,
		Description:     description,
		ProfileImageURI: profileImageURI,
		SocialLinks:     []ports.SocialLink{},
		IsVerified:      false,
		TrackCount:      0,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.Repo.CreateProfile(ctx, profile); err != nil {
		return ports.ArtistProfile{}, err
	}

	resolveLogger(s.Logger).Info("artist profile created",
		"event", "artist_profile_created",
		"module", "artist-identity/profile-service",
		"layer", "application",
		"authority", profile.Authority,
		"name", profile.Name,
	)
	return profile, nil
}

func (s Service) GetProfile(ctx context.Context, authorityID string) (ports.ArtistProfile, error) {
	if strings.TrimSpace(authorityID) == "" {
		return ports.ArtistProfile{}, domainerrors.ErrInvalidInput
	}
	return s.Repo.GetProfile(ctx, strings.TrimSpace(authorityID))
}

func (s Service) UpdateProfile(
	ctx context.Context,
	caller string,
	input ports.UpdateProfileInput,
) (ports.ArtistProfile, error) {
	profile, err := s.Repo.GetProfile(ctx, strings.TrimSpace(caller))
	if err != nil {
		return ports.ArtistProfile{}, err
	}
	if err := authority.Require(profile.Authority, caller); err != nil {
		return ports.ArtistProfile{}, err
	}

	// Validate everything before mutating anything.
	if input.Name != nil && len(*input.Name) > ports.MaxNameLength {
		return ports.ArtistProfile{}, domainerrors.ErrStringTooLong
	}
	if input.Description != nil && len(*input.Description) > ports.MaxDescriptionLength {
		return ports.ArtistProfile{}, domainerrors.ErrStringTooLong
	}
	if input.ProfileImageURI != nil && len(*input.ProfileImageURI) > ports.MaxURILength {
		return ports.ArtistProfile{}, domainerrors.ErrStringTooLong
	}
	if input.SocialLinks != nil {
		if len(*input.SocialLinks) > ports.MaxSocialLinks {
			return ports.ArtistProfile{}, domainerrors.ErrTooManySocialLinks
		}
		for _, link := range *input.SocialLinks {
			if len(link.Platform) > ports.MaxPlatformLength || len(link.URL) > ports.MaxURLLength {
				return ports.ArtistProfile{}, domainerrors.ErrStringTooLong
			}
		}
	}

	if input.Name != nil {
		profile.Name = *input.Name
	}
	if input.Description != nil {
		profile.Description = *input.Description
	}
	if input.ProfileImageURI != nil {
		profile.ProfileImageURI = *input.ProfileImageURI
	}
	if input.SocialLinks != nil {
		// Full replacement, never a merge. Callers resend the complete list.
		profile.SocialLinks = append([]ports.SocialLink(nil), (*input.SocialLinks)...)
	}
	profile.UpdatedAt = s.now()

	if err := s.Repo.UpdateProfile(ctx, profile); err != nil {
		return ports.ArtistProfile{}, err
	}

	resolveLogger(s.Logger).Info("artist profile updated",
		"event", "artist_profile_updated",
		"module", "artist-identity/profile-service",
		"layer", "application",
		"authority", profile.Authority,
	)
	return profile, nil
}

// VerifyArtist is the one profile mutation owned by the platform rather than
// the artist: the caller is gated against the treasury authority.
func (s Service) VerifyArtist(
	ctx context.Context,
	caller string,
	artistAuthority string,
	verified bool,
) (ports.ArtistProfile, error) {
	adminID, err := s.Treasury.TreasuryAuthority(ctx)
	if err != nil {
		return ports.ArtistProfile{}, err
	}
	if err := authority.Require(adminID, caller); err != nil {
		return ports.ArtistProfile{}, err
	}

	profile, err := s.Repo.GetProfile(ctx, strings.TrimSpace(artistAuthority))
	if err != nil {
		return ports.ArtistProfile{}, err
	}
	profile.IsVerified = verified
	profile.UpdatedAt = s.now()
	if err := s.Repo.UpdateProfile(ctx, profile); err != nil {
		return ports.ArtistProfile{}, err
	}

	resolveLogger(s.Logger).Info("artist verification set",
		"event", "artist_verification_set",
		"module", "artist-identity/profile-service",
		"layer", "application",
		"authority", profile.Authority,
		"verified", verified,
	)
	return profile, nil
}

// RegisterWork increments the profile's track count. It has no external entry
// point; the work registry invokes it as part of a successful mint.
func (s Service) RegisterWork(ctx context.Context, authorityID string) (ports.ArtistProfile, error) {
	profile, err := s.Repo.GetProfile(ctx, strings.TrimSpace(authorityID))
	if err != nil {
		return ports.ArtistProfile{}, err
	}
	if profile.TrackCount == math.MaxUint64 {
		return ports.ArtistProfile{}, domainerrors.ErrTrackCountOverflow
	}
	profile.TrackCount++
	profile.UpdatedAt = s.now()
	if err := s.Repo.UpdateProfile(ctx, profile); err != nil {
		return ports.ArtistProfile{}, err
	}
	return profile, nil
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
