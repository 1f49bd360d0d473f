package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"soundmint/contexts/artist-identity/profile-service/application"
	"soundmint/contexts/artist-identity/profile-service/ports"
	httptransport "soundmint/contexts/artist-identity/profile-service/transport/http"
)

type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) CreateProfileHandler(
	ctx context.Context,
	caller string,
	req httptransport.CreateArtistProfileRequest,
) (httptransport.ArtistProfileResponse, error) {
	profile, err := h.Service.CreateProfile(ctx, caller, req.Name, req.Description, req.ProfileImageURI)
	if err != nil {
		return httptransport.ArtistProfileResponse{}, err
	}
	return httptransport.ArtistProfileResponse{Status: "success", Data: toDTO(profile)}, nil
}

func (h Handler) GetProfileHandler(
	ctx context.Context,
	authorityID string,
) (httptransport.ArtistProfileResponse, error) {
	profile, err := h.Service.GetProfile(ctx, authorityID)
	if err != nil {
		return httptransport.ArtistProfileResponse{}, err
	}
	return httptransport.ArtistProfileResponse{Status: "success", Data: toDTO(profile)}, nil
}

func (h Handler) UpdateProfileHandler(
	ctx context.Context,
	caller string,
	req httptransport.UpdateArtistProfileRequest,
) (httptransport.ArtistProfileResponse, error) {
	input := ports.UpdateProfileInput{
		Name:            req.Name,
		Description:     req.Description,
		ProfileImageURI: req.ProfileImageURI,
	}
	if req.SocialLinks != nil {
		links := make([]ports.SocialLink, 0, len(*req.SocialLinks))
		for _, link := range *req.SocialLinks {
			links = append(links, ports.SocialLink{Platform: link.Platform, URL: link.URL})
		}
		input.SocialLinks = &links
	}

	profile, err := h.Service.UpdateProfile(ctx, caller, input)
	if err != nil {
		return httptransport.ArtistProfileResponse{}, err
	}
	return httptransport.ArtistProfileResponse{Status: "success", Data: toDTO(profile)}, nil
}

func (h Handler) VerifyArtistHandler(
	ctx context.Context,
	caller string,
	artistAuthority string,
	req httptransport.VerifyArtistRequest,
) (httptransport.ArtistProfileResponse, error) {
	profile, err := h.Service.VerifyArtist(ctx, caller, artistAuthority, req.Verified)
	if err != nil {
		return httptransport.ArtistProfileResponse{}, err
	}
	return httptransport.ArtistProfileResponse{Status: "success", Data: toDTO(profile)}, nil
}

func toDTO(profile ports.ArtistProfile) httptransport.ArtistProfileDTO {
	links := make([]httptransport.SocialLinkDTO, 0, len(profile.SocialLinks))
	for _, link := range profile.SocialLinks {
		links = append(links, httptransport.SocialLinkDTO{Platform: link.Platform, URL: link.URL})
	}
	return httptransport.ArtistProfileDTO{
		Address:         profile.Address,
		Authority:       profile.Authority,
		Name:            profile.Name,
		Description:     profile.Description,
		ProfileImageURI: profile.ProfileImageURI,
		SocialLinks:     links,
		IsVerified:      profile.IsVerified,
		TrackCount:      profile.TrackCount,
		CreatedAt:       profile.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:       profile.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
