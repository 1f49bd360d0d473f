package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type SocialLinkDTO struct {
	Platform string `json:"platform"`
	URL      string `json:"url"`
}

type ArtistProfileDTO struct {
	Address         string          `json:"address"`
	Authority       string          `json:"authority"`
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	ProfileImageURI string          `json:"profile_image_uri"`
	SocialLinks     []SocialLinkDTO `json:"social_links"`
	IsVerified      bool            `json:"is_verified"`
	TrackCount      uint64          `json:"track_count"`
	CreatedAt       string          `json:"created_at"`
	UpdatedAt       string          `json:"updated_at"`
}

type ArtistProfileResponse struct {
	Status string           `json:"status"`
	Data   ArtistProfileDTO `json:"data"`
}

type CreateArtistProfileRequest struct {
	Name            string `json:"name"`
	Description     string `json:"description"`
	ProfileImageURI string `json:"profile_image_uri"`
}

// Pointer fields distinguish "set to value" from "leave unchanged"; a present
// social_links array replaces the stored list wholesale.
type UpdateArtistProfileRequest struct {
	Name            *string          `json:"name,omitempty"`
	Description     *string          `json:"description,omitempty"`
	ProfileImageURI *string          `json:"profile_image_uri,omitempty"`
	SocialLinks     *[]SocialLinkDTO `json:"social_links,omitempty"`
}

type VerifyArtistRequest struct {
	Verified bool `json:"verified"`
}
