package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	profileerrors "soundmint/contexts/artist-identity/profile-service/domain/errors"
	profilehttp "soundmint/contexts/artist-identity/profile-service/transport/http"
	treasuryerrors "soundmint/contexts/platform-treasury/treasury-service/domain/errors"
	"soundmint/internal/shared/authority"
)

func writeProfileError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, profilehttp.ErrorResponse{Code: code, Message: message})
}

func writeProfileDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, authority.ErrUnauthorized):
		writeProfileError(w, http.StatusForbidden, "unauthorized", err.Error())
	case errors.Is(err, profileerrors.ErrProfileExists):
		writeProfileError(w, http.StatusConflict, "profile_exists", err.Error())
	case errors.Is(err, profileerrors.ErrProfileNotFound):
		writeProfileError(w, http.StatusNotFound, "profile_not_found", err.Error())
	case errors.Is(err, treasuryerrors.ErrNotInitialized):
		writeProfileError(w, http.StatusConflict, "treasury_not_initialized", err.Error())
	case errors.Is(err, profileerrors.ErrStringTooLong),
		errors.Is(err, profileerrors.ErrTooManySocialLinks),
		errors.Is(err, profileerrors.ErrInvalidInput):
		writeProfileError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, profileerrors.ErrTrackCountOverflow):
		writeProfileError(w, http.StatusUnprocessableEntity, "arithmetic_overflow", err.Error())
	default:
		writeProfileError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func (s *Server) handleProfileCreate(w http.ResponseWriter, r *http.Request) {
	caller, ok := resolveCaller(w, r, writeProfileError)
	if !ok {
		return
	}
	var req profilehttp.CreateArtistProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeProfileError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.profiles.Handler.CreateProfileHandler(r.Context(), caller, req)
	if err != nil {
		writeProfileDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleProfileGet(w http.ResponseWriter, r *http.Request) {
	authorityID := strings.TrimSpace(r.PathValue("authority"))
	resp, err := s.profiles.Handler.GetProfileHandler(r.Context(), authorityID)
	if err != nil {
		writeProfileDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleProfileUpdate(w http.ResponseWriter, r *http.Request) {
	caller, ok := resolveCaller(w, r, writeProfileError)
	if !ok {
		return
	}
	if authorityID := strings.TrimSpace(r.PathValue("authority")); authorityID != caller {
		writeProfileError(w, http.StatusForbidden, "unauthorized", "profiles can only be updated by their owner")
		return
	}
	var req profilehttp.UpdateArtistProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeProfileError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.profiles.Handler.UpdateProfileHandler(r.Context(), caller, req)
	if err != nil {
		writeProfileDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleProfileVerify(w http.ResponseWriter, r *http.Request) {
	caller, ok := resolveCaller(w, r, writeProfileError)
	if !ok {
		return
	}
	var req profilehttp.VerifyArtistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeProfileError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.profiles.Handler.VerifyArtistHandler(
		r.Context(),
		caller,
		strings.TrimSpace(r.PathValue("authority")),
		req,
	)
	if err != nil {
		writeProfileDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
