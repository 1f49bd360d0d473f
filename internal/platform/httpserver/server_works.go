package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	profileerrors "soundmint/contexts/artist-identity/profile-service/domain/errors"
	workerrors "soundmint/contexts/catalog/work-registry/domain/errors"
	workhttp "soundmint/contexts/catalog/work-registry/transport/http"
	treasuryerrors "soundmint/contexts/platform-treasury/treasury-service/domain/errors"
	"soundmint/internal/platform/ledger"
	"soundmint/internal/shared/authority"
)

func writeWorkError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, workhttp.ErrorResponse{Code: code, Message: message})
}

func writeWorkDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, authority.ErrUnauthorized):
		writeWorkError(w, http.StatusForbidden, "unauthorized", err.Error())
	case errors.Is(err, workerrors.ErrWorkNotFound):
		writeWorkError(w, http.StatusNotFound, "work_not_found", err.Error())
	case errors.Is(err, workerrors.ErrCollectionNotFound):
		writeWorkError(w, http.StatusNotFound, "collection_not_found", err.Error())
	case errors.Is(err, profileerrors.ErrProfileNotFound):
		writeWorkError(w, http.StatusNotFound, "profile_not_found", err.Error())
	case errors.Is(err, workerrors.ErrWorkExists):
		writeWorkError(w, http.StatusConflict, "work_exists", err.Error())
	case errors.Is(err, treasuryerrors.ErrNotInitialized):
		writeWorkError(w, http.StatusConflict, "treasury_not_initialized", err.Error())
	case errors.Is(err, ledger.ErrInsufficientFunds):
		writeWorkError(w, http.StatusPaymentRequired, "insufficient_funds", err.Error())
	case errors.Is(err, workerrors.ErrStringTooLong),
		errors.Is(err, workerrors.ErrTooManyMetadataItems),
		errors.Is(err, workerrors.ErrInvalidStatus),
		errors.Is(err, workerrors.ErrInvalidInput):
		writeWorkError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, profileerrors.ErrTrackCountOverflow):
		writeWorkError(w, http.StatusUnprocessableEntity, "arithmetic_overflow", err.Error())
	default:
		writeWorkError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func (s *Server) handleWorkMint(w http.ResponseWriter, r *http.Request) {
	caller, ok := resolveCaller(w, r, writeWorkError)
	if !ok {
		return
	}
	var req workhttp.MintWorkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeWorkError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.registry.Handler.MintWorkHandler(
		r.Context(),
		caller,
		strings.TrimSpace(r.PathValue("authority")),
		req,
	)
	if err != nil {
		writeWorkDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleWorkGet(w http.ResponseWriter, r *http.Request) {
	resp, err := s.registry.Handler.GetWorkHandler(r.Context(), strings.TrimSpace(r.PathValue("work_id")))
	if err != nil {
		writeWorkDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleWorkListByArtist(w http.ResponseWriter, r *http.Request) {
	resp, err := s.registry.Handler.ListWorksByArtistHandler(r.Context(), strings.TrimSpace(r.PathValue("authority")))
	if err != nil {
		writeWorkDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleWorkUpdate(w http.ResponseWriter, r *http.Request) {
	caller, ok := resolveCaller(w, r, writeWorkError)
	if !ok {
		return
	}
	var req workhttp.UpdateWorkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeWorkError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.registry.Handler.UpdateWorkHandler(
		r.Context(),
		caller,
		strings.TrimSpace(r.PathValue("work_id")),
		req,
	)
	if err != nil {
		writeWorkDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCollectionCreate(w http.ResponseWriter, r *http.Request) {
	caller, ok := resolveCaller(w, r, writeWorkError)
	if !ok {
		return
	}
	var req workhttp.CreateCollectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeWorkError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.registry.Handler.CreateCollectionHandler(r.Context(), caller, req)
	if err != nil {
		writeWorkDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleCollectionGet(w http.ResponseWriter, r *http.Request) {
	resp, err := s.registry.Handler.GetCollectionHandler(r.Context(), strings.TrimSpace(r.PathValue("collection_id")))
	if err != nil {
		writeWorkDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCollectionAddWork(w http.ResponseWriter, r *http.Request) {
	caller, ok := resolveCaller(w, r, writeWorkError)
	if !ok {
		return
	}
	var req workhttp.AddToCollectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeWorkError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.registry.Handler.AddToCollectionHandler(
		r.Context(),
		caller,
		strings.TrimSpace(r.PathValue("collection_id")),
		req,
	)
	if err != nil {
		writeWorkDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
