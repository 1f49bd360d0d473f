package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	workerrors "soundmint/contexts/catalog/work-registry/domain/errors"
	royaltyerrors "soundmint/contexts/finance-core/royalty-ledger/domain/errors"
	royaltyhttp "soundmint/contexts/finance-core/royalty-ledger/transport/http"
	treasuryerrors "soundmint/contexts/platform-treasury/treasury-service/domain/errors"
	"soundmint/internal/platform/ledger"
	"soundmint/internal/shared/authority"
)

func writeRoyaltyError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, royaltyhttp.ErrorResponse{Code: code, Message: message})
}

func writeRoyaltyDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, authority.ErrUnauthorized):
		writeRoyaltyError(w, http.StatusForbidden, "unauthorized", err.Error())
	case errors.Is(err, royaltyerrors.ErrSplitNotFound):
		writeRoyaltyError(w, http.StatusNotFound, "split_not_found", err.Error())
	case errors.Is(err, royaltyerrors.ErrTrackerNotFound):
		writeRoyaltyError(w, http.StatusNotFound, "tracker_not_found", err.Error())
	case errors.Is(err, workerrors.ErrWorkNotFound):
		writeRoyaltyError(w, http.StatusNotFound, "work_not_found", err.Error())
	case errors.Is(err, royaltyerrors.ErrSplitExists):
		writeRoyaltyError(w, http.StatusConflict, "split_exists", err.Error())
	case errors.Is(err, treasuryerrors.ErrNotInitialized):
		writeRoyaltyError(w, http.StatusConflict, "treasury_not_initialized", err.Error())
	case errors.Is(err, royaltyerrors.ErrInvalidBasisPoints):
		writeRoyaltyError(w, http.StatusUnprocessableEntity, "invalid_basis_points", err.Error())
	case errors.Is(err, royaltyerrors.ErrNoRevenueToClaim):
		writeRoyaltyError(w, http.StatusConflict, "no_revenue_to_claim", err.Error())
	case errors.Is(err, ledger.ErrInsufficientFunds):
		writeRoyaltyError(w, http.StatusPaymentRequired, "insufficient_funds", err.Error())
	case errors.Is(err, royaltyerrors.ErrRevenueOverflow):
		writeRoyaltyError(w, http.StatusUnprocessableEntity, "arithmetic_overflow", err.Error())
	case errors.Is(err, royaltyerrors.ErrTooManyCollaborators),
		errors.Is(err, royaltyerrors.ErrInvalidCollaborator),
		errors.Is(err, royaltyerrors.ErrStringTooLong),
		errors.Is(err, royaltyerrors.ErrAmountTooSmall),
		errors.Is(err, royaltyerrors.ErrBatchTooLarge),
		errors.Is(err, royaltyerrors.ErrInvalidCategory),
		errors.Is(err, royaltyerrors.ErrInvalidInput):
		writeRoyaltyError(w, http.StatusBadRequest, "invalid_request", err.Error())
	default:
		writeRoyaltyError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func (s *Server) handleSplitCreate(w http.ResponseWriter, r *http.Request) {
	caller, ok := resolveCaller(w, r, writeRoyaltyError)
	if !ok {
		return
	}
	var req royaltyhttp.CreateSplitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeRoyaltyError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.royalty.Handler.CreateSplitHandler(
		r.Context(),
		caller,
		strings.TrimSpace(r.PathValue("work_id")),
		req,
	)
	if err != nil {
		writeRoyaltyDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleSplitGet(w http.ResponseWriter, r *http.Request) {
	resp, err := s.royalty.Handler.GetSplitHandler(r.Context(), strings.TrimSpace(r.PathValue("work_id")))
	if err != nil {
		writeRoyaltyDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRevenueDistribute(w http.ResponseWriter, r *http.Request) {
	caller, ok := resolveCaller(w, r, writeRoyaltyError)
	if !ok {
		return
	}
	var req royaltyhttp.DistributeRevenueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeRoyaltyError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.royalty.Handler.DistributeRevenueHandler(
		r.Context(),
		caller,
		strings.TrimSpace(r.PathValue("work_id")),
		req,
	)
	if err != nil {
		writeRoyaltyDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRevenueTrack(w http.ResponseWriter, r *http.Request) {
	caller, ok := resolveCaller(w, r, writeRoyaltyError)
	if !ok {
		return
	}
	var req royaltyhttp.TrackRevenueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeRoyaltyError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.royalty.Handler.TrackRevenueHandler(
		r.Context(),
		caller,
		strings.TrimSpace(r.PathValue("work_id")),
		req,
	)
	if err != nil {
		writeRoyaltyDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRevenueTrackerGet(w http.ResponseWriter, r *http.Request) {
	resp, err := s.royalty.Handler.GetTrackerHandler(r.Context(), strings.TrimSpace(r.PathValue("work_id")))
	if err != nil {
		writeRoyaltyDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRevenueClaim(w http.ResponseWriter, r *http.Request) {
	caller, ok := resolveCaller(w, r, writeRoyaltyError)
	if !ok {
		return
	}
	resp, err := s.royalty.Handler.ClaimRevenueHandler(r.Context(), caller, strings.TrimSpace(r.PathValue("work_id")))
	if err != nil {
		writeRoyaltyDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleStreamingBatch(w http.ResponseWriter, r *http.Request) {
	caller, ok := resolveCaller(w, r, writeRoyaltyError)
	if !ok {
		return
	}
	var req royaltyhttp.RegisterStreamingBatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeRoyaltyError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.royalty.Handler.RegisterStreamingBatchHandler(r.Context(), caller, req)
	if err != nil {
		writeRoyaltyDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
