package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	treasuryerrors "soundmint/contexts/platform-treasury/treasury-service/domain/errors"
	treasuryhttp "soundmint/contexts/platform-treasury/treasury-service/transport/http"
	"soundmint/internal/platform/ledger"
	"soundmint/internal/shared/authority"
)

func writeTreasuryError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, treasuryhttp.ErrorResponse{Code: code, Message: message})
}

func writeTreasuryDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, authority.ErrUnauthorized):
		writeTreasuryError(w, http.StatusForbidden, "unauthorized", err.Error())
	case errors.Is(err, treasuryerrors.ErrAlreadyInitialized):
		writeTreasuryError(w, http.StatusConflict, "already_initialized", err.Error())
	case errors.Is(err, treasuryerrors.ErrNotInitialized):
		writeTreasuryError(w, http.StatusNotFound, "not_initialized", err.Error())
	case errors.Is(err, treasuryerrors.ErrInvalidBasisPoints):
		writeTreasuryError(w, http.StatusUnprocessableEntity, "invalid_basis_points", err.Error())
	case errors.Is(err, treasuryerrors.ErrInvalidAmount),
		errors.Is(err, treasuryerrors.ErrInvalidInput):
		writeTreasuryError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, ledger.ErrInsufficientFunds):
		writeTreasuryError(w, http.StatusPaymentRequired, "insufficient_funds", err.Error())
	case errors.Is(err, treasuryerrors.ErrRevenueOverflow):
		writeTreasuryError(w, http.StatusUnprocessableEntity, "arithmetic_overflow", err.Error())
	default:
		writeTreasuryError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func resolveCaller(w http.ResponseWriter, r *http.Request, write func(http.ResponseWriter, int, string, string)) (string, bool) {
	caller := strings.TrimSpace(r.Header.Get(callerHeader))
	if caller == "" {
		write(w, http.StatusUnauthorized, "missing_caller", callerHeader+" header is required")
		return "", false
	}
	return caller, true
}

func (s *Server) handleTreasuryInitialize(w http.ResponseWriter, r *http.Request) {
	var req treasuryhttp.InitializeTreasuryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeTreasuryError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	if caller, ok := resolveCaller(w, r, writeTreasuryError); ok {
		req.Authority = caller
	} else {
		return
	}

	resp, err := s.treasury.Handler.InitializeHandler(r.Context(), req)
	if err != nil {
		writeTreasuryDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleTreasuryGet(w http.ResponseWriter, r *http.Request) {
	resp, err := s.treasury.Handler.GetTreasuryHandler(r.Context())
	if err != nil {
		writeTreasuryDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleTreasuryUpdateConfig(w http.ResponseWriter, r *http.Request) {
	caller, ok := resolveCaller(w, r, writeTreasuryError)
	if !ok {
		return
	}
	var req treasuryhttp.UpdateTreasuryConfigRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeTreasuryError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.treasury.Handler.UpdateConfigHandler(r.Context(), caller, req)
	if err != nil {
		writeTreasuryDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleTreasuryUpdateStreamingProvider(w http.ResponseWriter, r *http.Request) {
	caller, ok := resolveCaller(w, r, writeTreasuryError)
	if !ok {
		return
	}
	var req treasuryhttp.UpdateStreamingProviderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeTreasuryError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.treasury.Handler.UpdateStreamingProviderHandler(r.Context(), caller, req)
	if err != nil {
		writeTreasuryDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleTreasuryWithdraw(w http.ResponseWriter, r *http.Request) {
	caller, ok := resolveCaller(w, r, writeTreasuryError)
	if !ok {
		return
	}
	var req treasuryhttp.WithdrawFundsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeTreasuryError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.treasury.Handler.WithdrawFundsHandler(r.Context(), caller, req)
	if err != nil {
		writeTreasuryDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
