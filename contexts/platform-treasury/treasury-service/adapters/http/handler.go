package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"soundmint/contexts/platform-treasury/treasury-service/application"
	"soundmint/contexts/platform-treasury/treasury-service/ports"
	httptransport "soundmint/contexts/platform-treasury/treasury-service/transport/http"
)

type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) InitializeHandler(
	ctx context.Context,
	req httptransport.InitializeTreasuryRequest,
) (httptransport.TreasuryResponse, error) {
	treasury, err := h.Service.Initialize(ctx, req.Authority, req.TreasuryWallet)
	if err != nil {
		return httptransport.TreasuryResponse{}, err
	}
	return httptransport.TreasuryResponse{Status: "success", Data: toDTO(treasury)}, nil
}

func (h Handler) GetTreasuryHandler(ctx context.Context) (httptransport.TreasuryResponse, error) {
	treasury, err := h.Service.GetTreasury(ctx)
	if err != nil {
		return httptransport.TreasuryResponse{}, err
	}
	return httptransport.TreasuryResponse{Status: "success", Data: toDTO(treasury)}, nil
}

func (h Handler) UpdateConfigHandler(
	ctx context.Context,
	caller string,
	req httptransport.UpdateTreasuryConfigRequest,
) (httptransport.TreasuryResponse, error) {
	treasury, err := h.Service.UpdateConfig(ctx, caller, ports.UpdateConfigInput{
		MintFee:                req.MintFee,
		PlatformFeeBasisPoints: req.PlatformFeeBasisPoints,
		TreasuryWallet:         req.TreasuryWallet,
	})
	if err != nil {
		return httptransport.TreasuryResponse{}, err
	}
	return httptransport.TreasuryResponse{Status: "success", Data: toDTO(treasury)}, nil
}

func (h Handler) UpdateStreamingProviderHandler(
	ctx context.Context,
	caller string,
	req httptransport.UpdateStreamingProviderRequest,
) (httptransport.TreasuryResponse, error) {
	treasury, err := h.Service.UpdateStreamingProvider(ctx, caller, req.StreamingProvider)
	if err != nil {
		return httptransport.TreasuryResponse{}, err
	}
	return httptransport.TreasuryResponse{Status: "success", Data: toDTO(treasury)}, nil
}

func (h Handler) WithdrawFundsHandler(
	ctx context.Context,
	caller string,
	req httptransport.WithdrawFundsRequest,
) (httptransport.WithdrawFundsResponse, error) {
	if err := h.Service.WithdrawFunds(ctx, caller, req.Amount); err != nil {
		return httptransport.WithdrawFundsResponse{}, err
	}
	return httptransport.WithdrawFundsResponse{Status: "success"}, nil
}

func toDTO(treasury ports.Treasury) httptransport.TreasuryDTO {
	return httptransport.TreasuryDTO{
		Address:                treasury.Address,
		Authority:              treasury.Authority,
		TreasuryWallet:         treasury.TreasuryWallet,
		StreamingProvider:      treasury.StreamingProvider,
		MintFee:                treasury.MintFee,
		PlatformFeeBasisPoints: treasury.PlatformFeeBasisPoints,
		TotalRevenueCollected:  treasury.TotalRevenueCollected,
		CreatedAt:              treasury.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:              treasury.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
