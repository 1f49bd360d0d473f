package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"soundmint/contexts/finance-core/royalty-ledger/application"
	"soundmint/contexts/finance-core/royalty-ledger/domain/entities"
	"soundmint/contexts/finance-core/royalty-ledger/ports"
	httptransport "soundmint/contexts/finance-core/royalty-ledger/transport/http"
)

type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) CreateSplitHandler(
	ctx context.Context,
	caller string,
	workID string,
	req httptransport.CreateSplitRequest,
) (httptransport.SplitResponse, error) {
	collaborators := make([]ports.CollaboratorInput, 0, len(req.Collaborators))
	for _, member := range req.Collaborators {
		collaborators = append(collaborators, ports.CollaboratorInput{
			Address:          member.Address,
			Name:             member.Name,
			ShareBasisPoints: member.ShareBasisPoints,
		})
	}
	split, err := h.Service.CreateSplit(ctx, caller, workID, collaborators)
	if err != nil {
		return httptransport.SplitResponse{}, err
	}
	return httptransport.SplitResponse{Status: "success", Data: toSplitDTO(split)}, nil
}

func (h Handler) GetSplitHandler(ctx context.Context, workID string) (httptransport.SplitResponse, error) {
	split, err := h.Service.GetSplit(ctx, workID)
	if err != nil {
		return httptransport.SplitResponse{}, err
	}
	return httptransport.SplitResponse{Status: "success", Data: toSplitDTO(split)}, nil
}

func (h Handler) DistributeRevenueHandler(
	ctx context.Context,
	caller string,
	workID string,
	req httptransport.DistributeRevenueRequest,
) (httptransport.SplitResponse, error) {
	split, err := h.Service.DistributeRevenue(ctx, caller, workID, req.Amount)
	if err != nil {
		return httptransport.SplitResponse{}, err
	}
	return httptransport.SplitResponse{Status: "success", Data: toSplitDTO(split)}, nil
}

func (h Handler) TrackRevenueHandler(
	ctx context.Context,
	caller string,
	workID string,
	req httptransport.TrackRevenueRequest,
) (httptransport.TrackerResponse, error) {
	tracker, err := h.Service.TrackRevenue(ctx, caller, workID, req.Amount, req.Source, req.Description, req.Category)
	if err != nil {
		return httptransport.TrackerResponse{}, err
	}
	return httptransport.TrackerResponse{Status: "success", Data: toTrackerDTO(tracker)}, nil
}

func (h Handler) GetTrackerHandler(ctx context.Context, workID string) (httptransport.TrackerResponse, error) {
	tracker, err := h.Service.GetTracker(ctx, workID)
	if err != nil {
		return httptransport.TrackerResponse{}, err
	}
	return httptransport.TrackerResponse{Status: "success", Data: toTrackerDTO(tracker)}, nil
}

func (h Handler) ClaimRevenueHandler(ctx context.Context, caller string, workID string) (httptransport.ClaimRevenueResponse, error) {
	amount, err := h.Service.ClaimRevenue(ctx, caller, workID)
	if err != nil {
		return httptransport.ClaimRevenueResponse{}, err
	}
	return httptransport.ClaimRevenueResponse{Status: "success", AmountClaimed: amount}, nil
}

func (h Handler) RegisterStreamingBatchHandler(
	ctx context.Context,
	caller string,
	req httptransport.RegisterStreamingBatchRequest,
) (httptransport.StreamingBatchResponse, error) {
	records := make([]ports.StreamingRecord, 0, len(req.Records))
	for _, record := range req.Records {
		records = append(records, ports.StreamingRecord{
			WorkID: record.WorkID,
			Source: record.Source,
			Amount: record.Amount,
		})
	}
	if err := h.Service.RegisterStreamingBatch(ctx, caller, records); err != nil {
		return httptransport.StreamingBatchResponse{}, err
	}
	return httptransport.StreamingBatchResponse{Status: "success", Settled: len(records)}, nil
}

func toSplitDTO(split entities.RoyaltySplit) httptransport.RoyaltySplitDTO {
	collaborators := make([]httptransport.CollaboratorDTO, 0, len(split.Collaborators))
	for _, member := range split.Collaborators {
		collaborators = append(collaborators, httptransport.CollaboratorDTO{
			Address:          member.Address,
			Name:             member.Name,
			ShareBasisPoints: member.ShareBasisPoints,
			AmountEarned:     member.AmountEarned,
			AmountClaimed:    member.AmountClaimed,
		})
	}
	dto := httptransport.RoyaltySplitDTO{
		SplitID:               split.SplitID,
		WorkID:                split.WorkID,
		Collaborators:         collaborators,
		TotalBasisPoints:      split.TotalBasisPoints,
		TotalRevenueCollected: split.TotalRevenueCollected,
		CreatedAt:             split.CreatedAt.UTC().Format(time.RFC3339),
	}
	if !split.LastRevenueAt.IsZero() {
		dto.LastRevenueAt = split.LastRevenueAt.UTC().Format(time.RFC3339)
	}
	return dto
}

func toTrackerDTO(tracker entities.RevenueTracker) httptransport.RevenueTrackerDTO {
	var transactions []httptransport.RevenueTransactionDTO
	for _, tx := range tracker.Transactions {
		transactions = append(transactions, httptransport.RevenueTransactionDTO{
			Amount:      tx.Amount,
			Source:      tx.Source,
			Description: tx.Description,
			Category:    string(tx.Category),
			OccurredAt:  tx.OccurredAt.UTC().Format(time.RFC3339),
		})
	}
	return httptransport.RevenueTrackerDTO{
		TrackerID:      tracker.TrackerID,
		WorkID:         tracker.WorkID,
		StreamingTotal: tracker.StreamingTotal,
		SalesTotal:     tracker.SalesTotal,
		OtherTotal:     tracker.OtherTotal,
		TotalRevenue:   tracker.TotalRevenue,
		Transactions:   transactions,
		CreatedAt:      tracker.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:      tracker.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
