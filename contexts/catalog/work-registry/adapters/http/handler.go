package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"soundmint/contexts/catalog/work-registry/application"
	"soundmint/contexts/catalog/work-registry/domain/entities"
	"soundmint/contexts/catalog/work-registry/ports"
	httptransport "soundmint/contexts/catalog/work-registry/transport/http"
)

type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) MintWorkHandler(
	ctx context.Context,
	caller string,
	artistAuthority string,
	req httptransport.MintWorkRequest,
) (httptransport.WorkResponse, error) {
	work, err := h.Service.MintWork(ctx, caller, ports.MintWorkInput{
		ArtistAuthority: artistAuthority,
		Title:           req.Title,
		Description:     req.Description,
		AudioURI:        req.AudioURI,
		ArtworkURI:      req.ArtworkURI,
		Metadata:        metadataFromDTO(req.Metadata),
	})
	if err != nil {
		return httptransport.WorkResponse{}, err
	}
	return httptransport.WorkResponse{Status: "success", Data: toWorkDTO(work)}, nil
}

func (h Handler) GetWorkHandler(ctx context.Context, workID string) (httptransport.WorkResponse, error) {
	work, err := h.Service.GetWork(ctx, workID)
	if err != nil {
		return httptransport.WorkResponse{}, err
	}
	return httptransport.WorkResponse{Status: "success", Data: toWorkDTO(work)}, nil
}

func (h Handler) ListWorksByArtistHandler(ctx context.Context, artistAuthority string) (httptransport.WorkListResponse, error) {
	works, err := h.Service.ListWorksByArtist(ctx, artistAuthority)
	if err != nil {
		return httptransport.WorkListResponse{}, err
	}
	dtos := make([]httptransport.MasterWorkDTO, 0, len(works))
	for _, work := range works {
		dtos = append(dtos, toWorkDTO(work))
	}
	return httptransport.WorkListResponse{Status: "success", Data: dtos}, nil
}

func (h Handler) UpdateWorkHandler(
	ctx context.Context,
	caller string,
	workID string,
	req httptransport.UpdateWorkRequest,
) (httptransport.WorkResponse, error) {
	input := ports.UpdateWorkInput{
		Description:    req.Description,
		IsTransferable: req.IsTransferable,
		Status:         req.Status,
	}
	if req.Metadata != nil {
		metadata := metadataFromDTO(*req.Metadata)
		input.Metadata = &metadata
	}
	work, err := h.Service.UpdateWork(ctx, caller, workID, input)
	if err != nil {
		return httptransport.WorkResponse{}, err
	}
	return httptransport.WorkResponse{Status: "success", Data: toWorkDTO(work)}, nil
}

func (h Handler) CreateCollectionHandler(
	ctx context.Context,
	caller string,
	req httptransport.CreateCollectionRequest,
) (httptransport.CollectionResponse, error) {
	collection, err := h.Service.CreateCollection(ctx, caller, req.Name, req.Description, req.URI)
	if err != nil {
		return httptransport.CollectionResponse{}, err
	}
	return httptransport.CollectionResponse{Status: "success", Data: toCollectionDTO(collection)}, nil
}

func (h Handler) GetCollectionHandler(ctx context.Context, collectionID string) (httptransport.CollectionResponse, error) {
	collection, err := h.Service.GetCollection(ctx, collectionID)
	if err != nil {
		return httptransport.CollectionResponse{}, err
	}
	return httptransport.CollectionResponse{Status: "success", Data: toCollectionDTO(collection)}, nil
}

func (h Handler) AddToCollectionHandler(
	ctx context.Context,
	caller string,
	collectionID string,
	req httptransport.AddToCollectionRequest,
) (httptransport.CollectionResponse, error) {
	collection, err := h.Service.AddToCollection(ctx, caller, collectionID, req.WorkID)
	if err != nil {
		return httptransport.CollectionResponse{}, err
	}
	return httptransport.CollectionResponse{Status: "success", Data: toCollectionDTO(collection)}, nil
}

func metadataFromDTO(items []httptransport.MetadataItemDTO) []entities.MetadataItem {
	if len(items) == 0 {
		return nil
	}
	out := make([]entities.MetadataItem, 0, len(items))
	for _, item := range items {
		out = append(out, entities.MetadataItem{Key: item.Key, Value: item.Value})
	}
	return out
}

func toWorkDTO(work entities.MasterWork) httptransport.MasterWorkDTO {
	var metadata []httptransport.MetadataItemDTO
	for _, item := range work.Metadata {
		metadata = append(metadata, httptransport.MetadataItemDTO{Key: item.Key, Value: item.Value})
	}
	return httptransport.MasterWorkDTO{
		WorkID:          work.WorkID,
		Title:           work.Title,
		Description:     work.Description,
		ArtistAuthority: work.ArtistAuthority,
		AudioURI:        work.AudioURI,
		ArtworkURI:      work.ArtworkURI,
		Metadata:        metadata,
		AssetID:         work.AssetID,
		IsTransferable:  work.IsTransferable,
		Status:          string(work.Status),
		CreatedAt:       work.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:       work.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func toCollectionDTO(collection entities.Collection) httptransport.CollectionDTO {
	return httptransport.CollectionDTO{
		CollectionID: collection.CollectionID,
		Name:         collection.Name,
		Description:  collection.Description,
		URI:          collection.URI,
		Authority:    collection.Authority,
		WorkCount:    collection.WorkCount,
		CreatedAt:    collection.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:    collection.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
