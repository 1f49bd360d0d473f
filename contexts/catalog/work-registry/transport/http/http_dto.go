package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// MetadataItemDTO is one key/value attribute attached to a work.
type MetadataItemDTO struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type MasterWorkDTO struct {
	WorkID          string            `json:"work_id"`
	Title           string            `json:"title"`
	Description     string            `json:"description,omitempty"`
	ArtistAuthority string            `json:"artist_authority"`
	AudioURI        string            `json:"audio_uri,omitempty"`
	ArtworkURI      string            `json:"artwork_uri,omitempty"`
	Metadata        []MetadataItemDTO `json:"metadata,omitempty"`
	AssetID         string            `json:"asset_id"`
	IsTransferable  bool              `json:"is_transferable"`
	Status          string            `json:"status"`
	CreatedAt       string            `json:"created_at"`
	UpdatedAt       string            `json:"updated_at"`
}

type CollectionDTO struct {
	CollectionID string `json:"collection_id"`
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
	URI          string `json:"uri,omitempty"`
	Authority    string `json:"authority"`
	WorkCount    uint64 `json:"work_count"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}

type MintWorkRequest struct {
	Title       string            `json:"title"`
	Description string            `json:"description,omitempty"`
	AudioURI    string            `json:"audio_uri,omitempty"`
	ArtworkURI  string            `json:"artwork_uri,omitempty"`
	Metadata    []MetadataItemDTO `json:"metadata,omitempty"`
}

// UpdateWorkRequest uses pointers so omitted fields stay unchanged.
type UpdateWorkRequest struct {
	Description    *string            `json:"description,omitempty"`
	Metadata       *[]MetadataItemDTO `json:"metadata,omitempty"`
	IsTransferable *bool              `json:"is_transferable,omitempty"`
	Status         *string            `json:"status,omitempty"`
}

type CreateCollectionRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	URI         string `json:"uri,omitempty"`
}

type AddToCollectionRequest struct {
	WorkID string `json:"work_id"`
}

type WorkResponse struct {
	Status string        `json:"status"`
	Data   MasterWorkDTO `json:"data"`
}

type WorkListResponse struct {
	Status string          `json:"status"`
	Data   []MasterWorkDTO `json:"data"`
}

type CollectionResponse struct {
	Status string        `json:"status"`
	Data   CollectionDTO `json:"data"`
}
