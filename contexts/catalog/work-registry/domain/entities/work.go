package entities

import "time"

type WorkStatus string

const (
	WorkStatusActive   WorkStatus = "active"
	WorkStatusDelisted WorkStatus = "delisted"
	WorkStatusFrozen   WorkStatus = "frozen"
)

func IsValidWorkStatus(status WorkStatus) bool {
	switch status {
	case WorkStatusActive, WorkStatusDelisted, WorkStatusFrozen:
		return true
	default:
		return false
	}
}

type MetadataItem struct {
	Key   string
	Value string
}

// MasterWork is one minted creative work. Title, URIs and asset linkage are
// immutable after minting.
type MasterWork struct {
	WorkID          string
	Title           string
	Description     string
	ArtistAuthority string
	AudioURI        string
	ArtworkURI      string
	Metadata        []MetadataItem
	AssetID         string
	IsTransferable  bool
	Status          WorkStatus
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
