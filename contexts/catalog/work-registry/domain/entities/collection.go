package entities

import "time"

type Collection struct {
	CollectionID string
	Name         string
	Description  string
	URI          string
	Authority    string
	WorkCount    uint64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
