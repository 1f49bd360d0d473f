package entities

import "time"

// Collaborator is one payee on a royalty split. Shares are fixed at creation;
// the amount fields are the only mutable state.
type Collaborator struct {
	Address          string
	Name             string
	ShareBasisPoints uint64
	AmountEarned     uint64
	AmountClaimed    uint64
}

// RoyaltySplit fixes how a work's revenue is divided. One split per work,
// immutable after creation except for the revenue accumulators.
type RoyaltySplit struct {
	SplitID               string
	WorkID                string
	Collaborators         []Collaborator
	TotalBasisPoints      uint64
	TotalRevenueCollected uint64
	CreatedAt             time.Time
	LastRevenueAt         time.Time
}
