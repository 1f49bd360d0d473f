package entities

import "time"

type RevenueCategory string

const (
	CategoryStreaming RevenueCategory = "streaming"
	CategorySales     RevenueCategory = "sales"
	CategoryOther     RevenueCategory = "other"
)

func IsValidRevenueCategory(category RevenueCategory) bool {
	switch category {
	case CategoryStreaming, CategorySales, CategoryOther:
		return true
	default:
		return false
	}
}

type RevenueTransaction struct {
	Amount      uint64
	Source      string
	Description string
	Category    RevenueCategory
	OccurredAt  time.Time
}

// RevenueTracker is the per-work revenue log, created lazily on the first
// tracked transaction. The log retains the most recent entries only.
type RevenueTracker struct {
	TrackerID      string
	WorkID         string
	StreamingTotal uint64
	SalesTotal     uint64
	OtherTotal     uint64
	TotalRevenue   uint64
	Transactions   []RevenueTransaction
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
