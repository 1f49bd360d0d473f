package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type CollaboratorDTO struct {
	Address          string `json:"address"`
	Name             string `json:"name,omitempty"`
	ShareBasisPoints uint64 `json:"share_basis_points"`
	AmountEarned     uint64 `json:"amount_earned"`
	AmountClaimed    uint64 `json:"amount_claimed"`
}

type RoyaltySplitDTO struct {
	SplitID               string            `json:"split_id"`
	WorkID                string            `json:"work_id"`
	Collaborators         []CollaboratorDTO `json:"collaborators"`
	TotalBasisPoints      uint64            `json:"total_basis_points"`
	TotalRevenueCollected uint64            `json:"total_revenue_collected"`
	CreatedAt             string            `json:"created_at"`
	LastRevenueAt         string            `json:"last_revenue_at,omitempty"`
}

type RevenueTransactionDTO struct {
	Amount      uint64 `json:"amount"`
	Source      string `json:"source,omitempty"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category"`
	OccurredAt  string `json:"occurred_at"`
}

type RevenueTrackerDTO struct {
	TrackerID      string                  `json:"tracker_id"`
	WorkID         string                  `json:"work_id"`
	StreamingTotal uint64                  `json:"streaming_total"`
	SalesTotal     uint64                  `json:"sales_total"`
	OtherTotal     uint64                  `json:"other_total"`
	TotalRevenue   uint64                  `json:"total_revenue"`
	Transactions   []RevenueTransactionDTO `json:"transactions,omitempty"`
	CreatedAt      string                  `json:"created_at"`
	UpdatedAt      string                  `json:"updated_at"`
}

type CollaboratorInputDTO struct {
	Address          string `json:"address"`
	Name             string `json:"name,omitempty"`
	ShareBasisPoints uint64 `json:"share_basis_points"`
}

type CreateSplitRequest struct {
	Collaborators []CollaboratorInputDTO `json:"collaborators"`
}

type DistributeRevenueRequest struct {
	Amount uint64 `json:"amount"`
}

type TrackRevenueRequest struct {
	Amount      uint64 `json:"amount"`
	Source      string `json:"source,omitempty"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category"`
}

type StreamingRecordDTO struct {
	WorkID string `json:"work_id"`
	Source string `json:"source,omitempty"`
	Amount uint64 `json:"amount"`
}

type RegisterStreamingBatchRequest struct {
	Records []StreamingRecordDTO `json:"records"`
}

type SplitResponse struct {
	Status string          `json:"status"`
	Data   RoyaltySplitDTO `json:"data"`
}

type TrackerResponse struct {
	Status string            `json:"status"`
	Data   RevenueTrackerDTO `json:"data"`
}

type ClaimRevenueResponse struct {
	Status        string `json:"status"`
	AmountClaimed uint64 `json:"amount_claimed"`
}

type StreamingBatchResponse struct {
	Status  string `json:"status"`
	Settled int    `json:"settled"`
}
