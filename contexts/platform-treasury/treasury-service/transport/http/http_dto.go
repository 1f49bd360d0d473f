package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type TreasuryDTO struct {
	Address                string `json:"address"`
	Authority              string `json:"authority"`
	TreasuryWallet         string `json:"treasury_wallet"`
	StreamingProvider      string `json:"streaming_provider,omitempty"`
	MintFee                uint64 `json:"mint_fee"`
	PlatformFeeBasisPoints uint64 `json:"platform_fee_basis_points"`
	TotalRevenueCollected  uint64 `json:"total_revenue_collected"`
	CreatedAt              string `json:"created_at"`
	UpdatedAt              string `json:"updated_at"`
}

type TreasuryResponse struct {
	Status string      `json:"status"`
	Data   TreasuryDTO `json:"data"`
}

type InitializeTreasuryRequest struct {
	Authority      string `json:"authority"`
	TreasuryWallet string `json:"treasury_wallet"`
}

// Pointer fields distinguish "set to value" from "leave unchanged".
type UpdateTreasuryConfigRequest struct {
	MintFee                *uint64 `json:"mint_fee,omitempty"`
	PlatformFeeBasisPoints *uint64 `json:"platform_fee_basis_points,omitempty"`
	TreasuryWallet         *string `json:"treasury_wallet,omitempty"`
}

type UpdateStreamingProviderRequest struct {
	StreamingProvider string `json:"streaming_provider"`
}

type WithdrawFundsRequest struct {
	Amount uint64 `json:"amount"`
}

type WithdrawFundsResponse struct {
	Status string `json:"status"`
}
