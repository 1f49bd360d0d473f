package errors

import "errors"

var (
	ErrAlreadyInitialized = errors.New("treasury is already initialized")
	ErrNotInitialized     = errors.New("treasury is not initialized")
	ErrInvalidBasisPoints = errors.New("platform fee basis points exceed 10000")
	ErrInvalidAmount      = errors.New("amount must be greater than zero")
	ErrInvalidInput       = errors.New("treasury input is invalid")
	ErrRevenueOverflow    = errors.New("treasury revenue accumulator overflow")
)
