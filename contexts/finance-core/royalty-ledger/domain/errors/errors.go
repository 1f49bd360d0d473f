package errors

import "errors"

var (
	ErrSplitNotFound        = errors.New("royalty split not found")
	ErrTrackerNotFound      = errors.New("revenue tracker not found")
	ErrSplitExists          = errors.New("royalty split already exists for this work")
	ErrInvalidBasisPoints   = errors.New("collaborator shares must sum to exactly 10000 basis points")
	ErrTooManyCollaborators = errors.New("too many collaborators")
	ErrInvalidCollaborator  = errors.New("collaborator entry is invalid")
	ErrStringTooLong        = errors.New("royalty field exceeds maximum length")
	ErrAmountTooSmall       = errors.New("amount must be greater than zero")
	ErrNoRevenueToClaim     = errors.New("no revenue to claim")
	ErrBatchTooLarge        = errors.New("streaming batch exceeds maximum size")
	ErrInvalidCategory      = errors.New("unknown revenue category")
	ErrRevenueOverflow      = errors.New("revenue accumulator would overflow")
	ErrInvalidInput         = errors.New("royalty input is invalid")
)
