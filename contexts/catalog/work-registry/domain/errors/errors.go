package errors

import "errors"

var (
	ErrWorkNotFound         = errors.New("master work not found")
	ErrWorkExists           = errors.New("master work already exists")
	ErrCollectionNotFound   = errors.New("collection not found")
	ErrStringTooLong        = errors.New("work field exceeds maximum length")
	ErrTooManyMetadataItems = errors.New("too many metadata items")
	ErrInvalidStatus        = errors.New("unknown work status")
	ErrInvalidInput         = errors.New("work input is invalid")
)
