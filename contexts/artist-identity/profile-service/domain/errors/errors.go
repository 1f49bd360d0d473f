package errors

import "errors"

var (
	ErrProfileExists      = errors.New("artist profile already exists for this authority")
	ErrProfileNotFound    = errors.New("artist profile not found")
	ErrStringTooLong      = errors.New("profile field exceeds maximum length")
	ErrTooManySocialLinks = errors.New("too many social links")
	ErrInvalidInput       = errors.New("artist profile input is invalid")
	ErrTrackCountOverflow = errors.New("track count overflow")
)
