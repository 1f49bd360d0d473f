package authority

import (
	"errors"
	"strings"
)

// ErrUnauthorized is the single authorization failure for the whole platform.
// Every mutating operation checks the caller against the authority recorded on
// the target record before touching storage.
var ErrUnauthorized = errors.New("caller is not the authority for this record")

// Require succeeds iff the caller identity equals the record's authority.
func Require(recordAuthority string, caller string) error {
	recordAuthority = strings.TrimSpace(recordAuthority)
	caller = strings.TrimSpace(caller)
	if caller == "" || recordAuthority == "" || recordAuthority != caller {
		return ErrUnauthorized
	}
	return nil
}
