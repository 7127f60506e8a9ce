package types

import (
	"errors"
	"fmt"
)

// InvalidIdentityError is returned when a stake report contains a node
// pubkey that cannot be parsed.
type InvalidIdentityError struct {
	Index  int
	Pubkey string
	Err    error
}

func (e *InvalidIdentityError) Error() string {
	return fmt.Sprintf("report entry %d has bad pubkey %q: %v", e.Index, e.Pubkey, e.Err)
}

func (e *InvalidIdentityError) Unwrap() error {
	return e.Err
}

func IsInvalidIdentityError(err error) bool {
	var target *InvalidIdentityError
	return errors.As(err, &target)
}

// DuplicateIdentityError is returned when duplicate identities are rejected
// and a report names the same node twice.
type DuplicateIdentityError struct {
	Identity Identity
}

func (e *DuplicateIdentityError) Error() string {
	return fmt.Sprintf("identity %s appears more than once in report", e.Identity)
}

func IsDuplicateIdentityError(err error) bool {
	var target *DuplicateIdentityError
	return errors.As(err, &target)
}
