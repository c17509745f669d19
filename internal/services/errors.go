package services

import (
	"errors"
	"fmt"
)

// ErrForbidden is returned whenever the policy engine denies an action for
// the acting user.
var ErrForbidden = errors.New("operation not permitted")

// InvalidMemberIDsError reports the exact set of member ids that did not
// resolve to existing users. Nothing is persisted when it is returned.
type InvalidMemberIDsError struct {
	IDs []uint64
}

func (e *InvalidMemberIDsError) Error() string {
	return fmt.Sprintf("invalid member IDs: %v", e.IDs)
}
