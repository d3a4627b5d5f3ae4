// Package permissions holds the single ownership check applied by every
// handler that mutates a user-owned record.
package permissions

import "errors"

var (
	ErrUnauthenticated = errors.New("User not found")
	ErrForbidden       = errors.New("User not authorized")
)

// Owned is any record that carries an owning user reference.
type Owned interface {
	OwnerID() string
}

// Authorize reports whether userID may act on resource. Existence is the
// caller's problem: a missing resource must be answered with not-found
// before ownership is ever considered.
func Authorize(resource Owned, userID string) error {
	if userID == "" {
		return ErrUnauthenticated
	}
	if resource.OwnerID() != userID {
		return ErrForbidden
	}
	return nil
}
