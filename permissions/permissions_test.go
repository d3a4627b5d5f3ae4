package permissions

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type record struct {
	owner string
}

func (r record) OwnerID() string { return r.owner }

func TestAuthorizeOwner(t *testing.T) {
	assert.NoError(t, Authorize(record{owner: "u1"}, "u1"))
}

func TestAuthorizeOtherUser(t *testing.T) {
	assert.ErrorIs(t, Authorize(record{owner: "u1"}, "u2"), ErrForbidden)
}

func TestAuthorizeNoIdentity(t *testing.T) {
	assert.ErrorIs(t, Authorize(record{owner: "u1"}, ""), ErrUnauthenticated)
}
