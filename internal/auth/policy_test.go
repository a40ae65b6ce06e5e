package auth

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestAuthorize(t *testing.T) {
	selfID := uuid.New()
	otherID := uuid.New()

	admin := &Identity{ID: uuid.New(), Role: RoleAdmin}
	regular := &Identity{ID: selfID, Role: RoleUser}

	tests := []struct {
		name     string
		identity *Identity
		op       Operation
		target   uuid.UUID
		allowed  bool
	}{
		{"admin lists users", admin, OpListUsers, uuid.Nil, true},
		{"regular user cannot list", regular, OpListUsers, uuid.Nil, false},
		{"user reads own record", regular, OpReadUser, selfID, true},
		{"user cannot read another record", regular, OpReadUser, otherID, false},
		{"admin reads any record", admin, OpReadUser, otherID, true},
		{"user updates own record", regular, OpUpdateUser, selfID, true},
		{"user cannot update another record", regular, OpUpdateUser, otherID, false},
		{"user deletes own record", regular, OpDeleteUser, selfID, true},
		{"user cannot delete another record", regular, OpDeleteUser, otherID, false},
		{"admin deletes any record", admin, OpDeleteUser, otherID, true},
		{"nil identity denied", nil, OpReadUser, selfID, false},
		{"unknown operation denied", admin, Operation("users:export"), uuid.Nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Authorize(tt.identity, tt.op, tt.target)
			if tt.allowed {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrForbidden)
			}
		})
	}
}
