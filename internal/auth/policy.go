package auth

import "github.com/google/uuid"

// Operation names a protected user-resource operation
type Operation string

const (
	OpListUsers  Operation = "users:list"
	OpReadUser   Operation = "users:read"
	OpUpdateUser Operation = "users:update"
	OpDeleteUser Operation = "users:delete"
)

// Relation is the relationship an identity must have to the target resource
type Relation int

const (
	// RelationAdmin requires the ADMIN role
	RelationAdmin Relation = iota
	// RelationSelfOrAdmin permits the resource owner or any admin
	RelationSelfOrAdmin
)

// policy is the declarative rule set: operation -> required relation.
// Operations absent from the table are denied.
var policy = map[Operation]Relation{
	OpListUsers:  RelationAdmin,
	OpReadUser:   RelationSelfOrAdmin,
	OpUpdateUser: RelationSelfOrAdmin,
	OpDeleteUser: RelationSelfOrAdmin,
}

// Authorize checks the identity against the policy for the operation.
// target is the id of the user record being acted on; it is ignored for
// operations without a target (pass uuid.Nil).
// Returns ErrForbidden when the identity lacks the required relation.
func Authorize(identity *Identity, op Operation, target uuid.UUID) error {
	if identity == nil {
		return ErrForbidden
	}

	relation, ok := policy[op]
	if !ok {
		return ErrForbidden
	}

	switch relation {
	case RelationAdmin:
		if identity.IsAdmin() {
			return nil
		}
	case RelationSelfOrAdmin:
		if identity.IsAdmin() || identity.ID == target {
			return nil
		}
	}

	return ErrForbidden
}
