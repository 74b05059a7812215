package domain

import (
	"github.com/google/uuid"
)

// RelinkResult reports a repaired (or already healthy) user→identity link.
type RelinkResult struct {
	User       *UserRecord `json:"user"`
	IdentityID uuid.UUID   `json:"identity_id"`
	// AlreadyLinked is true when the row referenced the identity before the
	// repair ran; the operation is then a no-op.
	AlreadyLinked bool `json:"already_linked"`
}

// DeduplicateResult reports which user row was kept as canonical and which
// duplicates were removed.
type DeduplicateResult struct {
	Kept    *UserRecord   `json:"kept_user"`
	Deleted []UserSummary `json:"deleted_users"`
}

// RecoverResult reports whether an identity had a linked user row. When it
// did not, the orphaned identity has been deleted from the provider so the
// email is free for a fresh registration attempt.
type RecoverResult struct {
	HasUserRecord   bool      `json:"has_user_record"`
	IdentityID      uuid.UUID `json:"identity_id"`
	IdentityDeleted bool      `json:"identity_deleted"`
}
