package domain

import (
	"time"

	"github.com/google/uuid"
)

// Identity is the record held by the external identity provider for one
// login credential. This service only reads and deletes identities; the
// provider owns every other mutation.
type Identity struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// IdentityProfile carries the display fields submitted at signup. They are
// stored as provider traits alongside the email.
type IdentityProfile struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}
