package port

//go:generate mockgen -source=identity_port.go -destination=../mocks/mock_identity_port.go -package=mocks

import (
	"context"

	"github.com/google/uuid"

	"provisioning-service/app/domain"
)

// IdentityProvider is the external identity provider as seen by the saga:
// create, read and delete an identity. Provider writes are not guaranteed to
// be immediately visible to subsequent reads; GetIdentity returns a
// *domain.TransientVisibilityError while the identity has not converged.
type IdentityProvider interface {
	CreateIdentity(ctx context.Context, email, password string, profile domain.IdentityProfile) (*domain.Identity, error)
	GetIdentity(ctx context.Context, identityID uuid.UUID) (*domain.Identity, error)
	GetIdentityByEmail(ctx context.Context, email string) (*domain.Identity, error)
	DeleteIdentity(ctx context.Context, identityID uuid.UUID) error
}
