package port

//go:generate mockgen -source=store_port.go -destination=../mocks/mock_store_port.go -package=mocks

import (
	"context"

	"github.com/google/uuid"

	"provisioning-service/app/domain"
)

// TenantRepository is the tenant table of the relational store.
type TenantRepository interface {
	// Create inserts the tenant row. A duplicate subdomain surfaces as
	// *domain.SubdomainTakenError.
	Create(ctx context.Context, tenant *domain.TenantRecord) error
	GetByID(ctx context.Context, tenantID uuid.UUID) (*domain.TenantRecord, error)
	GetBySubdomain(ctx context.Context, subdomain string) (*domain.TenantRecord, error)
	SubdomainExists(ctx context.Context, subdomain string) (bool, error)
	// Delete removes the tenant row; this is the saga's compensating action.
	Delete(ctx context.Context, tenantID uuid.UUID) error
}

// UserRepository is the user table of the relational store.
type UserRepository interface {
	// Create inserts the user row. A rejected identity reference surfaces as
	// *domain.ForeignKeyRaceError.
	Create(ctx context.Context, user *domain.UserRecord) error
	// GetByAuthIdentityID returns (nil, nil) when no row carries the
	// identity reference; absence is an inspectable condition, not an error.
	GetByAuthIdentityID(ctx context.Context, identityID uuid.UUID) (*domain.UserRecord, error)
	// ListByEmail returns every row for the email ordered by created_at
	// ascending. An email with no rows returns an empty slice, not an error.
	ListByEmail(ctx context.Context, email string) ([]*domain.UserRecord, error)
	// SetAuthIdentityID sets the identity reference on one row and returns
	// the updated record.
	SetAuthIdentityID(ctx context.Context, userID, identityID uuid.UUID) (*domain.UserRecord, error)
	Delete(ctx context.Context, userID uuid.UUID) error
}
