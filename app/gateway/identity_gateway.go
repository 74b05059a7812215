package gateway

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"provisioning-service/app/domain"
	"provisioning-service/app/port"
)

// IdentityGateway implements port.IdentityProvider on top of the Kratos
// driver. It is the anti-corruption layer between the provisioning domain
// and the identity provider: emails are normalized here so the saga, the
// repairs and the provider all agree on the lookup key.
type IdentityGateway struct {
	client port.IdentityProvider
	logger *slog.Logger
}

// NewIdentityGateway creates a new IdentityGateway instance
func NewIdentityGateway(client port.IdentityProvider, logger *slog.Logger) *IdentityGateway {
	return &IdentityGateway{
		client: client,
		logger: logger.With("component", "identity_gateway"),
	}
}

// CreateIdentity creates an identity for the normalized email.
func (g *IdentityGateway) CreateIdentity(ctx context.Context, email, password string, profile domain.IdentityProfile) (*domain.Identity, error) {
	email = normalizeEmail(email)

	identity, err := g.client.CreateIdentity(ctx, email, password, profile)
	if err != nil {
		g.logger.Error("failed to create identity", "email", email, "error", err)
		return nil, err
	}

	g.logger.Info("identity created", "identity_id", identity.ID, "email", email)
	return identity, nil
}

// GetIdentity reads an identity by id.
func (g *IdentityGateway) GetIdentity(ctx context.Context, identityID uuid.UUID) (*domain.Identity, error) {
	identity, err := g.client.GetIdentity(ctx, identityID)
	if err != nil {
		if !domain.IsRetryableVisibility(err) {
			g.logger.Error("failed to get identity", "identity_id", identityID, "error", err)
		}
		return nil, err
	}
	return identity, nil
}

// GetIdentityByEmail resolves an identity by its normalized email.
func (g *IdentityGateway) GetIdentityByEmail(ctx context.Context, email string) (*domain.Identity, error) {
	email = normalizeEmail(email)

	identity, err := g.client.GetIdentityByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	g.logger.Debug("identity resolved by email", "identity_id", identity.ID, "email", email)
	return identity, nil
}

// DeleteIdentity removes an identity from the provider.
func (g *IdentityGateway) DeleteIdentity(ctx context.Context, identityID uuid.UUID) error {
	if err := g.client.DeleteIdentity(ctx, identityID); err != nil {
		g.logger.Error("failed to delete identity", "identity_id", identityID, "error", err)
		return err
	}

	g.logger.Info("identity deleted", "identity_id", identityID)
	return nil
}

// normalizeEmail lowercases and trims the email so provider and store
// lookups use the same key.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
