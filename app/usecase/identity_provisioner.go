package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"provisioning-service/app/domain"
	"provisioning-service/app/port"
)

// Visibility poll policy: provider writes are not guaranteed to be readable
// immediately, so a freshly created identity is polled at a fixed interval
// until it converges.
const (
	defaultPollAttempts = 10
	defaultPollInterval = time.Second
)

// IdentityProvisioner creates an identity in the external provider and
// confirms it is visible before the saga proceeds.
type IdentityProvisioner struct {
	provider     port.IdentityProvider
	logger       *slog.Logger
	pollAttempts int
	pollInterval time.Duration
}

// NewIdentityProvisioner creates an IdentityProvisioner with the default
// poll policy.
func NewIdentityProvisioner(provider port.IdentityProvider, logger *slog.Logger) *IdentityProvisioner {
	return &IdentityProvisioner{
		provider:     provider,
		logger:       logger.With("component", "identity_provisioner"),
		pollAttempts: defaultPollAttempts,
		pollInterval: defaultPollInterval,
	}
}

// CreateAndConfirm creates the identity through the provider admin API and
// waits for it to become readable.
func (p *IdentityProvisioner) CreateAndConfirm(ctx context.Context, email, password string, profile domain.IdentityProfile) (*domain.Identity, error) {
	identity, err := p.provider.CreateIdentity(ctx, email, password, profile)
	if err != nil {
		return nil, fmt.Errorf("create identity for %s: %w", email, err)
	}

	p.logger.Info("identity created", "identity_id", identity.ID, "email", email)
	return p.ConfirmVisible(ctx, identity.ID)
}

// ConfirmVisible polls the provider's read-by-id call until the identity is
// visible. After the poll budget is exhausted it returns
// *domain.IdentityNotVisibleError carrying the identity id; the identity is
// NOT cleaned up here because it was created and may still converge; the
// out-of-band recover repair handles it if it stays orphaned.
func (p *IdentityProvisioner) ConfirmVisible(ctx context.Context, identityID uuid.UUID) (*domain.Identity, error) {
	var identity *domain.Identity

	policy := retryPolicy{
		attempts:  p.pollAttempts,
		delay:     fixedDelay(p.pollInterval),
		retryable: domain.IsRetryableVisibility,
	}

	err := runWithRetry(ctx, policy, func(ctx context.Context) error {
		found, err := p.provider.GetIdentity(ctx, identityID)
		if err != nil {
			return err
		}
		identity = found
		return nil
	})

	if err != nil {
		if domain.IsRetryableVisibility(err) {
			p.logger.Error("identity never became visible",
				"identity_id", identityID,
				"attempts", p.pollAttempts)
			return nil, &domain.IdentityNotVisibleError{IdentityID: identityID, Attempts: p.pollAttempts}
		}
		return nil, fmt.Errorf("confirm identity %s: %w", identityID, err)
	}

	p.logger.Info("identity confirmed visible", "identity_id", identityID)
	return identity, nil
}
