package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"provisioning-service/app/domain"
	"provisioning-service/app/port"
)

// The identity confirmed readable by the provisioner may still be invisible
// to the write path's foreign-key check, so insert failures attributable to
// the identity reference are retried briefly before being treated as
// permanent.
const (
	defaultLinkAttempts = 3
	defaultLinkDelay    = 2 * time.Second
)

// UserLinker inserts the first user row of a tenant, linked to both the
// tenant and the confirmed identity.
type UserLinker struct {
	users    port.UserRepository
	logger   *slog.Logger
	attempts int
	delay    time.Duration
}

// NewUserLinker creates a UserLinker with the default retry policy.
func NewUserLinker(users port.UserRepository, logger *slog.Logger) *UserLinker {
	return &UserLinker{
		users:    users,
		logger:   logger.With("component", "user_linker"),
		attempts: defaultLinkAttempts,
		delay:    defaultLinkDelay,
	}
}

// LinkAdmin inserts the admin user row, absorbing foreign-key races on the
// identity reference. The returned error is the last insert error; the saga
// owns the compensating rollback and the terminal error classification.
func (l *UserLinker) LinkAdmin(ctx context.Context, tenantID, identityID uuid.UUID, email, firstName, lastName string) (*domain.UserRecord, error) {
	user, err := domain.NewAdminUser(tenantID, identityID, email, firstName, lastName)
	if err != nil {
		return nil, err
	}

	policy := retryPolicy{
		attempts:  l.attempts,
		delay:     fixedDelay(l.delay),
		retryable: domain.IsForeignKeyRace,
	}

	err = runWithRetry(ctx, policy, func(ctx context.Context) error {
		if err := l.users.Create(ctx, user); err != nil {
			if domain.IsForeignKeyRace(err) {
				l.logger.Warn("identity reference not yet visible to write path, retrying",
					"identity_id", identityID,
					"tenant_id", tenantID)
			}
			return err
		}
		return nil
	})
	if err != nil {
		l.logger.Error("user link failed permanently",
			"identity_id", identityID,
			"tenant_id", tenantID,
			"email", email,
			"error", err)
		return nil, err
	}

	l.logger.Info("admin user linked",
		"user_id", user.ID,
		"tenant_id", tenantID,
		"identity_id", identityID)
	return user, nil
}
