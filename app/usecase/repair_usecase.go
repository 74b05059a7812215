package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"provisioning-service/app/domain"
	"provisioning-service/app/port"
)

// RepairUseCase holds the three idempotent repair actions run out-of-band
// against the same two stores the saga writes. Every action is keyed by
// email, reads current state before acting, and refuses to guess: an
// ambiguous state surfaces as an error rather than a destructive pick.
type RepairUseCase struct {
	provider port.IdentityProvider
	users    port.UserRepository
	logger   *slog.Logger
}

var _ port.RepairUsecase = (*RepairUseCase)(nil)

// NewRepairUseCase creates a RepairUseCase.
func NewRepairUseCase(provider port.IdentityProvider, users port.UserRepository, logger *slog.Logger) *RepairUseCase {
	return &RepairUseCase{
		provider: provider,
		users:    users,
		logger:   logger.With("component", "repair"),
	}
}

// Relink points a user row's identity reference at the provider identity for
// the same email. A row already referencing that identity makes the call a
// no-op. With several candidate rows the unlinked one is preferred; a row
// linked to a stale identity is only rewritten when no unlinked row exists.
func (uc *RepairUseCase) Relink(ctx context.Context, email string) (*domain.RelinkResult, error) {
	identity, err := uc.provider.GetIdentityByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	rows, err := uc.users.ListByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("list users for %s: %w", email, err)
	}
	if len(rows) == 0 {
		return nil, &domain.NoUserRecordError{Email: email}
	}

	for _, row := range rows {
		if row.LinkedTo(identity.ID) {
			uc.logger.Info("user already linked, nothing to repair",
				"email", email,
				"user_id", row.ID,
				"identity_id", identity.ID)
			return &domain.RelinkResult{User: row, IdentityID: identity.ID, AlreadyLinked: true}, nil
		}
	}

	target := rows[0]
	for _, row := range rows {
		if !row.IsLinked() {
			target = row
			break
		}
	}

	updated, err := uc.users.SetAuthIdentityID(ctx, target.ID, identity.ID)
	if err != nil {
		return nil, fmt.Errorf("relink user %s: %w", target.ID, err)
	}

	uc.logger.Info("user relinked to identity",
		"email", email,
		"user_id", updated.ID,
		"identity_id", identity.ID)
	return &domain.RelinkResult{User: updated, IdentityID: identity.ID}, nil
}

// Deduplicate collapses multiple user rows sharing an email down to one
// canonical row: the oldest row that carries an identity link. Rows are
// never merged and a canonical row is never invented; when no row is linked
// the state is ambiguous and left untouched.
func (uc *RepairUseCase) Deduplicate(ctx context.Context, email string) (*domain.DeduplicateResult, error) {
	rows, err := uc.users.ListByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("list users for %s: %w", email, err)
	}
	if len(rows) == 0 {
		return nil, &domain.NoUserRecordError{Email: email}
	}

	// rows arrive ordered by created_at ascending, so the first linked row
	// is the oldest linked row.
	var kept *domain.UserRecord
	for _, row := range rows {
		if row.IsLinked() {
			kept = row
			break
		}
	}
	if kept == nil {
		return nil, &domain.AmbiguousDuplicateError{Email: email, Count: len(rows)}
	}

	deleted := make([]domain.UserSummary, 0, len(rows)-1)
	for _, row := range rows {
		if row.ID == kept.ID {
			continue
		}
		if err := uc.users.Delete(ctx, row.ID); err != nil {
			return nil, fmt.Errorf("delete duplicate user %s: %w", row.ID, err)
		}
		deleted = append(deleted, row.Summary())
	}

	uc.logger.Info("duplicate user rows removed",
		"email", email,
		"kept_user_id", kept.ID,
		"deleted", len(deleted))
	return &domain.DeduplicateResult{Kept: kept, Deleted: deleted}, nil
}

// Recover frees an email whose registration died between identity creation
// and user linking. An identity with a linked user row is healthy and left
// alone; an orphaned identity is deleted from the provider so the email can
// register again. A failed delete is loud: the orphan still blocks the email
// and silence would hide that.
func (uc *RepairUseCase) Recover(ctx context.Context, email string) (*domain.RecoverResult, error) {
	identity, err := uc.provider.GetIdentityByEmail(ctx, email)
	if err != nil {
		var missing *domain.NoIdentityError
		if errors.As(err, &missing) {
			return nil, err
		}
		return nil, fmt.Errorf("look up identity for %s: %w", email, err)
	}

	user, err := uc.users.GetByAuthIdentityID(ctx, identity.ID)
	if err != nil {
		return nil, fmt.Errorf("look up user link for identity %s: %w", identity.ID, err)
	}
	if user != nil {
		uc.logger.Info("identity has a linked user, nothing to recover",
			"email", email,
			"identity_id", identity.ID,
			"user_id", user.ID)
		return &domain.RecoverResult{HasUserRecord: true, IdentityID: identity.ID}, nil
	}

	if err := uc.provider.DeleteIdentity(ctx, identity.ID); err != nil {
		uc.logger.Error("orphaned identity delete failed, email remains blocked",
			"email", email,
			"identity_id", identity.ID,
			"error", err)
		return nil, fmt.Errorf("delete orphaned identity %s: %w", identity.ID, err)
	}

	uc.logger.Info("orphaned identity deleted",
		"email", email,
		"identity_id", identity.ID)
	return &domain.RecoverResult{HasUserRecord: false, IdentityID: identity.ID, IdentityDeleted: true}, nil
}
