package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"provisioning-service/app/domain"
	"provisioning-service/app/port"
)

// UserRepository handles user operations in PostgreSQL
type UserRepository struct {
	db     DatabaseIface
	logger *slog.Logger
}

var _ port.UserRepository = (*UserRepository)(nil)

// NewUserRepository creates a new PostgreSQL user repository
func NewUserRepository(db DatabaseIface, logger *slog.Logger) *UserRepository {
	return &UserRepository{
		db:     db,
		logger: logger.With("component", "user_repository"),
	}
}

// Create inserts a user. A foreign key violation maps to
// ForeignKeyRaceError: the referenced identity or tenant was not visible to
// the write path yet, which the linker retries.
func (r *UserRepository) Create(ctx context.Context, user *domain.UserRecord) error {
	query := `
		INSERT INTO users (
			id, auth_identity_id, tenant_id, email, first_name, last_name, role, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8
		)`

	_, err := r.db.Exec(ctx, query,
		user.ID,
		user.AuthIdentityID,
		user.TenantID,
		user.Email,
		user.FirstName,
		user.LastName,
		user.Role,
		user.CreatedAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
			return &domain.ForeignKeyRaceError{Constraint: pgErr.ConstraintName, Cause: err}
		}
		r.logger.Error("failed to create user", "user_id", user.ID, "error", err)
		return fmt.Errorf("failed to create user: %w", err)
	}

	r.logger.Info("user created", "user_id", user.ID, "tenant_id", user.TenantID)
	return nil
}

// GetByAuthIdentityID returns the user row linked to the identity, or
// (nil, nil) when no row carries the reference.
func (r *UserRepository) GetByAuthIdentityID(ctx context.Context, identityID uuid.UUID) (*domain.UserRecord, error) {
	query := `
		SELECT id, auth_identity_id, tenant_id, email, first_name, last_name, role, created_at
		FROM users WHERE auth_identity_id = $1`

	var user domain.UserRecord
	err := r.db.QueryRow(ctx, query, identityID).Scan(
		&user.ID,
		&user.AuthIdentityID,
		&user.TenantID,
		&user.Email,
		&user.FirstName,
		&user.LastName,
		&user.Role,
		&user.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error("failed to get user by identity", "identity_id", identityID, "error", err)
		return nil, fmt.Errorf("failed to get user by identity: %w", err)
	}

	return &user, nil
}

// ListByEmail returns every row for the email ordered by created_at
// ascending; deduplication relies on this order to find the oldest row.
func (r *UserRepository) ListByEmail(ctx context.Context, email string) ([]*domain.UserRecord, error) {
	query := `
		SELECT id, auth_identity_id, tenant_id, email, first_name, last_name, role, created_at
		FROM users WHERE email = $1 ORDER BY created_at ASC`

	rows, err := r.db.Query(ctx, query, email)
	if err != nil {
		r.logger.Error("failed to list users by email", "email", email, "error", err)
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	users := make([]*domain.UserRecord, 0)
	for rows.Next() {
		var user domain.UserRecord
		err := rows.Scan(
			&user.ID,
			&user.AuthIdentityID,
			&user.TenantID,
			&user.Email,
			&user.FirstName,
			&user.LastName,
			&user.Role,
			&user.CreatedAt,
		)
		if err != nil {
			r.logger.Error("failed to scan user row", "error", err)
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, &user)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("error iterating user rows", "error", err)
		return nil, fmt.Errorf("error iterating users: %w", err)
	}

	return users, nil
}

// SetAuthIdentityID points one row's identity reference at identityID and
// returns the updated record.
func (r *UserRepository) SetAuthIdentityID(ctx context.Context, userID, identityID uuid.UUID) (*domain.UserRecord, error) {
	query := `
		UPDATE users SET auth_identity_id = $2
		WHERE id = $1
		RETURNING id, auth_identity_id, tenant_id, email, first_name, last_name, role, created_at`

	var user domain.UserRecord
	err := r.db.QueryRow(ctx, query, userID, identityID).Scan(
		&user.ID,
		&user.AuthIdentityID,
		&user.TenantID,
		&user.Email,
		&user.FirstName,
		&user.LastName,
		&user.Role,
		&user.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("user not found: %w", err)
		}
		r.logger.Error("failed to set identity reference", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to set identity reference: %w", err)
	}

	r.logger.Info("identity reference updated", "user_id", userID, "identity_id", identityID)
	return &user, nil
}

// Delete removes a user row
func (r *UserRepository) Delete(ctx context.Context, userID uuid.UUID) error {
	query := `DELETE FROM users WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, userID)
	if err != nil {
		r.logger.Error("failed to delete user", "user_id", userID, "error", err)
		return fmt.Errorf("failed to delete user: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("user not found or already deleted")
	}

	r.logger.Info("user deleted", "user_id", userID)
	return nil
}
