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

// Postgres error codes the provisioning flow reacts to.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// TenantRepository handles tenant operations in PostgreSQL
type TenantRepository struct {
	db     DatabaseIface
	logger *slog.Logger
}

var _ port.TenantRepository = (*TenantRepository)(nil)

// NewTenantRepository creates a new PostgreSQL tenant repository
func NewTenantRepository(db DatabaseIface, logger *slog.Logger) *TenantRepository {
	return &TenantRepository{
		db:     db,
		logger: logger.With("component", "tenant_repository"),
	}
}

// Create inserts a tenant. The UNIQUE constraint on subdomain is the
// authority on slug ownership; a violation maps to SubdomainTakenError so
// the caller can re-allocate instead of failing the whole registration.
func (r *TenantRepository) Create(ctx context.Context, tenant *domain.TenantRecord) error {
	query := `
		INSERT INTO tenants (
			id, name, subdomain, admin_email, created_at
		) VALUES (
			$1, $2, $3, $4, $5
		)`

	_, err := r.db.Exec(ctx, query,
		tenant.ID,
		tenant.Name,
		tenant.Subdomain,
		tenant.AdminEmail,
		tenant.CreatedAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			r.logger.Warn("tenant insert rejected by subdomain uniqueness",
				"tenant_id", tenant.ID,
				"subdomain", tenant.Subdomain)
			return &domain.SubdomainTakenError{Subdomain: tenant.Subdomain}
		}
		r.logger.Error("failed to create tenant", "tenant_id", tenant.ID, "error", err)
		return fmt.Errorf("failed to create tenant: %w", err)
	}

	r.logger.Info("tenant created", "tenant_id", tenant.ID, "subdomain", tenant.Subdomain)
	return nil
}

// GetByID retrieves a tenant by ID
func (r *TenantRepository) GetByID(ctx context.Context, tenantID uuid.UUID) (*domain.TenantRecord, error) {
	query := `
		SELECT id, name, subdomain, admin_email, created_at
		FROM tenants WHERE id = $1`

	var tenant domain.TenantRecord
	err := r.db.QueryRow(ctx, query, tenantID).Scan(
		&tenant.ID,
		&tenant.Name,
		&tenant.Subdomain,
		&tenant.AdminEmail,
		&tenant.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("tenant not found: %w", err)
		}
		r.logger.Error("failed to get tenant by ID", "tenant_id", tenantID, "error", err)
		return nil, fmt.Errorf("failed to get tenant: %w", err)
	}

	return &tenant, nil
}

// GetBySubdomain retrieves a tenant by subdomain
func (r *TenantRepository) GetBySubdomain(ctx context.Context, subdomain string) (*domain.TenantRecord, error) {
	query := `
		SELECT id, name, subdomain, admin_email, created_at
		FROM tenants WHERE subdomain = $1`

	var tenant domain.TenantRecord
	err := r.db.QueryRow(ctx, query, subdomain).Scan(
		&tenant.ID,
		&tenant.Name,
		&tenant.Subdomain,
		&tenant.AdminEmail,
		&tenant.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("tenant not found: %w", err)
		}
		r.logger.Error("failed to get tenant by subdomain", "subdomain", subdomain, "error", err)
		return nil, fmt.Errorf("failed to get tenant: %w", err)
	}

	return &tenant, nil
}

// SubdomainExists reports whether any tenant already owns the subdomain.
func (r *TenantRepository) SubdomainExists(ctx context.Context, subdomain string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM tenants WHERE subdomain = $1)`

	var exists bool
	if err := r.db.QueryRow(ctx, query, subdomain).Scan(&exists); err != nil {
		r.logger.Error("failed to check subdomain", "subdomain", subdomain, "error", err)
		return false, fmt.Errorf("failed to check subdomain: %w", err)
	}

	return exists, nil
}

// Delete removes a tenant row. Used as the saga's compensating action, so a
// hard delete: the row must disappear for the subdomain to become free.
func (r *TenantRepository) Delete(ctx context.Context, tenantID uuid.UUID) error {
	query := `DELETE FROM tenants WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, tenantID)
	if err != nil {
		r.logger.Error("failed to delete tenant", "tenant_id", tenantID, "error", err)
		return fmt.Errorf("failed to delete tenant: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("tenant not found or already deleted")
	}

	r.logger.Info("tenant deleted", "tenant_id", tenantID)
	return nil
}
