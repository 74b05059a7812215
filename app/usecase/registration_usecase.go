package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"provisioning-service/app/domain"
	"provisioning-service/app/port"
)

// tenantInsertAttempts bounds how many times the saga re-runs the allocator
// when a tenant insert loses the check-then-insert race to a concurrent
// registration.
const tenantInsertAttempts = 3

// RegistrationUseCase drives the provisioning saga: confirm identity,
// allocate subdomain, create tenant, link admin user. The tenant insert is
// the only step with a compensating action (delete); the identity is never
// rolled back because the front-end may have created it.
type RegistrationUseCase struct {
	provisioner *IdentityProvisioner
	allocator   *SubdomainAllocator
	linker      *UserLinker
	tenants     port.TenantRepository
	logger      *slog.Logger
}

// interface assertion
var _ port.RegistrationUsecase = (*RegistrationUseCase)(nil)

// NewRegistrationUseCase creates a RegistrationUseCase.
func NewRegistrationUseCase(
	provisioner *IdentityProvisioner,
	allocator *SubdomainAllocator,
	linker *UserLinker,
	tenants port.TenantRepository,
	logger *slog.Logger,
) *RegistrationUseCase {
	return &RegistrationUseCase{
		provisioner: provisioner,
		allocator:   allocator,
		linker:      linker,
		tenants:     tenants,
		logger:      logger.With("component", "registration"),
	}
}

// Register runs the saga for one organization. It returns a typed error
// identifying the step that failed; partial work is either compensated
// (tenant) or reported for out-of-band repair (identity).
func (uc *RegistrationUseCase) Register(ctx context.Context, req *domain.RegistrationRequest) (*domain.RegistrationResult, error) {
	if err := validateRegistration(req); err != nil {
		return nil, err
	}

	state := domain.StateIdentityPending
	log := uc.logger.With("email", req.Email, "tenant_name", req.TenantName)

	// Step 1: identity. Either confirm one the signup front-end already
	// created or create one server-side through the provider admin API.
	var identity *domain.Identity
	var err error
	if req.IdentityID != nil {
		identity, err = uc.provisioner.ConfirmVisible(ctx, *req.IdentityID)
	} else {
		identity, err = uc.provisioner.CreateAndConfirm(ctx, req.Email, req.Password, domain.IdentityProfile{
			FirstName: req.FirstName,
			LastName:  req.LastName,
		})
	}
	if err != nil {
		uc.fail(log, &state, err)
		return nil, err
	}
	uc.advance(log, &state, domain.StateIdentityConfirmed)

	// Steps 2 and 3: allocate a subdomain and insert the tenant. The UNIQUE
	// constraint is the authority; losing the insert race re-runs the
	// allocator with the now-taken slug visible to its pre-check.
	var tenant *domain.TenantRecord
	var allocation *Allocation
	for attempt := 1; ; attempt++ {
		allocation, err = uc.allocator.Allocate(ctx, req.TenantName, req.Subdomain)
		if err != nil {
			uc.fail(log, &state, err)
			return nil, err
		}
		if state == domain.StateIdentityConfirmed {
			uc.advance(log, &state, domain.StateSubdomainAllocated)
		}

		tenant, err = domain.NewTenantRecord(req.TenantName, allocation.Subdomain, req.Email)
		if err != nil {
			uc.fail(log, &state, err)
			return nil, err
		}

		err = uc.tenants.Create(ctx, tenant)
		if err == nil {
			break
		}
		if domain.IsSubdomainTaken(err) && attempt < tenantInsertAttempts {
			log.Warn("tenant insert lost subdomain race, re-allocating",
				"subdomain", allocation.Subdomain,
				"attempt", attempt)
			continue
		}
		uc.fail(log, &state, err)
		return nil, fmt.Errorf("create tenant: %w", err)
	}
	uc.advance(log, &state, domain.StateTenantCreated)

	// Step 4: link the admin user. Failure past this point triggers the
	// compensating tenant delete so the subdomain is released.
	user, err := uc.linker.LinkAdmin(ctx, tenant.ID, identity.ID, req.Email, req.FirstName, req.LastName)
	if err != nil {
		uc.advance(log, &state, domain.StateRollingBack)
		rolledBack := uc.rollbackTenant(ctx, log, tenant.ID)
		uc.fail(log, &state, err)
		return nil, &domain.ProvisioningFailedError{
			State:            domain.StateTenantCreated,
			TenantRolledBack: rolledBack,
			Transient:        rolledBack && domain.IsForeignKeyRace(err),
			Cause:            err,
		}
	}
	uc.advance(log, &state, domain.StateUserLinked)

	log.Info("registration complete",
		"tenant_id", tenant.ID,
		"user_id", user.ID,
		"identity_id", identity.ID,
		"subdomain", tenant.Subdomain,
		"subdomain_suffixed", allocation.Suffixed)

	return &domain.RegistrationResult{
		Tenant:            tenant,
		User:              user,
		Subdomain:         tenant.Subdomain,
		SubdomainSuffixed: allocation.Suffixed,
	}, nil
}

// rollbackTenant deletes the tenant created by this run. A rollback failure
// is logged loudly but never masks the original error; it only downgrades
// the failure from transient to support-required.
func (uc *RegistrationUseCase) rollbackTenant(ctx context.Context, log *slog.Logger, tenantID uuid.UUID) bool {
	if err := uc.tenants.Delete(ctx, tenantID); err != nil {
		log.Error("compensating tenant delete failed, manual cleanup required",
			"tenant_id", tenantID,
			"error", err)
		return false
	}
	log.Info("tenant rolled back", "tenant_id", tenantID)
	return true
}

// advance moves the saga to next, logging an illegal edge instead of
// panicking; the transition table is an internal consistency check.
func (uc *RegistrationUseCase) advance(log *slog.Logger, state *domain.RegistrationState, next domain.RegistrationState) {
	if !state.CanTransitionTo(next) {
		log.Error("illegal saga transition", "from", *state, "to", next)
	}
	*state = next
	log.Debug("saga state", "state", next)
}

// fail marks the saga terminally failed.
func (uc *RegistrationUseCase) fail(log *slog.Logger, state *domain.RegistrationState, cause error) {
	if *state != domain.StateFailed {
		*state = domain.StateFailed
	}
	log.Error("registration failed", "state", domain.StateFailed, "error", cause)
}

// validateRegistration checks the cross-field rules the struct tags cannot
// express: exactly one identity source.
func validateRegistration(req *domain.RegistrationRequest) error {
	if req == nil {
		return fmt.Errorf("registration request is required")
	}
	if req.IdentityID == nil && req.Password == "" {
		return fmt.Errorf("either identityId or password must be provided")
	}
	if req.IdentityID != nil && req.Password != "" {
		return fmt.Errorf("identityId and password are mutually exclusive")
	}
	if req.Email == "" || req.TenantName == "" {
		return fmt.Errorf("email and tenantName are required")
	}
	return nil
}
