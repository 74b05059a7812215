package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"

	"provisioning-service/app/domain"
	"provisioning-service/app/port"
)

const (
	// allocationAttempts bounds the collision-suffix loop.
	allocationAttempts = 10
	// suffixRange is the exclusive upper bound of the random suffix.
	suffixRange = 999
)

// Allocation is a successfully reserved subdomain. Suffixed is true when the
// derived slug collided and a random suffix was appended; the registration
// response explains the substitution to the caller.
type Allocation struct {
	Subdomain string
	Suffixed  bool
}

// SubdomainAllocator derives a URL-safe, globally unique tenant slug. The
// check-then-insert sequence here is not atomic with the tenant insert; the
// store's UNIQUE constraint is the backstop and the saga re-allocates when
// the insert loses that race.
type SubdomainAllocator struct {
	tenants port.TenantRepository
	logger  *slog.Logger
	intn    func(n int) int
}

// NewSubdomainAllocator creates a SubdomainAllocator.
func NewSubdomainAllocator(tenants port.TenantRepository, logger *slog.Logger) *SubdomainAllocator {
	return &SubdomainAllocator{
		tenants: tenants,
		logger:  logger.With("component", "subdomain_allocator"),
		intn:    rand.Intn,
	}
}

// Allocate reserves a slug for the organization name. A caller-supplied
// subdomain takes precedence over the derived one but passes through the
// same sanitiser. Exhaustion of the suffix budget returns
// *domain.SubdomainExhaustedError.
func (a *SubdomainAllocator) Allocate(ctx context.Context, name, requested string) (*Allocation, error) {
	base := domain.DeriveSubdomain(name)
	if requested != "" {
		base = domain.DeriveSubdomain(requested)
	}
	if base == "" {
		return nil, fmt.Errorf("cannot derive a subdomain from %q", name)
	}

	candidate := base
	for attempt := 1; attempt <= allocationAttempts; attempt++ {
		exists, err := a.tenants.SubdomainExists(ctx, candidate)
		if err != nil {
			return nil, fmt.Errorf("check subdomain %q: %w", candidate, err)
		}

		if !exists {
			if candidate != base {
				a.logger.Info("subdomain allocated with collision suffix",
					"base", base,
					"subdomain", candidate,
					"attempt", attempt)
			}
			return &Allocation{Subdomain: candidate, Suffixed: candidate != base}, nil
		}

		candidate = fmt.Sprintf("%s-%03d", base, a.intn(suffixRange))
	}

	a.logger.Error("subdomain allocation exhausted", "base", base, "attempts", allocationAttempts)
	return nil, &domain.SubdomainExhaustedError{Base: base, Attempts: allocationAttempts}
}
