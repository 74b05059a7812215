package port

//go:generate mockgen -source=provisioning_port.go -destination=../mocks/mock_provisioning_port.go -package=mocks

import (
	"context"

	"provisioning-service/app/domain"
)

// RegistrationUsecase drives the provisioning saga for one organization.
type RegistrationUsecase interface {
	Register(ctx context.Context, req *domain.RegistrationRequest) (*domain.RegistrationResult, error)
}

// RepairUsecase holds the three idempotent repair actions, each keyed by
// email and invocable out-of-band against the same two stores.
type RepairUsecase interface {
	Relink(ctx context.Context, email string) (*domain.RelinkResult, error)
	Deduplicate(ctx context.Context, email string) (*domain.DeduplicateResult, error)
	Recover(ctx context.Context, email string) (*domain.RecoverResult, error)
}

// InspectionUsecase is the read-only cross-reference of identity and user
// rows for one email.
type InspectionUsecase interface {
	Inspect(ctx context.Context, email string) (*domain.ConsistencyReport, error)
}
