package usecase

import (
	"context"
	"log/slog"

	"provisioning-service/app/domain"
	"provisioning-service/app/port"
)

// InspectionUseCase cross-references the identity provider and the user
// table for one email. It never writes and never interprets; the report
// shows each side as-is so an operator can decide which repair applies.
type InspectionUseCase struct {
	provider port.IdentityProvider
	users    port.UserRepository
	logger   *slog.Logger
}

var _ port.InspectionUsecase = (*InspectionUseCase)(nil)

// NewInspectionUseCase creates an InspectionUseCase.
func NewInspectionUseCase(provider port.IdentityProvider, users port.UserRepository, logger *slog.Logger) *InspectionUseCase {
	return &InspectionUseCase{
		provider: provider,
		users:    users,
		logger:   logger.With("component", "inspection"),
	}
}

// Inspect builds the consistency report. The identity anchors the report:
// an email with no identity is a NoIdentityError, same as the repair
// operations. Missing user rows are findings, and store lookup errors are
// embedded raw in the report instead of aborting it.
func (uc *InspectionUseCase) Inspect(ctx context.Context, email string) (*domain.ConsistencyReport, error) {
	identity, err := uc.provider.GetIdentityByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	report := &domain.ConsistencyReport{Identity: identity}

	user, err := uc.users.GetByAuthIdentityID(ctx, identity.ID)
	if err != nil {
		report.LinkLookupError = err.Error()
	} else {
		report.UserByIdentity = user
	}

	rows, err := uc.users.ListByEmail(ctx, email)
	if err != nil {
		report.EmailLookupError = err.Error()
	} else {
		report.UsersByEmail = rows
	}

	uc.logger.Debug("consistency inspection",
		"email", email,
		"identity_found", report.Identity != nil,
		"linked_user_found", report.UserByIdentity != nil,
		"rows_by_email", len(report.UsersByEmail))
	return report, nil
}
