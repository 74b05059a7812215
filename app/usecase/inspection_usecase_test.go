package usecase

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"provisioning-service/app/domain"
	"provisioning-service/app/mocks"
)

func TestInspectionUseCase_Inspect(t *testing.T) {
	const email = "ada@acme.test"
	identityID := uuid.New()
	identity := &domain.Identity{ID: identityID, Email: email}

	newFixture := func(t *testing.T) (*mocks.MockIdentityProvider, *mocks.MockUserRepository, *InspectionUseCase) {
		ctrl := gomock.NewController(t)
		t.Cleanup(ctrl.Finish)
		provider := mocks.NewMockIdentityProvider(ctrl)
		users := mocks.NewMockUserRepository(ctrl)
		return provider, users, NewInspectionUseCase(provider, users, slog.Default())
	}

	t.Run("healthy state shows both sides", func(t *testing.T) {
		provider, users, usecase := newFixture(t)

		row := userRow(email, &identityID, time.Now())
		provider.EXPECT().GetIdentityByEmail(gomock.Any(), email).Return(identity, nil)
		users.EXPECT().GetByAuthIdentityID(gomock.Any(), identityID).Return(row, nil)
		users.EXPECT().ListByEmail(gomock.Any(), email).Return([]*domain.UserRecord{row}, nil)

		report, err := usecase.Inspect(context.Background(), email)
		require.NoError(t, err)
		assert.Equal(t, identityID, report.Identity.ID)
		assert.Equal(t, row.ID, report.UserByIdentity.ID)
		assert.Len(t, report.UsersByEmail, 1)
		assert.Empty(t, report.LinkLookupError)
		assert.Empty(t, report.EmailLookupError)
	})

	t.Run("missing identity surfaces as not found", func(t *testing.T) {
		provider, _, usecase := newFixture(t)

		provider.EXPECT().
			GetIdentityByEmail(gomock.Any(), email).
			Return(nil, &domain.NoIdentityError{Email: email})

		report, err := usecase.Inspect(context.Background(), email)
		require.Error(t, err)
		assert.Nil(t, report)

		var missing *domain.NoIdentityError
		require.ErrorAs(t, err, &missing)
		assert.Equal(t, email, missing.Email)
	})

	t.Run("store errors are embedded raw", func(t *testing.T) {
		provider, users, usecase := newFixture(t)

		provider.EXPECT().GetIdentityByEmail(gomock.Any(), email).Return(identity, nil)
		users.EXPECT().GetByAuthIdentityID(gomock.Any(), identityID).Return(nil, errors.New("link query failed"))
		users.EXPECT().ListByEmail(gomock.Any(), email).Return(nil, errors.New("email query failed"))

		report, err := usecase.Inspect(context.Background(), email)
		require.NoError(t, err)
		assert.Equal(t, "link query failed", report.LinkLookupError)
		assert.Equal(t, "email query failed", report.EmailLookupError)
	})

	t.Run("provider transport error aborts", func(t *testing.T) {
		provider, _, usecase := newFixture(t)

		provider.EXPECT().
			GetIdentityByEmail(gomock.Any(), email).
			Return(nil, errors.New("provider unreachable"))

		report, err := usecase.Inspect(context.Background(), email)
		require.Error(t, err)
		assert.Nil(t, report)
	})
}
