package usecase

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"provisioning-service/app/domain"
	"provisioning-service/app/mocks"
)

func TestSubdomainAllocator_Allocate(t *testing.T) {
	tests := []struct {
		name          string
		tenantName    string
		requested     string
		intn          func(int) int
		setupMocks    func(tenants *mocks.MockTenantRepository)
		wantSubdomain string
		wantSuffixed  bool
		wantErr       bool
		checkErr      func(*testing.T, error)
	}{
		{
			name:       "derived slug is free",
			tenantName: "Acme Inc.",
			setupMocks: func(tenants *mocks.MockTenantRepository) {
				tenants.EXPECT().SubdomainExists(gomock.Any(), "acme-inc").Return(false, nil)
			},
			wantSubdomain: "acme-inc",
		},
		{
			name:       "collision appends a three digit suffix",
			tenantName: "Acme Inc.",
			intn:       func(int) int { return 7 },
			setupMocks: func(tenants *mocks.MockTenantRepository) {
				gomock.InOrder(
					tenants.EXPECT().SubdomainExists(gomock.Any(), "acme-inc").Return(true, nil),
					tenants.EXPECT().SubdomainExists(gomock.Any(), "acme-inc-007").Return(false, nil),
				)
			},
			wantSubdomain: "acme-inc-007",
			wantSuffixed:  true,
		},
		{
			name:       "requested subdomain overrides the derived one",
			tenantName: "Acme Inc.",
			requested:  "Acme Support",
			setupMocks: func(tenants *mocks.MockTenantRepository) {
				tenants.EXPECT().SubdomainExists(gomock.Any(), "acme-support").Return(false, nil)
			},
			wantSubdomain: "acme-support",
		},
		{
			name:       "every candidate collides",
			tenantName: "Acme Inc.",
			intn:       func(int) int { return 42 },
			setupMocks: func(tenants *mocks.MockTenantRepository) {
				tenants.EXPECT().SubdomainExists(gomock.Any(), "acme-inc").Return(true, nil)
				tenants.EXPECT().SubdomainExists(gomock.Any(), "acme-inc-042").Return(true, nil).Times(allocationAttempts - 1)
			},
			wantErr: true,
			checkErr: func(t *testing.T, err error) {
				var exhausted *domain.SubdomainExhaustedError
				require.ErrorAs(t, err, &exhausted)
				assert.Equal(t, "acme-inc", exhausted.Base)
				assert.Equal(t, allocationAttempts, exhausted.Attempts)
			},
		},
		{
			name:       "name with no alphanumerics cannot produce a slug",
			tenantName: "!!!",
			setupMocks: func(tenants *mocks.MockTenantRepository) {},
			wantErr:    true,
			checkErr: func(t *testing.T, err error) {
				assert.Contains(t, err.Error(), "cannot derive a subdomain")
			},
		},
		{
			name:       "store error propagates",
			tenantName: "Acme Inc.",
			setupMocks: func(tenants *mocks.MockTenantRepository) {
				tenants.EXPECT().SubdomainExists(gomock.Any(), "acme-inc").Return(false, errors.New("connection refused"))
			},
			wantErr: true,
			checkErr: func(t *testing.T, err error) {
				assert.Contains(t, err.Error(), "connection refused")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			tenants := mocks.NewMockTenantRepository(ctrl)
			tt.setupMocks(tenants)

			allocator := NewSubdomainAllocator(tenants, slog.Default())
			if tt.intn != nil {
				allocator.intn = tt.intn
			}

			got, err := allocator.Allocate(context.Background(), tt.tenantName, tt.requested)

			if tt.wantErr {
				require.Error(t, err)
				assert.Nil(t, got)
				if tt.checkErr != nil {
					tt.checkErr(t, err)
				}
				return
			}
			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Equal(t, tt.wantSubdomain, got.Subdomain)
			assert.Equal(t, tt.wantSuffixed, got.Suffixed)
		})
	}
}
