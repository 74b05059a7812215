package integration

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"provisioning-service/app/domain"
	"provisioning-service/app/driver/postgres"
	"provisioning-service/app/utils/logger"
)

func TestDatabaseIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()

	require.NoError(t, WaitForDatabase(ctx), "Database should be ready")

	pool, err := TestDatabaseConnection()
	require.NoError(t, err, "Should connect to test database")
	defer pool.Close()

	require.NoError(t, pool.Ping(ctx), "Should ping database successfully")

	var result int
	err = pool.QueryRow(ctx, "SELECT 1").Scan(&result)
	require.NoError(t, err, "Should execute simple query")
	assert.Equal(t, 1, result, "Query result should be 1")
}

func TestTenantRepositoryIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()

	require.NoError(t, WaitForDatabase(ctx), "Database should be ready")
	require.NoError(t, CleanupTestData(ctx))
	t.Cleanup(func() { _ = CleanupTestData(ctx) })

	pool, err := TestDatabaseConnection()
	require.NoError(t, err, "Should connect to test database")
	defer pool.Close()

	testLogger, err := logger.New("debug")
	require.NoError(t, err, "Should create logger")

	tenants := postgres.NewTenantRepository(pool, testLogger)

	t.Run("create and look up a tenant", func(t *testing.T) {
		tenant, err := domain.NewTenantRecord("Integration Org", "integration-org", "admin@integration.example.com")
		require.NoError(t, err)

		require.NoError(t, tenants.Create(ctx, tenant), "Should insert tenant")

		exists, err := tenants.SubdomainExists(ctx, "integration-org")
		require.NoError(t, err)
		assert.True(t, exists, "Subdomain should exist after insert")

		found, err := tenants.GetBySubdomain(ctx, "integration-org")
		require.NoError(t, err)
		assert.Equal(t, tenant.ID, found.ID)
		assert.Equal(t, "Integration Org", found.Name)
	})

	t.Run("duplicate subdomain surfaces the unique violation", func(t *testing.T) {
		duplicate, err := domain.NewTenantRecord("Other Org", "integration-org", "other@integration.example.com")
		require.NoError(t, err)

		err = tenants.Create(ctx, duplicate)
		require.Error(t, err, "Second insert with the same subdomain should fail")
		assert.True(t, domain.IsSubdomainTaken(err), "Failure should map to the taken-subdomain error")
	})

	t.Run("delete removes the tenant", func(t *testing.T) {
		tenant, err := domain.NewTenantRecord("Short Lived", "short-lived-org", "shortlived@integration.example.com")
		require.NoError(t, err)
		require.NoError(t, tenants.Create(ctx, tenant))

		require.NoError(t, tenants.Delete(ctx, tenant.ID))

		exists, err := tenants.SubdomainExists(ctx, "short-lived-org")
		require.NoError(t, err)
		assert.False(t, exists, "Subdomain should be free after delete")
	})
}

func TestUserRepositoryIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()

	require.NoError(t, WaitForDatabase(ctx), "Database should be ready")
	require.NoError(t, CleanupTestData(ctx))
	t.Cleanup(func() { _ = CleanupTestData(ctx) })

	pool, err := TestDatabaseConnection()
	require.NoError(t, err, "Should connect to test database")
	defer pool.Close()

	testLogger, err := logger.New("debug")
	require.NoError(t, err, "Should create logger")

	tenants := postgres.NewTenantRepository(pool, testLogger)
	users := postgres.NewUserRepository(pool, testLogger)

	tenant, err := domain.NewTenantRecord("User Org", "user-org", "users@integration.example.com")
	require.NoError(t, err)
	require.NoError(t, tenants.Create(ctx, tenant))

	identityID := uuid.New()
	email := "member@integration.example.com"

	t.Run("create, list and relink a user", func(t *testing.T) {
		user, err := domain.NewAdminUser(tenant.ID, identityID, email, "Inte", "Gration")
		require.NoError(t, err)

		require.NoError(t, users.Create(ctx, user), "Should insert user")

		rows, err := users.ListByEmail(ctx, email)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		require.NotNil(t, rows[0].AuthIdentityID)
		assert.Equal(t, identityID, *rows[0].AuthIdentityID)

		byIdentity, err := users.GetByAuthIdentityID(ctx, identityID)
		require.NoError(t, err)
		require.NotNil(t, byIdentity)
		assert.Equal(t, user.ID, byIdentity.ID)

		newIdentityID := uuid.New()
		updated, err := users.SetAuthIdentityID(ctx, user.ID, newIdentityID)
		require.NoError(t, err)
		require.NotNil(t, updated.AuthIdentityID)
		assert.Equal(t, newIdentityID, *updated.AuthIdentityID)
	})

	t.Run("missing identity reference reads as absent, not as an error", func(t *testing.T) {
		missing, err := users.GetByAuthIdentityID(ctx, uuid.New())
		require.NoError(t, err)
		assert.Nil(t, missing)

		rows, err := users.ListByEmail(ctx, "nobody@integration.example.com")
		require.NoError(t, err)
		assert.Empty(t, rows)
	})
}

func TestKratosIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()

	require.NoError(t, WaitForKratos(ctx), "Kratos should be ready")

	client, err := TestKratosClient()
	require.NoError(t, err, "Should create Kratos client")

	assert.NoError(t, client.HealthCheck(ctx), "Kratos health check should pass")
}
