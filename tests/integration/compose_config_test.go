package integration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// ComposeConfig mirrors the parts of the test compose file the integration
// suite depends on. Drift between the file and the constants in config.go
// shows up here instead of as confusing connection failures.
type ComposeConfig struct {
	Services map[string]ComposeService `yaml:"services"`
}

type ComposeService struct {
	Image       string            `yaml:"image"`
	Environment map[string]string `yaml:"environment"`
	Ports       []string          `yaml:"ports"`
}

func loadComposeConfig(t *testing.T) *ComposeConfig {
	t.Helper()

	data, err := os.ReadFile(filepath.Join("..", "..", "docker-compose.test.yml"))
	require.NoError(t, err, "Should read docker-compose.test.yml")

	var config ComposeConfig
	require.NoError(t, yaml.Unmarshal(data, &config), "Should parse compose file")
	return &config
}

func TestComposeConfigMatchesTestConstants(t *testing.T) {
	config := loadComposeConfig(t)

	postgres, ok := config.Services["provisioning-postgres"]
	require.True(t, ok, "Compose file should define the postgres service")

	assert.Equal(t, TestPostgresDB, postgres.Environment["POSTGRES_DB"])
	assert.Equal(t, TestPostgresUser, postgres.Environment["POSTGRES_USER"])
	assert.Equal(t, TestPostgresPassword, postgres.Environment["POSTGRES_PASSWORD"])
	require.NotEmpty(t, postgres.Ports)
	assert.Equal(t, TestPostgresPort+":5432", postgres.Ports[0], "Host port should match the test connection constant")
}

func TestComposeConfigExposesKratosPorts(t *testing.T) {
	config := loadComposeConfig(t)

	kratos, ok := config.Services["kratos"]
	require.True(t, ok, "Compose file should define the kratos service")

	assert.Contains(t, kratos.Ports, "4433:4433", "Public API port should be published")
	assert.Contains(t, kratos.Ports, "4434:4434", "Admin API port should be published")
}
