package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hubertnosek100/hmediator/internal/infrastructure/config"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "hmediator.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	// Act
	cfg, err := config.LoadConfig("")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.Database.Type)
	assert.Equal(t, "hmediator.db", cfg.Database.Path)
	assert.Equal(t, 25, cfg.Database.Pool.MaxOpen)
	assert.Equal(t, 5*time.Minute, cfg.Database.Pool.MaxLifetime)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
	assert.Equal(t, "stderr", cfg.Logging.Output)
	assert.False(t, cfg.Metrics.Enabled)
	assert.Equal(t, "hmediator", cfg.Metrics.Namespace)
	assert.Equal(t, "package", cfg.Mediator.Scope)
	assert.False(t, cfg.Mediator.EagerAmbiguityCheck)
}

func TestLoadConfig_FromFile(t *testing.T) {
	// Arrange
	path := writeConfigFile(t, `
database:
  type: sqlite
  path: ":memory:"
logging:
  level: debug
  format: json
metrics:
  enabled: true
  namespace: myapp
mediator:
  scope: global
  eager_ambiguity_check: true
  validate_on_startup: true
`)

	// Act
	cfg, err := config.LoadConfig(path)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, ":memory:", cfg.Database.Path)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, "myapp", cfg.Metrics.Namespace)
	assert.Equal(t, "global", cfg.Mediator.Scope)
	assert.True(t, cfg.Mediator.EagerAmbiguityCheck)
	assert.True(t, cfg.Mediator.ValidateOnStartup)
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	// Arrange
	path := writeConfigFile(t, `
mediator:
  scope: package
logging:
  level: warn
`)
	t.Setenv("HM_MEDIATOR_SCOPE", "global")
	t.Setenv("HM_LOGGING_LEVEL", "error")
	t.Setenv("HM_METRICS_ENABLED", "true")

	// Act
	cfg, err := config.LoadConfig(path)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "global", cfg.Mediator.Scope)
	assert.Equal(t, "error", cfg.Logging.Level)
	assert.True(t, cfg.Metrics.Enabled)
}

func TestLoadConfig_DatabaseURL(t *testing.T) {
	// Arrange
	t.Setenv("HM_DATABASE_TYPE", "postgres")
	t.Setenv("DATABASE_URL", "postgres://hm:secret@db:5432/hm")

	// Act
	cfg, err := config.LoadConfig("")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "postgres", cfg.Database.Type)
	assert.Equal(t, "postgres://hm:secret@db:5432/hm", cfg.Database.URL)
}

func TestLoadConfig_RejectsUnknownScope(t *testing.T) {
	// Arrange
	t.Setenv("HM_MEDIATOR_SCOPE", "assembly")

	// Act
	_, err := config.LoadConfig("")

	// Assert
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Config.Mediator.Scope")
	assert.Contains(t, err.Error(), "handler_scope")
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	// Act
	_, err := config.LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))

	// Assert
	assert.Error(t, err)
}

func TestLoadConfigOrDefault_FallsBackOnError(t *testing.T) {
	// Arrange
	t.Setenv("HM_LOGGING_FORMAT", "xml")

	// Act
	cfg := config.LoadConfigOrDefault("")

	// Assert
	assert.Equal(t, "text", cfg.Logging.Format)
	assert.Equal(t, "package", cfg.Mediator.Scope)
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *config.Config)
		wantErr string
	}{
		{name: "defaults are valid", mutate: func(*config.Config) {}},
		{
			name:    "file output needs a path",
			mutate:  func(cfg *config.Config) { cfg.Logging.Output = "file" },
			wantErr: "required_if",
		},
		{
			name:    "unknown database type",
			mutate:  func(cfg *config.Config) { cfg.Database.Type = "mysql" },
			wantErr: "oneof",
		},
		{
			name:    "namespace must be alphanumeric",
			mutate:  func(cfg *config.Config) { cfg.Metrics.Namespace = "my-app" },
			wantErr: "alphanum",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{}
			config.SetDefaults(cfg)
			tt.mutate(cfg)

			err := config.ValidateConfig(cfg)

			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestNewValidator_RegistersHandlerScope(t *testing.T) {
	type scoped struct {
		Scope string `validate:"handler_scope"`
	}

	// Arrange
	v, err := config.NewValidator()
	require.NoError(t, err)

	// Act
	validErr := v.Validate(&scoped{Scope: "global"})
	invalidErr := v.Validate(&scoped{Scope: "assembly"})

	// Assert
	assert.NoError(t, validErr)
	require.Error(t, invalidErr)
	assert.Contains(t, invalidErr.Error(), "handler_scope")
}
