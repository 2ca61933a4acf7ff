package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		envVars map[string]string
		wantErr bool
		check   func(*testing.T, *Config)
	}{
		{
			name: "default configuration",
			envVars: map[string]string{
				"SECRET_KEY": "test-secret",
			},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "development", cfg.Environment)
				assert.Equal(t, "0.0.0.0", cfg.Server.Host)
				assert.Equal(t, 8000, cfg.Server.Port)
				assert.Equal(t, "0.0.0.0:8000", cfg.Server.Address())
				assert.Equal(t, "localhost", cfg.Database.Host)
				assert.Equal(t, 5432, cfg.Database.Port)
				assert.Equal(t, 30*time.Minute, cfg.Auth.AccessTokenTTL)
				assert.Equal(t, 7*24*time.Hour, cfg.Auth.RefreshTokenTTL)
				assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORS.AllowedOrigins)
				assert.Equal(t, "info", cfg.Observability.LogLevel)
				assert.Equal(t, "json", cfg.Observability.LogFormat)
			},
		},
		{
			name: "database url takes precedence",
			envVars: map[string]string{
				"SECRET_KEY":   "test-secret",
				"DATABASE_URL": "postgres://app:pw@db.internal:5433/prices",
				"DB_HOST":      "ignored.example.com",
			},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "postgres://app:pw@db.internal:5433/prices", cfg.Database.DSN())
				assert.NotContains(t, cfg.Database.LogString(), "pw")
				assert.Contains(t, cfg.Database.LogString(), "db.internal")
			},
		},
		{
			name: "custom ttls and origins",
			envVars: map[string]string{
				"SECRET_KEY":        "test-secret",
				"ACCESS_TOKEN_TTL":  "15m",
				"REFRESH_TOKEN_TTL": "48h",
				"CORS_ORIGINS":      "https://a.example.com,https://b.example.com",
			},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 15*time.Minute, cfg.Auth.AccessTokenTTL)
				assert.Equal(t, 48*time.Hour, cfg.Auth.RefreshTokenTTL)
				assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORS.AllowedOrigins)
			},
		},
		{
			name:    "missing secret fails validation",
			envVars: map[string]string{},
			wantErr: true,
		},
		{
			name: "production requires admin password",
			envVars: map[string]string{
				"SECRET_KEY":  "test-secret",
				"ENVIRONMENT": "production",
			},
			wantErr: true,
		},
		{
			name: "production with admin password",
			envVars: map[string]string{
				"SECRET_KEY":     "test-secret",
				"ENVIRONMENT":    "production",
				"ADMIN_EMAIL":    "admin@example.com",
				"ADMIN_PASSWORD": "bootstrap-password",
			},
			check: func(t *testing.T, cfg *Config) {
				assert.True(t, cfg.IsProduction())
				assert.False(t, cfg.IsDevelopment())
				assert.Equal(t, "admin@example.com", cfg.Auth.AdminEmail)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}

			cfg, err := New()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tt.check != nil {
				tt.check(t, cfg)
			}
		})
	}
}

func TestDatabaseConfig_DSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "postgres",
		Password: "secret",
		Database: "priceoptimizer",
		SSLMode:  "disable",
	}

	dsn := cfg.DSN()
	assert.Equal(t, "host=localhost port=5432 user=postgres password=secret dbname=priceoptimizer sslmode=disable", dsn)
	assert.NotContains(t, cfg.LogString(), "secret")
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Environment: "development",
			Database:    DatabaseConfig{Host: "localhost", User: "postgres", Database: "priceoptimizer"},
			Auth: AuthConfig{
				Secret:          "test-secret",
				AccessTokenTTL:  30 * time.Minute,
				RefreshTokenTTL: 7 * 24 * time.Hour,
			},
			Observability: ObservabilityConfig{LogLevel: "info"},
		}
	}

	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, valid().Validate())
	})

	t.Run("zero access ttl", func(t *testing.T) {
		cfg := valid()
		cfg.Auth.AccessTokenTTL = 0
		assert.Error(t, cfg.Validate())
	})

	t.Run("missing database", func(t *testing.T) {
		cfg := valid()
		cfg.Database = DatabaseConfig{}
		assert.Error(t, cfg.Validate())
	})
}
