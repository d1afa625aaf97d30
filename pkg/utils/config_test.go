package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func validConfig() *Config {
	return &Config{
		App:      AppConfig{Name: "beauty-orders"},
		Database: DatabaseConfig{Name: "orders", User: "app"},
		JWT:      JWTConfig{Secret: strings.Repeat("k", 32), ExpiryMinutes: 30},
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"missing db name", func(c *Config) { c.Database.Name = "" }, "DB_NAME"},
		{"missing secret", func(c *Config) { c.JWT.Secret = "" }, "JWT_SECRET is required"},
		{"short secret", func(c *Config) { c.JWT.Secret = "short" }, "at least 32 bytes"},
		{"short secret in debug", func(c *Config) { c.JWT.Secret = "short"; c.App.Debug = true }, ""},
		{"zero expiry", func(c *Config) { c.JWT.ExpiryMinutes = 0 }, "JWT_EXPIRY_MINUTES"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.mutate(c)

			err := c.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestDatabaseURL(t *testing.T) {
	c := DatabaseConfig{Host: "db", Port: "5432", Name: "orders", User: "app", Password: "p@ss word", SSLMode: "disable"}
	assert.Equal(t, "pgx5://app:p%40ss%20word@db:5432/orders?sslmode=disable", c.URL("pgx5"))
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"http://a", "http://b"}, splitList(" http://a, ,http://b "))
	assert.Nil(t, splitList(""))
}
