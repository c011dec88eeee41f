package config

import (
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Validate performs business-rule validation on the loaded configuration.
// Load calls it automatically.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	if c.Database.Path == "" {
		return fmt.Errorf("database.path is required")
	}
	if err := c.Auth.validate(); err != nil {
		return fmt.Errorf("auth: %w", err)
	}
	if c.RateLimit.AuthRPS <= 0 || c.RateLimit.AuthBurst <= 0 {
		return fmt.Errorf("rate_limit: auth_rps and auth_burst must be > 0")
	}
	switch strings.ToLower(c.Log.Format) {
	case "json", "text":
	default:
		return fmt.Errorf("log.format must be json or text (got %q)", c.Log.Format)
	}
	return nil
}

func (a *AuthConfig) validate() error {
	if len(a.JWTSecret) < 32 {
		return fmt.Errorf("jwt_secret must be at least 32 characters (got %d)", len(a.JWTSecret))
	}
	if a.AccessTokenTTL <= 0 || a.RefreshTokenTTL <= 0 {
		return fmt.Errorf("token TTLs must be > 0")
	}
	if a.AccessTokenTTL >= a.RefreshTokenTTL {
		return fmt.Errorf("access_token_ttl must be shorter than refresh_token_ttl")
	}
	if a.BcryptCost < bcrypt.MinCost || a.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("bcrypt_cost must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}
	if a.ResetCodeTTL <= 0 {
		return fmt.Errorf("reset_code_ttl must be > 0")
	}
	return nil
}
