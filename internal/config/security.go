// Package config loads the YAML security configuration: the auth
// provider, password policy, public endpoints, and JWT settings.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SecurityConfig mirrors the security section of config/security.yaml.
type SecurityConfig struct {
	Security struct {
		Auth struct {
			Provider string `yaml:"provider"`
			UserList struct {
				MinPasswordLength int      `yaml:"min_password_length"`
				WeakPasswords     []string `yaml:"weak_passwords"`
			} `yaml:"user_list"`
		} `yaml:"auth"`
		PublicEndpoints []string `yaml:"public_endpoints"`
		JWT             struct {
			SecretEnv   string `yaml:"secret_env"`
			ExpiryHours int    `yaml:"expiry_hours"`
		} `yaml:"jwt"`
	} `yaml:"security"`
}

// LoadSecurityConfig reads and validates the YAML file at path. The path
// comes from a CLI flag or a hardcoded default, never from user input.
func LoadSecurityConfig(path string) (*SecurityConfig, error) {
	// #nosec G304 -- path is provided by trusted source (CLI arg or config), not user input
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg SecurityConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

func (c *SecurityConfig) validate() error {
	if c.Security.Auth.Provider == "" {
		return fmt.Errorf("auth provider is required")
	}

	if c.Security.Auth.Provider == "user-list" {
		minLen := c.Security.Auth.UserList.MinPasswordLength
		if minLen <= 0 {
			return fmt.Errorf("min_password_length must be positive")
		}
		if minLen < 8 {
			return fmt.Errorf("min_password_length must be at least 8")
		}
	}

	if c.Security.JWT.SecretEnv == "" {
		return fmt.Errorf("jwt secret_env is required")
	}
	if c.Security.JWT.ExpiryHours <= 0 {
		return fmt.Errorf("jwt expiry_hours must be positive")
	}
	return nil
}

func (c *SecurityConfig) GetAuthProvider() string {
	return c.Security.Auth.Provider
}

func (c *SecurityConfig) GetMinPasswordLength() int {
	return c.Security.Auth.UserList.MinPasswordLength
}

func (c *SecurityConfig) GetWeakPasswords() []string {
	return c.Security.Auth.UserList.WeakPasswords
}

func (c *SecurityConfig) GetPublicEndpoints() []string {
	return c.Security.PublicEndpoints
}

func (c *SecurityConfig) GetJWTSecretEnv() string {
	return c.Security.JWT.SecretEnv
}

func (c *SecurityConfig) GetJWTExpiryHours() int {
	return c.Security.JWT.ExpiryHours
}
