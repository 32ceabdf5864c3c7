// Package auth implements the credential gate: a YAML user file with
// bcrypt password hashes and a signed session cookie.
package auth

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// User is one entry of credentials.usernames.
type User struct {
	Name     string `yaml:"name"`
	Email    string `yaml:"email"`
	Password string `yaml:"password"` // bcrypt hash
}

// CookieConfig controls the session cookie.
type CookieConfig struct {
	Name       string `yaml:"name"`
	Key        string `yaml:"key"`
	ExpiryDays int    `yaml:"expiry_days"`
}

// Config is the credentials file.
//
//	credentials:
//	  usernames:
//	    jdoe:
//	      name: John Doe
//	      email: jdoe@example.com
//	      password: $2b$12$...
//	cookie:
//	  name: georepo_auth
//	  key: some-signing-key
//	  expiry_days: 30
type Config struct {
	Credentials struct {
		Usernames map[string]User `yaml:"usernames"`
	} `yaml:"credentials"`
	Cookie CookieConfig `yaml:"cookie"`
}

// ErrIncompleteConfig is wrapped by Validate failures.
var ErrIncompleteConfig = errors.New("authentication config missing required fields")

// LoadConfig reads and validates a credentials file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read auth config %s: %w", path, err)
	}
	return ParseConfig(data)
}

// ParseConfig decodes and validates credentials YAML.
func ParseConfig(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse auth config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that credentials and every cookie field are present.
func (c *Config) Validate() error {
	var missing []string
	if len(c.Credentials.Usernames) == 0 {
		missing = append(missing, "credentials")
	}
	if c.Cookie.Name == "" {
		missing = append(missing, "cookie.name")
	}
	if c.Cookie.Key == "" {
		missing = append(missing, "cookie.key")
	}
	if c.Cookie.ExpiryDays <= 0 {
		missing = append(missing, "cookie.expiry_days")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %v", ErrIncompleteConfig, missing)
	}
	return nil
}
