package commerce

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// DefaultBaseURL is where the commerce API listens in a local setup
const DefaultBaseURL = "http://localhost:8080/api"

// ErrConfigInvalid is returned when the client configuration fails validation
var ErrConfigInvalid = errors.New("commerce: invalid configuration")

var configValidator = validator.New(validator.WithRequiredStructEnabled())

// Config holds configuration for the commerce API client
type Config struct {
	// BaseURL is the API root, for example http://localhost:8080/api
	BaseURL string `validate:"required,http_url"`
	// Timeout bounds every HTTP request
	Timeout time.Duration `validate:"gte=0"`
}

// NewConfig creates a configuration with defaults
func NewConfig(baseURL string) *Config {
	return &Config{
		BaseURL: baseURL,
		Timeout: 10 * time.Second,
	}
}

// Validate fills defaults and validates the configuration
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.Timeout == 0 {
		c.Timeout = 10 * time.Second
	}
	if err := configValidator.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrConfigInvalid, err)
	}
	return nil
}
