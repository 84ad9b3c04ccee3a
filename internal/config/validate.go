package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Validate checks field constraints and cross-field consistency.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if c.Vector.Dimensions != c.Embedding.Dimensions {
		return fmt.Errorf("invalid config: vector.dimensions (%d) must equal embedding.dimensions (%d)",
			c.Vector.Dimensions, c.Embedding.Dimensions)
	}
	return nil
}
