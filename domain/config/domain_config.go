package config

import "fmt"

// DomainConfig holds the business limits applied to feedback and statistics
type DomainConfig struct {
	// Comment constraints
	MaxCommentLength  int
	MaxUsernameLength int

	// Statistics
	TopListSize int

	// Read limits
	MaxItemsPerScan int32
}

// DefaultDomainConfig returns the default domain configuration
func DefaultDomainConfig() *DomainConfig {
	return &DomainConfig{
		MaxCommentLength:  2000,
		MaxUsernameLength: 50,

		TopListSize: 10,

		MaxItemsPerScan: 500,
	}
}

// ProductionDomainConfig returns production-specific configuration
func ProductionDomainConfig() *DomainConfig {
	config := DefaultDomainConfig()

	// Tighter text limits for the public deployment
	config.MaxCommentLength = 1000

	return config
}

// DevelopmentDomainConfig returns development-specific configuration
func DevelopmentDomainConfig() *DomainConfig {
	config := DefaultDomainConfig()

	// Small pages exercise scan pagination locally
	config.MaxItemsPerScan = 25

	return config
}

// LoadDomainConfig loads domain configuration based on environment
func LoadDomainConfig(environment string) *DomainConfig {
	switch environment {
	case "production":
		return ProductionDomainConfig()
	case "development":
		return DevelopmentDomainConfig()
	default:
		return DefaultDomainConfig()
	}
}

// Validate checks if the configuration is valid
func (c *DomainConfig) Validate() error {
	if c.TopListSize <= 0 {
		return fmt.Errorf("top list size must be positive")
	}
	if c.MaxCommentLength <= 0 || c.MaxUsernameLength <= 0 {
		return fmt.Errorf("text limits must be positive")
	}
	return nil
}
