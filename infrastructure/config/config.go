package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Storage backends
const (
	StorageDynamoDB = "dynamodb"
	StorageMemory   = "memory"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	ServerAddress string `yaml:"server_address"`
	Environment   string `yaml:"environment"`

	// AWS configuration
	AWSRegion        string `yaml:"aws_region"`
	DynamoDBTable    string `yaml:"table_name"`
	UserIndexName    string `yaml:"user_index_name"` // GSI keyed on userId
	DynamoDBEndpoint string `yaml:"dynamodb_endpoint"`
	EventBusName     string `yaml:"event_bus_name"`

	// Storage backend, dynamodb or memory
	Storage string `yaml:"storage"`

	// Catalog file; the embedded catalog is used when empty
	CatalogPath string `yaml:"catalog_path"`

	// Lambda configuration
	IsLambda           bool   `yaml:"is_lambda"`
	LambdaFunctionName string `yaml:"-"`
	MetricsNamespace   string `yaml:"metrics_namespace"`

	// Logging
	LogLevel string `yaml:"log_level"`

	// HTTP behaviour
	AllowedOrigins     []string `yaml:"allowed_origins"`
	RateLimitPerMinute int      `yaml:"rate_limit_per_minute"`
	CacheTTLSeconds    int      `yaml:"cache_ttl_seconds"`

	// Client configuration
	APIBaseURL    string        `yaml:"api_base_url"`
	IdentityPath  string        `yaml:"identity_path"`
	ClientTimeout time.Duration `yaml:"client_timeout"`

	// Feature flags
	EnableMetrics bool `yaml:"enable_metrics"`
	EnableTracing bool `yaml:"enable_tracing"`
	EnableCORS    bool `yaml:"enable_cors"`
	Debug         bool `yaml:"debug"`
}

// Default returns the configuration used before any file or environment
// variable is applied
func Default() *Config {
	return &Config{
		ServerAddress:      ":8080",
		Environment:        "development",
		AWSRegion:          "us-east-1",
		DynamoDBTable:      "game-day-data",
		UserIndexName:      "user-index",
		EventBusName:       "",
		Storage:            StorageDynamoDB,
		MetricsNamespace:   "GolgariGameDay",
		LogLevel:           "info",
		AllowedOrigins:     []string{"*"},
		RateLimitPerMinute: 60,
		CacheTTLSeconds:    30,
		APIBaseURL:         "http://localhost:8080",
		ClientTimeout:      15 * time.Second,
		EnableCORS:         true,
	}
}

// LoadConfig loads configuration from defaults, then the YAML file named by
// CONFIG_FILE, then environment variables
func LoadConfig() (*Config, error) {
	cfg := Default()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	cfg.applyEnv()

	// Validate required configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Load is an alias for LoadConfig
func Load() (*Config, error) {
	return LoadConfig()
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.ServerAddress = getEnv("SERVER_ADDRESS", c.ServerAddress)
	c.Environment = getEnv("ENVIRONMENT", c.Environment)

	c.AWSRegion = getEnv("AWS_REGION", c.AWSRegion)
	c.DynamoDBTable = getEnv("TABLE_NAME", getEnv("DYNAMODB_TABLE", c.DynamoDBTable))
	c.UserIndexName = getEnv("USER_INDEX_NAME", c.UserIndexName)
	c.DynamoDBEndpoint = getEnv("DYNAMODB_ENDPOINT", c.DynamoDBEndpoint)
	c.EventBusName = getEnv("EVENT_BUS_NAME", c.EventBusName)
	c.Storage = strings.ToLower(getEnv("STORAGE", c.Storage))
	c.CatalogPath = getEnv("CATALOG_PATH", c.CatalogPath)

	// Lambda configuration
	c.LambdaFunctionName = getEnv("AWS_LAMBDA_FUNCTION_NAME", c.LambdaFunctionName)
	c.IsLambda = getEnvBool("IS_LAMBDA", c.IsLambda || c.LambdaFunctionName != "")
	c.MetricsNamespace = getEnv("METRICS_NAMESPACE", c.MetricsNamespace)

	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.AllowedOrigins = getEnvList("ALLOWED_ORIGINS", c.AllowedOrigins)
	c.RateLimitPerMinute = getEnvInt("RATE_LIMIT_PER_MINUTE", c.RateLimitPerMinute)
	c.CacheTTLSeconds = getEnvInt("CACHE_TTL_SECONDS", c.CacheTTLSeconds)

	c.APIBaseURL = getEnv("API_BASE_URL", c.APIBaseURL)
	c.IdentityPath = getEnv("IDENTITY_PATH", c.IdentityPath)
	c.ClientTimeout = getEnvDuration("CLIENT_TIMEOUT", c.ClientTimeout)

	c.EnableMetrics = getEnvBool("ENABLE_METRICS", c.EnableMetrics)
	c.EnableTracing = getEnvBool("ENABLE_TRACING", c.EnableTracing)
	c.EnableCORS = getEnvBool("ENABLE_CORS", c.EnableCORS)
	c.Debug = getEnvBool("DEBUG", c.Debug)
}

// Validate checks if all required configuration is present
func (c *Config) Validate() error {
	switch c.Storage {
	case StorageDynamoDB, StorageMemory:
	default:
		return fmt.Errorf("STORAGE must be %q or %q, got %q", StorageDynamoDB, StorageMemory, c.Storage)
	}

	if c.Storage == StorageDynamoDB && c.DynamoDBTable == "" {
		return fmt.Errorf("TABLE_NAME is required")
	}

	if c.IsProduction() {
		if c.Storage == StorageMemory {
			return fmt.Errorf("memory storage is not allowed in production")
		}
		if c.Debug {
			return fmt.Errorf("DEBUG must be off in production")
		}
	}

	if c.RateLimitPerMinute < 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must not be negative")
	}
	if c.ClientTimeout <= 0 {
		return fmt.Errorf("CLIENT_TIMEOUT must be positive")
	}

	return nil
}

// IsDevelopment checks if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction checks if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool gets a boolean environment variable with a default value
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}

// getEnvInt gets an integer environment variable with a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvDuration accepts Go durations ("20s") or whole seconds ("20")
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}

// getEnvList splits a comma separated variable
func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
