// Package config provides centralized configuration management.
//
// Configuration is resolved in order (later overrides earlier):
//  1. .env file in the working directory (if present)
//  2. Environment variables
//  3. YAML file passed explicitly (${VAR} references are expanded)
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// ConfigError reports an invalid or incomplete configuration. It is fatal
// at startup, before any matching occurs.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration: %s: %s", e.Field, e.Reason)
}

// Config represents the entire application configuration.
type Config struct {
	YNAB    YNABConfig    `yaml:"ynab"`
	Amazon  AmazonConfig  `yaml:"amazon"`
	OpenAI  OpenAIConfig  `yaml:"openai"`
	Sync    SyncConfig    `yaml:"sync"`
	Cache   CacheConfig   `yaml:"cache"`
	Logging LoggingConfig `yaml:"logging"`
	API     APIConfig     `yaml:"api"`
}

// YNABConfig holds budgeting-service credentials and selection settings.
type YNABConfig struct {
	APIKey   string `envconfig:"YNAB_API_KEY" yaml:"api_key"`
	BudgetID string `envconfig:"YNAB_BUDGET_ID" yaml:"budget_id"`

	// PayeeNameToBeProcessed selects transactions still needing a memo;
	// PayeeNameProcessingCompleted tags them once written.
	PayeeNameToBeProcessed       string `envconfig:"YNAB_PAYEE_NAME_TO_BE_PROCESSED" default:"Amazon - Needs Memo" yaml:"payee_name_to_be_processed"`
	PayeeNameProcessingCompleted string `envconfig:"YNAB_PAYEE_NAME_PROCESSING_COMPLETED" default:"Amazon" yaml:"payee_name_processing_completed"`

	UseMarkdown      bool     `envconfig:"YNAB_USE_MARKDOWN" yaml:"use_markdown"`
	MatchEmptyMemo   bool     `envconfig:"MATCH_EMPTY_MEMO" yaml:"match_empty_memo"`
	ApprovedStatuses []string `envconfig:"YNAB_APPROVED_STATUSES" default:"approved,unapproved" yaml:"approved_statuses"`
}

// AmazonConfig holds e-commerce account settings.
type AmazonConfig struct {
	User            string   `envconfig:"AMAZON_USER" yaml:"user"`
	Password        string   `envconfig:"AMAZON_PASSWORD" yaml:"password"`
	OTPSecretKey    string   `envconfig:"AMAZON_OTP_SECRET_KEY" yaml:"otp_secret_key"`
	Debug           bool     `envconfig:"AMAZON_DEBUG" yaml:"debug"`
	FullDetails     bool     `envconfig:"AMAZON_FULL_DETAILS" default:"true" yaml:"full_details"`
	TransactionDays int      `envconfig:"TRANSACTION_DAYS" default:"31" yaml:"transaction_days"`
	OrderYears      []string `envconfig:"AMAZON_ORDER_YEARS" yaml:"order_years"`
}

// OpenAIConfig holds the optional memo summarization settings.
type OpenAIConfig struct {
	APIKey             string `envconfig:"OPENAI_API_KEY" yaml:"api_key"`
	Model              string `envconfig:"OPENAI_MODEL" default:"gpt-4o" yaml:"model"`
	UseAISummarization bool   `envconfig:"USE_AI_SUMMARIZATION" yaml:"use_ai_summarization"`
}

// SyncConfig holds matching behavior settings.
type SyncConfig struct {
	DateMismatchToleranceDays   int  `envconfig:"DATE_MISMATCH_TOLERANCE_DAYS" yaml:"date_mismatch_tolerance_days"`
	AutoAcceptDateMismatch      bool `envconfig:"AUTO_ACCEPT_DATE_MISMATCH" yaml:"auto_accept_date_mismatch"`
	NonInteractive              bool `envconfig:"NON_INTERACTIVE" yaml:"non_interactive"`
	SuppressPartialOrderWarning bool `envconfig:"SUPPRESS_PARTIAL_ORDER_WARNING" yaml:"suppress_partial_order_warning"`
}

// CacheConfig holds the purchase snapshot cache settings.
type CacheConfig struct {
	Path string        `envconfig:"CACHE_PATH" yaml:"path"`
	TTL  time.Duration `envconfig:"CACHE_TTL" default:"2h" yaml:"ttl"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `envconfig:"LOG_LEVEL" default:"info" yaml:"level"`
	Format string `envconfig:"LOG_FORMAT" default:"text" yaml:"format"`
}

// APIConfig holds HTTP API server settings.
type APIConfig struct {
	Port           int      `envconfig:"API_PORT" default:"8080" yaml:"port"`
	AllowedOrigins []string `envconfig:"API_ALLOWED_ORIGINS" default:"http://localhost:3000" yaml:"allowed_origins"`
}

// Load reads and parses a YAML config file, expanding ${VAR} references.
// Values absent from the file keep their environment-derived values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg, err := LoadFromEnv()
	if err != nil {
		return nil, err
	}

	expanded := os.ExpandEnv(string(data))
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return cfg, nil
}

// LoadFromEnv loads configuration from a .env file (if present) and the
// environment.
func LoadFromEnv() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if cfg.Cache.Path == "" {
		cfg.Cache.Path = defaultCachePath()
	}

	return &cfg, nil
}

// LoadOrEnv loads from the given YAML file when path is non-empty, falling
// back to environment variables.
func LoadOrEnv(path string) (*Config, error) {
	if path != "" {
		return Load(path)
	}
	return LoadFromEnv()
}

// Validate checks that required credentials are present and that enabled
// features have the settings they depend on.
func (c *Config) Validate() error {
	if c.YNAB.APIKey == "" {
		return &ConfigError{Field: "YNAB_API_KEY", Reason: "required"}
	}
	if c.YNAB.BudgetID == "" {
		return &ConfigError{Field: "YNAB_BUDGET_ID", Reason: "required"}
	}
	if c.Amazon.User == "" {
		return &ConfigError{Field: "AMAZON_USER", Reason: "required"}
	}
	if c.Amazon.Password == "" {
		return &ConfigError{Field: "AMAZON_PASSWORD", Reason: "required"}
	}
	if c.OpenAI.UseAISummarization && c.OpenAI.APIKey == "" {
		return &ConfigError{
			Field:  "OPENAI_API_KEY",
			Reason: "required when AI summarization is enabled",
		}
	}
	for _, status := range c.YNAB.ApprovedStatuses {
		if status != "approved" && status != "unapproved" {
			return &ConfigError{
				Field:  "YNAB_APPROVED_STATUSES",
				Reason: fmt.Sprintf("unknown status %q", status),
			}
		}
	}
	return nil
}

func defaultCachePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "transactions.db"
	}
	return filepath.Join(home, ".cache", "amazon-ynab-sync", "transactions.db")
}
