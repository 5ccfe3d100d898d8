package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	Port            string        `json:"port" validate:"required,numeric"`
	Env             string        `json:"env"`
	ShutdownTimeout time.Duration `json:"shutdown_timeout"`
	HTTPTimeout     time.Duration `json:"http_timeout" validate:"gt=0"`

	// Content repository
	PrismicEndpoint    string `json:"prismic_endpoint" validate:"required,url"`
	PrismicAccessToken string `json:"-"`
	PostType           string `json:"post_type" validate:"required"`
	PageSize           int    `json:"page_size" validate:"min=1,max=100"`
	Locale             string `json:"locale" validate:"required"`

	// Site metadata, read from SiteConfigPath when the file exists
	SiteConfigPath string `json:"site_config_path"`
	Site           Site   `json:"site"`

	// Static export
	OutputDir string `json:"output_dir" validate:"required"`

	// CloudFlare R2 Configuration
	R2Endpoint  string `json:"r2_endpoint" validate:"omitempty,url"`
	R2AccessKey string `json:"-"`
	R2SecretKey string `json:"-"`
	R2Bucket    string `json:"r2_bucket"`
	R2AccountID string `json:"r2_account_id"`

	// Logging
	LogLevel string `json:"log_level" validate:"oneof=debug info warn error fatal panic disabled"`
	LogFile  string `json:"log_file"`

	// Bearer token required by /metrics; empty leaves it open
	MetricsToken string `json:"-"`
}

// Site is the branding shown by the page templates.
type Site struct {
	Name          string `yaml:"name" json:"name" validate:"required"`
	Description   string `yaml:"description" json:"description"`
	LoadMoreLabel string `yaml:"load_more_label" json:"load_more_label" validate:"required"`

	// BaseURL is the origin of the live server, without a trailing slash.
	// When set, page links and the load-more request are absolute to it.
	BaseURL string `yaml:"base_url" json:"base_url" validate:"omitempty,url"`
}

// Load loads configuration from environment variables and validates it
func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: Error loading .env file: %v", err)
	}

	cfg := &Config{
		// Server configuration
		Port:            getEnv("PORT", "8080"),
		Env:             getEnv("APP_ENV", "development"),
		ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		HTTPTimeout:     getEnvAsDuration("HTTP_TIMEOUT", 30*time.Second),

		// Content repository
		PrismicEndpoint:    strings.TrimRight(getEnv("PRISMIC_API_ENDPOINT", ""), "/"),
		PrismicAccessToken: getEnv("PRISMIC_ACCESS_TOKEN", ""),
		PostType:           getEnv("POST_TYPE", "posts"),
		PageSize:           getEnvAsInt("PAGE_SIZE", 2),
		Locale:             getEnv("LOCALE", "en"),

		SiteConfigPath: getEnv("SITE_CONFIG", "site.yaml"),
		OutputDir:      getEnv("OUTPUT_DIR", "public"),

		// CloudFlare R2 Configuration
		R2Endpoint:  getEnv("R2_ENDPOINT", ""),
		R2AccessKey: getEnv("R2_ACCESS_KEY", ""),
		R2SecretKey: getEnv("R2_SECRET_ACCESS_KEY", ""),
		R2Bucket:    getEnv("R2_BUCKET", "spacetraveling"),
		R2AccountID: getEnv("CLOUDFLARE_ACCOUNT_ID", ""),

		// Logging
		LogLevel: strings.ToLower(getEnv("LOG_LEVEL", "info")),
		LogFile:  getEnv("LOG_FILE", ""),

		MetricsToken: getEnv("METRICS_TOKEN", ""),
	}

	site, err := loadSite(cfg.SiteConfigPath)
	if err != nil {
		return nil, err
	}
	if baseURL := getEnv("SITE_URL", ""); baseURL != "" {
		site.BaseURL = baseURL
	}
	site.BaseURL = strings.TrimRight(site.BaseURL, "/")
	cfg.Site = site

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks the struct tags of the configuration
func (c *Config) Validate() error {
	return validator.New().Struct(c)
}

// R2Enabled reports whether enough R2 settings are present to publish exports.
func (c *Config) R2Enabled() bool {
	return c.R2URL() != "" && c.R2AccessKey != "" && c.R2SecretKey != ""
}

// R2URL returns the S3-compatible endpoint of the R2 account.
func (c *Config) R2URL() string {
	if c.R2Endpoint != "" {
		return c.R2Endpoint
	}
	if c.R2AccountID != "" {
		return fmt.Sprintf("https://%s.r2.cloudflarestorage.com", c.R2AccountID)
	}
	return ""
}

// DefaultSite is used when no site file exists; a file only overrides the fields it sets.
func DefaultSite() Site {
	return Site{
		Name:          "spacetraveling",
		LoadMoreLabel: "Load more posts",
	}
}

func loadSite(path string) (Site, error) {
	site := DefaultSite()
	if path == "" {
		return site, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return site, nil
	}
	if err != nil {
		return site, fmt.Errorf("failed to read site config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &site); err != nil {
		return site, fmt.Errorf("failed to parse site config %s: %w", path, err)
	}
	return site, nil
}

// Helper functions for environment variable handling
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(name string, defaultVal int) int {
	valueStr := getEnv(name, "")
	if valueStr == "" {
		return defaultVal
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Invalid %s value: %v, using default: %d", name, err, defaultVal)
		return defaultVal
	}
	return value
}

func getEnvAsDuration(name string, defaultVal time.Duration) time.Duration {
	valueStr := getEnv(name, "")
	if valueStr == "" {
		return defaultVal
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Printf("Invalid %s value: %v, using default: %v", name, err, defaultVal)
		return defaultVal
	}
	return value
}
