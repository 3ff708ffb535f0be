package config

import (
	"os"
	"strconv"
)

type Config struct {
	Port        string
	Environment string
	DatabaseURL string // Empty = in-memory store
	TablePrefix string
	CORSOrigins string
	// Auth (optional). When SupabaseURL is empty the server runs unauthenticated.
	SupabaseURL     string
	SupabaseJWKSURL string
	// Generation
	AnthropicAPIKey string
	DefaultProvider string
	DefaultModel    string
	DefaultAuthor   string
	// Logging
	LogDir      string
	LogMaxFiles int
	Debug       bool
}

func Load() *Config {
	env := getEnv("ENVIRONMENT", "dev")
	supabaseURL := getEnv("SUPABASE_URL", "")

	jwksURL := ""
	if supabaseURL != "" {
		jwksURL = supabaseURL + "/auth/v1/.well-known/jwks.json"
	}

	return &Config{
		Port:            getEnv("PORT", "8080"),
		Environment:     env,
		DatabaseURL:     getEnv("DATABASE_URL", ""),
		TablePrefix:     getTablePrefix(env),
		CORSOrigins:     getEnv("CORS_ORIGINS", "http://localhost:3000"),
		SupabaseURL:     supabaseURL,
		SupabaseJWKSURL: jwksURL,
		AnthropicAPIKey: getEnv("ANTHROPIC_API_KEY", ""),
		DefaultProvider: getEnv("DEFAULT_PROVIDER", "lorem"),
		DefaultModel:    getEnv("DEFAULT_MODEL", "lorem-fast"),
		DefaultAuthor:   getEnv("DEFAULT_AUTHOR", "admin"),
		LogDir:          getEnv("LOG_DIR", ""),
		LogMaxFiles:     getEnvInt("LOG_MAX_FILES", 10),
		Debug:           getEnv("DEBUG", getDefaultDebug(env)) == "true",
	}
}

// ClientConfig configures the docstudio front end
type ClientConfig struct {
	APIURL string
	Token  string
	Agent  string
	Debug  bool
}

func LoadClient() *ClientConfig {
	return &ClientConfig{
		APIURL: getEnv("DOCSTUDIO_API_URL", "http://localhost:8080"),
		Token:  getEnv("DOCSTUDIO_TOKEN", ""),
		Agent:  getEnv("DOCSTUDIO_AGENT", "CLAUDE"),
		Debug:  getEnv("DEBUG", "false") == "true",
	}
}

// getDefaultDebug returns the default debug setting based on environment
func getDefaultDebug(env string) string {
	if env == "prod" {
		return "false"
	}
	return "true"
}

// getTablePrefix returns the table prefix based on environment
func getTablePrefix(env string) string {
	if prefix := os.Getenv("TABLE_PREFIX"); prefix != "" {
		return prefix
	}

	switch env {
	case "prod":
		return "prod_"
	case "test":
		return "test_"
	default:
		return "dev_"
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return defaultValue
	}
	return n
}
