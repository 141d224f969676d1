package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds the application configuration. It is loaded once in main and
// passed down to the components that need it.
type Config struct {
	Port              string
	StaticDir         string
	FieldDefaultsFile string
	BodyLimitMB       int
	LogLevel          string
	CORSOrigins       string

	OpenAIAPIKey    string
	OpenAIBaseURL   string
	OpenAIModel     string
	PrefillRequired bool

	SupabaseURL    string
	SupabaseKey    string
	SupabaseBucket string
	SupabaseTable  string
}

// Load reads an optional .env file and then the process environment.
func Load() *Config {
	// A missing .env is the normal case outside local development.
	_ = godotenv.Load()

	return &Config{
		Port:              getEnv("PORT", "8080"),
		StaticDir:         getEnv("STATIC_DIR", "static"),
		FieldDefaultsFile: getEnv("FIELD_DEFAULTS_FILE", ""),
		BodyLimitMB:       getEnvInt("BODY_LIMIT_MB", 32),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		CORSOrigins:       getEnv("CORS_ORIGINS", "*"),

		OpenAIAPIKey:    strings.TrimSpace(os.Getenv("OPENAI_API_KEY")),
		OpenAIBaseURL:   getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		OpenAIModel:     getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		PrefillRequired: getEnvBool("PREFILL_REQUIRED", false),

		SupabaseURL:    os.Getenv("SUPABASE_URL"),
		SupabaseKey:    os.Getenv("SUPABASE_SERVICE_KEY"),
		SupabaseBucket: getEnv("SUPABASE_BUCKET", "invites"),
		SupabaseTable:  getEnv("SUPABASE_TABLE", "invites"),
	}
}

// PrefillEnabled reports whether a model credential is configured.
func (c *Config) PrefillEnabled() bool {
	return c.OpenAIAPIKey != ""
}

// MirrorEnabled reports whether invites should be mirrored to Supabase.
func (c *Config) MirrorEnabled() bool {
	return c.SupabaseURL != "" && c.SupabaseKey != ""
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

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return b
}
