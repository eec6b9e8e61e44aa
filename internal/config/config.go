package config

import (
	"fmt"
	"log"
	"strings"

	"github.com/spf13/viper"
)

// defaultJWTSecret is the development-only signing key. Validate refuses to
// start production with it.
const defaultJWTSecret = "your-secret-key-change-in-production"

type Config struct {
	Port            string   `mapstructure:"PORT"`
	Env             string   `mapstructure:"ENV"`
	DatabaseURL     string   `mapstructure:"DATABASE_URL"`
	DBMaxConns      int32    `mapstructure:"DB_MAX_CONNS"`
	DBMinConns      int32    `mapstructure:"DB_MIN_CONNS"`
	CORSOrigins     []string `mapstructure:"CORS_ORIGINS"`
	JWTSecret       string   `mapstructure:"JWT_SECRET"`
	TokenTTLMinutes int      `mapstructure:"TOKEN_TTL_MINUTES"`
	DatasetPath     string   `mapstructure:"DATASET_PATH"`
	LLMProvider     string   `mapstructure:"LLM_PROVIDER"`
	LLMModel        string   `mapstructure:"LLM_MODEL"`
	GroqAPIKey      string   `mapstructure:"GROQ_API_KEY"`
	GroqBaseURL     string   `mapstructure:"GROQ_BASE_URL"`
	AnthropicAPIKey string   `mapstructure:"ANTHROPIC_API_KEY"`
	GraphDBURI      string   `mapstructure:"GRAPH_DB_URI"`
	GraphDBUser     string   `mapstructure:"GRAPH_DB_USER"`
	GraphDBPassword string   `mapstructure:"GRAPH_DB_PASSWORD"`
	RateLimitRPS    float64  `mapstructure:"RATE_LIMIT_RPS"`
	RateLimitBurst  int      `mapstructure:"RATE_LIMIT_BURST"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("PORT", "8000")
	v.SetDefault("ENV", "development")
	v.SetDefault("DB_MAX_CONNS", 20)
	v.SetDefault("DB_MIN_CONNS", 5)
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000,https://mednex-frontend.onrender.com")
	v.SetDefault("JWT_SECRET", defaultJWTSecret)
	v.SetDefault("TOKEN_TTL_MINUTES", 1440)
	v.SetDefault("DATASET_PATH", "./data/disease_symptoms.csv")
	v.SetDefault("LLM_PROVIDER", "groq")
	v.SetDefault("LLM_MODEL", "llama-3.1-70b-versatile")
	v.SetDefault("GROQ_BASE_URL", "https://api.groq.com/openai/v1")
	v.SetDefault("RATE_LIMIT_RPS", 100)
	v.SetDefault("RATE_LIMIT_BURST", 200)

	// Bind env vars explicitly so Unmarshal picks them up
	v.BindEnv("PORT")
	v.BindEnv("ENV")
	v.BindEnv("DATABASE_URL")
	v.BindEnv("DB_MAX_CONNS")
	v.BindEnv("DB_MIN_CONNS")
	v.BindEnv("CORS_ORIGINS")
	v.BindEnv("JWT_SECRET")
	v.BindEnv("TOKEN_TTL_MINUTES")
	v.BindEnv("DATASET_PATH")
	v.BindEnv("LLM_PROVIDER")
	v.BindEnv("LLM_MODEL")
	v.BindEnv("GROQ_API_KEY")
	v.BindEnv("GROQ_BASE_URL")
	v.BindEnv("ANTHROPIC_API_KEY")
	v.BindEnv("GRAPH_DB_URI")
	v.BindEnv("GRAPH_DB_USER")
	v.BindEnv("GRAPH_DB_PASSWORD")
	v.BindEnv("RATE_LIMIT_RPS")
	v.BindEnv("RATE_LIMIT_BURST")

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.CORSOrigins == nil {
		origins := v.GetString("CORS_ORIGINS")
		if origins != "" {
			cfg.CORSOrigins = strings.Split(origins, ",")
		}
	}

	if cfg.IsDev() && cfg.JWTSecret == defaultJWTSecret {
		log.Println("WARNING: ============================================================")
		log.Println("WARNING: Server is running in DEVELOPMENT mode (ENV=development).")
		log.Println("WARNING: Tokens are signed with the built-in default secret.")
		log.Println("WARNING: Do NOT use this configuration in production.")
		log.Println("WARNING: Set ENV=production and a strong JWT_SECRET for production.")
		log.Println("WARNING: ============================================================")
	}

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// IsProduction returns true when the server is configured for production mode.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// TokenTTL reports the configured access-token lifetime in minutes, falling
// back to one day when the value is missing or nonsensical.
func (c *Config) TokenTTL() int {
	if c.TokenTTLMinutes <= 0 {
		return 1440
	}
	return c.TokenTTLMinutes
}

// Validate checks that the configuration is safe to run. Production refuses
// the built-in signing secret and requires one long enough to resist brute
// force. The LLM provider, when set, must be one the server knows how to
// construct.
func (c *Config) Validate() error {
	if c.IsProduction() {
		if c.JWTSecret == defaultJWTSecret {
			return fmt.Errorf("JWT_SECRET must be set in production (the built-in default is for development only)")
		}
		if len(c.JWTSecret) < 32 {
			return fmt.Errorf("JWT_SECRET must be at least 32 characters, got %d", len(c.JWTSecret))
		}
	}

	switch c.LLMProvider {
	case "", "groq", "anthropic", "none":
	default:
		return fmt.Errorf("LLM_PROVIDER must be \"groq\", \"anthropic\", or \"none\", got %q", c.LLMProvider)
	}

	if c.DBMinConns > c.DBMaxConns {
		return fmt.Errorf("DB_MIN_CONNS (%d) cannot exceed DB_MAX_CONNS (%d)", c.DBMinConns, c.DBMaxConns)
	}

	return nil
}
