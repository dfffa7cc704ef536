package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	// File is the config file that was read, or "" when only defaults and the
	// environment apply.
	File string

	Server     ServerConfig
	LLM        LLMConfig
	Generation GenerationConfig
	Session    SessionConfig
	Store      StoreConfig
	Redis      RedisConfig
	Logger     LoggerConfig
	RateLimit  RateLimitConfig
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	BodyLimit    int
}

// LLMConfig selects the generative service. APIKeyEnv names the environment variable the
// credential is read from at generation time.
type LLMConfig struct {
	Provider    string
	Model       string
	Temperature float64
	APIKeyEnv   string
	ServerURL   string
	Timeout     time.Duration
}

type GenerationConfig struct {
	DefaultWeeks int
	MaxWeeks     int
}

type SessionConfig struct {
	Secret     string
	TTL        time.Duration
	CookieName string
}

// StoreConfig chooses where workspaces live: "memory" or "redis".
type StoreConfig struct {
	Driver string
	TTL    time.Duration
}

type RedisConfig struct {
	Address  string
	Password string
	DB       int
}

// LoggerConfig controls zap. Output is "stdout" or "stderr".
type LoggerConfig struct {
	Level  string
	Env    string
	Output string
}

type RateLimitConfig struct {
	Max    int
	Window time.Duration
}

const (
	ProviderGoogleAI = "googleai"
	ProviderOpenAI   = "openai"
	ProviderOllama   = "ollama"

	StoreMemory = "memory"
	StoreRedis  = "redis"
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8090)
	v.SetDefault("server.read_timeout", "20s")
	v.SetDefault("server.write_timeout", "180s")
	v.SetDefault("server.idle_timeout", "60s")
	v.SetDefault("server.body_limit", 1024*1024)

	v.SetDefault("llm.provider", ProviderGoogleAI)
	v.SetDefault("llm.model", "gemini-2.5-flash")
	v.SetDefault("llm.temperature", 0.2)
	v.SetDefault("llm.api_key_env", "API_KEY")
	v.SetDefault("llm.server_url", "http://localhost:11434")
	v.SetDefault("llm.timeout", "0s")

	v.SetDefault("generation.default_weeks", 4)
	v.SetDefault("generation.max_weeks", 16)

	v.SetDefault("session.secret", "")
	v.SetDefault("session.ttl", "24h")
	v.SetDefault("session.cookie_name", "syllabus_session")

	v.SetDefault("store.driver", StoreMemory)
	v.SetDefault("store.ttl", "24h")

	v.SetDefault("redis.address", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.env", "development")
	v.SetDefault("logger.output", "stdout")

	v.SetDefault("ratelimit.max", 10)
	v.SetDefault("ratelimit.window", "1m")
}

// LoadConfig reads config.yaml if one exists, applies defaults and lets environment
// variables override any key (server.port -> SERVER_PORT).
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// Add config paths based on environment
	if os.Getenv("ENV") == "test" {
		v.AddConfigPath("../../config")
		v.AddConfigPath("../../")
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	setDefaults(v)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := fromViper(v)
	if configFile := v.ConfigFileUsed(); configFile != "" {
		cfg.File, _ = filepath.Abs(configFile)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		Server: ServerConfig{
			Port:         v.GetInt("server.port"),
			ReadTimeout:  v.GetDuration("server.read_timeout"),
			WriteTimeout: v.GetDuration("server.write_timeout"),
			IdleTimeout:  v.GetDuration("server.idle_timeout"),
			BodyLimit:    v.GetInt("server.body_limit"),
		},
		LLM: LLMConfig{
			Provider:    strings.ToLower(v.GetString("llm.provider")),
			Model:       v.GetString("llm.model"),
			Temperature: v.GetFloat64("llm.temperature"),
			APIKeyEnv:   v.GetString("llm.api_key_env"),
			ServerURL:   v.GetString("llm.server_url"),
			Timeout:     v.GetDuration("llm.timeout"),
		},
		Generation: GenerationConfig{
			DefaultWeeks: v.GetInt("generation.default_weeks"),
			MaxWeeks:     v.GetInt("generation.max_weeks"),
		},
		Session: SessionConfig{
			Secret:     v.GetString("session.secret"),
			TTL:        v.GetDuration("session.ttl"),
			CookieName: v.GetString("session.cookie_name"),
		},
		Store: StoreConfig{
			Driver: strings.ToLower(v.GetString("store.driver")),
			TTL:    v.GetDuration("store.ttl"),
		},
		Redis: RedisConfig{
			Address:  v.GetString("redis.address"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		Logger: LoggerConfig{
			Level:  v.GetString("logger.level"),
			Env:    v.GetString("logger.env"),
			Output: v.GetString("logger.output"),
		},
		RateLimit: RateLimitConfig{
			Max:    v.GetInt("ratelimit.max"),
			Window: v.GetDuration("ratelimit.window"),
		},
	}
}

// Validate checks values that would otherwise fail later at request time.
func (c *Config) Validate() error {
	switch c.LLM.Provider {
	case ProviderGoogleAI, ProviderOpenAI, ProviderOllama:
	default:
		return fmt.Errorf("unsupported llm provider: %q", c.LLM.Provider)
	}
	if c.LLM.Model == "" {
		return fmt.Errorf("llm.model cannot be empty")
	}
	if c.Generation.DefaultWeeks < 1 || c.Generation.DefaultWeeks > c.Generation.MaxWeeks {
		return fmt.Errorf("generation.default_weeks must be between 1 and generation.max_weeks (%d)", c.Generation.MaxWeeks)
	}
	switch c.Store.Driver {
	case StoreMemory:
	case StoreRedis:
		if c.Redis.Address == "" {
			return fmt.Errorf("redis.address is required when store.driver is redis")
		}
	default:
		return fmt.Errorf("unsupported store driver: %q", c.Store.Driver)
	}
	return nil
}

// RequiresAPIKey reports whether the configured provider needs a credential.
func (c LLMConfig) RequiresAPIKey() bool {
	return c.Provider != ProviderOllama
}
