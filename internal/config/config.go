package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	defaultAppName         = "varad"
	defaultAppEnv          = "development"
	defaultPort            = "8080"
	defaultLogLevel        = "info"
	defaultShutdownDelay   = 10 * time.Second
	defaultBalanceInterval = 6 * time.Second
	defaultIdleTimeout     = 15 * time.Minute
	defaultPinAttempts     = 5
)

// Config captures application runtime configuration loaded from environment variables.
type Config struct {
	AppName  string
	AppEnv   string
	Port     string
	LogLevel string

	// DatabaseURL and RedisURL are optional: when absent the wallet
	// repository and the credential store fall back to in-memory
	// implementations.
	DatabaseURL string
	RedisURL    string

	// ProviderID selects the active network at startup; empty means the
	// environment default.
	ProviderID string

	// DeviceUID derives the key that seals stored credentials. UserUID is
	// the owner identity bound to the keychain entry.
	DeviceUID string
	UserUID   string

	PinAttemptsLimit int
	IdleTimeout      time.Duration
	BalanceInterval  time.Duration
	BiometryEnabled  bool
	SkipPinOnLogin   bool
	Onboarded        bool

	ShutdownPeriod time.Duration
}

// Load reads configuration values from the environment and populates a Config instance.
func Load() (Config, error) {
	cfg := Config{
		AppName:     getEnv("APP_NAME", defaultAppName),
		AppEnv:      getEnv("APP_ENV", defaultAppEnv),
		Port:        getEnv("PORT", defaultPort),
		LogLevel:    strings.ToLower(getEnv("LOG_LEVEL", defaultLogLevel)),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		RedisURL:    os.Getenv("REDIS_URL"),
		ProviderID:  os.Getenv("PROVIDER_ID"),
		DeviceUID:   getEnv("DEVICE_UID", uuid.NewString()),
		UserUID:     getEnv("USER_UID", uuid.NewString()),
	}

	var err error
	if cfg.PinAttemptsLimit, err = getInt("PIN_ATTEMPTS_LIMIT", defaultPinAttempts); err != nil {
		return Config{}, err
	}
	if cfg.IdleTimeout, err = getDuration("IDLE_TIMEOUT", defaultIdleTimeout); err != nil {
		return Config{}, err
	}
	if cfg.BalanceInterval, err = getDuration("BALANCE_INTERVAL", defaultBalanceInterval); err != nil {
		return Config{}, err
	}
	if cfg.ShutdownPeriod, err = getDuration("SHUTDOWN_TIMEOUT", defaultShutdownDelay); err != nil {
		return Config{}, err
	}
	if cfg.BiometryEnabled, err = getBool("BIOMETRY_ENABLED", false); err != nil {
		return Config{}, err
	}
	if cfg.SkipPinOnLogin, err = getBool("SKIP_PIN_ON_LOGIN", false); err != nil {
		return Config{}, err
	}
	if cfg.Onboarded, err = getBool("ONBOARDED", true); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Address returns the listen address in the format Fiber expects.
func (c Config) Address() string {
	if strings.HasPrefix(c.Port, ":") {
		return c.Port
	}
	return fmt.Sprintf(":%s", c.Port)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getBool(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return b, nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
