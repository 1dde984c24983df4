package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	GeneralVersion   string `mapstructure:"GENERAL_VERSION"`
	GeneralLogLevel  string `mapstructure:"GENERAL_LOG_LEVEL"`
	GeneralLogFormat string `mapstructure:"GENERAL_LOG_FORMAT"`

	ServerPort        int    `mapstructure:"SERVER_PORT"`
	ServerCorsOrigins string `mapstructure:"SERVER_CORS_ORIGINS"`
	ServerRateLimit   int    `mapstructure:"SERVER_RATE_LIMIT"`
	ServerRateBurst   int    `mapstructure:"SERVER_RATE_BURST"`

	DatabaseDriver       string `mapstructure:"DATABASE_DRIVER"`
	DatabaseDbPath       string `mapstructure:"DATABASE_DB_PATH"`
	DatabaseHost         string `mapstructure:"DATABASE_HOST"`
	DatabasePort         int    `mapstructure:"DATABASE_PORT"`
	DatabaseUser         string `mapstructure:"DATABASE_USER"`
	DatabasePassword     string `mapstructure:"DATABASE_PASSWORD"`
	DatabaseName         string `mapstructure:"DATABASE_NAME"`
	DatabaseCacheAddress string `mapstructure:"DATABASE_CACHE_ADDRESS"`
	DatabaseCachePort    int    `mapstructure:"DATABASE_CACHE_PORT"`

	StorageRegion           string `mapstructure:"STORAGE_REGION"`
	StorageBucket           string `mapstructure:"STORAGE_BUCKET"`
	StorageAccessKeyID      string `mapstructure:"STORAGE_ACCESS_KEY_ID"`
	StorageSecretAccessKey  string `mapstructure:"STORAGE_SECRET_ACCESS_KEY"`
	StorageEndpoint         string `mapstructure:"STORAGE_ENDPOINT"`
	StorageURLExpirySeconds int    `mapstructure:"STORAGE_URL_EXPIRY_SECONDS"`

	PaymentsBaseURL string `mapstructure:"PAYMENTS_BASE_URL"`

	AuthEnabled     bool   `mapstructure:"AUTH_ENABLED"`
	SessionTTLHours int    `mapstructure:"SESSION_TTL_HOURS"`
	AdminLogin      string `mapstructure:"ADMIN_LOGIN"`
	AdminPassword   string `mapstructure:"ADMIN_PASSWORD"`

	DispatchSchedule string `mapstructure:"DISPATCH_SCHEDULE"`

	CompanyName string `mapstructure:"COMPANY_NAME"`
	AgentName   string `mapstructure:"AGENT_NAME"`
}

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

var defaults = map[string]any{
	"GENERAL_VERSION":            "dev",
	"GENERAL_LOG_LEVEL":          "info",
	"GENERAL_LOG_FORMAT":         "text",
	"SERVER_PORT":                8280,
	"SERVER_CORS_ORIGINS":        "http://localhost:3000",
	"SERVER_RATE_LIMIT":          20,
	"SERVER_RATE_BURST":          40,
	"DATABASE_DRIVER":            DriverSQLite,
	"DATABASE_DB_PATH":           "data/agency.db",
	"DATABASE_HOST":              "",
	"DATABASE_PORT":              5432,
	"DATABASE_USER":              "",
	"DATABASE_PASSWORD":          "",
	"DATABASE_NAME":              "",
	"DATABASE_CACHE_ADDRESS":     "localhost",
	"DATABASE_CACHE_PORT":        6379,
	"STORAGE_REGION":             "",
	"STORAGE_BUCKET":             "",
	"STORAGE_ACCESS_KEY_ID":      "",
	"STORAGE_SECRET_ACCESS_KEY":  "",
	"STORAGE_ENDPOINT":           "",
	"STORAGE_URL_EXPIRY_SECONDS": 60,
	"PAYMENTS_BASE_URL":          "http://localhost:3000",
	"AUTH_ENABLED":               false,
	"SESSION_TTL_HOURS":          12,
	"ADMIN_LOGIN":                "admin",
	"ADMIN_PASSWORD":             "",
	"DISPATCH_SCHEDULE":          "@every 1m",
	"COMPANY_NAME":               "Premier Insurance",
	"AGENT_NAME":                 "Alex",
}

func InitConfig() (Config, error) {
	return load(".env")
}

func load(envFile string) (Config, error) {
	v := viper.New()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if envFile != "" {
		if _, err := os.Stat(envFile); err == nil {
			v.SetConfigFile(envFile)
			v.SetConfigType("env")
			if err := v.ReadInConfig(); err != nil {
				return Config{}, fmt.Errorf("failed to read config file %s: %w", envFile, err)
			}
		}
	}

	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return Config{}, err
	}

	return config, nil
}

func (c Config) Validate() error {
	switch c.DatabaseDriver {
	case DriverSQLite:
		if c.DatabaseDbPath == "" {
			return errors.New("DATABASE_DB_PATH is required for the sqlite driver")
		}
	case DriverPostgres:
		if c.DatabaseHost == "" || c.DatabaseName == "" {
			return errors.New("DATABASE_HOST and DATABASE_NAME are required for the postgres driver")
		}
	default:
		return fmt.Errorf("unsupported DATABASE_DRIVER %q", c.DatabaseDriver)
	}

	if c.ServerPort <= 0 {
		return errors.New("SERVER_PORT must be positive")
	}

	return nil
}

func (c Config) CorsOrigins() []string {
	var origins []string
	for _, origin := range strings.Split(c.ServerCorsOrigins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}

func (c Config) StorageEnabled() bool {
	return c.StorageBucket != "" && c.StorageRegion != ""
}
