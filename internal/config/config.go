package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	Port       string
	Driver     string
	SQLitePath string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	RedisEnabled  bool
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	CachePrefix   string
	RateLimit     int

	Location *time.Location
	LogLevel string
}

// PostgresDSN builds the connection string from the DB_* settings.
func (c Config) PostgresDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("store_driver", DriverSQLite)
	v.SetDefault("sqlite_path", "tracker.db")
	v.SetDefault("db_host", "localhost")
	v.SetDefault("db_port", "5432")
	v.SetDefault("db_user", "")
	v.SetDefault("db_password", "")
	v.SetDefault("db_name", "tracker")
	v.SetDefault("redis_enabled", false)
	v.SetDefault("redis_host", "localhost")
	v.SetDefault("redis_port", "6379")
	v.SetDefault("redis_password", "")
	v.SetDefault("redis_db", 0)
	v.SetDefault("cache_prefix", "tracker")
	v.SetDefault("rate_limit", 100)
	v.SetDefault("timezone", "Local")
	v.SetDefault("log_level", "info")
}

// Load reads .env (when present), environment variables and an optional
// tracker.yaml from the working directory or configDir.
func Load(configDir string) (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	v.SetConfigName("tracker")
	v.SetConfigType("yaml")
	if configDir != "" {
		v.AddConfigPath(configDir)
	}
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
	}

	return fromViper(v)
}

func fromViper(v *viper.Viper) (Config, error) {
	cfg := Config{
		Port:          v.GetString("port"),
		Driver:        strings.ToLower(strings.TrimSpace(v.GetString("store_driver"))),
		SQLitePath:    v.GetString("sqlite_path"),
		DBHost:        v.GetString("db_host"),
		DBPort:        v.GetString("db_port"),
		DBUser:        v.GetString("db_user"),
		DBPassword:    v.GetString("db_password"),
		DBName:        v.GetString("db_name"),
		RedisEnabled:  v.GetBool("redis_enabled"),
		RedisHost:     v.GetString("redis_host"),
		RedisPort:     v.GetString("redis_port"),
		RedisPassword: v.GetString("redis_password"),
		RedisDB:       v.GetInt("redis_db"),
		CachePrefix:   v.GetString("cache_prefix"),
		RateLimit:     v.GetInt("rate_limit"),
		LogLevel:      strings.ToLower(v.GetString("log_level")),
	}

	switch cfg.Driver {
	case DriverMemory, DriverSQLite, DriverPostgres:
	default:
		return Config{}, fmt.Errorf("unknown STORE_DRIVER %q (memory, sqlite or postgres)", cfg.Driver)
	}

	if cfg.Driver == DriverPostgres && cfg.DBUser == "" {
		return Config{}, errors.New("DB_USER is required for the postgres driver")
	}

	loc, err := time.LoadLocation(v.GetString("timezone"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid TIMEZONE: %w", err)
	}
	cfg.Location = loc

	if cfg.RateLimit < 0 {
		cfg.RateLimit = 0
	}

	return cfg, nil
}
