package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/fastygo/apiresponse/domain"
	"github.com/fastygo/apiresponse/internal/jsonenc"
)

// Config aggregates all runtime settings required by the application.
type Config struct {
	AppName     string
	Environment string
	HTTP        HTTPConfig
	Database    DatabaseConfig
	Redis       RedisConfig
	Catalog     CatalogConfig
	Response    ResponseConfig
	Context     ContextConfig
	Logger      LoggerConfig
	Migrations  MigrationsConfig
}

type HTTPConfig struct {
	Host         string
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type DatabaseConfig struct {
	URL             string
	Host            string
	Port            string
	Name            string
	User            string
	Password        string
	MaxOpenConns    int
	MaxIdleConns    int
	MaxConnLifetime time.Duration
	SSLMode         string
}

type RedisConfig struct {
	URL      string
	Password string
	DB       int
}

// CatalogConfig selects where user API codes are loaded from at startup.
type CatalogConfig struct {
	FromPostgres bool
	FromRedis    bool
	RedisKey     string
	SnapshotPath string
	LoadTimeout  time.Duration
}

// ResponseConfig is the envelope policy snapshot handed to the builder.
type ResponseConfig struct {
	// EncodingOptions is nil when neither the env nor the codes file sets it.
	EncodingOptions  *jsonenc.Options
	DataAlwaysObject bool
	MaxCode          domain.ApiCode
	CodesFile        string
	// Codes holds the user codes declared in CodesFile.
	Codes map[domain.ApiCode]string
}

type ContextConfig struct {
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

type LoggerConfig struct {
	Level    string
	Encoding string
}

type MigrationsConfig struct {
	Enabled bool
	Path    string
}

// Load reads configuration from environment variables (optionally .env)
// and applies sane defaults so the service can boot in any environment.
// Response settings are strict: a malformed encoding bitmask fails the load.
func Load() (*Config, error) {
	_ = godotenv.Load(".env")

	cfg := &Config{
		AppName:     getString("APP_NAME", "apiresponse"),
		Environment: getString("APP_ENV", "development"),
		HTTP: HTTPConfig{
			Host:         getString("SERVER_HOST", "0.0.0.0"),
			Port:         getString("SERVER_PORT", "8080"),
			ReadTimeout:  getDuration("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout: getDuration("SERVER_WRITE_TIMEOUT", 10*time.Second),
			IdleTimeout:  getDuration("SERVER_IDLE_TIMEOUT", 120*time.Second),
		},
		Database: DatabaseConfig{
			URL:             os.Getenv("DATABASE_URL"),
			Host:            getString("DB_HOST", "localhost"),
			Port:            getString("DB_PORT", "5432"),
			Name:            getString("DB_NAME", "apiresponse"),
			User:            getString("DB_USER", "apiresponse"),
			Password:        os.Getenv("DB_PASSWORD"),
			MaxOpenConns:    getInt("DB_MAX_OPEN_CONNS", 4),
			MaxIdleConns:    getInt("DB_MAX_IDLE_CONNS", 1),
			MaxConnLifetime: getDuration("DB_CONN_LIFETIME", time.Hour),
			SSLMode:         getString("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			URL:      getString("REDIS_URL", "redis://localhost:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       getInt("REDIS_DB", 0),
		},
		Catalog: CatalogConfig{
			FromPostgres: getBool("CATALOG_FROM_POSTGRES", false),
			FromRedis:    getBool("CATALOG_FROM_REDIS", false),
			RedisKey:     getString("CATALOG_REDIS_KEY", "api_codes"),
			SnapshotPath: getString("CATALOG_SNAPSHOT_PATH", "./data/catalog.db"),
			LoadTimeout:  getDuration("CATALOG_LOAD_TIMEOUT", 10*time.Second),
		},
		Context: ContextConfig{
			RequestTimeout:  getDuration("REQUEST_TIMEOUT_SECONDS", 5*time.Second),
			ShutdownTimeout: getDuration("SHUTDOWN_TIMEOUT_SECONDS", 15*time.Second),
		},
		Logger: LoggerConfig{
			Level:    getString("LOG_LEVEL", "info"),
			Encoding: getString("LOG_ENCODING", "json"),
		},
		Migrations: MigrationsConfig{
			Enabled: getBool("RUN_MIGRATIONS", false),
			Path:    getString("MIGRATIONS_PATH", "./assets/migrations"),
		},
	}

	if cfg.Database.URL == "" {
		cfg.Database.URL = buildPostgresURL(cfg)
	}

	response, err := loadResponse()
	if err != nil {
		return nil, err
	}
	cfg.Response = response

	return cfg, nil
}

// MustLoad panics if configuration cannot be loaded.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

// loadResponse merges the optional codes file with env overrides.
func loadResponse() (ResponseConfig, error) {
	rc := ResponseConfig{
		MaxCode:   domain.DefaultMaxCode,
		CodesFile: os.Getenv("RESPONSE_CODES_FILE"),
	}

	if rc.CodesFile != "" {
		file, err := ReadCodesFile(rc.CodesFile)
		if err != nil {
			return ResponseConfig{}, err
		}
		if err := file.applyTo(&rc); err != nil {
			return ResponseConfig{}, fmt.Errorf("codes file %s: %w", rc.CodesFile, err)
		}
	}

	if raw, ok := os.LookupEnv("RESPONSE_ENCODING_OPTIONS"); ok && raw != "" {
		opts, err := jsonenc.ParseOptions(raw)
		if err != nil {
			return ResponseConfig{}, fmt.Errorf("RESPONSE_ENCODING_OPTIONS: %w", err)
		}
		rc.EncodingOptions = &opts
	}
	rc.DataAlwaysObject = getBool("RESPONSE_DATA_ALWAYS_OBJECT", rc.DataAlwaysObject)
	rc.MaxCode = domain.ApiCode(getInt("RESPONSE_MAX_CODE", int(rc.MaxCode)))

	return rc, nil
}

func buildPostgresURL(cfg *Config) string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.Name,
		cfg.Database.SSLMode,
	)
}

func getString(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.ParseBool(val); err == nil {
			return parsed
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if parsed, err := time.ParseDuration(val); err == nil {
			return parsed
		}
		if seconds, err := strconv.Atoi(val); err == nil {
			return time.Duration(seconds) * time.Second
		}
	}
	return fallback
}

// Address returns the HTTP listen address for the fasthttp server.
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%s", c.HTTP.Host, c.HTTP.Port)
}
