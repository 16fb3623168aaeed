package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/adrg/xdg"

	"smartsave-go/pkg/logger"
)

const (
	StoreDriverFile     = "file"
	StoreDriverPostgres = "postgres"
	StoreDriverSQLite   = "sqlite"

	AuthProviderSimulated = "simulated"
	AuthProviderGoogle    = "google"

	devSessionSecret = "smartsave-development-session-secret"
)

type Config struct {
	HTTPPort    string         `toml:"http_port"`
	Env         string         `toml:"env"`
	CORSOrigins []string       `toml:"cors_origins"`
	Store       StoreConfig    `toml:"store"`
	DB          DBConfig       `toml:"db"`
	Auth        AuthConfig     `toml:"auth"`
	Payments    PaymentsConfig `toml:"payments"`
}

type StoreConfig struct {
	Driver     string `toml:"driver"`
	DataFile   string `toml:"data_file"`
	SeedFile   string `toml:"seed_file"`
	SQLitePath string `toml:"sqlite_path"`
}

type DBConfig struct {
	DSN             string        `toml:"dsn"`
	Host            string        `toml:"host"`
	Port            string        `toml:"port"`
	User            string        `toml:"user"`
	Password        string        `toml:"password"`
	Name            string        `toml:"name"`
	SSLMode         string        `toml:"sslmode"`
	TimeZone        string        `toml:"timezone"`
	MaxOpenConns    int           `toml:"max_open_conns"`
	MaxIdleConns    int           `toml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `toml:"conn_max_lifetime"`
}

type AuthConfig struct {
	Provider           string        `toml:"provider"`
	SessionSecret      string        `toml:"session_secret"`
	SessionMaxAge      time.Duration `toml:"session_max_age"`
	RequireLogin       bool          `toml:"require_login"`
	GoogleClientID     string        `toml:"google_client_id"`
	GoogleClientSecret string        `toml:"google_client_secret"`
	GoogleRedirectURL  string        `toml:"google_redirect_url"`
	UserInfoTimeout    time.Duration `toml:"userinfo_timeout"`
	SimulatedUser      ProfileConfig `toml:"simulated_user"`
}

type ProfileConfig struct {
	Name    string `toml:"name"`
	Email   string `toml:"email"`
	Picture string `toml:"picture"`
}

type PaymentsConfig struct {
	UPIAddress string `toml:"upi_address"`
	PayeeName  string `toml:"payee_name"`
}

func Default() Config {
	return Config{
		HTTPPort:    "5000",
		Env:         "development",
		CORSOrigins: []string{"http://localhost:5173"},
		Store: StoreConfig{
			Driver:     StoreDriverFile,
			DataFile:   filepath.Join(xdg.DataHome, "smartsave", "goals.json"),
			SQLitePath: filepath.Join(xdg.DataHome, "smartsave", "goals.db"),
		},
		DB: DBConfig{
			Host:            "localhost",
			Port:            "5432",
			User:            "postgres",
			Password:        "postgres",
			Name:            "smartsave",
			SSLMode:         "disable",
			TimeZone:        "UTC",
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: 30 * time.Minute,
		},
		Auth: AuthConfig{
			Provider:          AuthProviderSimulated,
			SessionMaxAge:     7 * 24 * time.Hour,
			GoogleRedirectURL: "http://127.0.0.1:5000/authorize",
			UserInfoTimeout:   5 * time.Second,
			SimulatedUser: ProfileConfig{
				Name:    "Demo Saver",
				Email:   "demo.saver@example.com",
				Picture: "https://img.icons8.com/color/96/000000/user.png",
			},
		},
		Payments: PaymentsConfig{
			UPIAddress: "smartsave@okaxis",
			PayeeName:  "SmartSave",
		},
	}
}

// Load layers defaults, the optional TOML file, .env and the process
// environment, in that order.
func Load(log logger.Logger, path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv("SMARTSAVE_CONFIG")
	}
	if path != "" {
		meta, err := toml.DecodeFile(path, &cfg)
		if err != nil {
			return Config{}, fmt.Errorf("decode config %s: %w", path, err)
		}
		for _, key := range meta.Undecoded() {
			log.Warn("config: unknown key", "key", key.String(), "path", path)
		}
		log.Info("config: loaded file", "path", path)
	}

	if err := loadDotEnv(log); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	applyEnv(&cfg)

	if err := cfg.finalize(log); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	cfg.HTTPPort = getEnv("PORT", getEnv("HTTP_PORT", cfg.HTTPPort))
	cfg.Env = getEnv("ENV", cfg.Env)
	cfg.CORSOrigins = getEnvList("CORS_ORIGINS", cfg.CORSOrigins)

	cfg.Store.Driver = getEnv("STORE_DRIVER", cfg.Store.Driver)
	cfg.Store.DataFile = getEnv("DATA_FILE", cfg.Store.DataFile)
	cfg.Store.SeedFile = getEnv("SEED_FILE", cfg.Store.SeedFile)
	cfg.Store.SQLitePath = getEnv("SQLITE_PATH", cfg.Store.SQLitePath)

	cfg.DB.DSN = getEnv("DB_DSN", cfg.DB.DSN)
	cfg.DB.Host = getEnv("DB_HOST", cfg.DB.Host)
	cfg.DB.Port = getEnv("DB_PORT", cfg.DB.Port)
	cfg.DB.User = getEnv("DB_USER", cfg.DB.User)
	cfg.DB.Password = getEnv("DB_PASSWORD", cfg.DB.Password)
	cfg.DB.Name = getEnv("DB_NAME", cfg.DB.Name)
	cfg.DB.SSLMode = getEnv("DB_SSLMODE", cfg.DB.SSLMode)
	cfg.DB.TimeZone = getEnv("DB_TIMEZONE", cfg.DB.TimeZone)
	cfg.DB.MaxOpenConns = getEnvInt("DB_MAX_OPEN_CONNS", cfg.DB.MaxOpenConns)
	cfg.DB.MaxIdleConns = getEnvInt("DB_MAX_IDLE_CONNS", cfg.DB.MaxIdleConns)
	cfg.DB.ConnMaxLifetime = getEnvDuration("DB_CONN_MAX_LIFETIME", cfg.DB.ConnMaxLifetime)

	cfg.Auth.Provider = getEnv("AUTH_PROVIDER", cfg.Auth.Provider)
	cfg.Auth.SessionSecret = getEnv("SESSION_SECRET", cfg.Auth.SessionSecret)
	cfg.Auth.SessionMaxAge = getEnvDuration("SESSION_MAX_AGE", cfg.Auth.SessionMaxAge)
	cfg.Auth.RequireLogin = getEnvBool("AUTH_REQUIRE_LOGIN", cfg.Auth.RequireLogin)
	cfg.Auth.GoogleClientID = getEnv("GOOGLE_CLIENT_ID", cfg.Auth.GoogleClientID)
	cfg.Auth.GoogleClientSecret = getEnv("GOOGLE_CLIENT_SECRET", cfg.Auth.GoogleClientSecret)
	cfg.Auth.GoogleRedirectURL = getEnv("GOOGLE_REDIRECT_URL", cfg.Auth.GoogleRedirectURL)
	cfg.Auth.UserInfoTimeout = getEnvDuration("GOOGLE_USERINFO_TIMEOUT", cfg.Auth.UserInfoTimeout)
	cfg.Auth.SimulatedUser.Name = getEnv("AUTH_SIM_USER_NAME", cfg.Auth.SimulatedUser.Name)
	cfg.Auth.SimulatedUser.Email = getEnv("AUTH_SIM_USER_EMAIL", cfg.Auth.SimulatedUser.Email)
	cfg.Auth.SimulatedUser.Picture = getEnv("AUTH_SIM_USER_PICTURE", cfg.Auth.SimulatedUser.Picture)

	cfg.Payments.UPIAddress = getEnv("UPI_ADDRESS", cfg.Payments.UPIAddress)
	cfg.Payments.PayeeName = getEnv("UPI_PAYEE_NAME", cfg.Payments.PayeeName)
}

func (c *Config) finalize(log logger.Logger) error {
	c.Store.Driver = strings.ToLower(strings.TrimSpace(c.Store.Driver))
	switch c.Store.Driver {
	case StoreDriverFile, StoreDriverPostgres, StoreDriverSQLite:
	default:
		return fmt.Errorf("unknown store driver %q", c.Store.Driver)
	}

	c.Auth.Provider = strings.ToLower(strings.TrimSpace(c.Auth.Provider))
	switch c.Auth.Provider {
	case AuthProviderSimulated:
	case AuthProviderGoogle:
		if c.Auth.GoogleClientID == "" || c.Auth.GoogleClientSecret == "" {
			return fmt.Errorf("auth provider google requires GOOGLE_CLIENT_ID and GOOGLE_CLIENT_SECRET")
		}
	default:
		return fmt.Errorf("unknown auth provider %q", c.Auth.Provider)
	}

	if c.Auth.SessionSecret == "" {
		if !c.IsDevelopment() {
			return fmt.Errorf("SESSION_SECRET is required outside development")
		}
		log.Warn("config: SESSION_SECRET not set, using development secret")
		c.Auth.SessionSecret = devSessionSecret
	}
	return nil
}

func (c Config) IsDevelopment() bool {
	return strings.EqualFold(strings.TrimSpace(c.Env), "development")
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvList(key string, fallback []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	var items []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			items = append(items, part)
		}
	}
	return items
}

func (c DBConfig) GetDSN() string {
	if c.DSN != "" {
		return c.DSN
	}
	return "host=" + c.Host +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Name +
		" port=" + c.Port +
		" sslmode=" + c.SSLMode +
		" TimeZone=" + c.TimeZone
}
