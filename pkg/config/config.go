package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
)

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	KVBackendRedis  = "redis"
	KVBackendDB     = "db"
	KVBackendMemory = "memory"
)

const (
	EnvAppEnv   = "POS_APP_ENV"
	EnvPort     = "POS_APP_PORT"
	EnvDBDSN    = "POS_DB_DSN"
	EnvDBHost   = "POS_DB_HOST"
	EnvDBUser   = "POS_DB_USER"
	EnvDBName   = "POS_DB_NAME"
	EnvRedisURL = "POS_REDIS_URL"
	EnvKV       = "POS_KV_BACKEND"
	EnvSQLite   = "POS_USE_SQLITE"
	EnvTaxRate  = "POS_DEFAULT_TAX_RATE"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App          AppConfig
	Terminal     TerminalConfig
	DB           DBConfig
	Redis        RedisConfig
	KV           KVConfig
	FeatureFlags FeatureFlagsConfig
	Settings     SettingsDefaults
	Catalog      CatalogConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.KV.Backend = strings.ToLower(strings.TrimSpace(cfg.KV.Backend))
	if err := cfg.KV.validate(); err != nil {
		return nil, err
	}
	if !cfg.FeatureFlags.UseSQLite {
		if err := cfg.DB.ensureDSN(); err != nil {
			return nil, err
		}
	}
	if cfg.KV.Backend == KVBackendRedis && cfg.Redis.URL == "" && cfg.Redis.Address == "" {
		return nil, fmt.Errorf("%s is required when %s=%s", EnvRedisURL, EnvKV, KVBackendRedis)
	}
	if _, err := cfg.Settings.Rate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"POS_APP_ENV" required:"true"`
	Port         string `envconfig:"POS_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"POS_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"POS_LOG_WARN_STACK" default:"false"`

	CORSOrigins []string `envconfig:"POS_CORS_ORIGINS"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// TerminalConfig identifies the till this process drives.
type TerminalConfig struct {
	ID               string `envconfig:"POS_TERMINAL_ID" default:"till-1"`
	DefaultCashierID string `envconfig:"POS_DEFAULT_CASHIER_ID" default:"u1"`
	KeyNamespace     string `envconfig:"POS_KEY_NAMESPACE" default:"pos"`
}

type DBConfig struct {
	DSN        string `envconfig:"POS_DB_DSN"`
	SQLitePath string `envconfig:"POS_SQLITE_PATH" default:"pos.db"`

	LegacyHost     string `envconfig:"POS_DB_HOST"`
	LegacyPort     int    `envconfig:"POS_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"POS_DB_USER"`
	LegacyPassword string `envconfig:"POS_DB_PASSWORD"`
	LegacyName     string `envconfig:"POS_DB_NAME"`
	LegacySSLMode  string `envconfig:"POS_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"POS_DB_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `envconfig:"POS_DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"POS_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"POS_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"POS_REDIS_URL"`
	Address      string        `envconfig:"POS_REDIS_ADDR"`
	Password     string        `envconfig:"POS_REDIS_PASSWORD"`
	DB           int           `envconfig:"POS_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"POS_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"POS_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"POS_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"POS_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"POS_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// KVConfig selects where held sales, history, settings and the cashier session live.
type KVConfig struct {
	Backend string `envconfig:"POS_KV_BACKEND" default:"db"`
}

func (k KVConfig) validate() error {
	switch k.Backend {
	case KVBackendRedis, KVBackendDB, KVBackendMemory:
		return nil
	}
	return fmt.Errorf("invalid %s %q", EnvKV, k.Backend)
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"POS_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"POS_AUTO_MIGRATE" default:"false"`
}

// SettingsDefaults seeds the settings provider when nothing has been persisted yet.
type SettingsDefaults struct {
	TaxRate          string `envconfig:"POS_DEFAULT_TAX_RATE" default:"0.07"`
	TaxIncluded      bool   `envconfig:"POS_DEFAULT_TAX_INCLUDED" default:"true"`
	RoundingStep     string `envconfig:"POS_DEFAULT_ROUNDING_STEP" default:"0"`
	CurrencyCode     string `envconfig:"POS_CURRENCY_CODE" default:"THB"`
	CurrencySymbol   string `envconfig:"POS_CURRENCY_SYMBOL" default:"฿"`
	CurrencyDecimals int    `envconfig:"POS_CURRENCY_DECIMALS" default:"2"`
	StoreName        string `envconfig:"POS_STORE_NAME" default:"My Music Store"`
	StoreTaxID       string `envconfig:"POS_STORE_TAX_ID"`
	StoreAddress     string `envconfig:"POS_STORE_ADDRESS"`
	StorePhone       string `envconfig:"POS_STORE_PHONE"`
}

// Rate parses the configured default tax rate.
func (s SettingsDefaults) Rate() (decimal.Decimal, error) {
	rate, err := decimal.NewFromString(strings.TrimSpace(s.TaxRate))
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s %q: %w", EnvTaxRate, s.TaxRate, err)
	}
	return rate, nil
}

// Step parses the configured default rounding step; malformed values disable rounding.
func (s SettingsDefaults) Step() decimal.Decimal {
	step, err := decimal.NewFromString(strings.TrimSpace(s.RoundingStep))
	if err != nil {
		return decimal.Zero
	}
	return step
}

type CatalogConfig struct {
	SeedFile string `envconfig:"POS_CATALOG_SEED_FILE"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s, %s or %s are required", EnvSQLite, EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
