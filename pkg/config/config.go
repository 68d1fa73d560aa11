package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix is the envconfig prefix shared by all services.
const EnvPrefix = "quotewerk"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

// Environment variable names referenced outside struct tags (tests, error messages).
const (
	EnvAppEnv   = "QUOTEWERK_APP_ENV"
	EnvPort     = "QUOTEWERK_APP_PORT"
	EnvDBDSN    = "QUOTEWERK_DB_DSN"
	EnvDBHost   = "QUOTEWERK_DB_HOST"
	EnvDBUser   = "QUOTEWERK_DB_USER"
	EnvDBName   = "QUOTEWERK_DB_NAME"
	EnvRedisURL = "QUOTEWERK_REDIS_URL"
	EnvVATRate  = "QUOTEWERK_VAT_PERCENT"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App          AppConfig
	Service      ServiceConfig
	DB           DBConfig
	Redis        RedisConfig
	Session      SessionConfig
	Pricing      PricingConfig
	Recognition  RecognitionConfig
	Marketplace  MarketplaceConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"QUOTEWERK_APP_ENV" required:"true"`
	Port         string `envconfig:"QUOTEWERK_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"QUOTEWERK_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"QUOTEWERK_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type ServiceConfig struct {
	Kind string `envconfig:"QUOTEWERK_SERVICE_KIND" default:"api"`
}

type DBConfig struct {
	DSN    string `envconfig:"QUOTEWERK_DB_DSN"`
	Driver string `envconfig:"QUOTEWERK_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"QUOTEWERK_DB_HOST"`
	LegacyPort     int    `envconfig:"QUOTEWERK_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"QUOTEWERK_DB_USER"`
	LegacyPassword string `envconfig:"QUOTEWERK_DB_PASSWORD"`
	LegacyName     string `envconfig:"QUOTEWERK_DB_NAME"`
	LegacySSLMode  string `envconfig:"QUOTEWERK_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"QUOTEWERK_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"QUOTEWERK_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"QUOTEWERK_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"QUOTEWERK_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"QUOTEWERK_REDIS_URL" required:"true"`
	Address      string        `envconfig:"QUOTEWERK_REDIS_ADDR"`
	Password     string        `envconfig:"QUOTEWERK_REDIS_PASSWORD"`
	DB           int           `envconfig:"QUOTEWERK_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"QUOTEWERK_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"QUOTEWERK_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"QUOTEWERK_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"QUOTEWERK_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"QUOTEWERK_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// SessionConfig governs wizard session storage.
type SessionConfig struct {
	TTL             time.Duration `envconfig:"QUOTEWERK_SESSION_TTL" default:"72h"`
	CleanupInterval time.Duration `envconfig:"QUOTEWERK_SESSION_CLEANUP_INTERVAL" default:"1h"`
}

// PricingConfig carries the fallback rates used when the catalog provider
// cannot supply configured values.
type PricingConfig struct {
	VATPercent           string `envconfig:"QUOTEWERK_VAT_PERCENT" default:"19"`
	PaintHourlyRate      string `envconfig:"QUOTEWERK_RATE_PAINT" default:"85"`
	BodyworkHourlyRate   string `envconfig:"QUOTEWERK_RATE_BODYWORK" default:"95"`
	MechanicalHourlyRate string `envconfig:"QUOTEWERK_RATE_MECHANICAL" default:"110"`
	MiscHourlyRate       string `envconfig:"QUOTEWERK_RATE_MISC" default:"75"`
}

type RecognitionConfig struct {
	BaseURL string        `envconfig:"QUOTEWERK_RECOGNITION_BASE_URL"`
	APIKey  string        `envconfig:"QUOTEWERK_RECOGNITION_API_KEY"`
	Timeout time.Duration `envconfig:"QUOTEWERK_RECOGNITION_TIMEOUT" default:"20s"`
}

type MarketplaceConfig struct {
	// Shop templates are comma-separated "label|urlTemplate" pairs where the
	// template contains a single %s for the url-encoded search query.
	ShopTemplates   string        `envconfig:"QUOTEWERK_MARKETPLACE_SHOPS" default:"eBay|https://www.ebay.de/sch/i.html?_nkw=%s,Autoteile24|https://www.autoteile24.de/search?q=%s"`
	EstimateBaseURL string        `envconfig:"QUOTEWERK_PRICE_ESTIMATE_BASE_URL"`
	EstimateAPIKey  string        `envconfig:"QUOTEWERK_PRICE_ESTIMATE_API_KEY"`
	EstimateTimeout time.Duration `envconfig:"QUOTEWERK_PRICE_ESTIMATE_TIMEOUT" default:"10s"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"QUOTEWERK_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"QUOTEWERK_AUTO_MIGRATE" default:"false"`
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
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
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
