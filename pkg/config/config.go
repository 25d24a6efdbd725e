package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Session      SessionConfig
	Password     PasswordConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.validate(); err != nil {
		return nil, err
	}
	if _, err := cfg.App.Location(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"STOCKROOM_APP_ENV" default:"development"`
	Port         string `envconfig:"STOCKROOM_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"STOCKROOM_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"STOCKROOM_LOG_WARN_STACK" default:"false"`
	Timezone     string `envconfig:"STOCKROOM_TIMEZONE" default:"America/Mexico_City"`

	CORSOrigins []string `envconfig:"STOCKROOM_CORS_ORIGINS" default:"http://localhost:3000,http://localhost:5173"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// Location resolves the configured timezone. Every local-time computation
// (report windows, backup file names) uses this zone.
func (a AppConfig) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(a.Timezone)
	if err != nil {
		return nil, fmt.Errorf("loading timezone %q: %w", a.Timezone, err)
	}
	return loc, nil
}

type DBConfig struct {
	Driver string `envconfig:"STOCKROOM_DB_DRIVER" default:"sqlite"`
	Path   string `envconfig:"STOCKROOM_DB_PATH" default:"data/inventory.db"`
	DSN    string `envconfig:"STOCKROOM_DB_DSN"`

	MaxOpenConns    int           `envconfig:"STOCKROOM_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"STOCKROOM_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"STOCKROOM_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"STOCKROOM_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

func (db DBConfig) IsSQLite() bool {
	return strings.EqualFold(db.Driver, DriverSQLite)
}

func (db DBConfig) validate() error {
	switch strings.ToLower(db.Driver) {
	case DriverSQLite:
		if db.Path == "" {
			return fmt.Errorf("%s is required for the sqlite driver", EnvDBPath)
		}
	case DriverPostgres:
		if db.DSN == "" {
			return fmt.Errorf("%s is required for the postgres driver", EnvDBDSN)
		}
	default:
		return fmt.Errorf("unsupported db driver %q", db.Driver)
	}
	return nil
}

type SessionConfig struct {
	TTL           time.Duration `envconfig:"STOCKROOM_SESSION_TTL" default:"168h"`
	SweepEnabled  bool          `envconfig:"STOCKROOM_SESSION_SWEEP_ENABLED" default:"false"`
	SweepInterval time.Duration `envconfig:"STOCKROOM_SESSION_SWEEP_INTERVAL" default:"1h"`
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"STOCKROOM_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"STOCKROOM_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"STOCKROOM_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"STOCKROOM_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"STOCKROOM_ARGON_KEY_LEN" default:"32"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"STOCKROOM_AUTO_MIGRATE" default:"false"`
}
