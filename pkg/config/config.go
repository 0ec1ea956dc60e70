package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Password     PasswordConfig
	Documents    DocumentsConfig
	Sendgrid     SendgridConfig
	Bootstrap    BootstrapConfig
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
	Env          string `envconfig:"HEAVYRENT_APP_ENV" required:"true"`
	Port         string `envconfig:"HEAVYRENT_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"HEAVYRENT_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"HEAVYRENT_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"HEAVYRENT_DB_DSN"`
	Driver string `envconfig:"HEAVYRENT_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"HEAVYRENT_DB_HOST"`
	LegacyPort     int    `envconfig:"HEAVYRENT_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"HEAVYRENT_DB_USER"`
	LegacyPassword string `envconfig:"HEAVYRENT_DB_PASSWORD"`
	LegacyName     string `envconfig:"HEAVYRENT_DB_NAME"`
	LegacySSLMode  string `envconfig:"HEAVYRENT_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"HEAVYRENT_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"HEAVYRENT_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"HEAVYRENT_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"HEAVYRENT_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"HEAVYRENT_REDIS_URL"`
	Address      string        `envconfig:"HEAVYRENT_REDIS_ADDR"`
	Password     string        `envconfig:"HEAVYRENT_REDIS_PASSWORD"`
	DB           int           `envconfig:"HEAVYRENT_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"HEAVYRENT_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"HEAVYRENT_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"HEAVYRENT_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"HEAVYRENT_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"HEAVYRENT_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"HEAVYRENT_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"HEAVYRENT_JWT_ISSUER" default:"heavyrent"`
	ExpirationMinutes int    `envconfig:"HEAVYRENT_JWT_EXPIRATION_MINUTES" default:"60"`
}

// Expiration returns the access token lifetime.
func (j JWTConfig) Expiration() time.Duration {
	if j.ExpirationMinutes <= 0 {
		return time.Hour
	}
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"HEAVYRENT_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"HEAVYRENT_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"HEAVYRENT_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"HEAVYRENT_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"HEAVYRENT_ARGON_KEY_LEN" default:"32"`
}

type DocumentsConfig struct {
	StorageDir  string `envconfig:"HEAVYRENT_DOCUMENTS_DIR" default:"storage/documents"`
	MaxUploadMB int    `envconfig:"HEAVYRENT_DOCUMENTS_MAX_UPLOAD_MB" default:"10"`
}

// MaxUploadBytes returns the decoded-size ceiling for document uploads.
func (d DocumentsConfig) MaxUploadBytes() int64 {
	if d.MaxUploadMB <= 0 {
		return 10 << 20
	}
	return int64(d.MaxUploadMB) << 20
}

type SendgridConfig struct {
	APIKey      string `envconfig:"HEAVYRENT_SENDGRID_API_KEY"`
	DefaultFrom string `envconfig:"HEAVYRENT_SENDGRID_FROM_EMAIL"`
}

type BootstrapConfig struct {
	AdminEmail    string `envconfig:"HEAVYRENT_BOOTSTRAP_ADMIN_EMAIL"`
	AdminPassword string `envconfig:"HEAVYRENT_BOOTSTRAP_ADMIN_PASSWORD"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"HEAVYRENT_AUTO_MIGRATE" default:"false"`
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
