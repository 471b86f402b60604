package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	FeatureFlags  FeatureFlagsConfig
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
	Env          string `envconfig:"INTERVIA_APP_ENV" required:"true"`
	Port         string `envconfig:"INTERVIA_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"INTERVIA_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"INTERVIA_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN string `envconfig:"INTERVIA_DB_DSN"`

	Host     string `envconfig:"INTERVIA_DB_HOST"`
	Port     int    `envconfig:"INTERVIA_DB_PORT" default:"5432"`
	User     string `envconfig:"INTERVIA_DB_USER"`
	Password string `envconfig:"INTERVIA_DB_PASSWORD"`
	Name     string `envconfig:"INTERVIA_DB_NAME"`
	SSLMode  string `envconfig:"INTERVIA_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"INTERVIA_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"INTERVIA_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"INTERVIA_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"INTERVIA_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"INTERVIA_REDIS_URL"`
	Address      string        `envconfig:"INTERVIA_REDIS_ADDR"`
	Password     string        `envconfig:"INTERVIA_REDIS_PASSWORD"`
	DB           int           `envconfig:"INTERVIA_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"INTERVIA_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"INTERVIA_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"INTERVIA_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"INTERVIA_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"INTERVIA_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"INTERVIA_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"INTERVIA_JWT_ISSUER" default:"intervia"`
	ExpirationMinutes      int    `envconfig:"INTERVIA_JWT_EXPIRATION_MINUTES" default:"30"`
	RefreshTokenTTLMinutes int    `envconfig:"INTERVIA_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"INTERVIA_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"INTERVIA_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"INTERVIA_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"INTERVIA_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"INTERVIA_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"INTERVIA_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit    int           `envconfig:"INTERVIA_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"INTERVIA_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow     time.Duration `envconfig:"INTERVIA_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterEmailLimit int           `envconfig:"INTERVIA_AUTH_RATE_LIMIT_REGISTER_EMAIL_LIMIT" default:"3"`
	RegisterIPLimit    int           `envconfig:"INTERVIA_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

type FeatureFlagsConfig struct {
	AutoMigrate  bool `envconfig:"INTERVIA_AUTO_MIGRATE" default:"false"`
	SeedDemoData bool `envconfig:"INTERVIA_SEED_DEMO_DATA" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	values := map[string]string{
		EnvDBHost: db.Host,
		EnvDBUser: db.User,
		EnvDBName: db.Name,
	}
	for _, env := range requiredDBEnvVars {
		if values[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.User)
	if db.Password != "" {
		userInfo = url.UserPassword(db.User, db.Password)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.Host, db.Port),
		Path:   db.Name,
	}

	if db.SSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.SSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
