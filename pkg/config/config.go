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
	GCP           GCPConfig
	GCS           GCSConfig
	Media         MediaConfig
	Reports       ReportsConfig
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
	Env          string `envconfig:"PHONEDESK_APP_ENV" required:"true"`
	Port         string `envconfig:"PHONEDESK_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"PHONEDESK_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"PHONEDESK_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"PHONEDESK_DB_DSN"`
	Driver string `envconfig:"PHONEDESK_DB_DRIVER" default:"postgres"`

	Host     string `envconfig:"PHONEDESK_DB_HOST"`
	Port     int    `envconfig:"PHONEDESK_DB_PORT" default:"5432"`
	User     string `envconfig:"PHONEDESK_DB_USER"`
	Password string `envconfig:"PHONEDESK_DB_PASSWORD"`
	Name     string `envconfig:"PHONEDESK_DB_NAME"`
	SSLMode  string `envconfig:"PHONEDESK_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"PHONEDESK_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"PHONEDESK_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"PHONEDESK_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"PHONEDESK_DB_CONN_MAX_IDLE_TIME" default:"10m"`

	QueryTimeout time.Duration `envconfig:"PHONEDESK_DB_QUERY_TIMEOUT" default:"10s"`
}

type RedisConfig struct {
	URL          string        `envconfig:"PHONEDESK_REDIS_URL"`
	Address      string        `envconfig:"PHONEDESK_REDIS_ADDR"`
	Password     string        `envconfig:"PHONEDESK_REDIS_PASSWORD"`
	DB           int           `envconfig:"PHONEDESK_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"PHONEDESK_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"PHONEDESK_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"PHONEDESK_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"PHONEDESK_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"PHONEDESK_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"PHONEDESK_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"PHONEDESK_JWT_ISSUER" default:"phonedesk"`
	ExpirationMinutes      int    `envconfig:"PHONEDESK_JWT_EXPIRATION_MINUTES" default:"60"`
	RefreshTokenTTLMinutes int    `envconfig:"PHONEDESK_REFRESH_TOKEN_TTL_MINUTES" default:"10080"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"PHONEDESK_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"PHONEDESK_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"PHONEDESK_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"PHONEDESK_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"PHONEDESK_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"PHONEDESK_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit    int           `envconfig:"PHONEDESK_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"PHONEDESK_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow     time.Duration `envconfig:"PHONEDESK_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterEmailLimit int           `envconfig:"PHONEDESK_AUTH_RATE_LIMIT_REGISTER_EMAIL_LIMIT" default:"3"`
	RegisterIPLimit    int           `envconfig:"PHONEDESK_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"PHONEDESK_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"PHONEDESK_AUTO_MIGRATE" default:"false"`
}

type GCPConfig struct {
	ProjectID              string `envconfig:"PHONEDESK_GCP_PROJECT_ID"`
	CredentialsJSON        string `envconfig:"PHONEDESK_GCP_CREDENTIALS_JSON"`
	ApplicationCredentials string `envconfig:"PHONEDESK_GOOGLE_APPLICATION_CREDENTIALS"`
}

type GCSConfig struct {
	BucketName string `envconfig:"PHONEDESK_GCS_BUCKET_NAME"`
}

type MediaConfig struct {
	MaxUploadMB       int `envconfig:"PHONEDESK_MAX_UPLOAD_MB" default:"10"`
	MaxImagesPerPhone int `envconfig:"PHONEDESK_MAX_IMAGES_PER_PHONE" default:"5"`
}

type ReportsConfig struct {
	DailyLookbackDays     int `envconfig:"PHONEDESK_REPORTS_DAILY_LOOKBACK_DAYS" default:"30"`
	MonthlyLookbackMonths int `envconfig:"PHONEDESK_REPORTS_MONTHLY_LOOKBACK_MONTHS" default:"12"`
	TopN                  int `envconfig:"PHONEDESK_REPORTS_TOP_N" default:"10"`
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
