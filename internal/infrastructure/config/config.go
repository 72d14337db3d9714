package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the global configuration, loaded by viper from an optional YAML
// file and overridden by environment variables.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Log      LogConfig      `mapstructure:"log"`
	Mail     MailConfig     `mapstructure:"mail"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Image    ImageConfig    `mapstructure:"image"`
	Admin    AdminConfig    `mapstructure:"admin"`
	Google   GoogleConfig   `mapstructure:"google"`
	RabbitMQ RabbitMQConfig `mapstructure:"rabbitmq"`
	Tracing  TracingConfig  `mapstructure:"tracing"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
}

type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	Mode            string        `mapstructure:"mode"` // debug | release | test
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	EnableSwagger   bool          `mapstructure:"enable_swagger"`
	CORSOrigins     []string      `mapstructure:"cors_origins"`
}

type DatabaseConfig struct {
	URL             string        `mapstructure:"url"`
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	TimeZone        string        `mapstructure:"timezone"`
	AutoMigrate     bool          `mapstructure:"auto_migrate"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// DSN returns the connection string for the Postgres driver.
// A full DATABASE_URL wins over the discrete fields.
func (d DatabaseConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s TimeZone=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode, d.TimeZone)
}

type RedisConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	Password     string        `mapstructure:"password"`
	DB           int           `mapstructure:"db"`
	PoolSize     int           `mapstructure:"pool_size"`
	MinIdleConns int           `mapstructure:"min_idle_conns"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// Addr returns host:port.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type JWTConfig struct {
	Secret     string        `mapstructure:"secret"`
	Expiration time.Duration `mapstructure:"expiration"`
}

type LogConfig struct {
	Level        string `mapstructure:"level"`  // debug | info | warn | error
	Format       string `mapstructure:"format"` // console | json
	Output       string `mapstructure:"output"` // stdout | stderr | /path/to/file
	EnableCaller bool   `mapstructure:"enable_caller"`
}

// MailConfig selects the transactional mail provider.
type MailConfig struct {
	Provider     string `mapstructure:"provider"` // resend | smtp | log
	From         string `mapstructure:"from"`
	ResendAPIKey string `mapstructure:"resend_api_key"`
	SMTPHost     string `mapstructure:"smtp_host"`
	SMTPPort     int    `mapstructure:"smtp_port"`
	SMTPUser     string `mapstructure:"smtp_user"`
	SMTPPassword string `mapstructure:"smtp_password"`
	// Provider calls fail fast for BreakerTimeout after BreakerFailures
	// consecutive errors.
	BreakerFailures uint32        `mapstructure:"breaker_failures"`
	BreakerTimeout  time.Duration `mapstructure:"breaker_timeout"`
}

// StorageConfig selects where optimized uploads are written.
type StorageConfig struct {
	Driver      string `mapstructure:"driver"` // local | gcs
	LocalDir    string `mapstructure:"local_dir"`
	PublicPath  string `mapstructure:"public_path"`
	ProjectID   string `mapstructure:"project_id"`
	KeyFilename string `mapstructure:"key_filename"`
	BucketName  string `mapstructure:"bucket_name"`
	MaxFileSize int64  `mapstructure:"max_file_size"`
}

// ImageConfig controls upload optimization.
type ImageConfig struct {
	Optimize         bool `mapstructure:"optimize"`
	MaxProductImages int  `mapstructure:"max_product_images"`
}

type AdminConfig struct {
	Email    string `mapstructure:"email"`
	Password string `mapstructure:"password"`
}

type GoogleConfig struct {
	ClientID     string `mapstructure:"client_id"`
	ClientSecret string `mapstructure:"client_secret"`
	CallbackURL  string `mapstructure:"callback_url"`
}

// Enabled reports whether Google sign-in is configured.
func (g GoogleConfig) Enabled() bool {
	return g.ClientID != "" && g.ClientSecret != ""
}

type RabbitMQConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	URL      string `mapstructure:"url"`
	Exchange string `mapstructure:"exchange"`
}

type TracingConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	ServiceName string `mapstructure:"service_name"`
	Endpoint    string `mapstructure:"endpoint"`
}

type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// flatEnv binds config keys to the environment variable names the deployment
// already uses. Every other key is reachable as BLEND_<SECTION>_<KEY>.
var flatEnv = map[string]string{
	"server.port":             "PORT",
	"database.url":            "DATABASE_URL",
	"database.host":           "DATABASE_HOST",
	"database.port":           "DATABASE_PORT",
	"database.user":           "DATABASE_USER",
	"database.password":       "DATABASE_PASSWORD",
	"database.dbname":         "DATABASE_NAME",
	"jwt.secret":              "JWT_SECRET",
	"jwt.expiration":          "JWT_EXPIRATION",
	"mail.resend_api_key":     "RESEND_API_KEY",
	"mail.from":               "FROM_EMAIL",
	"storage.project_id":      "PROJECT_ID",
	"storage.key_filename":    "KEYFILENAME",
	"storage.bucket_name":     "BUCKET_NAME",
	"admin.email":             "ADMIN_EMAIL",
	"admin.password":          "ADMIN_PASSWORD",
	"google.client_id":        "GOOGLE_CLIENT_ID",
	"google.client_secret":    "GOOGLE_CLIENT_SECRET",
	"google.callback_url":     "GOOGLE_CALLBACK_URL",
	"rabbitmq.url":            "RABBITMQ_URL",
	"tracing.endpoint":        "OTEL_EXPORTER_OTLP_ENDPOINT",
	"redis.password":          "REDIS_PASSWORD",
	"storage.local_dir":       "UPLOAD_DIR",
	"database.sslmode":        "DATABASE_SSLMODE",
	"mail.provider":           "MAIL_PROVIDER",
	"storage.driver":          "STORAGE_DRIVER",
	"server.mode":             "GIN_MODE",
	"database.auto_migrate":   "DATABASE_AUTO_MIGRATE",
	"server.enable_swagger":   "ENABLE_SWAGGER",
	"metrics.enabled":         "METRICS_ENABLED",
	"redis.enabled":           "REDIS_ENABLED",
	"rabbitmq.enabled":        "RABBITMQ_ENABLED",
	"tracing.enabled":         "TRACING_ENABLED",
	"log.level":               "LOG_LEVEL",
	"log.format":              "LOG_FORMAT",
	"storage.max_file_size":   "MAX_FILE_SIZE",
	"server.shutdown_timeout": "SHUTDOWN_TIMEOUT",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 3000)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("server.enable_swagger", true)
	v.SetDefault("server.cors_origins", []string{"*"})

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.dbname", "blend")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.timezone", "UTC")
	v.SetDefault("database.auto_migrate", true)
	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.conn_max_lifetime", time.Hour)

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.pool_size", 10)
	v.SetDefault("redis.min_idle_conns", 2)
	v.SetDefault("redis.dial_timeout", 5*time.Second)
	v.SetDefault("redis.read_timeout", 3*time.Second)
	v.SetDefault("redis.write_timeout", 3*time.Second)

	v.SetDefault("jwt.expiration", 24*time.Hour)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("log.output", "stdout")

	v.SetDefault("mail.provider", "log")
	v.SetDefault("mail.from", "Blend <noreply@blend.am>")
	v.SetDefault("mail.smtp_port", 587)
	v.SetDefault("mail.breaker_failures", 5)
	v.SetDefault("mail.breaker_timeout", "60s")

	v.SetDefault("storage.driver", "local")
	v.SetDefault("storage.local_dir", "./uploads")
	v.SetDefault("storage.public_path", "/uploads")
	v.SetDefault("storage.max_file_size", 5*1024*1024)

	v.SetDefault("image.optimize", true)
	v.SetDefault("image.max_product_images", 10)

	v.SetDefault("admin.email", "admin@example.com")
	v.SetDefault("admin.password", "admin123")

	v.SetDefault("rabbitmq.exchange", "blend.events")

	v.SetDefault("tracing.service_name", "blend-api")
	v.SetDefault("tracing.endpoint", "localhost:4317")

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")
}

// Load reads config/config.yaml (or config.<BLEND_ENV>.yaml) when present and
// applies environment overrides. A missing file is not an error.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(".")
	v.SetConfigName("config")

	v.SetEnvPrefix("BLEND")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if env := v.GetString("env"); env != "" {
		v.SetConfigName("config." + env)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	for key, env := range flatEnv {
		if err := v.BindEnv(key, "BLEND_"+strings.ToUpper(strings.ReplaceAll(key, ".", "_")), env); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", env, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func validate(cfg *Config) error {
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", cfg.Server.Port)
	}

	if cfg.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET is not defined")
	}
	if cfg.Server.Mode == "release" && len(cfg.JWT.Secret) < 32 {
		return fmt.Errorf("JWT secret must be at least 32 characters in release mode")
	}
	if cfg.JWT.Expiration <= 0 {
		return fmt.Errorf("invalid jwt expiration: %s", cfg.JWT.Expiration)
	}

	switch cfg.Storage.Driver {
	case "local":
	case "gcs":
		if cfg.Storage.BucketName == "" {
			return fmt.Errorf("BUCKET_NAME is required for the gcs storage driver")
		}
	default:
		return fmt.Errorf("unknown storage driver: %q", cfg.Storage.Driver)
	}

	switch cfg.Mail.Provider {
	case "log":
	case "resend":
		if cfg.Mail.ResendAPIKey == "" {
			return fmt.Errorf("RESEND_API_KEY is required for the resend mail provider")
		}
	case "smtp":
		if cfg.Mail.SMTPHost == "" {
			return fmt.Errorf("smtp_host is required for the smtp mail provider")
		}
	default:
		return fmt.Errorf("unknown mail provider: %q", cfg.Mail.Provider)
	}

	return nil
}
