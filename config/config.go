package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" yaml:"server"`
	Storage  StorageConfig  `mapstructure:"storage" yaml:"storage"`
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`
	Redis    RedisConfig    `mapstructure:"redis" yaml:"redis"`
	Kafka    KafkaConfig    `mapstructure:"kafka" yaml:"kafka"`
	JWT      JWTConfig      `mapstructure:"jwt" yaml:"jwt"`
	Auth     AuthConfig     `mapstructure:"auth" yaml:"auth"`
	Register RegisterConfig `mapstructure:"register" yaml:"register"`
	Log      LogConfig      `mapstructure:"log" yaml:"log"`
}

type ServerConfig struct {
	Host string `mapstructure:"host" yaml:"host"`
	Port int    `mapstructure:"port" yaml:"port"`
	Mode string `mapstructure:"mode" yaml:"mode"` // debug, release, test
}

// StorageConfig selects the persistence backend.
type StorageConfig struct {
	Driver string `mapstructure:"driver" yaml:"driver"` // postgres, memory
}

type DatabaseConfig struct {
	Host            string        `mapstructure:"host" yaml:"host"`
	Port            int           `mapstructure:"port" yaml:"port"`
	User            string        `mapstructure:"user" yaml:"user"`
	Password        string        `mapstructure:"password" yaml:"password"`
	DBName          string        `mapstructure:"dbname" yaml:"dbname"`
	SSLMode         string        `mapstructure:"sslmode" yaml:"sslmode"`
	MaxConns        int32         `mapstructure:"max_conns" yaml:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns" yaml:"min_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime" yaml:"conn_max_lifetime"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled" yaml:"enabled"`
	Host     string `mapstructure:"host" yaml:"host"`
	Port     int    `mapstructure:"port" yaml:"port"`
	Password string `mapstructure:"password" yaml:"password"`
	DB       int    `mapstructure:"db" yaml:"db"`
}

// Addr returns the Redis address string.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type KafkaConfig struct {
	Enabled bool     `mapstructure:"enabled" yaml:"enabled"`
	Brokers []string `mapstructure:"brokers" yaml:"brokers"`
	Topic   string   `mapstructure:"topic" yaml:"topic"`

	// SigningSecret keys the HMAC signature header; empty disables signing.
	SigningSecret string `mapstructure:"signing_secret" yaml:"signing_secret"`
}

type JWTConfig struct {
	Secret string        `mapstructure:"secret" yaml:"secret"`
	Expiry time.Duration `mapstructure:"expiry" yaml:"expiry"`
	Issuer string        `mapstructure:"issuer" yaml:"issuer"`
}

// AuthConfig holds the single register operator credentials.
type AuthConfig struct {
	OperatorUsername     string `mapstructure:"operator_username" yaml:"operator_username"`
	OperatorPasswordHash string `mapstructure:"operator_password_hash" yaml:"operator_password_hash"` // argon2id encoded
}

// RegisterConfig tunes the transaction engine.
type RegisterConfig struct {
	LockTimeout    time.Duration `mapstructure:"lock_timeout" yaml:"lock_timeout"`
	IdempotencyTTL time.Duration `mapstructure:"idempotency_ttl" yaml:"idempotency_ttl"`
	Denominations  []int64       `mapstructure:"denominations" yaml:"denominations"` // seeded at startup when missing
}

type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`   // debug, info, warn, error
	Pretty bool   `mapstructure:"pretty" yaml:"pretty"` // human-readable output (dev only)
}

// Load reads configuration from file and environment variables.
// Environment variables override file values. Prefix: CRG_ (Cash ReGister).
// Nested keys use underscore: CRG_DATABASE_HOST, CRG_REGISTER_LOCK_TIMEOUT, etc.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("storage.driver", "postgres")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.dbname", "cash_register")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 20)
	v.SetDefault("database.min_conns", 2)
	v.SetDefault("database.conn_max_lifetime", "30m")
	v.SetDefault("redis.enabled", true)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("kafka.enabled", false)
	v.SetDefault("kafka.brokers", []string{"localhost:9092"})
	v.SetDefault("kafka.topic", "cash_register_events")
	v.SetDefault("kafka.signing_secret", "")
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.expiry", "8h")
	v.SetDefault("jwt.issuer", "cash-register")
	v.SetDefault("auth.operator_username", "operator")
	v.SetDefault("auth.operator_password_hash", "")
	v.SetDefault("register.lock_timeout", "5s")
	v.SetDefault("register.idempotency_ttl", "24h")
	v.SetDefault("register.denominations", []int64{})
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Environment variables: CRG_DATABASE_HOST -> database.host
	v.SetEnvPrefix("CRG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Config file is optional, env vars can suffice.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Storage.Driver {
	case "postgres", "memory":
	default:
		return fmt.Errorf("unsupported storage driver %q", c.Storage.Driver)
	}
	if c.Register.LockTimeout <= 0 {
		return fmt.Errorf("register.lock_timeout must be positive")
	}
	for _, d := range c.Register.Denominations {
		if d <= 0 {
			return fmt.Errorf("register.denominations: invalid value %d", d)
		}
	}
	return nil
}
