package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// The values are read by Viper from a config file or environment variables.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Mongo     MongoConfig     `mapstructure:"mongo"`
	Postgres  PostgresConfig  `mapstructure:"postgres"`
	S3        S3Config        `mapstructure:"s3"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	Redis     RedisConfig     `mapstructure:"redis"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
	Log       LogConfig       `mapstructure:"log"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
}

type ServerConfig struct {
	Address        string   `mapstructure:"address"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type MongoConfig struct {
	URI  string `mapstructure:"uri"`
	Name string `mapstructure:"name"`
}

type PostgresConfig struct {
	Host        string `mapstructure:"host"`
	Port        int    `mapstructure:"port"`
	User        string `mapstructure:"user"`
	Password    string `mapstructure:"password"`
	Name        string `mapstructure:"name"`
	SSLMode     string `mapstructure:"sslmode"`
	AutoMigrate bool   `mapstructure:"auto_migrate"`
}

type S3Config struct {
	Endpoint        string `mapstructure:"endpoint"`
	Region          string `mapstructure:"region"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	BucketName      string `mapstructure:"bucket_name"`
	// Prefix of public video URLs. Derived from endpoint and bucket when empty.
	PublicBaseURL string `mapstructure:"public_base_url"`
}

// Enabled reports whether video storage is configured.
func (c S3Config) Enabled() bool {
	return c.BucketName != ""
}

// JWTConfig defines JWT specific configuration
type JWTConfig struct {
	Secret     string        `mapstructure:"secret"`
	Expiration time.Duration `mapstructure:"expiration"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

func (c RedisConfig) Enabled() bool {
	return c.Addr != ""
}

type RateLimitConfig struct {
	LoginLimit  int           `mapstructure:"login_limit"`
	LoginWindow time.Duration `mapstructure:"login_window"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	JSON  bool   `mapstructure:"json"`
	File  string `mapstructure:"file"`
}

type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

var ErrMissingJWTSecret = errors.New("jwt.secret must be set")

// defaults lists every key. Viper only maps env vars onto keys it knows about,
// so empty defaults are registered too.
var defaults = map[string]any{
	"server.address":         ":3001",
	"server.allowed_origins": []string{"http://localhost:5173"},
	"mongo.uri":              "mongodb://localhost:27017",
	"mongo.name":             "gym_app",
	"postgres.host":          "localhost",
	"postgres.port":          5432,
	"postgres.user":          "postgres",
	"postgres.password":      "",
	"postgres.name":          "gym",
	"postgres.sslmode":       "disable",
	"postgres.auto_migrate":  false,
	"s3.endpoint":            "",
	"s3.region":              "us-east-1",
	"s3.access_key_id":       "",
	"s3.secret_access_key":   "",
	"s3.bucket_name":         "",
	"s3.public_base_url":     "",
	"jwt.secret":             "",
	"jwt.expiration":         "8h",
	"redis.addr":             "",
	"redis.password":         "",
	"redis.db":               0,
	"ratelimit.login_limit":  10,
	"ratelimit.login_window": "1m",
	"log.level":              "info",
	"log.json":               false,
	"log.file":               "",
	"metrics.enabled":        true,
}

// LoadConfig reads configuration from path/config.yaml, a .env file in the
// working directory and environment variables, in increasing precedence.
func LoadConfig(path string) (config Config, err error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// server.address -> SERVER_ADDRESS, jwt.expiration -> JWT_EXPIRATION
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(`.`, `_`))

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if err = v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return config, err
		}
	}

	if err = v.Unmarshal(&config); err != nil {
		return config, err
	}

	// Origins from the environment are comma separated.
	config.Server.AllowedOrigins = splitList(strings.Join(config.Server.AllowedOrigins, ","))

	if config.JWT.Secret == "" {
		return config, ErrMissingJWTSecret
	}
	return config, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
