package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DefaultEnvPath = ".env"
	SecretKey      = "changeme"
	EnvLocal       = "local"
	EnvDev         = "dev"
	EnvProd        = "prod"
)

var defaultOrigins = []string{
	"http://localhost:3000",
	"http://127.0.0.1:3000",
	"http://localhost:5173",
	"http://127.0.0.1:5173",
}

type Config struct {
	AppName string
	Env     string
	DB      db
	Server  server
	Auth    auth
}

type db struct {
	DatabaseURI string `env:"DATABASE_URI"`
	Migrations  string `env:"MIGRATIONS_PATH"`
	AutoMigrate bool   `env:"AUTO_MIGRATE" envDefault:"true"`
}

type server struct {
	RunAddress     string   `env:"RUN_ADDRESS" envDefault:":8000"`
	CORSOrigins    []string `env:"CORS_ORIGINS"`
	RateLimitRPS   float64  `env:"RATE_LIMIT_RPS" envDefault:"5"`
	RateLimitBurst int      `env:"RATE_LIMIT_BURST" envDefault:"10"`
	TrustedProxies []string `env:"TRUSTED_PROXIES"`
}

type auth struct {
	Secret         string        `env:"SECRET_KEY"`
	AccessTokenTTL time.Duration `env:"ACCESS_TOKEN_EXPIRE_MINUTES" envDefault:"30"`
}

// MustLoad reads envPath (if present) and the process environment.
// Values missing from both fall back to local development defaults.
func MustLoad(envPath string) *Config {
	if envPath == "" {
		envPath = DefaultEnvPath
	}
	if err := godotenv.Load(envPath); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("app_name", "Aami API")
	v.SetDefault("app_env", EnvLocal)
	v.SetDefault("secret_key", SecretKey)
	v.SetDefault("database_uri", "postgresql://vault:changeme@db:5432/vaultdb?sslmode=disable")
	v.SetDefault("auto_migrate", true)
	v.SetDefault("run_address", ":8000")
	v.SetDefault("access_token_expire_minutes", 30)
	v.SetDefault("rate_limit_rps", 5)
	v.SetDefault("rate_limit_burst", 10)

	ttl := v.GetInt("access_token_expire_minutes")
	if ttl <= 0 {
		ttl = 30
	}
	rps := v.GetFloat64("rate_limit_rps")
	if rps <= 0 {
		rps = 5
	}
	burst := v.GetInt("rate_limit_burst")
	if burst <= 0 {
		burst = 10
	}

	config := Config{
		AppName: v.GetString("app_name"),
		Env:     v.GetString("app_env"),
		DB: db{
			DatabaseURI: v.GetString("database_uri"),
			Migrations:  v.GetString("migrations_path"),
			AutoMigrate: v.GetBool("auto_migrate"),
		},
		Server: server{
			RunAddress:     v.GetString("run_address"),
			CORSOrigins:    splitList(v.GetString("cors_origins"), defaultOrigins),
			RateLimitRPS:   rps,
			RateLimitBurst: burst,
			TrustedProxies: splitList(v.GetString("trusted_proxies"), nil),
		},
		Auth: auth{
			Secret:         v.GetString("secret_key"),
			AccessTokenTTL: time.Duration(ttl) * time.Minute,
		},
	}

	return &config
}

// UsesDefaultSecret reports whether tokens would be signed with the built-in key.
func (c *Config) UsesDefaultSecret() bool {
	return c.Auth.Secret == SecretKey
}

func splitList(raw string, fallback []string) []string {
	if strings.TrimSpace(raw) == "" {
		return append([]string(nil), fallback...)
	}

	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
