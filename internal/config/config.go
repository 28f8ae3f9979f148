package config

import (
	"errors"
	"flag"
	"io/fs"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const (
	EnvLocal = "local"
	EnvProd  = "prod"
)

type Config struct {
	Env        string     `yaml:"env" env:"ENV" env-default:"prod"`
	PostgreSQL PostgreSQL `yaml:"postgresql"`
	HTTPServer HTTPServer `yaml:"http_server"`
	JWT        JWT        `yaml:"jwt"`
	Minio      Minio      `yaml:"minio"`
	Resend     Resend     `yaml:"resend"`
	Site       Site       `yaml:"site"`
}

// PostgreSQL is optional. Without a host the service starts with the member
// area disabled.
type PostgreSQL struct {
	Host     string `yaml:"host" env:"POSTGRES_HOST"`
	Port     string `yaml:"port" env:"POSTGRES_PORT" env-default:"5432"`
	Username string `yaml:"username" env:"POSTGRES_USER"`
	Password string `yaml:"password" env:"POSTGRES_PASSWORD"`
	Database string `yaml:"database" env:"POSTGRES_DB"`
}

func (p PostgreSQL) Configured() bool {
	return p.Host != "" && p.Database != ""
}

type HTTPServer struct {
	Address        string        `yaml:"address" env:"HTTP_ADDRESS" env-default:":8080"`
	Timeout        time.Duration `yaml:"timeout" env-default:"4s"`
	IdleTimeout    time.Duration `yaml:"idle_timeout" env-default:"60s"`
	AllowedOrigins []string      `yaml:"allowed_origins" env-default:"*"`
	StaticURL      string        `yaml:"static_url" env:"STATIC_URL"`
	// APIKey, when set, must accompany every /api request in the X-API-Key header.
	APIKey string `yaml:"api_key" env:"API_KEY"`
}

type JWT struct {
	Secret          string        `yaml:"secret" env:"JWT_SECRET" env-required:"true"`
	AccessTokenTTL  time.Duration `yaml:"access_token_ttl" env-default:"15m"`
	RefreshTokenTTL time.Duration `yaml:"refresh_token_ttl" env-default:"720h"`
	ResetTokenTTL   time.Duration `yaml:"reset_token_ttl" env-default:"1h"`
}

type Minio struct {
	Endpoint        string `yaml:"endpoint" env:"MINIO_ENDPOINT"`
	AccessKeyID     string `yaml:"access_key_id" env:"MINIO_ACCESS_KEY_ID"`
	SecretAccessKey string `yaml:"secret_access_key" env:"MINIO_SECRET_ACCESS_KEY"`
	UseSSL          bool   `yaml:"use_ssl" env:"MINIO_USE_SSL"`
	Bucket          string `yaml:"bucket" env-default:"logos"`
}

func (m Minio) Configured() bool {
	return m.Endpoint != ""
}

type Resend struct {
	APIKey string `yaml:"api_key" env:"RESEND_API_KEY"`
	From   string `yaml:"from" env:"RESEND_FROM" env-default:"TCA <noreply@tca.example.com>"`
	// Inbox receives nomination and contact form notifications.
	Inbox string `yaml:"inbox" env:"RESEND_INBOX"`
}

func (r Resend) Configured() bool {
	return r.APIKey != ""
}

type Site struct {
	URL string `yaml:"url" env:"SITE_URL" env-default:"http://localhost:3000"`
}

// Client configures the member console.
type Client struct {
	URL         string `env:"TCA_URL"`
	APIKey      string `env:"TCA_API_KEY"`
	SessionFile string `env:"TCA_SESSION_FILE"`
}

func MustLoad() *Config {
	configPath := fetchConfigPath()
	if configPath == "" {
		panic("config path is empty")
	}

	return MustLoadByPath(configPath)
}

func MustLoadByPath(configPath string) *Config {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}

	if err := LoadDotEnv(); err != nil {
		panic("dotenv reading error: " + err.Error())
	}

	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		panic("config reading error: " + err.Error())
	}

	return &cfg
}

// LoadClient reads the console configuration from the environment.
func LoadClient() (*Client, error) {
	if err := LoadDotEnv(); err != nil {
		return nil, err
	}

	var cfg Client
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadDotEnv loads .env.local and then .env into the process environment.
// Variables that are already set win; missing files are ignored.
func LoadDotEnv() error {
	for _, name := range []string{".env.local", ".env"} {
		if err := godotenv.Load(name); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}

	return nil
}

// fetchConfigPath fetches config path from command line flag or environment variable.
// Priority: flag > env > default.
// Default value is empty string.
func fetchConfigPath() string {
	var res string

	flag.StringVar(&res, "config", "", "path to config file")
	flag.Parse()

	if res == "" {
		res = os.Getenv("CONFIG_PATH")
	}

	return res
}
