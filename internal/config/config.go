package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	Env   string      `yaml:"env" env:"ENV" env-default:"local"`
	DSN   string      `yaml:"dsn" env:"DSN" env-required:"true"`
	HTTP  HTTPConfig  `yaml:"http"`
	Admin AdminConfig `yaml:"admin"`
	JWT   JWTConfig   `yaml:"jwt"`
	Mail  MailConfig  `yaml:"mail"`
	Redis RedisConf   `yaml:"redis"`
	Cache CacheConfig `yaml:"cache"`
}

type HTTPConfig struct {
	Host         string        `yaml:"host" env:"HTTP_HOST"`
	Port         string        `yaml:"port" env:"HTTP_PORT" env-default:"8080"`
	CORSOrigins  []string      `yaml:"cors_origins" env:"CORS_ORIGINS" env-default:"*"`
	ReadTimeout  time.Duration `yaml:"read_timeout" env-default:"10s"`
	WriteTimeout time.Duration `yaml:"write_timeout" env-default:"5m"`
}

// AdminConfig is the single administrative identity. PasswordHash (bcrypt)
// takes precedence over Password.
type AdminConfig struct {
	Username     string `yaml:"username" env:"ADMIN_USERNAME" env-required:"true"`
	Password     string `yaml:"password" env:"ADMIN_PASSWORD"`
	PasswordHash string `yaml:"password_hash" env:"ADMIN_PASSWORD_HASH"`
}

type JWTConfig struct {
	Secret    string        `yaml:"secret" env:"JWT_SECRET_KEY" env-required:"true"`
	Algorithm string        `yaml:"algorithm" env:"JWT_ALGORITHM" env-default:"HS256"`
	TokenTTL  time.Duration `yaml:"token_ttl" env:"JWT_TOKEN_TTL" env-default:"24h"`
}

type MailConfig struct {
	Host      string        `yaml:"host" env:"SMTP_HOST"`
	Port      int           `yaml:"port" env:"SMTP_PORT" env-default:"465"`
	Username  string        `yaml:"username" env:"SMTP_USERNAME"`
	Password  string        `yaml:"password" env:"SMTP_PASSWORD"`
	FromEmail string        `yaml:"from_email" env:"SMTP_FROM_EMAIL"`
	FromName  string        `yaml:"from_name" env:"SMTP_FROM_NAME" env-default:"Психологический центр развития"`
	Workers   int           `yaml:"workers" env:"SMTP_WORKERS" env-default:"1"`
	Timeout   time.Duration `yaml:"timeout" env-default:"15s"`
}

type RedisConf struct {
	RedisAddr     string `yaml:"redis_addr" env:"REDIS_ADDR"`
	RedisPassword string `yaml:"redis_password" env:"REDIS_PASSWORD"`
	RedisDB       int    `yaml:"redis_db" env:"REDIS_DB"`
}

type CacheConfig struct {
	TTL time.Duration `yaml:"ttl" env:"CACHE_TTL" env-default:"5m"`
}

func MustLoad() *Config {
	path := fetchConfigPath()
	if path == "" {
		panic("config path is empty")
	}

	return MustLoadPath(path)
}

func MustLoadPath(configPath string) *Config {
	cfg, err := LoadPath(configPath)
	if err != nil {
		panic(err.Error())
	}

	return cfg
}

// LoadPath reads the YAML file and applies environment overrides. A .env file
// in the working directory is loaded first when present.
func LoadPath(configPath string) (*Config, error) {
	// check if file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", configPath)
	}

	_ = godotenv.Load()

	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, fmt.Errorf("cannot read config: %w", err)
	}

	if cfg.Admin.Password == "" && cfg.Admin.PasswordHash == "" {
		return nil, errors.New("admin password or password_hash is required")
	}

	if cfg.Mail.FromEmail == "" {
		cfg.Mail.FromEmail = cfg.Mail.Username
	}

	return &cfg, nil
}

func fetchConfigPath() string {
	var res string

	// --config="path/to/config.yaml"
	flag.StringVar(&res, "config", "", "path to config file")
	flag.Parse()

	if res == "" {
		res = os.Getenv("CONFIG_PATH")
	}

	return res
}
