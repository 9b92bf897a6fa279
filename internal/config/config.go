package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	LogLevel        string `yaml:"log-level" env:"TICTACTOE_LOG_LEVEL" env-default:"info"`
	AppID           string `yaml:"app-id" env:"TICTACTOE_APP_ID" env-default:"default-app-id"`
	HTTPPort        string `yaml:"http-port" env:"TICTACTOE_HTTP_PORT" env-default:"9090"`
	PublicURL       string `yaml:"public-url" env:"TICTACTOE_PUBLIC_URL"`
	PreferencesPath string `yaml:"preferences-path" env:"TICTACTOE_PREFERENCES_PATH"`
	Redis           Redis  `yaml:"redis"`
	Auth            Auth   `yaml:"auth"`
}

type Redis struct {
	Host     string `yaml:"host" env:"TICTACTOE_REDIS_HOST" env-default:"localhost"`
	Port     string `yaml:"port" env:"TICTACTOE_REDIS_PORT" env-default:"6379"`
	Password string `yaml:"password" env:"TICTACTOE_REDIS_PASSWORD"`
	DB       int    `yaml:"db" env:"TICTACTOE_REDIS_DB" env-default:"0"`
}

type Auth struct {
	CustomToken  string        `yaml:"custom-token" env:"TICTACTOE_CUSTOM_TOKEN"`
	JWTSecretKey string        `yaml:"jwt-secret-key" env:"TICTACTOE_JWT_SECRET_KEY"`
	WaitTimeout  time.Duration `yaml:"wait-timeout" env:"TICTACTOE_AUTH_WAIT_TIMEOUT" env-default:"5s"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}

// Load - reads .env if present, then the config file with environment overrides. A missing
// config file leaves defaults and environment only.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("unable to load .env file: %w", err)
	}

	config := &Config{}

	_, err := os.Stat(path)
	switch {
	case err == nil:
		if err = cleanenv.ReadConfig(path, config); err != nil {
			return nil, fmt.Errorf("unable to load config file: %w", err)
		}
	case errors.Is(err, fs.ErrNotExist):
		if err = cleanenv.ReadEnv(config); err != nil {
			return nil, fmt.Errorf("unable to load config from environment: %w", err)
		}
	default:
		return nil, fmt.Errorf("unable to stat config file: %w", err)
	}

	return config, nil
}

func (that *Redis) GetRedisAddr() string {
	return net.JoinHostPort(that.Host, that.Port)
}

// HasCustomToken - custom token sign in needs both the token and the key to verify it.
func (that *Auth) HasCustomToken() bool {
	return that.CustomToken != "" && that.JWTSecretKey != ""
}

func (that *Config) HTTPAddr() string {
	if _, err := strconv.Atoi(that.HTTPPort); err == nil {
		return ":" + that.HTTPPort
	}

	return that.HTTPPort
}
