package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override, e.g. BLOG_ADDR.
const EnvPrefix = "BLOG_"

type Config struct {
	Addr     string         `yaml:"addr"`
	DiagAddr string         `yaml:"diag_addr"`
	LogLevel string         `yaml:"log_level"`
	Auth     AuthConfig     `yaml:"auth"`
	Database DatabaseConfig `yaml:"database"`
	RabbitMQ RabbitMQConfig `yaml:"rabbitmq"`
}

// AuthConfig is the single credential pair guarding the write routes.
type AuthConfig struct {
	Realm    string `yaml:"realm"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

type DatabaseConfig struct {
	Driver   string `yaml:"driver"` // memory, postgres or sqlite3
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
	Path     string `yaml:"path"` // sqlite3 file
}

func (d DatabaseConfig) DSN() string {
	if d.Driver == "sqlite3" {
		return d.Path
	}

	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

// RabbitMQConfig enables article event publishing when URL is set.
type RabbitMQConfig struct {
	URL        string `yaml:"url"`
	Exchange   string `yaml:"exchange"`
	RoutingKey string `yaml:"routing_key"`
	QueueName  string `yaml:"queue_name"`
}

// Load reads .env, the optional YAML file at path and BLOG_* overrides.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	var cfg Config

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("read config file: %w", err)
		default:
			expanded := os.ExpandEnv(string(data))
			if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
				return nil, fmt.Errorf("parse config: %w", err)
			}
		}
	}

	cfg.applyEnv()
	cfg.setDefaults()

	return &cfg, nil
}

// Validate reports settings the service cannot start without.
func (c *Config) Validate() error {
	if c.Auth.Username == "" || c.Auth.Password == "" {
		return errors.New("auth username and password must be set")
	}

	switch c.Database.Driver {
	case "memory", "postgres":
	case "sqlite3":
		if c.Database.Path == "" {
			return errors.New("database path must be set for sqlite3")
		}
	default:
		return fmt.Errorf("unknown database driver %q", c.Database.Driver)
	}

	return nil
}

func (c *Config) applyEnv() {
	c.Addr = GetEnv(EnvPrefix+"ADDR", c.Addr)
	c.DiagAddr = GetEnv(EnvPrefix+"DIAG_ADDR", c.DiagAddr)
	c.LogLevel = GetEnv(EnvPrefix+"LOG_LEVEL", c.LogLevel)

	c.Auth.Realm = GetEnv(EnvPrefix+"AUTH_REALM", c.Auth.Realm)
	c.Auth.Username = GetEnv(EnvPrefix+"AUTH_USERNAME", c.Auth.Username)
	c.Auth.Password = GetEnv(EnvPrefix+"AUTH_PASSWORD", c.Auth.Password)

	c.Database.Driver = GetEnv(EnvPrefix+"DB_DRIVER", c.Database.Driver)
	c.Database.Host = GetEnv(EnvPrefix+"DB_HOST", c.Database.Host)
	c.Database.Port = GetEnvInt(EnvPrefix+"DB_PORT", c.Database.Port)
	c.Database.User = GetEnv(EnvPrefix+"DB_USER", c.Database.User)
	c.Database.Password = GetEnv(EnvPrefix+"DB_PASSWORD", c.Database.Password)
	c.Database.DBName = GetEnv(EnvPrefix+"DB_NAME", c.Database.DBName)
	c.Database.SSLMode = GetEnv(EnvPrefix+"DB_SSLMODE", c.Database.SSLMode)
	c.Database.Path = GetEnv(EnvPrefix+"DB_PATH", c.Database.Path)

	c.RabbitMQ.URL = GetEnv(EnvPrefix+"RABBITMQ_URL", c.RabbitMQ.URL)
}

func (c *Config) setDefaults() {
	if c.Addr == "" {
		c.Addr = ":3333"
	}
	if c.DiagAddr == "" {
		c.DiagAddr = ":9999"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.Auth.Realm == "" {
		c.Auth.Realm = "Application"
	}
	if c.Database.Driver == "" {
		c.Database.Driver = "memory"
	}
	if c.Database.Host == "" {
		c.Database.Host = "localhost"
	}
	if c.Database.Port == 0 {
		c.Database.Port = 5432
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.RabbitMQ.Exchange == "" {
		c.RabbitMQ.Exchange = "blog"
	}
	if c.RabbitMQ.RoutingKey == "" {
		c.RabbitMQ.RoutingKey = "articles"
	}
	if c.RabbitMQ.QueueName == "" {
		c.RabbitMQ.QueueName = "blog_articles"
	}
}

func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}

	return fallback
}

func GetEnvInt(key string, fallback int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return v
	}

	return fallback
}

func GetEnvBool(key string, fallback bool) bool {
	if v, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return v
	}

	return fallback
}
