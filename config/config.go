package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

const DefaultConfigFile = "users-api.yml"

type Config struct {
	Addr      string         `yaml:"addr"`
	LogLevel  string         `yaml:"logLevel"`
	LogFormat string         `yaml:"logFormat"`
	Database  DatabaseConfig `yaml:"database"`
}

func NewConfig() *Config {
	return &Config{
		Addr:      ":8081",
		LogLevel:  "info",
		LogFormat: "text",
		Database:  *NewDatabaseConfig(),
	}
}

// Load starts from the defaults, applies the YAML file at path when it
// exists and finally the environment.
func Load(path string) (*Config, error) {
	cfg := NewConfig()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	case !os.IsNotExist(err):
		return nil, err
	}

	cfg.applyEnv()
	return cfg, cfg.Database.Validate()
}

func (c *Config) applyEnv() {
	setFromEnv(&c.Addr, "USERS_API_ADDR")
	setFromEnv(&c.LogLevel, "LOG_LEVEL")
	setFromEnv(&c.LogFormat, "LOG_FORMAT")
	setFromEnv(&c.Database.Driver, "DB_DRIVER")
	setFromEnv(&c.Database.DSN, "DB_DSN")
	setFromEnv(&c.Database.Server, "MYSQL_ADDR")
	setFromEnv(&c.Database.Database, "MYSQL_DATABASE")
	setFromEnv(&c.Database.User, "MYSQL_USER")
	setFromEnv(&c.Database.Password, "MYSQL_PASSWORD")
}

func setFromEnv(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
