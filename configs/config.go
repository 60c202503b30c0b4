package configs

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/kkyr/fig"
	"go.uber.org/zap"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type DB struct {
	Driver             string `default:"sqlite"`
	Path               string `default:"localdb.db"`
	Host               string `default:"localhost"`
	Port               int    `default:"5432"`
	User               string `default:"postgres"`
	Password           string
	Database           string `default:"postgres"`
	MaxIdleConnections int    `default:"10"`
	MaxOpenConnections int    `default:"10"`
}

type Server struct {
	Host           string `default:"127.0.0.1"`
	Port           int    `default:"8080"`
	AllowedOrigins []string
}

type UI struct {
	Title    string `default:"Popular dishes"`
	TopCooks int    `default:"5"`
}

type Integrations struct {
	Recipe         []string `default:"recipe_web"`
	AllowedDomains []string
}

type Config struct {
	DB           DB
	Server       Server
	UI           UI
	Integrations Integrations
}

const envPrefix = "COOKBOOK" // env prefix for env vars

var ErrConfiguration = errors.New("configuration error")

func GetConfig(configFileName string, logger *zap.Logger) (*Config, error) {
	config := Config{}
	homeDir, _ := os.UserHomeDir()

	logger.Info("Loading config", zap.String("file", configFileName))

	err := fig.Load(&config, fig.File(configFileName), fig.Dirs(".", homeDir), fig.UseEnv(envPrefix))
	if err != nil {
		if strings.Contains(err.Error(), "file not found") {
			logger.Warn("Could not find config file", zap.String("file", configFileName))

			err = fig.Load(&config, fig.IgnoreFile(), fig.UseEnv(envPrefix))
			if err != nil {
				return nil, err
			}
		} else {
			return nil, err
		}
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *Config) validate() error {
	switch c.DB.Driver {
	case DriverSQLite:
		if c.DB.Path == "" {
			return fmt.Errorf("%w: DB.Path is required for sqlite", ErrConfiguration)
		}
	case DriverPostgres:
		if c.DB.Password == "" {
			return fmt.Errorf("%w: DB.Password is required for postgres", ErrConfiguration)
		}
	default:
		return fmt.Errorf("%w: unsupported DB.Driver %q", ErrConfiguration, c.DB.Driver)
	}

	if c.UI.TopCooks < 0 {
		return fmt.Errorf("%w: UI.TopCooks must not be negative", ErrConfiguration)
	}

	return nil
}
