package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel string `yaml:"log-level" env:"TTT_LOG_LEVEL" env-default:"info"`
	HTTPPort string `yaml:"http-port" env:"TTT_HTTP_PORT" env-default:"8080"`

	Session Session `yaml:"session"`
	HTTP    HTTP    `yaml:"http"`
}

// Session controls how long idle games stay in memory.
type Session struct {
	TTL             time.Duration `yaml:"ttl" env:"TTT_SESSION_TTL" env-default:"2h"`
	JanitorInterval time.Duration `yaml:"janitor-interval" env:"TTT_JANITOR_INTERVAL" env-default:"5m"`
}

type HTTP struct {
	ReadTimeout       time.Duration `yaml:"read-timeout" env:"TTT_HTTP_READ_TIMEOUT" env-default:"10s"`
	WriteTimeout      time.Duration `yaml:"write-timeout" env:"TTT_HTTP_WRITE_TIMEOUT" env-default:"0s"`
	IdleTimeout       time.Duration `yaml:"idle-timeout" env:"TTT_HTTP_IDLE_TIMEOUT" env-default:"60s"`
	HeartbeatInterval time.Duration `yaml:"heartbeat-interval" env:"TTT_HEARTBEAT_INTERVAL" env-default:"15s"`
}

// Load reads the YAML file at path, overlaid by environment variables.
// A missing file is not an error: defaults and environment are used.
func Load(path string) (*Config, error) {
	config := &Config{}

	if path != "" {
		_, err := os.Stat(path)
		switch {
		case err == nil:
			if err = cleanenv.ReadConfig(path, config); err != nil {
				return nil, fmt.Errorf("read config %s: %w", path, err)
			}
			return config, config.validate()
		case !errors.Is(err, fs.ErrNotExist):
			return nil, fmt.Errorf("stat config %s: %w", path, err)
		}
	}

	if err := cleanenv.ReadEnv(config); err != nil {
		return nil, fmt.Errorf("read env: %w", err)
	}
	return config, config.validate()
}

// MustLoad - load configuration or panic.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

func (that *Config) validate() error {
	if that.HTTPPort == "" {
		return errors.New("http-port is empty")
	}
	if that.Session.TTL <= 0 {
		return fmt.Errorf("session ttl must be positive, got %s", that.Session.TTL)
	}
	if that.Session.JanitorInterval <= 0 {
		return fmt.Errorf("janitor interval must be positive, got %s", that.Session.JanitorInterval)
	}
	if that.HTTP.HeartbeatInterval <= 0 {
		return fmt.Errorf("heartbeat interval must be positive, got %s", that.HTTP.HeartbeatInterval)
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (that *Config) Addr() string {
	return ":" + that.HTTPPort
}
