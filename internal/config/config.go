package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the root configuration for the La Cosa server.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Game     GameConfig     `mapstructure:"game"`
}

// ServerConfig holds the HTTP/WebSocket listener settings.
type ServerConfig struct {
	HTTP            HTTPConfig    `mapstructure:"http"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// HTTPConfig holds the listener address and websocket buffer sizes.
type HTTPConfig struct {
	Address         string `mapstructure:"address"`
	ReadBufferSize  int    `mapstructure:"read_buffer_size"`
	WriteBufferSize int    `mapstructure:"write_buffer_size"`
}

// DatabaseConfig holds connection pool settings. An empty URL disables
// persistence; the engine then runs fully in-memory.
type DatabaseConfig struct {
	URL             string        `mapstructure:"url"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"`
	ConnectTimeout  time.Duration `mapstructure:"connect_timeout"`
}

// LoggingConfig controls the zap logger.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// GameConfig holds house-rule bounds for sessions.
type GameConfig struct {
	MinPlayers int `mapstructure:"min_players"`
	MaxPlayers int `mapstructure:"max_players"`
}

// Load reads configuration from the given YAML file, with LACOSA_* env
// variables taking precedence over file values.
func Load(path string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetEnvPrefix("LACOSA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			// A missing file is fine; defaults + env still apply.
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.http.address", ":8080")
	v.SetDefault("server.http.read_buffer_size", 1024)
	v.SetDefault("server.http.write_buffer_size", 1024)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("database.url", "")
	v.SetDefault("database.max_conns", 10)
	v.SetDefault("database.min_conns", 2)
	v.SetDefault("database.max_conn_lifetime", time.Hour)
	v.SetDefault("database.connect_timeout", 10*time.Second)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("game.min_players", 4)
	v.SetDefault("game.max_players", 12)
}

func (c *Config) validate() error {
	if c.Game.MinPlayers < 4 {
		return fmt.Errorf("game.min_players must be at least 4, got %d", c.Game.MinPlayers)
	}
	if c.Game.MaxPlayers > 12 {
		return fmt.Errorf("game.max_players must be at most 12, got %d", c.Game.MaxPlayers)
	}
	if c.Game.MinPlayers > c.Game.MaxPlayers {
		return fmt.Errorf("game.min_players %d exceeds game.max_players %d", c.Game.MinPlayers, c.Game.MaxPlayers)
	}
	return nil
}
