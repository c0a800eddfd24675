package config

import (
	"errors"
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/rocketscienceinc/tictactoe-rounds/internal/entity"
)

const (
	DriverMemory = "memory"
	DriverRedis  = "redis"
	DriverSQLite = "sqlite"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	LogLevel   string  `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort   string  `yaml:"http-port" env:"HTTP_PORT"`
	StorageKey string  `yaml:"storage-key" env:"STORAGE_KEY" env-default:"tictactoe"`
	Storage    Storage `yaml:"storage"`
	Redis      Redis   `yaml:"redis"`
	Players    Players `yaml:"players"`
}

type Storage struct {
	Driver     string `yaml:"driver" env:"STORAGE_DRIVER" env-default:"memory"`
	SQLitePath string `yaml:"sqlite-path" env:"STORAGE_SQLITE_PATH" env-default:"tictactoe.db"`
}

type Redis struct {
	Host string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

type Players struct {
	Player1 Player `yaml:"player1" env-prefix:"PLAYER1_"`
	Player2 Player `yaml:"player2" env-prefix:"PLAYER2_"`
}

type Player struct {
	ID   string `yaml:"id" env:"ID"`
	Name string `yaml:"name" env:"NAME"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}

// Load - reads the file at path, applies environment overrides and validates the result.
func Load(path string) (*Config, error) {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (that *Config) Validate() error {
	switch that.Storage.Driver {
	case DriverMemory, DriverRedis, DriverSQLite:
	default:
		return fmt.Errorf("%w: unknown storage driver %q", ErrInvalidConfig, that.Storage.Driver)
	}

	if that.StorageKey == "" {
		return fmt.Errorf("%w: storage key is empty", ErrInvalidConfig)
	}

	if err := that.Players.Entity().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}

func (that Players) Entity() entity.Players {
	return entity.Players{
		Player1: entity.Player{ID: that.Player1.ID, Name: that.Player1.Name},
		Player2: entity.Player{ID: that.Player2.ID, Name: that.Player2.Name},
	}
}
