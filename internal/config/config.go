package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/viper"
)

type env struct {
	AssetDir      string `mapstructure:"ASSET_DIR"`
	BaudRate      uint   `mapstructure:"BAUD_RATE"`
	DBUrl         string `mapstructure:"DB_URL"`
	Dev           bool   `mapstructure:"DEV"`
	Port          uint   `mapstructure:"PORT"`
	ReadingsLimit uint   `mapstructure:"READINGS_LIMIT"`
	RelayHost     string `mapstructure:"RELAY_HOST"`
	SerialPort    string `mapstructure:"SERIAL_PORT"`
}

var defaults = map[string]any{
	"ASSET_DIR":      "./web/assets",
	"BAUD_RATE":      115200,
	"DB_URL":         "readings.db",
	"DEV":            false,
	"PORT":           5173,
	"READINGS_LIMIT": 100,
	"RELAY_HOST":     "localhost:5173",
	"SERIAL_PORT":    "COM3",
}

type Config struct {
	env *env
}

var cfgInstance *Config

func NewConfig() *Config {
	if cfgInstance != nil {
		return cfgInstance
	}
	cfg, err := Load(".env")
	if err != nil {
		panic(fmt.Sprintf("error loading config: %s", err))
	}
	cfgInstance = cfg
	return cfgInstance
}

// Load reads path as a dotenv file; environment variables take precedence. A missing file is
// not an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	for k, d := range defaults {
		v.SetDefault(k, d)
	}
	v.SetConfigFile(path)
	v.SetConfigType("env")
	v.AutomaticEnv()

	err := v.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	if err != nil && !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	var e env
	if err := v.Unmarshal(&e); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return &Config{&e}, nil
}

func (c *Config) AssetDir() string {
	return c.env.AssetDir
}

func (c *Config) BaudRate() uint {
	return c.env.BaudRate
}

func (c *Config) DBUrl() string {
	return c.env.DBUrl
}

func (c *Config) Dev() bool {
	return c.env.Dev
}

func (c *Config) Port() uint {
	return c.env.Port
}

func (c *Config) ReadingsLimit() uint {
	return c.env.ReadingsLimit
}

func (c *Config) RelayHost() string {
	return c.env.RelayHost
}

func (c *Config) SerialPort() string {
	return c.env.SerialPort
}
