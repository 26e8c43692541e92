package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Sonarr  Sonarr  `json:"sonarr" yaml:"sonarr" mapstructure:"sonarr"`
	Storage Storage `json:"storage" yaml:"storage" mapstructure:"storage"`
	Server  Server  `json:"server" yaml:"server" mapstructure:"server"`
	Manager Manager `json:"manager" yaml:"manager" mapstructure:"manager"`
}

// Sonarr holds the configured media manager instances
type Sonarr struct {
	Instances []Instance `json:"instances" yaml:"instances" mapstructure:"instances"`
}

type Instance struct {
	Name        string        `json:"name" yaml:"name" mapstructure:"name"`
	URL         string        `json:"url" yaml:"url" mapstructure:"url"`
	APIKey      string        `json:"apiKey" yaml:"apiKey" mapstructure:"apiKey"`
	Timeout     time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`
	BaseBackoff time.Duration `json:"backoff" yaml:"backoff" mapstructure:"backoff"`
	MaxRetries  int           `json:"maxRetries" yaml:"maxRetries" mapstructure:"maxRetries"`
}

type Server struct {
	Port int `json:"port" yaml:"port" mapstructure:"port"`
}

// Storage configuration is assumed to be for sqlite database only currently
type Storage struct {
	FilePath string `json:"filePath" yaml:"filePath" mapstructure:"filePath"`
}

// Manager houses configuration related to run pacing and operation retention
type Manager struct {
	InterItemDelay     time.Duration `json:"interItemDelay" yaml:"interItemDelay" mapstructure:"interItemDelay"`
	Retention          time.Duration `json:"retention" yaml:"retention" mapstructure:"retention"`
	MinBytesPerEpisode int64         `json:"minBytesPerEpisode" yaml:"minBytesPerEpisode" mapstructure:"minBytesPerEpisode"`
}

type ConfigUnmarshaler interface {
	ReadInConfig() error
	Unmarshal(any, ...viper.DecoderConfigOption) error
	ConfigFileUsed() string
}

// New reads a new configuration
func New(cu ConfigUnmarshaler) (Config, error) {
	var c Config

	if cu.ConfigFileUsed() != "" {
		err := cu.ReadInConfig()
		if err != nil {
			return c, err
		}
	}

	err := cu.Unmarshal(&c)
	return c, err
}
