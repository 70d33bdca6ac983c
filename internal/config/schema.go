package config

import (
	"fmt"
	"time"
)

const (
	currentSchemaVersion = 1
	versionKey           = "version"
)

type fileSchema struct {
	Version int           `toml:"version"`
	API     apiSchema     `toml:"api"`
	Storage storageSchema `toml:"storage"`
	Log     logSchema     `toml:"log"`
}

type apiSchema struct {
	BaseURL      string `toml:"base_url"`
	LoginPath    string `toml:"login_path"`
	ProfilePath  string `toml:"profile_path"`
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
	Timeout      string `toml:"timeout"`
}

type storageSchema struct {
	Backend  string `toml:"backend"`
	Dir      string `toml:"dir"`
	Key      string `toml:"key"`
	RedisURL string `toml:"redis_url,omitempty"`
}

type logSchema struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

func validateVersion(version int) error {
	if version > currentSchemaVersion {
		return fmt.Errorf("unsupported config schema version %d (current %d)", version, currentSchemaVersion)
	}
	return nil
}

func toSchema(cfg Config) fileSchema {
	return fileSchema{
		Version: currentSchemaVersion,
		API: apiSchema{
			BaseURL:      cfg.API.BaseURL,
			LoginPath:    cfg.API.LoginPath,
			ProfilePath:  cfg.API.ProfilePath,
			ClientID:     cfg.API.ClientID,
			ClientSecret: cfg.API.ClientSecret,
			Timeout:      formatDuration(cfg.API.Timeout),
		},
		Storage: storageSchema{
			Backend:  cfg.Storage.Backend,
			Dir:      cfg.Storage.Dir,
			Key:      cfg.Storage.Key,
			RedisURL: cfg.Storage.RedisURL,
		},
		Log: logSchema{
			Level:  cfg.Log.Level,
			Format: cfg.Log.Format,
		},
	}
}

func formatDuration(d time.Duration) string {
	if d <= 0 {
		return ""
	}
	return d.String()
}
