package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	ConfigDirName  = ".chargectl"
	configName     = "config"
	configType     = "toml"
	configFileName = configName + "." + configType
	envPrefix      = "CHARGECTL"

	BackendAuto    = "auto"
	BackendKeyring = "keyring"
	BackendPass    = "pass"
	BackendFile    = "file"
	BackendRedis   = "redis"
)

type Config struct {
	API     APIConfig     `mapstructure:"api"`
	Storage StorageConfig `mapstructure:"storage"`
	Log     LogConfig     `mapstructure:"log"`

	// Path is the config file that was read, or where `config init` writes.
	Path string `mapstructure:"-"`
}

type APIConfig struct {
	BaseURL      string        `mapstructure:"base_url" validate:"required,url"`
	LoginPath    string        `mapstructure:"login_path" validate:"required,api_path"`
	ProfilePath  string        `mapstructure:"profile_path" validate:"required,api_path"`
	ClientID     string        `mapstructure:"client_id"`
	ClientSecret string        `mapstructure:"client_secret"`
	Timeout      time.Duration `mapstructure:"timeout" validate:"gt=0"`
}

type StorageConfig struct {
	Backend string `mapstructure:"backend" validate:"required,oneof=auto keyring pass file redis"`
	Dir     string `mapstructure:"dir" validate:"required"`
	Key     string `mapstructure:"key" validate:"required"`
	// RedisURL is only read by the redis backend, e.g. redis://localhost:6379/0.
	RedisURL string `mapstructure:"redis_url" validate:"required_if=Backend redis"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn warning error off disabled"`
	Format string `mapstructure:"format" validate:"oneof=console json"`
}

// Default returns the configuration used when no file or environment
// override exists.
func Default(homeDir string) Config {
	configDir := filepath.Join(homeDir, ConfigDirName)
	return Config{
		API: APIConfig{
			BaseURL:     "http://localhost:8000",
			LoginPath:   "/auth/login",
			ProfilePath: "/users/me",
			Timeout:     30 * time.Second,
		},
		Storage: StorageConfig{
			Backend: BackendAuto,
			Dir:     filepath.Join(configDir, "secrets"),
			Key:     "token",
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "console",
		},
		Path: filepath.Join(configDir, configFileName),
	}
}

// Load reads ~/.chargectl/config.toml, then applies CHARGECTL_* environment
// overrides (api.base_url -> CHARGECTL_API_BASE_URL). A missing file is not
// an error.
func Load(v *viper.Viper, homeDir string) (Config, error) {
	if v == nil {
		v = viper.New()
	}
	if homeDir == "" {
		return Config{}, errors.New("home directory is empty")
	}

	_ = godotenv.Load(".env")

	defaults := Default(homeDir)
	v.SetConfigName(configName)
	v.SetConfigType(configType)
	v.AddConfigPath(filepath.Dir(defaults.Path))
	setDefaults(v, defaults)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}
	if err := validateVersion(v.GetInt(versionKey)); err != nil {
		return Config{}, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	cfg.Path = defaults.Path
	if used := v.ConfigFileUsed(); used != "" {
		cfg.Path = used
	}

	storageDir, err := normalizeDir(cfg.Storage.Dir, homeDir)
	if err != nil {
		return Config{}, err
	}
	cfg.Storage.Dir = storageDir

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault(versionKey, currentSchemaVersion)
	v.SetDefault("api.base_url", d.API.BaseURL)
	v.SetDefault("api.login_path", d.API.LoginPath)
	v.SetDefault("api.profile_path", d.API.ProfilePath)
	v.SetDefault("api.client_id", d.API.ClientID)
	v.SetDefault("api.client_secret", d.API.ClientSecret)
	v.SetDefault("api.timeout", d.API.Timeout)
	v.SetDefault("storage.backend", d.Storage.Backend)
	v.SetDefault("storage.dir", d.Storage.Dir)
	v.SetDefault("storage.key", d.Storage.Key)
	v.SetDefault("storage.redis_url", d.Storage.RedisURL)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
}

func normalizeDir(dir string, homeDir string) (string, error) {
	if dir == "" {
		return "", nil
	}
	if dir == "~" || strings.HasPrefix(dir, "~/") {
		dir = filepath.Join(homeDir, strings.TrimPrefix(dir, "~"))
	}

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve storage dir: %w", err)
	}
	return filepath.Clean(absDir), nil
}
