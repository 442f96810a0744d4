package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// DefaultPath returns the default config file path.
func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "hondana", "config.yml")
}

// Load reads the config from disk (or env). Returns a config populated
// with defaults if no file exists yet.
func Load() (*Config, error) {
	// A local .env overrides nothing already exported.
	_ = godotenv.Load()

	v := viper.New()

	v.SetDefault("remote.token_env", "HONDANA_TOKEN")
	v.SetDefault("remote.collection", "books")
	v.SetDefault("identity.api_key_env", "HONDANA_IDENTITY_KEY")
	v.SetDefault("chat.base_url", "https://udify.app/chatbot/7K7Ymm1N7MfjS6e1")
	v.SetDefault("chat.byte_budget", 1500)
	v.SetDefault("chat.compress", true)
	v.SetDefault("defaults.cache_dir", defaultCacheDir())
	v.SetDefault("defaults.startup_timeout_secs", 5)
	v.SetDefault("gate.password_env", "HONDANA_VIEW_PASSWORD")

	v.SetEnvPrefix("HONDANA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	configPath := os.Getenv("HONDANA_CONFIG")
	if configPath == "" {
		configPath = DefaultPath()
	}
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine — defaults and env carry it.
		if !os.IsNotExist(err) {
			if _, isCfgNotFound := err.(viper.ConfigFileNotFoundError); !isCfgNotFound {
				return nil, fmt.Errorf("reading config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	// Resolve secrets from env (never stored in the file).
	cfg.Remote.Token = os.Getenv(envOr(cfg.Remote.TokenEnv, "HONDANA_TOKEN"))
	cfg.Identity.APIKey = os.Getenv(envOr(cfg.Identity.APIKeyEnv, "HONDANA_IDENTITY_KEY"))
	cfg.Gate.Password = os.Getenv(envOr(cfg.Gate.PasswordEnv, "HONDANA_VIEW_PASSWORD"))

	cfg.Defaults.CacheDir = ExpandHome(cfg.Defaults.CacheDir)

	return &cfg, nil
}

// Save writes the config to the default path.
func Save(cfg *Config) error {
	path := DefaultPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	return enc.Encode(cfg)
}

// ExpandHome expands a leading ~/ in a path.
func ExpandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

func envOr(name, fallback string) string {
	if name != "" {
		return name
	}
	return fallback
}

func defaultCacheDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "hondana", "cache")
}
