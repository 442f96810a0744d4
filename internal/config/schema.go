package config

// Config is the top-level hondana configuration.
type Config struct {
	Remote   RemoteConfig   `mapstructure:"remote"`
	Identity IdentityConfig `mapstructure:"identity"`
	Chat     ChatConfig     `mapstructure:"chat"`
	Defaults DefaultsConfig `mapstructure:"defaults"`
	Gate     GateConfig     `mapstructure:"gate"`
}

// RemoteConfig holds document-store connection settings.
type RemoteConfig struct {
	BaseURL    string `mapstructure:"base_url"`
	Project    string `mapstructure:"project"`
	Collection string `mapstructure:"collection"`
	TokenEnv   string `mapstructure:"token_env"`
	Token      string `mapstructure:"-"` // resolved at runtime, never written
}

// IdentityConfig holds identity-provider connection settings.
type IdentityConfig struct {
	BaseURL   string `mapstructure:"base_url"`
	APIKeyEnv string `mapstructure:"api_key_env"`
	APIKey    string `mapstructure:"-"` // resolved at runtime, never written
}

// ChatConfig holds settings for the external chat hand-off.
type ChatConfig struct {
	BaseURL    string `mapstructure:"base_url"`
	ByteBudget int    `mapstructure:"byte_budget"`
	Compress   bool   `mapstructure:"compress"`
}

// DefaultsConfig holds default values for operations.
type DefaultsConfig struct {
	CacheDir       string `mapstructure:"cache_dir"`
	StartupTimeout int    `mapstructure:"startup_timeout_secs"`
}

// GateConfig configures the optional session view-password gate.
// The gate is a deterrent, not a security boundary: no lockout, no rate
// limit, and the verified flag lives only for the process lifetime.
type GateConfig struct {
	PasswordEnv string `mapstructure:"password_env"`
	Password    string `mapstructure:"-"` // resolved at runtime, never written
}

// BooksCollection returns the configured books collection name,
// defaulting to "books".
func (r *RemoteConfig) BooksCollection() string {
	if r.Collection != "" {
		return r.Collection
	}
	return "books"
}
