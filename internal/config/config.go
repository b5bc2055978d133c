// Package config provides the configuration schema, loader, and provider
// registry for the Awaaz narration server.
package config

// LogLevel controls log verbosity for the Awaaz server.
type LogLevel string

const (
	LogDebug LogLevel = "debug"
	LogInfo  LogLevel = "info"
	LogWarn  LogLevel = "warn"
	LogError LogLevel = "error"
)

// IsValid reports whether l is a recognised log level.
func (l LogLevel) IsValid() bool {
	switch l {
	case LogDebug, LogInfo, LogWarn, LogError:
		return true
	}
	return false
}

// Config is the root configuration structure for Awaaz.
// It is typically loaded from a YAML file using [Load] or [LoadFromReader].
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Dictionary DictionaryConfig `yaml:"dictionary"`
	Providers  ProvidersConfig  `yaml:"providers"`
	Uploads    UploadsConfig    `yaml:"uploads"`
}

// ServerConfig holds network and logging settings for the Awaaz server.
type ServerConfig struct {
	// ListenAddr is the TCP address the server listens on (e.g., ":8080").
	ListenAddr string `yaml:"listen_addr"`

	// LogLevel controls verbosity.
	LogLevel LogLevel `yaml:"log_level"`

	// TLS configures TLS for the server. When nil, the server runs plain HTTP.
	TLS *TLSConfig `yaml:"tls"`
}

// TLSConfig holds TLS certificate paths for enabling HTTPS.
type TLSConfig struct {
	// CertFile is the path to the PEM-encoded TLS certificate.
	CertFile string `yaml:"cert_file"`

	// KeyFile is the path to the PEM-encoded TLS private key.
	KeyFile string `yaml:"key_file"`
}

// DictionaryConfig locates the spell-checking word list.
type DictionaryConfig struct {
	// Path is the newline-separated word list file. When the file cannot be
	// read the server starts anyway and spell flagging is disabled.
	Path string `yaml:"path"`
}

// ProvidersConfig declares which provider implementation to use for each
// external service. Each field selects a named provider registered in the
// [Registry].
type ProvidersConfig struct {
	Analyze ProviderEntry `yaml:"analyze"`
	TTS     ProviderEntry `yaml:"tts"`
	Music   ProviderEntry `yaml:"music"`
}

// ProviderEntry is the common configuration block shared by all provider types.
// The Name field is used to look up the constructor in the [Registry].
type ProviderEntry struct {
	// Name selects the registered provider implementation
	// (e.g., "gemini", "gpt4o-mini", "google", "loudly").
	Name string `yaml:"name"`

	// APIKey is the authentication key for the provider's API if any.
	APIKey string `yaml:"api_key"`

	// BaseURL overrides the provider's default API endpoint.
	// Leave empty to use the provider's built-in default.
	BaseURL string `yaml:"base_url"`

	// Model selects a specific model within the provider
	// (e.g., "gemini-1.5-flash", "gpt-4o-mini-tts").
	Model string `yaml:"model"`

	// Options holds provider-specific configuration values not covered by the
	// standard fields above. Values may be strings, numbers, booleans, or nested maps.
	Options map[string]any `yaml:"options"`
}

// UploadsConfig bounds document uploads submitted for analysis.
type UploadsConfig struct {
	// MaxFiles caps the number of files in one analysis batch.
	// Zero means the default of 5000.
	MaxFiles int `yaml:"max_files"`

	// MaxFileBytes caps the size of an individual upload.
	// Zero means the default of 20 MiB.
	MaxFileBytes int64 `yaml:"max_file_bytes"`
}

// Default upload bounds applied when the corresponding config value is zero.
const (
	DefaultMaxFiles     = 5000
	DefaultMaxFileBytes = 20 * 1024 * 1024
)

// MaxFilesOrDefault returns MaxFiles, falling back to [DefaultMaxFiles].
func (u UploadsConfig) MaxFilesOrDefault() int {
	if u.MaxFiles > 0 {
		return u.MaxFiles
	}
	return DefaultMaxFiles
}

// MaxFileBytesOrDefault returns MaxFileBytes, falling back to
// [DefaultMaxFileBytes].
func (u UploadsConfig) MaxFileBytesOrDefault() int64 {
	if u.MaxFileBytes > 0 {
		return u.MaxFileBytes
	}
	return DefaultMaxFileBytes
}
