package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

// ValidProviderNames lists known provider names per provider kind.
// Used by [Validate] to warn about unrecognised provider names.
var ValidProviderNames = map[string][]string{
	"analyze": {"gemini", "mock"},
	"tts":     {"gpt4o-mini", "google", "mock"},
	"music":   {"loudly"},
}

// Load reads the YAML configuration file at path and returns a validated [Config].
// It is a convenience wrapper around [LoadFromReader] and [Validate].
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %q: %w", path, err)
	}
	defer f.Close()

	cfg, err := LoadFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("config: parse %q: %w", path, err)
	}
	return cfg, nil
}

// LoadFromReader decodes a YAML config from r and validates the result.
// Useful in tests where configs are constructed from string literals.
func LoadFromReader(r io.Reader) (*Config, error) {
	cfg := &Config{}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("config: decode yaml: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that cfg contains a coherent set of values.
// It returns a joined error listing all validation failures found.
func Validate(cfg *Config) error {
	var errs []error

	// Server
	if cfg.Server.LogLevel != "" && !cfg.Server.LogLevel.IsValid() {
		errs = append(errs, fmt.Errorf("server.log_level %q is invalid; valid values: debug, info, warn, error", cfg.Server.LogLevel))
	}
	if cfg.Server.TLS != nil {
		if cfg.Server.TLS.CertFile == "" || cfg.Server.TLS.KeyFile == "" {
			errs = append(errs, errors.New("server.tls requires both cert_file and key_file"))
		}
	}

	// Provider name validation — warn for unknown provider names.
	validateProviderName("analyze", cfg.Providers.Analyze.Name)
	validateProviderName("tts", cfg.Providers.TTS.Name)
	validateProviderName("music", cfg.Providers.Music.Name)

	// Provider availability warnings
	if cfg.Providers.Analyze.Name == "" {
		slog.Warn("no analyze provider configured; document upload and analysis will be unavailable")
	}
	if cfg.Providers.TTS.Name == "" {
		slog.Warn("no TTS provider configured; audio generation will be unavailable")
	}
	if cfg.Providers.Analyze.Name != "" && cfg.Providers.Analyze.APIKey == "" {
		errs = append(errs, fmt.Errorf("providers.analyze.api_key is required for provider %q", cfg.Providers.Analyze.Name))
	}
	if cfg.Providers.TTS.Name != "" && cfg.Providers.TTS.Name != "mock" && cfg.Providers.TTS.APIKey == "" {
		errs = append(errs, fmt.Errorf("providers.tts.api_key is required for provider %q", cfg.Providers.TTS.Name))
	}
	if cfg.Providers.Music.Name != "" && cfg.Providers.Music.APIKey == "" {
		errs = append(errs, fmt.Errorf("providers.music.api_key is required for provider %q", cfg.Providers.Music.Name))
	}

	// Dictionary availability
	if cfg.Dictionary.Path == "" {
		slog.Warn("dictionary.path is empty; spell flagging will be disabled")
	}

	// Upload bounds
	if cfg.Uploads.MaxFiles < 0 {
		errs = append(errs, fmt.Errorf("uploads.max_files %d must not be negative", cfg.Uploads.MaxFiles))
	}
	if cfg.Uploads.MaxFileBytes < 0 {
		errs = append(errs, fmt.Errorf("uploads.max_file_bytes %d must not be negative", cfg.Uploads.MaxFileBytes))
	}

	return errors.Join(errs...)
}

// validateProviderName logs a warning if name is non-empty and not found in
// the [ValidProviderNames] list for the given kind.
func validateProviderName(kind, name string) {
	if name == "" {
		return
	}
	known, ok := ValidProviderNames[kind]
	if !ok {
		return
	}
	if slices.Contains(known, name) {
		return
	}
	slog.Warn("unknown provider name — may be a typo or third-party provider",
		"kind", kind,
		"name", name,
		"known", known,
	)
}
