package config_test

import (
	"strings"
	"testing"

	"github.com/awaaz-ai/awaaz/internal/config"
)

func TestLoadFromReader_FullConfig(t *testing.T) {
	t.Parallel()
	yaml := `
server:
  listen_addr: ":8080"
  log_level: debug
dictionary:
  path: "data/urdu_words.txt"
providers:
  analyze:
    name: gemini
    api_key: test-key
    model: gemini-1.5-flash
  tts:
    name: gpt4o-mini
    api_key: test-key
  music:
    name: loudly
    api_key: test-key
uploads:
  max_files: 10
  max_file_bytes: 1048576
`
	cfg, err := config.LoadFromReader(strings.NewReader(yaml))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.ListenAddr != ":8080" {
		t.Errorf("listen_addr = %q, want :8080", cfg.Server.ListenAddr)
	}
	if cfg.Providers.Analyze.Model != "gemini-1.5-flash" {
		t.Errorf("analyze model = %q", cfg.Providers.Analyze.Model)
	}
	if cfg.Uploads.MaxFilesOrDefault() != 10 {
		t.Errorf("max files = %d, want 10", cfg.Uploads.MaxFilesOrDefault())
	}
}

func TestLoadFromReader_UnknownFieldRejected(t *testing.T) {
	t.Parallel()
	yaml := `
server:
  listen_addr: ":8080"
  not_a_field: true
`
	_, err := config.LoadFromReader(strings.NewReader(yaml))
	if err == nil {
		t.Fatal("expected error for unknown field, got nil")
	}
}

func TestValidate_InvalidLogLevel(t *testing.T) {
	t.Parallel()
	yaml := `
server:
  log_level: verbose
`
	_, err := config.LoadFromReader(strings.NewReader(yaml))
	if err == nil {
		t.Fatal("expected error for invalid log level, got nil")
	}
	if !strings.Contains(err.Error(), "log_level") {
		t.Errorf("error should mention log_level, got: %v", err)
	}
}

func TestValidate_ProviderRequiresAPIKey(t *testing.T) {
	t.Parallel()
	yaml := `
providers:
  analyze:
    name: gemini
`
	_, err := config.LoadFromReader(strings.NewReader(yaml))
	if err == nil {
		t.Fatal("expected error for missing api key, got nil")
	}
	if !strings.Contains(err.Error(), "api_key") {
		t.Errorf("error should mention api_key, got: %v", err)
	}
}

func TestValidate_MockTTSNeedsNoKey(t *testing.T) {
	t.Parallel()
	yaml := `
providers:
  tts:
    name: mock
`
	if _, err := config.LoadFromReader(strings.NewReader(yaml)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_TLSRequiresBothFiles(t *testing.T) {
	t.Parallel()
	yaml := `
server:
  tls:
    cert_file: "cert.pem"
`
	_, err := config.LoadFromReader(strings.NewReader(yaml))
	if err == nil {
		t.Fatal("expected error for incomplete TLS config, got nil")
	}
}

func TestValidate_MultipleErrors(t *testing.T) {
	t.Parallel()
	yaml := `
server:
  log_level: loud
providers:
  music:
    name: loudly
uploads:
  max_files: -1
`
	_, err := config.LoadFromReader(strings.NewReader(yaml))
	if err == nil {
		t.Fatal("expected errors, got nil")
	}
	errStr := err.Error()
	if !strings.Contains(errStr, "log_level") {
		t.Errorf("error should mention log_level, got: %v", err)
	}
	if !strings.Contains(errStr, "api_key") {
		t.Errorf("error should mention api_key, got: %v", err)
	}
	if !strings.Contains(errStr, "max_files") {
		t.Errorf("error should mention max_files, got: %v", err)
	}
}

func TestValidProviderNames(t *testing.T) {
	t.Parallel()
	// Sanity-check that the map is populated.
	if len(config.ValidProviderNames) == 0 {
		t.Fatal("ValidProviderNames should not be empty")
	}
	ttsNames := config.ValidProviderNames["tts"]
	found := false
	for _, n := range ttsNames {
		if n == "gpt4o-mini" {
			found = true
			break
		}
	}
	if !found {
		t.Error("ValidProviderNames[\"tts\"] should contain \"gpt4o-mini\"")
	}
}
