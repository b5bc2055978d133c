package config_test

import (
	"testing"

	"github.com/awaaz-ai/awaaz/internal/config"
)

func TestDiff_NoChanges(t *testing.T) {
	t.Parallel()
	cfg := &config.Config{
		Server:     config.ServerConfig{LogLevel: config.LogInfo},
		Dictionary: config.DictionaryConfig{Path: "words.txt"},
		Providers: config.ProvidersConfig{
			Analyze: config.ProviderEntry{Name: "gemini", APIKey: "k"},
		},
	}
	d := config.Diff(cfg, cfg)
	if !d.Empty() {
		t.Errorf("expected empty diff for identical configs, got %+v", d)
	}
}

func TestDiff_LogLevelChanged(t *testing.T) {
	t.Parallel()
	old := &config.Config{Server: config.ServerConfig{LogLevel: config.LogInfo}}
	new := &config.Config{Server: config.ServerConfig{LogLevel: config.LogDebug}}

	d := config.Diff(old, new)
	if !d.LogLevelChanged {
		t.Error("expected LogLevelChanged=true")
	}
	if d.NewLogLevel != config.LogDebug {
		t.Errorf("expected NewLogLevel=debug, got %q", d.NewLogLevel)
	}
}

func TestDiff_DictionaryChanged(t *testing.T) {
	t.Parallel()
	old := &config.Config{Dictionary: config.DictionaryConfig{Path: "a.txt"}}
	new := &config.Config{Dictionary: config.DictionaryConfig{Path: "b.txt"}}

	d := config.Diff(old, new)
	if !d.DictionaryChanged {
		t.Error("expected DictionaryChanged=true")
	}
	if d.NewDictionaryPath != "b.txt" {
		t.Errorf("expected NewDictionaryPath=b.txt, got %q", d.NewDictionaryPath)
	}
}

func TestDiff_ProviderEntryChanged(t *testing.T) {
	t.Parallel()
	old := &config.Config{
		Providers: config.ProvidersConfig{
			TTS:   config.ProviderEntry{Name: "gpt4o-mini", APIKey: "k1"},
			Music: config.ProviderEntry{Name: "loudly", APIKey: "k"},
		},
	}
	new := &config.Config{
		Providers: config.ProvidersConfig{
			TTS:   config.ProviderEntry{Name: "google", APIKey: "k2"},
			Music: config.ProviderEntry{Name: "loudly", APIKey: "k"},
		},
	}

	d := config.Diff(old, new)
	if len(d.ProvidersChanged) != 1 || d.ProvidersChanged[0] != "tts" {
		t.Errorf("expected only tts to change, got %v", d.ProvidersChanged)
	}
}

func TestDiff_ProviderOptionsCompared(t *testing.T) {
	t.Parallel()
	old := &config.Config{
		Providers: config.ProvidersConfig{
			Analyze: config.ProviderEntry{Name: "gemini", APIKey: "k", Options: map[string]any{"temperature": 0.2}},
		},
	}
	new := &config.Config{
		Providers: config.ProvidersConfig{
			Analyze: config.ProviderEntry{Name: "gemini", APIKey: "k", Options: map[string]any{"temperature": 0.7}},
		},
	}

	d := config.Diff(old, new)
	if len(d.ProvidersChanged) != 1 || d.ProvidersChanged[0] != "analyze" {
		t.Errorf("expected analyze options change to be detected, got %v", d.ProvidersChanged)
	}
}
