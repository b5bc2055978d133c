package config

import "fmt"

// ConfigDiff describes what changed between two configs.
// Only fields that can be safely hot-reloaded are tracked.
type ConfigDiff struct {
	LogLevelChanged   bool
	NewLogLevel       LogLevel
	DictionaryChanged bool
	NewDictionaryPath string

	// ProvidersChanged lists the provider kinds ("analyze", "tts", "music")
	// whose entries differ. Provider swaps require reconstructing the client
	// but not restarting the server.
	ProvidersChanged []string
}

// Empty reports whether the diff contains no changes.
func (d ConfigDiff) Empty() bool {
	return !d.LogLevelChanged && !d.DictionaryChanged && len(d.ProvidersChanged) == 0
}

// Diff compares old and new configs and returns what changed.
// Only tracks changes that are safe to apply without restart.
func Diff(old, new *Config) ConfigDiff {
	d := ConfigDiff{}

	if old.Server.LogLevel != new.Server.LogLevel {
		d.LogLevelChanged = true
		d.NewLogLevel = new.Server.LogLevel
	}

	if old.Dictionary.Path != new.Dictionary.Path {
		d.DictionaryChanged = true
		d.NewDictionaryPath = new.Dictionary.Path
	}

	if !entryEqual(old.Providers.Analyze, new.Providers.Analyze) {
		d.ProvidersChanged = append(d.ProvidersChanged, "analyze")
	}
	if !entryEqual(old.Providers.TTS, new.Providers.TTS) {
		d.ProvidersChanged = append(d.ProvidersChanged, "tts")
	}
	if !entryEqual(old.Providers.Music, new.Providers.Music) {
		d.ProvidersChanged = append(d.ProvidersChanged, "music")
	}

	return d
}

// entryEqual compares the scalar fields of two provider entries. Options maps
// are compared shallowly by length and string representation of values.
func entryEqual(a, b ProviderEntry) bool {
	if a.Name != b.Name || a.APIKey != b.APIKey || a.BaseURL != b.BaseURL || a.Model != b.Model {
		return false
	}
	if len(a.Options) != len(b.Options) {
		return false
	}
	for k, v := range a.Options {
		bv, ok := b.Options[k]
		if !ok || fmt.Sprint(v) != fmt.Sprint(bv) {
			return false
		}
	}
	return true
}
