// Package tts defines the Provider interface for Text-to-Speech backends.
//
// A TTS provider wraps a speech synthesis service (e.g., the OpenAI speech
// endpoint or Google Cloud TTS) and presents a uniform batch interface: one
// Synthesize call per narration, returning the full encoded audio.
//
// Implementations must be safe for concurrent use.
package tts

import "context"

// Request carries everything a backend needs to synthesise one narration.
// Backends ignore fields they have no equivalent for.
type Request struct {
	// Text is the narration text. Must be non-empty.
	Text string

	// VoiceName selects the backend voice (e.g. "coral", "en-US-Wavenet-C").
	VoiceName string

	// LanguageCode is the BCP-47 language of the narration (e.g. "ur-PK").
	LanguageCode string

	// Gender is the catalog gender of the selected voice
	// ("NEUTRAL", "FEMALE" or "MALE").
	Gender string

	// Instructions is the natural-language delivery description built from
	// the voice settings. Backends without an instructions channel ignore it.
	Instructions string

	// Pacing is the speaking pace as a percentage, 100 = normal speed.
	Pacing float64

	// SpeakingRate, Pitch and VolumeGainDB are passed through to backends
	// that support direct audio shaping.
	SpeakingRate float64
	Pitch        float64
	VolumeGainDB float64

	// EmphasisWords are words to stress in the output, in text order.
	EmphasisWords []string
}

// Provider is the abstraction over any TTS backend.
type Provider interface {
	// Synthesize produces encoded audio (MP3) for the request. The call
	// blocks until the full audio is available or ctx is cancelled.
	Synthesize(ctx context.Context, req Request) ([]byte, error)

	// ListVoices returns all voices available from this provider. The list
	// reflects the backend's current catalogue and may change between calls.
	ListVoices(ctx context.Context) ([]Voice, error)
}

// Voice describes one synthesis voice offered by a provider.
type Voice struct {
	// Name is the backend voice identifier.
	Name string `json:"name"`

	// LanguageCode is the BCP-47 language this voice speaks.
	LanguageCode string `json:"language_code"`

	// Gender is "NEUTRAL", "FEMALE" or "MALE".
	Gender string `json:"gender"`

	// Provider identifies the backend offering this voice.
	Provider string `json:"provider"`
}
