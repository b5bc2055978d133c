// Package session owns the mutable state of a narration session: the
// working text, the caret, the voice settings, detection results from
// document analysis, the current warning report, and produced artifacts.
//
// A Session is the single writer for all of that state. All exported
// methods are safe for concurrent use.
package session

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/awaaz-ai/awaaz/internal/dictionary"
	"github.com/awaaz-ai/awaaz/internal/document"
	"github.com/awaaz-ai/awaaz/internal/voice"
)

// RequestKind identifies a class of external provider request. At most
// one request of each kind may be in flight at a time.
type RequestKind string

const (
	RequestAnalyze    RequestKind = "analyze"
	RequestSynthesize RequestKind = "synthesize"
	RequestMusic      RequestKind = "music"
)

// Config holds all dependencies for a [Session].
type Config struct {
	// Dictionary backs spell annotation and suggestions. A nil or
	// degraded index disables flagging rather than failing.
	Dictionary *dictionary.Index

	// Catalogs describes the available voices per provider.
	Catalogs voice.CatalogSet
}

// Session is the single mutable owner of the editing and configuration
// state. Zero value is not usable; construct with [New].
type Session struct {
	mu sync.Mutex

	text     string
	caret    document.Caret
	settings voice.Settings
	report   voice.Report

	detectedEmotion string
	detectedGender  string

	audio []byte
	music string

	inFlight map[RequestKind]bool

	dict     *dictionary.Index
	resolver voice.Resolver
	engine   voice.Engine
}

// New creates a Session with default settings and an empty document.
func New(cfg Config) *Session {
	s := &Session{
		settings: voice.Defaults(),
		inFlight: make(map[RequestKind]bool),
		dict:     cfg.Dictionary,
		resolver: voice.NewResolver(cfg.Catalogs),
		engine:   voice.NewEngine(cfg.Catalogs),
	}
	s.detectedGender = voice.DetectedUnknown
	s.report = s.engine.Evaluate(s.settings, s.detectedGender)
	return s
}

// SetText replaces the working text wholesale. The caret moves to the
// end of the new text.
func (s *Session) SetText(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.text = text
	s.caret = document.EndOfText(text)
	slog.Debug("session: text replaced", "runes", len([]rune(text)))
}

// Text returns the current working text.
func (s *Session) Text() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.text
}

// Caret returns the current selection.
func (s *Session) Caret() document.Caret {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.caret
}

// Tokens tokenises the current text and annotates each word token
// against the dictionary. Annotation never moves the caret.
func (s *Session) Tokens() []document.Token {
	s.mu.Lock()
	defer s.mu.Unlock()
	toks := document.Tokenize(s.text)
	if s.dict == nil {
		return document.Annotate(toks, nil)
	}
	return document.Annotate(toks, s.dict)
}

// Suggest returns replacement candidates for a word, bounded and in
// dictionary order.
func (s *Session) Suggest(word string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.dict == nil {
		return nil
	}
	return s.dict.Suggest(word)
}

// ApplyReplacement splices replacement into the text over the codepoint
// range [start, end). On success the caret resets to the end of the new
// text. On failure the text and caret are untouched.
func (s *Session) ApplyReplacement(start, end int, replacement string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := document.Replace(s.text, start, end, replacement)
	if err != nil {
		return fmt.Errorf("session: apply replacement: %w", err)
	}
	s.text = next
	s.caret = document.EndOfText(next)
	slog.Debug("session: replacement applied", "start", start, "end", end)
	return nil
}

// Settings returns a copy of the current voice settings.
func (s *Session) Settings() voice.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

// UpdateSetting resolves a single-field change through the cascade and
// commits the result. A change that leaves a numeric field non-numeric
// is rejected and the prior settings stand. Warnings are recomputed from
// scratch after every committed change; a blocked gender state clears
// any previously produced audio.
func (s *Session) UpdateSetting(field, raw string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.resolver.Resolve(s.settings, field, raw)
	if voice.HasInvalidNumeric(next) {
		return fmt.Errorf("session: update %s: %q is not a number", field, raw)
	}
	s.settings = next
	s.recomputeLocked()
	return nil
}

// ApplyAnalysis installs the outcome of a document analysis: the
// extracted text becomes the working text, the detected emotion flows
// through the settings cascade, and the detected gender feeds the
// compatibility check.
func (s *Session) ApplyAnalysis(text, emotion, gender string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.text = text
	s.caret = document.EndOfText(text)
	s.detectedEmotion = emotion
	switch gender {
	case "male", "female":
		s.detectedGender = gender
	default:
		s.detectedGender = voice.DetectedUnknown
	}
	if emotion != "" {
		s.settings = s.resolver.Resolve(s.settings, voice.FieldEmotion, emotion)
	}
	s.recomputeLocked()
	slog.Info("session: analysis applied",
		"emotion", s.detectedEmotion,
		"gender", s.detectedGender,
		"runes", len([]rune(text)),
	)
}

// Reset restores the voice settings to their defaults. The working text
// and detection results are preserved; warnings are recomputed.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = voice.Defaults()
	s.recomputeLocked()
	slog.Info("session: settings reset")
}

// Warnings returns the current advisory and blocking warnings.
func (s *Session) Warnings() []voice.Warning {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.report.Warnings
}

// GenderState returns the current gender-compatibility state.
func (s *Session) GenderState() voice.GenderState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.report.Gender
}

// DetectedEmotion returns the emotion reported by the last analysis,
// or "" if none ran.
func (s *Session) DetectedEmotion() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.detectedEmotion
}

// DetectedGender returns the narration gender reported by the last
// analysis ("male", "female" or "unknown").
func (s *Session) DetectedGender() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.detectedGender
}

// CanSynthesize reports whether audio generation is currently allowed.
// Synthesis is disabled while the gender state is blocked.
func (s *Session) CanSynthesize() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.report.Gender != voice.GenderBlocked
}

// Instructions builds the synthesis instructions string for the current
// settings.
func (s *Session) Instructions() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return voice.BuildInstructions(s.settings)
}

// SetAudio stores the most recently produced audio artifact.
func (s *Session) SetAudio(data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.audio = data
}

// Audio returns the stored audio artifact, or nil if none exists.
func (s *Session) Audio() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.audio
}

// SetMusic stores the URL of the most recently generated music track.
func (s *Session) SetMusic(url string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.music = url
}

// Music returns the stored music track URL, or "" if none exists.
func (s *Session) Music() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.music
}

// Begin marks a request of the given kind as in flight. It returns an
// error if one is already outstanding; callers must not start the
// provider call in that case.
func (s *Session) Begin(kind RequestKind) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inFlight[kind] {
		return fmt.Errorf("session: a %s request is already in flight", kind)
	}
	s.inFlight[kind] = true
	return nil
}

// End marks a request of the given kind as finished, whether it
// succeeded or failed.
func (s *Session) End(kind RequestKind) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, kind)
}

// recomputeLocked rebuilds the warning report for the current settings.
// A blocked gender state invalidates any stored audio. Caller must hold
// s.mu.
func (s *Session) recomputeLocked() {
	s.report = s.engine.Evaluate(s.settings, s.detectedGender)
	if s.report.Gender == voice.GenderBlocked && s.audio != nil {
		s.audio = nil
		slog.Info("session: audio cleared, voice gender conflicts with detected narration gender")
	}
}
