// Package openaitts provides an OpenAI speech-endpoint-backed TTS provider
// using the gpt-4o-mini-tts model. It implements the tts.Provider interface.
//
// Pacing is mapped to the endpoint's speed multiplier: pacing is a percentage
// where 100 means normal speed, and the resulting multiplier is clamped to
// [0.5, 2.0]. The instructions string is passed through unchanged, and
// emphasis words are wrapped in <emphasis> markup inside the input text.
package openaitts

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	oai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/awaaz-ai/awaaz/pkg/provider/tts"
)

// Compile-time interface assertion.
var _ tts.Provider = (*Provider)(nil)

const (
	defaultModel = "gpt-4o-mini-tts"

	minSpeed = 0.5
	maxSpeed = 2.0
)

// voices is the fixed catalogue of the gpt-4o-mini-tts model. The endpoint
// has no voice-listing API, and every voice speaks every supported language.
var voices = []string{
	"alloy", "ash", "ballad", "coral", "echo",
	"fable", "onyx", "nova", "sage", "shimmer",
}

// languages the catalogue is advertised for.
var languages = []string{"en-US", "ur-PK"}

// Option is a functional option for configuring an openaitts Provider.
type Option func(*Provider)

// WithModel overrides the speech model. Defaults to gpt-4o-mini-tts.
func WithModel(model string) Option {
	return func(p *Provider) {
		p.model = model
	}
}

// WithBaseURL overrides the OpenAI API base URL, e.g. to point at a test
// server.
func WithBaseURL(baseURL string) Option {
	return func(p *Provider) {
		p.baseURL = baseURL
	}
}

// WithTimeout sets a per-request HTTP timeout. Defaults to 30 s.
func WithTimeout(d time.Duration) Option {
	return func(p *Provider) {
		p.timeout = d
	}
}

// Provider implements tts.Provider backed by the OpenAI speech endpoint.
// It is safe for concurrent use.
type Provider struct {
	client  oai.Client
	model   string
	baseURL string
	timeout time.Duration
}

// New creates an openaitts Provider authenticated with apiKey. apiKey must
// be non-empty.
func New(apiKey string, opts ...Option) (*Provider, error) {
	if apiKey == "" {
		return nil, errors.New("openaitts: apiKey must not be empty")
	}
	p := &Provider{
		model:   defaultModel,
		timeout: 30 * time.Second,
	}
	for _, o := range opts {
		o(p)
	}

	reqOpts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithHTTPClient(&http.Client{Timeout: p.timeout}),
	}
	if p.baseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(p.baseURL))
	}
	p.client = oai.NewClient(reqOpts...)
	return p, nil
}

// Synthesize produces MP3 audio for the request via the speech endpoint.
func (p *Provider) Synthesize(ctx context.Context, req tts.Request) ([]byte, error) {
	if req.Text == "" {
		return nil, errors.New("openaitts: text must not be empty")
	}
	if req.VoiceName == "" {
		return nil, errors.New("openaitts: voice name must not be empty")
	}

	input := applyEmphasis(req.Text, req.EmphasisWords)

	params := oai.AudioSpeechNewParams{
		Model:          oai.SpeechModel(p.model),
		Input:          input,
		Voice:          oai.AudioSpeechNewParamsVoice(req.VoiceName),
		ResponseFormat: oai.AudioSpeechNewParamsResponseFormatMP3,
		Speed:          oai.Float(speedFromPacing(req.Pacing)),
	}
	if req.Instructions != "" {
		params.Instructions = oai.String(req.Instructions)
	}

	resp, err := p.client.Audio.Speech.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("openaitts: speech request: %w", err)
	}
	defer resp.Body.Close()

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("openaitts: read audio response: %w", err)
	}
	return audio, nil
}

// ListVoices returns the fixed gpt-4o-mini-tts catalogue: every voice is
// neutral and offered for each supported language.
func (p *Provider) ListVoices(_ context.Context) ([]tts.Voice, error) {
	out := make([]tts.Voice, 0, len(voices)*len(languages))
	for _, lang := range languages {
		for _, name := range voices {
			out = append(out, tts.Voice{
				Name:         name,
				LanguageCode: lang,
				Gender:       "NEUTRAL",
				Provider:     "gpt4o-mini",
			})
		}
	}
	return out, nil
}

// speedFromPacing maps a pacing percentage to the endpoint's speed
// multiplier, clamped to the supported range.
func speedFromPacing(pacing float64) float64 {
	if pacing <= 0 {
		return 1.0
	}
	speed := pacing / 100.0
	if speed < minSpeed {
		return minSpeed
	}
	if speed > maxSpeed {
		return maxSpeed
	}
	return speed
}

// applyEmphasis wraps each emphasis word in <emphasis> markup wherever it
// appears in the text.
func applyEmphasis(text string, words []string) string {
	for _, w := range words {
		w = strings.TrimSpace(w)
		if w == "" {
			continue
		}
		text = strings.ReplaceAll(text, w, `<emphasis level="strong">`+w+`</emphasis>`)
	}
	return text
}
