// Package googletts provides a Google Cloud Text-to-Speech-backed TTS
// provider via its REST API. It implements the tts.Provider interface.
//
// Synthesis is performed with POST /v1/text:synthesize. The API rejects
// inputs over 5000 bytes, so longer narrations are split into chunks,
// synthesised one request per chunk, and the MP3 segments concatenated in
// order. The voice catalogue is retrieved from GET /v1/voices.
package googletts

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/awaaz-ai/awaaz/pkg/provider/tts"
)

// Compile-time interface assertion.
var _ tts.Provider = (*Provider)(nil)

const (
	defaultBaseURL     = "https://texttospeech.googleapis.com"
	defaultTimeout     = 30 * time.Second
	synthesizeEndpoint = "/v1/text:synthesize"
	voicesEndpoint     = "/v1/voices"

	// maxChunkBytes is the synthesis input limit imposed by the API.
	maxChunkBytes = 5000
)

// Option is a functional option for configuring a googletts Provider.
type Option func(*Provider)

// WithBaseURL overrides the API base URL, e.g. to point at a test server.
func WithBaseURL(baseURL string) Option {
	return func(p *Provider) {
		p.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithTimeout sets the per-request HTTP timeout. Defaults to 30 s.
func WithTimeout(d time.Duration) Option {
	return func(p *Provider) {
		p.httpClient.Timeout = d
	}
}

// Provider implements tts.Provider backed by the Google Cloud TTS REST API.
// It is safe for concurrent use.
type Provider struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// New creates a googletts Provider authenticated with apiKey. apiKey must
// be non-empty.
func New(apiKey string, opts ...Option) (*Provider, error) {
	if apiKey == "" {
		return nil, errors.New("googletts: apiKey must not be empty")
	}
	p := &Provider{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}
	for _, o := range opts {
		o(p)
	}
	return p, nil
}

// ---- request/response types ----

type synthesizeRequest struct {
	Input       synthesisInput       `json:"input"`
	Voice       voiceSelectionParams `json:"voice"`
	AudioConfig audioConfig          `json:"audioConfig"`
}

type synthesisInput struct {
	Text string `json:"text"`
}

type voiceSelectionParams struct {
	LanguageCode string `json:"languageCode"`
	Name         string `json:"name"`
	SsmlGender   string `json:"ssmlGender"`
}

type audioConfig struct {
	AudioEncoding string  `json:"audioEncoding"`
	SpeakingRate  float64 `json:"speakingRate,omitempty"`
	Pitch         float64 `json:"pitch,omitempty"`
	VolumeGainDB  float64 `json:"volumeGainDb,omitempty"`
}

type synthesizeResponse struct {
	AudioContent string `json:"audioContent"`
}

type voicesResponse struct {
	Voices []apiVoice `json:"voices"`
}

type apiVoice struct {
	LanguageCodes []string `json:"languageCodes"`
	Name          string   `json:"name"`
	SsmlGender    string   `json:"ssmlGender"`
}

// ---- Synthesize ----

// Synthesize produces MP3 audio for the request, splitting long narrations
// into API-sized chunks and concatenating the resulting segments in order.
func (p *Provider) Synthesize(ctx context.Context, req tts.Request) ([]byte, error) {
	if req.Text == "" {
		return nil, errors.New("googletts: text must not be empty")
	}
	if req.LanguageCode == "" || req.VoiceName == "" || req.Gender == "" {
		return nil, errors.New("googletts: language code, voice name and gender are required")
	}

	// Newlines confuse prosody at chunk boundaries; the API treats the
	// input as one utterance anyway.
	text := strings.TrimSpace(strings.ReplaceAll(req.Text, "\n", " "))

	var combined bytes.Buffer
	for _, chunk := range splitChunks(text, maxChunkBytes) {
		audio, err := p.synthesizeChunk(ctx, chunk, req)
		if err != nil {
			return nil, err
		}
		combined.Write(audio)
	}
	return combined.Bytes(), nil
}

// synthesizeChunk performs a single POST /v1/text:synthesize call and
// returns the decoded MP3 bytes.
func (p *Provider) synthesizeChunk(ctx context.Context, chunk string, req tts.Request) ([]byte, error) {
	body := synthesizeRequest{
		Input: synthesisInput{Text: chunk},
		Voice: voiceSelectionParams{
			LanguageCode: req.LanguageCode,
			Name:         req.VoiceName,
			SsmlGender:   strings.ToUpper(req.Gender),
		},
		AudioConfig: audioConfig{
			AudioEncoding: "MP3",
			SpeakingRate:  req.SpeakingRate,
			Pitch:         req.Pitch,
			VolumeGainDB:  req.VolumeGainDB,
		},
	}
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("googletts: marshal synthesize request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		p.baseURL+synthesizeEndpoint+"?key="+url.QueryEscape(p.apiKey),
		bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("googletts: create synthesize request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("googletts: POST %s: %w", synthesizeEndpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("googletts: POST %s returned status %d: %s",
			synthesizeEndpoint, resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var out synthesizeResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("googletts: decode synthesize response: %w", err)
	}
	audio, err := base64.StdEncoding.DecodeString(out.AudioContent)
	if err != nil {
		return nil, fmt.Errorf("googletts: decode audio content: %w", err)
	}
	return audio, nil
}

// ---- ListVoices ----

// ListVoices retrieves the voice catalogue via GET /v1/voices. Voices that
// serve multiple languages are returned once per language.
func (p *Provider) ListVoices(ctx context.Context) ([]tts.Voice, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet,
		p.baseURL+voicesEndpoint+"?key="+url.QueryEscape(p.apiKey), nil)
	if err != nil {
		return nil, fmt.Errorf("googletts: create list-voices request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("googletts: GET %s: %w", voicesEndpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("googletts: GET %s returned status %d", voicesEndpoint, resp.StatusCode)
	}

	var out voicesResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("googletts: decode voices response: %w", err)
	}

	var result []tts.Voice
	for _, v := range out.Voices {
		for _, lang := range v.LanguageCodes {
			result = append(result, tts.Voice{
				Name:         v.Name,
				LanguageCode: lang,
				Gender:       v.SsmlGender,
				Provider:     "google",
			})
		}
	}
	return result, nil
}

// splitChunks splits text into pieces of at most limit bytes, cutting on
// rune boundaries so multibyte characters are never torn apart.
func splitChunks(text string, limit int) []string {
	if len(text) <= limit {
		return []string{text}
	}
	var chunks []string
	var buf strings.Builder
	for _, r := range text {
		if buf.Len()+len(string(r)) > limit {
			chunks = append(chunks, buf.String())
			buf.Reset()
		}
		buf.WriteRune(r)
	}
	if buf.Len() > 0 {
		chunks = append(chunks, buf.String())
	}
	return chunks
}
