// Package music provides a client for prompt-based background music
// generation via the Loudly soundtracks API.
//
// Generation is a single POST with form-encoded fields; there is no retry.
// API errors arrive as a JSON envelope ({"error": {"message", "details"}})
// and are surfaced to the caller verbatim.
package music

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	defaultBaseURL = "https://soundtracks.loudly.com"
	defaultTimeout = 60 * time.Second
	songsEndpoint  = "/api/ai/prompt/songs"

	// minPromptRunes is the minimum prompt length after trimming.
	minPromptRunes = 5

	// Duration bounds in seconds; out-of-range values are clamped.
	minDuration = 30
	maxDuration = 420
)

// Track is one generated music track.
type Track struct {
	// ID is the provider-assigned track identifier.
	ID string `json:"id"`

	// Title is the generated track title.
	Title string `json:"title"`

	// MediaURL points at the playable audio file.
	MediaURL string `json:"music_file_path"`

	// Duration is the track length in seconds.
	Duration int `json:"duration"`
}

// APIError is a structured error returned by the music service. The message
// and details are passed through exactly as the service reported them.
type APIError struct {
	StatusCode int
	Message    string
	Details    string
}

func (e *APIError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("music: api error (status %d): %s: %s", e.StatusCode, e.Message, e.Details)
	}
	return fmt.Sprintf("music: api error (status %d): %s", e.StatusCode, e.Message)
}

// Option is a functional option for configuring a music Client.
type Option func(*Client)

// WithBaseURL overrides the API base URL, e.g. to point at a test server.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithTimeout sets the per-request HTTP timeout. Defaults to 60 s; music
// generation is slow.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithTestMode requests watermarked test renders instead of full ones.
func WithTestMode() Option {
	return func(c *Client) {
		c.testMode = true
	}
}

// Client generates music tracks from text prompts. It is safe for
// concurrent use.
type Client struct {
	apiKey     string
	baseURL    string
	testMode   bool
	httpClient *http.Client
}

// New creates a music Client authenticated with apiKey. apiKey must be
// non-empty.
func New(apiKey string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New("music: apiKey must not be empty")
	}
	c := &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

// Generate requests one track for the prompt. The prompt must be at least
// five characters after trimming; duration is clamped to [30, 420] seconds,
// with 0 meaning service default. The call blocks until the service responds
// or ctx is cancelled; failures are never retried.
func (c *Client) Generate(ctx context.Context, prompt string, duration int) (Track, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return Track{}, errors.New("music: prompt is required")
	}
	if len([]rune(prompt)) < minPromptRunes {
		return Track{}, fmt.Errorf("music: prompt is too short, minimum length is %d characters", minPromptRunes)
	}

	form := url.Values{}
	form.Set("prompt", prompt)
	if duration != 0 {
		form.Set("duration", strconv.Itoa(clampDuration(duration)))
	}
	if c.testMode {
		form.Set("test", "true")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+songsEndpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return Track{}, fmt.Errorf("music: create request: %w", err)
	}
	req.Header.Set("API-KEY", c.apiKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Track{}, fmt.Errorf("music: POST %s: %w", songsEndpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Track{}, decodeAPIError(resp)
	}

	var track Track
	if err := json.NewDecoder(resp.Body).Decode(&track); err != nil {
		return Track{}, fmt.Errorf("music: decode response: %w", err)
	}
	return track, nil
}

// decodeAPIError parses the service's error envelope, falling back to the
// raw body when the envelope is absent.
func decodeAPIError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 8192))

	var envelope struct {
		Error struct {
			Message string `json:"message"`
			Details string `json:"details"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error.Message != "" {
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    envelope.Error.Message,
			Details:    envelope.Error.Details,
		}
	}
	return &APIError{
		StatusCode: resp.StatusCode,
		Message:    strings.TrimSpace(string(body)),
	}
}

// clampDuration bounds a requested duration to the supported range.
func clampDuration(d int) int {
	if d < minDuration {
		return minDuration
	}
	if d > maxDuration {
		return maxDuration
	}
	return d
}
