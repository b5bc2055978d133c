package googletts

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/awaaz-ai/awaaz/pkg/provider/tts"
)

func TestNewRequiresAPIKey(t *testing.T) {
	t.Parallel()
	if _, err := New(""); err == nil {
		t.Fatal("expected error for empty api key")
	}
}

func TestSynthesizeSingleChunk(t *testing.T) {
	t.Parallel()

	var gotBody synthesizeRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != synthesizeEndpoint {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if key := r.URL.Query().Get("key"); key != "test-key" {
			t.Errorf("unexpected api key %q", key)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(synthesizeResponse{
			AudioContent: base64.StdEncoding.EncodeToString([]byte("mp3-bytes")),
		})
	}))
	defer srv.Close()

	p, err := New("test-key", WithBaseURL(srv.URL))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	audio, err := p.Synthesize(context.Background(), tts.Request{
		Text:         "یہ ایک آزمائشی متن ہے۔",
		VoiceName:    "en-US-Wavenet-C",
		LanguageCode: "en-US",
		Gender:       "female",
		SpeakingRate: 1.2,
		Pitch:        -2,
	})
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	if string(audio) != "mp3-bytes" {
		t.Errorf("audio = %q, want %q", audio, "mp3-bytes")
	}
	if gotBody.Voice.SsmlGender != "FEMALE" {
		t.Errorf("ssmlGender = %q, want FEMALE", gotBody.Voice.SsmlGender)
	}
	if gotBody.AudioConfig.AudioEncoding != "MP3" {
		t.Errorf("audioEncoding = %q, want MP3", gotBody.AudioConfig.AudioEncoding)
	}
	if gotBody.AudioConfig.SpeakingRate != 1.2 {
		t.Errorf("speakingRate = %v, want 1.2", gotBody.AudioConfig.SpeakingRate)
	}
}

func TestSynthesizeChunksLongText(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	var requests int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		requests++
		n := requests
		mu.Unlock()

		var req synthesizeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if len(req.Input.Text) > maxChunkBytes {
			t.Errorf("chunk %d exceeds limit: %d bytes", n, len(req.Input.Text))
		}
		json.NewEncoder(w).Encode(synthesizeResponse{
			AudioContent: base64.StdEncoding.EncodeToString([]byte{byte(n)}),
		})
	}))
	defer srv.Close()

	p, err := New("test-key", WithBaseURL(srv.URL))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	// Urdu text: each rune is multibyte, so the byte limit is hit well
	// before the rune count reaches it.
	long := strings.Repeat("آواز ", 2000)
	audio, err := p.Synthesize(context.Background(), tts.Request{
		Text:         long,
		VoiceName:    "en-US-Wavenet-C",
		LanguageCode: "en-US",
		Gender:       "FEMALE",
	})
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if requests < 2 {
		t.Fatalf("expected multiple chunked requests, got %d", requests)
	}
	// Segments are concatenated in request order.
	for i, b := range audio {
		if b != byte(i+1) {
			t.Fatalf("audio[%d] = %d, want %d (out-of-order concatenation)", i, b, i+1)
		}
	}
}

func TestSynthesizeRequiresVoiceFields(t *testing.T) {
	t.Parallel()
	p, err := New("test-key")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	_, err = p.Synthesize(context.Background(), tts.Request{Text: "hello"})
	if err == nil {
		t.Fatal("expected error for missing voice fields")
	}
}

func TestSynthesizeSurfacesAPIError(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": {"message": "quota exceeded"}}`, http.StatusForbidden)
	}))
	defer srv.Close()

	p, err := New("test-key", WithBaseURL(srv.URL))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	_, err = p.Synthesize(context.Background(), tts.Request{
		Text:         "hello",
		VoiceName:    "en-US-Wavenet-C",
		LanguageCode: "en-US",
		Gender:       "FEMALE",
	})
	if err == nil {
		t.Fatal("expected error for non-200 response")
	}
	if !strings.Contains(err.Error(), "403") {
		t.Errorf("error %q does not mention status code", err)
	}
}

func TestListVoicesExpandsLanguages(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != voicesEndpoint {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		json.NewEncoder(w).Encode(voicesResponse{
			Voices: []apiVoice{
				{Name: "en-US-Wavenet-C", LanguageCodes: []string{"en-US"}, SsmlGender: "FEMALE"},
				{Name: "multi", LanguageCodes: []string{"en-US", "en-GB"}, SsmlGender: "MALE"},
			},
		})
	}))
	defer srv.Close()

	p, err := New("test-key", WithBaseURL(srv.URL))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	voices, err := p.ListVoices(context.Background())
	if err != nil {
		t.Fatalf("ListVoices: %v", err)
	}
	if len(voices) != 3 {
		t.Fatalf("got %d voices, want 3", len(voices))
	}
	if voices[0].Provider != "google" {
		t.Errorf("provider = %q, want google", voices[0].Provider)
	}
}

func TestSplitChunksRespectsRuneBoundaries(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		text  string
		limit int
		want  int
	}{
		{name: "short ascii", text: "hello", limit: 10, want: 1},
		{name: "exact limit", text: "abcde", limit: 5, want: 1},
		{name: "split ascii", text: "abcdef", limit: 5, want: 2},
		{name: "multibyte", text: "آآآآ", limit: 5, want: 2}, // 2 bytes per rune
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			chunks := splitChunks(tt.text, tt.limit)
			if len(chunks) != tt.want {
				t.Fatalf("got %d chunks, want %d", len(chunks), tt.want)
			}
			if strings.Join(chunks, "") != tt.text {
				t.Errorf("chunks do not reassemble to input")
			}
			for i, c := range chunks {
				if len(c) > tt.limit {
					t.Errorf("chunk %d exceeds limit: %d bytes", i, len(c))
				}
			}
		})
	}
}
