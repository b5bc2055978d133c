package music

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRequiresAPIKey(t *testing.T) {
	t.Parallel()
	_, err := New("")
	assert.Error(t, err)
}

func TestGenerateValidatesPrompt(t *testing.T) {
	t.Parallel()
	c, err := New("test-key")
	require.NoError(t, err)

	_, err = c.Generate(context.Background(), "   ", 60)
	assert.Error(t, err, "blank prompt")

	_, err = c.Generate(context.Background(), "hi  ", 60)
	assert.Error(t, err, "prompt under five characters after trim")
}

func TestGenerateSendsFormRequest(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, songsEndpoint, r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("API-KEY"))
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "calm piano for a rainy evening", r.PostForm.Get("prompt"))
		assert.Equal(t, "120", r.PostForm.Get("duration"))

		json.NewEncoder(w).Encode(Track{
			ID:       "trk-1",
			Title:    "Rainy Evening",
			MediaURL: "https://cdn.example.com/trk-1.mp3",
			Duration: 120,
		})
	}))
	defer srv.Close()

	c, err := New("test-key", WithBaseURL(srv.URL))
	require.NoError(t, err)

	track, err := c.Generate(context.Background(), "  calm piano for a rainy evening  ", 120)
	require.NoError(t, err)
	assert.Equal(t, "trk-1", track.ID)
	assert.Equal(t, 120, track.Duration)
}

func TestGenerateClampsDuration(t *testing.T) {
	t.Parallel()

	var gotDuration string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		gotDuration = r.PostForm.Get("duration")
		json.NewEncoder(w).Encode(Track{ID: "trk-2"})
	}))
	defer srv.Close()

	c, err := New("test-key", WithBaseURL(srv.URL))
	require.NoError(t, err)

	_, err = c.Generate(context.Background(), "epic orchestral build", 10)
	require.NoError(t, err)
	assert.Equal(t, "30", gotDuration, "below range clamps up")

	_, err = c.Generate(context.Background(), "epic orchestral build", 9000)
	require.NoError(t, err)
	assert.Equal(t, "420", gotDuration, "above range clamps down")
}

func TestGenerateSurfacesErrorEnvelope(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		w.Write([]byte(`{"error": {"message": "credit limit reached", "details": "upgrade your plan"}}`))
	}))
	defer srv.Close()

	c, err := New("test-key", WithBaseURL(srv.URL))
	require.NoError(t, err)

	_, err = c.Generate(context.Background(), "soft ambient pads", 60)
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusPaymentRequired, apiErr.StatusCode)
	assert.Equal(t, "credit limit reached", apiErr.Message)
	assert.Equal(t, "upgrade your plan", apiErr.Details)
}

func TestGenerateFallsBackToRawBody(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream exploded", http.StatusBadGateway)
	}))
	defer srv.Close()

	c, err := New("test-key", WithBaseURL(srv.URL))
	require.NoError(t, err)

	_, err = c.Generate(context.Background(), "soft ambient pads", 60)
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.True(t, strings.Contains(apiErr.Message, "upstream exploded"))
}

func TestGenerateDoesNotRetry(t *testing.T) {
	t.Parallel()

	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.Error(w, "busy", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c, err := New("test-key", WithBaseURL(srv.URL))
	require.NoError(t, err)

	_, err = c.Generate(context.Background(), "soft ambient pads", 60)
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}
