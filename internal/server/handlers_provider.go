package server

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/awaaz-ai/awaaz/internal/session"
	"github.com/awaaz-ai/awaaz/internal/voice"
	"github.com/awaaz-ai/awaaz/pkg/provider/analyze"
	"github.com/awaaz-ai/awaaz/pkg/provider/music"
	"github.com/awaaz-ai/awaaz/pkg/provider/tts"
)

// multipartMemory is how much of a multipart upload is held in memory before
// spilling to temp files.
const multipartMemory = 32 << 20

// beginRequest claims the in-flight slot for kind and bumps the
// active-requests gauge. A false return means the conflict response has
// already been written; on success the caller must defer done.
func (s *Server) beginRequest(w http.ResponseWriter, r *http.Request, kind session.RequestKind) (done func(), ok bool) {
	if err := s.cfg.Session.Begin(kind); err != nil {
		writeError(w, http.StatusConflict, codeRequestInFlight, err.Error(), "")
		return nil, false
	}
	attrs := metric.WithAttributes(attribute.String("kind", string(kind)))
	s.metrics.ActiveRequests.Add(r.Context(), 1, attrs)
	return func() {
		s.cfg.Session.End(kind)
		s.metrics.ActiveRequests.Add(r.Context(), -1, attrs)
	}, true
}

// handleAnalyzeFiles accepts a multipart batch of documents, runs them
// through the analysis provider, and installs the outcome in the session.
func (s *Server) handleAnalyzeFiles(w http.ResponseWriter, r *http.Request) {
	if s.cfg.Analyze == nil {
		writeError(w, http.StatusServiceUnavailable, codeProviderUnavailable, "no analyze provider configured", "")
		return
	}
	done, ok := s.beginRequest(w, r, session.RequestAnalyze)
	if !ok {
		return
	}
	defer done()

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidRequest, "malformed multipart body", err.Error())
		return
	}
	if r.MultipartForm == nil || len(r.MultipartForm.File["files"]) == 0 {
		writeError(w, http.StatusBadRequest, codeInvalidRequest, `at least one file must be uploaded under the "files" field`, "")
		return
	}

	headers := r.MultipartForm.File["files"]
	maxFiles := s.cfg.Uploads.MaxFilesOrDefault()
	if len(headers) > maxFiles {
		writeError(w, http.StatusRequestEntityTooLarge, codeTooManyFiles,
			fmt.Sprintf("batch of %d files exceeds the limit of %d", len(headers), maxFiles), "")
		return
	}

	maxBytes := s.cfg.Uploads.MaxFileBytesOrDefault()
	files := make([]analyze.File, 0, len(headers))
	for _, fh := range headers {
		if fh.Size > maxBytes {
			writeError(w, http.StatusRequestEntityTooLarge, codeFileTooLarge,
				fmt.Sprintf("file %q exceeds the per-file limit of %d bytes", fh.Filename, maxBytes), "")
			return
		}
		f, err := fh.Open()
		if err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequest, "cannot read uploaded file", err.Error())
			return
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequest, "cannot read uploaded file", err.Error())
			return
		}
		files = append(files, analyze.File{
			Name:     fh.Filename,
			MIMEType: fh.Header.Get("Content-Type"),
			Data:     data,
		})
	}

	start := time.Now()
	result, err := s.cfg.Analyze.Analyze(r.Context(), files)
	s.metrics.AnalyzeDuration.Record(r.Context(), time.Since(start).Seconds())
	if err != nil {
		s.metrics.RecordProviderRequest(r.Context(), s.cfg.AnalyzeName, "analyze", "error")
		s.metrics.RecordProviderError(r.Context(), s.cfg.AnalyzeName, "analyze")
		writeError(w, http.StatusBadGateway, codeUpstreamError, "document analysis failed", err.Error())
		return
	}
	s.metrics.RecordProviderRequest(r.Context(), s.cfg.AnalyzeName, "analyze", "ok")

	s.cfg.Session.ApplyAnalysis(result.ExtractedText, result.DetectedEmotion, result.DetectedGender)
	s.syncBlockedGauge(r.Context())

	warnings := s.cfg.Session.Warnings()
	if warnings == nil {
		warnings = []voice.Warning{}
	}
	writeJSON(w, http.StatusOK, struct {
		Text            string            `json:"text"`
		DetectedEmotion string            `json:"detected_emotion"`
		DetectedGender  string            `json:"detected_gender"`
		Settings        voice.Settings    `json:"settings"`
		Warnings        []voice.Warning   `json:"warnings"`
		GenderState     voice.GenderState `json:"gender_state"`
	}{
		Text:            s.cfg.Session.Text(),
		DetectedEmotion: s.cfg.Session.DetectedEmotion(),
		DetectedGender:  s.cfg.Session.DetectedGender(),
		Settings:        s.cfg.Session.Settings(),
		Warnings:        warnings,
		GenderState:     s.cfg.Session.GenderState(),
	})
}

// Wire DTOs for the voice listing.
type providerVoicesDTO struct {
	Provider            string        `json:"provider"`
	RequiresGenderMatch bool          `json:"requires_gender_match"`
	Languages           []languageDTO `json:"languages"`
}

type languageDTO struct {
	Code   string     `json:"code"`
	Voices []voiceDTO `json:"voices"`
}

type voiceDTO struct {
	Name   string `json:"name"`
	Gender string `json:"gender"`
}

// handleAvailableVoices lists every provider catalog.
func (s *Server) handleAvailableVoices(w http.ResponseWriter, _ *http.Request) {
	catalogs := s.cfg.Catalogs.All()
	providers := make([]providerVoicesDTO, 0, len(catalogs))
	for _, cat := range catalogs {
		p := providerVoicesDTO{
			Provider:            cat.Provider,
			RequiresGenderMatch: cat.RequiresGenderMatch,
			Languages:           make([]languageDTO, 0, len(cat.Languages)),
		}
		for _, lang := range cat.Languages {
			l := languageDTO{Code: lang.Code, Voices: make([]voiceDTO, 0, len(lang.Voices))}
			for _, v := range lang.Voices {
				l.Voices = append(l.Voices, voiceDTO{Name: v.Name, Gender: v.Gender})
			}
			p.Languages = append(p.Languages, l)
		}
		providers = append(providers, p)
	}
	writeJSON(w, http.StatusOK, struct {
		Providers []providerVoicesDTO `json:"providers"`
	}{Providers: providers})
}

// handleGenerateAudio synthesises the current working text with the current
// voice settings and streams the MP3 back.
func (s *Server) handleGenerateAudio(w http.ResponseWriter, r *http.Request) {
	if s.cfg.TTS == nil {
		writeError(w, http.StatusServiceUnavailable, codeProviderUnavailable, "no tts provider configured", "")
		return
	}
	if s.cfg.Session.Text() == "" {
		writeError(w, http.StatusUnprocessableEntity, codeInvalidRequest, "no text to synthesise", "")
		return
	}
	if !s.cfg.Session.CanSynthesize() {
		writeError(w, http.StatusConflict, codeGenderBlocked,
			"audio generation is disabled while the voice gender conflicts with the detected narration gender", "")
		return
	}
	done, ok := s.beginRequest(w, r, session.RequestSynthesize)
	if !ok {
		return
	}
	defer done()

	settings := s.cfg.Session.Settings()
	req := tts.Request{
		Text:          s.cfg.Session.Text(),
		VoiceName:     settings.VoiceName,
		LanguageCode:  settings.LanguageCode,
		Gender:        settings.Gender,
		Instructions:  s.cfg.Session.Instructions(),
		Pacing:        settings.Pacing,
		SpeakingRate:  settings.SpeakingRate,
		Pitch:         settings.Pitch,
		VolumeGainDB:  settings.VolumeGainDB,
		EmphasisWords: splitEmphasisWords(settings.EmphasisWords),
	}

	start := time.Now()
	audio, err := s.cfg.TTS.Synthesize(r.Context(), req)
	s.metrics.SynthesisDuration.Record(r.Context(), time.Since(start).Seconds())
	if err != nil {
		s.metrics.RecordProviderRequest(r.Context(), s.cfg.TTSName, "tts", "error")
		s.metrics.RecordProviderError(r.Context(), s.cfg.TTSName, "tts")
		writeError(w, http.StatusBadGateway, codeUpstreamError, "speech synthesis failed", err.Error())
		return
	}
	s.metrics.RecordProviderRequest(r.Context(), s.cfg.TTSName, "tts", "ok")
	s.cfg.Session.SetAudio(audio)

	w.Header().Set("Content-Type", "audio/mpeg")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(audio)
}

// handleGenerateMusic generates a background track from a prompt.
func (s *Server) handleGenerateMusic(w http.ResponseWriter, r *http.Request) {
	if s.cfg.Music == nil {
		writeError(w, http.StatusServiceUnavailable, codeProviderUnavailable, "no music provider configured", "")
		return
	}

	var body struct {
		Prompt   string `json:"prompt"`
		Duration int    `json:"duration"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}
	prompt := strings.TrimSpace(body.Prompt)
	if len([]rune(prompt)) < 5 {
		writeError(w, http.StatusUnprocessableEntity, codeInvalidRequest, "prompt must be at least 5 characters", "")
		return
	}

	done, ok := s.beginRequest(w, r, session.RequestMusic)
	if !ok {
		return
	}
	defer done()

	start := time.Now()
	track, err := s.cfg.Music.Generate(r.Context(), prompt, body.Duration)
	s.metrics.MusicDuration.Record(r.Context(), time.Since(start).Seconds())
	if err != nil {
		s.metrics.RecordProviderRequest(r.Context(), s.cfg.MusicName, "music", "error")
		s.metrics.RecordProviderError(r.Context(), s.cfg.MusicName, "music")

		var apiErr *music.APIError
		if errors.As(err, &apiErr) {
			writeError(w, apiErr.StatusCode, codeUpstreamError, apiErr.Message, apiErr.Details)
			return
		}
		writeError(w, http.StatusBadGateway, codeUpstreamError, "music generation failed", err.Error())
		return
	}
	s.metrics.RecordProviderRequest(r.Context(), s.cfg.MusicName, "music", "ok")
	s.cfg.Session.SetMusic(track.MediaURL)

	writeJSON(w, http.StatusOK, track)
}

// splitEmphasisWords splits the comma-separated emphasis list into trimmed,
// non-empty words.
func splitEmphasisWords(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	words := make([]string, 0, len(parts))
	for _, p := range parts {
		if w := strings.TrimSpace(p); w != "" {
			words = append(words, w)
		}
	}
	return words
}
