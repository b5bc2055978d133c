package server

import (
	"net/http"
	"slices"
	"strconv"

	"github.com/awaaz-ai/awaaz/internal/document"
	"github.com/awaaz-ai/awaaz/internal/voice"
)

// tokenDTO is the wire form of a document token.
type tokenDTO struct {
	Text         string `json:"text"`
	Start        int    `json:"start"`
	End          int    `json:"end"`
	IsWord       bool   `json:"is_word"`
	InDictionary bool   `json:"in_dictionary"`
}

// caretDTO is the wire form of the selection.
type caretDTO struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// tokensResponse is returned by every endpoint that changes or reads the
// working text.
type tokensResponse struct {
	Tokens []tokenDTO `json:"tokens"`
	Caret  caretDTO   `json:"caret"`
}

// settingsResponse is returned by every endpoint that changes the voice
// settings.
type settingsResponse struct {
	Settings    voice.Settings    `json:"settings"`
	Warnings    []voice.Warning   `json:"warnings"`
	GenderState voice.GenderState `json:"gender_state"`
}

func toTokenDTOs(tokens []document.Token) []tokenDTO {
	out := make([]tokenDTO, len(tokens))
	for i, t := range tokens {
		out[i] = tokenDTO{
			Text:         t.Text,
			Start:        t.Start,
			End:          t.End,
			IsWord:       t.IsWord,
			InDictionary: t.InDictionary,
		}
	}
	return out
}

func (s *Server) tokensResponseNow() tokensResponse {
	caret := s.cfg.Session.Caret()
	return tokensResponse{
		Tokens: toTokenDTOs(s.cfg.Session.Tokens()),
		Caret:  caretDTO{Start: caret.Start, End: caret.End},
	}
}

func (s *Server) settingsResponseNow() settingsResponse {
	warnings := s.cfg.Session.Warnings()
	if warnings == nil {
		warnings = []voice.Warning{}
	}
	return settingsResponse{
		Settings:    s.cfg.Session.Settings(),
		Warnings:    warnings,
		GenderState: s.cfg.Session.GenderState(),
	}
}

// handleSetText replaces the working text wholesale.
func (s *Server) handleSetText(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Text string `json:"text"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}
	s.cfg.Session.SetText(body.Text)
	writeJSON(w, http.StatusOK, s.tokensResponseNow())
}

// handleTokens returns the annotated token list and the caret.
func (s *Server) handleTokens(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.tokensResponseNow())
}

// handleSuggestions returns dictionary suggestions for the word query
// parameter.
func (s *Server) handleSuggestions(w http.ResponseWriter, r *http.Request) {
	word := r.URL.Query().Get("word")
	if word == "" {
		writeError(w, http.StatusBadRequest, codeInvalidRequest, "word query parameter is required", "")
		return
	}

	suggestions := s.cfg.Session.Suggest(word)
	s.metrics.RecordSuggestionQuery(r.Context(), len(suggestions) == 0)
	if suggestions == nil {
		suggestions = []string{}
	}
	writeJSON(w, http.StatusOK, struct {
		Word        string   `json:"word"`
		Suggestions []string `json:"suggestions"`
	}{Word: word, Suggestions: suggestions})
}

// handleReplace splices a replacement into the working text.
func (s *Server) handleReplace(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Start       int    `json:"start"`
		End         int    `json:"end"`
		Replacement string `json:"replacement"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}

	if err := s.cfg.Session.ApplyReplacement(body.Start, body.End, body.Replacement); err != nil {
		writeError(w, http.StatusUnprocessableEntity, codeInvalidRange, "replacement range is invalid", err.Error())
		return
	}
	s.metrics.RecordEdit(r.Context())
	writeJSON(w, http.StatusOK, s.tokensResponseNow())
}

// handleUpdateSetting routes a single-field settings change through the
// cascade resolver.
func (s *Server) handleUpdateSetting(w http.ResponseWriter, r *http.Request) {
	field := r.PathValue("field")
	if !slices.Contains(voice.Fields, field) {
		writeError(w, http.StatusUnprocessableEntity, codeInvalidValue, "unknown settings field "+strconv.Quote(field), "")
		return
	}

	var body struct {
		Value string `json:"value"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}

	if err := s.cfg.Session.UpdateSetting(field, body.Value); err != nil {
		writeError(w, http.StatusUnprocessableEntity, codeInvalidValue, "setting value rejected", err.Error())
		return
	}
	s.metrics.RecordSettingUpdate(r.Context(), field)
	s.syncBlockedGauge(r.Context())
	writeJSON(w, http.StatusOK, s.settingsResponseNow())
}

// handleReset restores the voice settings to defaults.
func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	s.cfg.Session.Reset()
	s.syncBlockedGauge(r.Context())
	writeJSON(w, http.StatusOK, s.settingsResponseNow())
}

// handleWarnings returns the current diagnostics and synthesis gate.
func (s *Server) handleWarnings(w http.ResponseWriter, _ *http.Request) {
	warnings := s.cfg.Session.Warnings()
	if warnings == nil {
		warnings = []voice.Warning{}
	}
	writeJSON(w, http.StatusOK, struct {
		Warnings      []voice.Warning   `json:"warnings"`
		GenderState   voice.GenderState `json:"gender_state"`
		CanSynthesize bool              `json:"can_synthesize"`
	}{
		Warnings:      warnings,
		GenderState:   s.cfg.Session.GenderState(),
		CanSynthesize: s.cfg.Session.CanSynthesize(),
	})
}
