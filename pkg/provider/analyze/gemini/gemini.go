// Package gemini provides a Google Gemini-backed analysis provider. It
// implements the analyze.Provider interface.
//
// Analysis runs as a small prompt pipeline per upload batch: each file is
// passed to the model for Urdu text extraction (diacritics preserved), the
// extracted text is cleaned of abusive or unethical content, and the combined
// result is classified for dominant emotion and narration gender.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"google.golang.org/genai"

	"github.com/awaaz-ai/awaaz/pkg/provider/analyze"
)

// Compile-time interface assertion.
var _ analyze.Provider = (*Provider)(nil)

const defaultModel = "gemini-1.5-flash"

const extractionPrompt = `Extract content in Urdu only, including all diacritic marks such as zair, zabar, pesh, and all other diacritic marks.
Output only the extracted Urdu content without explanations.`

const filterPromptFmt = `Analyze the following text and remove any vulgar, abusive, or unethical words or phrases in Urdu or any other language.
Return only the cleaned text without any explanations or markers, preserving the original meaning as much as possible.
If no unethical content is found, return the text as is.
Text: %q`

const emotionPromptFmt = `Analyze the following text and identify the single most prominent emotion from this list: %s.
The text may be in Urdu, English, or a mix of both or any other language. Provide only the most dominant emotion as a single word or phrase.
Text: %q`

const genderPromptFmt = `Analyze the following Urdu text and determine the gender of the subject (male, female, or unknown).
Look for gender-specific indicators such as pronouns, verb conjugations, or gendered nouns.
Return only the detected gender as "male", "female", or "unknown".
Text: %q`

// Option is a functional option for configuring a gemini Provider.
type Option func(*Provider)

// WithModel overrides the model name used for all analysis prompts.
// Defaults to gemini-1.5-flash.
func WithModel(model string) Option {
	return func(p *Provider) {
		p.model = model
	}
}

// WithBaseURL overrides the API endpoint, e.g. to point at a test server.
func WithBaseURL(baseURL string) Option {
	return func(p *Provider) {
		p.baseURL = baseURL
	}
}

// Provider implements analyze.Provider backed by the Gemini API.
// It is safe for concurrent use.
type Provider struct {
	client  *genai.Client
	model   string
	baseURL string
}

// New creates a gemini Provider authenticated with apiKey. apiKey must be
// non-empty.
func New(ctx context.Context, apiKey string, opts ...Option) (*Provider, error) {
	if apiKey == "" {
		return nil, errors.New("gemini: apiKey must not be empty")
	}
	p := &Provider{model: defaultModel}
	for _, o := range opts {
		o(p)
	}

	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if p.baseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: p.baseURL}
	}
	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}
	p.client = client
	return p, nil
}

// Analyze runs the extraction, filtering, emotion and gender prompts for the
// given files. Files whose extraction yields no text are skipped; an error is
// returned when no file produced usable text.
func (p *Provider) Analyze(ctx context.Context, files []analyze.File) (analyze.Result, error) {
	if len(files) == 0 {
		return analyze.Result{}, errors.New("gemini: no files to analyze")
	}

	var parts []string
	for _, f := range files {
		text, err := p.extract(ctx, f)
		if err != nil {
			return analyze.Result{}, fmt.Errorf("gemini: extract %q: %w", f.Name, err)
		}
		if text == "" {
			slog.Debug("gemini: file yielded no text", "file", f.Name)
			continue
		}
		cleaned, err := p.filter(ctx, text)
		if err != nil {
			return analyze.Result{}, fmt.Errorf("gemini: filter %q: %w", f.Name, err)
		}
		if cleaned != "" {
			parts = append(parts, cleaned)
		}
	}
	if len(parts) == 0 {
		return analyze.Result{}, errors.New("gemini: no valid text extracted")
	}
	combined := strings.Join(parts, "\n")

	emotion, err := p.detectEmotion(ctx, combined)
	if err != nil {
		return analyze.Result{}, fmt.Errorf("gemini: detect emotion: %w", err)
	}
	gender, err := p.detectGender(ctx, combined)
	if err != nil {
		return analyze.Result{}, fmt.Errorf("gemini: detect gender: %w", err)
	}

	slog.Info("gemini: analysis complete",
		"files", len(files),
		"emotion", emotion,
		"gender", gender,
	)
	return analyze.Result{
		ExtractedText:   combined,
		DetectedEmotion: emotion,
		DetectedGender:  gender,
	}, nil
}

// extract sends one file together with the extraction prompt and returns the
// trimmed Urdu text.
func (p *Provider) extract(ctx context.Context, f analyze.File) (string, error) {
	contents := []*genai.Content{
		genai.NewContentFromParts(
			[]*genai.Part{
				genai.NewPartFromBytes(f.Data, f.MIMEType),
				genai.NewPartFromText(extractionPrompt),
			},
			genai.RoleUser,
		),
	}
	resp, err := p.client.Models.GenerateContent(ctx, p.model, contents, &genai.GenerateContentConfig{})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(resp.Text()), nil
}

// filter removes abusive content from text, returning it unchanged when
// nothing was flagged.
func (p *Provider) filter(ctx context.Context, text string) (string, error) {
	out, err := p.prompt(ctx, fmt.Sprintf(filterPromptFmt, text))
	if err != nil {
		return "", err
	}
	if out == "" {
		return text, nil
	}
	return out, nil
}

func (p *Provider) detectEmotion(ctx context.Context, text string) (string, error) {
	out, err := p.prompt(ctx, fmt.Sprintf(emotionPromptFmt, strings.Join(analyze.Emotions, ", "), text))
	if err != nil {
		return "", err
	}
	out = strings.ToLower(out)
	for _, e := range analyze.Emotions {
		if out == e {
			return e, nil
		}
	}
	return "", nil
}

func (p *Provider) detectGender(ctx context.Context, text string) (string, error) {
	out, err := p.prompt(ctx, fmt.Sprintf(genderPromptFmt, text))
	if err != nil {
		return "", err
	}
	switch strings.ToLower(out) {
	case analyze.GenderMale:
		return analyze.GenderMale, nil
	case analyze.GenderFemale:
		return analyze.GenderFemale, nil
	default:
		return analyze.GenderUnknown, nil
	}
}

// prompt runs a single text-only generation and returns the trimmed reply.
func (p *Provider) prompt(ctx context.Context, text string) (string, error) {
	contents := []*genai.Content{
		genai.NewContentFromText(text, genai.RoleUser),
	}
	resp, err := p.client.Models.GenerateContent(ctx, p.model, contents, &genai.GenerateContentConfig{})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(resp.Text()), nil
}
