package voice

import (
	"math"
	"strconv"
)

// instructionTemplates maps the known template keys to their instruction
// text. The "none" key maps to the empty string; keys double as the emotions
// that carry a predefined template.
var instructionTemplates = map[string]string{
	"none":        "",
	"sympathetic": "Speak warmly and empathetically, like comforting a friend",
	"sincere":     "Speak with genuine concern, pausing briefly after apologies",
	"calm":        "Speak in a calm, composed tone with quiet authority",
	"serene":      "Speak softly and slowly, with a soothing tone for relaxation",
	"sadness":     "Speak softly with slight vocal trembling, as if recalling a painful memory",
	"happiness":   "Speak with a bright, cheerful tone and a slight smile",
}

// emotionStyles maps emotions with a recommended style. Emotions outside
// this table leave the current style unchanged.
var emotionStyles = map[string]string{
	"happiness": "sports-coach",
	"serene":    "bedtime-story",
	"sadness":   "patient-teacher",
	"anger":     "medieval-knight",
	"surprise":  "mad-scientist",
}

// styleDefault is the tone/pacing pair a style change applies.
type styleDefault struct {
	Tone   string
	Pacing float64
}

// styleDefaults maps the styles with specific tone/pacing defaults. Styles
// outside this table get genericStyleDefault.
var styleDefaults = map[string]styleDefault{
	"sports-coach":    {Tone: "excited", Pacing: 200},
	"bedtime-story":   {Tone: "warm", Pacing: 130},
	"professional":    {Tone: "neutral", Pacing: 150},
	"medieval-knight": {Tone: "noble", Pacing: 140},
	"mad-scientist":   {Tone: "chaotic", Pacing: 180},
	"patient-teacher": {Tone: "calm", Pacing: 120},
}

var genericStyleDefault = styleDefault{Tone: "empathetic", Pacing: 100}

// Resolver applies single-field settings changes, cascading the dependent
// fields so the record stays internally consistent. The catalog set is
// injected configuration: swapping catalogs (e.g. a live provider listing)
// changes the snap targets without touching the rules.
type Resolver struct {
	Catalogs CatalogSet
}

// NewResolver returns a Resolver over the given catalogs.
func NewResolver(catalogs CatalogSet) Resolver {
	return Resolver{Catalogs: catalogs}
}

// Resolve maps (prev, changed field, raw value) to the next settings record.
// It is pure and total: it never fails and always returns a fully populated
// record. Rules are applied once per invocation, no fixpoint iteration.
//
// Numeric fields are parsed to floating point; unparsable input yields NaN,
// which the committing layer must reject before adopting the record. An
// unrecognised field name leaves prev unchanged.
func (r Resolver) Resolve(prev Settings, field, raw string) Settings {
	next := prev

	switch field {
	case FieldProvider:
		next.Provider = raw
		if cat, ok := r.Catalogs.Get(raw); ok {
			if lang, v, ok := cat.DefaultEntry(); ok {
				next.LanguageCode = lang
				next.VoiceName = v.Name
				next.Gender = v.Gender
			}
		}

	case FieldLanguageCode:
		next.LanguageCode = raw
		if cat, ok := r.Catalogs.Get(prev.Provider); ok {
			if lang, ok := cat.Language(raw); ok && len(lang.Voices) > 0 {
				next.VoiceName = lang.Voices[0].Name
				next.Gender = lang.Voices[0].Gender
			}
		}

	case FieldVoiceName:
		next.VoiceName = raw
		next.Gender = GenderNeutral
		if cat, ok := r.Catalogs.Get(prev.Provider); ok {
			if v, ok := cat.Voice(prev.LanguageCode, raw); ok {
				next.Gender = v.Gender
			}
		}

	case FieldEmotion:
		next.Emotion = raw
		if _, ok := instructionTemplates[raw]; ok {
			next.InstructionTemplate = raw
		} else {
			next.InstructionTemplate = "none"
		}
		next.CustomInstructions = instructionTemplates[next.InstructionTemplate]
		if style, ok := emotionStyles[raw]; ok {
			next.Style = style
		}

	case FieldStyle:
		next.Style = raw
		d, ok := styleDefaults[raw]
		if !ok {
			d = genericStyleDefault
		}
		next.Tone = d.Tone
		next.Pacing = d.Pacing

	case FieldInstructionTemplate:
		next.InstructionTemplate = raw
		next.CustomInstructions = instructionTemplates[raw]

	case FieldSpeakingRate:
		next.SpeakingRate = parseNumeric(raw)
	case FieldPitch:
		next.Pitch = parseNumeric(raw)
	case FieldVolumeGainDB:
		next.VolumeGainDB = parseNumeric(raw)
	case FieldEmotionIntensity:
		next.EmotionIntensity = parseNumeric(raw)
	case FieldSecondaryEmotionIntensity:
		next.SecondaryEmotionIntensity = parseNumeric(raw)
	case FieldPacing:
		next.Pacing = parseNumeric(raw)

	case FieldGender:
		next.Gender = raw
	case FieldSecondaryEmotion:
		next.SecondaryEmotion = raw
	case FieldTone:
		next.Tone = raw
	case FieldPauseFrequency:
		next.PauseFrequency = raw
	case FieldEmphasisWords:
		next.EmphasisWords = raw
	case FieldCustomInstructions:
		next.CustomInstructions = raw
	}

	return next
}

// parseNumeric parses raw as a float64, returning NaN as the non-numeric
// sentinel on failure.
func parseNumeric(raw string) float64 {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

// HasInvalidNumeric reports whether any numeric field of s carries the NaN
// sentinel produced by a failed parse. Callers must check this before
// committing a resolved record.
func HasInvalidNumeric(s Settings) bool {
	for _, v := range []float64{
		s.SpeakingRate, s.Pitch, s.VolumeGainDB,
		s.EmotionIntensity, s.SecondaryEmotionIntensity, s.Pacing,
	} {
		if math.IsNaN(v) {
			return true
		}
	}
	return false
}

// TemplateText returns the instruction text for a template key, and whether
// the key is known.
func TemplateText(key string) (string, bool) {
	text, ok := instructionTemplates[key]
	return text, ok
}

// TemplateKeys returns the known instruction template keys, "none" first.
func TemplateKeys() []string {
	keys := []string{"none"}
	for _, e := range Emotions {
		if _, ok := instructionTemplates[e]; ok {
			keys = append(keys, e)
		}
	}
	return keys
}
