package voice

// Field names accepted by [Resolver.Resolve]. They match the JSON wire names
// of the corresponding [Settings] fields.
const (
	FieldProvider                  = "provider"
	FieldLanguageCode              = "language_code"
	FieldVoiceName                 = "voice_name"
	FieldGender                    = "gender"
	FieldSpeakingRate              = "speaking_rate"
	FieldPitch                     = "pitch"
	FieldVolumeGainDB              = "volume_gain_db"
	FieldEmotion                   = "emotion"
	FieldEmotionIntensity          = "emotion_intensity"
	FieldSecondaryEmotion          = "secondary_emotion"
	FieldSecondaryEmotionIntensity = "secondary_emotion_intensity"
	FieldTone                      = "tone"
	FieldStyle                     = "style"
	FieldPacing                    = "pacing"
	FieldPauseFrequency            = "pause_frequency"
	FieldEmphasisWords             = "emphasis_words"
	FieldInstructionTemplate       = "instruction_template"
	FieldCustomInstructions        = "custom_instructions"
)

// Fields lists every settings field name, in declaration order.
var Fields = []string{
	FieldProvider, FieldLanguageCode, FieldVoiceName, FieldGender,
	FieldSpeakingRate, FieldPitch, FieldVolumeGainDB,
	FieldEmotion, FieldEmotionIntensity,
	FieldSecondaryEmotion, FieldSecondaryEmotionIntensity,
	FieldTone, FieldStyle, FieldPacing, FieldPauseFrequency,
	FieldEmphasisWords, FieldInstructionTemplate, FieldCustomInstructions,
}

// NumericFields lists the fields parsed to floating point by the resolver.
var NumericFields = []string{
	FieldSpeakingRate, FieldPitch, FieldVolumeGainDB,
	FieldEmotionIntensity, FieldSecondaryEmotionIntensity, FieldPacing,
}

// Settings is the full configuration record governing synthesised-audio
// style. It is a plain value: every change flows through [Resolver.Resolve]
// and produces a new record, so a Settings in hand is never mutated
// underneath its holder.
//
// Invariant: at every observable instant the (LanguageCode, VoiceName,
// Gender) triple belongs to the catalog of the current Provider, as long as
// every change goes through the resolver with the same catalog set.
type Settings struct {
	Provider     string `json:"provider"`
	LanguageCode string `json:"language_code"`
	VoiceName    string `json:"voice_name"`
	Gender       string `json:"gender"`

	SpeakingRate float64 `json:"speaking_rate"`
	Pitch        float64 `json:"pitch"`
	VolumeGainDB float64 `json:"volume_gain_db"`

	Emotion                   string  `json:"emotion"`
	EmotionIntensity          float64 `json:"emotion_intensity"`
	SecondaryEmotion          string  `json:"secondary_emotion"`
	SecondaryEmotionIntensity float64 `json:"secondary_emotion_intensity"`

	Tone           string  `json:"tone"`
	Style          string  `json:"style"`
	Pacing         float64 `json:"pacing"`
	PauseFrequency string  `json:"pause_frequency"`

	EmphasisWords       string `json:"emphasis_words"`
	InstructionTemplate string `json:"instruction_template"`
	CustomInstructions  string `json:"custom_instructions"`
}

// Defaults returns the session-start settings record.
func Defaults() Settings {
	return Settings{
		Provider:         ProviderGPT4oMini,
		LanguageCode:     "en-US",
		VoiceName:        "coral",
		Gender:           GenderNeutral,
		SpeakingRate:     1.0,
		Pitch:            0,
		VolumeGainDB:     0,
		Emotion:          "happiness",
		EmotionIntensity: 70,
		SecondaryEmotion: "none",
		Tone:             "empathetic",
		Style:            "conversational",
		Pacing:           100,
		PauseFrequency:   "medium",
	}
}

// Emotions lists the selectable base emotions.
var Emotions = []string{
	"neutral", "sympathetic", "sincere", "calm", "serene",
	"sadness", "happiness", "fear", "horror", "surprise",
	"anger", "rage", "love", "excitement", "anxiety", "disgust",
}

// Tones lists the selectable voice tones.
var Tones = []string{
	"empathetic", "solution-focused", "gentle", "authoritative", "warm",
	"soothing", "excited", "noble", "chaotic", "calm",
}

// Styles lists the selectable speaking styles.
var Styles = []string{
	"conversational", "professional", "dramatic", "monotone", "narrative",
	"poetic", "motivational", "whispered", "sarcastic", "childlike",
	"commanding", "meditative", "sports-coach", "bedtime-story",
	"medieval-knight", "mad-scientist", "patient-teacher", "auctioneer",
	"old-timey", "chill-surfer",
}

// PauseFrequencies lists the selectable pause frequencies.
var PauseFrequencies = []string{"low", "medium", "high"}
