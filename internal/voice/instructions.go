package voice

import (
	"strconv"
	"strings"
)

// BuildInstructions renders the natural-language synthesis instructions for
// a resolved settings record. The output is deterministic: a base sentence
// describing the emotion and its intensity (with an optional secondary-
// emotion blend), the tone, the style, the pacing, and the pause frequency;
// optionally prefixed with the custom instructions and suffixed with an
// emphasis clause when emphasis words are set.
func BuildInstructions(s Settings) string {
	var b strings.Builder

	b.WriteString("Speak in a ")
	b.WriteString(s.Emotion)
	b.WriteString(" tone with ")
	b.WriteString(formatNumber(s.EmotionIntensity))
	b.WriteString("% intensity, ")

	if s.SecondaryEmotion != "" && s.SecondaryEmotion != "none" {
		b.WriteString("blended with ")
		b.WriteString(s.SecondaryEmotion)
		b.WriteString(" at ")
		b.WriteString(formatNumber(s.SecondaryEmotionIntensity))
		b.WriteString("% intensity, ")
	}

	b.WriteString(s.Tone)
	b.WriteString(" tone, ")
	b.WriteString(s.Style)
	b.WriteString(" style, with pacing at ")
	b.WriteString(formatNumber(s.Pacing))
	b.WriteString("% and pause frequency set to ")
	b.WriteString(s.PauseFrequency)
	b.WriteString(".")

	instructions := b.String()

	if s.EmphasisWords != "" {
		instructions += " Emphasize the following words: " + s.EmphasisWords + "."
	}
	if custom := strings.TrimSpace(s.CustomInstructions); custom != "" {
		instructions = custom + ". " + instructions
	}

	return instructions
}

// formatNumber renders a float without a trailing ".0" for whole values, so
// intensities read as "70%" rather than "70.0%".
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
