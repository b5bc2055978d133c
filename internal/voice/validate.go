package voice

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// WarningKind classifies a validation warning.
type WarningKind string

const (
	WarnPacing      WarningKind = "pacing"
	WarnInstruction WarningKind = "instruction"
	WarnGender      WarningKind = "gender"
)

// Severity indicates whether a warning merely advises or blocks synthesis.
type Severity string

const (
	SeverityAdvisory Severity = "advisory"
	SeverityBlocking Severity = "blocking"
)

// Warning is a diagnostic derived from the current settings and detection
// results. Warnings are recomputed from scratch on every settings change and
// never persisted.
type Warning struct {
	Kind     WarningKind `json:"kind"`
	Severity Severity    `json:"severity"`
	Message  string      `json:"message"`
}

// GenderState is the gender-compatibility state of the current voice
// selection against the detected text gender.
type GenderState string

const (
	GenderUnknown    GenderState = "unknown"
	GenderCompatible GenderState = "compatible"
	GenderBlocked    GenderState = "blocked"
)

// DetectedUnknown is the detection result meaning no gender could be
// inferred from the text.
const DetectedUnknown = "unknown"

// pacingRule warns when a style's pacing crosses its threshold. Below
// selects the comparison direction: warn when pacing < Threshold if true,
// warn when pacing > Threshold otherwise.
type pacingRule struct {
	Style     string
	Below     bool
	Threshold float64
	Message   string
}

// pacingRules is checked in order; the first match wins. The serene emotion
// rule in [pacingWarning] runs only when no style rule matched.
var pacingRules = []pacingRule{
	{"sports-coach", true, 150, "Sports Coach style typically uses faster pacing (≥150%) for an energetic tone."},
	{"bedtime-story", false, 150, "Bedtime Story style typically uses steady pacing (≤150%) for a magical tone."},
	{"patient-teacher", false, 130, "Patient Teacher style typically uses slower pacing (≤130%) for a gentle tone."},
	{"auctioneer", true, 150, "Auctioneer style typically uses faster pacing (≥150%) for an urgent tone."},
	{"chill-surfer", false, 130, "Chill Surfer style typically uses slower pacing (≤130%) for a relaxed tone."},
	{"meditative", false, 100, "Meditative style typically uses slower pacing (≤100%) for a hypnotic effect."},
}

const serenePacingMessage = "Serene emotion typically uses slower pacing (≤120%) for a soothing effect."

// contradictions maps an emotion or style to instruction keywords that
// conflict with it. The mapping is deliberately partial: entries absent from
// the table simply have no contradiction check.
var contradictions = map[string][]string{
	"sadness":         {"cheerful", "excited", "happy"},
	"serene":          {"fast", "hurried", "excited"},
	"sincere":         {"angry", "rage", "disgust"},
	"sports-coach":    {"calm", "soft", "relaxed"},
	"bedtime-story":   {"fast", "urgent"},
	"patient-teacher": {"fast", "hurried"},
	"medieval-knight": {"casual", "modern"},
	"chill-surfer":    {"formal", "structured"},
	"meditative":      {"fast", "hurried"},
	"childlike":       {"formal", "professional"},
}

// minInstructionRunes is the length below which non-empty custom
// instructions draw the generic "add more detail" hint.
const minInstructionRunes = 10

// Engine derives warnings from a resolved settings record plus externally
// supplied detection results. It is stateless apart from the injected
// catalog set.
type Engine struct {
	Catalogs CatalogSet
}

// NewEngine returns a validation Engine over the given catalogs.
func NewEngine(catalogs CatalogSet) Engine {
	return Engine{Catalogs: catalogs}
}

// Report is the outcome of one validation pass.
type Report struct {
	// Warnings holds at most one pacing, one instruction, and one gender
	// warning, in that order.
	Warnings []Warning `json:"warnings"`

	// Gender is the gender-compatibility state.
	Gender GenderState `json:"gender_state"`
}

// Blocked reports whether synthesis must stay disabled.
func (r Report) Blocked() bool {
	return r.Gender == GenderBlocked
}

// Evaluate runs the three independent derivations — pacing, instruction
// contradiction, and gender compatibility — against s and detectedGender.
func (e Engine) Evaluate(s Settings, detectedGender string) Report {
	rep := Report{Gender: GenderUnknown}

	if w, ok := pacingWarning(s); ok {
		rep.Warnings = append(rep.Warnings, w)
	}
	if w, ok := instructionWarning(s); ok {
		rep.Warnings = append(rep.Warnings, w)
	}

	state, warning := e.genderCompatibility(s, detectedGender)
	rep.Gender = state
	if warning != nil {
		rep.Warnings = append(rep.Warnings, *warning)
	}

	return rep
}

// pacingWarning checks the ordered style rules first, then the serene
// emotion rule. At most one warning is produced; first match wins.
func pacingWarning(s Settings) (Warning, bool) {
	for _, rule := range pacingRules {
		if s.Style != rule.Style {
			continue
		}
		if (rule.Below && s.Pacing < rule.Threshold) || (!rule.Below && s.Pacing > rule.Threshold) {
			return Warning{Kind: WarnPacing, Severity: SeverityAdvisory, Message: rule.Message}, true
		}
	}
	if s.Emotion == "serene" && s.Pacing > 120 {
		return Warning{Kind: WarnPacing, Severity: SeverityAdvisory, Message: serenePacingMessage}, true
	}
	return Warning{}, false
}

// instructionWarning checks the lowercased custom instructions against the
// contradiction keywords of the current emotion, then the current style, then
// falls back to the too-short hint. Emotion takes precedence over style; only
// one warning is produced.
func instructionWarning(s Settings) (Warning, bool) {
	instructions := strings.ToLower(s.CustomInstructions)
	if instructions == "" {
		return Warning{}, false
	}

	if containsAny(instructions, contradictions[s.Emotion]) {
		return Warning{
			Kind:     WarnInstruction,
			Severity: SeverityAdvisory,
			Message:  fmt.Sprintf("The instruction may not align with the '%s' emotion. Consider adjusting for a more natural tone.", s.Emotion),
		}, true
	}
	if containsAny(instructions, contradictions[s.Style]) {
		return Warning{
			Kind:     WarnInstruction,
			Severity: SeverityAdvisory,
			Message:  fmt.Sprintf("The instruction may not align with the '%s' style. Consider adjusting for a more natural tone.", s.Style),
		}, true
	}
	if utf8.RuneCountInString(instructions) < minInstructionRunes {
		return Warning{
			Kind:     WarnInstruction,
			Severity: SeverityAdvisory,
			Message:  "Try a more detailed instruction, e.g., 'Speak with genuine concern'.",
		}, true
	}
	return Warning{}, false
}

// genderCompatibility evaluates the blocking gender check. It is only
// meaningful for providers whose catalog requires matched-gender voices;
// other providers always report the unknown state with no warning.
func (e Engine) genderCompatibility(s Settings, detectedGender string) (GenderState, *Warning) {
	cat, ok := e.Catalogs.Get(s.Provider)
	if !ok || !cat.RequiresGenderMatch {
		return GenderUnknown, nil
	}
	if detectedGender == "" || detectedGender == DetectedUnknown {
		return GenderUnknown, nil
	}

	selected := strings.ToLower(s.Gender)
	if detectedGender == selected {
		return GenderCompatible, nil
	}
	return GenderBlocked, &Warning{
		Kind:     WarnGender,
		Severity: SeverityBlocking,
		Message: fmt.Sprintf(
			"Text appears to be in %s form, but you selected a %s voice. Audio generation is disabled until genders match.",
			detectedGender, selected,
		),
	}
}

// containsAny reports whether any keyword is a substring of instructions.
func containsAny(instructions string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(instructions, k) {
			return true
		}
	}
	return false
}
