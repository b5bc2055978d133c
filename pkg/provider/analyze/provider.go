// Package analyze defines the Provider interface for document analysis
// backends.
//
// An analysis provider inspects uploaded documents, extracts the narration
// text, and classifies its dominant emotion and the grammatical gender of the
// narration. The results seed the session's voice configuration.
//
// Implementations must be safe for concurrent use.
package analyze

import "context"

// Detected gender values. Anything a backend reports outside this set is
// normalised to GenderUnknown by the implementation.
const (
	GenderMale    = "male"
	GenderFemale  = "female"
	GenderUnknown = "unknown"
)

// Emotions is the closed set of emotion labels a provider may report.
// The order matters only for prompt construction.
var Emotions = []string{
	"neutral", "sympathetic", "sincere", "calm", "serene",
	"sadness", "happiness", "fear", "horror", "surprise",
	"anger", "rage", "love", "excitement", "anxiety", "disgust",
}

// File is one uploaded document to analyse.
type File struct {
	// Name is the original filename, used for logging and error messages.
	Name string

	// MIMEType describes the file content (e.g. "application/pdf").
	MIMEType string

	// Data is the raw file content.
	Data []byte
}

// Result is the outcome of analysing one or more documents.
type Result struct {
	// ExtractedText is the cleaned narration text from all files combined,
	// in upload order.
	ExtractedText string

	// DetectedEmotion is the dominant emotion label from [Emotions], or ""
	// when none could be determined.
	DetectedEmotion string

	// DetectedGender is "male", "female" or "unknown".
	DetectedGender string
}

// Provider is the abstraction over any document analysis backend.
type Provider interface {
	// Analyze extracts and cleans the text of the given files and
	// classifies its emotion and narration gender. Files that yield no
	// usable text are skipped; an error is returned only when no file
	// produced text or the backend failed outright.
	Analyze(ctx context.Context, files []File) (Result, error)
}
