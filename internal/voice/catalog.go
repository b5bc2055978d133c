// Package voice provides the narration voice configuration model: the
// provider voice catalogs, the settings record, the single-field cascade
// resolver, the validation engine, and the synthesis instructions builder.
package voice

// Provider names recognised by the built-in catalogs.
const (
	ProviderGPT4oMini = "gpt4o-mini"
	ProviderGoogle    = "google"
)

// Gender values used in catalog entries and settings.
const (
	GenderNeutral = "NEUTRAL"
	GenderFemale  = "FEMALE"
	GenderMale    = "MALE"
)

// Voice is one selectable voice within a language.
type Voice struct {
	Name   string
	Gender string
}

// Language groups the voices available for one language code.
type Language struct {
	Code   string
	Voices []Voice
}

// Catalog is the set of valid (language_code, voice_name, gender) triples a
// provider offers. Each provider owns a disjoint catalog; switching provider
// switches the active catalog.
type Catalog struct {
	// Provider is the provider name this catalog belongs to.
	Provider string

	// RequiresGenderMatch marks providers whose voices must match the
	// detected text gender before synthesis is allowed.
	RequiresGenderMatch bool

	// Languages lists the available languages in presentation order. The
	// first voice of the first language is the catalog default.
	Languages []Language
}

// DefaultEntry returns the catalog's default language code and voice: the
// first voice of the first language. ok is false for an empty catalog.
func (c Catalog) DefaultEntry() (lang string, v Voice, ok bool) {
	if len(c.Languages) == 0 || len(c.Languages[0].Voices) == 0 {
		return "", Voice{}, false
	}
	return c.Languages[0].Code, c.Languages[0].Voices[0], true
}

// Language returns the language entry for code.
func (c Catalog) Language(code string) (Language, bool) {
	for _, l := range c.Languages {
		if l.Code == code {
			return l, true
		}
	}
	return Language{}, false
}

// Voice returns the voice named name within the language code.
func (c Catalog) Voice(code, name string) (Voice, bool) {
	l, ok := c.Language(code)
	if !ok {
		return Voice{}, false
	}
	for _, v := range l.Voices {
		if v.Name == name {
			return v, true
		}
	}
	return Voice{}, false
}

// Contains reports whether the (language, voice, gender) triple belongs to
// this catalog.
func (c Catalog) Contains(lang, name, gender string) bool {
	v, ok := c.Voice(lang, name)
	return ok && v.Gender == gender
}

// CatalogSet holds the catalogs of all configured providers, keyed by
// provider name but iterated in registration order so listings stay stable.
type CatalogSet struct {
	catalogs []Catalog
}

// NewCatalogSet builds a set from the given catalogs. A later catalog with
// the same provider name replaces an earlier one.
func NewCatalogSet(catalogs ...Catalog) CatalogSet {
	var s CatalogSet
	for _, c := range catalogs {
		s.Put(c)
	}
	return s
}

// Put adds or replaces the catalog for c.Provider.
func (s *CatalogSet) Put(c Catalog) {
	for i, existing := range s.catalogs {
		if existing.Provider == c.Provider {
			s.catalogs[i] = c
			return
		}
	}
	s.catalogs = append(s.catalogs, c)
}

// Get returns the catalog registered for provider.
func (s CatalogSet) Get(provider string) (Catalog, bool) {
	for _, c := range s.catalogs {
		if c.Provider == provider {
			return c, true
		}
	}
	return Catalog{}, false
}

// All returns the catalogs in registration order.
func (s CatalogSet) All() []Catalog {
	out := make([]Catalog, len(s.catalogs))
	copy(out, s.catalogs)
	return out
}

// gpt4oMiniVoices are the neutral-gender voices exposed by the mini speech
// model, offered for every supported language.
var gpt4oMiniVoices = []string{
	"alloy", "ash", "ballad", "coral", "echo",
	"fable", "onyx", "nova", "sage", "shimmer",
}

// GPT4oMiniCatalog returns the built-in catalog for the gpt4o-mini provider.
// en-US is listed first so its coral/NEUTRAL entry is the catalog default.
func GPT4oMiniCatalog() Catalog {
	mkLang := func(code string) Language {
		l := Language{Code: code}
		for _, name := range gpt4oMiniVoices {
			l.Voices = append(l.Voices, Voice{Name: name, Gender: GenderNeutral})
		}
		return l
	}
	return Catalog{
		Provider:  ProviderGPT4oMini,
		Languages: []Language{mkLang("en-US"), mkLang("ur-PK")},
	}
}

// GoogleCatalog returns a static catalog for the google provider, used when
// the live voice listing is unavailable. Google voices carry a concrete
// gender, so synthesis is gated on matching the detected text gender.
func GoogleCatalog() Catalog {
	return Catalog{
		Provider:            ProviderGoogle,
		RequiresGenderMatch: true,
		Languages: []Language{
			{Code: "en-US", Voices: []Voice{
				{Name: "en-US-Wavenet-C", Gender: GenderFemale},
				{Name: "en-US-Wavenet-B", Gender: GenderMale},
				{Name: "en-US-Wavenet-F", Gender: GenderFemale},
				{Name: "en-US-Wavenet-D", Gender: GenderMale},
			}},
			{Code: "en-GB", Voices: []Voice{
				{Name: "en-GB-Wavenet-A", Gender: GenderFemale},
				{Name: "en-GB-Wavenet-B", Gender: GenderMale},
			}},
			{Code: "hi-IN", Voices: []Voice{
				{Name: "hi-IN-Wavenet-A", Gender: GenderFemale},
				{Name: "hi-IN-Wavenet-B", Gender: GenderMale},
			}},
		},
	}
}

// BuiltinCatalogs returns the default catalog set: gpt4o-mini first so it
// provides the session defaults, then the static google catalog.
func BuiltinCatalogs() CatalogSet {
	return NewCatalogSet(GPT4oMiniCatalog(), GoogleCatalog())
}
