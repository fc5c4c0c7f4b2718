package submission

// Language is one entry of the supported language table.
type Language struct {
	Value     string
	Label     string
	Extension string
}

// DefaultLanguage also supplies the extension for unknown languages.
const DefaultLanguage = "javascript"

var languages = []Language{
	{Value: "javascript", Label: "JavaScript", Extension: "js"},
	{Value: "python", Label: "Python", Extension: "py"},
	{Value: "java", Label: "Java", Extension: "java"},
	{Value: "cpp", Label: "C++", Extension: "cpp"},
}

// Languages returns the supported languages in display order.
func Languages() []Language {
	out := make([]Language, len(languages))
	copy(out, languages)
	return out
}

// Lookup finds a supported language by its code.
func Lookup(value string) (Language, bool) {
	for _, l := range languages {
		if l.Value == value {
			return l, true
		}
	}
	return Language{}, false
}

// Extension resolves the wire extension of a language.
func Extension(value string) string {
	if l, ok := Lookup(value); ok {
		return l.Extension
	}
	l, _ := Lookup(DefaultLanguage)
	return l.Extension
}
