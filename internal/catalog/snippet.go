package catalog

// ResolveSnippet returns the starter code of the first live snippet whose language
// equals lang exactly, or "" when p is nil or has none.
func ResolveSnippet(p *Problem, lang string) string {
	if p == nil {
		return ""
	}
	for _, s := range p.Snippets {
		if s.Deleted() {
			continue
		}
		if s.Language == lang {
			return s.CodeSnippet
		}
	}
	return ""
}

// duplicateLanguages lists languages that carry more than one live snippet.
func duplicateLanguages(p Problem) []string {
	seen := make(map[string]int, len(p.Snippets))
	var dups []string
	for _, s := range p.Snippets {
		if s.Deleted() {
			continue
		}
		seen[s.Language]++
		if seen[s.Language] == 2 {
			dups = append(dups, s.Language)
		}
	}
	return dups
}
