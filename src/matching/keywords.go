package matching

import (
	"strings"
	"unicode"
)

// Keywords lowercases free text and splits it on runs of commas, whitespace,
// hyphens and underscores, dropping tokens of one or two characters. First
// occurrence order is preserved and duplicates are kept; a repeated token
// counts every time it appears.
func Keywords(text string) []string {
	tokens := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return r == ',' || r == '-' || r == '_' || unicode.IsSpace(r)
	})

	keywords := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if len(token) > 2 {
			keywords = append(keywords, token)
		}
	}
	return keywords
}
