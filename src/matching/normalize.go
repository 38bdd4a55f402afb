// Package matching implements the compatibility heuristic: loose lexical
// matching over interests, skills and project-idea keywords.
package matching

import "strings"

// suffixes stripped once from the end of a word; at most one applies since
// every suffix ends in a distinct character.
var suffixes = []string{"s", "ing", "ed", "er", "ly"}

var separatorReplacer = strings.NewReplacer("-", "", "_", "")

// synonyms maps a concept to the surface forms treated as interchangeable.
// Entries are compared against normalized words, so stems like "school"
// (from "schools") hit the table too.
var synonyms = map[string][]string{
	"university": {"university", "uni", "college", "school"},
	"management": {"management", "manage", "admin", "administration"},
	"system":     {"system", "platform", "app", "application"},
	"student":    {"student", "learner", "user", "member"},
	"matching":   {"matching", "match", "connect", "pairing"},
	"project":    {"project", "assignment", "task", "work"},
	"web":        {"web", "website", "site", "online"},
	"mobile":     {"mobile", "app", "application", "phone"},
	"ai":         {"ai", "artificial", "intelligence", "machine"},
	"data":       {"data", "database", "information", "analytics"},
}

// Normalize lowercases a word, removes hyphen/underscore separators and
// strips a single trailing suffix.
func Normalize(word string) string {
	w := separatorReplacer.Replace(strings.ToLower(word))
	for _, suffix := range suffixes {
		if strings.HasSuffix(w, suffix) {
			return strings.TrimSuffix(w, suffix)
		}
	}
	return w
}

// AreSimilar reports whether two words should count as the same concept:
// equal stems, one stem containing the other, or both stems appearing in a
// single synonym entry. No edit-distance fuzziness.
func AreSimilar(word1, word2 string) bool {
	norm1 := Normalize(word1)
	norm2 := Normalize(word2)

	if norm1 == norm2 {
		return true
	}

	// Handles compound words like "university-management" vs "university".
	if strings.Contains(norm1, norm2) || strings.Contains(norm2, norm1) {
		return true
	}

	for _, forms := range synonyms {
		if containsWord(forms, norm1) && containsWord(forms, norm2) {
			return true
		}
	}

	return false
}

func containsWord(words []string, word string) bool {
	for _, w := range words {
		if w == word {
			return true
		}
	}
	return false
}
