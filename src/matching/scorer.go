package matching

import "strings"

const (
	interestWeight = 2
	skillWeight    = 3
	keywordWeight  = 1

	// Only the first three shared project keywords are listed in the
	// reason message; all of them still contribute to the score.
	maxKeywordReasons = 3
)

// Result is the outcome of scoring one candidate against the requester.
type Result struct {
	Score   int
	Reasons []string
}

// Compatibility converts a raw score to a 0-100 percentage; a score of 10
// or more saturates to 100.
func Compatibility(score int) int {
	if score >= 10 {
		return 100
	}
	return score * 10
}

// Score computes the weighted compatibility between the requester and a
// candidate. The three checks are independent and additive: shared interest
// keywords count 2 each, shared skills 3 each, shared project-idea keywords
// 1 each.
func Score(interest1, interest2 string, skills1, skills2 []string, idea1, idea2 string) Result {
	var result Result

	if interest1 != "" && interest2 != "" {
		shared := sharedKeywords(Keywords(interest1), Keywords(interest2))
		if len(shared) > 0 {
			result.Score += len(shared) * interestWeight
			result.Reasons = append(result.Reasons, "Shared interests: "+strings.Join(shared, ", "))
		}
	}

	if shared := sharedSkills(skills1, skills2); len(shared) > 0 {
		result.Score += len(shared) * skillWeight
		result.Reasons = append(result.Reasons, "Shared skills: "+strings.Join(shared, ", "))
	}

	if shared := sharedKeywords(Keywords(idea1), Keywords(idea2)); len(shared) > 0 {
		result.Score += len(shared) * keywordWeight
		listed := shared
		if len(listed) > maxKeywordReasons {
			listed = listed[:maxKeywordReasons]
		}
		result.Reasons = append(result.Reasons, "Similar project keywords: "+strings.Join(listed, ", "))
	}

	return result
}

// sharedKeywords returns every requester keyword with at least one matching
// candidate keyword, in requester order.
func sharedKeywords(ours, theirs []string) []string {
	var shared []string
	for _, keyword := range ours {
		if matchesAny(keyword, theirs) {
			shared = append(shared, keyword)
		}
	}
	return shared
}

// sharedSkills matches raw skill strings case-insensitively, keeping the
// requester's original casing for the reason message.
func sharedSkills(ours, theirs []string) []string {
	var shared []string
	theirsLower := lowered(theirs)
	for _, skill := range ours {
		if matchesAny(strings.ToLower(skill), theirsLower) {
			shared = append(shared, skill)
		}
	}
	return shared
}

func matchesAny(word string, candidates []string) bool {
	for _, candidate := range candidates {
		if strings.Contains(candidate, word) || strings.Contains(word, candidate) || AreSimilar(word, candidate) {
			return true
		}
	}
	return false
}

func lowered(words []string) []string {
	out := make([]string, len(words))
	for i, w := range words {
		out[i] = strings.ToLower(w)
	}
	return out
}
