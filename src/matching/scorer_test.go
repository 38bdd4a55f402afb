package matching

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// Stem-matched skill (3) plus a thesaurus-matched interest keyword (2).
func TestScore_Example(t *testing.T) {
	result := Score(
		"artificial research", "machine learning",
		[]string{"Python", "ML"}, []string{"python", "data"},
		"", "",
	)

	require.Equal(t, 5, result.Score)
	require.Equal(t, []string{
		"Shared interests: artificial",
		"Shared skills: Python",
	}, result.Reasons)
	require.Equal(t, 50, Compatibility(result.Score))
}

func TestScore_NoOverlap(t *testing.T) {
	result := Score(
		"baking", "astronomy",
		[]string{"juggling"}, []string{"fencing"},
		"circus tour", "submarine repair",
	)

	require.Equal(t, 0, result.Score)
	require.Empty(t, result.Reasons)
}

// Adding one more shared skill raises the score by exactly 3.
func TestScore_SkillMonotonicity(t *testing.T) {
	base := Score("", "", []string{"Go"}, []string{"golang"}, "", "")
	require.Equal(t, 3, base.Score)

	more := Score("", "", []string{"Go", "Docker"}, []string{"golang", "docker"}, "", "")
	require.Equal(t, base.Score+3, more.Score)
}

// All shared project keywords score, but the reason lists at most three.
func TestScore_KeywordReasonCap(t *testing.T) {
	idea := "golang chat server events platform"
	result := Score("", "", nil, nil, idea, idea)

	require.Equal(t, 5, result.Score)
	require.Equal(t, []string{"Similar project keywords: golang, chat, server"}, result.Reasons)
}

// Repeated tokens are not deduplicated; each occurrence counts.
func TestScore_DuplicateTokensInflate(t *testing.T) {
	result := Score("", "", nil, nil, "data data data", "data science")

	require.Equal(t, 3, result.Score)
	require.Equal(t, []string{"Similar project keywords: data, data, data"}, result.Reasons)
}

// An empty interest on either side skips the interest check entirely.
func TestScore_EmptyInterestSkipped(t *testing.T) {
	result := Score("", "machine learning", []string{"Python"}, []string{"python"}, "", "")

	require.Equal(t, 3, result.Score)
	require.Equal(t, []string{"Shared skills: Python"}, result.Reasons)
}

func TestCompatibility(t *testing.T) {
	tests := []struct {
		score int
		want  int
	}{
		{0, 0},
		{1, 10},
		{5, 50},
		{9, 90},
		{10, 100},
		{37, 100},
	}

	for _, tc := range tests {
		require.Equal(t, tc.want, Compatibility(tc.score))
	}
}
