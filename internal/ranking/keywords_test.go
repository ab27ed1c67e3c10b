package ranking

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenize(t *testing.T) {
	assert.Equal(t, []string{"go", "developer", "k8s", "ci", "cd"}, Tokenize("Go developer, K8s; CI/CD!"))
	assert.Empty(t, Tokenize("  ...  "))
}

func TestTokenize_Unicode(t *testing.T) {
	assert.Equal(t, []string{"développeur", "café", "münchen", "2024"}, Tokenize("Développeur café, München 2024"))
}

func TestExtractKeywords_CountsRunesNotBytes(t *testing.T) {
	// "été" is three letters but five bytes.
	assert.Equal(t, []string{"été"}, ExtractKeywords("été ça"))
}

func TestExtractKeywords_FrequencyThenFirstSeen(t *testing.T) {
	keywords := ExtractKeywords("Go developer. Go developer with Kubernetes and Kubernetes. Terraform.")
	assert.Equal(t, []string{"developer", "kubernetes", "terraform"}, keywords)
}

func TestExtractKeywords_DropsStopWordsAndShortTokens(t *testing.T) {
	keywords := ExtractKeywords("The team and you will be on it to do an ML job")
	assert.Equal(t, []string{"team", "job"}, keywords)
}

func TestExtractKeywords_TopTwenty(t *testing.T) {
	words := make([]string, 0, 25)
	for i := 1; i <= 25; i++ {
		words = append(words, fmt.Sprintf("skill%02d", i))
	}
	keywords := ExtractKeywords(strings.Join(words, " ") + " skill25")
	require.Len(t, keywords, 20)
	assert.Equal(t, "skill25", keywords[0])
	assert.Equal(t, "skill01", keywords[1])
	assert.Equal(t, "skill19", keywords[19])
}

func resumeWith(matches string, filler int) string {
	return matches + " " + strings.Repeat("filler ", filler)
}

func TestScoreKeywordDensity_Buckets(t *testing.T) {
	posting := "python python kubernetes"
	tests := []struct {
		total int
		want  float64
	}{
		{30, 100}, // 66.7 per thousand
		{45, 85},  // 44.4
		{60, 70},  // 33.3
		{80, 55},  // 25
		{150, 40}, // 13.3
		{300, 25}, // 6.7
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("words_%d", tt.total), func(t *testing.T) {
			resume := resumeWith("Python Kubernetes", tt.total-2)
			assert.Equal(t, tt.want, ScoreKeywordDensity(resume, posting))
		})
	}
}

func TestScoreKeywordDensity_Empty(t *testing.T) {
	assert.Equal(t, 0.0, ScoreKeywordDensity("", "python developer"))
	assert.Equal(t, 0.0, ScoreKeywordDensity("python developer", ""))
	assert.Equal(t, 0.0, ScoreKeywordDensity("python developer", "the and of to an"))
}

func TestScoreKeywordDensity_NoMatchesIsLowestBucket(t *testing.T) {
	assert.Equal(t, 25.0, ScoreKeywordDensity("gardening cooking painting", "python developer"))
}

func TestScoreKeywordDensity_OrderInvariant(t *testing.T) {
	posting := "Senior Python developer building Kafka pipelines on Kubernetes"
	a := "python kafka kubernetes developer " + strings.Repeat("misc ", 40) + "pipelines"
	b := "pipelines " + strings.Repeat("misc ", 20) + "kubernetes developer kafka " + strings.Repeat("misc ", 20) + "python"
	assert.Equal(t, ScoreKeywordDensity(a, posting), ScoreKeywordDensity(b, posting))
}
