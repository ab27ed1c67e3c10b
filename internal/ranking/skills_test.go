package ranking

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoreSkillsQuality_Empty(t *testing.T) {
	assert.Equal(t, 0.0, ScoreSkillsQuality(nil, "Kubernetes and Python engineer"))
	assert.Equal(t, 0.0, ScoreSkillsQuality([]string{}, "Kubernetes and Python engineer"))
}

func TestScoreSkillsQuality_MixedSkills(t *testing.T) {
	skills := []string{"Python", "Kubernetes", "Excel", "Communication"}
	// 2/4 high value → 40, plus 4*2 breadth
	assert.Equal(t, 48.0, ScoreSkillsQuality(skills, ""))
}

func TestScoreSkillsQuality_AllHighValue(t *testing.T) {
	skills := []string{
		"Python", "Golang", "Rust", "Docker", "Kubernetes",
		"AWS", "Terraform", "Kafka", "PyTorch", "Machine Learning",
	}
	assert.Equal(t, 100.0, ScoreSkillsQuality(skills, ""))
}

func TestScoreSkillsQuality_CaseInsensitiveSubstring(t *testing.T) {
	assert.Equal(t, 82.0, ScoreSkillsQuality([]string{"APPLIED MACHINE LEARNING"}, ""))
	assert.Equal(t, 82.0, ScoreSkillsQuality([]string{"golang"}, ""))
	assert.Equal(t, 2.0, ScoreSkillsQuality([]string{"Go"}, ""))
}

func TestScoreSkillsQuality_IgnoresPosting(t *testing.T) {
	skills := []string{"Docker", "Negotiation", "Spanish"}
	a := ScoreSkillsQuality(skills, "")
	b := ScoreSkillsQuality(skills, "Docker Docker Docker negotiation expert")
	assert.Equal(t, a, b)
}

func TestScoreSkillsQuality_BreadthBonusCapped(t *testing.T) {
	skills := make([]string, 0, 30)
	for i := range 30 {
		skills = append(skills, fmt.Sprintf("Soft skill %d", i))
	}
	assert.Equal(t, 20.0, ScoreSkillsQuality(skills, ""))
}

func TestScoreSkillsQuality_DuplicatesCountOnce(t *testing.T) {
	single := ScoreSkillsQuality([]string{"Python"}, "")
	assert.Equal(t, 82.0, single)
	assert.Equal(t, single, ScoreSkillsQuality([]string{"Python", "python", "PYTHON"}, ""))
	assert.Equal(t, single, ScoreSkillsQuality([]string{" Python ", "", "   "}, ""))

	// 1/2 high value → 40, plus 2*2 breadth
	assert.Equal(t, 44.0, ScoreSkillsQuality([]string{"Kafka", "Excel", "kafka", "EXCEL"}, ""))
}

func TestScoreSkillsQuality_OnlyBlankSkills(t *testing.T) {
	assert.Equal(t, 0.0, ScoreSkillsQuality([]string{"", "  "}, ""))
}

func TestIsHighValueSkill(t *testing.T) {
	assert.True(t, IsHighValueSkill("Google Cloud Platform"))
	assert.True(t, IsHighValueSkill("CI/CD pipelines"))
	assert.False(t, IsHighValueSkill("Public speaking"))
}
