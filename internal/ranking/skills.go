package ranking

import "strings"

// ScoreSkillsQuality rates a skill set by the share of high-value skills and its
// breadth. Skills are deduplicated case-insensitively and blank entries are
// ignored. postingText does not affect the result.
func ScoreSkillsQuality(skills []string, postingText string) float64 {
	unique := uniqueSkills(skills)
	if len(unique) == 0 {
		return 0
	}

	highValue := 0
	for _, skill := range unique {
		if IsHighValueSkill(skill) {
			highValue++
		}
	}

	total := float64(len(unique))
	base := float64(highValue) / total * 80
	countBonus := min(total*2, 20)
	return clamp(base + countBonus)
}

// uniqueSkills returns the distinct trimmed, lower-cased skills in first-seen order.
func uniqueSkills(skills []string) []string {
	seen := make(map[string]struct{}, len(skills))
	out := make([]string, 0, len(skills))
	for _, skill := range skills {
		key := strings.ToLower(strings.TrimSpace(skill))
		if key == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, key)
	}
	return out
}

// IsHighValueSkill reports whether skill contains any entry of HighValueSkills.
func IsHighValueSkill(skill string) bool {
	return containsAny(strings.ToLower(skill), HighValueSkills)
}
