package ranking

// ScoreEducation rates the candidate's highest degree against the degree level the
// posting asks for, then adds a field-relevance bonus.
func ScoreEducation(education *string, postingText string) float64 {
	if education == nil || *education == "" {
		return 0
	}
	candidateLevel := DetectDegree(*education)
	if candidateLevel < 0 {
		return 0
	}

	base := DegreeHierarchy[candidateLevel].Score
	if requiredLevel := DetectDegree(postingText); requiredLevel >= 0 {
		switch {
		case candidateLevel < requiredLevel:
			above := float64(requiredLevel - candidateLevel)
			base = min(DegreeHierarchy[requiredLevel].Score+min(10*above, 20), 100)
		case candidateLevel > requiredLevel:
			below := float64(candidateLevel - requiredLevel)
			base = max(DegreeHierarchy[candidateLevel].Score-15*below, 0)
		}
	}

	return clamp(base + FieldRelevanceBonus(*education, postingText))
}

// FieldRelevanceBonus returns 0-15 bonus points when the candidate's field of
// study lines up with the vocabulary of the posting.
func FieldRelevanceBonus(education, postingText string) float64 {
	edu := normalizeText(education)
	posting := normalizeText(postingText)
	for _, rule := range fieldBonusRules {
		if containsAny(edu, rule.fields) && rule.keywords.anyIn(posting) {
			return rule.bonus
		}
	}
	return 0
}
