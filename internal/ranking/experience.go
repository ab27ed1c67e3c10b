package ranking

import "strconv"

// ExtractRequiredYears scans posting text for an explicit years-of-experience
// requirement. The second return value is false when no pattern class matches.
func ExtractRequiredYears(postingText string) (float64, bool) {
	text := normalizeText(postingText)
	for _, p := range experienceRequirementPatterns {
		m := p.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		years, err := strconv.ParseFloat(m[p.group], 64)
		if err != nil {
			continue
		}
		return years, true
	}
	return 0, false
}

// ScoreExperience rates a candidate's years of experience against the requirement
// stated in the posting, falling back to absolute buckets when none is stated.
func ScoreExperience(years *float64, postingText string) float64 {
	required, hasRequirement := ExtractRequiredYears(postingText)
	if years == nil {
		return 0
	}
	candidate := *years
	if candidate < 0 {
		candidate = 0
	}

	if !hasRequirement {
		switch {
		case candidate >= 10:
			return 100
		case candidate >= 5:
			return 85
		case candidate >= 3:
			return 70
		case candidate >= 1:
			return 50
		default:
			return 25
		}
	}

	switch {
	case candidate >= required:
		return clamp(80 + min(2*(candidate-required), 20))
	case candidate >= 0.8*required:
		return 70
	case candidate >= 0.6*required:
		return 50
	case candidate >= 0.4*required:
		return 30
	default:
		return 10
	}
}
