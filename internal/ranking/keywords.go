package ranking

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"
)

const maxPostingKeywords = 20

var wordPattern = regexp.MustCompile(`[\p{L}\p{M}\p{N}_]+`)

// Tokenize splits text into lower-cased word tokens. Letters and digits of any
// script form words.
func Tokenize(text string) []string {
	return wordPattern.FindAllString(strings.ToLower(text), -1)
}

// ExtractKeywords returns up to 20 of the most frequent non-stop-word tokens of
// text. Equal counts keep first-seen order.
func ExtractKeywords(text string) []string {
	counts := make(map[string]int)
	var order []string
	for _, tok := range Tokenize(text) {
		if utf8.RuneCountInString(tok) <= 2 {
			continue
		}
		if _, stop := StopWords[tok]; stop {
			continue
		}
		if counts[tok] == 0 {
			order = append(order, tok)
		}
		counts[tok]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if len(order) > maxPostingKeywords {
		order = order[:maxPostingKeywords]
	}
	return order
}

// ScoreKeywordDensity measures how densely the posting's top keywords occur in
// the resume text, in matches per thousand resume words.
func ScoreKeywordDensity(resumeText, postingText string) float64 {
	keywords := ExtractKeywords(postingText)
	if len(keywords) == 0 {
		return 0
	}
	tokens := Tokenize(resumeText)
	if len(tokens) == 0 {
		return 0
	}

	set := make(map[string]struct{}, len(keywords))
	for _, k := range keywords {
		set[k] = struct{}{}
	}
	matches := 0
	for _, tok := range tokens {
		if _, ok := set[tok]; ok {
			matches++
		}
	}

	density := float64(matches) / float64(len(tokens)) * 1000
	switch {
	case density >= 50:
		return 100
	case density >= 40:
		return 85
	case density >= 30:
		return 70
	case density >= 20:
		return 55
	case density >= 10:
		return 40
	default:
		return 25
	}
}
