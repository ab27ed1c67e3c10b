package ranking

import "regexp"

// DegreeLevel is one row of the degree hierarchy. Lower index in DegreeHierarchy
// means a higher level.
type DegreeLevel struct {
	Key   string
	Label string
	Score float64

	patterns []*regexp.Regexp
	// excludes are stripped from the text before patterns are tested.
	excludes []*regexp.Regexp
}

// Matches reports whether lower-cased text mentions this degree level.
func (d DegreeLevel) Matches(text string) bool {
	for _, ex := range d.excludes {
		text = ex.ReplaceAllString(text, " ")
	}
	for _, p := range d.patterns {
		if p.MatchString(text) {
			return true
		}
	}
	return false
}

func patterns(exprs ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(exprs))
	for _, e := range exprs {
		out = append(out, regexp.MustCompile(e))
	}
	return out
}

// msProducts are Microsoft product names that read like an "MS" degree.
var msProducts = []string{
	`\bms\.?[\s-]+(?:office|excel|word|powerpoint|access|outlook|project|teams|sql|windows|azure|dynamics|visio|sharepoint|dos)\b`,
	`\d\s*ms\b`,
}

var bachelorOfArts = []string{
	`\bbachelor'?s?\s+(?:degree\s+)?(?:of|in)\s+arts\b`,
	`\bb\.?a\.?\b`,
}

// DegreeHierarchy lists degree levels from highest to lowest. Detection walks the
// table in order and the first matching row wins.
var DegreeHierarchy = []DegreeLevel{
	{
		Key:   "doctorate",
		Label: "Doctorate",
		Score: 100,
		patterns: patterns(
			`\bph\.?\s?d\b`,
			`\bdoctorate\b`,
			`\bdoctoral\b`,
			`\bdoctor\s+of\b`,
		),
	},
	{
		Key:   "master",
		Label: "Master's",
		Score: 85,
		patterns: patterns(
			`\bmaster'?s?\s+(?:degree|of|in)\b`,
			`\bmasters\b`,
			`\bmaster's\b`,
			`\bmba\b`,
			`\bm\.?sc\b`,
			`\bm\.?s\b`,
			`\bm\.?tech\b`,
			`\bm\.?eng\b`,
			`\bm\.a\.`,
		),
		excludes: patterns(msProducts...),
	},
	{
		Key:   "bachelor_bs",
		Label: "Bachelor's (Science/Engineering)",
		Score: 70,
		patterns: patterns(
			`\bbachelor'?s?\b`,
			`\bb\.?sc?\b`,
			`\bb\.s\.`,
			`\bb\.?tech\b`,
			`\bb\.e\.`,
			`\bb\.?eng\b`,
			`\bbba\b`,
			`\bundergraduate\s+degree\b`,
		),
		excludes: patterns(bachelorOfArts...),
	},
	{
		Key:      "bachelor_ba",
		Label:    "Bachelor's (Arts)",
		Score:    65,
		patterns: patterns(bachelorOfArts...),
	},
	{
		Key:   "associate",
		Label: "Associate",
		Score: 50,
		patterns: patterns(
			`\bassociate'?s?\s+(?:degree|of\s+(?:arts|science|applied))\b`,
		),
	},
	{
		Key:      "diploma",
		Label:    "Diploma",
		Score:    40,
		patterns: patterns(`\bdiploma\b`),
	},
	{
		Key:      "certificate",
		Label:    "Certificate",
		Score:    30,
		patterns: patterns(`\bcertificate\b`),
	},
}

// DetectDegree returns the index into DegreeHierarchy of the highest degree level
// mentioned in text, or -1 when none is found.
func DetectDegree(text string) int {
	text = normalizeText(text)
	for i, level := range DegreeHierarchy {
		if level.Matches(text) {
			return i
		}
	}
	return -1
}
