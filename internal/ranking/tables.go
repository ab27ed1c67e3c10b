package ranking

import (
	"regexp"
	"strings"
)

// requirementPattern extracts a years-of-experience requirement from posting text.
// group selects the capture group holding the value (the upper bound for ranges).
type requirementPattern struct {
	name  string
	re    *regexp.Regexp
	group int
}

// experienceRequirementPatterns are tried in priority order; the first class that
// matches anywhere in the posting wins.
var experienceRequirementPatterns = []requirementPattern{
	{
		name:  "plus",
		re:    regexp.MustCompile(`(\d+(?:\.\d+)?)\s*\+?\s*(?:years?|yrs?)['.]?(?:\s+of)?(?:\s+[a-z-]+)?\s+experience`),
		group: 1,
	},
	{
		name:  "range",
		re:    regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(?:-|–|to)\s*(\d+(?:\.\d+)?)\s*(?:years?|yrs?)['.]?(?:\s+of)?(?:\s+[a-z-]+)?\s+experience`),
		group: 2,
	},
	{
		name:  "minimum",
		re:    regexp.MustCompile(`minimum\s+(?:of\s+)?(\d+(?:\.\d+)?)\s*\+?\s*(?:years?|yrs?)`),
		group: 1,
	},
	{
		name:  "at_least",
		re:    regexp.MustCompile(`at\s+least\s+(\d+(?:\.\d+)?)\s*\+?\s*(?:years?|yrs?)`),
		group: 1,
	},
}

// HighValueSkills are skill fragments considered rare or valuable. A candidate skill
// counts as high value when it contains any entry (case-insensitive).
var HighValueSkills = []string{
	"machine learning",
	"deep learning",
	"artificial intelligence",
	"data science",
	"nlp",
	"tensorflow",
	"pytorch",
	"kubernetes",
	"docker",
	"devops",
	"ci/cd",
	"microservices",
	"terraform",
	"ansible",
	"aws",
	"azure",
	"gcp",
	"google cloud",
	"python",
	"golang",
	"rust",
	"java",
	"scala",
	"typescript",
	"react",
	"node",
	"spark",
	"kafka",
}

// StopWords are dropped from posting text before keyword extraction.
var StopWords = map[string]struct{}{
	"a": {}, "about": {}, "above": {}, "after": {}, "again": {}, "all": {}, "also": {},
	"an": {}, "and": {}, "any": {}, "are": {}, "as": {}, "at": {}, "be": {},
	"because": {}, "been": {}, "before": {}, "being": {}, "both": {}, "but": {},
	"by": {}, "can": {}, "could": {}, "did": {}, "do": {}, "does": {}, "doing": {},
	"during": {}, "each": {}, "etc": {}, "few": {}, "for": {}, "from": {}, "further": {},
	"had": {}, "has": {}, "have": {}, "having": {}, "he": {}, "her": {}, "here": {},
	"him": {}, "his": {}, "how": {}, "into": {}, "is": {}, "it": {}, "its": {},
	"just": {}, "more": {}, "most": {}, "must": {}, "no": {}, "not": {}, "now": {},
	"of": {}, "off": {}, "on": {}, "once": {}, "only": {}, "or": {}, "other": {},
	"our": {}, "ours": {}, "out": {}, "over": {}, "own": {}, "same": {}, "she": {},
	"should": {}, "so": {}, "some": {}, "such": {}, "than": {}, "that": {}, "the": {},
	"their": {}, "them": {}, "then": {}, "there": {}, "these": {}, "they": {}, "this": {},
	"those": {}, "through": {}, "to": {}, "too": {}, "under": {}, "until": {}, "up": {},
	"very": {}, "was": {}, "we": {}, "were": {}, "what": {}, "when": {}, "where": {},
	"which": {}, "while": {}, "who": {}, "whom": {}, "why": {}, "will": {}, "with": {},
	"would": {}, "you": {}, "your": {}, "yours": {},
}

// Field families recognised in a candidate's education text (substring match).
var (
	TechnicalFields = []string{
		"computer science", "computer engineering", "software", "information technology",
		"information systems", "data science", "artificial intelligence", "machine learning",
		"mathematics", "statistics", "computing",
	}
	BusinessFields = []string{
		"business", "management", "commerce", "economics", "finance", "accounting",
		"marketing", "administration", "mba",
	}
	EngineeringFields = []string{
		"engineering", "mechanical", "electrical", "civil", "chemical", "industrial",
		"aerospace", "electronics",
	}
)

// Posting keyword lists that pair with the field families above. Each keyword is
// matched at a word start, so "engineer" also matches "engineering".
var (
	technicalPostingKeywords = newTermList(
		"software", "developer", "engineer", "programming", "programmer", "technical",
		"data scientist", "machine learning", "devops",
	)
	genericITKeywords = newTermList(
		"technology", "information technology", "computer", "systems", "digital", "tech",
	)
	coreBusinessKeywords = newTermList(
		"business", "management", "manager", "strategy", "operations", "consulting", "analyst",
	)
	financeMarketingKeywords = newTermList(
		"finance", "financial", "marketing", "sales", "accounting", "budget",
	)
	engineeringPostingKeywords = newTermList(
		"engineer", "engineering", "design", "manufacturing", "hardware", "mechanical",
		"electrical", "embedded",
	)
)

// fieldBonusRule awards bonus points when the candidate's education belongs to a
// field family and the posting mentions any keyword of the paired list.
type fieldBonusRule struct {
	fields   []string
	keywords termList
	bonus    float64
}

// fieldBonusRules are evaluated in order; the first rule that applies wins.
var fieldBonusRules = []fieldBonusRule{
	{fields: TechnicalFields, keywords: technicalPostingKeywords, bonus: 15},
	{fields: TechnicalFields, keywords: genericITKeywords, bonus: 10},
	{fields: BusinessFields, keywords: coreBusinessKeywords, bonus: 12},
	{fields: BusinessFields, keywords: financeMarketingKeywords, bonus: 8},
	{fields: EngineeringFields, keywords: engineeringPostingKeywords, bonus: 12},
}

// termList is a set of words matched at word starts.
type termList []*regexp.Regexp

func newTermList(words ...string) termList {
	list := make(termList, 0, len(words))
	for _, w := range words {
		list = append(list, regexp.MustCompile(`\b`+regexp.QuoteMeta(w)))
	}
	return list
}

// anyIn reports whether any term of the list appears in text. Every term is tested.
func (l termList) anyIn(text string) bool {
	for _, re := range l {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

// containsAny reports whether text contains any of the substrings.
func containsAny(text string, subs []string) bool {
	for _, s := range subs {
		if strings.Contains(text, s) {
			return true
		}
	}
	return false
}

// normalizeText lower-cases text and folds typographic apostrophes.
func normalizeText(text string) string {
	text = strings.ToLower(text)
	return strings.NewReplacer("’", "'", "‘", "'").Replace(text)
}
