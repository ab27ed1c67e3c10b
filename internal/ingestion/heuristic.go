package ingestion

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/jonathan/resume-shortlist/internal/ranking"
	"github.com/jonathan/resume-shortlist/internal/types"
)

const maxEducationLines = 3

// experienceClaimPatterns are tried in order; the first match wins.
var experienceClaimPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*\+?\s*(?:years?|yrs?)\s*(?:of\s+)?(?:experience|exp)\b`),
	regexp.MustCompile(`(?i)experience\s*:?\s*(\d+(?:\.\d+)?)\s*\+?\s*(?:years?|yrs?)`),
	regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*\+?\s*(?:years?|yrs?)\s+(?:in|of)\s+(?:software|development|engineering)`),
}

// skillVocabulary is the display form of every skill the offline extractor recognises.
var skillVocabulary = []string{
	// languages
	"Python", "Java", "JavaScript", "TypeScript", "Golang", "Rust", "Scala", "Kotlin",
	"C++", "C#", "Ruby", "PHP", "Swift", "SQL", "Bash",
	// frameworks and runtimes
	"React", "Angular", "Vue", "Node.js", "Django", "Flask", "FastAPI", "Spring",
	".NET",
	// data and ML
	"Machine Learning", "Deep Learning", "Artificial Intelligence", "Data Science", "NLP",
	"TensorFlow", "PyTorch", "Pandas", "NumPy", "Scikit-learn", "Spark", "Hadoop", "Kafka",
	"Tableau", "Power BI", "Excel",
	// storage
	"PostgreSQL", "MySQL", "MongoDB", "Redis", "Elasticsearch",
	// infrastructure
	"AWS", "Azure", "GCP", "Google Cloud", "Docker", "Kubernetes", "Terraform", "Ansible",
	"Jenkins", "CI/CD", "DevOps", "Linux", "Git", "Microservices", "GraphQL",
	// practices and soft skills
	"Agile", "Scrum", "Project Management", "Communication", "Leadership", "Teamwork",
	"Problem Solving", "Salesforce", "SEO", "Accounting",
}

type skillTerm struct {
	name string
	re   *regexp.Regexp
}

var skillTerms = func() []skillTerm {
	terms := make([]skillTerm, 0, len(skillVocabulary))
	for _, name := range skillVocabulary {
		expr := `(?i)(?:^|[^\w+#.])` + regexp.QuoteMeta(strings.ToLower(name)) + `(?:$|[^\w+#])`
		terms = append(terms, skillTerm{name: name, re: regexp.MustCompile(expr)})
	}
	return terms
}()

// HeuristicExtractor builds a CandidateProfile with regular expressions only.
type HeuristicExtractor struct{}

// NewHeuristicExtractor creates an offline extractor.
func NewHeuristicExtractor() *HeuristicExtractor {
	return &HeuristicExtractor{}
}

// Extract never fails; fields it cannot find are left empty.
func (HeuristicExtractor) Extract(_ context.Context, resumeText string) (*types.CandidateProfile, error) {
	return &types.CandidateProfile{
		Skills:          ExtractSkills(resumeText),
		ExperienceYears: ExtractExperienceYears(resumeText),
		Education:       ExtractEducationLines(resumeText),
		PreviousRoles:   []string{},
	}, nil
}

// ExtractEducation satisfies the LLM extractor's education fallback.
func (HeuristicExtractor) ExtractEducation(resumeText string) *string {
	return ExtractEducationLines(resumeText)
}

// ExtractExperienceYears returns the first years-of-experience claim in text.
func ExtractExperienceYears(text string) *float64 {
	for _, re := range experienceClaimPatterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		years, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			continue
		}
		return &years
	}
	return nil
}

// ExtractEducationLines joins up to three lines that mention a degree.
func ExtractEducationLines(text string) *string {
	var found []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "-*•·"))
		if line == "" || len(line) > 200 {
			continue
		}
		if ranking.DetectDegree(line) < 0 {
			continue
		}
		found = append(found, line)
		if len(found) == maxEducationLines {
			break
		}
	}
	if len(found) == 0 {
		return nil
	}
	joined := strings.Join(found, "; ")
	return &joined
}

// ExtractSkills returns the vocabulary skills mentioned in text, in vocabulary order.
func ExtractSkills(text string) []string {
	skills := []string{}
	for _, term := range skillTerms {
		if term.re.MatchString(text) {
			skills = append(skills, term.name)
		}
	}
	return skills
}
