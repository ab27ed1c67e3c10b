package ingestion

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Platform is a recognised applicant tracking system.
type Platform string

// Known platforms
const (
	PlatformGreenhouse Platform = "greenhouse"
	PlatformLever      Platform = "lever"
	PlatformWorkday    Platform = "workday"
	PlatformUnknown    Platform = "unknown"
)

// Extraction locates the description on a page. Content selectors are tried in
// order and the first match wins; Noise is removed first.
type Extraction struct {
	Content []string
	Noise   []string
}

// board describes the markup of one applicant tracking system.
type board struct {
	platform Platform
	hosts    []string
	content  []string
	noise    []string
}

var boards = []board{
	{
		platform: PlatformGreenhouse,
		hosts:    []string{"greenhouse.io"},
		content:  []string{".job__description.body", ".job__description", ".job-post-container", "#content"},
		noise:    []string{".application--wrapper", ".voluntary-self-id", "#usa_self_id_section"},
	},
	{
		platform: PlatformLever,
		hosts:    []string{"lever.co"},
		content:  []string{".posting-page", ".posting-description", ".content"},
		noise:    []string{".apply-section", ".posting-apply"},
	},
	{
		platform: PlatformWorkday,
		hosts:    []string{"workday.com", "myworkdayjobs.com"},
		content:  []string{"[data-automation-id='jobDescription']", ".job-description"},
		noise:    []string{"[data-automation-id='applyButton']"},
	},
}

// genericContent is used for boards without a known layout.
var genericContent = []string{
	".job-description", ".job-content", "#job-description", "#job-content",
	".posting-content", ".job-details", "[data-testid='job-description']",
	"main", "article", ".content", "#content",
}

// commonNoise matches application forms, EEO statements and share widgets.
var commonNoise = []string{
	"form", "#application-form", ".application-form", ".apply-button-container",
	".voluntary-disclosure", ".eeo-statement", ".eeo-section", ".self-identification",
	".social-share", ".share-buttons", ".cookie-consent", ".gdpr-notice",
}

// pageChrome is always removed.
const pageChrome = "nav, footer, header, script, style, noscript, .sidebar, .cookie-banner, .popup"

// DetectPlatform identifies the job board serving urlStr.
func DetectPlatform(urlStr string) Platform {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return PlatformUnknown
	}
	host := strings.ToLower(parsed.Host)
	for _, b := range boards {
		for _, h := range b.hosts {
			if strings.Contains(host, h) {
				return b.platform
			}
		}
	}
	return PlatformUnknown
}

// ExtractionFor returns the selectors for platform. Unknown platforms use the
// generic description selectors.
func ExtractionFor(platform Platform) Extraction {
	for _, b := range boards {
		if b.platform == platform {
			return Extraction{
				Content: b.content,
				Noise:   append(append([]string{}, commonNoise...), b.noise...),
			}
		}
	}
	return Extraction{Content: genericContent, Noise: commonNoise}
}

// Text returns the description text of an HTML page. Block elements end a
// line and list items are prefixed with "- ". When no content selector
// matches, the whole body is used.
func (e Extraction) Text(page string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find(pageChrome).Remove()
	if len(e.Noise) > 0 {
		doc.Find(strings.Join(e.Noise, ", ")).Remove()
	}

	main := doc.Find("body")
	for _, selector := range e.Content {
		if sel := doc.Find(selector); sel.Length() > 0 {
			main = sel.First()
			break
		}
	}

	var sb strings.Builder
	for _, n := range main.Nodes {
		writeText(&sb, n)
	}
	return collapseLines(sb.String()), nil
}

var blockElements = map[atom.Atom]bool{
	atom.P: true, atom.Div: true, atom.Li: true, atom.Tr: true,
	atom.H1: true, atom.H2: true, atom.H3: true, atom.H4: true, atom.H5: true, atom.H6: true,
	atom.Ul: true, atom.Ol: true, atom.Section: true, atom.Article: true, atom.Table: true,
}

func writeText(sb *strings.Builder, n *html.Node) {
	switch {
	case n.Type == html.TextNode:
		sb.WriteString(n.Data)
		return
	case n.DataAtom == atom.Br:
		sb.WriteByte('\n')
		return
	case n.DataAtom == atom.Li:
		sb.WriteString("\n- ")
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeText(sb, c)
	}
	if n.Type == html.ElementNode && blockElements[n.DataAtom] {
		sb.WriteByte('\n')
	}
}

// collapseLines squeezes runs of whitespace and drops blank lines.
func collapseLines(text string) string {
	lines := strings.Split(text, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if line = strings.Join(strings.Fields(line), " "); line != "" {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}
