package extract

import (
	"regexp"
	"strings"
)

// ====== Preprocessing ======

var (
	htmlCommentRe = regexp.MustCompile(`(?s)<!--.*?-->`)
	blankRunsRe   = regexp.MustCompile(`\n{3,}`)
	spaceRunsRe   = regexp.MustCompile(`[ \t]{2,}`)
)

// Preprocess normalizes a markdown transcript for LLM input: HTML
// comments are removed, runs of blank lines collapse to one, trailing
// whitespace is stripped per line and internal space runs collapse to a
// single space. Structure (headers, lists, indentation starts) survives.
func Preprocess(content string) string {
	s := htmlCommentRe.ReplaceAllString(content, "")
	s = blankRunsRe.ReplaceAllString(s, "\n\n")

	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	s = strings.Join(lines, "\n")

	s = spaceRunsRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// ====== Document structure ======

// Document is the structural metadata of a markdown transcript. It is
// informative only; the LLM receives the preprocessed text, not this.
type Document struct {
	Title    string
	Sections map[string]string
	Items    []string
	Keywords Keywords
	Stats    Stats
}

// Keywords are lines that look like process signals, grouped by what
// they hint at.
type Keywords struct {
	Responsible []string
	Decisions   []string
	Conditions  []string
	Events      []string
}

// Stats summarizes the transcript.
type Stats struct {
	Chars    int
	Lines    int
	Words    int
	H1       int
	H2       int
	H3       int
	Bullets  int
	Numbered int
}

var (
	titleRe    = regexp.MustCompile(`(?m)^#\s+(.+)$`)
	sectionRe  = regexp.MustCompile(`(?m)^##\s+(.+)$`)
	bulletRe   = regexp.MustCompile(`(?m)^\s*[-*]\s+(.+)$`)
	numberedRe = regexp.MustCompile(`(?m)^\s*\d+\.\s+(.+)$`)

	h1Re = regexp.MustCompile(`(?m)^#\s+`)
	h2Re = regexp.MustCompile(`(?m)^##\s+`)
	h3Re = regexp.MustCompile(`(?m)^###\s+`)

	responsibleRe = regexp.MustCompile(`(?mi)\(([A-Z][^)]+)\)|(?:responsible|owner|actor):\s*(.+)$`)
	decisionRe    = regexp.MustCompile(`(?mi)(?:decision|gateway):\s*(.+)$|^(?:if|when)\s+(.+)$`)
	conditionRe   = regexp.MustCompile(`(?mi)(?:if|when)\s+([^:\n]+):|(?:then|otherwise):\s*(.+)$`)
	eventRe       = regexp.MustCompile(`(?mi)(?:start|begin|trigger|end|finish|completion):\s*(.+)$`)
)

// ParseDocument extracts title, sections, list items, keyword hits and
// statistics from a markdown transcript.
func ParseDocument(content string) Document {
	doc := Document{Sections: map[string]string{}}

	if m := titleRe.FindStringSubmatch(content); m != nil {
		doc.Title = strings.TrimSpace(m[1])
	}

	doc.Sections = splitSections(content)
	doc.Items = listItems(content)
	doc.Keywords = Keywords{
		Responsible: firstGroups(responsibleRe, content),
		Decisions:   firstGroups(decisionRe, content),
		Conditions:  firstGroups(conditionRe, content),
		Events:      firstGroups(eventRe, content),
	}
	doc.Stats = Stats{
		Chars:    len(content),
		Lines:    len(strings.Split(content, "\n")),
		Words:    len(strings.Fields(content)),
		H1:       len(h1Re.FindAllString(content, -1)),
		H2:       len(h2Re.FindAllString(content, -1)),
		H3:       len(h3Re.FindAllString(content, -1)),
		Bullets:  len(bulletRe.FindAllString(content, -1)),
		Numbered: len(numberedRe.FindAllString(content, -1)),
	}
	return doc
}

// splitSections maps each "## heading" to the text that follows it, up
// to the next heading of the same level.
func splitSections(content string) map[string]string {
	sections := map[string]string{}
	locs := sectionRe.FindAllStringSubmatchIndex(content, -1)
	for i, loc := range locs {
		heading := strings.TrimSpace(content[loc[2]:loc[3]])
		bodyStart := loc[1]
		bodyEnd := len(content)
		if i+1 < len(locs) {
			bodyEnd = locs[i+1][0]
		}
		sections[heading] = strings.TrimSpace(content[bodyStart:bodyEnd])
	}
	return sections
}

func listItems(content string) []string {
	var items []string
	for _, m := range bulletRe.FindAllStringSubmatch(content, -1) {
		items = append(items, strings.TrimSpace(m[1]))
	}
	for _, m := range numberedRe.FindAllStringSubmatch(content, -1) {
		items = append(items, strings.TrimSpace(m[1]))
	}
	return items
}

// firstGroups collects the first non-empty capture group of each match.
func firstGroups(re *regexp.Regexp, content string) []string {
	var out []string
	for _, m := range re.FindAllStringSubmatch(content, -1) {
		for _, g := range m[1:] {
			if s := strings.TrimSpace(g); s != "" {
				out = append(out, s)
				break
			}
		}
	}
	return out
}
