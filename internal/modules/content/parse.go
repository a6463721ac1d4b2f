package content

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"

	types "github.com/yungbote/careermap-backend/internal/domain/content"
)

const (
	MaxPathwaySteps = 7
	minIncome       = 10000
	maxIncome       = 1000000
)

var (
	reFenceLine  = regexp.MustCompile("^\\s*(```|~~~)")
	reHeader     = regexp.MustCompile(`^\s{0,3}#{1,6}\s+`)
	reBlockQuote = regexp.MustCompile(`^\s*(?:>\s?)+`)
	reRule       = regexp.MustCompile(`^\s*[-*_](?:\s*[-*_]){2,}\s*$`)
	reBullet     = regexp.MustCompile(`^\s*[-*+•]\s+`)

	reMDLink      = regexp.MustCompile(`\[([^\]\n]+)\]\([^)\s]+\)`)
	reFootnote    = regexp.MustCompile(`\[\d+\]`)
	reBold        = regexp.MustCompile(`\*\*([^*\n]+)\*\*`)
	reBoldUnder   = regexp.MustCompile(`__([^_\n]+)__`)
	reItalic      = regexp.MustCompile(`\*([^*\n]+)\*`)
	reItalicUnder = regexp.MustCompile(`(^|[^\w])_([^_\n]+)_($|[^\w])`)
	reCodeSpan    = regexp.MustCompile("`([^`\n]*)`")
	reBlankRuns   = regexp.MustCompile(`\n{3,}`)

	reSection = regexp.MustCompile(`(?im)^[ \t]*(description|income|pathway)[ \t]*(?::|$)`)

	// label: a run without pipes or line breaks that does not cross a
	// sentence boundary (terminator followed by whitespace).
	reCitation = regexp.MustCompile(`((?:[^|\n.!?;:]|[.!?;:][^\s|])+)\s*\|\s*(https?://[^\s|]+)`)

	reAverage = regexp.MustCompile(`(?i)average[:\s]+\$?\s*([\d,]+)`)
	reRange   = regexp.MustCompile(`(?i)range[:\s]+\$?\s*([\d,]+)\s*(?:[-–—]|to)\s*\$?\s*([\d,]+)`)

	reStepMarker = regexp.MustCompile(`^\s*(?:\d+\.|[-•])\s*`)
)

// StripMarkup removes residual markdown. With keepBullets, list bullets are
// normalized to "- " instead of removed so list structure survives.
func StripMarkup(text string, keepBullets bool) string {
	if text == "" {
		return ""
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if reFenceLine.MatchString(line) || reRule.MatchString(line) {
			continue
		}
		line = reHeader.ReplaceAllString(line, "")
		line = reBlockQuote.ReplaceAllString(line, "")
		if keepBullets {
			line = reBullet.ReplaceAllString(line, "- ")
		} else {
			line = reBullet.ReplaceAllString(line, "")
		}
		out = append(out, strings.TrimRight(stripInline(line), " \t"))
	}
	cleaned := reBlankRuns.ReplaceAllString(strings.Join(out, "\n"), "\n\n")
	return strings.TrimSpace(cleaned)
}

func stripInline(s string) string {
	s = reMDLink.ReplaceAllString(s, "$1")
	s = reFootnote.ReplaceAllString(s, "")
	s = reBold.ReplaceAllString(s, "$1")
	s = reBoldUnder.ReplaceAllString(s, "$1")
	s = reItalic.ReplaceAllString(s, "$1")
	s = reItalicUnder.ReplaceAllString(s, "$1$2$3")
	s = reCodeSpan.ReplaceAllString(s, "$1")
	return s
}

// Sections is a response split on its DESCRIPTION / INCOME / PATHWAY labels.
type Sections struct {
	Description string
	Income      string
	Pathway     string
}

// SplitSections matches labels case-insensitively at line start, followed by
// a colon or end of line. The first occurrence of each label wins; a missing
// label leaves its section empty.
func SplitSections(text string) Sections {
	var s Sections
	locs := reSection.FindAllStringSubmatchIndex(text, -1)
	seen := map[string]bool{}
	for i, loc := range locs {
		label := strings.ToLower(text[loc[2]:loc[3]])
		end := len(text)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		if seen[label] {
			continue
		}
		seen[label] = true
		body := strings.TrimSpace(text[loc[1]:end])
		switch label {
		case "description":
			s.Description = body
		case "income":
			s.Income = body
		case "pathway":
			s.Pathway = body
		}
	}
	return s
}

type citationSpan struct {
	start, end int
	text, url  string
}

// ExtractLinks replaces each "label | URL" span with its label and returns
// the collected links in order of appearance.
func ExtractLinks(text string) (string, []types.Link) {
	links := []types.Link{}
	locs := reCitation.FindAllStringSubmatchIndex(text, -1)
	if len(locs) == 0 {
		return strings.TrimSpace(text), links
	}

	spans := make([]citationSpan, 0, len(locs))
	for _, loc := range locs {
		start := loc[2]
		for start < loc[3] && isSpace(text[start]) {
			start++
		}
		label := strings.TrimSpace(text[loc[2]:loc[3]])
		url := strings.TrimRight(text[loc[4]:loc[5]], ".,;:!?")
		if label == "" || !strings.Contains(url, "://") || strings.HasSuffix(url, "://") {
			continue
		}
		spans = append(spans, citationSpan{start: start, end: loc[1], text: label, url: url})
	}
	sort.SliceStable(spans, func(i, j int) bool { return spans[i].start < spans[j].start })

	var b strings.Builder
	cursor := 0
	for _, sp := range spans {
		if sp.start < cursor {
			continue
		}
		b.WriteString(text[cursor:sp.start])
		b.WriteString(sp.text)
		cursor = sp.end
		links = append(links, types.Link{Text: sp.text, URL: sp.url})
	}
	b.WriteString(text[cursor:])
	return strings.TrimSpace(b.String()), links
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

// ParseIncome reads "Average: $N" and "Range: $A - $B". Values outside
// [10000, 1000000], or a range with min >= max, are omitted.
func ParseIncome(text string) types.Income {
	var inc types.Income
	if m := reAverage.FindStringSubmatch(text); m != nil {
		if v, ok := parseAmount(m[1]); ok {
			inc.Average = formatDollars(v)
		}
	}
	if m := reRange.FindStringSubmatch(text); m != nil {
		lo, okLo := parseAmount(m[1])
		hi, okHi := parseAmount(m[2])
		if okLo && okHi && lo < hi {
			inc.Range = formatDollars(lo) + " - " + formatDollars(hi)
		}
	}
	return inc
}

func parseAmount(raw string) (int64, bool) {
	digits := strings.Trim(strings.ReplaceAll(raw, ",", ""), ".,;: ")
	if digits == "" {
		return 0, false
	}
	v, err := strconv.ParseInt(digits, 10, 64)
	if err != nil || v < minIncome || v > maxIncome {
		return 0, false
	}
	return v, true
}

func formatDollars(v int64) string {
	return "$" + humanize.Comma(v)
}

// ParsePathway keeps lines starting with "N." or a bullet, strips the marker
// and returns at most MaxPathwaySteps steps with a link list per step.
func ParsePathway(text string) ([]string, [][]types.Link) {
	steps := []string{}
	links := [][]types.Link{}
	for _, line := range strings.Split(text, "\n") {
		if len(steps) >= MaxPathwaySteps {
			break
		}
		loc := reStepMarker.FindStringIndex(line)
		if loc == nil {
			continue
		}
		step, stepLinks := ExtractLinks(strings.TrimSpace(line[loc[1]:]))
		if step == "" {
			continue
		}
		steps = append(steps, step)
		links = append(links, stepLinks)
	}
	return steps, links
}

// ParsedCareer is the structured form of a career response. Empty fields
// mean the section was missing or unusable.
type ParsedCareer struct {
	Description      string
	DescriptionLinks []types.Link
	Income           types.Income
	Pathway          []string
	PathwayLinks     [][]types.Link
}

// ParseCareerResponse strips markup and parses each section independently.
func ParseCareerResponse(raw string) ParsedCareer {
	sections := SplitSections(StripMarkup(raw, true))

	desc, descLinks := ExtractLinks(stripBullets(sections.Description))
	pathway, pathwayLinks := ParsePathway(sections.Pathway)
	return ParsedCareer{
		Description:      desc,
		DescriptionLinks: descLinks,
		Income:           ParseIncome(sections.Income),
		Pathway:          pathway,
		PathwayLinks:     pathwayLinks,
	}
}

func stripBullets(text string) string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = reBullet.ReplaceAllString(l, "")
	}
	return strings.Join(lines, "\n")
}
