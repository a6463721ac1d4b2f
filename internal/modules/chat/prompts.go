package chat

import (
	"bytes"
	"strings"
	"text/template"

	"github.com/yungbote/careermap-backend/internal/domain/catalog"
)

var systemPromptTmpl = template.Must(template.New("chat_system").Option("missingkey=zero").Parse(
	`You are a concise college career coach{{if .University}} helping a student at {{.University}}{{end}}. Use web search to provide current, accurate information about careers, internships, and opportunities{{if .University}} specific to {{.University}} when relevant{{end}}. Give concrete next steps with sources when possible.{{if .Courses}}

Relevant courses at {{.University}}:
{{range .Courses}}- {{.}}
{{end}}{{end}}{{if .Clubs}}
Relevant student organizations at {{.University}}:
{{range .Clubs}}- {{.}}
{{end}}{{end}}{{if or .Courses .Clubs}}
Mention the courses and organizations above when they fit the question.{{end}}`))

// SystemPrompt personalises the coach prompt by university and, when
// retrieval found matches, lists them.
func SystemPrompt(university string, courses []catalog.ScoredCourse, orgs []catalog.ScoredOrganization) string {
	data := struct {
		University string
		Courses    []string
		Clubs      []string
	}{University: strings.TrimSpace(university)}
	for _, c := range courses {
		if c.Course != nil {
			data.Courses = append(data.Courses, courseLine(c.Course))
		}
	}
	for _, o := range orgs {
		if o.Organization != nil {
			data.Clubs = append(data.Clubs, orgLine(o.Organization))
		}
	}
	var buf bytes.Buffer
	_ = systemPromptTmpl.Execute(&buf, data)
	return strings.TrimRight(buf.String(), "\n")
}

func courseLine(c *catalog.Course) string {
	line := strings.TrimSpace(c.Subject + " " + c.CourseNumber)
	if d := strings.TrimSpace(c.CourseDescription); d != "" {
		line += ": " + truncateRunes(d, 160)
	}
	return line
}

func orgLine(o *catalog.Organization) string {
	line := strings.TrimSpace(o.Name)
	if d := strings.TrimSpace(o.Description); d != "" {
		line += ": " + truncateRunes(d, 160)
	}
	return line
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}

func echoText(content string) string {
	return `Thanks! I noted: "` + content + `". Next, try exploring a career node and ask for a pathway. To enable AI chat, configure a chat provider API key.`
}

const unavailableText = "I'm having trouble connecting to the AI service right now. Please try again in a moment."
