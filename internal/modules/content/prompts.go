package content

import (
	"bytes"
	"strings"
	"text/template"
)

const CareerSystemPrompt = "You are a career advisor. Output plain text only. Do NOT include any URLs or links. Be concise and factual."

var careerPromptTmpl = template.Must(template.New("career").Option("missingkey=zero").Parse(
	`Provide information about the career "{{.Career}}" in exactly this format:

DESCRIPTION:
Write 2-3 sentences (max 80 words) covering: main responsibilities, key skills, and education requirements.

INCOME:
Write the 2024-2025 US salary information in this exact format:
Average: $95000
Range: $60000 - $150000

RULES FOR INCOME:
- Use ONLY dollar sign + numbers (like $95000)
- NO commas, NO years, NO text, NO periods
- Example: "$60000 - $150000"

PATHWAY:
List exactly 5-6 concrete steps to pursue this career. Each step should be ONE actionable item.

REQUIREMENTS:
- Plain text only - NO markdown, NO URLs, NO links
- Be clear and concise
- Include specific skills, education, and experience needed{{if .Context}}

Context:
User's recent conversation context:
{{.Context}}

Use this context if relevant to tailor the career information.{{end}}`))

// CareerPrompt renders the three-section career request. chatContext is the
// caller's recent conversation as "role: content" lines, or empty.
func CareerPrompt(career, chatContext string) string {
	var buf bytes.Buffer
	_ = careerPromptTmpl.Execute(&buf, struct {
		Career  string
		Context string
	}{
		Career:  strings.TrimSpace(career),
		Context: strings.TrimSpace(chatContext),
	})
	return buf.String()
}
