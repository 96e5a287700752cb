// ABOUTME: Outreach generator drafts first-contact messages for extracted profiles
// ABOUTME: Renders a subject and body per profile from text templates

package outreach

import (
	"fmt"
	"strings"
	"text/template"

	"newsnex-api/core/domain"
	coreerrors "newsnex-api/core/errors"
)

const subjectTemplate = `{{if .Title}}Your comments in "{{.Title}}"{{else}}Reaching out{{if .Company}} about {{.Company}}{{end}}{{end}}`

const bodyTemplate = `Hi {{.FirstName}},

I came across {{if .Title}}"{{.Title}}"{{if .SiteName}} in {{.SiteName}}{{end}}{{else}}a recent article{{end}}{{if .Role}} and your perspective as {{article .Role}} {{.Role}}{{if .Company}} at {{.Company}}{{end}}{{else if .Company}} and the work at {{.Company}}{{end}}.
{{- if .Quote}}

Your point that "{{.Quote}}" stood out to me.
{{- end}}

Would you be open to a short conversation in the coming weeks?

Best regards`

var templates = template.Must(template.New("subject").Funcs(template.FuncMap{
	"article": indefiniteArticle,
}).Parse(subjectTemplate))

func init() {
	template.Must(templates.New("body").Parse(bodyTemplate))
}

// draftData is the template input for one profile
type draftData struct {
	FirstName string
	Role      string
	Company   string
	Quote     string
	Title     string
	SiteName  string
}

// Generator renders outreach drafts
type Generator struct{}

// NewGenerator creates a new outreach generator
func NewGenerator() *Generator {
	return &Generator{}
}

// Generate drafts a message for every profile in result, or only for
// profileID when it is positive.
func (g *Generator) Generate(result *domain.ExtractionResult, profileID int) ([]domain.OutreachDraft, error) {
	if result == nil {
		return nil, fmt.Errorf("no extraction to draft outreach for")
	}

	profiles := result.Profiles
	if profileID > 0 {
		p, ok := result.Profile(profileID)
		if !ok {
			return nil, &coreerrors.NotFoundError{Resource: "profile", ID: fmt.Sprint(profileID)}
		}
		profiles = []domain.Profile{p}
	}

	drafts := make([]domain.OutreachDraft, 0, len(profiles))
	for _, p := range profiles {
		draft, err := render(p, result)
		if err != nil {
			return nil, err
		}
		drafts = append(drafts, draft)
	}
	return drafts, nil
}

func render(p domain.Profile, result *domain.ExtractionResult) (domain.OutreachDraft, error) {
	data := draftData{
		FirstName: firstName(p.Name),
		Role:      p.Role,
		Company:   p.Company,
		Quote:     strings.TrimSpace(p.Quote),
		Title:     result.Title,
		SiteName:  result.SiteName,
	}

	var subject, body strings.Builder
	if err := templates.ExecuteTemplate(&subject, "subject", data); err != nil {
		return domain.OutreachDraft{}, fmt.Errorf("rendering outreach subject: %w", err)
	}
	if err := templates.ExecuteTemplate(&body, "body", data); err != nil {
		return domain.OutreachDraft{}, fmt.Errorf("rendering outreach body: %w", err)
	}

	return domain.OutreachDraft{
		ProfileID: p.ID,
		Name:      p.Name,
		Subject:   subject.String(),
		Body:      body.String(),
	}, nil
}

func firstName(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return "there"
	}
	return fields[0]
}

// indefiniteArticle picks "a" or "an" for a role, treating acronyms by their spoken letter
func indefiniteArticle(word string) string {
	if word == "" {
		return "a"
	}
	first := word[0]
	if word == strings.ToUpper(word) && len(word) > 1 {
		// Acronyms: "an MD", "a CEO"
		if strings.ContainsRune("AEFHILMNORSX", rune(first)) {
			return "an"
		}
		return "a"
	}
	if strings.ContainsRune("AEIOUaeiou", rune(first)) {
		return "an"
	}
	return "a"
}
