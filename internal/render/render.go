// Package render turns field values into the static invite page and serves
// the creation form.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"invitely/api-gateway/internal/fields"
)

//go:embed templates/*.html
var templateFS embed.FS

// Renderer holds the parsed page templates.
type Renderer struct {
	invite *template.Template
	create *template.Template
}

// FormField is one text input of the creation form.
type FormField struct {
	Key       string
	Required  bool
	Default   string
	Multiline bool
}

// FormPage is the data of the creation form.
type FormPage struct {
	Fields         []FormField
	Photos         []string
	PrefillEnabled bool
	Questions      []string
}

// New parses the embedded templates.
func New() (*Renderer, error) {
	invite, err := template.New("invite_zh.html").
		Option("missingkey=error").
		ParseFS(templateFS, "templates/invite_zh.html")
	if err != nil {
		return nil, fmt.Errorf("parsing invite template: %w", err)
	}
	create, err := template.ParseFS(templateFS, "templates/create.html")
	if err != nil {
		return nil, fmt.Errorf("parsing create template: %w", err)
	}
	return &Renderer{
		invite: invite,
		create: create,
	}, nil
}

// ExpectedKeys lists every value RenderInvite needs: the schema keys followed
// by one URL per photo slot.
func ExpectedKeys() []string {
	keys := fields.Keys()
	for _, slot := range fields.Slots {
		keys = append(keys, slot.FormField())
	}
	return keys
}

// RenderInvite substitutes values into the invite page. Every expected key
// must be present. Values are plain text and escaped by the template.
func (r *Renderer) RenderInvite(values map[string]string) ([]byte, error) {
	data := make(map[string]any, len(values))
	for _, key := range ExpectedKeys() {
		val, ok := values[key]
		if !ok {
			return nil, fmt.Errorf("render invite: missing value for %q", key)
		}
		data[key] = val
	}

	var buf bytes.Buffer
	if err := r.invite.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render invite: %w", err)
	}
	return buf.Bytes(), nil
}

// NewFormPage describes the creation form for the given defaults.
func NewFormPage(defaults fields.Defaults, prefillEnabled bool, questions []string) FormPage {
	page := FormPage{PrefillEnabled: prefillEnabled, Questions: questions}
	for _, f := range fields.Schema() {
		page.Fields = append(page.Fields, FormField{
			Key:       f.Key,
			Required:  f.Required,
			Default:   defaults[f.Key],
			Multiline: f.Multiline,
		})
	}
	for _, slot := range fields.Slots {
		page.Photos = append(page.Photos, slot.FormField())
	}
	return page
}

// RenderCreateForm renders the creation form.
func (r *Renderer) RenderCreateForm(page FormPage) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.create.Execute(&buf, page); err != nil {
		return nil, fmt.Errorf("render create form: %w", err)
	}
	return buf.Bytes(), nil
}
