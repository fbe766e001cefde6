package email

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"

	"lawflow/internal/domain"
)

//go:embed templates/*
var templateFS embed.FS

// Each email is three files under templates/: <name>_subject.txt, <name>.txt and <name>.html.
const (
	subjectSuffix = "_subject.txt"
	textSuffix    = ".txt"
	htmlSuffix    = ".html"
)

type templateRenderer struct {
	text *texttemplate.Template
	html *htmltemplate.Template
}

// NewTemplateRenderer parses the embedded templates once. Text templates fail
// on missing keys so a renamed field never ships an empty line to a client.
func NewTemplateRenderer() domain.EmailTemplateRenderer {
	return &templateRenderer{
		text: texttemplate.Must(texttemplate.New("email").Option("missingkey=error").ParseFS(templateFS, "templates/*"+textSuffix)),
		html: htmltemplate.Must(htmltemplate.New("email").ParseFS(templateFS, "templates/*"+htmlSuffix)),
	}
}

func (r *templateRenderer) Render(name string, data any) (subject, htmlBody, textBody string, err error) {
	if subject, err = r.execText(name+subjectSuffix, data); err != nil {
		return "", "", "", fmt.Errorf("render %s subject: %w", name, err)
	}
	if textBody, err = r.execText(name+textSuffix, data); err != nil {
		return "", "", "", fmt.Errorf("render %s text: %w", name, err)
	}
	t := r.html.Lookup(name + htmlSuffix)
	if t == nil {
		return "", "", "", fmt.Errorf("render %s html: template not found", name)
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", "", "", fmt.Errorf("render %s html: %w", name, err)
	}
	return strings.TrimSpace(subject), buf.String(), textBody, nil
}

func (r *templateRenderer) execText(file string, data any) (string, error) {
	t := r.text.Lookup(file)
	if t == nil {
		return "", fmt.Errorf("template %q not found", file)
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
