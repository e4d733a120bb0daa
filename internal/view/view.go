// Package view renders the task pages from html/template templates.
package view

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"

	"github.com/phrazzld/task-tracker/internal/domain"
)

// Names of the templates a template set must define.
const (
	ListTemplate = "tasks"
	FormTemplate = "task_form"
)

// ErrTemplateNotFound is returned when a template set lacks a required template.
var ErrTemplateNotFound = errors.New("template not found")

//go:embed templates/*.html
var defaultTemplates embed.FS

// Page is the data passed to every template.
type Page struct {
	Title       string
	Tasks       []domain.Task
	FormAction  string
	NewTaskPath string
}

// Renderer executes the task templates.
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer parses the embedded default templates.
func NewRenderer() (*Renderer, error) {
	tmpl, err := template.ParseFS(defaultTemplates, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse embedded templates: %w", err)
	}
	return newRenderer(tmpl)
}

// NewRendererFromFile parses the templates in path instead of the embedded
// defaults. The file must define both ListTemplate and FormTemplate.
func NewRendererFromFile(path string) (*Renderer, error) {
	tmpl, err := template.ParseFiles(path)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template file: %w", err)
	}
	return newRenderer(tmpl)
}

// NewRendererFromString parses templates from text. Used for tests and
// for callers that build templates at runtime.
func NewRendererFromString(text string) (*Renderer, error) {
	tmpl, err := template.New("custom").Parse(text)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template: %w", err)
	}
	return newRenderer(tmpl)
}

func newRenderer(tmpl *template.Template) (*Renderer, error) {
	for _, name := range []string{ListTemplate, FormTemplate} {
		if tmpl.Lookup(name) == nil {
			return nil, fmt.Errorf("%w: %q", ErrTemplateNotFound, name)
		}
	}
	return &Renderer{tmpl: tmpl}, nil
}

// RenderList writes the task list page.
func (r *Renderer) RenderList(w io.Writer, page Page) error {
	return r.render(w, ListTemplate, page)
}

// RenderForm writes the create-task form.
func (r *Renderer) RenderForm(w io.Writer, page Page) error {
	return r.render(w, FormTemplate, page)
}

// render executes into a buffer first so a failing template never leaves
// a half-written page on the wire.
func (r *Renderer) render(w io.Writer, name string, page Page) error {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, page); err != nil {
		return fmt.Errorf("failed to execute template %q: %w", name, err)
	}
	if _, err := buf.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write page: %w", err)
	}
	return nil
}
