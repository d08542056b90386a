package templates

import (
	"bytes"
	"os"
	"path/filepath"
	"sort"
	"text/template"

	"github.com/vango-dev/rendr/internal/errors"
)

// Config contains template configuration.
type Config struct {
	// ProjectName is the name of the project.
	ProjectName string

	// Addr is the live server address written to rendr.yaml.
	Addr string

	// LogLevel is written to rendr.yaml.
	LogLevel string
}

// Template represents a starter layout.
type Template struct {
	// Name is the template name.
	Name string

	// Description describes the template.
	Description string

	// Files is a map of relative paths to file contents.
	Files map[string]string
}

var templates = map[string]*Template{
	"minimal":  minimalTemplate(),
	"fixtures": fixturesTemplate(),
}

// Get returns a template by name.
func Get(name string) (*Template, error) {
	tmpl, ok := templates[name]
	if !ok {
		return nil, errors.New("E172").
			WithDetail("Template '" + name + "' not found").
			WithSuggestion("Available templates: minimal, fixtures")
	}
	return tmpl, nil
}

// List returns all available template names, sorted.
func List() []string {
	names := make([]string, 0, len(templates))
	for name := range templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Paths returns the template's file paths, sorted.
func (t *Template) Paths() []string {
	paths := make([]string, 0, len(t.Files))
	for p := range t.Files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Create writes the template into dir.
func (t *Template) Create(dir string, cfg Config) error {
	if cfg.Addr == "" {
		cfg.Addr = "localhost:7070"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	for _, relPath := range t.Paths() {
		tmpl, err := template.New(relPath).Parse(t.Files[relPath])
		if err != nil {
			return errors.Newf(errors.CategoryCLI, "invalid template %s: %v", relPath, err)
		}

		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, cfg); err != nil {
			return errors.Newf(errors.CategoryCLI, "template execute error %s: %v", relPath, err)
		}

		fullPath := filepath.Join(dir, filepath.FromSlash(relPath))
		if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
			return err
		}
		if err := os.WriteFile(fullPath, buf.Bytes(), 0644); err != nil {
			return err
		}
	}

	return nil
}

const configFile = `name: {{.ProjectName}}
serve:
  addr: {{.Addr}}
  metricsPath: /metrics
log:
  level: {{.LogLevel}}
  format: text
`

func minimalTemplate() *Template {
	return &Template{
		Name:        "minimal",
		Description: "Just rendr.yaml",
		Files: map[string]string{
			"rendr.yaml": configFile,
		},
	}
}

func fixturesTemplate() *Template {
	return &Template{
		Name:        "fixtures",
		Description: "rendr.yaml plus fixtures for diff and render",
		Files: map[string]string{
			"rendr.yaml": configFile,

			"fixtures/before.yaml": `# rendr diff fixtures/before.yaml fixtures/after.yaml
tag: ul
props: {class: list}
children:
  - {tag: li, key: a, content: A}
  - {tag: li, key: b, content: B}
  - {tag: li, key: c, content: C}
  - {tag: li, key: d, content: D}
`,

			"fixtures/after.yaml": `tag: ul
props: {class: list}
children:
  - {tag: li, key: d, content: D}
  - {tag: li, key: a, content: A}
  - {tag: li, key: c, content: C changed}
  - {tag: li, key: e, content: E}
`,

			"fixtures/page.yaml": `# rendr render fixtures/page.yaml --out dist/index.html
tag: main
children:
  - {tag: h1, content: {{.ProjectName}}}
  - tag: p
    children:
      - "Rendered by "
      - {tag: strong, content: rendr}
`,
		},
	}
}
