package mailer

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"sync"
	texttemplate "text/template"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/renderer/html"
)

// Renderer turns markdown templates with YAML frontmatter into HTML
// wrapped in an html/template layout. Parsed templates and layouts are
// cached; rendering itself is stateless and safe for concurrent use.
type Renderer struct {
	fs       fs.FS
	md       goldmark.Markdown
	sanitize func(string) string

	templateDir string
	layoutDir   string

	mu        sync.RWMutex
	templates map[string]*cachedTemplate
	layouts   map[string]*template.Template
}

type cachedTemplate struct {
	metadata map[string]any
	tmpl     *texttemplate.Template
}

// RendererOption configures a Renderer.
type RendererOption func(*Renderer)

// WithTemplateDir sets the directory holding markdown templates. Default ".".
func WithTemplateDir(dir string) RendererOption {
	return func(r *Renderer) {
		if dir != "" {
			r.templateDir = dir
		}
	}
}

// WithLayoutDir sets the directory holding HTML layouts. Default "layouts".
func WithLayoutDir(dir string) RendererOption {
	return func(r *Renderer) {
		if dir != "" {
			r.layoutDir = dir
		}
	}
}

// WithSanitizer filters the markdown output before it is placed in the
// layout. The layout itself is trusted and never filtered.
func WithSanitizer(fn func(string) string) RendererOption {
	return func(r *Renderer) {
		r.sanitize = fn
	}
}

// WithHardWraps renders single newlines inside paragraphs as <br>.
func WithHardWraps() RendererOption {
	return func(r *Renderer) {
		r.md = goldmark.New(
			goldmark.WithExtensions(NewButtonExtension()),
			goldmark.WithRendererOptions(html.WithHardWraps()),
		)
	}
}

// NewRenderer creates a renderer reading templates from filesystem.
func NewRenderer(filesystem fs.FS, opts ...RendererOption) *Renderer {
	r := &Renderer{
		fs:          filesystem,
		md:          goldmark.New(goldmark.WithExtensions(NewButtonExtension())),
		templateDir: ".",
		layoutDir:   "layouts",
		templates:   make(map[string]*cachedTemplate),
		layouts:     make(map[string]*template.Template),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RenderResult contains the rendered HTML, plain text, and extracted metadata.
type RenderResult struct {
	Metadata map[string]any
	HTML     string
	Text     string // executed markdown, before HTML conversion
}

// Render executes the template with data, converts it to HTML and wraps it in layout.
func (r *Renderer) Render(layout, templateName string, data any) (*RenderResult, error) {
	cached, err := r.template(templateName)
	if err != nil {
		return nil, err
	}

	var markdown bytes.Buffer
	if err := cached.tmpl.Execute(&markdown, data); err != nil {
		return nil, fmt.Errorf("%w: execute %s: %v", ErrRenderFailed, templateName, err)
	}

	var body bytes.Buffer
	if err := r.md.Convert(markdown.Bytes(), &body); err != nil {
		return nil, fmt.Errorf("%w: convert markdown: %v", ErrRenderFailed, err)
	}
	content := body.String()
	if r.sanitize != nil {
		content = r.sanitize(content)
	}

	layoutTmpl, err := r.layout(layout)
	if err != nil {
		return nil, err
	}

	var out bytes.Buffer
	if err := layoutTmpl.Execute(&out, map[string]any{
		"Content":  template.HTML(content),
		"Metadata": cached.metadata,
	}); err != nil {
		return nil, fmt.Errorf("%w: execute layout %s: %v", ErrRenderFailed, layout, err)
	}

	return &RenderResult{
		HTML:     out.String(),
		Text:     markdown.String(),
		Metadata: cached.metadata,
	}, nil
}

func (r *Renderer) template(name string) (*cachedTemplate, error) {
	r.mu.RLock()
	cached, ok := r.templates[name]
	r.mu.RUnlock()
	if ok {
		return cached, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if cached, ok := r.templates[name]; ok {
		return cached, nil
	}

	content, err := fs.ReadFile(r.fs, path.Join(r.templateDir, name))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrTemplateNotFound, name, err)
	}
	parsed, err := ParseTemplate(content)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrRenderFailed, name, err)
	}
	tmpl, err := texttemplate.New(name).Parse(parsed.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", ErrRenderFailed, name, err)
	}

	cached = &cachedTemplate{metadata: parsed.Metadata, tmpl: tmpl}
	r.templates[name] = cached
	return cached, nil
}

func (r *Renderer) layout(name string) (*template.Template, error) {
	r.mu.RLock()
	cached, ok := r.layouts[name]
	r.mu.RUnlock()
	if ok {
		return cached, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if cached, ok := r.layouts[name]; ok {
		return cached, nil
	}

	content, err := fs.ReadFile(r.fs, path.Join(r.layoutDir, name))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrLayoutNotFound, name, err)
	}
	tmpl, err := template.New(name).Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("%w: parse layout %s: %v", ErrRenderFailed, name, err)
	}

	r.layouts[name] = tmpl
	return tmpl, nil
}
