// Package render turns search views into the markup of the catalog's
// quick-search dropdown.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"log"
	"sync"

	"herbalsearch/internal/search"
)

// PlantsPath is where "view all" and result rows link to
const PlantsPath = "/plants"

var resultsTemplate = template.Must(template.New("results").Parse(`
{{- if eq .Kind "results" -}}
{{- range .Preview }}
<div class="p-2 border-bottom hover-effect" data-category="{{ .Category }}" data-href="{{ $.PlantsPath }}">
    <h6>{{ .Name }}</h6>
    <small class="text-muted">{{ .ScientificName }}</small>
</div>
{{- end }}
{{- if .HasMore }}
<div class="p-2 text-center">
    <a href="{{ .PlantsPath }}" class="text-success">{{ .ViewAllLabel }}</a>
</div>
{{- end }}
{{- else if eq .Kind "no-results" }}
<div class="p-3 text-center">
    <p class="text-muted">{{ .Message }}</p>
</div>
{{- else if eq .Kind "error" }}
<div class="p-3 text-center">
    <p class="text-danger">{{ .Message }}</p>
</div>
{{- end -}}
`))

type templateData struct {
	search.View
	Kind       string
	PlantsPath string
}

// WriteHTML writes the markup for v. Cleared views produce no markup.
func WriteHTML(w io.Writer, v search.View) error {
	data := templateData{View: v, Kind: v.Kind.String(), PlantsPath: PlantsPath}
	if err := resultsTemplate.Execute(w, data); err != nil {
		return fmt.Errorf("failed to render results: %w", err)
	}
	return nil
}

// HTMLSurface is a results container whose markup is replaced on every render
type HTMLSurface struct {
	mu    sync.RWMutex
	inner string
	// OnChange, if set, is called with the new markup after each render
	OnChange func(markup string)
}

// NewHTMLSurface creates an empty container
func NewHTMLSurface() *HTMLSurface {
	return &HTMLSurface{}
}

// Render replaces the container's markup with v. Stale views are ignored.
func (s *HTMLSurface) Render(v search.View) {
	if v.Kind == search.KindStale {
		return
	}

	var buf bytes.Buffer
	if err := WriteHTML(&buf, v); err != nil {
		log.Printf("HTML surface: %v", err)
		return
	}

	s.mu.Lock()
	s.inner = buf.String()
	onChange := s.OnChange
	s.mu.Unlock()

	if onChange != nil {
		onChange(buf.String())
	}
}

// InnerHTML returns the current markup
func (s *HTMLSurface) InnerHTML() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.inner
}
