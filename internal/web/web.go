// Package web holds the console's HTML templates and the gin renderer that
// wraps every panel in the shared layout.
package web

import (
	"embed"
	"fmt"
	"html/template"

	"github.com/gin-gonic/gin/render"
	"github.com/selimb1/conta100/internal/dto"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

// Panel template names, one per tab.
const (
	PageClientes      = "clientes"
	PageDocumentos    = "documentos"
	PagePreview       = "previsualizacion"
	PageResultados    = "resultados"
	PageConfiguracion = "configuracion"
)

// Tab labels and paths, in display order. The first one is the default.
var tabs = []dto.Tab{
	{Nombre: "Clientes", Href: "/clientes"},
	{Nombre: "Documentos", Href: "/documentos"},
	{Nombre: "Previsualización", Href: "/previsualizacion"},
	{Nombre: "Resultados", Href: "/resultados"},
	{Nombre: "Configuración", Href: "/configuracion"},
}

// DefaultTab is where "/" redirects.
func DefaultTab() string { return tabs[0].Href }

// Tabs returns the navigation bar with active marked.
func Tabs(active string) []dto.Tab {
	out := make([]dto.Tab, len(tabs))
	copy(out, tabs)
	for i := range out {
		out[i].Activa = out[i].Href == active
	}
	return out
}

// Renderer implements gin's render.HTMLRender with one template set per panel.
type Renderer struct {
	pages map[string]*template.Template
}

// NewRenderer parses the layout together with each panel template.
func NewRenderer() (*Renderer, error) {
	r := &Renderer{pages: make(map[string]*template.Template)}
	for _, page := range []string{PageClientes, PageDocumentos, PagePreview, PageResultados, PageConfiguracion} {
		t, err := template.New(page).ParseFS(templatesFS, "templates/layout.tmpl", "templates/"+page+".tmpl")
		if err != nil {
			return nil, fmt.Errorf("web: parse %s: %w", page, err)
		}
		r.pages[page] = t
	}
	return r, nil
}

// Instance is called by gin's c.HTML.
func (r *Renderer) Instance(name string, data any) render.Render {
	return render.HTML{Template: r.pages[name], Name: "layout", Data: data}
}
