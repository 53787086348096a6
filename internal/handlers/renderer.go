package handlers

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/labstack/echo/v4"
	"github.com/umalmyha/ledger/internal/presenter"
	"github.com/umalmyha/ledger/internal/view"
)

//go:embed templates/*.html
var templatesFS embed.FS

// TemplateRenderer implements echo.Renderer over embedded dashboard templates
type TemplateRenderer struct {
	templates *template.Template
}

func NewTemplateRenderer() (*TemplateRenderer, error) {
	funcs := template.FuncMap{
		"amount":      presenter.FormatAmount,
		"statusClass": presenter.StatusClass,
		"shortID":     presenter.ShortID,
		"ariaChecked": ariaChecked,
		"prev":        func(page int) int { return page - 1 },
		"next":        func(page int) int { return page + 1 },
	}

	t, err := template.New("ledger").Funcs(funcs).ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse dashboard templates - %w", err)
	}
	return &TemplateRenderer{templates: t}, nil
}

func (r *TemplateRenderer) Render(w io.Writer, name string, data any, _ echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}

func ariaChecked(s view.CheckState) string {
	switch s {
	case view.Checked:
		return "true"
	case view.Indeterminate:
		return "mixed"
	default:
		return "false"
	}
}
