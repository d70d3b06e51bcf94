package handlers

import (
	"html/template"
	"io"
	"path/filepath"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/mgarrido/tienda/internal/session"
)

// Renderer plugs html/template into echo. All templates are parsed
// once at startup from a single directory.
type Renderer struct {
	templates *template.Template
}

func NewRenderer(dir string) (*Renderer, error) {
	t, err := template.New("").Funcs(template.FuncMap{
		"money": func(d decimal.Decimal) string { return d.StringFixed(2) },
		"fecha": func(ts time.Time) string { return ts.Format("02/01/2006 15:04") },
	}).ParseGlob(filepath.Join(dir, "*.html"))
	if err != nil {
		return nil, err
	}
	return &Renderer{templates: t}, nil
}

func (r *Renderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}

// viewData decorates page data with what every view needs: the
// current identity (or nil) and the cart for the header badge.
func viewData(c echo.Context, data map[string]interface{}) map[string]interface{} {
	if data == nil {
		data = map[string]interface{}{}
	}
	if u, ok := session.CurrentUser(c); ok {
		data["User"] = u
	} else {
		data["User"] = nil
	}
	data["Cart"] = session.Cart(c)
	return data
}
