// Package views embeds the HTML templates and builds the template engine.
package views

import (
	"embed"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/template/html/v3"

	"testimonials/internal/models"
)

//go:embed *.html layouts/*.html partials/*.html
var FS embed.FS

// NewEngine returns a template engine reading from the embedded files.
func NewEngine() *html.Engine {
	engine := html.NewFileSystem(http.FS(FS), ".html")
	engine.AddFuncMap(Funcs())
	return engine
}

// Funcs are the helpers available to every template.
func Funcs() template.FuncMap {
	return template.FuncMap{
		"statusLabel": StatusLabel,
		"date": func(t time.Time) string {
			return t.Format("02 Jan 2006")
		},
		"lower": strings.ToLower,
	}
}

// StatusLabel is the admin-facing name of a status.
func StatusLabel(s models.Status) string {
	switch s {
	case models.StatusPending:
		return "To review"
	case models.StatusApproved:
		return "Published"
	case models.StatusRejected:
		return "Rejected"
	}
	return string(s)
}
