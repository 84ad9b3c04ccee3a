package server

import (
	"bytes"
	"embed"
	"html/template"

	"github.com/hyperjump/finsight/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

// pageData is the view model of the index page.
type pageData struct {
	Ticker   string
	Error    string
	Analysis *models.Analysis
	Report   template.HTML
}

// renderMarkdown converts analysis markdown to HTML. Raw HTML in the source is not passed through.
func (s *Server) renderMarkdown(src string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := s.markdown.Convert([]byte(src), &buf); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}
