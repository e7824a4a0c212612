// Package web holds the embedded presentation templates and the shared
// error pages. Markup is deliberately minimal: the handlers own the data
// contract, the templates are a thin collaborator.
package web

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
)

//go:embed templates/*.html
var files embed.FS

// Templates parses the embedded template set
func Templates() *template.Template {
	return template.Must(template.ParseFS(files, "templates/*.html"))
}

// Load installs the embedded templates on a gin engine
func Load(r *gin.Engine) {
	r.SetHTMLTemplate(Templates())
}

// NotFound renders the shared 404 page
func NotFound(c *gin.Context) {
	c.HTML(http.StatusNotFound, "404.html", gin.H{"Path": c.Request.URL.Path})
}

// ServerError renders the shared 500 page
func ServerError(c *gin.Context) {
	c.HTML(http.StatusInternalServerError, "500.html", gin.H{})
}
