package httpapi

import (
	"bytes"
	"embed"
	"html/template"

	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/weather-dashboard/internal/dashboard"
)

//go:embed templates/index.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

type pageData struct {
	View  dashboard.View
	Panel dashboard.Panel
}

func renderPage(c *fiber.Ctx, v dashboard.View) error {
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, pageData{View: v, Panel: v.Panel()}); err != nil {
		return err
	}
	c.Type("html", "utf-8")
	return c.Send(buf.Bytes())
}
