package handlers

import (
	"fmt"
	"log"
	"os"

	"github.com/gofiber/fiber/v3"
)

// ============================================================
// API Docs
// ============================================================

const swaggerPage = `<!doctype html>
<html>
<head>
  <meta charset="utf-8">
  <title>%s</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist/swagger-ui.css">
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://unpkg.com/swagger-ui-dist/swagger-ui-bundle.js"></script>
<script>
  window.onload = () => {
    window.ui = SwaggerUIBundle({
      url: '%s',
      dom_id: '#swagger-ui',
      presets: [SwaggerUIBundle.presets.apis],
    });
  };
</script>
</body>
</html>`

// Docs отдает OpenAPI-описание gateway и страницу Swagger UI к нему.
type Docs struct {
	specPath string
	specURL  string
	title    string
}

func NewDocs(specPath, specURL, title string) *Docs {
	return &Docs{specPath: specPath, specURL: specURL, title: title}
}

// Spec читает YAML с диска на каждый запрос.
func (d *Docs) Spec(c fiber.Ctx) error {
	data, err := os.ReadFile(d.specPath)
	if err != nil {
		log.Printf("[DOCS] Read spec error: %v", err)
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "api description not found"})
	}
	c.Type("yaml")
	return c.Send(data)
}

func (d *Docs) UI(c fiber.Ctx) error {
	c.Type("html")
	return c.SendString(fmt.Sprintf(swaggerPage, d.title, d.specURL))
}
