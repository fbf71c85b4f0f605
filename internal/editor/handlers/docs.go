package handlers

import (
	_ "embed"

	"github.com/gofiber/fiber/v3"
)

// ============================================================
// API Docs Handlers
// ============================================================

//go:embed openapi.yaml
var openapiSpec []byte

// APISpec отдаёт OpenAPI YAML.
func APISpec(c fiber.Ctx) error {
	c.Type("yaml")
	return c.Send(openapiSpec)
}

// APIDocs отдаёт страницу Swagger UI, для /docs/openapi.yaml.
func APIDocs(c fiber.Ctx) error {
	page := `<!doctype html>
<html>
<head>
  <meta charset="utf-8">
  <title>Target Editor API</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist/swagger-ui.css">
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://unpkg.com/swagger-ui-dist/swagger-ui-bundle.js"></script>
<script>
  window.onload = () => {
    window.ui = SwaggerUIBundle({ url: '/docs/openapi.yaml', dom_id: '#swagger-ui' });
  };
</script>
</body>
</html>`

	c.Type("html")
	return c.SendString(page)
}
