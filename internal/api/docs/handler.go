package docs

import (
	_ "embed"
	"net/http"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

const yamlPath = "/docs/swagger.yaml"

//go:embed swagger.yaml
var swaggerYAML []byte

// RegisterRoutes mounts Swagger UI under /docs. The OpenAPI document is
// compiled into the binary, so the API runs from any working directory.
func RegisterRoutes(r chi.Router) {
	r.Get("/docs", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/docs/index.html", http.StatusFound)
	})
	r.Get(yamlPath, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write(swaggerYAML)
	})
	r.Get("/docs/*", httpSwagger.Handler(
		httpSwagger.URL(yamlPath),
		httpSwagger.DocExpansion("list"),
	))
}
