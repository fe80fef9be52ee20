package swaggerkit

import (
	"net/http"

	phttp "datamonitor/internal/platform/net/http"

	httpSwagger "github.com/swaggo/http-swagger"
)

const (
	// Base is where the docs UI lives
	Base    = "/api/docs"
	docPath = Base + "/doc.json"
)

// Mount serves the embedded OpenAPI document and the Swagger UI reading it.
// Nothing is mounted when enabled is false
func Mount(r phttp.Router, enabled bool) {
	if !enabled {
		return
	}
	ui := httpSwagger.Handler(httpSwagger.URL(docPath))
	r.Get(Base, http.RedirectHandler(Base+"/", http.StatusPermanentRedirect).ServeHTTP)
	r.Get(docPath, serveDocJSON())
	r.Handle(Base+"/*", ui)
}
