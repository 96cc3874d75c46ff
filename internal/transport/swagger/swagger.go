package swagger

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"
)

func Handler() http.Handler {
	// Serve the hand-maintained OpenAPI document published at root
	return httpSwagger.Handler(
		httpSwagger.URL("/openapi.yml"),
	)
}
