package api

import (
	"net/http"

	"github.com/zjx20/genai-relay/app"
)

// Handler serves both functions, picked by the last path element.
func Handler(w http.ResponseWriter, r *http.Request) {
	app.Default().ServeHTTP(w, r)
}
