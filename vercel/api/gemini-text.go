package api

import (
	"net/http"

	"github.com/zjx20/genai-relay/app"
)

func GeminiText(w http.ResponseWriter, r *http.Request) {
	app.Default().Text.ServeHTTP(w, r)
}
