package api

import (
	"net/http"

	"github.com/zjx20/genai-relay/app"
)

func ImagenGenerate(w http.ResponseWriter, r *http.Request) {
	app.Default().Image.ServeHTTP(w, r)
}
