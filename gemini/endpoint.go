package gemini

import (
	"net/url"
	"strings"
)

const (
	DefaultBaseURL    = "https://generativelanguage.googleapis.com"
	DefaultTextModel  = "gemini-2.0-flash"
	DefaultImageModel = "imagen-3.0-generate-002"

	MethodGenerateContent = "generateContent"
	MethodPredict         = "predict"
)

// ModelURL builds {base}/v1beta/models/{model}:{method}?key={apiKey}.
func ModelURL(base, model, method, apiKey string) string {
	base = strings.TrimRight(strings.TrimSpace(base), "/")
	if base == "" {
		base = DefaultBaseURL
	}
	base = strings.TrimSuffix(base, "/v1beta")
	q := url.Values{}
	q.Set("key", apiKey)
	return base + "/v1beta/models/" + url.PathEscape(model) + ":" + method + "?" + q.Encode()
}
