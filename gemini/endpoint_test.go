package gemini

import "testing"

func TestModelURL(t *testing.T) {
	cases := []struct {
		base, model, method, key string
		want                     string
	}{
		{"", DefaultTextModel, MethodGenerateContent, "abc",
			"https://generativelanguage.googleapis.com/v1beta/models/gemini-2.0-flash:generateContent?key=abc"},
		{"https://example.com/", DefaultImageModel, MethodPredict, "abc",
			"https://example.com/v1beta/models/imagen-3.0-generate-002:predict?key=abc"},
		{" https://example.com/v1beta ", "m", MethodPredict, "a b",
			"https://example.com/v1beta/models/m:predict?key=a+b"},
	}
	for _, c := range cases {
		if got := ModelURL(c.base, c.model, c.method, c.key); got != c.want {
			t.Fatalf("ModelURL(%q, %q, %q): got %s want %s", c.base, c.model, c.method, got, c.want)
		}
	}
}
