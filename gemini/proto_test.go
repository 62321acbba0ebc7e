package gemini

import (
	"encoding/json"
	"testing"
)

func TestRequestShapes(t *testing.T) {
	text, err := json.Marshal(NewTextRequest("hello"))
	if err != nil {
		t.Fatal(err)
	}
	if want := `{"contents":[{"role":"user","parts":[{"text":"hello"}]}]}`; string(text) != want {
		t.Fatalf("text request: got %s want %s", text, want)
	}
	image, err := json.Marshal(NewImageRequest("hello"))
	if err != nil {
		t.Fatal(err)
	}
	if want := `{"instances":[{"prompt":"hello"}],"parameters":{"sampleCount":1}}`; string(image) != want {
		t.Fatalf("image request: got %s want %s", image, want)
	}
}

func TestErrorResponse(t *testing.T) {
	resp := &ErrorResponse{}
	raw := `{"error":{"code":400,"message":"API key not valid. Please pass a valid API key.","status":"INVALID_ARGUMENT"}}`
	if err := json.Unmarshal([]byte(raw), resp); err != nil {
		t.Fatal(err)
	}
	if resp.Error == nil || resp.Error.Code != 400 || resp.Error.Status != "INVALID_ARGUMENT" {
		t.Fatalf("unexpected error %+v", resp.Error)
	}
}
