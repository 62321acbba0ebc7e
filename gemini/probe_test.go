package gemini

import (
	"context"
	"testing"
)

func TestProbeKeyWithoutKey(t *testing.T) {
	if _, err := ProbeKey(context.Background(), ProbeConfig{ModelName: DefaultTextModel}); err == nil {
		t.Fatal("expected an error for an empty key")
	}
}
