package param

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"
)

type fakeSSM struct {
	values map[string]string
	input  *ssm.GetParameterInput
}

func (f *fakeSSM) GetParameter(_ context.Context, in *ssm.GetParameterInput, _ ...func(*ssm.Options)) (*ssm.GetParameterOutput, error) {
	f.input = in
	v, ok := f.values[aws.ToString(in.Name)]
	if !ok {
		return nil, errors.New("ParameterNotFound")
	}
	return &ssm.GetParameterOutput{Parameter: &types.Parameter{Value: aws.String(v)}}, nil
}

func TestFetch(t *testing.T) {
	client := &fakeSSM{values: map[string]string{"/relay/gemini": "secret"}}
	f := NewParameterStoreFetcher(client)

	v, err := f.Fetch(context.Background(), "/relay/gemini")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if v != "secret" {
		t.Fatalf("unexpected value %q", v)
	}
	if !aws.ToBool(client.input.WithDecryption) {
		t.Fatal("expected decryption to be requested")
	}

	if _, err := f.Fetch(context.Background(), "/relay/missing"); err == nil {
		t.Fatal("expected an error for a missing parameter")
	}
}
