package param

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	log "github.com/sirupsen/logrus"
)

type Fetcher interface {
	Fetch(ctx context.Context, name string) (string, error)
}

// SSMAPI is the part of the SSM client the fetcher uses.
type SSMAPI interface {
	GetParameter(ctx context.Context, in *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
}

type ParameterStoreFetcher struct {
	client SSMAPI
}

func NewParameterStoreFetcher(client SSMAPI) *ParameterStoreFetcher {
	return &ParameterStoreFetcher{client: client}
}

// NewDefaultParameterStoreFetcher uses the default AWS credential chain.
func NewDefaultParameterStoreFetcher(ctx context.Context) (*ParameterStoreFetcher, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}
	return NewParameterStoreFetcher(ssm.NewFromConfig(cfg)), nil
}

func (f *ParameterStoreFetcher) Fetch(ctx context.Context, name string) (string, error) {
	log.WithField("parameter", name).Debug("fetching parameter")
	out, err := f.client.GetParameter(ctx, &ssm.GetParameterInput{
		Name:           aws.String(name),
		WithDecryption: aws.Bool(true),
	})
	if err != nil {
		return "", fmt.Errorf("failed to get parameter %s: %w", name, err)
	}
	if out.Parameter == nil {
		return "", fmt.Errorf("parameter %s has no value", name)
	}
	return aws.ToString(out.Parameter.Value), nil
}
