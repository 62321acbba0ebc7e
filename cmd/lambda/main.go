package main

import (
	"context"
	"net/http"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	log "github.com/sirupsen/logrus"

	"github.com/zjx20/genai-relay/app"
	"github.com/zjx20/genai-relay/config"
	"github.com/zjx20/genai-relay/util/param"
)

func main() {
	log.SetFormatter(&log.JSONFormatter{})
	log.SetOutput(os.Stderr)
	config.AddConfigChangeCallback(func() {
		log.SetLevel(config.GetLogLevel())
	})
	config.Init()

	ctx := context.Background()
	if cfg := config.ReadConfig(); cfg.GeminiAPIKeyParam != "" || cfg.ImagenAPIKeyParam != "" {
		fetcher, err := param.NewDefaultParameterStoreFetcher(ctx)
		if err != nil {
			log.Fatalln(err)
		}
		if err := app.ResolveSecrets(ctx, fetcher); err != nil {
			log.Fatalln(err)
		}
	}

	fns, err := app.New(config.ReadConfig(), nil)
	if err != nil {
		log.Fatalln(err)
	}
	fallback := os.Getenv("RELAY_FUNCTION")

	lambda.StartWithOptions(func(ctx context.Context, ev events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		h, ok := fns.Lookup(ev.Path)
		if !ok {
			h, ok = fns.Lookup(fallback)
		}
		if !ok {
			log.Warnf("no function for path %q", ev.Path)
			return events.APIGatewayProxyResponse{
				StatusCode: http.StatusNotFound,
				Headers:    map[string]string{"Content-Type": "application/json"},
				Body:       `{"error":"Not Found"}`,
			}, nil
		}
		return h.HandleAPIGateway(ctx, ev)
	}, lambda.WithContext(ctx))
}

