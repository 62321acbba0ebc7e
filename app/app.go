package app

import (
	"context"
	"fmt"
	"net/http"
	"path"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/zjx20/genai-relay/config"
	"github.com/zjx20/genai-relay/gemini"
	"github.com/zjx20/genai-relay/relay"
	"github.com/zjx20/genai-relay/util/httpclient"
	"github.com/zjx20/genai-relay/util/param"
)

// Prefixes the functions are reachable under, besides the bare name.
var routePrefixes = []string{"", "/api", "/.netlify/functions"}

type Functions struct {
	Text  *relay.Handler
	Image *relay.Handler
}

func New(cfg config.Config, rec relay.Recorder) (*Functions, error) {
	client, err := httpclient.New(httpclient.Options{
		PingInterval: cfg.PingInterval,
		PreferIPv4:   cfg.PreferIPv4,
	})
	if err != nil {
		return nil, err
	}
	common := relay.Options{
		BaseURL:  cfg.BaseURL,
		Client:   client,
		Verbose:  cfg.Verbose,
		Logger:   log.StandardLogger(),
		Recorder: rec,
	}
	textOpts, imageOpts := common, common
	textOpts.APIKey, textOpts.Model = cfg.GeminiAPIKey, cfg.TextModel
	imageOpts.APIKey, imageOpts.Model = cfg.ImagenAPIKey, cfg.ImageModel
	return &Functions{
		Text:  relay.NewText(textOpts),
		Image: relay.NewImage(imageOpts),
	}, nil
}

// Lookup finds the function whose name is the last element of p.
func (f *Functions) Lookup(p string) (*relay.Handler, bool) {
	switch path.Base(strings.TrimRight(p, "/")) {
	case relay.TextFunction:
		return f.Text, true
	case relay.ImageFunction:
		return f.Image, true
	}
	return nil, false
}

func (f *Functions) Mount(r chi.Router) {
	for _, h := range []*relay.Handler{f.Text, f.Image} {
		for _, prefix := range routePrefixes {
			r.Handle(prefix+"/"+h.Name(), h)
		}
	}
}

// ServeHTTP dispatches on the request path, for runtimes that hand every
// request to a single entry function.
func (f *Functions) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h, ok := f.Lookup(r.URL.Path)
	if !ok {
		http.NotFound(w, r)
		return
	}
	h.ServeHTTP(w, r)
}

var (
	defaultOnce sync.Once
	defaultFns  *Functions
)

// Default builds the functions from the process config on first use. It is
// meant for serverless entrypoints, where nothing else owns startup.
func Default() *Functions {
	defaultOnce.Do(func() {
		config.Init()
		log.SetLevel(config.GetLogLevel())
		fns, err := New(config.ReadConfig(), nil)
		if err != nil {
			log.Fatalf("failed to set up functions: %s", err)
		}
		defaultFns = fns
	})
	return defaultFns
}

// ResolveSecrets replaces the api keys in the process config with the values
// of the configured parameters, leaving a key alone when it has no parameter.
func ResolveSecrets(ctx context.Context, f param.Fetcher) error {
	cfg := config.ReadConfig()
	geminiKey, imagenKey := cfg.GeminiAPIKey, cfg.ImagenAPIKey
	if cfg.GeminiAPIKeyParam != "" {
		v, err := f.Fetch(ctx, cfg.GeminiAPIKeyParam)
		if err != nil {
			return err
		}
		geminiKey = v
	}
	if cfg.ImagenAPIKeyParam != "" {
		v, err := f.Fetch(ctx, cfg.ImagenAPIKeyParam)
		if err != nil {
			return err
		}
		imagenKey = v
	}
	config.Update(func(c *config.Config) {
		c.GeminiAPIKey = geminiKey
		c.ImagenAPIKey = imagenKey
	})
	return nil
}

// ProbeKeys checks both configured keys against the models API concurrently.
// Functions without a key are skipped.
func ProbeKeys(ctx context.Context, cfg config.Config) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, p := range []gemini.ProbeConfig{
		{APIKey: cfg.GeminiAPIKey, ModelName: cfg.TextModel},
		{APIKey: cfg.ImagenAPIKey, ModelName: cfg.ImageModel},
	} {
		p := p
		if p.APIKey == "" {
			continue
		}
		g.Go(func() error {
			info, err := gemini.ProbeKey(ctx, p)
			if err != nil {
				return fmt.Errorf("probe %s: %w", p.ModelName, err)
			}
			log.Infof("key for %s ok, model %s (%s)", p.ModelName, info.Name, info.DisplayName)
			return nil
		})
	}
	return g.Wait()
}
