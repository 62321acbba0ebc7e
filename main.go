package main

import (
	"context"
	"net"
	"net/http"
	"os"
	"runtime"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	log "github.com/sirupsen/logrus"

	"github.com/zjx20/genai-relay/app"
	"github.com/zjx20/genai-relay/config"
	"github.com/zjx20/genai-relay/util/metrics"
	"github.com/zjx20/genai-relay/util/middleware"
)

func init() {
	log.SetLevel(config.GetLogLevel())
	log.SetOutput(os.Stdout)
	log.SetFormatter(&log.TextFormatter{
		DisableColors:   runtime.GOOS == "windows",
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	config.AddConfigChangeCallback(func() {
		log.SetLevel(config.GetLogLevel())
	})
}

func main() {
	config.Init()
	cfg := config.ReadConfig()

	if cfg.ProbeKeysOnStart {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if err := app.ProbeKeys(ctx, cfg); err != nil {
			log.Warnf("key probe failed: %s", err)
		}
		cancel()
	}

	m := metrics.New()
	fns, err := app.New(cfg, m)
	if err != nil {
		log.Fatalln(err)
	}

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recover)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		AllowedMethods: []string{"POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		ExposedHeaders: []string{"Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Mount("/metrics", m.Handler())
	fns.Mount(r)

	l, err := net.Listen("tcp", cfg.ListenAddr)
	if err != nil {
		log.Fatalln(err)
	}
	log.Infof("Server listening at %s", l.Addr())
	if err = http.Serve(l, r); err != nil {
		log.Fatalln(err)
	}
}
