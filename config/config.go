package config

import (
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
)

const (
	GeminiKeyEnv = "GOOGLE_GEMINI_API_KEY"
	ImagenKeyEnv = "GOOGLE_IMAGEN_API_KEY"
)

type Config struct {
	GeminiAPIKey string
	ImagenAPIKey string

	// SSM parameter names, resolved by the lambda entrypoint when set.
	GeminiAPIKeyParam string
	ImagenAPIKeyParam string

	BaseURL    string
	TextModel  string
	ImageModel string

	Verbose  bool
	LogLevel string
	Debug    bool

	ListenAddr         string
	CORSAllowedOrigins []string
	PingInterval       time.Duration
	PreferIPv4         bool
	ProbeKeysOnStart   bool
}

var (
	mu        sync.RWMutex
	current   = Load()
	callbacks []func()
)

// Init loads .env (if any) and re-reads the environment.
func Init() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warnf("failed to load .env: %s", err)
	}
	cfg := Load()
	warnMissingKey(GeminiKeyEnv, cfg.GeminiAPIKey, os.Environ())
	warnMissingKey(ImagenKeyEnv, cfg.ImagenAPIKey, os.Environ())
	set(cfg)
}

func Load() Config {
	return Config{
		GeminiAPIKey:       strings.TrimSpace(os.Getenv(GeminiKeyEnv)),
		ImagenAPIKey:       strings.TrimSpace(os.Getenv(ImagenKeyEnv)),
		GeminiAPIKeyParam:  getEnv(GeminiKeyEnv+"_PARAM", ""),
		ImagenAPIKeyParam:  getEnv(ImagenKeyEnv+"_PARAM", ""),
		BaseURL:            getEnv("GOOGLE_API_BASE_URL", "https://generativelanguage.googleapis.com"),
		TextModel:          getEnv("GEMINI_TEXT_MODEL", "gemini-2.0-flash"),
		ImageModel:         getEnv("IMAGEN_MODEL", "imagen-3.0-generate-002"),
		Verbose:            getEnvBool("VERBOSE", false),
		LogLevel:           strings.ToLower(getEnv("LOG_LEVEL", "info")),
		Debug:              getEnvBool("DEBUG", false),
		ListenAddr:         getEnv("LISTEN_ADDR", ":7458"),
		CORSAllowedOrigins: splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		PingInterval:       time.Duration(getEnvInt("HTTP_PING_INTERVAL_SECONDS", 15)) * time.Second,
		PreferIPv4:         getEnvBool("PREFER_IPV4", false),
		ProbeKeysOnStart:   getEnvBool("PROBE_KEYS_ON_START", false),
	}
}

func ReadConfig() Config {
	mu.RLock()
	defer mu.RUnlock()
	cfg := current
	cfg.CORSAllowedOrigins = append([]string(nil), current.CORSAllowedOrigins...)
	return cfg
}

// Update applies fn to a copy of the current config, stores it and fires the
// change callbacks.
func Update(fn func(*Config)) {
	cfg := ReadConfig()
	fn(&cfg)
	set(cfg)
}

func AddConfigChangeCallback(fn func()) {
	mu.Lock()
	defer mu.Unlock()
	callbacks = append(callbacks, fn)
}

func GetLogLevel() log.Level {
	cfg := ReadConfig()
	if cfg.Debug {
		return log.DebugLevel
	}
	lvl, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

func GetIsDebug() bool {
	return ReadConfig().Debug
}

func set(cfg Config) {
	mu.Lock()
	current = cfg
	cbs := append([]func(){}, callbacks...)
	mu.Unlock()
	for _, cb := range cbs {
		cb()
	}
}

// variantOf returns an environment variable whose name equals want in a
// case-insensitive comparison but not exactly.
func variantOf(want string, environ []string) (string, bool) {
	return lo.Find(lo.Map(environ, func(kv string, _ int) string {
		name, _, _ := strings.Cut(kv, "=")
		return name
	}), func(name string) bool {
		return name != want && strings.EqualFold(name, want)
	})
}

func warnMissingKey(name, value string, environ []string) {
	if value != "" {
		return
	}
	log.Warnf("%s is not set, the matching function will answer with a configuration error", name)
	if variant, ok := variantOf(name, environ); ok {
		log.Warnf("found variable %q, is %s misspelled?", variant, name)
	}
}

func getEnv(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvBool(key string, fallback bool) bool {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func splitCSV(v string) []string {
	out := lo.Compact(lo.Map(strings.Split(v, ","), func(p string, _ int) string {
		return strings.TrimSpace(p)
	}))
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}
