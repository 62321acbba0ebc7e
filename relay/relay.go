package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/zjx20/genai-relay/gemini"
)

const promptLogPrefix = 50

// Recorder receives one observation per finished invocation.
type Recorder interface {
	ObserveRequest(fn string, status int, dur time.Duration)
}

type Options struct {
	APIKey  string
	BaseURL string // empty for gemini.DefaultBaseURL
	Model   string // empty for the endpoint's default model
	Client  *http.Client
	// Verbose adds diagnostic lines: key length, prompt prefix and the full
	// upstream error body. The key itself is never logged.
	Verbose  bool
	Logger   *log.Logger
	Recorder Recorder
}

type Messages struct {
	Configuration string
	Upstream      string
	Internal      string
}

// Endpoint describes one relayed upstream model method.
type Endpoint struct {
	Name         string
	Method       string
	DefaultModel string
	Payload      func(prompt string) any
	Messages     Messages
}

type Handler struct {
	ep       Endpoint
	apiKey   string
	baseURL  string
	model    string
	client   *http.Client
	verbose  bool
	logger   *log.Logger
	recorder Recorder
}

func New(ep Endpoint, opts Options) *Handler {
	h := &Handler{
		ep:       ep,
		apiKey:   strings.TrimSpace(opts.APIKey),
		baseURL:  opts.BaseURL,
		model:    opts.Model,
		client:   opts.Client,
		verbose:  opts.Verbose,
		logger:   opts.Logger,
		recorder: opts.Recorder,
	}
	if h.model == "" {
		h.model = ep.DefaultModel
	}
	if h.client == nil {
		h.client = http.DefaultClient
	}
	if h.logger == nil {
		h.logger = log.StandardLogger()
	}
	return h
}

func (h *Handler) Name() string {
	return h.ep.Name
}

// promptOf extracts the prompt from a request body. The body must be exactly
// one JSON value; anything but an object with a string "prompt" yields "".
func promptOf(data []byte) (string, error) {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return "", err
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return "", nil
	}
	prompt, _ := obj["prompt"].(string)
	return prompt, nil
}

// Do runs one invocation: method check, body parse, prompt check, key check,
// a single upstream call and the relay of its answer. On success it returns
// the upstream body untouched; every failure comes back as an *Error.
func (h *Handler) Do(ctx context.Context, method string, body io.Reader) (resp json.RawMessage, rerr *Error) {
	entry := h.logger.WithFields(log.Fields{
		"fn":         h.ep.Name,
		"invocation": uuid.NewString(),
	})
	entry.Info("invocation started")

	if h.recorder != nil {
		start := time.Now()
		defer func() {
			status := http.StatusOK
			if rerr != nil {
				status = rerr.Status
			}
			h.recorder.ObserveRequest(h.ep.Name, status, time.Since(start))
		}()
	}
	defer func() {
		if obj := recover(); obj != nil {
			err := fmt.Errorf("recovered from panic, err: %+v", obj)
			entry.Errorf("%s", err)
			resp, rerr = nil, errInternal(h.ep.Messages.Internal, err)
		}
	}()

	if method != http.MethodPost {
		entry.Warnf("method not allowed: %s", method)
		return nil, errMethodNotAllowed()
	}

	raw, err := io.ReadAll(body)
	if err != nil {
		entry.Errorf("failed to read request body: %s", err)
		return nil, errInternal(h.ep.Messages.Internal, err)
	}
	prompt, err := promptOf(raw)
	if err != nil {
		entry.Errorf("failed to decode request body: %s", err)
		return nil, errInternal(h.ep.Messages.Internal, err)
	}
	if prompt == "" {
		entry.Warn("prompt not found in request body")
		return nil, errPromptRequired()
	}

	if h.apiKey == "" {
		entry.Error("api key is not configured")
		return nil, errConfiguration(h.ep.Messages.Configuration)
	}
	if h.verbose {
		entry.Infof("api key found, length: %d", len(h.apiKey))
		entry.Infof("calling %s model %s, prompt (start): %s...", h.ep.Method, h.model, truncate(prompt, promptLogPrefix))
	} else {
		entry.Infof("calling %s model %s", h.ep.Method, h.model)
	}

	status, data, err := h.call(ctx, prompt)
	if err != nil {
		entry.Errorf("upstream call failed: %s", err)
		return nil, errInternal(h.ep.Messages.Internal, err)
	}

	if status < 200 || status > 299 {
		if h.verbose {
			entry.Errorf("upstream error (%d): %s", status, data)
		} else {
			entry.Errorf("upstream error (%d)", status)
		}
		return nil, errUpstream(status, h.ep.Messages.Upstream, upstreamMessage(status, data), data)
	}

	entry.Info("upstream answered successfully")
	return data, nil
}

// call posts the payload upstream and returns the status and the body, which
// is guaranteed to be valid JSON.
func (h *Handler) call(ctx context.Context, prompt string) (int, []byte, error) {
	payload, err := encodePayload(h.ep.Payload(prompt))
	if err != nil {
		return 0, nil, fmt.Errorf("failed to encode upstream payload: %w", err)
	}
	target := gemini.ModelURL(h.baseURL, h.model, h.ep.Method, h.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewReader(payload))
	if err != nil {
		return 0, nil, redactKey(err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.client.Do(req)
	if err != nil {
		return 0, nil, redactKey(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to read upstream response: %w", err)
	}
	if !json.Valid(data) {
		return 0, nil, fmt.Errorf("upstream answered %d with a body that is not valid JSON", resp.StatusCode)
	}
	return resp.StatusCode, data, nil
}

// encodePayload marshals v without HTML escaping and without the trailing
// newline json.Encoder appends.
func encodePayload(v any) ([]byte, error) {
	buf := &bytes.Buffer{}
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

func upstreamMessage(status int, data []byte) string {
	resp := &gemini.ErrorResponse{}
	if err := json.Unmarshal(data, resp); err == nil && resp.Error != nil && resp.Error.Message != "" {
		return resp.Error.Message
	}
	return fmt.Sprintf("Error de API %d", status)
}

// redactKey strips the query string from URLs carried by transport errors so
// the api key does not reach logs or callers.
func redactKey(err error) error {
	var uerr *url.Error
	if !errors.As(err, &uerr) {
		return err
	}
	u := uerr.URL
	if i := strings.IndexByte(u, '?'); i >= 0 {
		u = u[:i]
	}
	return fmt.Errorf("%s %q: %w", uerr.Op, u, uerr.Err)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
