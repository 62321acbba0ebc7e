package relay

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/aws/aws-lambda-go/events"
)

// HandleAPIGateway adapts the handler to API Gateway proxy events, the event
// shape Netlify functions receive as well. The returned error is always nil;
// failures are encoded in the response.
func (h *Handler) HandleAPIGateway(ctx context.Context, ev events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	var body io.Reader = strings.NewReader(ev.Body)
	if ev.IsBase64Encoded {
		body = base64.NewDecoder(base64.StdEncoding, body)
	}
	resp, rerr := h.Do(ctx, ev.HTTPMethod, body)
	if rerr == nil {
		return proxyResponse(http.StatusOK, resp), nil
	}
	data, err := json.Marshal(rerr)
	if err != nil {
		h.logger.WithField("fn", h.ep.Name).Errorf("failed to encode error response: %s", err)
		data = []byte(`{"error":"` + http.StatusText(http.StatusInternalServerError) + `"}`)
		return proxyResponse(http.StatusInternalServerError, data), nil
	}
	return proxyResponse(rerr.Status, data), nil
}

func proxyResponse(status int, body []byte) events.APIGatewayProxyResponse {
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       string(body),
	}
}
