package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// payloadContextKey carries the marshalled request body to the log transport.
type payloadContextKey struct{}

// body fields that never reach the logs
var secretFields = []string{"key", "token", "api_key", "password"}

type logTransport struct {
	transport http.RoundTripper
}

func (t *logTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()

	fields := []zap.Field{
		zap.String("method", req.Method),
		zap.String("url", req.URL.Redacted()),
	}

	if payload, ok := ctx.Value(payloadContextKey{}).([]byte); ok && len(payload) > 0 {
		fields = append(fields, zap.ByteString("payload", redactPayload(payload)))
	}

	ctxzap.Debug(ctx, "HTTP outbound request", fields...)

	start := time.Now()
	resp, err := t.transport.RoundTrip(req)
	if err != nil {
		ctxzap.Debug(ctx, "HTTP outbound request failed",
			zap.String("url", req.URL.Redacted()),
			zap.Duration("duration", time.Since(start)),
			zap.Error(err),
		)
		return nil, err
	}

	ctxzap.Debug(ctx, "HTTP outbound response",
		zap.String("url", req.URL.Redacted()),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)

	return resp, nil
}

// redactPayload masks secret fields of a JSON object body. Non-object
// bodies are returned as is.
func redactPayload(payload []byte) []byte {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(payload, &obj); err != nil {
		return payload
	}

	changed := false
	for _, f := range secretFields {
		if _, ok := obj[f]; ok {
			obj[f] = json.RawMessage(`"***"`)
			changed = true
		}
	}
	if !changed {
		return payload
	}

	out, err := json.Marshal(obj)
	if err != nil {
		return payload
	}
	return out
}

// WithRequestLogging logs method, URL, redacted payload and response status
// of every outbound request at debug level.
func WithRequestLogging() HttpOpts {
	return WithTransport(func(rt http.RoundTripper) http.RoundTripper {
		return &logTransport{
			transport: rt,
		}
	})
}
