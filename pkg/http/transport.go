package http

import (
	"net/http"
)

type headerTransport struct {
	headers   map[string]string
	transport http.RoundTripper
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	reqCopy := req.Clone(req.Context())

	for k, v := range t.headers {
		if reqCopy.Header.Get(k) == "" {
			reqCopy.Header.Set(k, v)
		}
	}

	return t.transport.RoundTrip(reqCopy)
}

// WithAuthToken sends "Authorization: Bearer <token>" on every request. An
// empty token is a no-op.
func WithAuthToken(token string) HttpOpts {
	if token == "" {
		return func(*httpConfig) {}
	}
	return WithStaticHeader("Authorization", "Bearer "+token)
}

// WithUserAgent sets the User-Agent header unless a request sets its own.
func WithUserAgent(ua string) HttpOpts {
	return WithStaticHeader("User-Agent", ua)
}

// WithStaticHeader adds a header to every request that does not set it.
func WithStaticHeader(key, value string) HttpOpts {
	return WithTransport(func(rt http.RoundTripper) http.RoundTripper {
		return &headerTransport{
			headers:   map[string]string{key: value},
			transport: rt,
		}
	})
}
