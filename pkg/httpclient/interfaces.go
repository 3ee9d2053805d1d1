package httpclient

import "context"

// Response is a minimal HTTP response contract.
type Response interface {
	Body() []byte
	StatusCode() int
}

// Client abstracts HTTP calls so callers can inject mocks or different transports.
type Client interface {
	Get(ctx context.Context, url string, headers map[string]string) (Response, error)
	// Execute performs a request with an arbitrary verb and optional form
	// payload. An empty form sends no body.
	Execute(ctx context.Context, method, url string, form map[string]string, headers map[string]string) (Response, error)
}
