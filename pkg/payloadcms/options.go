package payloadcms

import (
	"net/http"
	"strconv"

	"go.uber.org/zap"
)

// ClientOption настраивает Client в New.
type ClientOption func(*Client)

// WithBaseURL: адрес сервера, например http://localhost:3000. Обязателен.
func WithBaseURL(u string) ClientOption { return func(c *Client) { c.baseURL = u } }

// WithAPIKey: ключ пользователя auth-коллекции users (useAPIKey).
func WithAPIKey(key string) ClientOption { return func(c *Client) { c.apiKey = key } }

func WithClient(h *http.Client) ClientOption { return func(c *Client) { c.http = h } }

func WithLogger(l *zap.Logger) ClientOption { return func(c *Client) { c.log = l } }

// RequestOption правит запрос перед отправкой.
type RequestOption func(*http.Request)

// WithDepth: глубина раскрытия связей в ответе.
func WithDepth(depth int) RequestOption {
	return WithQueryParam("depth", strconv.Itoa(depth))
}

func WithQueryParam(key, val string) RequestOption {
	return func(r *http.Request) {
		q := r.URL.Query()
		q.Add(key, val)
		r.URL.RawQuery = q.Encode()
	}
}
