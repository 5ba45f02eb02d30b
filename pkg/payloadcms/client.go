// Package payloadcms: REST-клиент к серверу Payload CMS.
//
// Коллекции доступны по /api/<slug>, глобалы по /api/globals/<slug>,
// загрузка файлов идёт multipart-запросом в upload-коллекцию.
package payloadcms

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

var (
	ErrNoBaseURL = errors.New("payloadcms: base URL is required")
	ErrEmptyBody = errors.New("payloadcms: empty response body")
)

// Service: низкоуровневые вызовы API, поверх которых построены сервисы.
type Service interface {
	Do(ctx context.Context, method, path string, body, out any, opts ...RequestOption) (Response, error)
	DoWithRequest(ctx context.Context, req *http.Request, out any) (Response, error)
	Get(ctx context.Context, path string, out any, opts ...RequestOption) (Response, error)
	Post(ctx context.Context, path string, in any) (Response, error)
	Patch(ctx context.Context, path string, in any) (Response, error)
	Delete(ctx context.Context, path string, out any) (Response, error)
}

type Client struct {
	Collections CollectionService
	Globals     GlobalsService
	Media       MediaService

	http    *http.Client
	baseURL string
	apiKey  string
	log     *zap.Logger
}

var _ Service = (*Client)(nil)

func New(opts ...ClientOption) (*Client, error) {
	c := &Client{
		http: http.DefaultClient,
		log:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}

	c.Collections = CollectionServiceOp{Client: c}
	c.Globals = GlobalsServiceOp{Client: c}
	c.Media = MediaServiceOp{Client: c}
	return c, nil
}

func (c *Client) validate() error {
	if c.http == nil {
		c.http = http.DefaultClient
	}
	if c.log == nil {
		c.log = zap.NewNop()
	}
	c.baseURL = strings.TrimRight(strings.TrimSpace(c.baseURL), "/")
	if c.baseURL == "" {
		return ErrNoBaseURL
	}
	u, err := url.Parse(c.baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("payloadcms: invalid base URL %q", c.baseURL)
	}
	return nil
}

// Response: ответ API вместе с сырым телом и ошибками, которые вернул сервер.
type Response struct {
	*http.Response
	Content []byte
	Errors  Errors
}

// Errors: список ошибок из тела ответа:
// {"errors":[{"message":"..."}]}
type Errors []Error

type Error struct {
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
	Code    string `json:"code,omitempty"`
}

func (e Errors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, err := range e {
		if err.Field != "" {
			msgs = append(msgs, err.Field+": "+err.Message)
			continue
		}
		msgs = append(msgs, err.Message)
	}
	return strings.Join(msgs, ", ")
}

// Do кодирует body в JSON, выполняет запрос и декодирует ответ в out.
// Не-2xx ответ возвращается ошибкой с сообщениями сервера.
func (c *Client) Do(ctx context.Context, method, path string, body, out any, opts ...RequestOption) (Response, error) {
	var rd io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return emptyResponse(), fmt.Errorf("payloadcms: encode body: %w", err)
		}
		rd = bytes.NewReader(buf)
	}

	req, err := c.NewRequest(ctx, method, path, rd)
	if err != nil {
		return emptyResponse(), err
	}
	for _, opt := range opts {
		opt(req)
	}
	return c.DoWithRequest(ctx, req, out)
}

func (c *Client) DoWithRequest(_ context.Context, req *http.Request, out any) (Response, error) {
	r, err := c.perform(req)
	if err != nil || out == nil {
		return r, err
	}
	if err := json.Unmarshal(r.Content, out); err != nil {
		return r, fmt.Errorf("payloadcms: decode response: %w", err)
	}
	return r, nil
}

func (c *Client) Get(ctx context.Context, path string, out any, opts ...RequestOption) (Response, error) {
	return c.Do(ctx, http.MethodGet, path, nil, out, opts...)
}

func (c *Client) Post(ctx context.Context, path string, in any) (Response, error) {
	return c.Do(ctx, http.MethodPost, path, in, nil)
}

func (c *Client) Patch(ctx context.Context, path string, in any) (Response, error) {
	return c.Do(ctx, http.MethodPatch, path, in, nil)
}

func (c *Client) Delete(ctx context.Context, path string, out any) (Response, error) {
	return c.Do(ctx, http.MethodDelete, path, nil, out)
}

// NewRequest собирает запрос к baseURL + path с JSON-заголовками и ключом API.
func (c *Client) NewRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	uri := c.baseURL + "/" + strings.TrimPrefix(path, "/")
	req, err := http.NewRequestWithContext(ctx, method, uri, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "users API-Key "+c.apiKey)
	}
	return req, nil
}

// NewFormRequest: то же, но с multipart Content-Type (вместе с boundary).
func (c *Client) NewFormRequest(ctx context.Context, method, path string, body io.Reader, contentType string) (*http.Request, error) {
	req, err := c.NewRequest(ctx, method, path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)
	return req, nil
}

func (c *Client) perform(req *http.Request) (Response, error) {
	c.log.Debug("payloadcms request", zap.String("method", req.Method), zap.String("url", req.URL.String()))

	resp, err := c.http.Do(req)
	if err != nil {
		return emptyResponse(), err
	}
	defer resp.Body.Close()

	r := Response{Response: resp}
	buf, err := io.ReadAll(resp.Body)
	if err != nil {
		return r, fmt.Errorf("payloadcms: read body: %w", err)
	}
	r.Content = buf

	if len(bytes.TrimSpace(buf)) == 0 {
		return r, fmt.Errorf("%w (status %s)", ErrEmptyBody, resp.Status)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var body struct {
			Errors Errors `json:"errors"`
		}
		if err := json.Unmarshal(buf, &body); err != nil {
			return r, fmt.Errorf("payloadcms: status %d: undecodable error body: %w", resp.StatusCode, err)
		}
		r.Errors = body.Errors
		if len(r.Errors) == 0 {
			return r, fmt.Errorf("payloadcms: status %d: %s", resp.StatusCode, bytes.TrimSpace(buf))
		}
		c.log.Warn("payloadcms error response",
			zap.Int("status", resp.StatusCode),
			zap.String("url", req.URL.String()),
			zap.Error(r.Errors))
		return r, fmt.Errorf("payloadcms: status %d: %w", resp.StatusCode, r.Errors)
	}
	return r, nil
}

func emptyResponse() Response {
	return Response{Response: &http.Response{}}
}
