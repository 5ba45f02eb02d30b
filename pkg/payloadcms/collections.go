package payloadcms

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/google/go-querystring/query"
)

// CollectionService: CRUD по /api/<collection>.
type CollectionService interface {
	FindByID(ctx context.Context, collection Collection, id string, out any, opts ...RequestOption) (Response, error)
	FindBySlug(ctx context.Context, collection Collection, slug string, out any, opts ...RequestOption) (Response, error)
	List(ctx context.Context, collection Collection, params ListParams, out any, opts ...RequestOption) (Response, error)
	Create(ctx context.Context, collection Collection, in any, opts ...RequestOption) (Response, error)
	UpdateByID(ctx context.Context, collection Collection, id string, in any, opts ...RequestOption) (Response, error)
	DeleteByID(ctx context.Context, collection Collection, id string, opts ...RequestOption) (Response, error)
}

type CollectionServiceOp struct {
	Client *Client
}

// Collection: слаг коллекции
type Collection string

const (
	CollectionUsers Collection = "users"
	CollectionPosts Collection = "posts"
	CollectionMedia Collection = "media"
)

// AllItems (limit=0): сервер отдаёт все документы
const AllItems = 0

// ListParams кодируется в query через go-querystring.
type ListParams struct {
	Sort  string        `url:"sort,omitempty"`
	Where *QueryBuilder `url:"where,omitempty"`
	Limit int           `url:"limit,omitempty"`
	Page  int           `url:"page,omitempty"`
	Depth int           `url:"depth,omitempty"`
}

// Encode: "?..." или пустая строка
func (p ListParams) Encode() (string, error) {
	v, err := query.Values(p)
	if err != nil {
		return "", err
	}
	if len(v) == 0 {
		return "", nil
	}
	return "?" + v.Encode(), nil
}

type (
	ListResponse[T any] struct {
		Docs          []T  `json:"docs"`
		TotalDocs     int  `json:"totalDocs"`
		Limit         int  `json:"limit"`
		TotalPages    int  `json:"totalPages"`
		Page          int  `json:"page"`
		PagingCounter int  `json:"pagingCounter"`
		HasPrevPage   bool `json:"hasPrevPage"`
		HasNextPage   bool `json:"hasNextPage"`
		PrevPage      *int `json:"prevPage"`
		NextPage      *int `json:"nextPage"`
	}
	// DocResponse: ответ на create/update
	DocResponse[T any] struct {
		Doc     T      `json:"doc"`
		Message string `json:"message"`
	}
)

func docPath(collection Collection, id string) string {
	return fmt.Sprintf("/api/%s/%s", collection, url.PathEscape(id))
}

func (s CollectionServiceOp) FindByID(ctx context.Context, collection Collection, id string, out any, opts ...RequestOption) (Response, error) {
	return s.Client.Do(ctx, http.MethodGet, docPath(collection, id), nil, out, opts...)
}

// FindBySlug: /api/<collection>/slug/<slug>
func (s CollectionServiceOp) FindBySlug(ctx context.Context, collection Collection, slug string, out any, opts ...RequestOption) (Response, error) {
	path := fmt.Sprintf("/api/%s/slug/%s", collection, url.PathEscape(slug))
	return s.Client.Do(ctx, http.MethodGet, path, nil, out, opts...)
}

func (s CollectionServiceOp) List(ctx context.Context, collection Collection, params ListParams, out any, opts ...RequestOption) (Response, error) {
	q, err := params.Encode()
	if err != nil {
		return emptyResponse(), fmt.Errorf("payloadcms: encode list params: %w", err)
	}
	return s.Client.Do(ctx, http.MethodGet, fmt.Sprintf("/api/%s%s", collection, q), nil, out, opts...)
}

// Create: out не декодируется, документ лежит в Response.Content.
func (s CollectionServiceOp) Create(ctx context.Context, collection Collection, in any, opts ...RequestOption) (Response, error) {
	return s.Client.Do(ctx, http.MethodPost, fmt.Sprintf("/api/%s", collection), in, nil, opts...)
}

func (s CollectionServiceOp) UpdateByID(ctx context.Context, collection Collection, id string, in any, opts ...RequestOption) (Response, error) {
	return s.Client.Do(ctx, http.MethodPatch, docPath(collection, id), in, nil, opts...)
}

func (s CollectionServiceOp) DeleteByID(ctx context.Context, collection Collection, id string, opts ...RequestOption) (Response, error) {
	return s.Client.Do(ctx, http.MethodDelete, docPath(collection, id), nil, nil, opts...)
}
