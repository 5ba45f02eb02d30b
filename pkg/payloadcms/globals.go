package payloadcms

import (
	"context"
	"fmt"
	"net/http"
)

// GlobalsService: глобалы нельзя создать или удалить, только прочитать и обновить.
type GlobalsService interface {
	Get(ctx context.Context, global Global, out any, opts ...RequestOption) (Response, error)
	Update(ctx context.Context, global Global, in any, opts ...RequestOption) (Response, error)
}

type GlobalsServiceOp struct {
	Client *Client
}

type Global string

const GlobalSettings Global = "settings"

func globalPath(g Global) string { return fmt.Sprintf("/api/globals/%s", g) }

func (s GlobalsServiceOp) Get(ctx context.Context, global Global, out any, opts ...RequestOption) (Response, error) {
	return s.Client.Do(ctx, http.MethodGet, globalPath(global), nil, out, opts...)
}

func (s GlobalsServiceOp) Update(ctx context.Context, global Global, in any, opts ...RequestOption) (Response, error) {
	return s.Client.Do(ctx, http.MethodPost, globalPath(global), in, nil, opts...)
}
