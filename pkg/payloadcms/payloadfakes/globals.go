package payloadfakes

import (
	"context"

	"payloadkit/pkg/payloadcms"
)

type MockGlobalsService struct {
	GetFunc    func(ctx context.Context, global payloadcms.Global, out any, opts ...payloadcms.RequestOption) (payloadcms.Response, error)
	UpdateFunc func(ctx context.Context, global payloadcms.Global, in any, opts ...payloadcms.RequestOption) (payloadcms.Response, error)
}

var _ payloadcms.GlobalsService = (*MockGlobalsService)(nil)

func NewMockGlobalsService() *MockGlobalsService {
	return &MockGlobalsService{
		GetFunc: func(context.Context, payloadcms.Global, any, ...payloadcms.RequestOption) (payloadcms.Response, error) {
			return payloadcms.Response{}, nil
		},
		UpdateFunc: func(context.Context, payloadcms.Global, any, ...payloadcms.RequestOption) (payloadcms.Response, error) {
			return payloadcms.Response{}, nil
		},
	}
}

func (m *MockGlobalsService) Get(ctx context.Context, global payloadcms.Global, out any, opts ...payloadcms.RequestOption) (payloadcms.Response, error) {
	return m.GetFunc(ctx, global, out, opts...)
}

func (m *MockGlobalsService) Update(ctx context.Context, global payloadcms.Global, in any, opts ...payloadcms.RequestOption) (payloadcms.Response, error) {
	return m.UpdateFunc(ctx, global, in, opts...)
}
