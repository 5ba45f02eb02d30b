package payloadfakes

import (
	"context"

	"payloadkit/pkg/payloadcms"
)

type MockCollectionService struct {
	FindByIDFunc   func(ctx context.Context, collection payloadcms.Collection, id string, out any, opts ...payloadcms.RequestOption) (payloadcms.Response, error)
	FindBySlugFunc func(ctx context.Context, collection payloadcms.Collection, slug string, out any, opts ...payloadcms.RequestOption) (payloadcms.Response, error)
	ListFunc       func(ctx context.Context, collection payloadcms.Collection, params payloadcms.ListParams, out any, opts ...payloadcms.RequestOption) (payloadcms.Response, error)
	CreateFunc     func(ctx context.Context, collection payloadcms.Collection, in any, opts ...payloadcms.RequestOption) (payloadcms.Response, error)
	UpdateByIDFunc func(ctx context.Context, collection payloadcms.Collection, id string, in any, opts ...payloadcms.RequestOption) (payloadcms.Response, error)
	DeleteByIDFunc func(ctx context.Context, collection payloadcms.Collection, id string, opts ...payloadcms.RequestOption) (payloadcms.Response, error)
}

var _ payloadcms.CollectionService = (*MockCollectionService)(nil)

// NewMockCollectionService: все методы по умолчанию отвечают пустым Response.
func NewMockCollectionService() *MockCollectionService {
	return &MockCollectionService{
		FindByIDFunc: func(context.Context, payloadcms.Collection, string, any, ...payloadcms.RequestOption) (payloadcms.Response, error) {
			return payloadcms.Response{}, nil
		},
		FindBySlugFunc: func(context.Context, payloadcms.Collection, string, any, ...payloadcms.RequestOption) (payloadcms.Response, error) {
			return payloadcms.Response{}, nil
		},
		ListFunc: func(context.Context, payloadcms.Collection, payloadcms.ListParams, any, ...payloadcms.RequestOption) (payloadcms.Response, error) {
			return payloadcms.Response{}, nil
		},
		CreateFunc: func(context.Context, payloadcms.Collection, any, ...payloadcms.RequestOption) (payloadcms.Response, error) {
			return payloadcms.Response{}, nil
		},
		UpdateByIDFunc: func(context.Context, payloadcms.Collection, string, any, ...payloadcms.RequestOption) (payloadcms.Response, error) {
			return payloadcms.Response{}, nil
		},
		DeleteByIDFunc: func(context.Context, payloadcms.Collection, string, ...payloadcms.RequestOption) (payloadcms.Response, error) {
			return payloadcms.Response{}, nil
		},
	}
}

func (m *MockCollectionService) FindByID(ctx context.Context, collection payloadcms.Collection, id string, out any, opts ...payloadcms.RequestOption) (payloadcms.Response, error) {
	return m.FindByIDFunc(ctx, collection, id, out, opts...)
}

func (m *MockCollectionService) FindBySlug(ctx context.Context, collection payloadcms.Collection, slug string, out any, opts ...payloadcms.RequestOption) (payloadcms.Response, error) {
	return m.FindBySlugFunc(ctx, collection, slug, out, opts...)
}

func (m *MockCollectionService) List(ctx context.Context, collection payloadcms.Collection, params payloadcms.ListParams, out any, opts ...payloadcms.RequestOption) (payloadcms.Response, error) {
	return m.ListFunc(ctx, collection, params, out, opts...)
}

func (m *MockCollectionService) Create(ctx context.Context, collection payloadcms.Collection, in any, opts ...payloadcms.RequestOption) (payloadcms.Response, error) {
	return m.CreateFunc(ctx, collection, in, opts...)
}

func (m *MockCollectionService) UpdateByID(ctx context.Context, collection payloadcms.Collection, id string, in any, opts ...payloadcms.RequestOption) (payloadcms.Response, error) {
	return m.UpdateByIDFunc(ctx, collection, id, in, opts...)
}

func (m *MockCollectionService) DeleteByID(ctx context.Context, collection payloadcms.Collection, id string, opts ...payloadcms.RequestOption) (payloadcms.Response, error) {
	return m.DeleteByIDFunc(ctx, collection, id, opts...)
}
