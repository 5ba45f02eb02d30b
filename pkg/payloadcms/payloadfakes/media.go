package payloadfakes

import (
	"context"
	"io"

	"payloadkit/pkg/payloadcms"
)

type MockMediaService struct {
	UploadFunc        func(ctx context.Context, r io.Reader, in, out any, opts payloadcms.MediaOptions) (payloadcms.Response, error)
	UploadFromURLFunc func(ctx context.Context, fileURL string, in, out any, opts payloadcms.MediaOptions) (payloadcms.Response, error)
}

var _ payloadcms.MediaService = (*MockMediaService)(nil)

func NewMockMediaService() *MockMediaService {
	return &MockMediaService{
		UploadFunc: func(context.Context, io.Reader, any, any, payloadcms.MediaOptions) (payloadcms.Response, error) {
			return payloadcms.Response{}, nil
		},
		UploadFromURLFunc: func(context.Context, string, any, any, payloadcms.MediaOptions) (payloadcms.Response, error) {
			return payloadcms.Response{}, nil
		},
	}
}

func (m *MockMediaService) Upload(ctx context.Context, r io.Reader, in, out any, opts payloadcms.MediaOptions) (payloadcms.Response, error) {
	return m.UploadFunc(ctx, r, in, out, opts)
}

func (m *MockMediaService) UploadFromURL(ctx context.Context, fileURL string, in, out any, opts payloadcms.MediaOptions) (payloadcms.Response, error) {
	return m.UploadFromURLFunc(ctx, fileURL, in, out, opts)
}
