package payloadfakes

import "payloadkit/pkg/payloadcms"

// NewClient: клиент, у которого все сервисы заменены заглушками.
func NewClient() (*payloadcms.Client, *MockCollectionService, *MockGlobalsService, *MockMediaService) {
	cols, globs, media := NewMockCollectionService(), NewMockGlobalsService(), NewMockMediaService()
	return &payloadcms.Client{
		Collections: cols,
		Globals:     globs,
		Media:       media,
	}, cols, globs, media
}
