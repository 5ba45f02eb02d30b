package collections

import "payloadkit/internal/schema"

var Posts = schema.Collection{
	Slug: "posts",
	Fields: []schema.Field{
		{Name: "title", Label: "Title", Kind: schema.KindText, Required: true},
		{Name: "content", Label: "Content", Kind: schema.KindTextarea},
	},
}
