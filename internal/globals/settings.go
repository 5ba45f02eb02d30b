package globals

import "payloadkit/internal/schema"

var Settings = schema.Global{
	Slug: "settings",
	Fields: []schema.Field{
		{Name: "siteName", Label: "Site Name", Kind: schema.KindText},
	},
}

func All() []schema.Global {
	return []schema.Global{Settings.Clone()}
}
