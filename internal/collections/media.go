package collections

import (
	"payloadkit/internal/cms"
	"payloadkit/internal/schema"
)

const (
	MediaStaticURL = "/media"
	MediaStaticDir = "media"
)

// Media: upload-коллекция, файлы лежат в MediaStaticDir и раздаются по /media.
var Media = schema.Collection{
	Slug: "media",
	Upload: &schema.Upload{
		StaticURL: MediaStaticURL,
		StaticDir: MediaStaticDir,
	},
	Fields: []schema.Field{
		{Name: "alt", Kind: schema.KindText, Required: true},
		{Name: "caption", Kind: schema.KindRichText, Editor: captionEditor()},
	},
}

// caption: только ссылки
func captionEditor() *schema.Editor {
	e := cms.SlateEditor(cms.SlateOptions{Admin: cms.SlateAdmin{Elements: []string{"link"}}})
	return &e
}
