package schema

import "strings"

// FieldKind: тип поля. Набор закрыт: всё, что не перечислено ниже, невалидно.
type FieldKind string

const (
	KindText     FieldKind = "text"
	KindTextarea FieldKind = "textarea"
	KindRichText FieldKind = "richText"
	KindEmail    FieldKind = "email" // только неявные поля auth-коллекций
)

var kinds = map[FieldKind]struct{}{
	KindText: {}, KindTextarea: {}, KindRichText: {}, KindEmail: {},
}

func (k FieldKind) Valid() bool { _, ok := kinds[k]; return ok }

// Editor описывает rich-text движок (имя + разрешённые элементы/листья).
type Editor struct {
	Name     string   `json:"name" yaml:"name"`
	Elements []string `json:"elements,omitempty" yaml:"elements,omitempty"`
	Leaves   []string `json:"leaves,omitempty" yaml:"leaves,omitempty"`
}

// Field описывает поле коллекции или глобала
type Field struct {
	Name     string
	Kind     FieldKind
	Required bool
	Unique   bool
	Label    string  // пусто → DisplayLabel() вернёт Name
	Editor   *Editor // переопределение редактора, только для richText
}

func (f Field) DisplayLabel() string {
	if strings.TrimSpace(f.Label) != "" {
		return f.Label
	}
	return f.Name
}

// Upload описывает хранение файлов коллекции: локальная папка + URL-префикс раздачи
type Upload struct {
	StaticURL string
	StaticDir string
}

type Auth struct {
	UseAPIKey bool
}

type CollectionAdmin struct {
	UseAsTitle string
}

// Collection: именованный тип записей со своей схемой полей
type Collection struct {
	Slug   string
	Fields []Field
	Upload *Upload
	Auth   *Auth
	Admin  CollectionAdmin
}

// Global: синглтон со схемой полей; у слагов глобалов отдельное пространство имён
type Global struct {
	Slug   string
	Fields []Field
}

func (c Collection) IsAuth() bool   { return c.Auth != nil }
func (c Collection) IsUpload() bool { return c.Upload != nil }

// AllFields возвращает объявленные поля плюс неявные (auth → email, upload → метаданные файла).
// Порядок: сначала неявные auth, затем объявленные, затем метаданные upload.
func (c Collection) AllFields() []Field {
	out := make([]Field, 0, len(c.Fields)+4)
	if c.Auth != nil {
		out = append(out, Field{Name: "email", Kind: KindEmail, Required: true, Unique: true, Label: "Email"})
	}
	out = append(out, c.Fields...)
	if c.Upload != nil {
		out = append(out,
			Field{Name: "filename", Kind: KindText, Unique: true},
			Field{Name: "mimeType", Kind: KindText},
			Field{Name: "url", Kind: KindText},
		)
	}
	return out
}

// Field ищет поле среди всех (включая неявные).
func (c Collection) Field(name string) (Field, bool) {
	for _, f := range c.AllFields() {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

func (g Global) Field(name string) (Field, bool) {
	for _, f := range g.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Clone: глубокая копия, чтобы вызывающий не мог поменять декларацию.
func (c Collection) Clone() Collection {
	out := c
	out.Fields = cloneFields(c.Fields)
	if c.Upload != nil {
		u := *c.Upload
		out.Upload = &u
	}
	if c.Auth != nil {
		a := *c.Auth
		out.Auth = &a
	}
	return out
}

func (g Global) Clone() Global {
	out := g
	out.Fields = cloneFields(g.Fields)
	return out
}

func cloneFields(in []Field) []Field {
	if in == nil {
		return nil
	}
	out := make([]Field, len(in))
	for i, f := range in {
		out[i] = f
		if f.Editor != nil {
			e := CloneEditor(*f.Editor)
			out[i].Editor = &e
		}
	}
	return out
}

func CloneEditor(e Editor) Editor {
	e.Elements = append([]string(nil), e.Elements...)
	e.Leaves = append([]string(nil), e.Leaves...)
	return e
}
