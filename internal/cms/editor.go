package cms

import "payloadkit/internal/schema"

const (
	EditorSlate    = "slate"
	BundlerWebpack = "webpack"
)

// SlateOptions: опции slate-редактора; пустые списки = всё разрешено.
type SlateOptions struct {
	Admin SlateAdmin
}

type SlateAdmin struct {
	Elements []string
	Leaves   []string
}

// SlateEditor возвращает описание rich-text движка slate.
func SlateEditor(opts SlateOptions) schema.Editor {
	return schema.Editor{
		Name:     EditorSlate,
		Elements: append([]string(nil), opts.Admin.Elements...),
		Leaves:   append([]string(nil), opts.Admin.Leaves...),
	}
}

// Bundler: стратегия сборки клиентских ассетов админки.
type Bundler struct {
	Name string `json:"name" yaml:"name"`
}

func WebpackBundler() Bundler { return Bundler{Name: BundlerWebpack} }

// Plugin: именованное расширение конфигурации; применяется по порядку в BuildConfig.
type Plugin struct {
	Name  string
	Apply func(*Configuration) error
}
