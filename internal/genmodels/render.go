package genmodels

import (
	"bytes"
	"fmt"
	"go/format"
	"text/template"
)

const fileTemplate = `// Code generated by gen-models. DO NOT EDIT.
//
// Source: {{.Source}}

package {{.Package}}
{{if .NeedsTime}}
import "time"
{{end}}
{{- range .Decls}}
{{if .IsEnum}}
{{- if .Doc}}{{.Doc}}
{{end -}}
type {{.Name}} string

const (
{{- range .Consts}}
	{{.Name}} {{$.EnumType .}} = {{printf "%q" .Value}}
{{- end}}
)
{{else}}
{{- if .Doc}}{{.Doc}}
{{end -}}
type {{.Name}} struct {
{{- range .Fields}}
	{{.Name}} {{.Type}} {{.Tag}}
{{- end}}
}
{{end}}
{{- end}}
`

type renderContext struct {
	Package   string
	Source    string
	NeedsTime bool
	Decls     []typeDecl
	enumOwner map[string]string
}

// EnumType reports the named type a const belongs to.
func (r renderContext) EnumType(c enumConst) string {
	return r.enumOwner[c.Name]
}

func render(g *generator, opts Options) ([]byte, error) {
	source := opts.Source
	if source == "" {
		source = "openapi.json"
	}
	ctx := renderContext{
		Package:   opts.Package,
		Source:    source,
		NeedsTime: g.needsTime,
		Decls:     g.decls,
		enumOwner: map[string]string{},
	}
	for _, decl := range g.decls {
		for _, c := range decl.Consts {
			ctx.enumOwner[c.Name] = decl.Name
		}
	}
	tmpl, err := template.New("models").Parse(fileTemplate)
	if err != nil {
		return nil, fmt.Errorf("genmodels: parse template: %w", err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, ctx); err != nil {
		return nil, fmt.Errorf("genmodels: render: %w", err)
	}
	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("genmodels: gofmt output: %w", err)
	}
	return formatted, nil
}
