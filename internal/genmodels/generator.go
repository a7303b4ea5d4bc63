package genmodels

import (
	"fmt"
	"sort"
	"strings"
)

// Options control the generated output.
type Options struct {
	// Package is the package clause of the generated file (default amigo).
	Package string
	// Source is recorded in the generated header (URL or file path).
	Source string
}

type typeDecl struct {
	Name   string
	Doc    string
	IsEnum bool
	Fields []fieldDecl
	Consts []enumConst
}

type fieldDecl struct {
	Name string
	Type string
	Tag  string
	Doc  string
}

type enumConst struct {
	Name  string
	Value string
}

// generator accumulates declarations while walking the schema graph.
type generator struct {
	doc       *Document
	decls     []typeDecl
	declared  map[string]bool
	needsTime bool
}

// Generate renders the document's component schemas as a gofmt-formatted
// Go source file. Output is deterministic: schemas and properties are
// emitted in sorted order.
func Generate(doc *Document, opts Options) ([]byte, error) {
	if opts.Package == "" {
		opts.Package = "amigo"
	}
	g := &generator{doc: doc, declared: map[string]bool{}}

	names := make([]string, 0, len(doc.Components.Schemas))
	for name := range doc.Components.Schemas {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := g.declare(exportName(name), doc.Components.Schemas[name]); err != nil {
			return nil, fmt.Errorf("genmodels: schema %s: %w", name, err)
		}
	}
	return render(g, opts)
}

func (g *generator) declare(name string, schema *Schema) error {
	if g.declared[name] {
		return nil
	}
	g.declared[name] = true

	resolved, err := g.resolve(schema)
	if err != nil {
		return err
	}

	if len(resolved.Enum) > 0 {
		g.decls = append(g.decls, enumDecl(name, resolved))
		return nil
	}

	decl := typeDecl{Name: name, Doc: docLine(name, resolved.Description)}
	props := make([]string, 0, len(resolved.Properties))
	for prop := range resolved.Properties {
		props = append(props, prop)
	}
	sort.Strings(props)
	for _, prop := range props {
		propSchema := resolved.Properties[prop]
		required := resolved.isRequired(prop)
		goType, err := g.goType(name, prop, propSchema, required)
		if err != nil {
			return err
		}
		tag := prop
		if !required {
			tag += ",omitempty"
		}
		decl.Fields = append(decl.Fields, fieldDecl{
			Name: exportName(prop),
			Type: goType,
			Tag:  fmt.Sprintf("`json:%q`", tag),
			Doc:  "",
		})
	}
	g.decls = append(g.decls, decl)
	return nil
}

func enumDecl(name string, schema *Schema) typeDecl {
	decl := typeDecl{
		Name:   name,
		Doc:    docLine(name, schema.Description),
		IsEnum: true,
	}
	values := append([]string(nil), schema.Enum...)
	sort.Strings(values)
	for _, value := range values {
		decl.Consts = append(decl.Consts, enumConst{
			Name:  name + exportName(value),
			Value: value,
		})
	}
	return decl
}

// resolve follows $ref and flattens single-branch allOf/anyOf wrappers
// (the nullable-field encoding FastAPI emits).
func (g *generator) resolve(schema *Schema) (*Schema, error) {
	for i := 0; schema != nil && i < 16; i++ {
		switch {
		case schema.Ref != "":
			target, err := g.lookup(schema.Ref)
			if err != nil {
				return nil, err
			}
			schema = target
		case len(schema.AllOf) == 1:
			schema = schema.AllOf[0]
		case len(schema.AnyOf) > 0:
			branches := nonNullBranches(schema.AnyOf)
			if len(branches) != 1 {
				return schema, nil
			}
			schema = branches[0]
		default:
			return schema, nil
		}
	}
	return nil, fmt.Errorf("unresolvable schema (ref cycle?)")
}

func (g *generator) lookup(ref string) (*Schema, error) {
	const prefix = "#/components/schemas/"
	if !strings.HasPrefix(ref, prefix) {
		return nil, fmt.Errorf("unsupported $ref %q", ref)
	}
	name := strings.TrimPrefix(ref, prefix)
	target, ok := g.doc.Components.Schemas[name]
	if !ok {
		return nil, fmt.Errorf("dangling $ref %q", ref)
	}
	return target, nil
}

// goType maps one property schema onto a Go type, synthesizing named types
// for inline objects and enums. Optional scalars become pointers.
func (g *generator) goType(owner, field string, schema *Schema, required bool) (string, error) {
	if schema == nil {
		return "any", nil
	}
	if schema.Ref != "" {
		target, err := g.lookup(schema.Ref)
		if err != nil {
			return "", err
		}
		name := exportName(strings.TrimPrefix(schema.Ref, "#/components/schemas/"))
		if err := g.declare(name, target); err != nil {
			return "", err
		}
		if len(target.Enum) > 0 || target.Type != "object" {
			return name, nil
		}
		return maybePointer(name, required), nil
	}
	resolved, err := g.resolve(schema)
	if err != nil {
		return "", err
	}
	if len(resolved.Enum) > 0 {
		// Inline enums get a type named after their location.
		name := owner + exportName(field)
		if !g.declared[name] {
			g.declared[name] = true
			g.decls = append(g.decls, enumDecl(name, resolved))
		}
		return name, nil
	}
	switch resolved.Type {
	case "string":
		if resolved.Format == "date-time" {
			g.needsTime = true
			return maybePointer("time.Time", required), nil
		}
		return maybePointer("string", required && !resolved.Nullable), nil
	case "integer":
		if resolved.Format == "int64" {
			return maybePointer("int64", required), nil
		}
		return maybePointer("int", required), nil
	case "number":
		return maybePointer("float64", required), nil
	case "boolean":
		return maybePointer("bool", required), nil
	case "array":
		item, err := g.goType(owner, field+"Item", resolved.Items, true)
		if err != nil {
			return "", err
		}
		return "[]" + item, nil
	case "object", "":
		if len(resolved.Properties) > 0 {
			name := owner + exportName(field)
			if err := g.declare(name, resolved); err != nil {
				return "", err
			}
			return maybePointer(name, required), nil
		}
		if value, ok := resolved.additionalSchema(); ok {
			valueType, err := g.goType(owner, field+"Value", value, true)
			if err != nil {
				return "", err
			}
			return "map[string]" + valueType, nil
		}
		return "map[string]any", nil
	default:
		return "", fmt.Errorf("unsupported schema type %q for %s.%s", resolved.Type, owner, field)
	}
}

// nonNullBranches drops the {"type": "null"} branch FastAPI adds to encode
// nullable fields.
func nonNullBranches(branches []*Schema) []*Schema {
	kept := make([]*Schema, 0, len(branches))
	for _, b := range branches {
		if b != nil && b.Type == "null" {
			continue
		}
		kept = append(kept, b)
	}
	return kept
}

func maybePointer(goType string, valueField bool) string {
	if valueField {
		return goType
	}
	return "*" + goType
}

var initialisms = map[string]string{
	"id": "ID", "ids": "IDs", "url": "URL", "uri": "URI", "api": "API",
	"http": "HTTP", "json": "JSON", "uuid": "UUID", "sdk": "SDK",
}

// exportName converts a schema or property name to an exported Go
// identifier, upper-casing common initialisms.
func exportName(raw string) string {
	var b strings.Builder
	for _, part := range splitWords(raw) {
		lower := strings.ToLower(part)
		if fixed, ok := initialisms[lower]; ok {
			b.WriteString(fixed)
			continue
		}
		b.WriteString(strings.ToUpper(lower[:1]))
		b.WriteString(lower[1:])
	}
	if b.Len() == 0 {
		return "X"
	}
	return b.String()
}

// splitWords breaks snake_case, kebab-case, dotted, and camelCase names
// into their word parts.
func splitWords(raw string) []string {
	var words []string
	var current strings.Builder
	flush := func() {
		if current.Len() > 0 {
			words = append(words, current.String())
			current.Reset()
		}
	}
	for i, r := range raw {
		switch {
		case r == '_' || r == '-' || r == '.' || r == ' ' || r == '/':
			flush()
		case r >= 'A' && r <= 'Z':
			if i > 0 {
				prev := rune(raw[i-1])
				if prev >= 'a' && prev <= 'z' {
					flush()
				}
			}
			current.WriteRune(r)
		default:
			current.WriteRune(r)
		}
	}
	flush()
	return words
}

func docLine(name, description string) string {
	desc := strings.TrimSpace(description)
	if desc == "" {
		return ""
	}
	desc = strings.ReplaceAll(desc, "\n", " ")
	return fmt.Sprintf("// %s %s", name, strings.TrimSuffix(desc, ".")+".")
}
