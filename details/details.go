package details

import (
	"fmt"
	"regexp"
)

const (
	keyParam      = "param"
	keyReturn     = "return"
	keyReturnType = "return-type"
	keyTemplate   = "template"
	keyDefinition = "definition"
	keyConst      = "const"
)

var constPattern = regexp.MustCompile(`:([a-z_]+)`)

// Load reads the declaration, decoration and definition sources at the given
// paths and builds their [Details]. A missing file is an empty source.
func Load(declaration, decoration, definition string) (*Details, error) {
	decl, err := ReadFile(declaration)
	if err != nil {
		return nil, err
	}

	deco, err := ReadFile(decoration)
	if err != nil {
		return nil, err
	}

	def, err := ReadFile(definition)
	if err != nil {
		return nil, err
	}

	return Build(decl, deco, def)
}

// Build compiles the three raw sources into canonical [Details].
//
// Each source is validated, then declarations and definitions resolve their
// inheritance, parameters are normalized, decorations are expanded and
// definition constants are substituted. The three results are merged
// without overrides and every method is filled with defaults. Nil sources
// are treated as empty. The inputs are not modified.
func Build(declaration, decoration, definition *Map) (*Details, error) {
	if declaration == nil {
		declaration = NewMap()
	}

	if decoration == nil {
		decoration = NewMap()
	}

	if definition == nil {
		definition = NewMap()
	}

	err := ValidateDeclaration(declaration)
	if err != nil {
		return nil, err
	}

	err = ValidateDecoration(decoration)
	if err != nil {
		return nil, err
	}

	err = ValidateDefinition(definition)
	if err != nil {
		return nil, err
	}

	params, err := buildParams(declaration.Clone())
	if err != nil {
		return nil, err
	}

	links, err := Expand(decoration)
	if err != nil {
		return nil, err
	}

	summaries, err := buildSummaries(definition.Clone())
	if err != nil {
		return nil, err
	}

	merged, err := Merge([]*Map{params, links, summaries}, false)
	if err != nil {
		return nil, err
	}

	return polyfill(merged)
}

func buildParams(methods *Map) (*Map, error) {
	err := Inherit(methods)
	if err != nil {
		return nil, fmt.Errorf("declaration: %w", err)
	}

	for _, method := range methods.Keys() {
		params := methods.Map(method).Map(keyParam)

		for _, name := range params.Keys() {
			raw, _ := params.Get(name)

			p, err := NormalizeParam(name, raw)
			if err != nil {
				return nil, fmt.Errorf("method %q: %w", method, err)
			}

			params.Set(name, p)
		}
	}

	return methods, nil
}

func buildSummaries(methods *Map) (*Map, error) {
	err := Inherit(methods)
	if err != nil {
		return nil, fmt.Errorf("definition: %w", err)
	}

	for _, method := range methods.Keys() {
		record := methods.Map(method)

		consts := record.Map(keyConst)
		if consts == nil {
			continue
		}

		variants := record.Map(keyReturn)
		if variants == nil {
			return nil, fmt.Errorf("%w: method %q: invalid usage of key %q, return must be a variant mapping",
				ErrSchemaValidation, method, keyConst)
		}

		for _, variant := range variants.Keys() {
			v := variants.Map(variant)
			text, _ := v.String(keyReturn)

			substituted, err := substituteConsts(text, consts)
			if err != nil {
				return nil, fmt.Errorf("%w: method %q: %w", ErrSchemaValidation, method, err)
			}

			v.Set(keyReturn, substituted)
		}

		record.Delete(keyConst)
	}

	return methods, nil
}

func substituteConsts(text string, consts *Map) (string, error) {
	var missing string

	out := constPattern.ReplaceAllStringFunc(text, func(match string) string {
		value, ok := consts.String(match[1:])
		if !ok {
			if missing == "" {
				missing = match[1:]
			}

			return match
		}

		return value
	})

	if missing != "" {
		return "", fmt.Errorf("unknown constant %q", missing)
	}

	return out, nil
}

// polyfill converts merged method records into typed [Detail] values,
// filling absent fields with their defaults.
func polyfill(methods *Map) (*Details, error) {
	d := &Details{}

	for _, name := range methods.Keys() {
		record := methods.Map(name)

		detail := &Detail{
			Name:   name,
			Throws: nonNil(record.Strings(keyThrows)),
			See:    nonNil(record.Strings(keySee)),
			Link:   nonNil(record.Strings(keyLink)),
		}

		if definition, ok := record.String(keyDefinition); ok {
			detail.Definition = &definition
		}

		params := record.Map(keyParam)
		for _, pn := range params.Keys() {
			v, _ := params.Get(pn)

			p, ok := v.(Param)
			if !ok {
				return nil, fmt.Errorf("%w: method %q: parameter %q was not normalized", ErrParameterType, name, pn)
			}

			detail.Params = append(detail.Params, NamedParam{Name: pn, Param: p})
		}

		detail.Return = polyfillReturn(record)

		rt, _ := record.Get(keyReturnType)
		switch t := rt.(type) {
		case string:
			detail.ReturnType = ReturnType{Names: []string{t}}
		case []any:
			detail.ReturnType = ReturnType{Names: nonNil(toStrings(t)), List: true}
		}

		template := record.Map(keyTemplate)
		for _, tn := range template.Keys() {
			v, _ := template.Get(tn)

			types := toStrings(v)
			if s, ok := v.(string); ok {
				types = []string{s}
			}

			detail.Template = append(detail.Template, TemplateParam{Name: tn, Types: nonNil(types)})
		}

		d.add(detail)
	}

	return d, nil
}

func polyfillReturn(record *Map) Return {
	v, _ := record.Get(keyReturn)

	switch t := v.(type) {
	case string:
		return Return{Text: &t}
	case *Map:
		variants := make([]Variant, 0, t.Len())

		for _, key := range t.Keys() {
			variant := t.Map(key)
			when, _ := variant.String("when")
			ret, _ := variant.String(keyReturn)

			variants = append(variants, Variant{Type: key, When: when, Return: ret})
		}

		return Return{Variants: variants}
	}

	return Return{}
}
