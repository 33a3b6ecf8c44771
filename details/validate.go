package details

import (
	"fmt"
	"sync"

	"github.com/google/jsonschema-go/jsonschema"
)

const (
	typeArray   = "array"
	typeBoolean = "boolean"
	typeNull    = "null"
	typeObject  = "object"
	typeString  = "string"
)

var (
	declarationSchema = sync.OnceValues(func() (*jsonschema.Resolved, error) {
		return declarationGrammar().Resolve(nil)
	})
	decorationSchema = sync.OnceValues(func() (*jsonschema.Resolved, error) {
		return decorationGrammar().Resolve(nil)
	})
	definitionSchema = sync.OnceValues(func() (*jsonschema.Resolved, error) {
		return definitionGrammar().Resolve(nil)
	})
)

// ValidateDeclaration checks the structure of a declaration source.
func ValidateDeclaration(m *Map) error {
	return validate("declaration", declarationSchema, m)
}

// ValidateDecoration checks the structure of a decoration source.
func ValidateDecoration(m *Map) error {
	return validate("decoration", decorationSchema, m)
}

// ValidateDefinition checks the structure of a definition source.
func ValidateDefinition(m *Map) error {
	return validate("definition", definitionSchema, m)
}

func validate(source string, schema func() (*jsonschema.Resolved, error), m *Map) error {
	resolved, err := schema()
	if err != nil {
		return fmt.Errorf("%w: resolve %s schema: %w", ErrSchemaValidation, source, err)
	}

	if m == nil {
		return nil
	}

	err = resolved.Validate(m.Plain())
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrSchemaValidation, source, err)
	}

	return nil
}

func declarationGrammar() *jsonschema.Schema {
	param := &jsonschema.Schema{
		AnyOf: []*jsonschema.Schema{
			{Type: typeString},
			{Type: typeArray, Items: typeToken()},
			{
				Type: typeObject,
				Properties: map[string]*jsonschema.Schema{
					"type": {
						AnyOf: []*jsonschema.Schema{
							typeToken(),
							{Type: typeArray, Items: typeToken()},
						},
					},
					"optional": {Type: typeBoolean},
					"ref":      {Type: typeBoolean},
					"flags":    nullableStrings(),
					"bit-sum":  nullableStrings(),
				},
				AdditionalProperties: falseSchema(),
			},
		},
	}

	method := &jsonschema.Schema{
		Type: typeObject,
		Properties: map[string]*jsonschema.Schema{
			"param": {
				Type:                 typeObject,
				AdditionalProperties: param,
			},
			"return-type": returnTypes(),
			"template": {
				Type:                 typeObject,
				AdditionalProperties: stringOrStrings(),
			},
			"inherit": {Type: typeString},
		},
		AdditionalProperties: falseSchema(),
	}

	return &jsonschema.Schema{
		Type:                 typeObject,
		AdditionalProperties: method,
	}
}

func decorationGrammar() *jsonschema.Schema {
	global := map[string]*jsonschema.Schema{
		"see":    stringList(),
		"link":   stringList(),
		"throws": stringList(),
	}

	method := map[string]*jsonschema.Schema{
		"see":    stringList(),
		"link":   stringList(),
		"throws": stringList(),
		"manual": {
			Type: typeObject,
			AdditionalProperties: &jsonschema.Schema{
				Types: []string{typeString, typeNull},
			},
		},
	}

	return &jsonschema.Schema{
		Type: typeObject,
		Properties: map[string]*jsonschema.Schema{
			"methods": {
				Type: typeObject,
				AdditionalProperties: &jsonschema.Schema{
					Type:                 typeObject,
					Properties:           method,
					AdditionalProperties: falseSchema(),
				},
			},
			"groups": {
				Type: typeObject,
				Properties: map[string]*jsonschema.Schema{
					"see": {
						Type: typeArray,
						Items: &jsonschema.Schema{
							Type:     typeArray,
							Items:    &jsonschema.Schema{Type: typeString},
							MinItems: jsonschema.Ptr(2),
						},
					},
					"throws": {
						Type: typeArray,
						Items: &jsonschema.Schema{
							Type: typeObject,
							Properties: map[string]*jsonschema.Schema{
								"methods":    stringList(),
								"exceptions": stringList(),
							},
							Required:             []string{"methods", "exceptions"},
							AdditionalProperties: falseSchema(),
						},
					},
				},
				AdditionalProperties: falseSchema(),
			},
			"*": {
				Type:                 typeObject,
				Properties:           global,
				AdditionalProperties: falseSchema(),
			},
		},
		AdditionalProperties: falseSchema(),
	}
}

func definitionGrammar() *jsonschema.Schema {
	variant := &jsonschema.Schema{
		Type: typeObject,
		Properties: map[string]*jsonschema.Schema{
			"when":   {Type: typeString},
			"return": {Type: typeString},
		},
		Required:             []string{"when", "return"},
		AdditionalProperties: falseSchema(),
	}

	method := &jsonschema.Schema{
		Type: typeObject,
		Properties: map[string]*jsonschema.Schema{
			"definition": {Type: typeString},
			"return": {
				AnyOf: []*jsonschema.Schema{
					{Type: typeString},
					{Type: typeObject, AdditionalProperties: variant},
				},
			},
			"const": {
				Type:                 typeObject,
				AdditionalProperties: &jsonschema.Schema{Type: typeString},
			},
			"inherit": {Type: typeString},
		},
		AdditionalProperties: falseSchema(),
	}

	return &jsonschema.Schema{
		Type:                 typeObject,
		AdditionalProperties: method,
	}
}

func stringList() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:  typeArray,
		Items: &jsonschema.Schema{Type: typeString},
	}
}

// typeToken accepts a type name or an array shape record. Token contents
// are checked by [NormalizeParam].
func typeToken() *jsonschema.Schema {
	return &jsonschema.Schema{
		AnyOf: []*jsonschema.Schema{
			{Type: typeString},
			{Type: typeObject},
		},
	}
}

func nullableStrings() *jsonschema.Schema {
	return &jsonschema.Schema{
		Types: []string{typeArray, typeNull},
		Items: &jsonschema.Schema{Type: typeString},
	}
}

func stringOrStrings() *jsonschema.Schema {
	return &jsonschema.Schema{
		AnyOf: []*jsonschema.Schema{
			{Type: typeString},
			stringList(),
		},
	}
}

// returnTypes accepts a type name or a non-empty list of type names.
func returnTypes() *jsonschema.Schema {
	list := stringList()
	list.MinItems = jsonschema.Ptr(1)

	return &jsonschema.Schema{
		AnyOf: []*jsonschema.Schema{
			{Type: typeString, MinLength: jsonschema.Ptr(1)},
			list,
		},
	}
}

// falseSchema rejects every instance.
func falseSchema() *jsonschema.Schema {
	return &jsonschema.Schema{Not: &jsonschema.Schema{}}
}
