package details

import (
	"encoding/json"
	"slices"
	"strings"
)

// Member is one token of a parameter [Type]: either a type name or an
// array shape.
type Member struct {
	Shape *ArrayShape
	Name  string
}

// ArrayShape describes an array with typed keys and values.
type ArrayShape struct {
	Keys   string `json:"keys,omitempty"`
	Values string `json:"values,omitempty"`
}

// String renders the member as it appears after @param.
func (m Member) String() string {
	if m.Shape == nil {
		return m.Name
	}

	if m.Shape.Keys == "" {
		if m.Shape.Values == "" {
			return "array"
		}

		return m.Shape.Values + "[]"
	}

	return "array<" + m.Shape.Keys + "," + m.Shape.Values + ">"
}

// MarshalJSON encodes a name as a string and a shape as a record.
func (m Member) MarshalJSON() ([]byte, error) {
	if m.Shape == nil {
		return json.Marshal(m.Name)
	}

	return json.Marshal(struct {
		Type string `json:"type"`
		ArrayShape
	}{Type: "array", ArrayShape: *m.Shape})
}

// Type is a parameter type: a single member, or several for a union.
type Type []Member

// String joins the members with "|".
func (t Type) String() string {
	parts := make([]string, len(t))
	for i, m := range t {
		parts[i] = m.String()
	}

	return strings.Join(parts, "|")
}

// MarshalJSON encodes a scalar type as its member and a union as a list.
func (t Type) MarshalJSON() ([]byte, error) {
	if len(t) == 1 {
		return json.Marshal(t[0])
	}

	return json.Marshal([]Member(t))
}

// Param is the canonical form of a parameter declaration.
type Param struct {
	Type     Type     `json:"type"`
	Optional bool     `json:"optional"`
	Ref      bool     `json:"ref"`
	Flags    []string `json:"flags"`
}

func (p Param) clone() Param {
	c := Param{
		Type:     make(Type, len(p.Type)),
		Optional: p.Optional,
		Ref:      p.Ref,
		Flags:    slices.Clone(p.Flags),
	}

	for i, m := range p.Type {
		c.Type[i] = Member{Name: m.Name}
		if m.Shape != nil {
			shape := *m.Shape
			c.Type[i].Shape = &shape
		}
	}

	return c
}

// NamedParam is a [Param] with its name, kept in declaration order.
type NamedParam struct {
	Name string
	Param
}

// Variant is one branch of a multi-outcome return description.
type Variant struct {
	Type   string
	When   string
	Return string
}

// Return is the prose describing a method's return value. It is either
// empty, a single text, or a list of variants keyed by return type.
type Return struct {
	Text     *string
	Variants []Variant
}

// IsZero reports whether no return prose was given.
func (r Return) IsZero() bool {
	return r.Text == nil && r.Variants == nil
}

// ReturnType is the declared return type: a single name, or an ordered list
// of names for multi-variant returns.
type ReturnType struct {
	Names []string
	List  bool
}

// IsZero reports whether no return type was declared.
func (t ReturnType) IsZero() bool {
	return t.Names == nil
}

// String joins the names with "|".
func (t ReturnType) String() string {
	return strings.Join(t.Names, "|")
}

// TemplateParam is a generic parameter and the types it allows.
type TemplateParam struct {
	Name  string
	Types []string
}

// Detail is the canonical, fully merged record for one method.
type Detail struct {
	Definition *string
	Name       string
	Params     []NamedParam
	Return     Return
	ReturnType ReturnType
	Template   []TemplateParam
	Throws     []string
	See        []string
	Link       []string
}

// Param returns the parameter called name.
func (d *Detail) Param(name string) (Param, bool) {
	for _, p := range d.Params {
		if p.Name == name {
			return p.Param, true
		}
	}

	return Param{}, false
}

// HasParam reports whether the method declares a parameter called name.
func (d *Detail) HasParam(name string) bool {
	_, ok := d.Param(name)

	return ok
}

// Map returns the detail in its canonical mapping form, as used by
// `documentary details`.
func (d *Detail) Map() *Map {
	m := NewMap()
	m.Set("name", d.Name)

	if d.Definition != nil {
		m.Set("definition", *d.Definition)
	} else {
		m.Set("definition", nil)
	}

	params := NewMap()
	for _, p := range d.Params {
		params.Set(p.Name, p.Param)
	}

	m.Set("param", params)

	switch {
	case d.Return.Variants != nil:
		variants := NewMap()

		for _, v := range d.Return.Variants {
			variant := NewMap()
			variant.Set("when", v.When)
			variant.Set("return", v.Return)
			variants.Set(v.Type, variant)
		}

		m.Set("return", variants)
	case d.Return.Text != nil:
		m.Set("return", *d.Return.Text)
	default:
		m.Set("return", nil)
	}

	switch {
	case d.ReturnType.IsZero():
		m.Set("return-type", nil)
	case d.ReturnType.List:
		m.Set("return-type", d.ReturnType.Names)
	default:
		m.Set("return-type", d.ReturnType.String())
	}

	template := NewMap()
	for _, t := range d.Template {
		template.Set(t.Name, t.Types)
	}

	m.Set("template", template)
	m.Set("throws", nonNil(d.Throws))
	m.Set("see", nonNil(d.See))
	m.Set("link", nonNil(d.Link))

	return m
}

// Details is the set of canonical details for one template, keyed by
// method name and kept in source order.
//
// A Details value is built fresh for every template and is owned by the
// caller; nothing in it is shared with other templates.
type Details struct {
	methods map[string]*Detail
	names   []string
}

// Get returns the detail for method.
func (d *Details) Get(method string) (*Detail, bool) {
	if d == nil {
		return nil, false
	}

	detail, ok := d.methods[method]

	return detail, ok
}

// Has reports whether method is documented.
func (d *Details) Has(method string) bool {
	_, ok := d.Get(method)

	return ok
}

// Names returns the documented method names in source order.
func (d *Details) Names() []string {
	if d == nil {
		return nil
	}

	return slices.Clone(d.names)
}

// Len returns the number of documented methods.
func (d *Details) Len() int {
	if d == nil {
		return 0
	}

	return len(d.names)
}

// MarshalJSON encodes the details as an ordered object of canonical
// records.
func (d *Details) MarshalJSON() ([]byte, error) {
	m := NewMap()
	for _, name := range d.Names() {
		m.Set(name, d.methods[name].Map())
	}

	return m.MarshalJSON()
}

func (d *Details) add(detail *Detail) {
	if d.methods == nil {
		d.methods = make(map[string]*Detail)
	}

	if _, ok := d.methods[detail.Name]; !ok {
		d.names = append(d.names, detail.Name)
	}

	d.methods[detail.Name] = detail
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}

	return s
}
