package details

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
)

const (
	tokenOptional = "optional"
	tokenRef      = "&ref"
)

// Types accepted as parameter type tokens, besides array shapes.
var validTypes = []string{"string", "string[]", "int", "array", "array[]"}

var flagPattern = regexp.MustCompile(`^[A-Z]+(_[A-Z]+){0,4}$`)

// NormalizeParam canonicalizes the declaration of parameter name.
//
// The declaration is either a bare type string, a list of type tokens mixed
// with the modifier tokens "optional" and "&ref", or a record with type,
// optional, ref and flags (or bit-sum) keys. raw is never modified. All
// failures wrap [ErrParameterType].
func NormalizeParam(name string, raw any) (Param, error) {
	var (
		p   Param
		err error
	)

	switch t := raw.(type) {
	case string:
		p, err = normalizeString(t)
	case []any:
		p, err = normalizeList(t)
	case *Map:
		p, err = normalizeRecord(t)
	default:
		err = fmt.Errorf("unexpected declaration %T", raw)
	}

	if err != nil {
		return Param{}, fmt.Errorf("%w: parameter %q: %w", ErrParameterType, name, err)
	}

	return p, nil
}

func normalizeString(s string) (Param, error) {
	m, err := parseMember(s)
	if err != nil {
		return Param{}, err
	}

	return Param{Type: Type{m}}, nil
}

func normalizeList(tokens []any) (Param, error) {
	var p Param

	types := make([]any, 0, len(tokens))

	for _, tok := range tokens {
		switch tok {
		case tokenOptional:
			p.Optional = true
		case tokenRef:
			p.Ref = true
		default:
			types = append(types, tok)
		}
	}

	if len(types) == 0 {
		return Param{}, errors.New("no type")
	}

	t, err := parseType(types)
	if err != nil {
		return Param{}, err
	}

	p.Type = t

	return p, nil
}

func normalizeRecord(m *Map) (Param, error) {
	rawType, hasType := m.Get("type")

	if bitSum, ok := m.Get("bit-sum"); ok && bitSum != nil {
		if hasType && rawType != "int" {
			return Param{}, fmt.Errorf("conflicting bit-sum and type %v", rawType)
		}

		flags, err := parseFlags(bitSum)
		if err != nil {
			return Param{}, err
		}

		return Param{
			Type:     Type{{Name: "int"}},
			Optional: true,
			Flags:    flags,
		}, nil
	}

	if !hasType || rawType == nil {
		return Param{}, errors.New("no type")
	}

	var (
		t   Type
		err error
	)

	if list, ok := rawType.([]any); ok {
		if len(list) == 0 {
			return Param{}, errors.New("no type")
		}

		t, err = parseType(list)
	} else {
		t, err = parseType([]any{rawType})
	}

	if err != nil {
		return Param{}, err
	}

	p := Param{Type: t}

	if v, ok := m.Get("optional"); ok {
		p.Optional, _ = v.(bool)
	}

	if v, ok := m.Get("ref"); ok {
		p.Ref, _ = v.(bool)
	}

	if v, ok := m.Get("flags"); ok && v != nil {
		if t.String() != "int" {
			return Param{}, fmt.Errorf("flags require type int, got %s", t)
		}

		p.Flags, err = parseFlags(v)
		if err != nil {
			return Param{}, err
		}
	}

	return p, nil
}

func parseType(tokens []any) (Type, error) {
	t := make(Type, 0, len(tokens))

	for _, tok := range tokens {
		var (
			m   Member
			err error
		)

		switch v := tok.(type) {
		case string:
			m, err = parseMember(v)
		case *Map:
			m, err = parseShape(v)
		default:
			err = fmt.Errorf("invalid type token %v", tok)
		}

		if err != nil {
			return nil, err
		}

		t = append(t, m)
	}

	return t, nil
}

func parseMember(s string) (Member, error) {
	if !slices.Contains(validTypes, s) {
		return Member{}, fmt.Errorf("invalid type %q", s)
	}

	return Member{Name: s}, nil
}

func parseShape(m *Map) (Member, error) {
	if kind, _ := m.String("type"); kind != "array" {
		return Member{}, fmt.Errorf("invalid type %s", jsonString(m))
	}

	keys, _ := m.String("keys")
	values, _ := m.String("values")

	return Member{Shape: &ArrayShape{Keys: keys, Values: values}}, nil
}

func parseFlags(v any) ([]string, error) {
	list, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("flags must be a list, got %T", v)
	}

	if len(list) == 0 {
		return nil, errors.New("empty flags")
	}

	flags := make([]string, 0, len(list))

	for _, item := range list {
		s, ok := item.(string)
		if !ok || !flagPattern.MatchString(s) {
			return nil, fmt.Errorf("malformed flag %v", item)
		}

		flags = append(flags, s)
	}

	return flags, nil
}
