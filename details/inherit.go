package details

import "fmt"

const keyInherit = "inherit"

// Inherit replaces every method record carrying an "inherit" key with a
// deep copy of the record it names.
//
// Inheritance is one level deep: a target that itself inherits fails with
// [ErrRecursiveInheritance], as does a target that is not declared. All
// targets are checked before any record is replaced, so methods is left
// untouched on error.
func Inherit(methods *Map) error {
	type replacement struct {
		method string
		target *Map
	}

	var todo []replacement

	for _, method := range methods.Keys() {
		record := methods.Map(method)

		target, ok := record.String(keyInherit)
		if !ok {
			continue
		}

		source := methods.Map(target)
		if source == nil {
			return fmt.Errorf("%w: method %q inherits from %q, which is not declared",
				ErrRecursiveInheritance, method, target)
		}

		if source.Has(keyInherit) {
			return fmt.Errorf("%w: method %q inherits from %q, which inherits itself",
				ErrRecursiveInheritance, method, target)
		}

		todo = append(todo, replacement{method: method, target: source})
	}

	for _, r := range todo {
		methods.Set(r.method, r.target.Clone())
	}

	return nil
}
