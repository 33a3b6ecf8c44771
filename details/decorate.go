package details

import (
	"fmt"
	"slices"
)

const (
	keyMethods = "methods"
	keyGroups  = "groups"
	keyGlobal  = "*"
	keySee     = "see"
	keyLink    = "link"
	keyThrows  = "throws"
	keyManual  = "manual"
)

// Expand resolves a decoration source into one decoration record per
// method.
//
// Entries of the "*" record are appended to every method first. See groups
// then cross-reference each member with the other members in group order,
// throws groups add their exceptions to each named method, and non-empty
// manual links are moved to the end of the link list. The decoration itself
// is not modified.
func Expand(decoration *Map) (*Map, error) {
	methods := decoration.Map(keyMethods).Clone()
	if methods == nil {
		methods = NewMap()
	}

	if global := decoration.Map(keyGlobal); global != nil {
		for _, name := range methods.Keys() {
			record := methods.Map(name)
			if record == nil {
				record = NewMap()
				methods.Set(name, record)
			}

			for _, key := range []string{keySee, keyLink, keyThrows} {
				if global.Has(key) {
					appendStrings(record, key, global.Strings(key)...)
				}
			}
		}
	}

	groups := decoration.Map(keyGroups)

	for _, group := range groupLists(groups, keySee) {
		members := toStrings(group)

		err := checkMembers(methods, "groups.see", members)
		if err != nil {
			return nil, err
		}

		for _, member := range members {
			others := slices.DeleteFunc(slices.Clone(members), func(s string) bool { return s == member })
			appendStrings(methods.Map(member), keySee, others...)
		}
	}

	for _, group := range groupLists(groups, keyThrows) {
		record, _ := group.(*Map)
		members := record.Strings(keyMethods)

		err := checkMembers(methods, "groups.throws", members)
		if err != nil {
			return nil, err
		}

		exceptions := record.Strings("exceptions")
		for _, member := range members {
			appendStrings(methods.Map(member), keyThrows, exceptions...)
		}
	}

	for _, name := range methods.Keys() {
		record := methods.Map(name)

		manual := record.Map(keyManual)
		if manual == nil {
			continue
		}

		links := make([]string, 0, manual.Len())

		for _, key := range manual.Keys() {
			if link, _ := manual.String(key); link != "" {
				links = append(links, link)
			}
		}

		appendStrings(record, keyLink, links...)
		record.Delete(keyManual)
	}

	return methods, nil
}

func groupLists(groups *Map, kind string) []any {
	v, _ := groups.Get(kind)
	list, _ := v.([]any)

	return list
}

// checkMembers fails with the first member of a group that is not a
// decorated method.
func checkMembers(methods *Map, kind string, members []string) error {
	for _, member := range members {
		if methods.Map(member) == nil {
			return fmt.Errorf("%w: method %q used in %q is not declared", ErrUnknownGroupMember, member, kind)
		}
	}

	return nil
}
