package details

import "fmt"

// Merge combines maps into a new [Map], left to right.
//
// Where both sides hold a nested map under the same key, the maps are merged
// recursively. Any other key present on both sides fails with
// [ErrDuplicateKey], unless allowOverride is set, in which case the later
// value wins. Inputs are never modified or aliased by the result.
func Merge(maps []*Map, allowOverride bool) (*Map, error) {
	result := NewMap()

	for _, m := range maps {
		err := mergeInto(result, m, allowOverride)
		if err != nil {
			return nil, err
		}
	}

	return result, nil
}

func mergeInto(dst, src *Map, allowOverride bool) error {
	for _, key := range src.Keys() {
		value, _ := src.Get(key)

		existing, ok := dst.Get(key)
		if !ok {
			dst.Set(key, cloneValue(value))

			continue
		}

		dstMap, dstIsMap := existing.(*Map)
		srcMap, srcIsMap := value.(*Map)

		if dstIsMap && srcIsMap {
			err := mergeInto(dstMap, srcMap, allowOverride)
			if err != nil {
				return err
			}

			continue
		}

		if !allowOverride {
			return fmt.Errorf("%w: key %q duplicated in both maps (%s, %s)",
				ErrDuplicateKey, key, jsonString(dst), jsonString(src))
		}

		dst.Set(key, cloneValue(value))
	}

	return nil
}
