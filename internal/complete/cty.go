package complete

import (
	"strconv"

	"github.com/zclconf/go-cty/cty"
)

// CtyEnumerator enumerates cty values. Objects list their attributes and
// maps their keys, both in cty's lexical iteration order; lists and tuples
// list their indices. Null, unknown and primitive values have no keys.
type CtyEnumerator struct{}

func (CtyEnumerator) Keys(v any) []string {
	cv, ok := usable(v)
	if !ok {
		return nil
	}

	ty := cv.Type()
	switch {
	case ty.IsObjectType(), ty.IsMapType():
		keys := make([]string, 0, cv.LengthInt())
		for it := cv.ElementIterator(); it.Next(); {
			k, _ := it.Element()
			keys = append(keys, k.AsString())
		}
		return keys
	case ty.IsListType(), ty.IsTupleType():
		return indexKeys(cv.LengthInt())
	}
	return nil
}

func (CtyEnumerator) Lookup(v any, key string) (any, bool) {
	cv, ok := usable(v)
	if !ok {
		return nil, false
	}

	ty := cv.Type()
	switch {
	case ty.IsObjectType():
		if !ty.HasAttribute(key) {
			return nil, false
		}
		return cv.GetAttr(key), true
	case ty.IsMapType():
		k := cty.StringVal(key)
		if has := cv.HasIndex(k); !has.IsKnown() || has.False() {
			return nil, false
		}
		return cv.Index(k), true
	case ty.IsListType(), ty.IsTupleType():
		i, err := strconv.Atoi(key)
		if err != nil {
			return nil, false
		}
		return CtyEnumerator{}.Index(cv, i)
	}
	return nil, false
}

func (CtyEnumerator) Index(v any, i int) (any, bool) {
	cv, ok := usable(v)
	if !ok || i < 0 {
		return nil, false
	}

	ty := cv.Type()
	switch {
	case ty.IsListType(), ty.IsTupleType():
		if i >= cv.LengthInt() {
			return nil, false
		}
		return cv.Index(cty.NumberIntVal(int64(i))), true
	case ty.IsMapType(), ty.IsObjectType():
		return CtyEnumerator{}.Lookup(cv, strconv.Itoa(i))
	}
	return nil, false
}

// usable unwraps v into a known, non-null cty value with marks removed.
func usable(v any) (cty.Value, bool) {
	cv, ok := v.(cty.Value)
	if !ok {
		return cty.NilVal, false
	}
	cv, _ = cv.Unmark()
	if cv.IsNull() || !cv.IsKnown() {
		return cty.NilVal, false
	}
	return cv, true
}
