package complete

import (
	"reflect"
	"sort"
	"strconv"

	"github.com/zclconf/go-cty/cty"
)

// Enumerator exposes the visible keys of scope values and resolves single
// lookup steps. Implementations must not modify the values they inspect.
type Enumerator interface {
	// Keys lists the keys of v in enumeration order. Values without keys
	// yield nil.
	Keys(v any) []string
	// Lookup resolves v.key.
	Lookup(v any, key string) (any, bool)
	// Index resolves v[i].
	Index(v any, i int) (any, bool)
}

// Keyed is implemented by object models that enumerate their own members.
// GoEnumerator prefers it over reflection.
type Keyed interface {
	Keys() []string
	Get(key string) (any, bool)
}

// DefaultEnumerator walks cty values with CtyEnumerator and everything else
// with GoEnumerator, so Go structures and cty values can be nested inside
// each other.
type DefaultEnumerator struct{}

func (DefaultEnumerator) Keys(v any) []string {
	if cv, ok := v.(cty.Value); ok {
		return CtyEnumerator{}.Keys(cv)
	}
	return GoEnumerator{}.Keys(v)
}

func (DefaultEnumerator) Lookup(v any, key string) (any, bool) {
	if cv, ok := v.(cty.Value); ok {
		return CtyEnumerator{}.Lookup(cv, key)
	}
	return GoEnumerator{}.Lookup(v, key)
}

func (DefaultEnumerator) Index(v any, i int) (any, bool) {
	if cv, ok := v.(cty.Value); ok {
		return CtyEnumerator{}.Index(cv, i)
	}
	return GoEnumerator{}.Index(v, i)
}

// GoEnumerator enumerates Go values by reflection.
//
// Struct keys are the struct's own exported fields in declaration order,
// then fields promoted from embedded structs, then exported methods. Keys
// and Lookup agree on which promoted names are reachable. Maps
// with string or integer keys enumerate their keys in sorted order. Slices
// and arrays enumerate their indices.
type GoEnumerator struct{}

func (GoEnumerator) Keys(v any) []string {
	if v == nil {
		return nil
	}
	if k, ok := v.(Keyed); ok {
		return k.Keys()
	}

	rv := reflect.ValueOf(v)
	methodsOf := rv
	rv = indirect(rv)
	if !rv.IsValid() {
		return nil
	}

	switch rv.Kind() {
	case reflect.Map:
		return mapKeys(rv)
	case reflect.Slice, reflect.Array:
		return indexKeys(rv.Len())
	case reflect.Struct:
		keys := structKeys(rv.Type())
		if methodsOf.Kind() != reflect.Ptr && rv.CanAddr() {
			methodsOf = rv.Addr()
		}
		return append(keys, methodKeys(methodsOf.Type(), keys)...)
	default:
		return methodKeys(methodsOf.Type(), nil)
	}
}

func (GoEnumerator) Lookup(v any, key string) (any, bool) {
	if v == nil {
		return nil, false
	}
	if k, ok := v.(Keyed); ok {
		return k.Get(key)
	}

	rv := reflect.ValueOf(v)
	methodsOf := rv
	rv = indirect(rv)
	if !rv.IsValid() {
		return nil, false
	}

	switch rv.Kind() {
	case reflect.Map:
		mk, ok := mapKey(rv.Type().Key(), key)
		if !ok {
			return nil, false
		}
		val := rv.MapIndex(mk)
		if !val.IsValid() {
			return nil, false
		}
		return val.Interface(), true
	case reflect.Slice, reflect.Array:
		i, err := strconv.Atoi(key)
		if err != nil {
			return nil, false
		}
		return GoEnumerator{}.Index(v, i)
	case reflect.Struct:
		if sf, ok := rv.Type().FieldByName(key); ok && sf.IsExported() {
			field, err := rv.FieldByIndexErr(sf.Index)
			if err != nil {
				return nil, false
			}
			return field.Interface(), true
		}
	}

	if m := methodsOf.MethodByName(key); m.IsValid() {
		return m.Interface(), true
	}
	return nil, false
}

func (GoEnumerator) Index(v any, i int) (any, bool) {
	if v == nil || i < 0 {
		return nil, false
	}
	if k, ok := v.(Keyed); ok {
		return k.Get(strconv.Itoa(i))
	}

	rv := indirect(reflect.ValueOf(v))
	if !rv.IsValid() {
		return nil, false
	}
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		if i >= rv.Len() {
			return nil, false
		}
		return rv.Index(i).Interface(), true
	case reflect.Map:
		return GoEnumerator{}.Lookup(v, strconv.Itoa(i))
	}
	return nil, false
}

// indirect follows pointers and interfaces. It returns the zero Value for
// nil.
func indirect(rv reflect.Value) reflect.Value {
	for rv.IsValid() && (rv.Kind() == reflect.Ptr || rv.Kind() == reflect.Interface) {
		if rv.IsNil() {
			return reflect.Value{}
		}
		rv = rv.Elem()
	}
	return rv
}

func mapKeys(rv reflect.Value) []string {
	keys := make([]string, 0, rv.Len())
	for _, k := range rv.MapKeys() {
		switch k.Kind() {
		case reflect.String:
			keys = append(keys, k.String())
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			keys = append(keys, strconv.FormatInt(k.Int(), 10))
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			keys = append(keys, strconv.FormatUint(k.Uint(), 10))
		}
	}
	sort.Strings(keys)
	return keys
}

func mapKey(t reflect.Type, key string) (reflect.Value, bool) {
	switch t.Kind() {
	case reflect.String:
		return reflect.ValueOf(key).Convert(t), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(key, 10, 64)
		if err != nil {
			return reflect.Value{}, false
		}
		return reflect.ValueOf(n).Convert(t), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(key, 10, 64)
		if err != nil {
			return reflect.Value{}, false
		}
		return reflect.ValueOf(n).Convert(t), true
	}
	return reflect.Value{}, false
}

func indexKeys(n int) []string {
	keys := make([]string, n)
	for i := range keys {
		keys[i] = strconv.Itoa(i)
	}
	return keys
}

// structKeys lists own exported fields first, then promoted ones
// breadth-first, following the selector rules FieldByName applies: a name
// seen at a shallower depth shadows deeper ones, a name found more than once
// at the same depth is ambiguous and hidden, and each embedded struct type is
// walked once. Exported embedded fields are listed under their type name.
func structKeys(t reflect.Type) []string {
	var keys []string
	seen := make(map[string]bool)
	visited := make(map[reflect.Type]bool)
	level := []reflect.Type{t}

	for len(level) > 0 {
		var (
			order    []reflect.Type
			next     []reflect.Type
			names    []string
			exported = make(map[string]bool)
		)
		mult := make(map[reflect.Type]int)
		for _, st := range level {
			if visited[st] {
				continue
			}
			if mult[st] == 0 {
				order = append(order, st)
			}
			mult[st]++
		}

		counts := make(map[string]int)
		for _, st := range order {
			visited[st] = true
			for i := 0; i < st.NumField(); i++ {
				f := st.Field(i)
				if counts[f.Name] == 0 {
					names = append(names, f.Name)
				}
				counts[f.Name] += mult[st]
				exported[f.Name] = f.IsExported()

				if !f.Anonymous {
					continue
				}
				ft := f.Type
				if ft.Kind() == reflect.Ptr {
					ft = ft.Elem()
				}
				if ft.Kind() == reflect.Struct && !visited[ft] {
					for n := 0; n < mult[st]; n++ {
						next = append(next, ft)
					}
				}
			}
		}

		for _, name := range names {
			if seen[name] {
				continue
			}
			seen[name] = true
			if counts[name] == 1 && exported[name] {
				keys = append(keys, name)
			}
		}
		level = next
	}
	return keys
}

func methodKeys(t reflect.Type, taken []string) []string {
	if t == nil {
		return nil
	}
	skip := make(map[string]bool, len(taken))
	for _, k := range taken {
		skip[k] = true
	}
	var keys []string
	for i := 0; i < t.NumMethod(); i++ {
		m := t.Method(i)
		if m.IsExported() && !skip[m.Name] {
			keys = append(keys, m.Name)
		}
	}
	return keys
}
