package functions

import (
	"reflect"
	"sort"
	"strconv"

	"github.com/goliatone/go-campform/pkg/model"
)

// ObjectValues returns the property values of its single object argument.
// Ordered objects keep their key order. Plain maps follow JavaScript
// property order: integer keys ascending, then the remaining keys, which Go
// cannot order by insertion and are sorted lexically instead. Arrays, such as
// checkbox or dynamic panel answers, return their elements in order.
// Anything else yields nil.
func ObjectValues(params []any) (any, error) {
	if len(params) != 1 || params[0] == nil {
		return nil, nil
	}
	switch v := params[0].(type) {
	case *model.OrderedObject:
		if v == nil {
			return nil, nil
		}
		return v.Values(), nil
	case model.OrderedObject:
		return v.Values(), nil
	}

	rv := reflect.ValueOf(params[0])
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return nil, nil
		}
		return sliceValues(rv), nil
	}
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, nil
	}
	if rv.IsNil() {
		return nil, nil
	}
	keys := make([]string, 0, rv.Len())
	for _, key := range rv.MapKeys() {
		keys = append(keys, key.String())
	}
	sortPropertyKeys(keys)

	out := make([]any, 0, len(keys))
	for _, key := range keys {
		out = append(out, rv.MapIndex(reflect.ValueOf(key).Convert(rv.Type().Key())).Interface())
	}
	return out, nil
}

func sliceValues(rv reflect.Value) []any {
	out := make([]any, 0, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		out = append(out, rv.Index(i).Interface())
	}
	return out
}

func sortPropertyKeys(keys []string) {
	sort.SliceStable(keys, func(i, j int) bool {
		ni, iok := arrayIndex(keys[i])
		nj, jok := arrayIndex(keys[j])
		switch {
		case iok && jok:
			return ni < nj
		case iok:
			return true
		case jok:
			return false
		default:
			return keys[i] < keys[j]
		}
	})
}

func arrayIndex(key string) (uint64, bool) {
	if key == "" || (len(key) > 1 && key[0] == '0') {
		return 0, false
	}
	n, err := strconv.ParseUint(key, 10, 32)
	return n, err == nil
}
