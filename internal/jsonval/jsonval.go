// Package jsonval implements the value model shared by the differ and
// the patcher: JSON documents decoded into interface{} trees built
// from map[string]interface{}, []interface{}, string, bool, nil and
// any numeric type.
package jsonval

import (
	"encoding/json"
	"sort"

	deepcopy "github.com/barkimedes/go-deepcopy"
)

// Equal reports whether two JSON values are deeply equal. Numbers are
// compared by numeric value regardless of representation, so 1, 1.0
// and json.Number("1") are all equal to each other. Objects compare
// by key set, arrays by element order.
func Equal(a, b interface{}) bool {
	if an, ok := Number(a); ok {
		bn, ok := Number(b)
		return ok && an == bn
	}

	switch a := a.(type) {
	case nil:
		return b == nil
	case bool:
		bv, ok := b.(bool)
		return ok && a == bv
	case string:
		bv, ok := b.(string)
		return ok && a == bv
	case map[string]interface{}:
		bv, ok := b.(map[string]interface{})
		if !ok || len(a) != len(bv) {
			return false
		}
		for key, av := range a {
			other, ok := bv[key]
			if !ok || !Equal(av, other) {
				return false
			}
		}
		return true
	case []interface{}:
		bv, ok := b.([]interface{})
		if !ok || len(a) != len(bv) {
			return false
		}
		for i, av := range a {
			if !Equal(av, bv[i]) {
				return false
			}
		}
		return true
	}

	return false
}

// Number converts any numeric JSON value to a float64.
func Number(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

// Int64 converts any numeric JSON value to an int64, truncating
// toward zero.
func Int64(v interface{}) (int64, bool) {
	f, ok := Number(v)
	if !ok {
		return 0, false
	}
	return int64(f), true
}

// Copy returns a deep copy of a JSON value. It panics if the value
// contains something that is not part of the value model (a channel,
// a function, ...); use Options.WithConvertFunc to project foreign
// types into the model first.
func Copy(v interface{}) interface{} {
	if v == nil {
		return nil
	}
	return deepcopy.MustAnything(v)
}

// SortedKeys returns the keys of an object in lexical order. Both the
// differ and the patcher iterate objects in this order so that
// generated patches are reproducible.
func SortedKeys(obj map[string]interface{}) []string {
	keys := make([]string, 0, len(obj))
	for key := range obj {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
