/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package kcerrors

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
)

// Stringify flattens a query value into a deterministic string.
//
// Maps produce one "path: value" entry per leaf, sorted and joined with
// "; "; empty nested maps produce nothing. Nested keys are bracketed: {"a": {"b": 1}} gives "a[b]: 1".
// Sequences append "[]" to the path and join their elements with ", ";
// an empty sequence gives "path[]: []". Scalars give "path: value", nil
// prints as an empty value.
//
//	Stringify(map[string]any{"a": 1, "b": []string{"x", "y"}, "f": []int{}})
//	// a: 1; b[]: x, b[]: y; f[]: []
func Stringify(v any) string {
	return stringify(reflect.ValueOf(v), "")
}

func stringify(rv reflect.Value, ns string) string {
	for rv.IsValid() && (rv.Kind() == reflect.Interface || rv.Kind() == reflect.Pointer) {
		if rv.IsNil() {
			return scalar(ns, nil)
		}
		rv = rv.Elem()
	}
	if !rv.IsValid() {
		return scalar(ns, nil)
	}

	switch rv.Kind() {
	case reflect.Map:
		entries := make([]string, 0, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			k := fmt.Sprint(iter.Key().Interface())
			path := k
			if ns != "" {
				path = ns + "[" + k + "]"
			}
			if s := stringify(iter.Value(), path); s != "" {
				entries = append(entries, s)
			}
		}
		sort.Strings(entries)
		return strings.Join(entries, "; ")
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.Type().Elem().Kind() == reflect.Uint8 {
			return scalar(ns, string(rv.Bytes()))
		}
		path := ns + "[]"
		if rv.Len() == 0 {
			return path + ": []"
		}
		parts := make([]string, rv.Len())
		for i := range parts {
			parts[i] = stringify(rv.Index(i), path)
		}
		return strings.Join(parts, ", ")
	default:
		return scalar(ns, rv.Interface())
	}
}

func scalar(ns string, v any) string {
	if v == nil {
		return ns + ": "
	}
	return fmt.Sprintf("%s: %v", ns, v)
}
