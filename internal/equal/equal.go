// Package equal implements the value comparisons shared by the reactive
// runtime and the renderer.
//
// Two notions of equality are used:
//   - Strict: identity for reference-like values (pointers, maps, slices,
//     funcs) and == for comparable values. NaN is never strictly equal to
//     anything, including itself.
//   - Same: Strict, except that NaN equals NaN. Change detection uses Same so
//     that writing NaN over NaN is not a change.
package equal

import (
	"math"
	"reflect"
)

// IsNaN reports whether v is a float32 or float64 NaN.
func IsNaN(v any) bool {
	switch f := v.(type) {
	case float64:
		return math.IsNaN(f)
	case float32:
		return math.IsNaN(float64(f))
	}
	return false
}

// Same reports whether a and b hold the same value, treating NaN as equal
// to NaN.
func Same(a, b any) bool {
	if IsNaN(a) && IsNaN(b) {
		return true
	}
	return Strict(a, b)
}

// Changed reports whether writing b over a counts as a change.
func Changed(a, b any) bool {
	return !Same(a, b)
}

// Strict reports whether a and b are identical.
func Strict(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	va := reflect.ValueOf(a)
	vb := reflect.ValueOf(b)
	if va.Type() != vb.Type() {
		return false
	}

	// Fast path: most values are comparable
	if va.Comparable() {
		return a == b
	}

	switch va.Kind() {
	case reflect.Slice:
		return va.Len() == vb.Len() && va.UnsafePointer() == vb.UnsafePointer()
	case reflect.Map:
		return va.UnsafePointer() == vb.UnsafePointer()
	case reflect.Func:
		// Closures cannot be told apart reliably.
		return false
	}
	return reflect.DeepEqual(a, b)
}
