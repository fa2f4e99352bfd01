package utils

import (
	"reflect"
)

func Cast[T, O any](o O) T {
	var i any = o
	return i.(T)
}

func Pointer[T any](t T) *T {
	return &t
}

func TypeOf[T any]() reflect.Type {
	var t T
	return reflect.TypeOf(&t).Elem()
}

// ConvertSlice converts the elements of a slice to another
// (interface) type.
func ConvertSlice[D, S any](in []S) []D {
	if TypeOf[D]() == TypeOf[S]() {
		return Cast[[]D](in)
	}
	r := make([]D, 0, len(in))
	for _, e := range in {
		r = append(r, Cast[D](e))
	}
	return r
}

func TransformSlice[E any, A ~[]E, T any](in A, m func(E) T) []T {
	r := make([]T, len(in))
	for i, v := range in {
		r[i] = m(v)
	}
	return r
}
