/*
Package maybe provides an optional-value container in the spirit of ML-family
option types. A Maybe either holds a value (Just) or holds nothing (Nothing),
making "value may be absent" explicit in API signatures without resorting to
pointer sentinels.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2022–2023 Norbert Pillmayer <norbert@pillmayer.com>

*/
package maybe

// Maybe optionally holds a value of type T. The zero value is Nothing.
type Maybe[T any] struct {
	value T
	tag   bool
}

// Just wraps a present value.
func Just[T any](x T) Maybe[T] {
	return Maybe[T]{value: x, tag: true}
}

// Nothing creates an absent value.
func Nothing[T any]() Maybe[T] {
	return Maybe[T]{}
}

// IsJust returns true if m holds a value.
func (m Maybe[T]) IsJust() bool {
	return m.tag
}

// Unwrap returns the contained value together with a flag signalling presence.
// For Nothing, the zero value for T is returned with found=false.
func (m Maybe[T]) Unwrap() (T, bool) {
	return m.value, m.tag
}

// WithDefault returns the contained value, or def if m is Nothing.
func (m Maybe[T]) WithDefault(def T) T {
	if m.tag {
		return m.value
	}
	return def
}

// Map applies f to the contained value, if present.
func (m Maybe[T]) Map(f func(T) T) Maybe[T] {
	if m.tag {
		return Just(f(m.value))
	}
	return m
}

// AndThen chains a Maybe-producing function onto m, short-circuiting on
// Nothing. It is a free function because Go methods cannot introduce an
// additional type parameter.
func AndThen[T, S any](f func(T) Maybe[S], m Maybe[T]) Maybe[S] {
	if v, ok := m.Unwrap(); ok {
		return f(v)
	}
	return Nothing[S]()
}
