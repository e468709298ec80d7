package engine

import (
	"paramrun/internal/domain"
)

// TestFunc is a test function together with the number of arguments it takes
type TestFunc struct {
	arity  int
	invoke func(domain.Tuple) error
}

// Arity returns the number of positional arguments
func (f TestFunc) Arity() int { return f.arity }

// Valid reports whether f wraps a function
func (f TestFunc) Valid() bool { return f.invoke != nil }

// Func wraps a function taking the raw tuple
func Func(arity int, fn func(domain.Tuple) error) TestFunc {
	return TestFunc{arity: arity, invoke: fn}
}

// Unary adapts a one-parameter function; the argument is converted with domain.As
func Unary[A any](fn func(A) error) TestFunc {
	return TestFunc{arity: 1, invoke: func(t domain.Tuple) error {
		a, err := domain.As[A](t[0])
		if err != nil {
			return err
		}
		return fn(a)
	}}
}

// Binary adapts a two-parameter function
func Binary[A, B any](fn func(A, B) error) TestFunc {
	return TestFunc{arity: 2, invoke: func(t domain.Tuple) error {
		a, err := domain.As[A](t[0])
		if err != nil {
			return err
		}
		b, err := domain.As[B](t[1])
		if err != nil {
			return err
		}
		return fn(a, b)
	}}
}

// Ternary adapts a three-parameter function
func Ternary[A, B, C any](fn func(A, B, C) error) TestFunc {
	return TestFunc{arity: 3, invoke: func(t domain.Tuple) error {
		a, err := domain.As[A](t[0])
		if err != nil {
			return err
		}
		b, err := domain.As[B](t[1])
		if err != nil {
			return err
		}
		c, err := domain.As[C](t[2])
		if err != nil {
			return err
		}
		return fn(a, b, c)
	}}
}
