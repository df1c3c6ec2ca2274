package wirebox

import (
	"fmt"

	"github.com/vk/wirebox/ident"
)

// lateProduct downcasts the stored boxed product before a typed mutator
// runs. With WithName this can legitimately fail when the named product
// was built by a factory of a different type.
func lateProduct[T any](id ident.ID, boxed any) (T, error) {
	v, ok := boxed.(T)
	if !ok {
		var zero T
		return zero, &ProductTypeError{Product: id, Want: typeName[T](), Got: fmt.Sprintf("%T", boxed)}
	}
	return v, nil
}

// LateInit registers a mutation with no late requirements for the product
// keyed by T (or by WithName). Products are conventionally pointers, so
// the mutation is visible through the stored reference.
func LateInit[T any](c *Container, mutate func(T) error, opts ...ProvideOption) error {
	o := applyOpts(opts)
	product := productID[T](o)
	boxed := func(cur any, args []any) (any, error) {
		p, err := lateProduct[T](product, cur)
		if err != nil {
			return nil, err
		}
		if err := mutate(p); err != nil {
			return nil, err
		}
		return p, nil
	}
	return c.RegisterLateInit(product, nil, boxed)
}

// LateInit1 registers a mutation requiring one late dependency.
func LateInit1[T, A any](c *Container, mutate func(T, A) error, opts ...ProvideOption) error {
	o := applyOpts(opts)
	product := productID[T](o)
	requires := []ident.ID{ident.Of[A]()}
	boxed := func(cur any, args []any) (any, error) {
		p, err := lateProduct[T](product, cur)
		if err != nil {
			return nil, err
		}
		a, err := arg[A](product, args, 0, true)
		if err != nil {
			return nil, err
		}
		if err := mutate(p, a); err != nil {
			return nil, err
		}
		return p, nil
	}
	return c.RegisterLateInit(product, requires, boxed)
}

// LateInit2 registers a mutation requiring two late dependencies.
func LateInit2[T, A, B any](c *Container, mutate func(T, A, B) error, opts ...ProvideOption) error {
	o := applyOpts(opts)
	product := productID[T](o)
	requires := []ident.ID{ident.Of[A](), ident.Of[B]()}
	boxed := func(cur any, args []any) (any, error) {
		p, err := lateProduct[T](product, cur)
		if err != nil {
			return nil, err
		}
		a, err := arg[A](product, args, 0, true)
		if err != nil {
			return nil, err
		}
		b, err := arg[B](product, args, 1, true)
		if err != nil {
			return nil, err
		}
		if err := mutate(p, a, b); err != nil {
			return nil, err
		}
		return p, nil
	}
	return c.RegisterLateInit(product, requires, boxed)
}

// LateInit3 registers a mutation requiring three late dependencies.
func LateInit3[T, A, B, C any](c *Container, mutate func(T, A, B, C) error, opts ...ProvideOption) error {
	o := applyOpts(opts)
	product := productID[T](o)
	requires := []ident.ID{ident.Of[A](), ident.Of[B](), ident.Of[C]()}
	boxed := func(cur any, args []any) (any, error) {
		p, err := lateProduct[T](product, cur)
		if err != nil {
			return nil, err
		}
		a, err := arg[A](product, args, 0, true)
		if err != nil {
			return nil, err
		}
		b, err := arg[B](product, args, 1, true)
		if err != nil {
			return nil, err
		}
		cc, err := arg[C](product, args, 2, true)
		if err != nil {
			return nil, err
		}
		if err := mutate(p, a, b, cc); err != nil {
			return nil, err
		}
		return p, nil
	}
	return c.RegisterLateInit(product, requires, boxed)
}

// LateInit4 registers a mutation requiring four late dependencies.
func LateInit4[T, A, B, C, D any](c *Container, mutate func(T, A, B, C, D) error, opts ...ProvideOption) error {
	o := applyOpts(opts)
	product := productID[T](o)
	requires := []ident.ID{ident.Of[A](), ident.Of[B](), ident.Of[C](), ident.Of[D]()}
	boxed := func(cur any, args []any) (any, error) {
		p, err := lateProduct[T](product, cur)
		if err != nil {
			return nil, err
		}
		a, err := arg[A](product, args, 0, true)
		if err != nil {
			return nil, err
		}
		b, err := arg[B](product, args, 1, true)
		if err != nil {
			return nil, err
		}
		cc, err := arg[C](product, args, 2, true)
		if err != nil {
			return nil, err
		}
		d, err := arg[D](product, args, 3, true)
		if err != nil {
			return nil, err
		}
		if err := mutate(p, a, b, cc, d); err != nil {
			return nil, err
		}
		return p, nil
	}
	return c.RegisterLateInit(product, requires, boxed)
}

// LateInit5 registers a mutation requiring five late dependencies.
func LateInit5[T, A, B, C, D, E any](c *Container, mutate func(T, A, B, C, D, E) error, opts ...ProvideOption) error {
	o := applyOpts(opts)
	product := productID[T](o)
	requires := []ident.ID{ident.Of[A](), ident.Of[B](), ident.Of[C](), ident.Of[D](), ident.Of[E]()}
	boxed := func(cur any, args []any) (any, error) {
		p, err := lateProduct[T](product, cur)
		if err != nil {
			return nil, err
		}
		a, err := arg[A](product, args, 0, true)
		if err != nil {
			return nil, err
		}
		b, err := arg[B](product, args, 1, true)
		if err != nil {
			return nil, err
		}
		cc, err := arg[C](product, args, 2, true)
		if err != nil {
			return nil, err
		}
		d, err := arg[D](product, args, 3, true)
		if err != nil {
			return nil, err
		}
		e, err := arg[E](product, args, 4, true)
		if err != nil {
			return nil, err
		}
		if err := mutate(p, a, b, cc, d, e); err != nil {
			return nil, err
		}
		return p, nil
	}
	return c.RegisterLateInit(product, requires, boxed)
}

// LateInit6 registers a mutation requiring six late dependencies, the
// supported positional maximum.
func LateInit6[T, A, B, C, D, E, F any](c *Container, mutate func(T, A, B, C, D, E, F) error, opts ...ProvideOption) error {
	o := applyOpts(opts)
	product := productID[T](o)
	requires := []ident.ID{ident.Of[A](), ident.Of[B](), ident.Of[C](), ident.Of[D](), ident.Of[E](), ident.Of[F]()}
	boxed := func(cur any, args []any) (any, error) {
		p, err := lateProduct[T](product, cur)
		if err != nil {
			return nil, err
		}
		a, err := arg[A](product, args, 0, true)
		if err != nil {
			return nil, err
		}
		b, err := arg[B](product, args, 1, true)
		if err != nil {
			return nil, err
		}
		cc, err := arg[C](product, args, 2, true)
		if err != nil {
			return nil, err
		}
		d, err := arg[D](product, args, 3, true)
		if err != nil {
			return nil, err
		}
		e, err := arg[E](product, args, 4, true)
		if err != nil {
			return nil, err
		}
		f, err := arg[F](product, args, 5, true)
		if err != nil {
			return nil, err
		}
		if err := mutate(p, a, b, cc, d, e, f); err != nil {
			return nil, err
		}
		return p, nil
	}
	return c.RegisterLateInit(product, requires, boxed)
}
