package wirebox

import (
	"fmt"
	"reflect"

	"github.com/vk/wirebox/ident"
)

// ProvideOption adjusts a single Provide or LateInit registration.
type ProvideOption func(*provideOpts)

type provideOpts struct {
	name string
	kind Kind
}

// WithName keys the product by an explicit name instead of its static
// type, letting multiple products of the same type coexist.
func WithName(name string) ProvideOption {
	return func(o *provideOpts) { o.name = name }
}

// WithKind tags the product's factory kind. Defaults to KindFactory.
func WithKind(kind Kind) ProvideOption {
	return func(o *provideOpts) { o.kind = kind }
}

func applyOpts(opts []ProvideOption) provideOpts {
	var o provideOpts
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func productID[T any](o provideOpts) ident.ID {
	if o.name != "" {
		return ident.Named(o.name)
	}
	return ident.Of[T]()
}

func typeName[T any]() string {
	return reflect.TypeOf((*T)(nil)).Elem().String()
}

// arg downcasts one positional boxed argument to its declared static
// type. The mismatch error is the dispatch-time type check the container
// guarantees on every build step.
func arg[A any](product ident.ID, args []any, index int, late bool) (A, error) {
	var zero A
	if index >= len(args) {
		return zero, &InternalError{Product: product, Cause: fmt.Sprintf("positional argument %d missing", index)}
	}
	v, ok := args[index].(A)
	if !ok {
		return zero, &ArgumentTypeError{
			Product:  product,
			Index:    index,
			Want:     typeName[A](),
			Got:      fmt.Sprintf("%T", args[index]),
			LateInit: late,
		}
	}
	return v, nil
}

// Provide registers a factory with no requirements. The product is keyed
// by T unless WithName overrides it.
func Provide[T any](c *Container, build func() (T, error), opts ...ProvideOption) error {
	o := applyOpts(opts)
	boxed := func(args []any) (any, error) {
		return build()
	}
	return c.RegisterFactory(productID[T](o), nil, boxed, o.kind)
}

// Provide1 registers a factory requiring one product, keyed by A's type.
func Provide1[T, A any](c *Container, build func(A) (T, error), opts ...ProvideOption) error {
	o := applyOpts(opts)
	product := productID[T](o)
	requires := []ident.ID{ident.Of[A]()}
	boxed := func(args []any) (any, error) {
		a, err := arg[A](product, args, 0, false)
		if err != nil {
			return nil, err
		}
		return build(a)
	}
	return c.RegisterFactory(product, requires, boxed, o.kind)
}

// Provide2 registers a factory requiring two products.
func Provide2[T, A, B any](c *Container, build func(A, B) (T, error), opts ...ProvideOption) error {
	o := applyOpts(opts)
	product := productID[T](o)
	requires := []ident.ID{ident.Of[A](), ident.Of[B]()}
	boxed := func(args []any) (any, error) {
		a, err := arg[A](product, args, 0, false)
		if err != nil {
			return nil, err
		}
		b, err := arg[B](product, args, 1, false)
		if err != nil {
			return nil, err
		}
		return build(a, b)
	}
	return c.RegisterFactory(product, requires, boxed, o.kind)
}

// Provide3 registers a factory requiring three products.
func Provide3[T, A, B, C any](c *Container, build func(A, B, C) (T, error), opts ...ProvideOption) error {
	o := applyOpts(opts)
	product := productID[T](o)
	requires := []ident.ID{ident.Of[A](), ident.Of[B](), ident.Of[C]()}
	boxed := func(args []any) (any, error) {
		a, err := arg[A](product, args, 0, false)
		if err != nil {
			return nil, err
		}
		b, err := arg[B](product, args, 1, false)
		if err != nil {
			return nil, err
		}
		cc, err := arg[C](product, args, 2, false)
		if err != nil {
			return nil, err
		}
		return build(a, b, cc)
	}
	return c.RegisterFactory(product, requires, boxed, o.kind)
}

// Provide4 registers a factory requiring four products.
func Provide4[T, A, B, C, D any](c *Container, build func(A, B, C, D) (T, error), opts ...ProvideOption) error {
	o := applyOpts(opts)
	product := productID[T](o)
	requires := []ident.ID{ident.Of[A](), ident.Of[B](), ident.Of[C](), ident.Of[D]()}
	boxed := func(args []any) (any, error) {
		a, err := arg[A](product, args, 0, false)
		if err != nil {
			return nil, err
		}
		b, err := arg[B](product, args, 1, false)
		if err != nil {
			return nil, err
		}
		cc, err := arg[C](product, args, 2, false)
		if err != nil {
			return nil, err
		}
		d, err := arg[D](product, args, 3, false)
		if err != nil {
			return nil, err
		}
		return build(a, b, cc, d)
	}
	return c.RegisterFactory(product, requires, boxed, o.kind)
}

// Provide5 registers a factory requiring five products.
func Provide5[T, A, B, C, D, E any](c *Container, build func(A, B, C, D, E) (T, error), opts ...ProvideOption) error {
	o := applyOpts(opts)
	product := productID[T](o)
	requires := []ident.ID{ident.Of[A](), ident.Of[B](), ident.Of[C](), ident.Of[D](), ident.Of[E]()}
	boxed := func(args []any) (any, error) {
		a, err := arg[A](product, args, 0, false)
		if err != nil {
			return nil, err
		}
		b, err := arg[B](product, args, 1, false)
		if err != nil {
			return nil, err
		}
		cc, err := arg[C](product, args, 2, false)
		if err != nil {
			return nil, err
		}
		d, err := arg[D](product, args, 3, false)
		if err != nil {
			return nil, err
		}
		e, err := arg[E](product, args, 4, false)
		if err != nil {
			return nil, err
		}
		return build(a, b, cc, d, e)
	}
	return c.RegisterFactory(product, requires, boxed, o.kind)
}

// Provide6 registers a factory requiring six products, the supported
// positional maximum.
func Provide6[T, A, B, C, D, E, F any](c *Container, build func(A, B, C, D, E, F) (T, error), opts ...ProvideOption) error {
	o := applyOpts(opts)
	product := productID[T](o)
	requires := []ident.ID{ident.Of[A](), ident.Of[B](), ident.Of[C](), ident.Of[D](), ident.Of[E](), ident.Of[F]()}
	boxed := func(args []any) (any, error) {
		a, err := arg[A](product, args, 0, false)
		if err != nil {
			return nil, err
		}
		b, err := arg[B](product, args, 1, false)
		if err != nil {
			return nil, err
		}
		cc, err := arg[C](product, args, 2, false)
		if err != nil {
			return nil, err
		}
		d, err := arg[D](product, args, 3, false)
		if err != nil {
			return nil, err
		}
		e, err := arg[E](product, args, 4, false)
		if err != nil {
			return nil, err
		}
		f, err := arg[F](product, args, 5, false)
		if err != nil {
			return nil, err
		}
		return build(a, b, cc, d, e, f)
	}
	return c.RegisterFactory(product, requires, boxed, o.kind)
}
