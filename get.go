package wirebox

import (
	"fmt"

	"github.com/vk/wirebox/ident"
)

// As returns the product stored under id downcast to T. A missing product
// or a stored value of a different type is a reportable error, never a
// panic.
func As[T any](c *Container, id ident.ID) (T, error) {
	var zero T
	boxed, err := c.Get(id)
	if err != nil {
		return zero, err
	}
	v, ok := boxed.(T)
	if !ok {
		return zero, &ProductTypeError{Product: id, Want: typeName[T](), Got: fmt.Sprintf("%T", boxed)}
	}
	return v, nil
}

// Get returns the built product keyed by T's type.
func Get[T any](c *Container) (T, error) {
	return As[T](c, ident.Of[T]())
}

// GetNamed returns the built product keyed by name, downcast to T.
func GetNamed[T any](c *Container, name string) (T, error) {
	return As[T](c, ident.Named(name))
}

// MustGet is Get for wiring code where a missing product is a programmer
// error worth a panic, e.g. after a Build that was checked for errors.
func MustGet[T any](c *Container) T {
	v, err := Get[T](c)
	if err != nil {
		panic(err)
	}
	return v
}
