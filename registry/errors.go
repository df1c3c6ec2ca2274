package registry

import (
	"errors"
	"strconv"

	"github.com/vk/wirebox/ident"
)

// ErrZeroIdentity is returned when a record names the zero identity.
var ErrZeroIdentity = errors.New("registry: zero product identity")

// ErrNilBuildFunc is returned when a factory record carries no build
// function.
var ErrNilBuildFunc = errors.New("registry: nil build function")

// ErrNilMutateFunc is returned when a late-init record carries no mutate
// function.
var ErrNilMutateFunc = errors.New("registry: nil mutate function")

// DuplicateFactoryError is returned when a product already has a factory
// record. The first registration stays intact.
type DuplicateFactoryError struct {
	Product ident.ID
}

func (e *DuplicateFactoryError) Error() string {
	return "registry: factory already registered for " + e.Product.String()
}

// NoFactoryError is returned when a late-init is registered for a product
// that has no factory record.
type NoFactoryError struct {
	Product ident.ID
}

func (e *NoFactoryError) Error() string {
	return "registry: late-init registered before any factory for " + e.Product.String()
}

// DuplicateLateInitError is returned when a product already has a
// late-init record.
type DuplicateLateInitError struct {
	Product ident.ID
}

func (e *DuplicateLateInitError) Error() string {
	return "registry: late-init already registered for " + e.Product.String()
}

// TooManyRequirementsError is returned when a factory or late-init
// declares more than MaxRequirements positional requirements.
type TooManyRequirementsError struct {
	Product  ident.ID
	Count    int
	LateInit bool
}

func (e *TooManyRequirementsError) Error() string {
	what := "factory"
	if e.LateInit {
		what = "late-init"
	}
	return "registry: " + what + " for " + e.Product.String() + " declares " +
		strconv.Itoa(e.Count) + " requirements, maximum is " + strconv.Itoa(MaxRequirements)
}
