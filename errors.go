package wirebox

import (
	"strconv"
	"strings"

	"github.com/vk/wirebox/ident"
)

// MissingRequirementError is returned by Finalize (and therefore Build)
// when a record requires an identity that was never registered.
type MissingRequirementError struct {
	Requirement ident.ID
	RequestedBy ident.ID
	LateInit    bool
}

func (e *MissingRequirementError) Error() string {
	what := "requirement"
	if e.LateInit {
		what = "late requirement"
	}
	return "wirebox: " + what + " " + e.Requirement.String() + " of " +
		e.RequestedBy.String() + " is not registered"
}

// CycleError is returned by Build when topological sorting fails. Cycles
// holds the complete set of elementary cycles in the offending graph,
// each as an ordered identity sequence ending where it began.
type CycleError struct {
	Cycles   [][]ident.ID
	LateInit bool
}

func (e *CycleError) Error() string {
	var sb strings.Builder
	sb.WriteString("wirebox: dependency cycles detected")
	if e.LateInit {
		sb.WriteString(" in late initialization")
	}
	for i, cycle := range e.Cycles {
		if i == 0 {
			sb.WriteString(": ")
		} else {
			sb.WriteString("; ")
		}
		for j, id := range cycle {
			if j > 0 {
				sb.WriteString(" -> ")
			}
			sb.WriteString(id.String())
		}
	}
	return sb.String()
}

// ArgumentTypeError is returned when a positional argument fails its
// downcast at dispatch time: the stored requirement value does not have
// the static type the construction or mutation function declared.
type ArgumentTypeError struct {
	Product  ident.ID
	Index    int
	Want     string
	Got      string
	LateInit bool
}

func (e *ArgumentTypeError) Error() string {
	what := "requirement"
	if e.LateInit {
		what = "late requirement"
	}
	return "wirebox: " + what + " " + strconv.Itoa(e.Index) + " of " + e.Product.String() +
		" has mismatching type: want " + e.Want + ", got " + e.Got
}

// NotBuiltError is returned by Get for an identity that has no stored
// product.
type NotBuiltError struct {
	Product ident.ID
}

func (e *NotBuiltError) Error() string {
	return "wirebox: product " + e.Product.String() + " has not been built"
}

// ProductTypeError is returned when a stored product does not have the
// static type the caller asked for.
type ProductTypeError struct {
	Product ident.ID
	Want    string
	Got     string
}

func (e *ProductTypeError) Error() string {
	return "wirebox: product " + e.Product.String() + " has mismatching type: want " +
		e.Want + ", got " + e.Got
}

// InternalError reports a broken engine invariant: a lookup that the
// topological order guaranteed to succeed came up empty. It indicates a
// bug in the container itself, not a registration mistake.
type InternalError struct {
	Product ident.ID
	Cause   string
}

func (e *InternalError) Error() string {
	return "wirebox: internal invariant violated for " + e.Product.String() + ": " + e.Cause
}
