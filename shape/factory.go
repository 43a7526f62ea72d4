package shape

import (
	"errors"
	"fmt"

	"github.com/pavanmanishd/polygeo/arena"
)

var (
	// ErrUnknownKind is returned for a kind keyword that names no shape.
	ErrUnknownKind = errors.New("unknown shape type")

	// ErrMissingParam is returned when the parameter source runs dry
	// before the shape is fully specified.
	ErrMissingParam = errors.New("missing shape parameter")
)

// Params yields the integer parameters of a single ADD command.
type Params interface {
	// Int returns the next parameter.
	Int() (int, error)
	// Discard drops whatever is left of the current command.
	Discard()
}

// IntParams is a Params backed by already-parsed integers.
type IntParams struct {
	vals []int
}

// NewIntParams returns a Params yielding vals in order.
func NewIntParams(vals ...int) *IntParams {
	return &IntParams{vals: vals}
}

func (p *IntParams) Int() (int, error) {
	if len(p.vals) == 0 {
		return 0, ErrMissingParam
	}
	v := p.vals[0]
	p.vals = p.vals[1:]
	return v, nil
}

func (p *IntParams) Discard() {
	p.vals = nil
}

// Len returns the number of unread parameters.
func (p *IntParams) Len() int {
	return len(p.vals)
}

// Footprint returns the bytes a shape of kind k occupies in an arena,
// excluding alignment padding.
func (k Kind) Footprint() int {
	switch k {
	case KindCircle:
		return arena.SizeOf[Circle]()
	case KindRectangle:
		return arena.SizeOf[Rectangle]()
	case KindTriangle:
		return arena.SizeOf[Triangle]()
	}
	return 0
}

// New places a shape of the given kind in a and fills it from p.
//
// Storage is reserved before any parameter is read, so when a is full
// the parameters are left untouched for the caller. An unknown kind
// discards the rest of p and allocates nothing. If p runs short after
// the reservation, the reserved bytes stay committed.
func New(a arena.Allocator, kind Kind, p Params) (Shape, error) {
	switch kind {
	case KindCircle:
		c, err := arena.New[Circle](a)
		if err != nil {
			return nil, err
		}
		if err := readInts(p, &c.x, &c.y, &c.radius); err != nil {
			return nil, fmt.Errorf("%s: %w", kind, err)
		}
		return c, nil
	case KindRectangle:
		r, err := arena.New[Rectangle](a)
		if err != nil {
			return nil, err
		}
		if err := readInts(p, &r.x, &r.y, &r.width, &r.height); err != nil {
			return nil, fmt.Errorf("%s: %w", kind, err)
		}
		return r, nil
	case KindTriangle:
		t, err := arena.New[Triangle](a)
		if err != nil {
			return nil, err
		}
		if err := readInts(p, &t.x1, &t.y1, &t.x2, &t.y2, &t.x3, &t.y3); err != nil {
			return nil, fmt.Errorf("%s: %w", kind, err)
		}
		return t, nil
	default:
		p.Discard()
		return nil, ErrUnknownKind
	}
}

// Parse is New for a kind keyword.
func Parse(a arena.Allocator, keyword string, p Params) (Shape, error) {
	kind, ok := ParseKind(keyword)
	if !ok {
		p.Discard()
		return nil, fmt.Errorf("%w %q", ErrUnknownKind, keyword)
	}
	return New(a, kind, p)
}

func readInts(p Params, dst ...*int) error {
	for _, d := range dst {
		v, err := p.Int()
		if err != nil {
			return err
		}
		*d = v
	}
	return nil
}
