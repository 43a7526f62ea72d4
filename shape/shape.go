// Package shape defines the closed set of drawable shapes and the factory
// that places them inside an arena.
package shape

import (
	"fmt"
	"strconv"
)

// Kind identifies a shape variant.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindCircle
	KindRectangle
	KindTriangle
)

var kindNames = [...]string{
	KindInvalid:   "INVALID",
	KindCircle:    "CIRCLE",
	KindRectangle: "RECT",
	KindTriangle:  "TRIANGLE",
}

// Kinds lists the valid kinds in HELP order.
var Kinds = []Kind{KindCircle, KindRectangle, KindTriangle}

// ParseKind maps a command keyword to its Kind. Keywords are case-sensitive.
func ParseKind(s string) (Kind, bool) {
	for _, k := range Kinds {
		if kindNames[k] == s {
			return k, true
		}
	}
	return KindInvalid, false
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// Arity returns the number of integer parameters the kind consumes.
func (k Kind) Arity() int {
	switch k {
	case KindCircle:
		return 3
	case KindRectangle:
		return 4
	case KindTriangle:
		return 6
	}
	return 0
}

// Usage returns the parameter names, as shown in command help.
func (k Kind) Usage() string {
	switch k {
	case KindCircle:
		return "x y radius"
	case KindRectangle:
		return "x y width height"
	case KindTriangle:
		return "x1 y1 x2 y2 x3 y3"
	}
	return ""
}

// Shape is implemented by *Circle, *Rectangle and *Triangle only.
// Values are immutable once constructed.
type Shape interface {
	Kind() Kind
	// AppendSVG appends the shape's SVG element (without a trailing
	// newline) to dst.
	AppendSVG(dst []byte) []byte
	fmt.Stringer

	shape()
}

// SVG returns the shape's SVG element.
func SVG(s Shape) string {
	return string(s.AppendSVG(nil))
}

// Circle is filled red.
type Circle struct {
	x, y, radius int
}

func (*Circle) shape()        {}
func (*Circle) Kind() Kind    { return KindCircle }
func (c *Circle) X() int      { return c.x }
func (c *Circle) Y() int      { return c.y }
func (c *Circle) Radius() int { return c.radius }

func (c *Circle) AppendSVG(dst []byte) []byte {
	dst = append(dst, `<circle cx="`...)
	dst = strconv.AppendInt(dst, int64(c.x), 10)
	dst = append(dst, `" cy="`...)
	dst = strconv.AppendInt(dst, int64(c.y), 10)
	dst = append(dst, `" r="`...)
	dst = strconv.AppendInt(dst, int64(c.radius), 10)
	return append(dst, `" fill="red"/>`...)
}

func (c *Circle) String() string {
	return fmt.Sprintf("CIRCLE %d %d %d", c.x, c.y, c.radius)
}

// Rectangle is filled blue.
type Rectangle struct {
	x, y, width, height int
}

func (*Rectangle) shape()        {}
func (*Rectangle) Kind() Kind    { return KindRectangle }
func (r *Rectangle) X() int      { return r.x }
func (r *Rectangle) Y() int      { return r.y }
func (r *Rectangle) Width() int  { return r.width }
func (r *Rectangle) Height() int { return r.height }

func (r *Rectangle) AppendSVG(dst []byte) []byte {
	dst = append(dst, `<rect x="`...)
	dst = strconv.AppendInt(dst, int64(r.x), 10)
	dst = append(dst, `" y="`...)
	dst = strconv.AppendInt(dst, int64(r.y), 10)
	dst = append(dst, `" width="`...)
	dst = strconv.AppendInt(dst, int64(r.width), 10)
	dst = append(dst, `" height="`...)
	dst = strconv.AppendInt(dst, int64(r.height), 10)
	return append(dst, `" fill="blue"/>`...)
}

func (r *Rectangle) String() string {
	return fmt.Sprintf("RECT %d %d %d %d", r.x, r.y, r.width, r.height)
}

// Triangle is filled yellow.
type Triangle struct {
	x1, y1, x2, y2, x3, y3 int
}

func (*Triangle) shape()     {}
func (*Triangle) Kind() Kind { return KindTriangle }

// Points returns the three vertices as x, y pairs.
func (t *Triangle) Points() [3][2]int {
	return [3][2]int{{t.x1, t.y1}, {t.x2, t.y2}, {t.x3, t.y3}}
}

func (t *Triangle) AppendSVG(dst []byte) []byte {
	dst = append(dst, `<polygon points="`...)
	for i, p := range t.Points() {
		if i > 0 {
			dst = append(dst, ' ')
		}
		dst = strconv.AppendInt(dst, int64(p[0]), 10)
		dst = append(dst, ',')
		dst = strconv.AppendInt(dst, int64(p[1]), 10)
	}
	return append(dst, `" fill="yellow"/>`...)
}

func (t *Triangle) String() string {
	return fmt.Sprintf("TRIANGLE %d %d %d %d %d %d", t.x1, t.y1, t.x2, t.y2, t.x3, t.y3)
}
