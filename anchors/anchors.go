// Package anchors turns partial edge constraints on an item (left/right,
// center, width and their vertical counterparts) into bindings on the
// item's position and size properties.
package anchors

import (
	"errors"
	"fmt"

	"github.com/delaneyj/propertybindings/geometry"
	"github.com/delaneyj/propertybindings/property"
)

var (
	ErrTooManyAnchors  = errors.New("at most two anchors per axis")
	ErrDuplicateAnchor = errors.New("anchor set twice")
)

type tag uint8

// Tags are ordered; a pair is always stored lowest tag first.
const (
	tagBegin tag = iota
	tagEnd
	tagCenter
	tagSize
)

func (t tag) String() string {
	switch t {
	case tagBegin:
		return "begin"
	case tagEnd:
		return "end"
	case tagCenter:
		return "center"
	case tagSize:
		return "size"
	default:
		return fmt.Sprintf("tag(%d)", uint8(t))
	}
}

type element struct {
	tag     tag
	binding property.Binding[float64]
}

type axis struct {
	name  string
	elems []element
	err   error
}

func (a *axis) add(t tag, b property.Binding[float64]) {
	if a.err != nil {
		return
	}
	for _, e := range a.elems {
		if e.tag == t {
			a.err = fmt.Errorf("%s %s: %w", a.name, t, ErrDuplicateAnchor)
			return
		}
	}
	if len(a.elems) == 2 {
		a.err = fmt.Errorf("%s %s: %w", a.name, t, ErrTooManyAnchors)
		return
	}
	a.elems = append(a.elems, element{tag: t, binding: b})
	if len(a.elems) == 2 && a.elems[0].tag > a.elems[1].tag {
		a.elems[0], a.elems[1] = a.elems[1], a.elems[0]
	}
}

func (a *axis) apply(begin, size *property.Property[float64]) error {
	if a.err != nil {
		return a.err
	}
	switch len(a.elems) {
	case 0:
		return nil
	case 1:
		e := a.elems[0]
		return singles[e.tag](begin, size, e.binding)
	default:
		first, second := a.elems[0], a.elems[1]
		fn, ok := pairs[[2]tag{first.tag, second.tag}]
		if !ok {
			return fmt.Errorf("%s %s+%s: unsupported anchor pair", a.name, first.tag, second.tag)
		}
		return fn(begin, size, first.binding, second.binding)
	}
}

// Anchor collects up to two anchors per axis. Errors from misuse are
// reported by Apply.
type Anchor struct {
	h axis
	v axis
}

func New() *Anchor {
	return &Anchor{
		h: axis{name: "horizontal"},
		v: axis{name: "vertical"},
	}
}

func (a *Anchor) Left(b property.Binding[float64]) *Anchor {
	a.h.add(tagBegin, b)
	return a
}

func (a *Anchor) Right(b property.Binding[float64]) *Anchor {
	a.h.add(tagEnd, b)
	return a
}

func (a *Anchor) HorizontalCenter(b property.Binding[float64]) *Anchor {
	a.h.add(tagCenter, b)
	return a
}

func (a *Anchor) Width(b property.Binding[float64]) *Anchor {
	a.h.add(tagSize, b)
	return a
}

func (a *Anchor) Top(b property.Binding[float64]) *Anchor {
	a.v.add(tagBegin, b)
	return a
}

func (a *Anchor) Bottom(b property.Binding[float64]) *Anchor {
	a.v.add(tagEnd, b)
	return a
}

func (a *Anchor) VerticalCenter(b property.Binding[float64]) *Anchor {
	a.v.add(tagCenter, b)
	return a
}

func (a *Anchor) Height(b property.Binding[float64]) *Anchor {
	a.v.add(tagSize, b)
	return a
}

// Apply binds g.X/g.Width from the horizontal anchors and g.Y/g.Height from
// the vertical ones. An axis without anchors leaves its properties alone.
func (a *Anchor) Apply(g *geometry.Geometry) error {
	if a.h.err != nil {
		return a.h.err
	}
	if a.v.err != nil {
		return a.v.err
	}
	if err := a.h.apply(g.X, g.Width); err != nil {
		return err
	}
	return a.v.apply(g.Y, g.Height)
}
