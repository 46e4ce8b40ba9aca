// Package items provides plain items and containers laying out children
// through property bindings.
package items

import (
	"fmt"

	"github.com/delaneyj/propertybindings/anchors"
	"github.com/delaneyj/propertybindings/geometry"
	"github.com/delaneyj/propertybindings/property"
)

type GeometryItem interface {
	Geometry() *geometry.Geometry
}

// Item is a bare rectangle.
type Item struct {
	geometry *geometry.Geometry
}

func NewItem(rt *property.Runtime) *Item {
	return &Item{geometry: geometry.New(rt)}
}

func (it *Item) Geometry() *geometry.Geometry { return it.geometry }

func (it *Item) Dispose() { it.geometry.Dispose() }

// ColumnLayout stacks its children vertically. Its height is the sum of the
// children's heights and its width the widest child.
type ColumnLayout struct {
	geometry *geometry.Geometry
	children []GeometryItem
}

func NewColumnLayout(rt *property.Runtime) *ColumnLayout {
	return &ColumnLayout{geometry: geometry.New(rt)}
}

func (l *ColumnLayout) Geometry() *geometry.Geometry { return l.geometry }

func (l *ColumnLayout) Children() []GeometryItem { return l.children }

func (l *ColumnLayout) AddChild(child GeometryItem) error {
	l.children = append(l.children, child)
	return l.relayout()
}

func (l *ColumnLayout) Dispose() { l.geometry.Dispose() }

func (l *ColumnLayout) relayout() error {
	widths := make([]property.WeakProperty[float64], len(l.children))
	heights := make([]property.WeakProperty[float64], len(l.children))
	for i, c := range l.children {
		widths[i] = c.Geometry().Width.AsWeak()
		heights[i] = c.Geometry().Height.AsWeak()
	}

	err := l.geometry.Height.SetBinding(property.DescribeFunc("column height", func() float64 {
		var sum float64
		for _, h := range heights {
			v, _ := h.Get()
			sum += v
		}
		return sum
	}))
	if err != nil {
		return err
	}
	err = l.geometry.Width.SetBinding(property.DescribeFunc("column width", func() float64 {
		var widest float64
		for _, w := range widths {
			if v, ok := w.Get(); ok && v > widest {
				widest = v
			}
		}
		return widest
	}))
	if err != nil {
		return err
	}

	for i := 1; i < len(l.children); i++ {
		prev := l.children[i-1].Geometry()
		y, h := prev.Y.AsWeak(), prev.Height.AsWeak()
		top := property.Describe(fmt.Sprintf("column top %d", i), func() (float64, bool) {
			yv, ok := y.Get()
			if !ok {
				return 0, false
			}
			hv, ok := h.Get()
			if !ok {
				return 0, false
			}
			return yv + hv, true
		})
		err := anchors.New().
			Left(property.Const(0.0)).
			Top(top).
			Apply(l.children[i].Geometry())
		if err != nil {
			return fmt.Errorf("anchor child %d: %w", i, err)
		}
	}
	return nil
}
