// Package geometry holds the position and size properties of an item.
package geometry

import "github.com/delaneyj/propertybindings/property"

// Geometry is the position and size of an item, each held in its own
// property so layouts and anchors can bind to them individually.
type Geometry struct {
	X      *property.Property[float64]
	Y      *property.Property[float64]
	Width  *property.Property[float64]
	Height *property.Property[float64]
}

func New(rt *property.Runtime) *Geometry {
	return &Geometry{
		X:      property.From(rt, 0.0),
		Y:      property.From(rt, 0.0),
		Width:  property.From(rt, 0.0),
		Height: property.From(rt, 0.0),
	}
}

func (g *Geometry) Left() float64   { return g.X.Get() }
func (g *Geometry) Top() float64    { return g.Y.Get() }
func (g *Geometry) Right() float64  { return g.X.Get() + g.Width.Get() }
func (g *Geometry) Bottom() float64 { return g.Y.Get() + g.Height.Get() }

func (g *Geometry) HorizontalCenter() float64 { return g.X.Get() + g.Width.Get()/2 }
func (g *Geometry) VerticalCenter() float64   { return g.Y.Get() + g.Height.Get()/2 }

// Resize sets both dimensions, as a host does when its window changes size.
func (g *Geometry) Resize(width, height float64) error {
	if err := g.Width.Set(width); err != nil {
		return err
	}
	return g.Height.Set(height)
}

// Dispose removes all four properties from the graph.
func (g *Geometry) Dispose() {
	g.X.Dispose()
	g.Y.Dispose()
	g.Width.Dispose()
	g.Height.Dispose()
}
