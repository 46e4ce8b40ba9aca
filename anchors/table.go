package anchors

import "github.com/delaneyj/propertybindings/property"

type (
	singleFunc func(begin, size *property.Property[float64], b property.Binding[float64]) error
	pairFunc   func(begin, size *property.Property[float64], first, second property.Binding[float64]) error
)

type source func() (float64, bool)

// derive builds a binding computing f(x(), y()), not ready if either input
// is not ready.
func derive(desc string, x, y source, f func(x, y float64) float64) property.Binding[float64] {
	return property.Describe(desc, func() (float64, bool) {
		xv, ok := x()
		if !ok {
			return 0, false
		}
		yv, ok := y()
		if !ok {
			return 0, false
		}
		return f(xv, yv), true
	})
}

func minus(x, y float64) float64     { return x - y }
func minusHalf(x, y float64) float64 { return x - y/2 }
func twiceDiff(x, y float64) float64 { return (x - y) * 2 }

var singles = [...]singleFunc{
	tagBegin: func(begin, _ *property.Property[float64], b property.Binding[float64]) error {
		return begin.SetBinding(b)
	},
	tagEnd: func(begin, size *property.Property[float64], end property.Binding[float64]) error {
		return begin.SetBinding(derive("anchor end", end.Run, size.AsWeak().Get, minus))
	},
	tagCenter: func(begin, size *property.Property[float64], center property.Binding[float64]) error {
		return begin.SetBinding(derive("anchor center", center.Run, size.AsWeak().Get, minusHalf))
	},
	tagSize: func(_, size *property.Property[float64], b property.Binding[float64]) error {
		return size.SetBinding(b)
	},
}

var pairs = map[[2]tag]pairFunc{
	{tagBegin, tagEnd}: func(begin, size *property.Property[float64], b, end property.Binding[float64]) error {
		if err := begin.SetBinding(b); err != nil {
			return err
		}
		return size.SetBinding(derive("anchor begin+end", end.Run, begin.AsWeak().Get, minus))
	},
	{tagBegin, tagCenter}: func(begin, size *property.Property[float64], b, center property.Binding[float64]) error {
		if err := begin.SetBinding(b); err != nil {
			return err
		}
		return size.SetBinding(derive("anchor begin+center", center.Run, begin.AsWeak().Get, twiceDiff))
	},
	{tagBegin, tagSize}: func(begin, size *property.Property[float64], b, s property.Binding[float64]) error {
		if err := begin.SetBinding(b); err != nil {
			return err
		}
		return size.SetBinding(s)
	},
	{tagEnd, tagCenter}: func(begin, size *property.Property[float64], end, center property.Binding[float64]) error {
		err := begin.SetBinding(derive("anchor end+center", center.Run, end.Run, func(c, e float64) float64 {
			return 2*c - e
		}))
		if err != nil {
			return err
		}
		return size.SetBinding(derive("anchor end+center", end.Run, center.Run, twiceDiff))
	},
	{tagEnd, tagSize}: func(begin, size *property.Property[float64], end, s property.Binding[float64]) error {
		if err := size.SetBinding(s); err != nil {
			return err
		}
		return begin.SetBinding(derive("anchor end+size", end.Run, size.AsWeak().Get, minus))
	},
	{tagCenter, tagSize}: func(begin, size *property.Property[float64], center, s property.Binding[float64]) error {
		if err := size.SetBinding(s); err != nil {
			return err
		}
		return begin.SetBinding(derive("anchor center+size", center.Run, size.AsWeak().Get, minusHalf))
	},
}
