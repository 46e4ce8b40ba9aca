package property_test

import (
	"bytes"
	"testing"

	"github.com/delaneyj/propertybindings/property"
	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBasicArea(t *testing.T) {
	rt := property.NewRuntime()
	width := property.From(rt, uint32(2))
	height := property.From(rt, uint32(0))
	area, err := property.FromBinding(rt, property.Func(func() uint32 {
		return width.Get() * height.Get()
	}))
	require.NoError(t, err)
	assert.Equal(t, uint32(0), area.Get())

	require.NoError(t, height.Set(4))
	assert.Equal(t, uint32(8), area.Get())
}

func TestNotify(t *testing.T) {
	rt := property.NewRuntime()
	calls := 0
	bar := property.From(rt, 2)
	foo := property.From(rt, 2)
	foo.OnNotify(func(int) { calls++ })

	require.NoError(t, foo.Set(3))
	assert.Equal(t, 1, calls)
	require.NoError(t, foo.Set(45))
	assert.Equal(t, 2, calls)

	// rebinding notifies even though the value does not change
	require.NoError(t, foo.SetBinding(property.Func(bar.Get)))
	assert.Equal(t, 3, calls)
	assert.Equal(t, 2, foo.Get())

	require.NoError(t, bar.Set(8))
	assert.Equal(t, 4, calls)
	assert.Equal(t, 8, foo.Get())
}

func TestNotifyReceivesNewValue(t *testing.T) {
	rt := property.NewRuntime()
	src := property.From(rt, "a")
	upper, err := property.FromBinding(rt, property.Func(func() string {
		return src.Get() + "!"
	}))
	require.NoError(t, err)

	var seen []string
	upper.OnNotify(func(v string) { seen = append(seen, v) })
	require.NoError(t, src.Set("b"))
	require.NoError(t, src.Set("c"))
	assert.Equal(t, []string{"b!", "c!"}, seen)
}

type rectangle2 struct {
	Width  *property.Property[uint32]
	Height *property.Property[uint32]
	Area   *property.Property[uint32]
}

// newRectangle2 mirrors a declared record: width defaults to 2, height to
// zero, and area is bound to width * height through weak handles.
func newRectangle2(t *testing.T, rt *property.Runtime) *rectangle2 {
	r := &rectangle2{
		Width:  property.From(rt, uint32(2)),
		Height: property.From(rt, uint32(0)),
		Area:   property.From(rt, uint32(0)),
	}
	ww, wh := r.Width.AsWeak(), r.Height.AsWeak()
	err := r.Area.SetBinding(property.Describe("Rectangle2.area", func() (uint32, bool) {
		w, ok := ww.Get()
		if !ok {
			return 0, false
		}
		h, ok := wh.Get()
		if !ok {
			return 0, false
		}
		return w * h, true
	}))
	require.NoError(t, err)
	return r
}

func TestRectangle2(t *testing.T) {
	rt := property.NewRuntime()
	rec := newRectangle2(t, rt)

	require.NoError(t, rec.Height.Set(4))
	assert.Equal(t, uint32(8), rec.Area.Get())
	require.NoError(t, rec.Height.Set(8))
	assert.Equal(t, uint32(16), rec.Area.Get())
}

func TestRectangle2CrossBinding(t *testing.T) {
	rt := property.NewRuntime()
	rec := newRectangle2(t, rt)
	ww := rec.Width.AsWeak()
	err := rec.Height.SetBinding(property.Describe("Rectangle2.height", func() (uint32, bool) {
		w, ok := ww.Get()
		return w * 3, ok
	}))
	require.NoError(t, err)
	assert.Equal(t, uint32(3*2*2), rec.Area.Get())

	require.NoError(t, rec.Width.Set(8))
	assert.Equal(t, uint32(3*8*8), rec.Area.Get())
}

func TestChain(t *testing.T) {
	//  a
	//  |
	//  b
	//  |
	//  c
	rt := property.NewRuntime()
	a := property.From(rt, 1)
	b, err := property.FromBinding(rt, property.Func(func() int { return a.Get() * 10 }))
	require.NoError(t, err)
	c, err := property.FromBinding(rt, property.Func(func() int { return b.Get() + 1 }))
	require.NoError(t, err)
	assert.Equal(t, 11, c.Get())

	require.NoError(t, a.Set(4))
	assert.Equal(t, 40, b.Get())
	assert.Equal(t, 41, c.Get())
}

func TestDiamondSettles(t *testing.T) {
	//     A
	//   /   \
	//  B     C
	//   \   /
	//     D
	rt := property.NewRuntime()
	a := property.From(rt, "a")
	b, err := property.FromBinding(rt, property.Func(a.Get))
	require.NoError(t, err)
	c, err := property.FromBinding(rt, property.Func(a.Get))
	require.NoError(t, err)

	callCount := 0
	d, err := property.FromBinding(rt, property.Func(func() string {
		callCount++
		return b.Get() + " " + c.Get()
	}))
	require.NoError(t, err)
	assert.Equal(t, "a a", d.Get())
	assert.Equal(t, 1, callCount)

	// eager propagation re-runs D once per changed parent
	require.NoError(t, a.Set("aa"))
	assert.Equal(t, "aa aa", d.Get())
	assert.Equal(t, 3, callCount)
}

func TestDynamicDependencies(t *testing.T) {
	rt := property.NewRuntime()
	useA := property.From(rt, true)
	a := property.From(rt, 1)
	b := property.From(rt, 2)

	runs := 0
	c, err := property.FromBinding(rt, property.Func(func() int {
		runs++
		if useA.Get() {
			return a.Get()
		}
		return b.Get()
	}))
	require.NoError(t, err)
	assert.Equal(t, 1, c.Get())
	assert.Equal(t, 2, c.UpstreamCount())
	assert.Equal(t, 1, a.DependentCount())
	assert.Equal(t, 0, b.DependentCount())

	require.NoError(t, useA.Set(false))
	assert.Equal(t, 2, c.Get())
	assert.Equal(t, 2, c.UpstreamCount())
	assert.Equal(t, 0, a.DependentCount())
	assert.Equal(t, 1, b.DependentCount())

	runs = 0
	require.NoError(t, a.Set(100))
	assert.Equal(t, 0, runs, "stale edge to a must not survive")
	require.NoError(t, b.Set(7))
	assert.Equal(t, 1, runs)
	assert.Equal(t, 7, c.Get())
}

func TestRepeatedReadsLinkOnce(t *testing.T) {
	rt := property.NewRuntime()
	a := property.From(rt, 3)
	c, err := property.FromBinding(rt, property.Func(func() int {
		return a.Get() + a.Get() + a.Get()
	}))
	require.NoError(t, err)
	assert.Equal(t, 9, c.Get())
	assert.Equal(t, 1, a.DependentCount())
	assert.Equal(t, 1, c.UpstreamCount())
	assert.Equal(t, 1, rt.Stats().Edges)

	require.NoError(t, a.Set(1))
	assert.Equal(t, 3, c.Get())
	assert.Equal(t, 1, a.DependentCount())
}

func TestTopLevelReadDoesNotTrack(t *testing.T) {
	rt := property.NewRuntime()
	a := property.From(rt, 1)
	a.Get()
	assert.Equal(t, 0, a.DependentCount())
	assert.Equal(t, 0, rt.Stats().Edges)
}

func TestPeekDoesNotTrack(t *testing.T) {
	rt := property.NewRuntime()
	a := property.From(rt, 1)
	b := property.From(rt, 2)
	c, err := property.FromBinding(rt, property.Func(func() int {
		return a.Get() + b.Peek()
	}))
	require.NoError(t, err)
	assert.Equal(t, 1, c.UpstreamCount())

	require.NoError(t, b.Set(10))
	assert.Equal(t, 3, c.Get())
	require.NoError(t, a.Set(2))
	assert.Equal(t, 12, c.Get())
}

func TestSetDemotesToLeaf(t *testing.T) {
	rt := property.NewRuntime()
	a := property.From(rt, 1)
	b, err := property.FromBinding(rt, property.Func(func() int { return a.Get() * 2 }))
	require.NoError(t, err)
	assert.Equal(t, 1, b.UpstreamCount())

	require.NoError(t, b.Set(50))
	assert.Equal(t, 0, b.UpstreamCount())
	assert.Equal(t, 0, a.DependentCount())

	require.NoError(t, a.Set(3))
	assert.Equal(t, 50, b.Get())
}

func TestSetBindingNilKeepsValue(t *testing.T) {
	rt := property.NewRuntime()
	a := property.From(rt, 1)
	b, err := property.FromBinding(rt, property.Func(func() int { return a.Get() + 1 }))
	require.NoError(t, err)

	require.NoError(t, b.SetBinding(nil))
	assert.Equal(t, 2, b.Get())
	assert.Equal(t, 0, a.DependentCount())
}

func TestDispose(t *testing.T) {
	rt := property.NewRuntime()
	a := property.From(rt, 1)
	b, err := property.FromBinding(rt, property.Func(func() int { return a.Get() + 1 }))
	require.NoError(t, err)
	c, err := property.FromBinding(rt, property.Func(func() int { return b.Get() + 1 }))
	require.NoError(t, err)
	require.Equal(t, 2, rt.Stats().Edges)

	b.Dispose()
	assert.Equal(t, 0, a.DependentCount())
	assert.Equal(t, 0, c.UpstreamCount())
	assert.Equal(t, 0, rt.Stats().Edges)
	assert.Equal(t, 2, rt.Stats().Cells)
	assert.ErrorIs(t, b.Set(4), property.ErrDisposed)

	require.NoError(t, a.Set(10))
	assert.Equal(t, 3, c.Get())
}

func TestSubscriberCanWriteOtherProperty(t *testing.T) {
	rt := property.NewRuntime()
	a := property.From(rt, 1)
	mirror := property.From(rt, 0)
	a.OnNotify(func(v int) {
		require.NoError(t, mirror.Set(v))
	})
	require.NoError(t, a.Set(5))
	assert.Equal(t, 5, mirror.Get())
}

func TestDescription(t *testing.T) {
	rt := property.NewRuntime()
	a := property.From(rt, 1)
	assert.Equal(t, "", a.Description())

	b, err := property.FromBinding(rt, property.DescribeFunc("double", func() int { return a.Get() * 2 }))
	require.NoError(t, err)
	assert.Equal(t, "double", b.Description())

	c, err := property.FromBinding(rt, property.Const(7))
	require.NoError(t, err)
	assert.Equal(t, 7, c.Get())
	assert.Equal(t, "", c.Description())
}

func TestStatsCounting(t *testing.T) {
	rt := property.NewRuntime()
	a := property.From(rt, 1)
	_, err := property.FromBinding(rt, property.Func(func() int { return a.Get() }))
	require.NoError(t, err)
	before := rt.Stats()

	require.NoError(t, a.Set(2))
	after := rt.Stats()
	assert.Equal(t, before.Evaluations+1, after.Evaluations)
	assert.Equal(t, before.Propagations+2, after.Propagations)
}

func TestNestedWriteDoesNotDuplicateEdges(t *testing.T) {
	//  p ---> a  (a writes q while evaluating)
	//  |
	//  +----> b <--- q
	rt := property.NewRuntime()
	p := property.From(rt, 1)
	q := property.From(rt, 0)
	_, err := property.FromBinding(rt, property.Func(func() int { return p.Get() + q.Get() }))
	require.NoError(t, err)

	aRuns := 0
	a, err := property.FromBinding(rt, property.Func(func() int {
		aRuns++
		v := p.Get()
		assert.NoError(t, q.Set(q.Peek()+1))
		return v + p.Get()
	}))
	require.NoError(t, err)
	assert.Equal(t, 2, a.Get())
	assert.Equal(t, 2, p.DependentCount())
	assert.Equal(t, 1, a.UpstreamCount())
	assert.Equal(t, 3, rt.Stats().Edges)

	aRuns = 0
	require.NoError(t, p.Set(5))
	assert.Equal(t, 1, aRuns)
	assert.Equal(t, 10, a.Get())
	assert.Equal(t, 2, p.DependentCount())
}

func TestWithLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := hclog.New(&hclog.LoggerOptions{
		Name:   "property",
		Level:  hclog.Trace,
		Output: &buf,
	})
	opts := []property.RuntimeOption{property.WithLogger(logger)}
	rt := property.NewRuntime(opts...)

	a := property.From(rt, 1)
	_, err := property.FromBinding(rt, property.DescribeFunc("double", func() int { return a.Get() * 2 }))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "evaluate")
	assert.Contains(t, buf.String(), "double")
}
