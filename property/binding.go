package property

// Binding computes a property's value. Run may decline to produce a value
// (ok == false), typically because a weak upstream handle no longer
// resolves; the property then keeps its previous value and nothing is
// propagated.
type Binding[T any] interface {
	Run() (value T, ok bool)
	Description() string
}

type funcBinding[T any] func() T

func (f funcBinding[T]) Run() (T, bool) { return f(), true }
func (funcBinding[T]) Description() string { return "" }

type optionBinding[T any] func() (T, bool)

func (f optionBinding[T]) Run() (T, bool) {
	if f == nil {
		var zero T
		return zero, false
	}
	return f()
}
func (optionBinding[T]) Description() string { return "" }

type describedBinding[T any] struct {
	desc string
	fn   func() (T, bool)
}

func (b describedBinding[T]) Run() (T, bool) {
	return optionBinding[T](b.fn).Run()
}

func (b describedBinding[T]) Description() string { return b.desc }

// Func binds to a closure that always yields a value.
func Func[T any](fn func() T) Binding[T] {
	return funcBinding[T](fn)
}

// Option binds to a closure that may report "not ready".
func Option[T any](fn func() (T, bool)) Binding[T] {
	return optionBinding[T](fn)
}

// Describe is Option with a description used in cycle reports and graph dumps.
func Describe[T any](desc string, fn func() (T, bool)) Binding[T] {
	return describedBinding[T]{desc: desc, fn: fn}
}

func DescribeFunc[T any](desc string, fn func() T) Binding[T] {
	return describedBinding[T]{desc: desc, fn: func() (T, bool) { return fn(), true }}
}

// Const binds to a fixed value.
func Const[T any](v T) Binding[T] {
	return funcBinding[T](func() T { return v })
}
