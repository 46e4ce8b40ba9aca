package property

import (
	"errors"
	"strings"
)

var ErrDisposed = errors.New("property disposed")

// CycleError reports a binding that, directly or through other properties,
// depends on itself. Chain lists the properties in propagation order,
// starting and ending with the one that was re-entered.
type CycleError struct {
	Chain []string
}

func (e *CycleError) Error() string {
	return "circular dependency found: " + strings.Join(e.Chain, " -> ")
}

func withFrame(err error, label string) error {
	var ce *CycleError
	if errors.As(err, &ce) {
		ce.Chain = append([]string{label}, ce.Chain...)
	}
	return err
}
