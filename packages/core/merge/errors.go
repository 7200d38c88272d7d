package merge

import "fmt"

// AppendError reports an append that cannot be applied: the target has no
// current value and no default, or the current and new value kinds are
// incompatible.
type AppendError struct {
	Source string
	Key    string
	Reason string
}

func (e *AppendError) Error() string {
	return fmt.Sprintf("cannot append in %s: key %q: %s", e.Source, e.Key, e.Reason)
}
