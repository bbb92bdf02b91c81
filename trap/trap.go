// Package trap defines the typed failures a host call can abort with.
//
// Every failing host call surfaces as a *Trap carrying one of the Code
// values below. Traps abort the in-flight call only; the VM executor
// decides whether the whole guest invocation dies with it.
package trap

import "fmt"

// Code identifies why a host call was aborted.
type Code int

const (
	// InvalidSyscall means the requested symbol is not in the dispatch
	// table. Functions excluded by a build guard look exactly like
	// unknown symbols.
	InvalidSyscall Code = iota + 1

	// OutOfGas means the gas meter underflowed during sync-in, the base
	// charge, or handler execution.
	OutOfGas

	// StateChangeDenied means a mutating syscall was invoked under a
	// read-only execution context.
	StateChangeDenied

	// MemoryAccessFailure means a guest-memory read required to decode
	// arguments was out of bounds or otherwise failed.
	MemoryAccessFailure

	// HandlerError wraps any handler-specific failure.
	HandlerError
)

func (c Code) String() string {
	switch c {
	case InvalidSyscall:
		return "invalid syscall"
	case OutOfGas:
		return "out of gas"
	case StateChangeDenied:
		return "state change denied"
	case MemoryAccessFailure:
		return "memory access failure"
	case HandlerError:
		return "handler error"
	default:
		return fmt.Sprintf("trap(%d)", int(c))
	}
}

// Trap is the error type returned to the VM executor when a call aborts.
type Trap struct {
	Code Code
	Err  error // underlying cause, may be nil
}

func (t *Trap) Error() string {
	if t.Err != nil {
		return fmt.Sprintf("%s: %v", t.Code, t.Err)
	}
	return t.Code.String()
}

func (t *Trap) Unwrap() error { return t.Err }

// Is reports whether target is a *Trap with the same code, so traps
// compare with errors.Is against sentinel values like trap.New(trap.OutOfGas).
func (t *Trap) Is(target error) bool {
	o, ok := target.(*Trap)
	return ok && o.Code == t.Code
}

// New returns a trap with the given code and no underlying cause.
func New(code Code) *Trap {
	return &Trap{Code: code}
}

// Wrap returns a trap with the given code wrapping err.
func Wrap(code Code, err error) *Trap {
	return &Trap{Code: code, Err: err}
}

// From coerces an arbitrary handler error into the trap taxonomy.
// Existing traps pass through unchanged; anything else becomes a
// HandlerError.
func From(err error) *Trap {
	if t, ok := err.(*Trap); ok {
		return t
	}
	return &Trap{Code: HandlerError, Err: err}
}

// IsCode reports whether err is a trap with the given code.
func IsCode(err error, code Code) bool {
	t, ok := err.(*Trap)
	return ok && t.Code == code
}
