// Package trace observes host calls without influencing them.
//
// A Hook receives one event per invoked syscall: the symbol, the decoded
// arguments by name, and the outcome. Hooks are strictly side-effect-only;
// the dispatcher swallows hook panics and never lets a hook change an
// argument, a result, or control flow.
package trace

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Arg is one decoded syscall argument as seen by a hook.
type Arg struct {
	Name  string
	Value uint64
}

// Hook observes completed syscall invocations. HostCall runs after the
// handler body, whether it succeeded or trapped.
type Hook interface {
	HostCall(symbol string, args []Arg, result string)
}

// Format renders one strace-style line for a host call:
//
//	set_storage(key_ptr: 16, key_len: 3) = 42
func Format(symbol string, args []Arg, result string) string {
	var b strings.Builder
	b.WriteString(symbol)
	b.WriteByte('(')
	for i, a := range args {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s: %d", a.Name, a.Value)
	}
	b.WriteString(") = ")
	b.WriteString(result)
	b.WriteByte('\n')
	return b.String()
}

// ZapHook logs host calls through a zap logger at debug level.
type ZapHook struct {
	log *zap.Logger
}

// NewZapHook wraps a zap logger as a Hook. A nil logger degrades to a
// no-op logger.
func NewZapHook(log *zap.Logger) *ZapHook {
	if log == nil {
		log = zap.NewNop()
	}
	return &ZapHook{log: log}
}

func (h *ZapHook) HostCall(symbol string, args []Arg, result string) {
	fields := make([]zap.Field, 0, len(args)+2)
	fields = append(fields, zap.String("syscall", symbol))
	for _, a := range args {
		fields = append(fields, zap.Uint64(a.Name, a.Value))
	}
	fields = append(fields, zap.String("result", result))
	h.log.Debug("host call", fields...)
}

// FuncHook adapts a plain function to the Hook interface.
type FuncHook func(symbol string, args []Arg, result string)

func (f FuncHook) HostCall(symbol string, args []Arg, result string) {
	f(symbol, args, result)
}
