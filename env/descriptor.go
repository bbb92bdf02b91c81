package env

import (
	"github.com/caffeineduck/ecall/abi"
	"github.com/caffeineduck/ecall/gas"
	"github.com/caffeineduck/ecall/trace"
)

// Handler is the body of a host function. It receives the per-call
// context and the decoded arguments, one uint64 per declared parameter,
// each already truncated to its declared width. The returned value is
// ignored for ReturnUnit syscalls. Errors are coerced into the trap
// taxonomy by the dispatcher.
type Handler func(call *Call, args []uint64) (uint64, error)

// Descriptor declares one host function. Descriptors are plain values;
// they only become callable once compiled into a Table.
type Descriptor struct {
	// Symbol is the import name guests call this function by.
	Symbol string

	// Doc is a short human-readable description used by documentation
	// tooling. Optional.
	Doc string

	// Stable marks the function as part of the frozen external ABI.
	// Unstable functions are only reachable in tables built with
	// WithUnstable.
	Stable bool

	// Mutating marks functions that change persistent state. They trap
	// with StateChangeDenied under a read-only execution context,
	// before the handler runs.
	Mutating bool

	// Guard, if non-nil, decides at table-build time whether the
	// function is included. Excluded functions are indistinguishable
	// from unknown symbols.
	Guard func(Config) bool

	// Params are the declared parameters in order. Only fixed-width
	// unsigned integer types are permitted.
	Params []abi.Param

	// Returns is the result kind handed back to the guest.
	Returns abi.ReturnKind

	// Handler is the function body.
	Handler Handler
}

// Config is the build configuration a table is compiled under. Guard
// predicates receive it to decide inclusion.
type Config struct {
	// IncludeUnstable admits descriptors not marked Stable.
	IncludeUnstable bool

	// Features enables named feature gates consulted by guards.
	Features map[string]bool

	// Convention is the register calling convention.
	Convention abi.Convention

	// BaseCost is charged before symbol lookup on every call attempt.
	BaseCost gas.Cost

	strace bool
	hooks  []trace.Hook
}

// Feature reports whether a named feature gate is enabled.
func (c Config) Feature(name string) bool {
	return c.Features[name]
}

// DefaultBaseCost is the flat per-call overhead charged for crossing the
// host boundary, in internal gas units.
const DefaultBaseCost gas.Cost = 100
