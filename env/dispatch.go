package env

import (
	"fmt"
	"strconv"

	"github.com/caffeineduck/ecall/abi"
	"github.com/caffeineduck/ecall/gas"
	"github.com/caffeineduck/ecall/trace"
	"github.com/caffeineduck/ecall/trap"
)

// Instance is the dispatcher's view of the executing VM: guest memory,
// the gas register, and the caller-saved argument registers at the
// moment of the call.
type Instance interface {
	abi.Memory

	// Gas returns the executor's gas register.
	Gas() int64

	// SetGas writes the executor's gas register.
	SetGas(int64)

	// ReadInputRegs returns the argument registers. The slice must hold
	// at least the convention's register count.
	ReadInputRegs() []uint64
}

// Ext is the execution-context capability handlers and the dispatcher
// share: gas accounting, the read-only flag, and the debug buffer.
// Everything behind it is owned by a single call context and never
// shared across threads.
type Ext interface {
	// GasMeter returns the call's gas meter.
	GasMeter() *gas.Meter

	// ReadOnly reports whether state mutation is denied for this
	// execution.
	ReadOnly() bool

	// AppendDebugBuffer appends a message to the context's debug
	// buffer. Sinks must tolerate arbitrary content; failures are the
	// sink's problem, never the call's.
	AppendDebugBuffer(msg string)
}

// Call is the per-invocation context passed to handlers. It is created
// at call entry, destroyed at call exit, and owned exclusively by the
// calling goroutine.
type Call struct {
	Ext    Ext
	Memory abi.Memory
	Regs   []uint64
}

// Dispatch runs one guest call against the table: gas sync-in, base
// charge, lookup, decode, mutation guard, invoke, trace, encode, gas
// sync-out. The returned pointer is nil for Unit syscalls. Any failure
// is a *trap.Trap.
//
// A trap after sync-in still writes gas back to the instance; a sync-in
// failure aborts immediately and leaves the gas register untouched.
func (t *Table) Dispatch(inst Instance, ext Ext, symbol string) (*uint64, error) {
	meter := ext.GasMeter()
	if err := meter.SyncFromExecutor(inst.Gas()); err != nil {
		return nil, err
	}

	ret, err := t.call(inst, ext, symbol)

	gasLeft, syncErr := meter.SyncToExecutor()
	if syncErr != nil {
		if err == nil {
			err = syncErr
		}
		return nil, err
	}
	inst.SetGas(gasLeft)

	if err != nil {
		return nil, err
	}
	return ret, nil
}

// call covers every dispatch state between the two gas syncs.
func (t *Table) call(inst Instance, ext Ext, symbol string) (*uint64, error) {
	// Charged before lookup: an unresolved symbol is not a free probe.
	if err := ext.GasMeter().Charge(t.cfg.BaseCost); err != nil {
		return nil, err
	}

	d, ok := t.byName[symbol]
	if !ok {
		return nil, trap.New(trap.InvalidSyscall)
	}

	regs := inst.ReadInputRegs()
	args, err := abi.DecodeArgs(t.cfg.Convention, d.Params, regs, inst)
	if err != nil {
		return nil, trap.From(err)
	}

	if d.Mutating && ext.ReadOnly() {
		return nil, trap.New(trap.StateChangeDenied)
	}

	call := &Call{Ext: ext, Memory: inst, Regs: regs}
	v, herr := d.Handler(call, args)

	t.traceCall(ext, d, args, v, herr)

	if herr != nil {
		return nil, trap.From(herr)
	}
	if d.Returns == abi.ReturnUnit {
		return nil, nil
	}
	return &v, nil
}

func (t *Table) traceCall(ext Ext, d *Descriptor, args []uint64, v uint64, herr error) {
	if !t.cfg.strace && len(t.cfg.hooks) == 0 {
		return
	}

	targs := make([]trace.Arg, len(args))
	for i := range args {
		name := d.Params[i].Name
		if name == "" {
			name = fmt.Sprintf("a%d", i)
		}
		targs[i] = trace.Arg{Name: name, Value: args[i]}
	}

	var result string
	switch {
	case herr != nil:
		result = trap.From(herr).Error()
	case d.Returns == abi.ReturnUnit:
		result = "ok"
	default:
		result = strconv.FormatUint(v, 10)
	}

	if t.cfg.strace {
		observe(func() {
			ext.AppendDebugBuffer(trace.Format(d.Symbol, targs, result))
		})
	}
	for _, h := range t.cfg.hooks {
		observe(func() {
			h.HostCall(d.Symbol, targs, result)
		})
	}
}

// observe runs a tracing side effect. Tracing must never alter control
// flow, so panics are swallowed here.
func observe(fn func()) {
	defer func() {
		_ = recover()
	}()
	fn()
}
