// Package wasmhost binds a dispatch table to wazero so WebAssembly
// guests can import syscalls by name.
//
// Each build-included syscall becomes one exported host function. Up to
// the convention's register count, every declared parameter is one i64
// import parameter; longer parameter lists collapse to a single i64
// holding the packed-record address, exactly as the register ABI does.
// Unit syscalls export no result, everything else one i64.
//
// Traps abort the guest: the host function panics with the trap, which
// the wazero runtime surfaces as the call's error.
package wasmhost

import (
	"context"
	"fmt"
	"math"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"

	"github.com/caffeineduck/ecall/abi"
	"github.com/caffeineduck/ecall/env"
)

// Env is the execution context one guest call runs under: the
// dispatcher's Ext plus the executor-visible gas register, which wazero
// does not model natively.
type Env interface {
	env.Ext

	// Gas returns the gas register value at call entry.
	Gas() int64

	// SetGas receives the gas register value at call exit.
	SetGas(int64)
}

// Provider supplies the execution context for each host call. It runs
// once per call on the calling goroutine.
type Provider func(ctx context.Context, mod api.Module) Env

// Memory adapts wazero guest memory to the dispatcher's bulk-read
// capability.
type Memory struct {
	mem api.Memory
}

// NewMemory wraps a wazero memory. A nil memory yields a Memory whose
// reads always fail, which is correct for modules without one.
func NewMemory(mem api.Memory) Memory {
	return Memory{mem: mem}
}

func (m Memory) ReadInto(addr uint64, buf []byte) error {
	if m.mem == nil {
		return fmt.Errorf("module has no memory")
	}
	if addr > math.MaxUint32 || uint64(len(buf)) > math.MaxUint32 {
		return fmt.Errorf("read of %d bytes at %#x exceeds 32-bit address space", len(buf), addr)
	}
	b, ok := m.mem.Read(uint32(addr), uint32(len(buf)))
	if !ok {
		return fmt.Errorf("read of %d bytes at %#x out of range", len(buf), addr)
	}
	copy(buf, b)
	return nil
}

// instance adapts one wazero host call to the dispatcher's VM view.
type instance struct {
	Memory
	env  Env
	regs []uint64
}

func (i *instance) Gas() int64              { return i.env.Gas() }
func (i *instance) SetGas(g int64)          { i.env.SetGas(g) }
func (i *instance) ReadInputRegs() []uint64 { return i.regs }

// Instantiate builds and instantiates a host module named moduleName
// exporting every syscall in the table.
func Instantiate(ctx context.Context, rt wazero.Runtime, moduleName string, table *env.Table, provider Provider) (api.Module, error) {
	if provider == nil {
		return nil, fmt.Errorf("instantiate %s: nil provider", moduleName)
	}

	conv := table.BuildConfig().Convention
	builder := rt.NewHostModuleBuilder(moduleName)

	for _, d := range table.Descriptors() {
		symbol := d.Symbol

		nparams := len(d.Params)
		if nparams > conv.RegisterArgs {
			// Packed-record calling convention: one pointer argument.
			nparams = 1
		}
		params := make([]api.ValueType, nparams)
		for i := range params {
			params[i] = api.ValueTypeI64
		}
		var results []api.ValueType
		if d.Returns != abi.ReturnUnit {
			results = []api.ValueType{api.ValueTypeI64}
		}

		fn := api.GoModuleFunc(func(ctx context.Context, mod api.Module, stack []uint64) {
			regs := make([]uint64, conv.RegisterArgs)
			copy(regs, stack[:nparams])

			e := provider(ctx, mod)
			inst := &instance{
				Memory: NewMemory(mod.Memory()),
				env:    e,
				regs:   regs,
			}

			ret, err := table.Dispatch(inst, e, symbol)
			if err != nil {
				panic(err)
			}
			if len(results) == 1 {
				if ret != nil {
					stack[0] = *ret
				} else {
					stack[0] = 0
				}
			}
		})

		builder.NewFunctionBuilder().
			WithGoModuleFunction(fn, params, results).
			Export(symbol)
	}

	return builder.Instantiate(ctx)
}
