// Package ecall dispatches host-function calls from sandboxed guest
// code: syscalls are resolved by symbolic name, arguments are decoded
// from VM registers or packed guest-memory records, and every call is
// gas-metered and trapped uniformly.
//
// # Overview
//
// A host environment is a list of syscall descriptors (name, parameter
// list, return kind, stability, handler) compiled once into a dispatch
// table. The table drives each guest call through the same pipeline:
// gas sync-in, base charge, symbol lookup, argument decoding, mutation
// guard, handler invocation, tracing, gas sync-out. Failures surface as
// typed traps.
//
// # Basic Usage
//
//	table, _ := env.NewTable(storage.Functions())
//
//	// One call: inst is the executing VM, ext the execution context.
//	ret, err := table.Dispatch(inst, ext, "set_storage")
//
//	// The stable symbol list guest imports are validated against.
//	for _, sym := range table.Syscalls(false) {
//	    fmt.Println(sym)
//	}
//
// # Build Options
//
//	// Admit unstable syscalls and a feature-gated one.
//	table, _ := env.NewTable(storage.Functions(),
//	    env.WithUnstable(),
//	    env.WithFeature("benchmarks"))
//
//	// Trace every call into the debug buffer and a zap logger.
//	table, _ := env.NewTable(storage.Functions(),
//	    env.WithStrace(),
//	    env.WithTraceHook(trace.NewZapHook(logger)))
//
// # WASM Hosts
//
// The [wasmhost] package exports a compiled table as a wazero host
// module, so real guest modules import the syscalls directly:
//
//	mod, _ := wasmhost.Instantiate(ctx, rt, "seal0", table, provider)
//
// See the [env], [abi], [gas], [trap], [trace], and [storage] packages
// for detailed API documentation.
package ecall
