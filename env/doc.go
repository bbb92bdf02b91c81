// Package env defines host environments: the catalog of syscalls a guest
// may import and the dispatcher that executes them.
//
// # Building a table
//
// A host environment is declared as a list of [Descriptor] values and
// compiled once, at startup, into an immutable [Table]:
//
//	table, err := env.NewTable([]env.Descriptor{
//	    {
//	        Symbol: "get_storage_size",
//	        Stable: true,
//	        Params: []abi.Param{
//	            {Name: "key_ptr", Type: abi.U32},
//	            {Name: "key_len", Type: abi.U32},
//	        },
//	        Returns: abi.ReturnU64,
//	        Handler: getStorageSize,
//	    },
//	}, env.WithUnstable())
//
// Construction fails fast on any descriptor that could misbehave at run
// time: disallowed parameter types, unknown return kinds, duplicate
// symbols, missing handlers. After that the table never changes, which is
// what makes it safe to share across VM instances running on separate
// goroutines.
//
// # Dispatching
//
// Table.Dispatch drives one guest call through a fixed sequence: gas
// sync-in, base charge, symbol lookup, argument decode, mutation guard,
// handler invocation, optional tracing, result encoding, gas sync-out.
// Each step is a possible exit; any trap after sync-in still syncs gas
// back out so the executor's register stays truthful.
//
// # Stability
//
// Descriptors marked Stable form the frozen external ABI. Unstable ones
// are excluded from the table unless WithUnstable is given, and are
// always excluded from the stable-only symbol list that import
// validators consume.
package env
