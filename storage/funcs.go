package storage

import (
	"errors"

	"github.com/caffeineduck/ecall/abi"
	"github.com/caffeineduck/ecall/env"
	"github.com/caffeineduck/ecall/trap"
)

// SizeSentinel is returned by size-reporting syscalls when the key does
// not exist. Real sizes are bounded well below it.
const SizeSentinel = ^uint64(0)

// CodeSuccess is the ReturnCode value for a successful call.
const CodeSuccess uint64 = 0

// Ext is what the storage syscalls require of the execution context, on
// top of the dispatcher's own needs.
type Ext interface {
	env.Ext
	Store() Store
}

// Functions returns the storage host environment: the full descriptor
// list for compiling into a dispatch table.
func Functions() []env.Descriptor {
	return []env.Descriptor{
		{
			Symbol:   "set_storage",
			Doc:      "Store a value under a key, returning the length of the replaced value or SizeSentinel.",
			Stable:   true,
			Mutating: true,
			Params: []abi.Param{
				{Name: "key_ptr", Type: abi.U32},
				{Name: "key_len", Type: abi.U32},
				{Name: "value_ptr", Type: abi.U32},
				{Name: "value_len", Type: abi.U32},
			},
			Returns: abi.ReturnU64,
			Handler: setStorage,
		},
		{
			Symbol:   "clear_storage",
			Doc:      "Delete a key, returning the length of the removed value or SizeSentinel.",
			Stable:   true,
			Mutating: true,
			Params: []abi.Param{
				{Name: "key_ptr", Type: abi.U32},
				{Name: "key_len", Type: abi.U32},
			},
			Returns: abi.ReturnU64,
			Handler: clearStorage,
		},
		{
			Symbol: "contains_storage",
			Doc:    "Report whether a key exists (1) or not (0).",
			Stable: true,
			Params: []abi.Param{
				{Name: "key_ptr", Type: abi.U32},
				{Name: "key_len", Type: abi.U32},
			},
			Returns: abi.ReturnU32,
			Handler: containsStorage,
		},
		{
			Symbol: "get_storage_size",
			Doc:    "Return the stored value's length for a key, or SizeSentinel if absent.",
			Stable: true,
			Params: []abi.Param{
				{Name: "key_ptr", Type: abi.U32},
				{Name: "key_len", Type: abi.U32},
			},
			Returns: abi.ReturnU64,
			Handler: getStorageSize,
		},
		{
			Symbol: "debug_message",
			Doc:    "Append a UTF-8 message to the execution context's debug buffer.",
			Params: []abi.Param{
				{Name: "str_ptr", Type: abi.U32},
				{Name: "str_len", Type: abi.U32},
			},
			Returns: abi.ReturnCode,
			Handler: debugMessage,
		},
		{
			Symbol:  "gas_left",
			Doc:     "Return the gas remaining in the current call's meter.",
			Returns: abi.ReturnU64,
			Handler: gasLeft,
		},
		{
			Symbol: "noop",
			Doc:    "Do nothing. Exists to measure pure host-call overhead.",
			Guard:  func(c env.Config) bool { return c.Feature("benchmarks") },
			Params: []abi.Param{
				{Name: "rounds", Type: abi.U64},
			},
			Returns: abi.ReturnUnit,
			Handler: func(call *env.Call, args []uint64) (uint64, error) { return 0, nil },
		},
	}
}

var errNoStore = errors.New("execution context provides no store")

func storeOf(call *env.Call) (Store, error) {
	ext, ok := call.Ext.(Ext)
	if !ok {
		return nil, errNoStore
	}
	return ext.Store(), nil
}

// readBytes pulls a guest-memory range referenced by a (ptr, len)
// argument pair.
func readBytes(call *env.Call, ptr, length uint64) ([]byte, error) {
	buf := make([]byte, length)
	if err := call.Memory.ReadInto(ptr, buf); err != nil {
		return nil, trap.Wrap(trap.MemoryAccessFailure, err)
	}
	return buf, nil
}

func setStorage(call *env.Call, args []uint64) (uint64, error) {
	store, err := storeOf(call)
	if err != nil {
		return 0, err
	}
	key, err := readBytes(call, args[0], args[1])
	if err != nil {
		return 0, err
	}
	value, err := readBytes(call, args[2], args[3])
	if err != nil {
		return 0, err
	}
	prevLen, existed, err := store.Set(key, value)
	if err != nil {
		return 0, err
	}
	if !existed {
		return SizeSentinel, nil
	}
	return uint64(prevLen), nil
}

func clearStorage(call *env.Call, args []uint64) (uint64, error) {
	store, err := storeOf(call)
	if err != nil {
		return 0, err
	}
	key, err := readBytes(call, args[0], args[1])
	if err != nil {
		return 0, err
	}
	prevLen, existed := store.Delete(key)
	if !existed {
		return SizeSentinel, nil
	}
	return uint64(prevLen), nil
}

func containsStorage(call *env.Call, args []uint64) (uint64, error) {
	store, err := storeOf(call)
	if err != nil {
		return 0, err
	}
	key, err := readBytes(call, args[0], args[1])
	if err != nil {
		return 0, err
	}
	if store.Contains(key) {
		return 1, nil
	}
	return 0, nil
}

func getStorageSize(call *env.Call, args []uint64) (uint64, error) {
	store, err := storeOf(call)
	if err != nil {
		return 0, err
	}
	key, err := readBytes(call, args[0], args[1])
	if err != nil {
		return 0, err
	}
	v, ok := store.Get(key)
	if !ok {
		return SizeSentinel, nil
	}
	return uint64(len(v)), nil
}

func debugMessage(call *env.Call, args []uint64) (uint64, error) {
	msg, err := readBytes(call, args[0], args[1])
	if err != nil {
		return 0, err
	}
	call.Ext.AppendDebugBuffer(string(msg))
	return CodeSuccess, nil
}

func gasLeft(call *env.Call, args []uint64) (uint64, error) {
	return call.Ext.GasMeter().Left(), nil
}
