// Package abi defines the calling convention between guest code and host
// functions: which primitive types may cross the boundary, how arguments
// travel through the VM's registers, and how an over-long parameter list
// is packed into a guest-memory record.
//
// # Allowed types
//
// Syscall parameters are restricted to fixed-width unsigned integers
// (u8, u16, u32, u64). The restriction is load-bearing: decoded bytes come
// from untrusted guest memory, and for these types every bit pattern is a
// valid value, so a record read from the guest can be reinterpreted
// without per-field validation. Types with illegal bit patterns (bool,
// enums, floats) are rejected when the dispatch table is built.
//
// # Register and record passing
//
// Up to Convention.RegisterArgs arguments are passed directly in the
// caller-saved registers, truncated to their declared width. Longer
// parameter lists are packed by the guest into a C-layout record (natural
// alignment, declaration order, little-endian fields) whose address is
// placed in the first register; DecodeArgs reads exactly the record's
// size from guest memory in a single bulk read.
package abi
