package abi

import "fmt"

// ParamType is the wire type of a single syscall parameter.
//
// Only fixed-width unsigned integers are representable. This is a hard
// safety requirement, not a convenience: argument bytes may be read
// straight out of guest memory, so every permitted type must be valid
// for any bit pattern.
type ParamType uint8

const (
	U8 ParamType = iota
	U16
	U32
	U64
)

// Size returns the width of the type in bytes.
func (t ParamType) Size() int {
	switch t {
	case U8:
		return 1
	case U16:
		return 2
	case U32:
		return 4
	case U64:
		return 8
	default:
		return 0
	}
}

// Valid reports whether t is one of the permitted parameter types.
func (t ParamType) Valid() bool {
	return t <= U64
}

// Truncate narrows a register value to the type's width. The result is
// returned widened back to uint64, which is how decoded arguments travel
// to handlers.
func (t ParamType) Truncate(v uint64) uint64 {
	switch t {
	case U8:
		return uint64(uint8(v))
	case U16:
		return uint64(uint16(v))
	case U32:
		return uint64(uint32(v))
	default:
		return v
	}
}

func (t ParamType) String() string {
	switch t {
	case U8:
		return "u8"
	case U16:
		return "u16"
	case U32:
		return "u32"
	case U64:
		return "u64"
	default:
		return fmt.Sprintf("paramtype(%d)", uint8(t))
	}
}

// Param is a named syscall parameter. Names appear in host-call traces
// and generated documentation; they have no effect on decoding.
type Param struct {
	Name string
	Type ParamType
}

// ReturnKind describes what a syscall hands back to the guest.
type ReturnKind uint8

const (
	// ReturnUnit produces no value.
	ReturnUnit ReturnKind = iota
	// ReturnU32 passes a 32-bit value through, widened.
	ReturnU32
	// ReturnU64 passes a 64-bit value through.
	ReturnU64
	// ReturnCode passes an enumerated status code through as its
	// integer representation.
	ReturnCode
)

// Valid reports whether k is one of the four permitted return kinds.
func (k ReturnKind) Valid() bool {
	return k <= ReturnCode
}

func (k ReturnKind) String() string {
	switch k {
	case ReturnUnit:
		return "unit"
	case ReturnU32:
		return "u32"
	case ReturnU64:
		return "u64"
	case ReturnCode:
		return "code"
	default:
		return fmt.Sprintf("returnkind(%d)", uint8(k))
	}
}

// Convention captures the host-VM calling convention constants. The
// register count is VM-specific, not a law of nature; targets with a
// different ABI configure it at table build time.
type Convention struct {
	// RegisterArgs is the number of caller-saved registers available
	// for passing arguments before the packed-record path kicks in.
	RegisterArgs int
}

// DefaultConvention is the six-register convention used by the reference
// VM ABI.
func DefaultConvention() Convention {
	return Convention{RegisterArgs: 6}
}

// Memory is the guest-memory capability the decoder needs: a bulk
// byte-range read. Implementations must either fill buf completely or
// return an error; partial reads are not allowed.
type Memory interface {
	ReadInto(addr uint64, buf []byte) error
}
