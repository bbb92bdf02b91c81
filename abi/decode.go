package abi

import (
	"encoding/binary"
	"fmt"

	"github.com/caffeineduck/ecall/trap"
)

// Field locates one parameter inside a packed argument record.
type Field struct {
	Offset int
	Size   int
}

// RecordLayout computes the packed-record layout for a parameter list:
// fields in declaration order at naturally aligned offsets, total size
// rounded up to the largest field alignment. This matches a C struct of
// the same members, which is the layout guests build the record with.
func RecordLayout(params []Param) ([]Field, int) {
	fields := make([]Field, len(params))
	offset := 0
	maxAlign := 1
	for i, p := range params {
		size := p.Type.Size()
		if size > maxAlign {
			maxAlign = size
		}
		offset = align(offset, size)
		fields[i] = Field{Offset: offset, Size: size}
		offset += size
	}
	return fields, align(offset, maxAlign)
}

func align(n, to int) int {
	if rem := n % to; rem != 0 {
		return n + to - rem
	}
	return n
}

// DecodeArgs converts the caller-saved registers (and, for long parameter
// lists, guest memory) into one uint64 per parameter, each truncated to
// its declared width.
//
// With at most conv.RegisterArgs parameters the decode is pure register
// truncation and cannot fail. Beyond that, the guest passes a pointer to
// a packed record in regs[0]; the decoder reads exactly the record's size
// in one bulk read and extracts little-endian fields in declaration
// order. A failed read yields a MemoryAccessFailure trap and no arguments.
func DecodeArgs(conv Convention, params []Param, regs []uint64, mem Memory) ([]uint64, error) {
	if len(params) <= conv.RegisterArgs {
		if len(regs) < len(params) {
			return nil, fmt.Errorf("need %d argument registers, have %d", len(params), len(regs))
		}
		args := make([]uint64, len(params))
		for i, p := range params {
			args[i] = p.Type.Truncate(regs[i])
		}
		return args, nil
	}

	if len(regs) == 0 {
		return nil, fmt.Errorf("packed arguments need a pointer register")
	}
	fields, size := RecordLayout(params)
	buf := make([]byte, size)
	if err := mem.ReadInto(regs[0], buf); err != nil {
		return nil, trap.Wrap(trap.MemoryAccessFailure, err)
	}

	args := make([]uint64, len(params))
	for i, f := range fields {
		switch f.Size {
		case 1:
			args[i] = uint64(buf[f.Offset])
		case 2:
			args[i] = uint64(binary.LittleEndian.Uint16(buf[f.Offset:]))
		case 4:
			args[i] = uint64(binary.LittleEndian.Uint32(buf[f.Offset:]))
		default:
			args[i] = binary.LittleEndian.Uint64(buf[f.Offset:])
		}
	}
	return args, nil
}
