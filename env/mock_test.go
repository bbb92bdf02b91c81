package env

import (
	"errors"

	"github.com/caffeineduck/ecall/gas"
)

// mockInstance implements Instance for testing dispatch logic without a
// real VM. Memory reads are tracked so tests can assert exactly when and
// how much the decoder reads.
type mockInstance struct {
	regs    []uint64
	gas     int64
	mem     map[uint64][]byte
	reads   []int
	gasSets []int64
}

func newMockInstance(gas int64, regs ...uint64) *mockInstance {
	for len(regs) < 6 {
		regs = append(regs, 0)
	}
	return &mockInstance{
		regs: regs,
		gas:  gas,
		mem:  make(map[uint64][]byte),
	}
}

func (m *mockInstance) ReadInto(addr uint64, buf []byte) error {
	m.reads = append(m.reads, len(buf))
	b, ok := m.mem[addr]
	if !ok || len(b) < len(buf) {
		return errors.New("out of bounds")
	}
	copy(buf, b)
	return nil
}

func (m *mockInstance) Gas() int64 { return m.gas }

func (m *mockInstance) SetGas(g int64) {
	m.gas = g
	m.gasSets = append(m.gasSets, g)
}

func (m *mockInstance) ReadInputRegs() []uint64 { return m.regs }

// mockExt implements Ext with an in-memory debug buffer.
type mockExt struct {
	meter    *gas.Meter
	readOnly bool
	debug    []string
}

func newMockExt(limit uint64) *mockExt {
	return &mockExt{meter: gas.NewMeter(limit)}
}

func (e *mockExt) GasMeter() *gas.Meter        { return e.meter }
func (e *mockExt) ReadOnly() bool              { return e.readOnly }
func (e *mockExt) AppendDebugBuffer(msg string) { e.debug = append(e.debug, msg) }
