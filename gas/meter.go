// Package gas meters host-call execution and keeps the dispatcher's
// accounting in sync with the VM executor's gas register.
//
// The executor counts gas in its own unit; the meter counts in internal
// units related by a fixed scale factor. Around every host call the
// dispatcher syncs executor gas in, charges costs, and syncs the
// remainder back out, so both sides always agree at call boundaries.
package gas

import (
	"math"

	"github.com/caffeineduck/ecall/trap"
)

// Cost is an amount of internal gas units.
type Cost uint64

// Meter tracks the gas remaining for one execution context. A meter
// belongs to exactly one call context and is never shared across
// threads.
type Meter struct {
	left  uint64
	limit uint64
	scale uint64 // internal units per executor gas unit
}

// MeterOption configures a Meter at creation time.
type MeterOption func(*Meter)

// WithScale sets the conversion factor between executor gas units and
// internal units. The default is 1.
func WithScale(n uint64) MeterOption {
	return func(m *Meter) {
		if n > 0 {
			m.scale = n
		}
	}
}

// NewMeter creates a meter with the given limit of internal units.
func NewMeter(limit uint64, opts ...MeterOption) *Meter {
	m := &Meter{left: limit, limit: limit, scale: 1}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Left returns the remaining internal units.
func (m *Meter) Left() uint64 { return m.left }

// Consumed returns the internal units spent so far.
func (m *Meter) Consumed() uint64 { return m.limit - m.left }

// SyncFromExecutor adopts the executor's gas register as the meter's
// balance. The executor side may have burned gas since the last sync-out,
// so its register is authoritative at call entry. A negative register or
// a conversion overflow is an OutOfGas trap that is fatal to the call.
func (m *Meter) SyncFromExecutor(executorGas int64) error {
	if executorGas < 0 {
		return trap.New(trap.OutOfGas)
	}
	g := uint64(executorGas)
	if m.scale != 1 && g > math.MaxUint64/m.scale {
		return trap.New(trap.OutOfGas)
	}
	left := g * m.scale
	if left > m.limit {
		left = m.limit
	}
	m.left = left
	return nil
}

// Charge deducts a cost from the meter. Underflow is an OutOfGas trap
// and leaves the meter empty.
func (m *Meter) Charge(c Cost) error {
	if uint64(c) > m.left {
		m.left = 0
		return trap.New(trap.OutOfGas)
	}
	m.left -= uint64(c)
	return nil
}

// SyncToExecutor converts the remaining balance back to executor units
// for writing into the VM-visible gas register.
func (m *Meter) SyncToExecutor() (int64, error) {
	g := m.left / m.scale
	if g > math.MaxInt64 {
		return 0, trap.New(trap.OutOfGas)
	}
	return int64(g), nil
}
