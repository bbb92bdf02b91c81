package env

import (
	"fmt"
)

// Table is an immutable dispatch table: the set of host functions a
// guest built against this configuration may call. Built once, read-only
// thereafter, safe to share across concurrently executing VM instances.
type Table struct {
	cfg    Config
	byName map[string]*Descriptor
	order  []*Descriptor // included descriptors in definition order
	all    []string
	stable []string
}

// NewTable compiles descriptors into a dispatch table under the given
// build options. Every descriptor is validated whether or not the build
// configuration includes it; a definition that could never dispatch
// safely is a bug worth failing on early.
func NewTable(descs []Descriptor, opts ...Option) (*Table, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Convention.RegisterArgs <= 0 {
		return nil, fmt.Errorf("convention needs at least one argument register")
	}

	t := &Table{
		cfg:    cfg,
		byName: make(map[string]*Descriptor),
	}

	for i := range descs {
		d := descs[i]
		if err := validate(&d); err != nil {
			return nil, err
		}

		if !d.Stable && !cfg.IncludeUnstable {
			continue
		}
		if d.Guard != nil && !d.Guard(cfg) {
			continue
		}
		if _, dup := t.byName[d.Symbol]; dup {
			return nil, fmt.Errorf("syscall %q: duplicate symbol", d.Symbol)
		}

		t.byName[d.Symbol] = &d
		t.order = append(t.order, &d)
		t.all = append(t.all, d.Symbol)
		if d.Stable {
			t.stable = append(t.stable, d.Symbol)
		}
	}

	return t, nil
}

func validate(d *Descriptor) error {
	if d.Symbol == "" {
		return fmt.Errorf("syscall with empty symbol")
	}
	if d.Handler == nil {
		return fmt.Errorf("syscall %q: nil handler", d.Symbol)
	}
	if !d.Returns.Valid() {
		return fmt.Errorf("syscall %q: invalid return kind %d", d.Symbol, d.Returns)
	}
	for _, p := range d.Params {
		if !p.Type.Valid() {
			return fmt.Errorf("syscall %q: parameter %q: only primitive unsigned integers are allowed as syscall arguments", d.Symbol, p.Name)
		}
	}
	return nil
}

// Lookup returns the descriptor registered under symbol.
func (t *Table) Lookup(symbol string) (Descriptor, bool) {
	d, ok := t.byName[symbol]
	if !ok {
		return Descriptor{}, false
	}
	return *d, true
}

// Len returns the number of build-included syscalls.
func (t *Table) Len() int { return len(t.order) }

// Syscalls returns the symbol list in descriptor-definition order:
// every included syscall when includeUnstable is true, otherwise only
// the stable ABI. Import validators resolve guest imports against these
// lists before execution begins.
func (t *Table) Syscalls(includeUnstable bool) []string {
	src := t.stable
	if includeUnstable {
		src = t.all
	}
	out := make([]string, len(src))
	copy(out, src)
	return out
}

// Descriptors returns copies of the included descriptors in definition
// order, for documentation and binding tooling.
func (t *Table) Descriptors() []Descriptor {
	out := make([]Descriptor, len(t.order))
	for i, d := range t.order {
		out[i] = *d
	}
	return out
}

// BuildConfig returns the configuration the table was compiled under.
// The returned value is a copy; tables cannot be reconfigured.
func (t *Table) BuildConfig() Config {
	return t.cfg
}
