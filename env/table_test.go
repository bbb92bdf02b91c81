package env

import (
	"strings"
	"testing"

	"github.com/caffeineduck/ecall/abi"
)

func nopHandler(call *Call, args []uint64) (uint64, error) { return 0, nil }

func desc(symbol string, stable bool) Descriptor {
	return Descriptor{
		Symbol:  symbol,
		Stable:  stable,
		Params:  []abi.Param{{Name: "x", Type: abi.U32}},
		Returns: abi.ReturnUnit,
		Handler: nopHandler,
	}
}

func TestTableRejectsDisallowedParamType(t *testing.T) {
	d := desc("bad", true)
	d.Params = []abi.Param{{Name: "flag", Type: abi.ParamType(99)}}
	_, err := NewTable([]Descriptor{d})
	if err == nil {
		t.Fatal("expected build failure for disallowed param type")
	}
	if !strings.Contains(err.Error(), "primitive unsigned integers") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestTableRejectsDisallowedTypeEvenWhenExcluded(t *testing.T) {
	// A broken unstable descriptor must fail the build even though this
	// build would filter it out anyway.
	d := desc("bad", false)
	d.Params = []abi.Param{{Name: "flag", Type: abi.ParamType(99)}}
	_, err := NewTable([]Descriptor{d}) // stable-only build
	if err == nil {
		t.Fatal("expected build failure")
	}
}

func TestTableRejectsInvalidReturnKind(t *testing.T) {
	d := desc("bad", true)
	d.Returns = abi.ReturnKind(7)
	if _, err := NewTable([]Descriptor{d}); err == nil {
		t.Fatal("expected build failure for invalid return kind")
	}
}

func TestTableRejectsNilHandler(t *testing.T) {
	d := desc("bad", true)
	d.Handler = nil
	if _, err := NewTable([]Descriptor{d}); err == nil {
		t.Fatal("expected build failure for nil handler")
	}
}

func TestTableRejectsEmptySymbol(t *testing.T) {
	d := desc("", true)
	if _, err := NewTable([]Descriptor{d}); err == nil {
		t.Fatal("expected build failure for empty symbol")
	}
}

func TestTableRejectsDuplicateSymbol(t *testing.T) {
	_, err := NewTable([]Descriptor{desc("dup", true), desc("dup", true)})
	if err == nil {
		t.Fatal("expected build failure for duplicate symbol")
	}
}

func TestDuplicateAllowedWhenOtherIsFilteredOut(t *testing.T) {
	guarded := desc("twin", true)
	guarded.Guard = func(Config) bool { return false }
	table, err := NewTable([]Descriptor{guarded, desc("twin", true)})
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if table.Len() != 1 {
		t.Errorf("expected one included descriptor, got %d", table.Len())
	}
}

func TestUnstableExcludedByDefault(t *testing.T) {
	table, err := NewTable([]Descriptor{desc("a", true), desc("b", false)})
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if _, ok := table.Lookup("b"); ok {
		t.Error("unstable syscall must be absent from a stable-only build")
	}
	if _, ok := table.Lookup("a"); !ok {
		t.Error("stable syscall missing")
	}
}

func TestGuardFiltering(t *testing.T) {
	gated := desc("bench_only", true)
	gated.Guard = func(c Config) bool { return c.Feature("benchmarks") }

	without, err := NewTable([]Descriptor{gated})
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if _, ok := without.Lookup("bench_only"); ok {
		t.Error("guarded syscall included without its feature")
	}

	with, err := NewTable([]Descriptor{gated}, WithFeature("benchmarks"))
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if _, ok := with.Lookup("bench_only"); !ok {
		t.Error("guarded syscall missing despite enabled feature")
	}
}

func TestSyscallListsOrderAndSubsequence(t *testing.T) {
	table, err := NewTable([]Descriptor{
		desc("alpha", true),
		desc("beta", false),
		desc("gamma", true),
		desc("delta", false),
	}, WithUnstable())
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	all := table.Syscalls(true)
	stable := table.Syscalls(false)

	wantAll := []string{"alpha", "beta", "gamma", "delta"}
	if len(all) != len(wantAll) {
		t.Fatalf("expected %v, got %v", wantAll, all)
	}
	for i := range wantAll {
		if all[i] != wantAll[i] {
			t.Fatalf("expected %v, got %v", wantAll, all)
		}
	}

	// stable must be a subsequence of all, in the same relative order.
	j := 0
	for _, s := range all {
		if j < len(stable) && stable[j] == s {
			j++
		}
	}
	if j != len(stable) {
		t.Errorf("stable list %v is not a subsequence of %v", stable, all)
	}
	if len(stable) != 2 || stable[0] != "alpha" || stable[1] != "gamma" {
		t.Errorf("unexpected stable list: %v", stable)
	}
}

func TestUnstableDescriptorLengthensAllOnly(t *testing.T) {
	base := []Descriptor{desc("a", true), desc("b", false)}
	table, err := NewTable(base, WithUnstable())
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	grown, err := NewTable(append(base, desc("c", false)), WithUnstable())
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	if len(grown.Syscalls(true)) != len(table.Syscalls(true))+1 {
		t.Error("adding an unstable descriptor must lengthen the full list")
	}
	if len(grown.Syscalls(false)) != len(table.Syscalls(false)) {
		t.Error("adding an unstable descriptor must not lengthen the stable list")
	}
}

func TestSyscallsReturnsCopies(t *testing.T) {
	table, err := NewTable([]Descriptor{desc("a", true)})
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	list := table.Syscalls(false)
	list[0] = "mutated"
	if table.Syscalls(false)[0] != "a" {
		t.Error("callers must not be able to mutate the table's lists")
	}
}

func TestTableRejectsBadConvention(t *testing.T) {
	_, err := NewTable([]Descriptor{desc("a", true)},
		WithConvention(abi.Convention{RegisterArgs: 0}))
	if err == nil {
		t.Fatal("expected build failure for zero-register convention")
	}
}
