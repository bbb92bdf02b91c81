package trap

import (
	"errors"
	"fmt"
	"testing"
)

func TestTrapError(t *testing.T) {
	tr := New(InvalidSyscall)
	if tr.Error() != "invalid syscall" {
		t.Errorf("unexpected message: %q", tr.Error())
	}

	wrapped := Wrap(MemoryAccessFailure, errors.New("read at 0x1000 out of bounds"))
	want := "memory access failure: read at 0x1000 out of bounds"
	if wrapped.Error() != want {
		t.Errorf("expected %q, got %q", want, wrapped.Error())
	}
}

func TestTrapUnwrap(t *testing.T) {
	cause := errors.New("boom")
	tr := Wrap(HandlerError, fmt.Errorf("storage write: %w", cause))
	if !errors.Is(tr, cause) {
		t.Error("expected errors.Is to find the wrapped cause")
	}
}

func TestTrapIs(t *testing.T) {
	err := error(Wrap(OutOfGas, errors.New("underflow")))
	if !errors.Is(err, New(OutOfGas)) {
		t.Error("traps with the same code should match via errors.Is")
	}
	if errors.Is(err, New(InvalidSyscall)) {
		t.Error("traps with different codes must not match")
	}
}

func TestFromPassesTrapsThrough(t *testing.T) {
	orig := New(StateChangeDenied)
	if got := From(orig); got != orig {
		t.Error("From must not re-wrap an existing trap")
	}
}

func TestFromWrapsHandlerErrors(t *testing.T) {
	cause := errors.New("key too large")
	tr := From(cause)
	if tr.Code != HandlerError {
		t.Errorf("expected HandlerError, got %v", tr.Code)
	}
	if !errors.Is(tr, cause) {
		t.Error("wrapped cause lost")
	}
}

func TestIsCode(t *testing.T) {
	if !IsCode(New(OutOfGas), OutOfGas) {
		t.Error("IsCode should match")
	}
	if IsCode(errors.New("plain"), OutOfGas) {
		t.Error("IsCode must not match non-traps")
	}
}
