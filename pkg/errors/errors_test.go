package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestAsFindsTypedError(t *testing.T) {
	base := New(CodePrecondition, "insufficient inventory")
	wrapped := fmt.Errorf("completing purchase: %w", base)

	typed := As(wrapped)
	if typed == nil {
		t.Fatal("expected typed error in chain")
	}
	if typed.Code() != CodePrecondition {
		t.Fatalf("expected precondition code, got %s", typed.Code())
	}
}

func TestAsReturnsNilForUntyped(t *testing.T) {
	if typed := As(errors.New("boom")); typed != nil {
		t.Fatalf("expected nil, got %v", typed)
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := Wrap(CodeStorage, cause, "saving transaction")

	if !errors.Is(err, cause) {
		t.Fatal("expected cause to be in the chain")
	}
	if !err.Retryable() {
		t.Fatal("expected storage errors to be retryable")
	}
}

func TestRetryableByCode(t *testing.T) {
	cases := []struct {
		code Code
		want bool
	}{
		{CodeValidation, false},
		{CodeNotFound, false},
		{CodePrecondition, false},
		{CodeConflict, false},
		{CodeStorage, true},
		{CodeInternal, true},
	}
	for _, tc := range cases {
		if got := New(tc.code, "x").Retryable(); got != tc.want {
			t.Fatalf("code %s: expected retryable=%v, got %v", tc.code, tc.want, got)
		}
	}
}

func TestDumpCollectsChain(t *testing.T) {
	err := Wrap(CodeStorage, errors.New("disk full"), "persisting batch")
	d := Dump(err)

	if d.Code != CodeStorage {
		t.Fatalf("expected storage code, got %s", d.Code)
	}
	if len(d.Chain) < 2 {
		t.Fatalf("expected chain of at least 2, got %d", len(d.Chain))
	}
}

func TestCodeOfUntypedIsInternal(t *testing.T) {
	if got := CodeOf(errors.New("boom")); got != CodeInternal {
		t.Fatalf("expected internal, got %s", got)
	}
}
