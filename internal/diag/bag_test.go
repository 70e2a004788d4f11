package diag_test

import (
	"testing"

	"github.com/zigadel/openxr-zig/internal/diag"
)

func TestBag_Limit(t *testing.T) {
	bag := diag.NewBag(2)
	for i := 0; i < 2; i++ {
		if !bag.Add(diag.Diagnostic{Severity: diag.SevWarning}) {
			t.Fatalf("diagnostic %d dropped below the cap", i)
		}
	}
	if bag.Add(diag.Diagnostic{Severity: diag.SevWarning}) {
		t.Error("diagnostic accepted beyond the cap")
	}
	if bag.Len() != 2 {
		t.Errorf("len = %d, want 2", bag.Len())
	}
}

func TestBag_CapClamped(t *testing.T) {
	// Flag values flow in unchecked; a negative cap must neither panic
	// nor wrap into a huge limit.
	for _, max := range []int{-1, 0} {
		bag := diag.NewBag(max)
		if bag.Cap() != 1 {
			t.Errorf("NewBag(%d).Cap() = %d, want 1", max, bag.Cap())
		}
		if !bag.Add(diag.Diagnostic{Severity: diag.SevError}) {
			t.Errorf("NewBag(%d) rejected its first diagnostic", max)
		}
	}
	if got := diag.NewBag(1 << 20).Cap(); got != 65535 {
		t.Errorf("oversized cap = %d, want 65535", got)
	}
}
