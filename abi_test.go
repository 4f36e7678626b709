package vthook

import (
	"errors"
	"testing"
)

func TestSlotIndex(t *testing.T) {
	index, err := Itanium.SlotIndex(0x328)
	if err != nil {
		t.Fatalf("unexpected %v", err)
	}
	if index != 0x63 {
		t.Errorf("expected %#x, got %#x as slot index", 0x63, index)
	}
}

func TestSlotIndexFirstSlot(t *testing.T) {
	index, err := Itanium.SlotIndex(0x10)
	if err != nil {
		t.Fatalf("unexpected %v", err)
	}
	if index != 0 {
		t.Errorf("expected 0, got %#x as slot index", index)
	}
}

func TestSlotIndexNoPrefix(t *testing.T) {
	index, err := MSVC.SlotIndex(0x318)
	if err != nil {
		t.Fatalf("unexpected %v", err)
	}
	if index != 0x63 {
		t.Errorf("expected %#x, got %#x as slot index", 0x63, index)
	}
}

func TestSlotIndexMisaligned(t *testing.T) {
	index, err := Itanium.SlotIndex(0x32c)
	if !errors.Is(err, ErrInvalidOffset) {
		t.Errorf("expected ErrInvalidOffset, got %v (index %d)", err, index)
	}
}

func TestSlotIndexInsidePrefix(t *testing.T) {
	_, err := Itanium.SlotIndex(0x8)
	if !errors.Is(err, ErrInvalidOffset) {
		t.Errorf("expected ErrInvalidOffset, got %v", err)
	}
}

func TestSlotIndexUnusableABI(t *testing.T) {
	_, err := ABI{MetadataPrefix: 0x10, PointerWidth: 0}.SlotIndex(0x18)
	if !errors.Is(err, ErrInvalidOffset) {
		t.Errorf("expected ErrInvalidOffset, got %v", err)
	}
}

func TestSlotOffsetRoundTrip(t *testing.T) {
	for _, k := range []int{0, 1, 7, 99} {
		index, err := Itanium.SlotIndex(Itanium.SlotOffset(k))
		if err != nil {
			t.Fatalf("slot %d: unexpected %v", k, err)
		}
		if index != k {
			t.Errorf("slot %d came back as %d", k, index)
		}
	}
}
