package vthook

import (
	"errors"
	"runtime"
	"testing"
	"unsafe"
)

func TestResolveVTable(t *testing.T) {
	table := [4]uintptr{0x11, 0x22, 0x33, 0x44}
	want := uintptr(unsafe.Pointer(&table[0]))
	object := struct{ vtable uintptr }{want}

	got, err := ResolveVTable(unsafe.Pointer(&object))
	if err != nil {
		t.Fatalf("unexpected %v", err)
	}
	if got != want {
		t.Errorf("expected %#x, got %#x as table pointer", want, got)
	}
	runtime.KeepAlive(&table)
}

func TestResolveNullObject(t *testing.T) {
	_, err := ResolveVTable(nil)
	if !errors.Is(err, ErrNullObject) {
		t.Errorf("expected ErrNullObject, got %v", err)
	}
}

func TestReadSlot(t *testing.T) {
	table := [4]uintptr{0x11, 0x22, 0x33, 0x44}
	base := uintptr(unsafe.Pointer(&table[0]))

	width := unsafe.Sizeof(uintptr(0))
	for i, want := range table {
		if got := ReadSlot(base, i, width); uintptr(got) != want {
			t.Errorf("slot %d: expected %#x, got %#x", i, want, uintptr(got))
		}
	}
	runtime.KeepAlive(&table)
}
