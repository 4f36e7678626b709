package vthook

import (
	"errors"
	"os"
	"testing"
	"unsafe"

	"golang.org/x/sys/unix"
)

// an object pointer into memory that has been unmapped must fail resolve
// with the typed error, not fault or hand back garbage
func TestResolveUnmappedObject(t *testing.T) {
	page, err := unix.Mmap(-1, 0, os.Getpagesize(),
		unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		t.Fatalf("unexpected %v", err)
	}
	object := unsafe.Pointer(&page[0])
	if err := unix.Munmap(page); err != nil {
		t.Fatalf("unexpected %v", err)
	}

	if _, err := ResolveVTable(object); !errors.Is(err, ErrNullObject) {
		t.Errorf("expected ErrNullObject, got %v", err)
	}
}

func TestResolveUnreadableObject(t *testing.T) {
	page, err := unix.Mmap(-1, 0, os.Getpagesize(),
		unix.PROT_NONE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		t.Fatalf("unexpected %v", err)
	}
	defer unix.Munmap(page)

	object := unsafe.Pointer(unsafe.SliceData(page))
	if _, err := ResolveVTable(object); !errors.Is(err, ErrNullObject) {
		t.Errorf("expected ErrNullObject, got %v", err)
	}
}
