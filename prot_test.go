package vthook

import (
	"errors"
	"testing"
)

func TestGuardRejectsZeroAddress(t *testing.T) {
	_, err := acquireGuard(0, 8)
	if !errors.Is(err, ErrProtection) {
		t.Errorf("expected ErrProtection, got %v", err)
	}
}

func TestGuardRejectsZeroLength(t *testing.T) {
	_, err := acquireGuard(0x1000, 0)
	if !errors.Is(err, ErrProtection) {
		t.Errorf("expected ErrProtection, got %v", err)
	}
}

func TestGuardRejectsWrappingRange(t *testing.T) {
	_, err := acquireGuard(^uintptr(0)-4, 8)
	if !errors.Is(err, ErrProtection) {
		t.Errorf("expected ErrProtection, got %v", err)
	}
}
