package vthook

import "errors"

var (
	// ErrInvalidOffset means the observed byte offset (or slot index) cannot
	// denote a vtable slot - it is misaligned, inside the metadata prefix,
	// or the ABI describing it is unusable. Never auto-corrected: a
	// misaligned offset indicates a wrong prefix width or a wrong target
	// method and must not produce a plausible-looking index.
	ErrInvalidOffset = errors.New("invalid vtable offset")
	// ErrNullObject means resolve was asked for the vtable of a nil object
	ErrNullObject = errors.New("null object")
	// ErrProtection means the platform refused the memory protection change
	ErrProtection = errors.New("protection change failed")
	// ErrAlreadyHooked means the (table, slot) pair is already patched
	ErrAlreadyHooked = errors.New("slot already hooked")
	// ErrNotInstalled means the handle is unknown or already uninstalled
	ErrNotInstalled = errors.New("hook not installed")
)
