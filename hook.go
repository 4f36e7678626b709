// This file is part of the UE-PostRender-Hook project, available at
// https://github.com/44repo/UE-PostRender-Hook
// Copyright (c) 2026 the UE-PostRender-Hook authors. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at https://www.apache.org/licenses/LICENSE-2.0
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package vthook

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"unsafe"

	"github.com/sirupsen/logrus"
)

// slotKey identifies one patched entry. Keys are table pointers, not object
// pointers: every instance of a class shares one table, so this is the
// granularity at which "install at most once" must hold.
type slotKey struct {
	table uintptr
	index int
}

/*
Hook is the handle for one patched vtable entry. It is created by
[Manager.Install], stays valid until [Manager.Uninstall] succeeds on it, and
is terminal after that - a handle is never reinstalled.

The table pointer it refers to is shared, not owned: the table's lifetime is
the class's lifetime, which outlives the hook. The preserved original pointer
is owned by the hook for the single purpose of forwarding.
*/
type Hook struct {
	mgr         *Manager
	table       uintptr
	index       int
	original    uintptr
	replacement uintptr
	installed   bool // guarded by mgr.mu
}

// Table returns the runtime vtable pointer this hook patched.
func (h *Hook) Table() uintptr { return h.table }

// Index returns the slot index this hook patched.
func (h *Hook) Index() int { return h.index }

// Original is a shorthand for [Manager.Original] on the owning manager.
func (h *Hook) Original() (unsafe.Pointer, error) {
	if h == nil {
		return nil, ErrNotInstalled
	}
	return h.mgr.Original(h)
}

/*
Manager orchestrates install and uninstall of vtable hooks. It owns the
registry of live hooks - the single source of truth for "is this slot
currently ours" - and serializes concurrent install/uninstall requests with
one lock, distinct from the memory protection guards it takes per patch.

A Manager is safe for concurrent use.
*/
type Manager struct {
	abi ABI
	log logrus.FieldLogger

	mu    sync.Mutex
	hooks map[slotKey]*Hook
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger makes the manager log install and uninstall events to log at
// debug level. Without it the manager is silent.
func WithLogger(log logrus.FieldLogger) Option {
	return func(m *Manager) { m.log = log }
}

/*
NewManager returns a Manager that interprets offsets and slot widths
according to abi.

The ABI's pointer width must match the running process: this package patches
tables in its own address space, so a foreign pointer width can never be
correct. An unusable ABI fails with [ErrInvalidOffset].
*/
func NewManager(abi ABI, opts ...Option) (*Manager, error) {
	if !abi.valid() {
		return nil, fmt.Errorf("%w: unusable ABI (prefix %#x, pointer width %d)",
			ErrInvalidOffset, abi.MetadataPrefix, abi.PointerWidth)
	}
	if abi.PointerWidth != unsafe.Sizeof(uintptr(0)) {
		return nil, fmt.Errorf("%w: pointer width %d does not match this process",
			ErrInvalidOffset, abi.PointerWidth)
	}

	silent := logrus.New()
	silent.SetOutput(io.Discard)

	m := &Manager{
		abi:   abi,
		log:   silent,
		hooks: make(map[slotKey]*Hook),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

/*
Install patches slot index of the vtable referenced by object, so that every
later dispatch through that slot invokes replacement instead of the method
the class was built with. The previous slot value is preserved in the
returned handle for forwarding via [Hook.Original] and for write-back on
[Manager.Uninstall].

THE EFFECT IS GLOBAL TO THE CLASS. The vtable is shared by every instance,
so installing through one object redirects the method for all of them, on
all threads. The registry is keyed on the table pointer for that reason, and
a second install on the same (table, slot) pair fails with
[ErrAlreadyHooked]; it is never merged or queued.

The slot write is a single aligned atomic pointer-sized store: a thread
mid-dispatch through the slot observes either the original or the
replacement, never a torn value. A call that read the slot just before the
store still runs the original to completion; that is inherent to the
mechanism, not a defect.

Fails with [ErrNullObject] for a nil object, [ErrInvalidOffset] for a
negative index and [ErrProtection] when the slot's memory cannot be made
writable. A hook must not be assumed active unless Install returned nil
error.
*/
func (m *Manager) Install(object unsafe.Pointer, index int, replacement unsafe.Pointer) (*Hook, error) {
	if index < 0 {
		return nil, fmt.Errorf("%w: negative slot index %d", ErrInvalidOffset, index)
	}
	table, err := ResolveVTable(object)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	key := slotKey{table: table, index: index}
	if _, ok := m.hooks[key]; ok {
		return nil, fmt.Errorf("%w: table %#x slot %d", ErrAlreadyHooked, table, index)
	}

	addr := slotAddr(table, index, m.abi.PointerWidth)
	guard, err := acquireGuard(addr, m.abi.PointerWidth)
	if err != nil {
		return nil, err
	}

	slot := (*uintptr)(unsafe.Pointer(addr))
	original := atomic.LoadUintptr(slot)
	atomic.StoreUintptr(slot, uintptr(replacement))

	if err := guard.release(); err != nil {
		// the page is still writable when restore fails, so the swap can be
		// undone before reporting the install as failed
		atomic.StoreUintptr(slot, original)
		return nil, err
	}

	h := &Hook{
		mgr:         m,
		table:       table,
		index:       index,
		original:    original,
		replacement: uintptr(replacement),
		installed:   true,
	}
	m.hooks[key] = h

	m.log.WithFields(logrus.Fields{
		"table":       fmt.Sprintf("%#x", table),
		"slot":        index,
		"original":    fmt.Sprintf("%#x", original),
		"replacement": fmt.Sprintf("%#x", uintptr(replacement)),
	}).Debug("hook installed")

	return h, nil
}

// InstallByOffset is [Manager.Install] for callers holding a raw byte offset
// as reported by a disassembler instead of a slot index. The offset is
// converted with [ABI.SlotIndex] and subject to the same validation.
func (m *Manager) InstallByOffset(object unsafe.Pointer, byteOffset uintptr, replacement unsafe.Pointer) (*Hook, error) {
	index, err := m.abi.SlotIndex(byteOffset)
	if err != nil {
		return nil, err
	}
	return m.Install(object, index, replacement)
}

/*
Uninstall writes the preserved original pointer back into the slot -
bit-for-bit what Install found there - removes the hook from the registry
and invalidates the handle. The write-back is atomic, under a protection
guard over the same single slot.

Uninstalling a handle twice, or a handle this manager does not know, fails
with [ErrNotInstalled] and changes nothing.
*/
func (m *Manager) Uninstall(h *Hook) error {
	if h == nil {
		return ErrNotInstalled
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	key := slotKey{table: h.table, index: h.index}
	if cur, ok := m.hooks[key]; !ok || cur != h || !h.installed {
		return fmt.Errorf("%w: table %#x slot %d", ErrNotInstalled, h.table, h.index)
	}

	addr := slotAddr(h.table, h.index, m.abi.PointerWidth)
	guard, err := acquireGuard(addr, m.abi.PointerWidth)
	if err != nil {
		return err
	}

	atomic.StoreUintptr((*uintptr)(unsafe.Pointer(addr)), h.original)
	restoreErr := guard.release()

	// the original is back in place either way, so the hook is gone even
	// when the protection could not be restored
	delete(m.hooks, key)
	h.installed = false

	m.log.WithFields(logrus.Fields{
		"table": fmt.Sprintf("%#x", h.table),
		"slot":  h.index,
	}).Debug("hook removed")

	return restoreErr
}

// Original returns the slot value preserved at install time, for forwarding
// calls from inside a replacement. Fails with [ErrNotInstalled] once the
// handle has been uninstalled: the pointer must not be assumed valid beyond
// the hook's lifetime.
func (m *Manager) Original(h *Hook) (unsafe.Pointer, error) {
	if h == nil {
		return nil, ErrNotInstalled
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if !h.installed {
		return nil, ErrNotInstalled
	}
	return unsafe.Pointer(h.original), nil
}

// UninstallAll removes every hook this manager has installed, continuing
// past individual failures and returning them joined. Useful as a single
// deferred teardown for integrators holding many hooks.
func (m *Manager) UninstallAll() error {
	m.mu.Lock()
	live := make([]*Hook, 0, len(m.hooks))
	for _, h := range m.hooks {
		live = append(live, h)
	}
	m.mu.Unlock()

	var err error
	for _, h := range live {
		if e := m.Uninstall(h); e != nil && !errors.Is(e, ErrNotInstalled) {
			err = errors.Join(err, e)
		}
	}
	return err
}
