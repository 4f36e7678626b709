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
	"fmt"
	"sync/atomic"
	"unsafe"
)

/*
ResolveVTable returns the runtime vtable pointer of a live object, read from
the object's first pointer-sized word - the universal convention for how
instances reference their class's table in the target ABI.

The result is deliberately not validated against any table signature; whether
it "looks like" a table is established by the offset contract of the caller.
Fails with [ErrNullObject] for a nil object, and for an address the platform
reports as unmapped or unreadable - on Linux from /proc/self/maps, on Windows
from VirtualQuery; macOS and the BSD flavours expose no mapping query, so
there only nil is caught. Read-only, no side effects.
*/
func ResolveVTable(object unsafe.Pointer) (uintptr, error) {
	if object == nil {
		return 0, ErrNullObject
	}
	if err := checkReadable(uintptr(object)); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrNullObject, err)
	}
	return *(*uintptr)(object), nil
}

// slotAddr is the only place that turns (table, index) into the address of a
// slot. Slots are contiguous and one pointer width wide.
func slotAddr(table uintptr, index int, width uintptr) uintptr {
	return table + uintptr(index)*width
}

// ReadSlot atomically reads the current value of one slot of a live table.
// This is the read half of the process's own dispatch mechanism; it observes
// installed replacements exactly like a virtual call would.
func ReadSlot(table uintptr, index int, width uintptr) unsafe.Pointer {
	addr := slotAddr(table, index, width)
	return unsafe.Pointer(atomic.LoadUintptr((*uintptr)(unsafe.Pointer(addr))))
}
