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

import "fmt"

/*
ABI describes how the target's compiler lays out a vtable. Both fields are
configuration supplied by the integrator - they depend on the compiler and
its version, not on this package, and they drift across target builds, so
they are never hard-coded inside the conversion logic.
*/
type ABI struct {
	// MetadataPrefix is the width in bytes of the compiler-emitted metadata
	// that precedes the first callable slot. Disassemblers include it when
	// displaying "the vtable", but the runtime pointer stored in object
	// instances points past it, at slot 0.
	MetadataPrefix uintptr
	// PointerWidth is the size of one slot in bytes - the pointer size of
	// the target's architecture.
	PointerWidth uintptr
}

// Itanium is the layout of the Itanium C++ ABI (GCC, Clang) on 64-bit
// targets: the offset-to-top word and the typeinfo pointer precede slot 0,
// two pointer widths of prefix in total.
var Itanium = ABI{MetadataPrefix: 0x10, PointerWidth: 8}

// MSVC is the layout of MSVC x64 targets: the vftable symbol points directly
// at slot 0 and the RTTI complete object locator lives before it, outside
// the displayed table, so observed offsets carry no prefix.
var MSVC = ABI{MetadataPrefix: 0, PointerWidth: 8}

func (a ABI) valid() bool {
	return a.PointerWidth != 0 && a.MetadataPrefix%a.PointerWidth == 0
}

/*
SlotIndex converts a byte offset observed in a disassembler's display of the
vtable into the zero-based index of the slot it denotes in the runtime table.

The offset must point at a slot: at least MetadataPrefix bytes in, and
slot-aligned past the prefix. Anything else fails with [ErrInvalidOffset]
rather than truncating, because a misaligned offset means either the prefix
width or the target method is wrong, and a silently rounded index would patch
a different method.
*/
func (a ABI) SlotIndex(byteOffset uintptr) (int, error) {
	if !a.valid() {
		return 0, fmt.Errorf("%w: unusable ABI (prefix %#x, pointer width %d)",
			ErrInvalidOffset, a.MetadataPrefix, a.PointerWidth)
	}
	if byteOffset < a.MetadataPrefix {
		return 0, fmt.Errorf("%w: offset %#x is inside the %#x-byte metadata prefix",
			ErrInvalidOffset, byteOffset, a.MetadataPrefix)
	}
	if (byteOffset-a.MetadataPrefix)%a.PointerWidth != 0 {
		return 0, fmt.Errorf("%w: offset %#x is not aligned to %d-byte slots",
			ErrInvalidOffset, byteOffset, a.PointerWidth)
	}
	return int((byteOffset - a.MetadataPrefix) / a.PointerWidth), nil
}

// SlotOffset is the inverse of [ABI.SlotIndex]: the byte offset at which a
// disassembler would display slot index.
func (a ABI) SlotOffset(index int) uintptr {
	return a.MetadataPrefix + uintptr(index)*a.PointerWidth
}
