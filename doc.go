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

/*
Package vthook intercepts single virtual methods of live, closed-source
objects by patching their virtual dispatch table (vtable) in process memory.
No source code, debug info or build artifacts for the target are needed - only
a pointer to a live instance and a byte offset into its vtable, typically read
off a call site in a disassembler.

# The concept

Every instance of a polymorphic class holds, in its first pointer-sized word,
the address of a table of function pointers shared by the whole class. Calling
a virtual method means reading one slot of that table and jumping through it.
Replacing the pointer stored in a slot therefore redirects that method for
EVERY instance of the class, on every thread, while the original pointer -
preserved at install time - remains available for forwarding.

A hook is installed in four steps, each of them a component of this package:

  - [ABI.SlotIndex] converts the byte offset a disassembler reports into a
    zero-based slot index, compensating for the metadata prefix some tools
    include in their display of the table.
  - [ResolveVTable] reads the runtime table pointer out of a live instance.
  - a memory protection guard temporarily makes the slot writable and puts
    the previous protection back when the patch is done.
  - [Manager.Install] swaps the slot with a single atomic pointer-sized
    store and hands back a [Hook] for forwarding and removal.

# Offsets and the metadata prefix

The offset observed at a call site (say 0x328) usually counts from the first
byte of the table as the disassembler displays it, which on some compilers
includes a fixed-width metadata prefix that the runtime pointer held by
instances does not reach. The prefix width is compiler- and ABI-specific
configuration, never derived by this package: pass [Itanium] for GCC/Clang
targets, [MSVC] for MSVC x64 targets, or build your own [ABI] value.

	mgr, err := vthook.NewManager(vthook.Itanium)
	if err != nil {
	    ...
	}
	// 0x328 observed in the disassembler, prefix 0x10, slots of 8 bytes:
	// slot index 99
	hook, err := mgr.InstallByOffset(object, 0x328, replacement)

# Forwarding to the original

The replacement decides whether and when the original runs. It receives the
exact calling convention of the method it replaces, and can fetch the
preserved pointer through the handle:

	orig, err := hook.Original()
	if err == nil {
	    vthook.Callable[func()](orig)()
	}

The original pointer stays valid only while the hook is installed; a
replacement that may run concurrently with [Manager.Uninstall] must be
prepared for [ErrNotInstalled].

# Scope of a hook

A hook is global to the class, not to the instance it was installed through.
The [Manager] keys its registry on the table pointer for exactly that reason
and refuses a second install on the same (table, slot) pair with
[ErrAlreadyHooked]. Subsystems that need several observers on one slot must
install a single replacement that fans out internally.

Install and uninstall are symmetric: uninstalling writes the preserved
original pointer back bit-for-bit and restores the previous memory
protection. Calls already dispatched through the old pointer run to
completion; the atomic slot store only governs dispatches that read the slot
after it completes.

# Platforms supported

This package changes the protection of mapped memory at runtime, therefore is
OS-specific. Supported:

  - Linux (previous protection restored exactly, read back from
    /proc/self/maps)
  - macOS and the BSD flavours (previous protection assumed read-only, the
    protection compilers give vtable memory)
  - Windows (previous protection restored exactly, as reported by
    VirtualProtect)
*/
package vthook
