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
	"unsafe"

	"golang.org/x/sys/windows"
)

// protection is a PAGE_* constant.
type protection uint32

func protectRWX(addr, size uintptr) (protection, error) {
	var prev uint32
	err := windows.VirtualProtect(addr, size, windows.PAGE_EXECUTE_READWRITE, &prev)
	if err != nil {
		return 0, err
	}
	return protection(prev), nil
}

func restoreProtection(addr, size uintptr, prev protection) error {
	var dummy uint32
	return windows.VirtualProtect(addr, size, uint32(prev), &dummy)
}

// checkReadable reports whether addr can be dereferenced at all, so resolve
// fails with a typed error instead of faulting on a stale object pointer.
func checkReadable(addr uintptr) error {
	var info windows.MemoryBasicInformation
	if err := windows.VirtualQuery(addr, &info, unsafe.Sizeof(info)); err != nil {
		return err
	}
	if info.State != windows.MEM_COMMIT {
		return fmt.Errorf("address %#x is not mapped", addr)
	}
	if info.Protect == windows.PAGE_NOACCESS {
		return fmt.Errorf("address %#x is not readable", addr)
	}
	return nil
}
