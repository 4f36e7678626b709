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

//go:build linux || darwin || dragonfly || freebsd || netbsd || openbsd

package vthook

import (
	"os"
	"unsafe"

	"golang.org/x/sys/unix"
)

// protection is a PROT_* bit mask.
type protection int

func protectRWX(addr, size uintptr) (protection, error) {
	// capture the previous protection first - once mprotect succeeds there
	// is nothing left to ask
	prev, err := prevProtection(addr)
	if err != nil {
		return 0, err
	}
	start, sz := calcBoundaries(unsafe.Pointer(addr), int(size))
	page := unsafe.Slice((*uint8)(start), sz)
	if err := unix.Mprotect(page, unix.PROT_READ|unix.PROT_WRITE|unix.PROT_EXEC); err != nil {
		return 0, err
	}
	return prev, nil
}

func restoreProtection(addr, size uintptr, prev protection) error {
	start, sz := calcBoundaries(unsafe.Pointer(addr), int(size))
	page := unsafe.Slice((*uint8)(start), sz)
	return unix.Mprotect(page, int(prev))
}

// mprotect operates on whole pages, so round the range down to the page
// containing ptr and extend it to cover size bytes
func calcBoundaries(ptr unsafe.Pointer, size int) (unsafe.Pointer, uintptr) {
	pageSize := uintptr(os.Getpagesize())
	areaStart := unsafe.Pointer(uintptr(ptr) &^ (pageSize - 1))
	areaSize := (uintptr(ptr) + uintptr(size)) - uintptr(areaStart)

	return areaStart, areaSize
}
