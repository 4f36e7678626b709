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
	"os"
	"strings"

	"golang.org/x/sys/unix"
)

// prevProtection reads the current protection of the mapping containing addr
// from /proc/self/maps, so that release can restore exactly what was there.
// An address outside every mapping is an error: mprotect on it would fail
// anyway, and failing here keeps the guard from touching anything.
func prevProtection(addr uintptr) (protection, error) {
	data, err := os.ReadFile("/proc/self/maps")
	if err != nil {
		return 0, err
	}

	for _, line := range strings.Split(string(data), "\n") {
		flds := strings.Fields(line)
		if len(flds) < 2 || len(flds[1]) < 3 {
			continue
		}
		var from, to uintptr
		if _, err := fmt.Sscanf(flds[0], "%x-%x", &from, &to); err != nil {
			continue
		}
		if addr < from || addr >= to {
			continue
		}

		var prot protection
		if flds[1][0] == 'r' {
			prot |= protection(unix.PROT_READ)
		}
		if flds[1][1] == 'w' {
			prot |= protection(unix.PROT_WRITE)
		}
		if flds[1][2] == 'x' {
			prot |= protection(unix.PROT_EXEC)
		}
		return prot, nil
	}

	return 0, fmt.Errorf("address %#x is not mapped", addr)
}

// checkReadable reports whether addr can be dereferenced at all, so resolve
// fails with a typed error instead of faulting on a stale object pointer.
func checkReadable(addr uintptr) error {
	prot, err := prevProtection(addr)
	if err != nil {
		return err
	}
	if prot&protection(unix.PROT_READ) == 0 {
		return fmt.Errorf("address %#x is not readable", addr)
	}
	return nil
}
