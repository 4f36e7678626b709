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

// memGuard is a scoped relaxation of write protection over the byte range
// [addr, addr+size). Acquire records the previous protection and makes the
// range read-write-execute; release puts the previous protection back. The
// patch write must happen strictly between the two, and release must run on
// every exit path of the caller.
type memGuard struct {
	addr uintptr
	size uintptr
	prev protection
}

// acquireGuard bounds-checks the range before touching the platform, so
// arithmetic errors upstream fail here instead of corrupting an unrelated
// mapping. A failed protection change is surfaced as [ErrProtection] and is
// never retried: the environment refused the change and retrying with the
// same inputs cannot succeed.
func acquireGuard(addr, size uintptr) (*memGuard, error) {
	if addr == 0 || size == 0 || addr+size < addr {
		return nil, fmt.Errorf("%w: bad byte range %#x+%#x", ErrProtection, addr, size)
	}
	prev, err := protectRWX(addr, size)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProtection, err)
	}
	return &memGuard{addr: addr, size: size, prev: prev}, nil
}

func (g *memGuard) release() error {
	if err := restoreProtection(g.addr, g.size, g.prev); err != nil {
		return fmt.Errorf("%w: %v", ErrProtection, err)
	}
	return nil
}
