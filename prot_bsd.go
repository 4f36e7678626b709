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

//go:build darwin || dragonfly || freebsd || netbsd || openbsd

package vthook

import "golang.org/x/sys/unix"

// These systems expose no portable way to query the protection of an
// existing mapping, so release restores read-only - the protection compilers
// give the data sections vtables are emitted into.
func prevProtection(addr uintptr) (protection, error) {
	return protection(unix.PROT_READ), nil
}

// Without a mapping query, unmapped addresses cannot be told apart from live
// ones before the dereference; resolve catches only nil here.
func checkReadable(addr uintptr) error {
	return nil
}
