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
	"reflect"
	"unsafe"
)

// funcval mirrors the runtime's representation of a func value: a pointer to
// a closure object whose first word is the code address.
type funcval struct {
	fn unsafe.Pointer
}

/*
Entry returns the code address of a Go function, the form a vtable slot
stores. Use it to obtain the replacement pointer for [Manager.Install], or
to populate the tables of test doubles.

Entry panics when fn is not a function.
*/
func Entry[T any](fn T) unsafe.Pointer {
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func {
		panic("Entry() can be called only for function/method")
	}
	return v.UnsafePointer()
}

/*
Callable wraps a raw code pointer - typically the preserved original from
[Hook.Original], or a value read with [ReadSlot] - as a callable Go func
value of type T.

T must be a function type matching the signature behind code exactly; there
is nothing the runtime can check here, a mismatch is undefined behaviour.
Callable panics when T is not a function type.

	orig, err := hook.Original()
	if err == nil {
	    vthook.Callable[func()](orig)()
	}
*/
func Callable[T any](code unsafe.Pointer) T {
	var f T
	if reflect.ValueOf(&f).Elem().Kind() != reflect.Func {
		panic("Callable() type parameter must be a function type")
	}
	fv := &funcval{fn: code}
	*(*unsafe.Pointer)(unsafe.Pointer(&f)) = unsafe.Pointer(fv)
	return f
}
