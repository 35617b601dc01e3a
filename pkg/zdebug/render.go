// Copyright 2018 The Kura Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package zdebug

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
)

// Location identifies an instrumentation call site.
type Location struct {
	File string // Base name of the source file
	Func string // Function name without the package path
	Line int
}

func (l Location) String() string {
	return l.File + ":" + l.Func + ":" + strconv.Itoa(l.Line)
}

// Caller returns the location of the caller's caller. A depth of zero refers to
// the function invoking Caller, one to its caller, and so on.
//
// e.go: 32 func e() {
// e.go: 33     f()
// e.go: 34 }
//
// f.go: 11 func f() {
// f.go: 12      loc := Caller(1) // e.go:e:33
// f.go: 13 }
//
func Caller(depth int) Location {
	// +1 to account for the call to Caller itself.
	pc, file, line, ok := runtime.Caller(depth + 1)
	if !ok {
		return Location{File: "[???]", Func: "[???]", Line: -1}
	}

	fn := "[???]"
	if f := runtime.FuncForPC(pc); f != nil {
		fn = shortFuncName(f.Name())
	}
	return Location{File: filepath.Base(file), Func: fn, Line: line}
}

// shortFuncName strips the import path from a fully qualified function name:
// github.com/kurafs/zdebug/pkg/zdebug.(*Debug).Dbgmsg becomes (*Debug).Dbgmsg.
func shortFuncName(name string) string {
	if i := strings.LastIndexByte(name, '/'); i >= 0 {
		name = name[i+1:]
	}
	if i := strings.IndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}
	return name
}

// Render formats the message and prefixes it with the call site, producing a
// line of the form "<file>:<function>:<line>: <message>". Render never panics:
// if formatting faults the line carries the raw format string instead.
func Render(loc Location, format string, args ...interface{}) (line string) {
	prefix := loc.String() + ": "
	defer func() {
		if r := recover(); r != nil {
			line = prefix + format + " (format error: " + fmt.Sprint(r) + ")"
		}
	}()

	msg := fmt.Sprintf(format, args...)
	return prefix + strings.TrimRight(msg, "\n")
}
