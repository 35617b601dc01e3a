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

package log

import "io"

// Flag set determining the log header. The header is emitted in the order the
// flags are listed below:
//
//   Lmode Ldate Ltime[.Lmicroseconds] {Llongfile,Lshortfile}] message
//   W180419 06:33:04.606396 spa.go:42] message
type Flag int

const (
	Lmode         Flag = 1 << iota // Single character level prefix: D, I, W or E
	Ldate                          // Date in the local time zone: yymmdd
	Ltime                          // Time in the local time zone: hh:mm:ss
	Lmicroseconds                  // Microsecond resolution: hh:mm:ss.uuuuuu, assumes Ltime
	Llongfile                      // Full file name and line number: /a/b/c/d.go:23
	Lshortfile                     // Final file name element and line number: d.go:23, overrides Llongfile
	LUTC                           // Use UTC rather than the local time zone

	LstdFlags = Lmode | Ldate | Ltime | Lmicroseconds | Lshortfile
)

type option func(l *Logger)

// Writer sets the destination of the logger. The writer is expected to be
// safe for concurrent use, see SynchronizedWriter.
func Writer(w io.Writer) option {
	return func(l *Logger) {
		l.w = w
	}
}

// Flags sets the header format.
func Flags(f Flag) option {
	return func(l *Logger) {
		l.flag = f
	}
}

// Level sets the initial mode. It can be changed later through SetMode.
func Level(m Mode) option {
	return func(l *Logger) {
		l.mode.Store(int32(m))
	}
}

// BasePath trims the given prefix off file names printed under Llongfile.
func BasePath(path string) option {
	return func(l *Logger) {
		l.basePath = path
	}
}
