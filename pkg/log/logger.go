// Copyright 2009 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in licenses/BSD-golang.txt.

// Portions of this file are additionally subject to the following
// license and copyright.
//
// Copyright 2018 Irfan Sharif.
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

// Portions of this code originated in the standard library 'log' package.

package log

import (
	"bytes"
	"fmt"
	"io"
	"io/ioutil"
	"runtime"
	"runtime/debug"
	"strings"
	"sync/atomic"
	"time"
)

// Logger is the concrete logger type. It writes out logs to the specified
// io.Writer, with the header format determined by the flags set and the
// statements filtered by the current mode.
type Logger struct {
	w        io.Writer // Where logs are written to
	flag     Flag      // Flag set determining log headers. See options.go
	basePath string    // Prefix trimmed off long file names, optional
	mode     atomic.Int32
}

const newline string = "\n"

// configure sets up the default options for the Logger, these include a
// synchronized os.Stderr writer, DefaultMode, an empty basepath and
// LstdFlags, which produces logs with the following header format:
//
//   Myymmdd hh:mm:ss.micros filename:ln] message
//   I180419 06:33:04.606396 fname.go:42] message
func configure(l *Logger) {
	l.w = DefaultWriter()
	l.flag = LstdFlags
	l.basePath = ""
	l.mode.Store(int32(DefaultMode))
}

// New returns a new Logger, configured with the provided options, if any.
func New(options ...option) *Logger {
	l := &Logger{}
	configure(l)

	// Overrides.
	for _, option := range options {
		option(l)
	}
	return l
}

// Discarder returns a Logger configured to discard all writes.
func Discarder() *Logger {
	return New(Writer(ioutil.Discard), Level(DisabledMode))
}

// SetMode replaces the set of levels the logger emits. Safe to call while
// other goroutines are logging.
func (l *Logger) SetMode(m Mode) {
	l.mode.Store(int32(m))
}

// Mode returns the set of levels the logger currently emits.
func (l *Logger) Mode() Mode {
	return Mode(l.mode.Load())
}

// Enabled checks if statements at the given level would be emitted.
func (l *Logger) Enabled(m Mode) bool {
	return l.Mode()&m != DisabledMode
}

// Debug logs to the DEBUG log. Arguments are handled in the manner of
// fmt.Println; a newline is appended at the end.
func (l *Logger) Debug(v ...interface{}) {
	l.log(1, DebugMode, fmt.Sprintln(v...))
}

// Debugf logs to the DEBUG log. Arguments are handled in the manner of
// fmt.Printf; a newline is appended at the end.
func (l *Logger) Debugf(format string, v ...interface{}) {
	l.log(1, DebugMode, fmt.Sprintf(format+newline, v...))
}

// Info logs to the INFO log. Arguments are handled in the manner of
// fmt.Println; a newline is appended at the end.
func (l *Logger) Info(v ...interface{}) {
	l.log(1, InfoMode, fmt.Sprintln(v...))
}

// Infof logs to the INFO log. Arguments are handled in the manner of
// fmt.Printf; a newline is appended at the end.
func (l *Logger) Infof(format string, v ...interface{}) {
	l.log(1, InfoMode, fmt.Sprintf(format+newline, v...))
}

// Warn logs to the WARN log. Arguments are handled in the manner of
// fmt.Println; a newline is appended at the end.
func (l *Logger) Warn(v ...interface{}) {
	l.log(1, WarnMode, fmt.Sprintln(v...))
}

// Warnf logs to the WARN log. Arguments are handled in the manner of
// fmt.Printf; a newline is appended at the end.
func (l *Logger) Warnf(format string, v ...interface{}) {
	l.log(1, WarnMode, fmt.Sprintf(format+newline, v...))
}

// Error logs to the ERROR log. Arguments are handled in the manner of
// fmt.Println; a newline is appended at the end.
func (l *Logger) Error(v ...interface{}) {
	l.log(1, ErrorMode, fmt.Sprintln(v...))
}

// Errorf logs to the ERROR log. Arguments are handled in the manner of
// fmt.Printf; a newline is appended at the end.
func (l *Logger) Errorf(format string, v ...interface{}) {
	l.log(1, ErrorMode, fmt.Sprintf(format+newline, v...))
}

// Output logs data at the given level, attributing it to the caller depth
// levels above the caller of Output. Output(0, ...) is equivalent to calling
// one of the leveled methods directly. A trailing newline is added if missing.
func (l *Logger) Output(depth int, lmode Mode, data string) {
	l.log(depth+1, lmode, data)
}

// Emit logs data at the given level, attributing it to the provided location
// instead of looking up the caller.
func (l *Logger) Emit(lmode Mode, file string, line int, data string) {
	if !l.Enabled(lmode) {
		return
	}
	l.write(lmode, file, line, data)
}

// Backtrace writes the stack of the calling goroutine to the log, skipping
// skip frames above the caller of Backtrace. It is written regardless of mode.
func (l *Logger) Backtrace(skip int) {
	l.w.Write(stacktrace(skip + 1))
}

// log is only to be called from the public wrappers above. depth counts the
// frames between log's caller and the statement being attributed; depth zero
// is the caller of log itself.
func (l *Logger) log(depth int, lmode Mode, data string) {
	if !l.Enabled(lmode) {
		return
	}
	file, line := caller(depth + 1)
	l.write(lmode, file, line, data)
}

func (l *Logger) write(lmode Mode, file string, line int, data string) {
	var buf bytes.Buffer
	buf.Write(l.header(lmode, time.Now(), file, line))
	buf.WriteString(data)
	if !strings.HasSuffix(data, newline) {
		buf.WriteString(newline)
	}
	l.w.Write(buf.Bytes())
}

// header, given the statement level, time stamp, file name (fully qualified)
// and line number, formats the log header as per Logger.flag and returns the
// corresponding byte array. If a base path is configured and Llongfile is
// specified, the base path prefix is trimmed.
func (l *Logger) header(lmode Mode, t time.Time, file string, line int) []byte {
	var b []byte
	var buf *[]byte = &b
	if l.flag&Lmode != 0 {
		*buf = append(*buf, lmode.byte())
	}
	if l.flag&LUTC != 0 {
		t = t.UTC()
	}
	if l.flag&(Ldate|Ltime|Lmicroseconds) != 0 {
		datef := l.flag&Ldate != 0
		timef := l.flag&(Ltime|Lmicroseconds) != 0
		if datef {
			year, month, day := t.Date()
			if year < 2000 {
				year = 2000
			}
			itoa(buf, year-2000, 2)
			itoa(buf, int(month), 2)
			itoa(buf, day, 2)
		}

		if datef && timef {
			*buf = append(*buf, ' ')
		}

		if timef {
			hour, min, sec := t.Clock()
			itoa(buf, hour, 2)
			*buf = append(*buf, ':')
			itoa(buf, min, 2)
			*buf = append(*buf, ':')
			itoa(buf, sec, 2)
			if l.flag&Lmicroseconds != 0 {
				*buf = append(*buf, '.')
				itoa(buf, t.Nanosecond()/1e3, 6)
			}
		}
	}

	if len(*buf) > 0 {
		*buf = append(*buf, ' ')
	}

	if l.flag&(Lshortfile|Llongfile) != 0 {
		if l.flag&Lshortfile != 0 {
			if i := strings.LastIndexByte(file, '/'); i >= 0 {
				file = file[i+1:]
			}
		} else if l.basePath != "" {
			file = strings.TrimPrefix(strings.TrimPrefix(file, l.basePath), "/")
		}
		*buf = append(*buf, file...)
		*buf = append(*buf, ':')
		itoa(buf, line, -1)
		*buf = append(*buf, "] "...)
	}
	return b
}

// Cheap integer to fixed-width decimal ASCII. Give a negative width to avoid
// zero-padding.
func itoa(buf *[]byte, i int, wid int) {
	// Assemble decimal in reverse order.
	var b [20]byte
	bp := len(b) - 1
	for i >= 10 || wid > 1 {
		wid--
		q := i / 10
		b[bp] = byte('0' + i - q*10)
		bp--
		i = q
	}
	// i < 10
	b[bp] = byte('0' + i)
	*buf = append(*buf, b[bp:]...)
}

// stacktrace returns the stack trace for the current goroutine, skipping n
// immediately preceding function traces (last being the caller, inclusive of
// the caller).
//
// f.go: 11 func f() {
// f.go: 12      g()
// f.go: 13 }
//
// g.go: 25 func g() {
// g.go: 26     // goroutine 1 [running]:
// g.go: 27     // f.f()
// g.go: 28     //     /path/f.go:12 +0x20
// g.go: 29     // ...
// g.go: 30     strace := stacktrace(1)
// g.go: 31 }
//
func stacktrace(skip int) []byte {
	skip *= 2 // Each function depth corresponds to two lines of stack trace output.
	skip += 2 // For debug.Stack()
	skip += 2 // For this function, log.stacktrace()

	b := debug.Stack()
	bs := bytes.Split(b, []byte("\n"))
	if 1+skip > len(bs) {
		return b
	}

	copy(bs[1:], bs[1+skip:])
	bs = bs[:len(bs)-skip]
	return bytes.Join(bs, []byte("\n"))
}

// caller returns the file and line number of the caller depth levels above
// the caller of caller; caller(0) is the function invoking caller.
func caller(depth int) (file string, line int) {
	// +1 to account for call to caller itself.
	_, file, line, ok := runtime.Caller(depth + 1)
	if !ok {
		file = "[???]"
		line = -1
	}
	return file, line
}
