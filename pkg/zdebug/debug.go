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
	"io"
	"strings"

	"github.com/kurafs/zdebug/pkg/log"
)

// Printf formats a message for a category trace. It is handed to the closure
// passed to Debug.Dprintf and is only ever invoked when the category is active.
type Printf func(format string, args ...interface{})

// Debug ties the flag registry, the message log and the console together and
// exposes the instrumentation entry points. One Debug is constructed per
// module instance and handed to the subsystems that instrument themselves.
type Debug struct {
	flags   *Flags
	log     *MsgLog
	console *log.Logger
	abort   func(msg string)
}

type option func(d *Debug)

// Console sets the logger category traces and panic decisions are echoed to.
// Traces are echoed at debug level, LENIENT panics as warnings and STRICT
// panics as errors.
func Console(l *log.Logger) option {
	return func(d *Debug) {
		d.console = l
	}
}

// Abort replaces the mechanism invoked when a panic is reached under STRICT
// policy. The default writes a backtrace to the console and sends SIGABRT to
// the process. A replacement that returns hands control back to the
// PanicRecover caller, which is only meant for tests.
func Abort(fn func(msg string)) option {
	return func(d *Debug) {
		d.abort = fn
	}
}

// LogOptions configures the message log created by New.
func LogOptions(options ...logOption) option {
	return func(d *Debug) {
		d.log = NewMsgLog(options...)
	}
}

// New returns a Debug reading from flags. The message log is not usable until
// Init is called.
func New(flags *Flags, options ...option) *Debug {
	d := &Debug{
		flags:   flags,
		log:     NewMsgLog(),
		console: log.New(),
	}
	for _, option := range options {
		option(d)
	}
	if d.abort == nil {
		d.abort = d.abortProcess
	}
	return d
}

// Init allocates the message log. It must be called once before any entry
// point is used.
func (d *Debug) Init() {
	d.log.Init()
}

// Fini releases the message log. The entry points must not be used
// afterwards; stray calls are dropped.
func (d *Debug) Fini() {
	d.log.Fini()
}

// Flags returns the registry the entry points consult.
func (d *Debug) Flags() *Flags { return d.flags }

// Log returns the underlying message log.
func (d *Debug) Log() *MsgLog { return d.log }

// On checks whether a trace in category c would be recorded. Call sites that
// prefer an explicit guard over Dprintf's closure use
//
//      if d.On(zdebug.DebugModify) {
//              d.Dbgmsg("dirtying %v", expensive())
//      }
func (d *Debug) On(c Category) bool {
	return d.flags.RecordingEnabled() && d.flags.Enabled(c)
}

// Dprintf records a trace in category c. The closure, and with it every
// argument expression of the trace, only runs when recording is enabled and c
// is in the instrumentation mask; otherwise Dprintf does no work at all.
//
//      d.Dprintf(zdebug.DebugTrim, func(printf zdebug.Printf) {
//              printf("trimming %d extents", countExtents())
//      })
func (d *Debug) Dprintf(c Category, fn func(printf Printf)) {
	if !d.On(c) {
		return
	}
	loc := Caller(1)
	fn(func(format string, args ...interface{}) {
		line := Render(loc, format, args...)
		d.log.Append(line)
		d.echo(log.DebugMode, loc, line)
	})
}

// Dbgmsg records a message regardless of the instrumentation mask, as long as
// recording is enabled. Arguments are evaluated by the caller as usual, but no
// formatting takes place while recording is off.
func (d *Debug) Dbgmsg(format string, args ...interface{}) {
	if !d.flags.RecordingEnabled() {
		return
	}
	d.log.Append(Render(Caller(1), format, args...))
}

// PanicRecover reports a condition the caller cannot safely continue past.
// The condition is recorded (if recording is enabled) and echoed to the
// console. What happens next is decided by the live value of Flags.Recover:
//
//   - LENIENT (Recover set): PanicRecover returns and the caller must pick a
//     safe, possibly degraded, way forward.
//   - STRICT: the abort mechanism is invoked and PanicRecover does not return.
func (d *Debug) PanicRecover(format string, args ...interface{}) {
	loc := Caller(1)
	line := Render(loc, format, args...)
	if d.flags.RecordingEnabled() {
		d.log.Append(line)
	}

	if d.flags.Recover() {
		d.echo(log.WarnMode, loc, line)
		return
	}
	d.echo(log.ErrorMode, loc, line)
	d.abort(line)
}

// SetError records err at the call site when the set_error category is
// active, and returns err unchanged so it can wrap return statements:
//
//      return d.SetError(errChecksum)
func (d *Debug) SetError(err error) error {
	if err == nil || !d.On(DebugSetError) {
		return err
	}
	d.log.Append(Render(Caller(1), "error %v", err))
	return err
}

// Find checks whether any retained message contains substr.
func (d *Debug) Find(substr string) bool {
	return d.log.Find(substr)
}

// Print writes the retained messages to w, framed by start and end markers
// carrying tag:
//
//      DBGMSG(tag) START:
//      spa.go:spa_load:42: loading pool
//      ...
//      DBGMSG(tag) END
func (d *Debug) Print(tag string, w io.Writer) error {
	if _, err := fmt.Fprintf(w, "DBGMSG(%s) START:\n", tag); err != nil {
		return err
	}
	if err := d.log.DrainTo(w); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "DBGMSG(%s) END\n", tag)
	return err
}

// echo mirrors a rendered line to the console, attributed to loc. The
// location prefix is stripped as the console header carries its own.
func (d *Debug) echo(mode log.Mode, loc Location, line string) {
	if d.console == nil || !d.console.Enabled(mode) {
		return
	}
	msg := strings.TrimPrefix(line, loc.String()+": ")
	d.console.Emit(mode, loc.File, loc.Line, loc.Func+": "+msg)
}
