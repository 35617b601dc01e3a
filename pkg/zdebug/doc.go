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

// Package zdebug implements the diagnostic message log and fault policy used by
// storage internals. It provides three things:
//
//   - Flags, an operator controlled registry of instrumentation categories and
//     policy switches, readable without locks.
//   - MsgLog, a bounded in-memory log of rendered lines with FIFO eviction,
//     searchable and drainable at any time.
//   - Debug, the entry points call sites use: category traces, unconditional
//     records and the panic-or-recover decision.
//
// Basic example:
//
//      flags := zdebug.NewFlags()
//      flags.SetRecordingEnabled(true)
//      flags.SetMask(zdebug.DebugTrim | zdebug.DebugSetError)
//
//      d := zdebug.New(flags, zdebug.Console(logger))
//      d.Init()
//      defer d.Fini()
//
//      // Arguments are only evaluated when the trim category is active.
//      d.Dprintf(zdebug.DebugTrim, func(printf zdebug.Printf) {
//              printf("trimming %d extents", countExtents())
//      })
//
//      d.Dbgmsg("txg %d synced", txg)
//
//      if corrupt {
//              // Returns only when flags.Recover() is set.
//              d.PanicRecover("blkptr at %p has invalid checksum", bp)
//      }
//
// Rendered lines take the form "<file>:<function>:<line>: <message>". The log
// retains at most MaxSize bytes of the most recent lines; see DefaultMaxSize and
// MaxEntryLen.
package zdebug
