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

package doc

import "github.com/kurafs/zdebug/pkg/cli"

var ArchitectureCmd = &cli.Command{
	UsageLine: "architecture",
	Short:     "message log and flag registry overview",
	Long: `
zdebug is built from four pieces, leaves first:

  Flags     Operator controlled switches: the instrumentation mask (one bit
            per category, see 'zdebug flags'), recover, dbgmsg_enable and
            free_leak_on_eio. Each is a single atomic word; readers never lock.

  Render    Turns a call site and a format into one line:
            <file>:<function>:<line>: <message>. Formatting faults are
            rendered into the line rather than raised.

  MsgLog    A bounded log of rendered lines kept in insertion order. Appends
            that push it past its byte cap (256 KiB unless configured) evict
            the oldest lines first. Lines longer than 1024 bytes, or than the
            cap itself, are truncated. Find searches it; Entries and DrainTo
            walk a point-in-time view without blocking writers for the whole
            walk.

  Debug     The entry points: Dprintf (category trace, arguments evaluated
            only when the category is active), Dbgmsg (unconditional record),
            PanicRecover (see 'zdebug help recovery-model') and SetError.
            Init and Fini bound the log's lifetime.

Every entry point checks dbgmsg_enable first, then (for traces) the category
mask. Nothing in the log path returns an error to its caller.
`,
}
