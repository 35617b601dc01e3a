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

var RecoveryModelCmd = &cli.Command{
	UsageLine: "recovery-model",
	Short:     "STRICT and LENIENT panic policies",
	Long: `
Code that detects a condition it cannot safely continue past calls
PanicRecover with a description. The decision is made per call from the live
value of the recover flag; it is never cached.

  STRICT (recover=false)
      The description is recorded and echoed to the console as an error, a
      backtrace is written, and the process is sent SIGABRT. Control never
      returns to the caller.

  LENIENT (recover=true)
      The description is recorded and echoed as a warning, and PanicRecover
      returns. The caller is responsible for choosing a safe, possibly
      degraded, continuation; nothing is repaired on its behalf.

LENIENT trades strict correctness for availability, e.g. to import a damaged
pool long enough to copy data off it. Run 'zdebug exercise -panic-every 10
-recover=false' to watch the STRICT path end to end.
`,
}
