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

package main

import (
	"os"

	"github.com/kurafs/zdebug/doc"
	"github.com/kurafs/zdebug/pkg/cli"

	"github.com/kurafs/zdebug/cmd/exercise"
	"github.com/kurafs/zdebug/cmd/flags"
)

func main() {
	// We aggregate all the top-level commands (i.e. 'zdebug <command> ...') as
	// needed.
	var commands cli.Commands
	commands = append(commands, exercise.ExerciseCmd)
	commands = append(commands, flags.FlagsCmd)

	// We also include documentation pseudo-commands for the architecture and
	// the panic policies.
	commands = append(commands, doc.ArchitectureCmd)
	commands = append(commands, doc.RecoveryModelCmd)

	// We define the top level CLI abstract here.
	abstract := "zdebug drives and inspects the diagnostic message log."
	if err := cli.Process(abstract, commands); err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}
