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

// Package cli allows the construction of structured command-line interfaces with sub-commands and
// help topics. This is very similar to the interface in git where the top-level program name (git)
// is preceded by a qualifier that determines what sub-command to execute
// (git {reflog,commit,cherry-pick}).
//
// Package cli explicitly avoid init time global hooks and has a minimal binary size footprint.
//
// Example (from zdebug):
//
//      // We aggregate all the top-level commands, accessible via 'zdebug <command> ...'.
//      var commands cli.Commands
//      commands = append(commands, exercise.ExerciseCmd)
//      commands = append(commands, flags.FlagsCmd)
//
//      // We also include documentation pseudo-commands.
//      commands = append(commands, doc.ArchitectureCmd)
//      commands = append(commands, doc.RecoveryModelCmd)
//
//      abstract := "zdebug drives and inspects the diagnostic message log."
//      if err := cli.Process(abstract, commands); err != nil {
//      	os.Exit(1)
//      }
//
// This generates the following top-level behaviour:
//
//      $ zdebug {,-h,help}
//      zdebug drives and inspects the diagnostic message log.
//
//      Usage:
//
//          zdebug command [arguments]
//
//      The commands are:
//
//              exercise               run concurrent writers through the entry points
//              flags                  decode and encode instrumentation masks
//
//      Use 'zdebug help [command]' for more information about a command.
//
//      Additional help topics:
//
//              architecture           message log and flag registry overview
//              recovery-model         STRICT and LENIENT panic policies
//
//      Use "zdebug help [topic]" for more information about that topic.
//
// Using help for a listed command prints its usage line and long description, and doing the
// same for a help topic prints the topic. Individual commands also have their own '-h' switches
// listing their flags:
//
//      $ zdebug flags -h
//      Usage:
//
//        zdebug flags [-mask n] [-set list]
//
//        -mask string
//              ...
//
// Process exits the program on CLI errors; Run does the same work against explicit arguments
// and writers, returning the exit code instead, which is what tests use.
package cli
