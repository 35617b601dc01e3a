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

package cli

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func testCommands(ran *[]string) Commands {
	echo := &Command{
		UsageLine: "echo [-upper] words...",
		Short:     "echo command overview",
		Long:      "Echo prints its arguments.",
	}
	echo.Run = func(cmd *Command, args []string) error {
		var upper bool
		cmd.FlagSet.BoolVar(&upper, "upper", false, "Print in upper case")
		if err := cmd.FlagSet.Parse(args); err != nil {
			return CmdParseError(err)
		}
		out := strings.Join(cmd.FlagSet.Args(), " ")
		if upper {
			out = strings.ToUpper(out)
		}
		*ran = append(*ran, out)
		return nil
	}

	fail := &Command{
		UsageLine: "fail",
		Short:     "fail command overview",
		Run: func(cmd *Command, args []string) error {
			return errors.New("boom")
		},
	}

	topic := &Command{
		UsageLine: "topic",
		Short:     "a help topic",
		Long:      "Topic body.",
	}
	return Commands{echo, fail, topic}
}

func TestRunUsage(t *testing.T) {
	for _, args := range [][]string{nil, {"help"}, {"-h"}} {
		var ran []string
		var stdout, stderr bytes.Buffer
		code, err := Run("prog", args, "An abstract.", testCommands(&ran), &stdout, &stderr)
		if code != 0 || err != nil {
			t.Fatalf("Run(%q) = %d, %v", args, code, err)
		}
		out := stdout.String()
		if !strings.HasPrefix(out, "An abstract.") || !strings.Contains(out, "echo command overview") ||
			!strings.Contains(out, "a help topic") {
			t.Errorf("unexpected usage output for %q: %s", args, out)
		}
	}
}

func TestRunCommand(t *testing.T) {
	var ran []string
	var stdout, stderr bytes.Buffer
	code, err := Run("prog", []string{"echo", "-upper", "hello", "world"}, "", testCommands(&ran), &stdout, &stderr)
	if code != 0 || err != nil {
		t.Fatalf("Run = %d, %v", code, err)
	}
	if len(ran) != 1 || ran[0] != "HELLO WORLD" {
		t.Errorf("expected command to run once with parsed flags, got %q", ran)
	}
}

func TestRunCommandError(t *testing.T) {
	var ran []string
	var stdout, stderr bytes.Buffer
	code, err := Run("prog", []string{"fail"}, "", testCommands(&ran), &stdout, &stderr)
	if code != 0 || err == nil || err.Error() != "boom" {
		t.Errorf("expected execution error to propagate, got %d, %v", code, err)
	}
}

func TestRunParseError(t *testing.T) {
	var ran []string
	var stdout, stderr bytes.Buffer
	code, err := Run("prog", []string{"echo", "-bogus"}, "", testCommands(&ran), &stdout, &stderr)
	if code != 2 || err != nil {
		t.Fatalf("expected exit code 2, got %d, %v", code, err)
	}
	if !strings.HasPrefix(stderr.String(), "Flag provided but not defined: -bogus") {
		t.Errorf("unexpected parse error output: %s", stderr.String())
	}
	if !strings.Contains(stderr.String(), "prog echo [-upper] words...") {
		t.Errorf("expected usage line in output: %s", stderr.String())
	}
}

func TestRunHelpRequested(t *testing.T) {
	var ran []string
	var stdout, stderr bytes.Buffer
	code, err := Run("prog", []string{"echo", "-h"}, "", testCommands(&ran), &stdout, &stderr)
	if code != 0 || err != nil {
		t.Fatalf("Run = %d, %v", code, err)
	}
	if !strings.Contains(stdout.String(), "prog echo [-upper] words...") ||
		!strings.Contains(stdout.String(), "-upper") {
		t.Errorf("expected command help, got: %s", stdout.String())
	}
}

func TestRunHelpTopic(t *testing.T) {
	var ran []string
	var stdout, stderr bytes.Buffer
	code, _ := Run("prog", []string{"help", "topic"}, "", testCommands(&ran), &stdout, &stderr)
	if code != 0 || !strings.Contains(stdout.String(), "Topic: a help topic") ||
		!strings.Contains(stdout.String(), "Topic body.") {
		t.Errorf("unexpected topic output (%d): %s", code, stdout.String())
	}

	stdout.Reset()
	code, _ = Run("prog", []string{"help", "nope"}, "", testCommands(&ran), &stdout, &stderr)
	if code != 2 || !strings.Contains(stderr.String(), "Unknown help topic 'nope'") {
		t.Errorf("unexpected unknown topic output (%d): %s", code, stderr.String())
	}
}

func TestRunUnknownCommand(t *testing.T) {
	var ran []string
	var stdout, stderr bytes.Buffer
	for _, args := range [][]string{{"nope"}, {"topic"}} {
		stderr.Reset()
		code, _ := Run("prog", args, "", testCommands(&ran), &stdout, &stderr)
		if code != 2 || !strings.Contains(stderr.String(), "Unknown command") {
			t.Errorf("Run(%q): unexpected output (%d): %s", args, code, stderr.String())
		}
	}
}
