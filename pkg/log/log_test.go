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


package log

import (
	"bytes"
	"fmt"
	"regexp"
	"testing"
)

func expectMatch(t *testing.T, regex string, buffer *bytes.Buffer) {
	t.Helper()
	match, err := regexp.Match(regex, buffer.Bytes())
	if err != nil {
		t.Error(err)
	}
	if !match {
		t.Errorf("expected pattern: \"%s\", got: %s", regex, buffer.String())
	}
	buffer.Reset()
}

func TestInfoLog(t *testing.T) {
	buffer := new(bytes.Buffer)
	logger := New(Writer(buffer))
	{
		logger.Info("info")
		expectMatch(t, "^I.*log_test.go:[0-9]+\\] info\n$", buffer)
	}
	{
		logger.Infof("infof")
		expectMatch(t, "^I.*\\] infof\n$", buffer)
	}
	{
		logger.Infof("%t %d %s", true, 1, "infof")
		expectMatch(t, "^I.*\\] true 1 infof", buffer)
	}
}

func TestDebugModeEnableDisable(t *testing.T) {
	buffer := new(bytes.Buffer)
	logger := New(Writer(buffer), Level(DefaultMode))
	{
		logger.Debug("debug")
		logger.Debugf("%t %d %s", true, 1, "debugf")
		logger.Debugf("debugf")
		expectMatch(t, "^$", buffer)
	}
	logger.SetMode(VerboseMode)
	{
		logger.Debug("debug")
		expectMatch(t, "^D.*\\] debug", buffer)
	}
}

func TestModeIntersection(t *testing.T) {
	buffer := new(bytes.Buffer)
	logger := New(Writer(buffer), Level(WarnMode|ErrorMode))

	logger.Info("dropped")
	expectMatch(t, "^$", buffer)

	logger.Warn("kept")
	expectMatch(t, "^W.*\\] kept", buffer)

	if logger.Enabled(InfoMode) {
		t.Errorf("expected info to be filtered under %s", logger.Mode())
	}
}

func TestEmitUsesProvidedLocation(t *testing.T) {
	buffer := new(bytes.Buffer)
	logger := New(Writer(buffer), Flags(Lmode|Lshortfile))

	logger.Emit(WarnMode, "/src/module/zfs/spa.go", 42, "spa_load failed")
	expectMatch(t, "^W spa.go:42\\] spa_load failed\n$", buffer)

	logger.SetMode(ErrorMode)
	logger.Emit(WarnMode, "spa.go", 42, "filtered")
	expectMatch(t, "^$", buffer)
}

func TestLongfileBasePath(t *testing.T) {
	buffer := new(bytes.Buffer)
	logger := New(Writer(buffer), Flags(Llongfile), BasePath("/src/module"))

	logger.Emit(InfoMode, "/src/module/zfs/spa.go", 7, "msg")
	expectMatch(t, "^zfs/spa.go:7\\] msg\n$", buffer)
}

func helper(logger *Logger) {
	logger.Output(1, ErrorMode, "from helper")
}

func TestOutputDepth(t *testing.T) {
	buffer := new(bytes.Buffer)
	logger := New(Writer(buffer), Flags(Lshortfile))

	_, line := caller(0)
	helper(logger)
	expectMatch(t, fmt.Sprintf("^log_test.go:%d\\] from helper", line+1), buffer)
}

func TestBacktrace(t *testing.T) {
	buffer := new(bytes.Buffer)
	logger := New(Writer(buffer), Level(DisabledMode))

	logger.Backtrace(0)
	if buffer.Len() == 0 {
		t.Fatal("Expected stack trace to be populated, found empty buffer instead")
	}

	line, err := buffer.ReadString(byte('\n'))
	if err != nil {
		t.Fatal(err)
	}
	goroutineRegex := "^goroutine [\\d]+ \\[running\\]:"
	if match, _ := regexp.MatchString(goroutineRegex, line); !match {
		t.Errorf("expected pattern (first line): \"%s\", got: %s", goroutineRegex, line)
	}

	line, err = buffer.ReadString(byte('\n'))
	if err != nil {
		t.Fatal(err)
	}
	functionSignatureRegex := "log.TestBacktrace"
	if match, _ := regexp.MatchString(functionSignatureRegex, line); !match {
		t.Errorf("expected pattern (second line): \"%s\", got: %s", functionSignatureRegex, line)
	}
}

func TestParseLevel(t *testing.T) {
	for _, tc := range []struct {
		level string
		mode  Mode
		err   bool
	}{
		{"debug", VerboseMode, false},
		{"INFO", DefaultMode, false},
		{"warn", WarnMode | ErrorMode, false},
		{"error", ErrorMode, false},
		{"off", DisabledMode, false},
		{"loud", DisabledMode, true},
	} {
		m, err := ParseLevel(tc.level)
		if (err != nil) != tc.err {
			t.Errorf("ParseLevel(%q) error = %v, want error: %t", tc.level, err, tc.err)
		}
		if m != tc.mode {
			t.Errorf("ParseLevel(%q) = %s, want %s", tc.level, m, tc.mode)
		}
	}
}
