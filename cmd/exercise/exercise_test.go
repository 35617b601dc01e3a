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

package exercise

import (
	"bytes"
	"io/ioutil"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/kurafs/zdebug/pkg/log"
)

func TestRunDumpAndFind(t *testing.T) {
	cfg := config{
		writers:    3,
		entries:    50,
		maxSize:    1 << 20,
		categories: "trim",
		recover:    true,
		panicEvery: 10,
		find:       "writer 2 round 49",
		dump:       true,
		tag:        "test",
	}

	var out bytes.Buffer
	if err := run(cfg, log.Discarder(), &out); err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if lines[0] != "DBGMSG(test) START:" {
		t.Fatalf("unexpected first line %q", lines[0])
	}
	// 3 writers x 50 rounds x (trace + dbgmsg) + 3 x 5 recovered panics, plus
	// the START, END and found lines.
	if want := 3*50*2 + 3*5 + 3; len(lines) != want {
		t.Errorf("expected %d lines, got %d", want, len(lines))
	}
	if lines[len(lines)-1] != `found "writer 2 round 49"` {
		t.Errorf("unexpected last line %q", lines[len(lines)-1])
	}

	regex := regexp.MustCompile(`^exercise.go:run.func1:[0-9]+: writer [0-2] (trimming extent|round|hit injected fault at round) [0-9]+$`)
	for _, line := range lines[1 : len(lines)-2] {
		if !regex.MatchString(line) {
			t.Fatalf("unexpected message %q", line)
		}
	}
}

func TestRunFindMissing(t *testing.T) {
	cfg := config{writers: 1, entries: 5, maxSize: 1 << 10, categories: "none", find: "trimming"}
	if err := run(cfg, log.Discarder(), ioutil.Discard); err == nil {
		t.Error("expected an error when traces are disabled and the substring is absent")
	}
}

func TestRunEvicts(t *testing.T) {
	cfg := config{writers: 4, entries: 500, maxSize: 512, categories: "trim", recover: true, find: "round 499"}
	if err := run(cfg, log.Discarder(), ioutil.Discard); err != nil {
		t.Fatal(err)
	}

	cfg.find = "writer 0 round 0"
	if err := run(cfg, log.Discarder(), ioutil.Discard); err == nil {
		t.Error("expected the oldest rounds to have been evicted")
	}
}

func TestRunSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	if err := ioutil.WriteFile(path, []byte(`{"flags": ["modify"], "recover": true, "dbgmsg_maxsize": 2048}`), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := config{writers: 1, entries: 3, maxSize: 1 << 20, categories: "trim", settings: path, find: "trimming"}
	if err := run(cfg, log.Discarder(), ioutil.Discard); err == nil {
		t.Error("expected the settings file to replace the trim category")
	}

	cfg.settings = filepath.Join(t.TempDir(), "missing.json")
	if err := run(cfg, log.Discarder(), ioutil.Discard); err == nil {
		t.Error("expected an error for a missing settings file")
	}
}
