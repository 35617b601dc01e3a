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
	"regexp"
	"strings"
	"testing"
)

type panickyStringer struct{}

func (panickyStringer) String() string { panic("boom") }

func TestRender(t *testing.T) {
	loc := Location{File: "spa.go", Func: "spa_load", Line: 42}

	for _, tc := range []struct {
		format string
		args   []interface{}
		want   string
	}{
		{"pool %s imported", []interface{}{"tank"}, "spa.go:spa_load:42: pool tank imported"},
		{"no args", nil, "spa.go:spa_load:42: no args"},
		{"trailing newline\n", nil, "spa.go:spa_load:42: trailing newline"},
		{"%d", []interface{}{"nan"}, "spa.go:spa_load:42: %!d(string=nan)"},
		{"%s %s", []interface{}{"one"}, "spa.go:spa_load:42: one %!s(MISSING)"},
	} {
		if got := Render(loc, tc.format, tc.args...); got != tc.want {
			t.Errorf("Render(%q) = %q, want %q", tc.format, got, tc.want)
		}
	}

	// Faulting arguments still produce a line.
	got := Render(loc, "value %v", panickyStringer{})
	if !strings.HasPrefix(got, "spa.go:spa_load:42: value ") || !strings.Contains(got, "boom") {
		t.Errorf("unexpected render of panicking argument: %q", got)
	}
}

func TestCaller(t *testing.T) {
	loc := Caller(0)
	if loc.File != "render_test.go" || loc.Func != "TestCaller" {
		t.Errorf("unexpected location %+v", loc)
	}

	regex := fmt.Sprintf("^render_test.go:TestCaller.func1:%d$", loc.Line+7)
	func() {
		inner := Caller(0).String()
		if !regexp.MustCompile(regex).MatchString(inner) {
			t.Errorf("expected pattern: %q, got: %q", regex, inner)
		}
	}()
}

func TestShortFuncName(t *testing.T) {
	for in, want := range map[string]string{
		"github.com/kurafs/zdebug/pkg/zdebug.(*Debug).Dbgmsg": "(*Debug).Dbgmsg",
		"main.main":          "main",
		"pkg.Func.func1":     "Func.func1",
		"noPackageQualifier": "noPackageQualifier",
	} {
		if got := shortFuncName(in); got != want {
			t.Errorf("shortFuncName(%q) = %q, want %q", in, got, want)
		}
	}
}
