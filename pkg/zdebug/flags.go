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
	"strings"
	"sync/atomic"
)

// Category is a bitmask of instrumentation categories. Each bit selects an
// independently toggleable class of trace.
type Category uint32

const (
	DebugDprintf         Category = 1 << 0
	DebugDbufVerify      Category = 1 << 1
	DebugDnodeVerify     Category = 1 << 2
	DebugSnapnames       Category = 1 << 3
	DebugModify          Category = 1 << 4
	// 1<<5 was previously used, try not to reuse.
	DebugZIOFree         Category = 1 << 6
	DebugHistogramVerify Category = 1 << 7
	DebugMetaslabVerify  Category = 1 << 8
	DebugSetError        Category = 1 << 9
	DebugIndirectRemap   Category = 1 << 10
	DebugTrim            Category = 1 << 11

	// The zero-value can be used to check if categories intersect, i.e.
	// (mask&c) != DebugNone checks if c is active under mask.
	DebugNone Category = 0
)

var categoryNames = []struct {
	c    Category
	name string
}{
	{DebugDprintf, "dprintf"},
	{DebugDbufVerify, "dbuf_verify"},
	{DebugDnodeVerify, "dnode_verify"},
	{DebugSnapnames, "snapnames"},
	{DebugModify, "modify"},
	{DebugZIOFree, "zio_free"},
	{DebugHistogramVerify, "histogram_verify"},
	{DebugMetaslabVerify, "metaslab_verify"},
	{DebugSetError, "set_error"},
	{DebugIndirectRemap, "indirect_remap"},
	{DebugTrim, "trim"},
}

// Categories returns every named category, lowest bit first.
func Categories() []Category {
	cs := make([]Category, 0, len(categoryNames))
	for _, cn := range categoryNames {
		cs = append(cs, cn.c)
	}
	return cs
}

// String renders the mask as a '|' separated list of category names. Bits
// without a name are rendered in hex.
func (c Category) String() string {
	if c == DebugNone {
		return "none"
	}
	var parts []string
	rest := c
	for _, cn := range categoryNames {
		if c&cn.c != DebugNone {
			parts = append(parts, cn.name)
			rest &^= cn.c
		}
	}
	if rest != DebugNone {
		parts = append(parts, fmt.Sprintf("%#x", uint32(rest)))
	}
	return strings.Join(parts, "|")
}

// ParseCategories parses a comma (or '|') separated list of category names
// into a mask. "all" selects every named category and "none" (or the empty
// string) selects nothing.
func ParseCategories(s string) (Category, error) {
	var mask Category
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == '|' })
	for _, f := range fields {
		f = strings.ToLower(strings.TrimSpace(f))
		switch f {
		case "", "none":
			continue
		case "all":
			for _, cn := range categoryNames {
				mask |= cn.c
			}
			continue
		}

		found := false
		for _, cn := range categoryNames {
			if cn.name == f {
				mask |= cn.c
				found = true
				break
			}
		}
		if !found {
			return DebugNone, fmt.Errorf("unknown instrumentation category %q", f)
		}
	}
	return mask, nil
}

// Flags is the registry of operator controlled switches consulted by every
// instrumentation entry point. Each switch lives in its own machine word, so
// reads are single atomic loads. Nothing is synchronized across switches: a
// reader may observe a mix of old and new values while the operator is
// reconfiguring, which only ever yields a stale (never an unsafe) decision.
//
// The setters are the operator surface (a settings file, a CLI flag, a
// tunable); the core itself only reads.
type Flags struct {
	mask          atomic.Uint32
	recover       atomic.Bool
	dbgmsgEnable  atomic.Bool
	freeLeakOnEIO atomic.Bool
}

// NewFlags returns a registry with every switch off.
func NewFlags() *Flags {
	return &Flags{}
}

// Mask returns the current instrumentation mask.
func (f *Flags) Mask() Category {
	return Category(f.mask.Load())
}

// SetMask replaces the instrumentation mask.
func (f *Flags) SetMask(c Category) {
	f.mask.Store(uint32(c))
}

// Enabled checks if any bit of c is set in the instrumentation mask.
func (f *Flags) Enabled(c Category) bool {
	return Category(f.mask.Load())&c != DebugNone
}

// Recover reports whether fatal conditions are to be logged and tolerated
// (LENIENT) instead of terminating the process (STRICT).
func (f *Flags) Recover() bool {
	return f.recover.Load()
}

func (f *Flags) SetRecover(v bool) {
	f.recover.Store(v)
}

// RecordingEnabled reports whether rendered messages are appended to the log
// at all. It gates every entry point ahead of the category mask.
func (f *Flags) RecordingEnabled() bool {
	return f.dbgmsgEnable.Load()
}

func (f *Flags) SetRecordingEnabled(v bool) {
	f.dbgmsgEnable.Store(v)
}

// FreeLeakOnEIO reports whether blocks whose frees fail with an I/O error are
// to be leaked rather than retried. The core exposes it for consumers and
// attaches no behavior to it.
func (f *Flags) FreeLeakOnEIO() bool {
	return f.freeLeakOnEIO.Load()
}

func (f *Flags) SetFreeLeakOnEIO(v bool) {
	f.freeLeakOnEIO.Store(v)
}
