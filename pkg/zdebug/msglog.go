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
	"io"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/google/btree"
)

const (
	// DefaultMaxSize is the default cap, in bytes, on the text retained by a
	// MsgLog.
	DefaultMaxSize = 256 << 10 // 256 KiB

	// MaxEntryLen is the longest line a MsgLog stores. Longer lines are cut at
	// this many bytes (backing off to a UTF-8 boundary).
	MaxEntryLen = 1024

	btreeDegree   = 32
	iteratorBatch = 64
)

// entry is a single retained line, ordered by insertion sequence.
type entry struct {
	seq  uint64
	text string
}

func (e *entry) Less(than btree.Item) bool {
	return e.seq < than.(*entry).seq
}

// MsgLog is a bounded, concurrency safe log of rendered lines. Appends beyond
// the size cap evict the oldest lines first. All operations share one mutex
// and do bounded work while holding it.
//
// The zero value is not usable; construct with NewMsgLog and call Init before
// appending.
type MsgLog struct {
	mu          sync.Mutex
	tree        *btree.BTree // nil before Init and after Fini
	seq         uint64       // Sequence number of the most recent append
	size        int          // Sum of len(text) across retained entries
	maxSize     int
	maxEntryLen int
}

type logOption func(l *MsgLog)

// MaxSize sets the byte cap of the log. Non-positive values select
// DefaultMaxSize.
func MaxSize(n int) logOption {
	return func(l *MsgLog) {
		if n <= 0 {
			n = DefaultMaxSize
		}
		l.maxSize = n
	}
}

// EntryLimit sets the longest line the log stores. Non-positive values select
// MaxEntryLen.
func EntryLimit(n int) logOption {
	return func(l *MsgLog) {
		if n <= 0 {
			n = MaxEntryLen
		}
		l.maxEntryLen = n
	}
}

// NewMsgLog returns an uninitialized MsgLog configured with the provided
// options, if any.
func NewMsgLog(options ...logOption) *MsgLog {
	l := &MsgLog{
		maxSize:     DefaultMaxSize,
		maxEntryLen: MaxEntryLen,
	}
	for _, option := range options {
		option(l)
	}
	return l
}

// Init allocates the backing storage and resets the log to empty.
func (l *MsgLog) Init() {
	l.mu.Lock()
	l.tree = btree.New(btreeDegree)
	l.size = 0
	l.mu.Unlock()
}

// Fini releases every entry and the backing storage. Appends after Fini are
// dropped, reads observe an empty log.
func (l *MsgLog) Fini() {
	l.mu.Lock()
	l.tree = nil
	l.size = 0
	l.mu.Unlock()
}

// Append adds text as the newest entry, then evicts the oldest entries until
// the log is back under its cap. Text longer than the entry limit (or the cap
// itself, if smaller) is truncated.
func (l *MsgLog) Append(text string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.tree == nil {
		return
	}

	limit := l.maxEntryLen
	if l.maxSize < limit {
		limit = l.maxSize
	}
	text = truncate(text, limit)

	l.seq++
	l.tree.ReplaceOrInsert(&entry{seq: l.seq, text: text})
	l.size += len(text)
	l.evictLocked()
}

func (l *MsgLog) evictLocked() {
	for l.size > l.maxSize {
		item := l.tree.DeleteMin()
		if item == nil {
			l.size = 0
			return
		}
		l.size -= len(item.(*entry).text)
	}
}

// SetMaxSize changes the cap, evicting immediately if the log no longer fits.
func (l *MsgLog) SetMaxSize(n int) {
	if n <= 0 {
		n = DefaultMaxSize
	}
	l.mu.Lock()
	l.maxSize = n
	if l.tree != nil {
		l.evictLocked()
	}
	l.mu.Unlock()
}

// MaxSize returns the current byte cap.
func (l *MsgLog) MaxSize() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.maxSize
}

// Len returns the number of retained entries.
func (l *MsgLog) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.tree == nil {
		return 0
	}
	return l.tree.Len()
}

// Size returns the number of bytes of text retained.
func (l *MsgLog) Size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.size
}

// Find checks whether any retained entry contains substr.
func (l *MsgLog) Find(substr string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.tree == nil {
		return false
	}
	found := false
	l.tree.Ascend(func(i btree.Item) bool {
		found = strings.Contains(i.(*entry).text, substr)
		return !found
	})
	return found
}

// Clear drops every entry. The log remains usable.
func (l *MsgLog) Clear() {
	l.mu.Lock()
	if l.tree != nil {
		l.tree = btree.New(btreeDegree)
	}
	l.size = 0
	l.mu.Unlock()
}

// Entries returns a one-shot iterator over the entries present right now, in
// insertion order. See Iterator.
func (l *MsgLog) Entries() *Iterator {
	l.mu.Lock()
	end := l.seq
	l.mu.Unlock()
	return &Iterator{l: l, next: 1, end: end}
}

// DrainTo writes every entry, oldest first and newline terminated, to w. It
// stops at, and returns, the first write error.
func (l *MsgLog) DrainTo(w io.Writer) error {
	it := l.Entries()
	for {
		text, ok := it.Next()
		if !ok {
			return nil
		}
		if _, err := io.WriteString(w, text+"\n"); err != nil {
			return err
		}
	}
}

// Iterator walks a point-in-time view of a MsgLog lazily, in small batches, so
// that writers are never held up for the length of a full walk. Entries
// appended after the iterator was created are never returned. Entries evicted
// before the walk reaches them are skipped. No entry is returned twice.
//
// An Iterator is not safe for concurrent use and cannot be restarted.
type Iterator struct {
	l    *MsgLog
	next uint64 // Lowest sequence number not yet returned
	end  uint64 // Highest sequence number visible to this iterator
	buf  []string
	done bool
}

// Next returns the next entry, or false once the iterator is exhausted.
func (it *Iterator) Next() (string, bool) {
	if len(it.buf) == 0 && !it.done {
		it.fill()
	}
	if len(it.buf) == 0 {
		return "", false
	}
	text := it.buf[0]
	it.buf = it.buf[1:]
	return text, true
}

func (it *Iterator) fill() {
	if it.next > it.end {
		it.done = true
		return
	}

	it.l.mu.Lock()
	defer it.l.mu.Unlock()

	if it.l.tree == nil {
		it.done = true
		return
	}
	it.l.tree.AscendGreaterOrEqual(&entry{seq: it.next}, func(i btree.Item) bool {
		e := i.(*entry)
		if e.seq > it.end {
			return false
		}
		it.buf = append(it.buf, e.text)
		it.next = e.seq + 1
		return len(it.buf) < iteratorBatch
	})
	if len(it.buf) == 0 {
		it.done = true
	}
}

// truncate cuts s to at most n bytes without splitting a UTF-8 sequence.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	i := n
	for i > 0 && !utf8.RuneStart(s[i]) {
		i--
	}
	if i == 0 {
		// Not UTF-8 to begin with.
		i = n
	}
	return s[:i]
}
