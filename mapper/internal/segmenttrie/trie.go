/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/
package segmenttrie

import (
	"errors"
	"strings"
)

// ErrInvalidPrefix is returned by Insert for an empty prefix, an empty or
// malformed segment, or a prefix made only of wildcards.
var ErrInvalidPrefix = errors.New("segmenttrie: invalid prefix")

const wildcard = "*"

// Trie indexes dot-separated variant paths by prefix.
//
// Each node is one segment. "*" matches exactly one segment. Lookups return
// the deepest node holding a value, so "billing.card" beats "billing"; at
// equal depth a literal segment beats the wildcard.
type Trie[T any] struct {
	children map[string]*Trie[T]
	hasVal   bool
	val      T
	// pattern is the prefix the value was inserted with.
	pattern string
}

// New returns an empty trie.
func New[T any]() *Trie[T] {
	return &Trie[T]{children: make(map[string]*Trie[T])}
}

// Insert associates val with prefix, replacing any previous value.
//
//	"billing"
//	"billing.card.declined"
//	"billing.*.declined"
func (t *Trie[T]) Insert(prefix string, val T) error {
	if t == nil || prefix == "" {
		return ErrInvalidPrefix
	}
	segs := strings.Split(prefix, ".")
	literal := false
	for _, s := range segs {
		switch {
		case s == wildcard:
		case validSegment(s):
			literal = true
		default:
			return ErrInvalidPrefix
		}
	}
	if !literal {
		return ErrInvalidPrefix
	}

	cur := t
	for _, s := range segs {
		next, ok := cur.children[s]
		if !ok {
			next = New[T]()
			cur.children[s] = next
		}
		cur = next
	}
	cur.hasVal, cur.val, cur.pattern = true, val, prefix
	return nil
}

// Match returns the value of the longest prefix of path.
func (t *Trie[T]) Match(path string) (T, bool) {
	v, ok, _ := t.MatchWithPattern(path)
	return v, ok
}

// MatchWithPattern is Match that also returns the matched prefix as it was
// inserted.
func (t *Trie[T]) MatchWithPattern(path string) (T, bool, string) {
	var zero T
	if t == nil {
		return zero, false, ""
	}
	best, _ := t.longest(path, 0, 0, nil, -1)
	if best == nil {
		return zero, false, ""
	}
	return best.val, true, best.pattern
}

// longest walks path from byte offset off. depth is the number of segments
// consumed to reach t; best and bestDepth carry the deepest valued node so
// far.
func (t *Trie[T]) longest(path string, off, depth int, best *Trie[T], bestDepth int) (*Trie[T], int) {
	if t.hasVal && depth > bestDepth {
		best, bestDepth = t, depth
	}
	if off >= len(path) {
		return best, bestDepth
	}
	end, ok := scanSegment(path, off)
	if !ok {
		return best, bestDepth
	}
	next := end
	if next < len(path) {
		next++ // skip '.'
	}
	if child, ok := t.children[path[off:end]]; ok {
		best, bestDepth = child.longest(path, next, depth+1, best, bestDepth)
	}
	if child, ok := t.children[wildcard]; ok {
		best, bestDepth = child.longest(path, next, depth+1, best, bestDepth)
	}
	return best, bestDepth
}

// validSegment reports whether seg matches [a-z0-9_]+. Keys may start with
// a digit or an underscore.
func validSegment(seg string) bool {
	end, ok := scanSegment(seg, 0)
	return ok && end == len(seg)
}

// scanSegment checks the segment of s starting at off and returns the
// offset of the following '.' or len(s).
func scanSegment(s string, off int) (int, bool) {
	i := off
	for ; i < len(s) && s[i] != '.'; i++ {
		c := s[i]
		if !('a' <= c && c <= 'z' || '0' <= c && c <= '9' || c == '_') {
			return i, false
		}
	}
	return i, i > off
}
