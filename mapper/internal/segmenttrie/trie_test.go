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

import "testing"

func TestInsertAndMatch_Simple(t *testing.T) {
	tr := New[int]()
	must(t, tr.Insert("billing", 402))
	must(t, tr.Insert("billing.card.declined", 409))
	must(t, tr.Insert("accounts.user_not_found", 404))

	if v, ok, p := tr.MatchWithPattern("billing.invoice_missing"); !ok || v != 402 || p != "billing" {
		t.Fatalf("match billing.invoice_missing => ok=%v v=%v p=%q; want ok=true v=402 p=billing", ok, v, p)
	}
	if v, ok, p := tr.MatchWithPattern("billing.card.declined"); !ok || v != 409 || p != "billing.card.declined" {
		t.Fatalf("match billing.card.declined => ok=%v v=%v p=%q; want 409", ok, v, p)
	}
	if v, ok := tr.Match("accounts.user_not_found.admin"); !ok || v != 404 {
		t.Fatalf("match accounts.user_not_found.admin => ok=%v v=%v; want 404", ok, v)
	}
	if _, ok := tr.Match("accounts.user"); ok {
		t.Fatalf("partial segment must not match")
	}
}

func TestWildcard_OneSegment(t *testing.T) {
	tr := New[int]()
	must(t, tr.Insert("billing.*.declined", 498))
	must(t, tr.Insert("billing.card.declined", 409)) // exact should beat wildcard at same depth

	if v, ok, p := tr.MatchWithPattern("billing.card.declined"); !ok || v != 409 || p != "billing.card.declined" {
		t.Fatalf("exact must win over wildcard, got ok=%v v=%v p=%q", ok, v, p)
	}
	if v, ok, p := tr.MatchWithPattern("billing.wire.declined.twice"); !ok || v != 498 || p != "billing.*.declined" {
		t.Fatalf("wildcard match failed: ok=%v v=%v p=%q", ok, v, p)
	}
	// wildcard must match exactly one segment, not zero
	if _, ok, _ := tr.MatchWithPattern("billing.declined"); ok {
		t.Fatalf("wildcard should not match zero segments")
	}
}

func TestLPM_PrefersDeeperEvenIfExactBranchExists(t *testing.T) {
	tr := New[int]()
	// wildcard path can produce deeper match than an existing (but shallow) exact branch
	must(t, tr.Insert("a.*.c", 7))
	must(t, tr.Insert("a.b", 1))

	if v, ok, p := tr.MatchWithPattern("a.b.c"); !ok || v != 7 || p != "a.*.c" {
		t.Fatalf("LPM must choose wildcard path: ok=%v v=%v p=%q", ok, v, p)
	}
}

func TestDigitLeadingSegments(t *testing.T) {
	tr := New[int]()
	must(t, tr.Insert("base.404", 404))
	must(t, tr.Insert("base._internal", 500))

	if v, ok := tr.Match("base.404.child"); !ok || v != 404 {
		t.Fatalf("digit segment: ok=%v v=%v; want 404", ok, v)
	}
	if v, ok := tr.Match("base._internal"); !ok || v != 500 {
		t.Fatalf("underscore segment: ok=%v v=%v; want 500", ok, v)
	}
}

func TestInvalidInputs(t *testing.T) {
	tr := New[int]()
	if err := tr.Insert("", 1); err == nil {
		t.Fatalf("empty prefix must be invalid")
	}
	if err := tr.Insert("UPPER.case", 1); err == nil {
		t.Fatalf("uppercase must be invalid")
	}
	if err := tr.Insert("a..b", 1); err == nil {
		t.Fatalf("empty segment must be invalid")
	}
	if err := tr.Insert("*", 1); err == nil {
		t.Fatalf("wildcard-only prefix must be invalid")
	}
	if err := tr.Insert("a.b-c", 1); err == nil {
		t.Fatalf("dash must be invalid")
	}

	must(t, tr.Insert("a", 1))
	if _, ok, _ := tr.MatchWithPattern("UPPER.case"); ok {
		t.Fatalf("match should be false for invalid path")
	}
	if v, ok := tr.Match("a..b"); !ok || v != 1 {
		t.Fatalf("valid leading segments still match: ok=%v v=%v", ok, v)
	}
	var nilTrie *Trie[int]
	if _, ok := nilTrie.Match("a"); ok {
		t.Fatalf("nil trie must not match")
	}
}

func must(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
