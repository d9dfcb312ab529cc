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
	"fmt"
	"math/rand"
	"strings"
	"testing"
)

// genKey returns a variant-key-like segment: [a-z0-9_]+
func genKey(rng *rand.Rand) string {
	words := []string{"user", "not", "found", "card", "declined", "quota", "404", "internal"}
	n := 1 + rng.Intn(3)
	parts := make([]string, n)
	for i := range parts {
		parts[i] = words[rng.Intn(len(words))]
	}
	return strings.Join(parts, "_")
}

// buildTrie inserts n prefixes of the given depth and returns paths that
// extend them by one segment, so lookups exercise LPM.
func buildTrie(b *testing.B, n, depth int) (*Trie[int], []string) {
	rng := rand.New(rand.NewSource(1)) // deterministic
	tr := New[int]()
	paths := make([]string, 0, n)
	for i := 0; i < n; i++ {
		segs := make([]string, depth)
		for j := range segs {
			segs[j] = genKey(rng)
		}
		p := fmt.Sprintf("r%d.%s", i, strings.Join(segs, "."))
		if err := tr.Insert(p, i); err != nil {
			b.Fatalf("insert failed for %q: %v", p, err)
		}
		paths = append(paths, p+"."+genKey(rng))
	}
	return tr, paths
}

func BenchmarkTrieMatch_N128_Depth3(b *testing.B)  { benchMatch(b, 128, 3) }
func BenchmarkTrieMatch_N1024_Depth3(b *testing.B) { benchMatch(b, 1024, 3) }
func BenchmarkTrieMatch_N1024_Depth6(b *testing.B) { benchMatch(b, 1024, 6) }

func benchMatch(b *testing.B, n, depth int) {
	tr, paths := buildTrie(b, n, depth)
	b.ReportAllocs()
	b.ResetTimer()
	var sum int // prevent DCE
	for i := 0; i < b.N; i++ {
		if v, ok := tr.Match(paths[i%len(paths)]); ok {
			sum += v
		}
	}
	if sum == -1 {
		b.Log("keep")
	}
}

func BenchmarkTrieMatchParallel_N1024_Depth3(b *testing.B) {
	tr, paths := buildTrie(b, 1024, 3)
	b.ReportAllocs()
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			_, _ = tr.Match(paths[i%len(paths)])
			i++
		}
	})
}
