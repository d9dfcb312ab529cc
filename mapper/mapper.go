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

package mapper

import (
	"fmt"
	"strings"

	"google.golang.org/grpc/codes"

	"dirpx.dev/kcerrors/apis"
	"dirpx.dev/kcerrors/mapper/internal/segmenttrie"
)

// New constructs an immutable apis.Mapper snapshot.
//
// The resulting apis.Mapper is fully thread-safe and designed for long-lived reuse.
// Each build creates a self-contained mapper instance; no references to
// caller-provided structures remain.
//
// Build process overview:
//
//  1. Seed the builder with the library gRPC defaults.
//  2. Apply user-provided options (defaults, overrides, prefix rules).
//  3. Normalize and validate all path prefixes.
//  4. Build the HTTP and gRPC segment tries supporting longest-prefix-match
//     with '*' as a single-segment wildcard.
//  5. Freeze all maps into immutable copies.
//
// Errors returned from this function indicate invalid prefixes.
func New(opts ...Option) (apis.Mapper, error) {
	b := newBuilder()

	// (1) Seed the builder with package-level defaults.
	for k, v := range defaultGRPC {
		b.grpcDefaults[k] = int(v)
	}

	// (2) Apply user-supplied options.
	for _, opt := range opts {
		if opt != nil {
			opt(b)
		}
	}

	// (3) + (4) Build the prefix tries.
	var httpTrie *segmenttrie.Trie[int]
	if len(b.httpPrefixes) > 0 {
		httpTrie = segmenttrie.New[int]()
		for _, r := range b.httpPrefixes {
			p, err := normalizeAndValidatePrefix(r.prefix)
			if err != nil {
				return nil, fmt.Errorf("mapper: invalid HTTP path prefix %q: %w", r.prefix, err)
			}
			if !validHTTP(r.val) {
				return nil, fmt.Errorf("mapper: invalid HTTP status %d for prefix %q", r.val, p)
			}
			if err := httpTrie.Insert(p, r.val); err != nil {
				return nil, fmt.Errorf("mapper: cannot insert HTTP prefix %q: %w", p, err)
			}
		}
	}
	var grpcTrie *segmenttrie.Trie[codes.Code]
	if len(b.grpcPrefixes) > 0 {
		grpcTrie = segmenttrie.New[codes.Code]()
		for _, r := range b.grpcPrefixes {
			p, err := normalizeAndValidatePrefix(r.prefix)
			if err != nil {
				return nil, fmt.Errorf("mapper: invalid gRPC path prefix %q: %w", r.prefix, err)
			}
			if err := grpcTrie.Insert(p, codes.Code(r.val)); err != nil {
				return nil, fmt.Errorf("mapper: cannot insert gRPC prefix %q: %w", p, err)
			}
		}
	}

	// (5) Freeze everything into a read-only snapshot.
	return &mapper{
		grpcDefault:  freezeGRPC(b.grpcDefaults),
		httpOverride: freezeHTTP(b.httpOverride),
		grpcOverride: freezeGRPC(b.grpcOverride),
		httpTrie:     httpTrie,
		grpcTrie:     grpcTrie,
		fallbackHTTP: b.fallbackHTTP,
		fallbackGRPC: b.fallbackGRPC,
	}, nil
}

// mapper is an immutable mapper implementation that combines per-status
// defaults, per-status overrides and segment-aware prefix tries over the
// variant path. Lookups are O(depth) and safe for concurrent use.
type mapper struct {
	// grpcDefault holds the gRPC code for an HTTP status.
	grpcDefault map[int]codes.Code

	// httpOverride and grpcOverride hold explicit per-status results.
	// They take precedence over everything else.
	httpOverride map[int]int
	grpcOverride map[int]codes.Code

	// httpTrie and grpcTrie resolve statuses from path prefixes.
	httpTrie *segmenttrie.Trie[int]
	grpcTrie *segmenttrie.Trie[codes.Code]

	// fallbackHTTP is used when the status is unusable. Typically 500.
	fallbackHTTP int

	// fallbackGRPC is used when no rule covers the status. Typically
	// codes.Internal.
	fallbackGRPC codes.Code
}

// HTTPStatus resolves an HTTP status for the given variant path and status.
//
// Resolution order (highest to lowest):
//  1. exact per-status override;
//  2. longest-prefix-match rule on the path;
//  3. the status itself, when it is a valid HTTP status;
//  4. fallback (500).
func (m *mapper) HTTPStatus(path string, status int) int {
	_, v := m.resolveHTTP(path, status)
	return v
}

// GRPCStatus resolves a gRPC code for the given variant path and status.
// Uses the same precedence as HTTPStatus; the default tier is the
// per-status table.
func (m *mapper) GRPCStatus(path string, status int) codes.Code {
	_, v := m.resolveGRPC(path, status)
	return v
}

// Status resolves both HTTP and gRPC using the same inputs.
func (m *mapper) Status(path string, status int) apis.Status {
	return apis.Status{
		HTTP: m.HTTPStatus(path, status),
		GRPC: m.GRPCStatus(path, status),
	}
}

// Explain produces a textual trace of how the mapper resolved HTTP and gRPC
// statuses for a particular (path, status) pair.
//
// Example output:
//
//	path="billing.payment_declined" status=402
//	http: source=prefix pattern="billing" -> 409
//	grpc: source=default -> FAILEDPRECONDITION(9)
//
// source is one of override, prefix, default or fallback.
func (m *mapper) Explain(path string, status int) string {
	var b strings.Builder
	_, _ = fmt.Fprintf(&b, "path=%q status=%d\n", path, status)

	src, h := m.resolveHTTP(path, status)
	if src.pattern != "" {
		_, _ = fmt.Fprintf(&b, "http: source=%s pattern=%q -> %d\n", src.tier, src.pattern, h)
	} else {
		_, _ = fmt.Fprintf(&b, "http: source=%s -> %d\n", src.tier, h)
	}

	src, g := m.resolveGRPC(path, status)
	name := strings.ToUpper(g.String())
	if src.pattern != "" {
		_, _ = fmt.Fprintf(&b, "grpc: source=%s pattern=%q -> %s(%d)", src.tier, src.pattern, name, int(g))
	} else {
		_, _ = fmt.Fprintf(&b, "grpc: source=%s -> %s(%d)", src.tier, name, int(g))
	}
	return b.String()
}

// source records which tier produced a result.
type source struct {
	tier    string
	pattern string
}

func (m *mapper) resolveHTTP(path string, status int) (source, int) {
	// 1) exact per-status override
	if v, ok := m.httpOverride[status]; ok {
		return source{tier: "override"}, v
	}
	// 2) LPM against the path
	if m.httpTrie != nil {
		if v, ok, pat := m.httpTrie.MatchWithPattern(strings.ToLower(path)); ok {
			return source{tier: "prefix", pattern: pat}, v
		}
	}
	// 3) the status itself
	if validHTTP(status) {
		return source{tier: "default"}, status
	}
	// 4) global fallback
	return source{tier: "fallback"}, m.fallbackHTTP
}

func (m *mapper) resolveGRPC(path string, status int) (source, codes.Code) {
	if v, ok := m.grpcOverride[status]; ok {
		return source{tier: "override"}, v
	}
	if m.grpcTrie != nil {
		if v, ok, pat := m.grpcTrie.MatchWithPattern(strings.ToLower(path)); ok {
			return source{tier: "prefix", pattern: pat}, v
		}
	}
	if v, ok := m.grpcDefault[status]; ok {
		return source{tier: "default"}, v
	}
	return source{tier: "fallback"}, m.fallbackGRPC
}

// normalizeAndValidatePrefix ensures a path prefix is canonical and valid:
// trimmed, lowercased, '/' read as '.', at least one non-wildcard segment.
func normalizeAndValidatePrefix(raw string) (string, error) {
	p := strings.ToLower(strings.TrimSpace(raw))
	p = strings.ReplaceAll(p, "/", ".")
	if p == "" {
		return "", fmt.Errorf("empty prefix")
	}
	segs := strings.Split(p, ".")
	allWild := true
	for _, seg := range segs {
		if !validPrefixSegment(seg) { // allows "*" or [a-z0-9_]+
			return "", fmt.Errorf("invalid segment %q", seg)
		}
		if seg != "*" {
			allWild = false
		}
	}
	if allWild {
		return "", fmt.Errorf("prefix cannot consist of '*' only")
	}
	return p, nil
}

// validPrefixSegment reports whether seg is a valid trie segment for prefixes.
// Rules:
//   - empty segments are invalid;
//   - the segment "*" is allowed;
//   - otherwise the segment must match: [a-z0-9_]+
func validPrefixSegment(seg string) bool {
	if seg == "" {
		return false
	}
	if seg == "*" {
		return true
	}
	for i := 0; i < len(seg); i++ {
		c := seg[i]
		if (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') || c == '_' {
			continue
		}
		return false
	}
	return true
}
