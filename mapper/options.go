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

import "google.golang.org/grpc/codes"

// Option configures the Mapper at build time.
// All options are applied to an internal builder and then frozen into
// an immutable Mapper.
type Option func(*builder)

// WithGRPCDefault sets or replaces the default gRPC code for an HTTP status.
func WithGRPCDefault(status int, grpc int) Option {
	return func(b *builder) { b.grpcDefaults[status] = grpc }
}

// WithHTTPOverride remaps an HTTP status everywhere. Overrides take
// precedence over prefix rules.
func WithHTTPOverride(status int, http int) Option {
	return func(b *builder) { b.httpOverride[status] = http }
}

// WithGRPCOverride forces the gRPC code for an HTTP status everywhere.
// Overrides take precedence over prefix rules.
func WithGRPCOverride(status int, grpc int) Option {
	return func(b *builder) { b.grpcOverride[status] = grpc }
}

// WithHTTPPrefix adds an HTTP longest-prefix-match rule on the variant
// path. A more specific prefix wins. Use "*" to match a single segment.
func WithHTTPPrefix(prefix string, http int) Option {
	return func(b *builder) { b.httpPrefixes = append(b.httpPrefixes, prefixRule{prefix, http}) }
}

// WithGRPCPrefix adds a gRPC longest-prefix-match rule on the variant
// path. A more specific prefix wins. Use "*" to match a single segment.
func WithGRPCPrefix(prefix string, grpc int) Option {
	return func(b *builder) { b.grpcPrefixes = append(b.grpcPrefixes, prefixRule{prefix, grpc}) }
}

// WithFallback replaces the statuses used when nothing else applies.
func WithFallback(http int, grpc codes.Code) Option {
	return func(b *builder) {
		b.fallbackHTTP = http
		b.fallbackGRPC = grpc
	}
}
