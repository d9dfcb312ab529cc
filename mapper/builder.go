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
	"net/http"

	"google.golang.org/grpc/codes"
)

type prefixRule struct {
	// prefix is the raw, dot-separated variant path prefix (may contain "*").
	// It is validated/normalized when we build the trie.
	prefix string
	// val is the numeric transport status to apply when this prefix matches.
	// For gRPC we store ints in the builder and convert to codes.Code later.
	val int
}

type builder struct {
	// grpcDefaults holds per-status gRPC defaults as ints; converted in New().
	grpcDefaults map[int]int

	// httpOverride holds exact per-status HTTP remaps.
	httpOverride map[int]int
	// grpcOverride holds exact per-status gRPC codes as ints.
	grpcOverride map[int]int

	// httpPrefixes and grpcPrefixes hold LPM rules on the variant path,
	// compiled into segment tries.
	httpPrefixes []prefixRule
	grpcPrefixes []prefixRule

	// global fallbacks used when nothing else applies.
	fallbackHTTP int
	fallbackGRPC codes.Code
}

// newBuilder creates an empty builder with maps pre-sized
// to hold typical numbers of entries.
func newBuilder() *builder {
	return &builder{
		grpcDefaults: make(map[int]int, len(defaultGRPC)),

		// overrides are usually few
		httpOverride: make(map[int]int),
		grpcOverride: make(map[int]int),

		fallbackHTTP: http.StatusInternalServerError,
		fallbackGRPC: codes.Internal,
	}
}
