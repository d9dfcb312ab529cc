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

// Package mapper provides deterministic, immutable mappings from error
// variants to transport-level statuses for HTTP and gRPC.
//
// # Overview
//
// An instance of a variant carries two things the transports care about:
//
//  1. its HTTP status (the variant default or an instance override),
//  2. the variant path, the dotted key path from the hierarchy root
//     (e.g. "billing.payment_declined").
//
// A Mapper turns that pair into the status actually written. It is:
//
//   - immutable: a Mapper is a snapshot, safe for concurrent reuse;
//   - overridable: callers can remap statuses globally;
//   - prefix-aware: callers can add rules for whole subtrees of a hierarchy;
//   - dual: HTTP and gRPC are resolved with the same logic.
//
// # Resolution model
//
// A Mapper resolves statuses in the following order:
//
//  1. exact override for the status;
//  2. longest-prefix-match (LPM) on the variant path;
//  3. default: the status itself for HTTP, the status table for gRPC;
//  4. global fallback (500 / codes.Internal).
//
// Prefix rules are segment-aware: paths are treated as "."-separated segments,
// and "*" matches exactly one segment. For example:
//
//	WithHTTPPrefix("billing", http.StatusPaymentRequired)
//	WithHTTPPrefix("billing.*.declined", http.StatusConflict)
//
// The more specific prefix wins.
//
// # Building a mapper
//
// A Mapper is created once and reused:
//
//	m, err := mapper.New(
//	    mapper.WithHTTPOverride(http.StatusTeapot, http.StatusBadRequest),
//	    mapper.WithGRPCPrefix("billing", int(codes.FailedPrecondition)),
//	)
//	if err != nil {
//	    // invalid prefix
//	}
//
//	st := m.Status(e.ErrorPath(), e.StatusCode())
//
// # Diagnostics
//
// Mapper.Explain returns a human-readable trace of how a particular
// (path, status) was resolved, including which tier matched and, for
// prefixes, which pattern was used. It is not meant for machine parsing.
package mapper
