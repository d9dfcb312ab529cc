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

// Package status models HTTP statuses as carried by error variants.
//
// A Status is either numeric (Code(404)) or symbolic (Named("not_found",
// 404)). Symbolic statuses come from a Catalog, a table mapping snake_case
// names to numeric codes. HTTP returns the catalog of every status known to
// net/http, with names derived from the reason phrases:
//
//   - "Not Found"            -> not_found
//   - "I'm a teapot"         -> im_a_teapot
//   - "Request URI Too Long" -> request_uri_too_long
//
// Symbolic statuses keep their name when serialized, numeric statuses are
// serialized as numbers.
package status
