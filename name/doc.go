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

// Package name converts between the identifiers used for error variants.
//
// A variant has two spellings:
//
//   - a key, the normalized snake_case form used for lookups and
//     localization keys ("user_not_found");
//   - a display name, the PascalCase form exposed to callers and printed in
//     reports ("UserNotFound").
//
// The conversions are deliberately naive. ToKey is idempotent, but the
// round trip ToKey(ToIdentifier(k)) is not guaranteed to give back k for
// identifiers containing acronyms ("HTTPError" becomes "h_t_t_p_error").
// Callers should only rely on the forward direction being stable.
package name
