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

package name

import (
	"errors"
	"regexp"
	"strings"
	"unicode"
)

var (
	// nonWordRe matches every rune that is not a "word" rune: letters,
	// combining marks, digits and connector punctuation (including '_').
	nonWordRe = regexp.MustCompile(`[^\pL\pM\pN\p{Pc}]`)

	// squeezeRe matches runs of underscores.
	squeezeRe = regexp.MustCompile(`_+`)

	// segmentRe matches a separator followed by the letter that starts the
	// next segment of a key.
	segmentRe = regexp.MustCompile(`_(\pL)`)
)

// ErrKeyEmpty is returned by ParseKey when nothing is left of the input
// after normalization.
var ErrKeyEmpty = errors.New("kcerrors: empty key")

// Demodulize strips any namespace qualification from an identifier and
// returns the last component. Both "::" and "." are treated as separators:
//
//	Demodulize("My::Base::UserNotFound") == "UserNotFound"
//	Demodulize("My.Base.UserNotFound")   == "UserNotFound"
func Demodulize(s string) string {
	if i := strings.LastIndex(s, "::"); i >= 0 {
		s = s[i+2:]
	}
	if i := strings.LastIndex(s, "."); i >= 0 {
		s = s[i+1:]
	}
	return s
}

// Underscore converts ThisName to this_name by inserting '_' in front of
// every uppercase rune and lowercasing it. Leading separators are dropped.
func Underscore(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 4)
	for _, r := range s {
		// uppercase runes without a lowercase form stay as they are
		if lr := unicode.ToLower(r); unicode.IsUpper(r) && lr != r {
			b.WriteByte('_')
			b.WriteRune(lr)
			continue
		}
		b.WriteRune(r)
	}
	return strings.TrimLeft(b.String(), "_")
}

// ToKey demodulizes and underscores an identifier. It is idempotent:
// ToKey(ToKey(s)) == ToKey(s).
func ToKey(identifier string) string {
	return Underscore(Demodulize(identifier))
}

// ToIdentifier converts this_name to ThisName. Every letter following a
// '_' (including an implicit one at the start) is uppercased and the
// separator is removed. Separators not followed by a letter are kept, so
// "child_404" becomes "Child_404".
func ToIdentifier(key string) string {
	return segmentRe.ReplaceAllStringFunc("_"+key, func(m string) string {
		return strings.ToUpper(m[1:])
	})
}

// Normalize brings an arbitrary key closer to its canonical form:
//
//   - every non-word rune is replaced with '_';
//   - runs of '_' are squeezed to a single '_';
//   - leading and trailing '_' are trimmed.
//
// It does not change case: Normalize("_Foo__bar_") == "Foo_bar".
func Normalize(s string) string {
	s = nonWordRe.ReplaceAllString(s, "_")
	s = squeezeRe.ReplaceAllString(s, "_")
	return strings.Trim(s, "_")
}

// ParseKey normalizes s and fails with ErrKeyEmpty when the result is empty.
func ParseKey(s string) (string, error) {
	k := Normalize(s)
	if k == "" {
		return "", ErrKeyEmpty
	}
	return k, nil
}

// SafeIdentifier escapes a status catalog name so it can be used as a
// constructor name: non-word runes become '_' and repeated '_' are
// squeezed. Unlike Normalize it does not trim.
func SafeIdentifier(s string) string {
	s = nonWordRe.ReplaceAllString(s, "_")
	return squeezeRe.ReplaceAllString(s, "_")
}
