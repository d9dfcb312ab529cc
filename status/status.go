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

package status

import (
	"encoding"
	"encoding/json"
	"errors"
	"net/http"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"
)

// Status is an HTTP status that is either numeric or symbolic.
//
// The zero value means "not provided".
type Status struct {
	code int
	name string
}

const (
	// nameFmt is the canonical pattern for symbolic status names.
	nameFmt = `^[a-z][a-z0-9_]*$`
)

var (
	nameRe     = regexp.MustCompile(nameFmt)
	separateRe = regexp.MustCompile(`[^a-z0-9]+`)
)

var (
	// ErrStatusInvalid is returned when a value cannot be parsed as a status.
	ErrStatusInvalid = errors.New("kcerrors: invalid status")
)

var (
	_ encoding.TextMarshaler   = Status{}
	_ encoding.TextUnmarshaler = (*Status)(nil)
	_ json.Marshaler           = Status{}
	_ json.Unmarshaler         = (*Status)(nil)
)

// BadRequest is the symbolic default status of a variant when a status
// catalog is available.
var BadRequest = Named("bad_request", http.StatusBadRequest)

// Fallback is the numeric default status of a variant when no status
// catalog is available.
var Fallback = Code(http.StatusBadRequest)

// Code returns a numeric status.
func Code(code int) Status { return Status{code: code} }

// Named returns a symbolic status. code may be 0 when the name has no
// numeric equivalent.
func Named(name string, code int) Status { return Status{code: code, name: name} }

// Int returns the numeric HTTP status, or 0 for a symbolic status without
// a known code.
func (s Status) Int() int { return s.code }

// Name returns the symbolic name, or "" for a numeric status.
func (s Status) Name() string { return s.name }

// IsNamed reports whether s is symbolic.
func (s Status) IsNamed() bool { return s.name != "" }

// IsZero reports whether s was not provided.
func (s Status) IsZero() bool { return s.code == 0 && s.name == "" }

// String returns the name of a symbolic status or the decimal code of a
// numeric one.
func (s Status) String() string {
	if s.name != "" {
		return s.name
	}
	return strconv.Itoa(s.code)
}

// MarshalText implements encoding.TextMarshaler.
func (s Status) MarshalText() ([]byte, error) {
	if s.IsZero() {
		return nil, ErrStatusInvalid
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Names are resolved
// against the HTTP catalog.
func (s *Status) UnmarshalText(text []byte) error {
	parsed, err := HTTP().Parse(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// MarshalJSON writes symbolic statuses as strings and numeric ones as
// numbers.
func (s Status) MarshalJSON() ([]byte, error) {
	if s.name != "" {
		return json.Marshal(s.name)
	}
	return json.Marshal(s.code)
}

// UnmarshalJSON accepts both a JSON number and a JSON string.
func (s *Status) UnmarshalJSON(b []byte) error {
	var n int
	if err := json.Unmarshal(b, &n); err == nil {
		*s = Code(n)
		return nil
	}
	var str string
	if err := json.Unmarshal(b, &str); err != nil {
		return ErrStatusInvalid
	}
	return s.UnmarshalText([]byte(str))
}

// Normalize brings a status name closer to the canonical form: trimmed,
// lowercased, apostrophes dropped and every other run of non-alphanumeric
// characters replaced with '_'.
func Normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "'", "")
	s = separateRe.ReplaceAllString(s, "_")
	return strings.Trim(s, "_")
}

// Catalog is an immutable table of named status codes.
type Catalog struct {
	byName map[string]int
	byCode map[int]string
	names  []string
}

// NewCatalog builds a catalog from name -> code entries. Names are
// normalized; a name that is still invalid afterwards, or a code outside
// 100..999, fails with ErrStatusInvalid.
//
// When several names share a code, ByCode returns the lexically smallest.
func NewCatalog(entries map[string]int) (*Catalog, error) {
	c := &Catalog{
		byName: make(map[string]int, len(entries)),
		byCode: make(map[int]string, len(entries)),
	}
	for raw, code := range entries {
		n := Normalize(raw)
		if !nameRe.MatchString(n) || code < 100 || code > 999 {
			return nil, ErrStatusInvalid
		}
		c.byName[n] = code
	}
	c.names = make([]string, 0, len(c.byName))
	for n := range c.byName {
		c.names = append(c.names, n)
	}
	sort.Strings(c.names)
	for _, n := range c.names {
		code := c.byName[n]
		if _, ok := c.byCode[code]; !ok {
			c.byCode[code] = n
		}
	}
	return c, nil
}

// MustCatalog is the panic-on-error variant of NewCatalog.
func MustCatalog(entries map[string]int) *Catalog {
	c, err := NewCatalog(entries)
	if err != nil {
		panic(err)
	}
	return c
}

var (
	httpOnce    sync.Once
	httpCatalog *Catalog
)

// HTTP returns the catalog of all statuses net/http knows a reason phrase
// for.
func HTTP() *Catalog {
	httpOnce.Do(func() {
		entries := make(map[string]int)
		for code := 100; code < 600; code++ {
			if text := http.StatusText(code); text != "" {
				entries[Normalize(text)] = code
			}
		}
		httpCatalog = MustCatalog(entries)
	})
	return httpCatalog
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.names)
}

// Names returns all entry names in lexical order.
func (c *Catalog) Names() []string {
	if c == nil {
		return nil
	}
	out := make([]string, len(c.names))
	copy(out, c.names)
	return out
}

// Lookup returns the symbolic status registered under name.
func (c *Catalog) Lookup(name string) (Status, bool) {
	if c == nil {
		return Status{}, false
	}
	code, ok := c.byName[Normalize(name)]
	if !ok {
		return Status{}, false
	}
	return Named(Normalize(name), code), true
}

// ByCode returns the symbolic status for a numeric code.
func (c *Catalog) ByCode(code int) (Status, bool) {
	if c == nil {
		return Status{}, false
	}
	n, ok := c.byCode[code]
	if !ok {
		return Status{}, false
	}
	return Named(n, code), true
}

// Parse converts user input into a Status.
//
// Decimal input yields a numeric status. A known name yields the catalog
// entry; an unknown but well-formed name yields a symbolic status without a
// numeric code. Anything else fails with ErrStatusInvalid.
func (c *Catalog) Parse(s string) (Status, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		if n < 100 || n > 999 {
			return Status{}, ErrStatusInvalid
		}
		return Code(n), nil
	}
	if st, ok := c.Lookup(s); ok {
		return st, nil
	}
	n := Normalize(s)
	if !nameRe.MatchString(n) {
		return Status{}, ErrStatusInvalid
	}
	return Named(n, 0), nil
}
