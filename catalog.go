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

package kcerrors

import (
	"fmt"
	"sort"
	"sync"

	"dirpx.dev/kcerrors/status"
)

// CatalogOption configures a Catalog at construction.
type CatalogOption func(*Catalog)

// WithStatusCatalog makes symbolic statuses available. Without it, status
// bindings are no-ops and variants default to numeric 400.
func WithStatusCatalog(sc *status.Catalog) CatalogOption {
	return func(c *Catalog) { c.statuses = sc }
}

// WithTranslator sets the translator used to resolve instance messages.
func WithTranslator(t Translator) CatalogOption {
	return func(c *Catalog) { c.translator = t }
}

// WithKeyBase replaces DefaultKeyBase for the base variant and for
// hierarchies that do not set their own key base.
func WithKeyBase(base string) CatalogOption {
	return func(c *Catalog) {
		if base != "" {
			c.keyBase = base
		}
	}
}

// Catalog is the registry of defined variants.
//
// Definitions happen during startup through a Builder. Freeze ends that
// phase; runtime lookups and reports go through Snapshot. All methods are
// safe for concurrent use.
type Catalog struct {
	mu sync.RWMutex

	base       *Variant
	keyBase    string
	statuses   *status.Catalog
	translator Translator

	// variants holds every variant except the base, in definition order.
	variants []*Variant
	// children indexes display names by parent for the uniqueness check.
	children map[*Variant]map[string]*Variant
	roots    map[string]*Variant
	bindings map[*Variant]*Binding
	// names indexes every variant, the base included, by qualified name.
	names map[string]*Variant

	frozen   bool
	snapshot *Snapshot
}

// NewCatalog returns an empty catalog holding only the base variant.
func NewCatalog(opts ...CatalogOption) *Catalog {
	c := &Catalog{
		keyBase:  DefaultKeyBase,
		children: make(map[*Variant]map[string]*Variant),
		roots:    make(map[string]*Variant),
		bindings: make(map[*Variant]*Binding),
		names:    make(map[string]*Variant),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.base = &Variant{
		catalog:  c,
		key:      "error",
		name:     "Error",
		keyBase:  c.keyBase,
		i18nKey:  c.keyBase + ".error",
		status:   c.defaultStatus(),
		severity: DefaultSeverity,
	}
	c.names[c.base.name] = c.base
	return c
}

// Base returns the base variant every hierarchy descends from.
func (c *Catalog) Base() *Variant { return c.base }

// StatusCatalog returns the configured status catalog, or nil.
func (c *Catalog) StatusCatalog() *status.Catalog { return c.statuses }

// Translator returns the configured translator, or nil.
func (c *Catalog) Translator() Translator { return c.translator }

// defaultStatus is bad_request when a status catalog is configured and the
// numeric 400 otherwise.
func (c *Catalog) defaultStatus() status.Status {
	if c.statuses != nil {
		if st, ok := c.statuses.Lookup(status.BadRequest.Name()); ok {
			return st
		}
		return status.BadRequest
	}
	return status.Fallback
}

// Freeze ends the definition phase. Later definitions fail with ErrFrozen.
func (c *Catalog) Freeze() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.frozen = true
}

// Frozen reports whether Freeze was called.
func (c *Catalog) Frozen() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.frozen
}

// Snapshot returns an immutable view of the current definitions. After
// Freeze the same snapshot is returned on every call.
func (c *Catalog) Snapshot() *Snapshot {
	c.mu.RLock()
	if c.snapshot != nil {
		s := c.snapshot
		c.mu.RUnlock()
		return s
	}
	s := newSnapshot(c.base, c.variants)
	frozen := c.frozen
	c.mu.RUnlock()

	if frozen {
		c.mu.Lock()
		if c.snapshot == nil {
			c.snapshot = s
		}
		s = c.snapshot
		c.mu.Unlock()
	}
	return s
}

// Variants returns all variants except the base, in definition order.
func (c *Catalog) Variants() []*Variant { return c.Snapshot().Variants() }

// Lookup finds a variant by qualified name.
func (c *Catalog) Lookup(qualifiedName string) (*Variant, bool) {
	return c.Snapshot().Lookup(qualifiedName)
}

// Binding returns the binding of a root, if it was bound.
func (c *Catalog) Binding(root *Variant) (*Binding, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	b, ok := c.bindings[root]
	return b, ok
}

// owns reports whether v belongs to c.
func (c *Catalog) owns(v *Variant) bool { return v != nil && v.catalog == c }

// register adds v after checking the frozen state and name uniqueness.
func (c *Catalog) register(v *Variant) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.frozen {
		return fmt.Errorf("%w: cannot define %s", ErrFrozen, v.QualifiedName())
	}
	qn := v.QualifiedName()
	if v.root {
		if _, ok := c.roots[qn]; ok || qn == c.base.name {
			return fmt.Errorf("%w: %s is already a root hierarchy", ErrAlreadyBound, qn)
		}
		if existing, ok := c.names[qn]; ok {
			return fmt.Errorf("%w: root %s collides with %s", ErrDuplicateVariant, qn, existing.Path())
		}
		c.roots[qn] = v
	} else {
		for anc := v.parent; anc != nil; anc = anc.parent {
			if existing, ok := c.children[anc][v.name]; ok {
				return duplicateError(v, existing)
			}
		}
		if existing, ok := c.names[qn]; ok {
			return fmt.Errorf("%w: %s already names a variant of hierarchy %s",
				ErrDuplicateVariant, qn, existing.Path())
		}
		kids := c.children[v.parent]
		if kids == nil {
			kids = make(map[string]*Variant)
			c.children[v.parent] = kids
		}
		kids[v.name] = v
	}
	c.names[qn] = v
	c.variants = append(c.variants, v)
	return nil
}

func duplicateError(v, existing *Variant) error {
	if v.class != "" {
		return fmt.Errorf("%w: key:%s already exists as %s with class:%s",
			ErrDuplicateVariant, v.key, existing.QualifiedName(), v.class)
	}
	return fmt.Errorf("%w: key:%s already exists as %s", ErrDuplicateVariant, v.key, existing.QualifiedName())
}

// bind records b as the binding of its root.
func (c *Catalog) bind(b *Binding) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.frozen {
		return fmt.Errorf("%w: cannot bind %s", ErrFrozen, b.root.QualifiedName())
	}
	if _, ok := c.bindings[b.root]; ok {
		return fmt.Errorf("%w: %s is already a root hierarchy", ErrAlreadyBound, b.root.QualifiedName())
	}
	c.bindings[b.root] = b
	return nil
}

// Snapshot is an immutable, ordered view of a catalog.
type Snapshot struct {
	base     *Variant
	variants []*Variant
	byName   map[string]*Variant
	children map[*Variant][]*Variant
}

func newSnapshot(base *Variant, variants []*Variant) *Snapshot {
	s := &Snapshot{
		base:     base,
		variants: make([]*Variant, len(variants)),
		byName:   make(map[string]*Variant, len(variants)+1),
		children: make(map[*Variant][]*Variant),
	}
	copy(s.variants, variants)
	s.byName[base.QualifiedName()] = base
	for _, v := range s.variants {
		s.byName[v.QualifiedName()] = v
		s.children[v.parent] = append(s.children[v.parent], v)
	}
	for _, kids := range s.children {
		sort.Slice(kids, func(i, j int) bool { return kids[i].QualifiedName() < kids[j].QualifiedName() })
	}
	return s
}

// Base returns the base variant.
func (s *Snapshot) Base() *Variant { return s.base }

// Len returns the number of variants, base excluded.
func (s *Snapshot) Len() int { return len(s.variants) }

// Variants returns all variants except the base, in definition order.
func (s *Snapshot) Variants() []*Variant {
	out := make([]*Variant, len(s.variants))
	copy(out, s.variants)
	return out
}

// Lookup finds a variant by qualified name.
func (s *Snapshot) Lookup(qualifiedName string) (*Variant, bool) {
	v, ok := s.byName[qualifiedName]
	return v, ok
}

// Children returns the direct children of v sorted by qualified name.
func (s *Snapshot) Children(v *Variant) []*Variant {
	kids := s.children[v]
	out := make([]*Variant, len(kids))
	copy(out, kids)
	return out
}

// Roots returns the hierarchy roots sorted by qualified name.
func (s *Snapshot) Roots() []*Variant {
	var out []*Variant
	for _, v := range s.variants {
		if v.root {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].QualifiedName() < out[j].QualifiedName() })
	return out
}
