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

	"dirpx.dev/kcerrors/name"
	"dirpx.dev/kcerrors/status"
)

// BindPolicy toggles what Bind generates from the status catalog.
type BindPolicy struct {
	// Methods exposes one Constructor per status.
	Methods bool
	// Errors defines one variant per status directly under the root.
	Errors bool
}

// DefaultBindPolicy enables both constructors and eager variants.
var DefaultBindPolicy = BindPolicy{Methods: true, Errors: true}

// Constructor defines a variant with a status pre-filled. The parent must
// be the bound root or one of its descendants.
type Constructor func(parent *Variant, spec Spec, children ...Block) (*Variant, error)

// Binding is the result of binding a status catalog to a hierarchy root.
type Binding struct {
	builder *Builder
	root    *Variant
	policy  BindPolicy

	// statuses maps safe constructor names to statuses.
	statuses map[string]status.Status
	variants []*Variant
}

// Bind attaches the status catalog of the builder's catalog to root.
//
// A root can be bound once; a second call fails with ErrAlreadyBound. The
// target must be a hierarchy root of the same catalog, otherwise
// ErrInvalidExtensionTarget is returned. Without a status catalog the
// returned binding is empty.
func (b *Builder) Bind(root *Variant, policy BindPolicy) (*Binding, error) {
	switch {
	case root == nil:
		return nil, fmt.Errorf("%w: nil root", ErrInvalidExtensionTarget)
	case !b.catalog.owns(root):
		return nil, fmt.Errorf("%w: %s belongs to another catalog", ErrInvalidExtensionTarget, root.QualifiedName())
	case root.IsBase():
		return nil, fmt.Errorf("%w: cannot extend the base variant", ErrInvalidExtensionTarget)
	case !root.IsRoot():
		return nil, fmt.Errorf("%w: %s is not a hierarchy root", ErrInvalidExtensionTarget, root.QualifiedName())
	}

	bd := &Binding{
		builder:  b,
		root:     root,
		policy:   policy,
		statuses: make(map[string]status.Status),
	}
	if err := b.catalog.bind(bd); err != nil {
		return nil, err
	}

	sc := b.catalog.statuses
	if sc == nil {
		return bd, nil
	}
	if policy.Methods {
		for _, n := range sc.Names() {
			st, _ := sc.Lookup(n)
			bd.statuses[name.SafeIdentifier(n)] = st
		}
	}
	if policy.Errors {
		for _, n := range sc.Names() {
			st, _ := sc.Lookup(n)
			v, err := b.Define(root, Spec{Key: n, Status: st})
			if err != nil {
				return bd, err
			}
			bd.variants = append(bd.variants, v)
		}
	}
	return bd, nil
}

// Root returns the bound root.
func (bd *Binding) Root() *Variant { return bd.root }

// Policy returns the policy the root was bound with.
func (bd *Binding) Policy() BindPolicy { return bd.policy }

// Constructors returns the available constructor names, sorted.
func (bd *Binding) Constructors() []string {
	out := make([]string, 0, len(bd.statuses))
	for n := range bd.statuses {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Variants returns the eagerly defined status variants, sorted by name.
func (bd *Binding) Variants() []*Variant {
	out := make([]*Variant, len(bd.variants))
	copy(out, bd.variants)
	return out
}

// Constructor returns the constructor for a status name.
func (bd *Binding) Constructor(statusName string) (Constructor, bool) {
	st, ok := bd.statuses[name.SafeIdentifier(statusName)]
	if !ok {
		return nil, false
	}
	return func(parent *Variant, spec Spec, children ...Block) (*Variant, error) {
		if parent == nil || !parent.IsA(bd.root) {
			return nil, fmt.Errorf("%w: parent must descend from %s", ErrInvalidExtensionTarget, bd.root.QualifiedName())
		}
		spec.Status = st
		return bd.builder.Define(parent, spec, children...)
	}, true
}

// Define is shorthand for looking up the constructor of statusName and
// calling it. Unknown status names fail with ErrInvalidExtensionTarget.
func (bd *Binding) Define(parent *Variant, statusName string, spec Spec, children ...Block) (*Variant, error) {
	ctor, ok := bd.Constructor(statusName)
	if !ok {
		return nil, fmt.Errorf("%w: no constructor for status %q", ErrInvalidExtensionTarget, statusName)
	}
	return ctor(parent, spec, children...)
}
