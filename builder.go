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

	"dirpx.dev/kcerrors/name"
	"dirpx.dev/kcerrors/status"
)

// Spec describes a variant to define. Exactly one of Key and Class must be
// set.
type Spec struct {
	// Key is the explicit key, normalized before use.
	Key string

	// Class derives the key together with the status name or, for numeric
	// statuses, the parent name: class "user" with status not_found gives
	// UserNotFound.
	Class string

	// Status overrides the default status.
	Status status.Status

	// Severity overrides the scoped or default severity.
	Severity Severity

	// HeaderOnly and Internal can only be switched on; children of a
	// variant that has them set inherit them.
	HeaderOnly bool
	Internal   bool

	// Params documents the translation parameters, in order.
	Params []string
}

func (s Spec) isZero() bool {
	return s.Key == "" && s.Class == "" && s.Status.IsZero() && s.Severity == "" &&
		!s.HeaderOnly && !s.Internal && len(s.Params) == 0
}

// Block defines children of parent. It runs right after parent is
// registered.
type Block func(b *Builder, parent *Variant) error

// Builder defines variants in a Catalog.
//
// A Builder carries the severity scope stack and is not safe for
// concurrent use; create one per definition goroutine.
type Builder struct {
	catalog    *Catalog
	severities []Severity
}

// NewBuilder returns a builder for c.
func NewBuilder(c *Catalog) *Builder {
	return &Builder{catalog: c}
}

// Catalog returns the catalog b defines into.
func (b *Builder) Catalog() *Catalog { return b.catalog }

// Severity returns the innermost active severity scope, or DefaultSeverity.
func (b *Builder) Severity() Severity {
	if n := len(b.severities); n > 0 {
		return b.severities[n-1]
	}
	return DefaultSeverity
}

// WithSeverity runs fn with sev as the default severity of every variant
// defined inside it. Scopes nest; the previous default is restored when fn
// returns or panics.
func (b *Builder) WithSeverity(sev Severity, fn func(*Builder) error) error {
	if fn == nil {
		return fmt.Errorf("%w: severity scope %q", ErrMissingBlock, sev)
	}
	canon, err := ParseSeverity(string(sev))
	if err != nil {
		return err
	}
	b.severities = append(b.severities, canon)
	defer func() { b.severities = b.severities[:len(b.severities)-1] }()
	return fn(b)
}

// Define creates a variant under parent and then runs the child blocks with
// the new variant as their parent.
//
// When a child block fails, Define returns its error; variants registered
// before the failure stay registered.
func (b *Builder) Define(parent *Variant, spec Spec, children ...Block) (*Variant, error) {
	if !b.catalog.owns(parent) {
		return nil, fmt.Errorf("%w: parent is not a variant of this catalog", ErrInvalidExtensionTarget)
	}
	key, err := deriveKey(parent, spec)
	if err != nil {
		return nil, err
	}

	v := &Variant{
		catalog:    b.catalog,
		parent:     parent,
		key:        key,
		name:       name.ToIdentifier(key),
		class:      spec.Class,
		keyBase:    parent.keyBase,
		params:     copyStrings(spec.Params),
		status:     spec.Status,
		severity:   spec.Severity,
		headerOnly: spec.HeaderOnly || parent.headerOnly,
		internal:   spec.Internal || parent.internal,
	}
	if err := b.fill(v); err != nil {
		return nil, err
	}
	if err := b.catalog.register(v); err != nil {
		return nil, err
	}
	if err := b.run(v, children); err != nil {
		return nil, err
	}
	return v, nil
}

// HierarchySpec describes a hierarchy root.
type HierarchySpec struct {
	// Class is the root type name, e.g. "MyErrors". Required.
	Class string

	// Namespace qualifies the root in reports, e.g. "Billing".
	Namespace string

	// KeyBase overrides the catalog key base for the whole hierarchy.
	KeyBase string

	// Status and Severity set the root defaults.
	Status   status.Status
	Severity Severity

	// Binding is the status binding policy; nil means DefaultBindPolicy.
	Binding *BindPolicy
}

// Hierarchy creates a root under the base variant, binds the status
// catalog to it and runs the child blocks.
//
// A second root with the same qualified name fails with ErrAlreadyBound.
func (b *Builder) Hierarchy(spec HierarchySpec, children ...Block) (*Variant, error) {
	if spec.Class == "" {
		return nil, fmt.Errorf("%w: hierarchy class must be provided", ErrMissingIdentifier)
	}
	key := name.Normalize(name.ToKey(spec.Class))
	if key == "" {
		return nil, fmt.Errorf("%w: class %q has no usable characters", ErrMissingIdentifier, spec.Class)
	}
	keyBase := spec.KeyBase
	if keyBase == "" {
		keyBase = b.catalog.keyBase
	}
	base := b.catalog.base
	v := &Variant{
		catalog:    b.catalog,
		parent:     base,
		key:        key,
		name:       name.ToIdentifier(key),
		root:       true,
		namespace:  spec.Namespace,
		keyBase:    keyBase,
		status:     spec.Status,
		severity:   spec.Severity,
		headerOnly: base.headerOnly,
		internal:   base.internal,
	}
	if err := b.fill(v); err != nil {
		return nil, err
	}
	if err := b.catalog.register(v); err != nil {
		return nil, err
	}
	policy := DefaultBindPolicy
	if spec.Binding != nil {
		policy = *spec.Binding
	}
	if _, err := b.Bind(v, policy); err != nil {
		return nil, err
	}
	if err := b.run(v, children); err != nil {
		return nil, err
	}
	return v, nil
}

// fill resolves the inherited defaults of a new variant.
func (b *Builder) fill(v *Variant) error {
	v.i18nKey = v.keyBase + "." + v.key
	if v.status.IsZero() {
		v.status = b.catalog.defaultStatus()
	}
	if v.severity == "" {
		v.severity = b.Severity()
		return nil
	}
	sev, err := ParseSeverity(string(v.severity))
	if err != nil {
		return err
	}
	v.severity = sev
	return nil
}

func (b *Builder) run(parent *Variant, children []Block) error {
	for _, child := range children {
		if child == nil {
			continue
		}
		if err := child(b, parent); err != nil {
			return err
		}
	}
	return nil
}

// deriveKey validates the identifier fields of spec and returns the
// normalized key.
func deriveKey(parent *Variant, spec Spec) (string, error) {
	switch {
	case spec.isZero():
		return "", fmt.Errorf("%w: define what error?", ErrMissingIdentifier)
	case spec.Key != "" && spec.Class != "":
		return "", fmt.Errorf("%w: key %q conflicts with class:%s", ErrConflictingIdentifier, spec.Key, spec.Class)
	case spec.Key == "" && spec.Class == "":
		return "", fmt.Errorf("%w: one of key or class must be provided", ErrMissingIdentifier)
	}

	raw := spec.Key
	if spec.Class != "" {
		if spec.Status.IsNamed() {
			raw = spec.Class + "_" + name.ToKey(spec.Status.Name())
		} else {
			raw = spec.Class + "_" + name.ToKey(parent.name)
		}
	}
	key := name.Normalize(raw)
	if key == "" {
		return "", fmt.Errorf("%w: %q normalizes to an empty key", ErrMissingIdentifier, raw)
	}
	return key, nil
}

func copyStrings(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
