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
	"errors"

	"dirpx.dev/kcerrors/apis"
	"dirpx.dev/kcerrors/status"
)

// DefaultKeyBase is the localization key base of hierarchies that do not
// set their own.
const DefaultKeyBase = "kcerrors"

// Variant is a defined error category. Variants are created by a Builder
// and never change afterwards.
type Variant struct {
	catalog *Catalog
	parent  *Variant

	key  string
	name string
	// class is the class tag the key was derived from, if any.
	class string

	// root marks a hierarchy root; namespace is only set on roots.
	root      bool
	namespace string

	keyBase string
	i18nKey string
	params  []string

	status     status.Status
	severity   Severity
	headerOnly bool
	internal   bool
}

// Key returns the normalized key, e.g. "user_not_found".
func (v *Variant) Key() string { return v.key }

// Name returns the display name, e.g. "UserNotFound".
func (v *Variant) Name() string { return v.name }

// Class returns the class tag the key was derived from, or "".
func (v *Variant) Class() string { return v.class }

// Parent returns the parent variant, or nil for the base.
func (v *Variant) Parent() *Variant { return v.parent }

// Catalog returns the catalog that owns v.
func (v *Variant) Catalog() *Catalog { return v.catalog }

// IsBase reports whether v is the base variant of its catalog.
func (v *Variant) IsBase() bool { return v.parent == nil }

// IsRoot reports whether v is a hierarchy root.
func (v *Variant) IsRoot() bool { return v.root }

// Namespace returns the namespace of the hierarchy v belongs to.
func (v *Variant) Namespace() string {
	if r := v.Root(); r != nil {
		return r.namespace
	}
	return ""
}

// Root returns the hierarchy root v belongs to, or nil when v is the base
// or a direct descendant of the base outside any hierarchy.
func (v *Variant) Root() *Variant {
	for cur := v; cur != nil; cur = cur.parent {
		if cur.root {
			return cur
		}
	}
	return nil
}

// QualifiedName returns the dotted display path used in reports, e.g.
// "My.Base.UserNotFound".
func (v *Variant) QualifiedName() string {
	switch {
	case v.parent == nil:
		return v.name
	case v.root:
		if v.namespace != "" {
			return v.namespace + "." + v.name
		}
		return v.name
	default:
		return v.parent.QualifiedName() + "." + v.name
	}
}

// Path returns the dotted key path from the hierarchy root, e.g.
// "base.user_not_found".
func (v *Variant) Path() string {
	if v.parent == nil || v.root {
		return v.key
	}
	return v.parent.Path() + "." + v.key
}

// LocalizationKeyBase returns the key base inherited from the root.
func (v *Variant) LocalizationKeyBase() string { return v.keyBase }

// LocalizationKey returns "{base}.{key}".
func (v *Variant) LocalizationKey() string { return v.i18nKey }

// LocalizationParams returns the documented translation parameter names.
func (v *Variant) LocalizationParams() []string {
	if len(v.params) == 0 {
		return nil
	}
	out := make([]string, len(v.params))
	copy(out, v.params)
	return out
}

// DefaultStatus returns the status used when an instance sets none.
func (v *Variant) DefaultStatus() status.Status { return v.status }

// DefaultSeverity returns the severity instances are logged with.
func (v *Variant) DefaultSeverity() Severity { return v.severity }

// HeaderOnly reports whether instances render without a body.
func (v *Variant) HeaderOnly() bool { return v.headerOnly }

// Internal reports whether clients should not display the message.
func (v *Variant) Internal() bool { return v.internal }

// String returns the qualified name.
func (v *Variant) String() string { return v.QualifiedName() }

// IsA reports whether v is anc or one of its descendants.
func (v *Variant) IsA(anc *Variant) bool {
	if anc == nil {
		return false
	}
	for cur := v; cur != nil; cur = cur.parent {
		if cur == anc {
			return true
		}
	}
	return false
}

// Match reports whether err wraps an instance of v or of one of its
// descendants.
func (v *Variant) Match(err error) bool {
	var e *Error
	if !errors.As(err, &e) || e == nil {
		return false
	}
	return e.variant.IsA(v)
}

// Descriptor returns the flat description of v. Transport statuses are
// left unresolved.
func (v *Variant) Descriptor() apis.VariantDescriptor {
	d := apis.VariantDescriptor{
		Name:          v.name,
		Key:           v.key,
		QualifiedName: v.QualifiedName(),
		Path:          v.Path(),
		I18nKey:       v.i18nKey,
		I18nParams:    v.LocalizationParams(),
		Status:        v.status,
		Severity:      string(v.severity),
		HeaderOnly:    v.headerOnly,
		Internal:      v.internal,
	}
	if v.parent != nil {
		d.Parent = v.parent.QualifiedName()
	}
	return d
}
