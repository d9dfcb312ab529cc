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

import "errors"

var (
	// ErrMissingIdentifier is returned when a definition has neither a key
	// nor a class, or when the identifier normalizes to nothing.
	ErrMissingIdentifier = errors.New("kcerrors: missing identifier")

	// ErrConflictingIdentifier is returned when a definition has both a key
	// and a class.
	ErrConflictingIdentifier = errors.New("kcerrors: conflicting identifier")

	// ErrDuplicateVariant is returned when the derived display name already
	// exists under the parent or one of its ancestors.
	ErrDuplicateVariant = errors.New("kcerrors: duplicate variant")

	// ErrAlreadyBound is returned when a root is bound twice, or a root
	// hierarchy of the same name already exists.
	ErrAlreadyBound = errors.New("kcerrors: already bound")

	// ErrInvalidExtensionTarget is returned when the builder is pointed at
	// a variant that cannot be extended: nil, owned by another catalog, or
	// not a hierarchy root where a root is required.
	ErrInvalidExtensionTarget = errors.New("kcerrors: invalid extension target")

	// ErrInvalidCause is returned when a cause is a nil value hidden in a
	// non-nil error interface.
	ErrInvalidCause = errors.New("kcerrors: invalid cause")

	// ErrFrozen is returned for definitions after Catalog.Freeze.
	ErrFrozen = errors.New("kcerrors: catalog is frozen")

	// ErrMissingBlock is returned by WithSeverity without a block.
	ErrMissingBlock = errors.New("kcerrors: missing block")

	// ErrInvalidSeverity is returned for severities that are not logrus levels.
	ErrInvalidSeverity = errors.New("kcerrors: invalid severity")
)
