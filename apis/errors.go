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

package apis

// KeyedError is an error classified by a variant of an error hierarchy.
//
// ErrorKey answers "what kind of error is this?" with the normalized
// variant key, e.g. "user_not_found". ErrorPath gives the dotted key path
// from the hierarchy root, e.g. "base.user_not_found", which is what the
// transport mapper matches prefixes against.
type KeyedError interface {
	error

	// ErrorKey returns the normalized variant key. Never empty.
	ErrorKey() string

	// ErrorPath returns the dotted key path from the hierarchy root.
	ErrorPath() string
}

// LocalizedError exposes what is needed to translate an error message.
type LocalizedError interface {
	error

	// LocalizationKey returns the key used for translation lookups.
	LocalizationKey() string

	// LocalizationParams returns a copy of the translation parameters.
	LocalizationParams() map[string]any
}

// CausedError represents an error that exposes its underlying cause.
//
// Implementations return the direct cause, or nil.
type CausedError interface {
	error

	// Cause returns the underlying error that triggered this error, if any.
	Cause() error
}

// Renderable is what a rendering collaborator needs to decide between a
// header-only response and a full body.
type Renderable interface {
	error

	// StatusCode returns the numeric HTTP status of the instance.
	StatusCode() int

	// HeaderOnly reports that no body should be rendered.
	HeaderOnly() bool

	// ErrorResult returns the response envelope. Translation failures are
	// returned as errors.
	ErrorResult() (Envelope, error)
}

// SeverityError exposes the logging severity of an error.
type SeverityError interface {
	error

	// ErrorSeverity returns a logrus level name, e.g. "error" or "warning".
	ErrorSeverity() string
}
