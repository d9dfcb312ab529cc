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
	"net/http"
	"reflect"
	"sync"

	"golang.org/x/text/language"

	"dirpx.dev/kcerrors/apis"
	"dirpx.dev/kcerrors/status"
)

// Error is one occurrence of a Variant.
//
// Instances are immutable after New; only the translated message is
// computed lazily and memoized, so an *Error can be shared between
// goroutines.
type Error struct {
	variant *Variant
	message string
	status  status.Status
	extra   any
	cause   error
	params  map[string]any

	mu   sync.Mutex
	i18n *Message
}

var (
	_ apis.KeyedError     = (*Error)(nil)
	_ apis.LocalizedError = (*Error)(nil)
	_ apis.CausedError    = (*Error)(nil)
	_ apis.Renderable     = (*Error)(nil)
	_ apis.SeverityError  = (*Error)(nil)
)

// New creates an instance of v.
//
// A non-empty msg wins over WithMessage. Translation parameters are merged
// in this order, later entries winning: WithParams, the cause message under
// "cause", the stringified query under "query", then WithParam and
// WithExtraParams. A cause holding a nil pointer fails with ErrInvalidCause.
func (v *Variant) New(msg string, opts ...Option) (*Error, error) {
	var o options
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if o.cause != nil && isNilValue(o.cause) {
		return nil, fmt.Errorf("%w: %T is nil", ErrInvalidCause, o.cause)
	}

	e := &Error{
		variant: v,
		message: msg,
		status:  o.status,
		extra:   o.extra,
		cause:   o.cause,
		params:  copyParams(o.params),
	}
	if e.message == "" {
		e.message = o.message
	}
	if e.status.IsZero() {
		e.status = v.status
	}
	if o.cause != nil {
		e.params["cause"] = o.cause.Error()
	}
	if o.query != nil {
		e.params["query"] = Stringify(o.query)
	}
	for k, val := range o.rest {
		e.params[k] = val
	}
	return e, nil
}

// Variant returns the variant e was created from.
func (e *Error) Variant() *Variant { return e.variant }

// Name returns the variant key.
func (e *Error) Name() string { return e.variant.key }

// ErrorKey implements apis.KeyedError.
func (e *Error) ErrorKey() string { return e.variant.key }

// ErrorPath implements apis.KeyedError.
func (e *Error) ErrorPath() string { return e.variant.Path() }

// Status returns the instance status.
func (e *Error) Status() status.Status { return e.status }

// StatusCode returns the numeric HTTP status. Symbolic statuses without a
// code are looked up in the status catalog and fall back to 500.
func (e *Error) StatusCode() int {
	if code := e.status.Int(); code != 0 {
		return code
	}
	if sc := e.variant.catalog.statuses; sc != nil {
		if st, ok := sc.Lookup(e.status.Name()); ok {
			return st.Int()
		}
	}
	return http.StatusInternalServerError
}

// HeaderOnly reports whether the instance renders without a body.
func (e *Error) HeaderOnly() bool { return e.variant.headerOnly }

// Internal reports whether clients should not display the message.
func (e *Error) Internal() bool { return e.variant.internal }

// Severity returns the severity of the variant.
func (e *Error) Severity() Severity { return e.variant.severity }

// ErrorSeverity implements apis.SeverityError.
func (e *Error) ErrorSeverity() string { return string(e.variant.severity) }

// Extra returns the caller supplied extra data.
func (e *Error) Extra() any { return e.extra }

// Cause returns the wrapped cause, or nil.
func (e *Error) Cause() error { return e.cause }

// Unwrap returns the cause, enabling errors.Is / errors.As chains.
func (e *Error) Unwrap() error { return e.cause }

// Is reports whether target is an instance of the same variant as e or of
// one of its ancestors.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || t == nil {
		return false
	}
	return e.variant.IsA(t.variant)
}

// LocalizationKey returns the variant localization key.
func (e *Error) LocalizationKey() string { return e.variant.i18nKey }

// LocalizationParams returns a copy of the translation parameters.
func (e *Error) LocalizationParams() map[string]any { return copyParams(e.params) }

// MessageOverride returns the explicit message, or "".
func (e *Error) MessageOverride() string { return e.message }

// Message returns the explicit message, or I18nMessage.
func (e *Error) Message() (Message, error) {
	if e.message != "" {
		return e.explicit(), nil
	}
	return e.I18nMessage()
}

// MessageIn is Message with an explicit locale.
func (e *Error) MessageIn(locale language.Tag) (Message, error) {
	if e.message != "" {
		return e.explicit(), nil
	}
	return e.I18nMessageIn(locale)
}

// I18nMessage translates the localization key with the catalog translator.
// The first successful result is memoized.
func (e *Error) I18nMessage() (Message, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.i18n != nil {
		return *e.i18n, nil
	}
	m, err := resolve(e.variant.catalog.translator, e.variant.i18nKey, e.params, language.Und)
	if err != nil {
		return Message{}, err
	}
	e.i18n = &m
	return m, nil
}

// I18nMessageIn translates in the given locale. It is never memoized.
func (e *Error) I18nMessageIn(locale language.Tag) (Message, error) {
	return resolve(e.variant.catalog.translator, e.variant.i18nKey, e.params, locale)
}

func (e *Error) explicit() Message {
	return Message{Text: e.message, Key: e.variant.i18nKey, Params: copyParams(e.params), Translated: true}
}

// Error implements the error interface. When translation fails the
// localization key is returned.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	m, err := e.Message()
	if err != nil {
		return e.variant.i18nKey
	}
	return m.String()
}

// Inspect returns a debug representation of e.
func (e *Error) Inspect() string {
	return fmt.Sprintf("#<%s: name=%s status=%s message=%q i18n_key=%s i18n_params=%v extra=%v cause=%s>",
		e.variant.QualifiedName(), e.variant.key, e.status, e.Error(), e.variant.i18nKey,
		e.params, e.extra, causeMessage(e.cause))
}

// APIError returns the "error" member of the envelope. Empty values are
// omitted when marshaled.
func (e *Error) APIError() (apis.ErrorView, error) {
	msg, err := e.I18nMessage()
	if err != nil {
		return apis.ErrorView{}, err
	}
	view := apis.ErrorView{
		Message:     e.message,
		Status:      e.status,
		Severity:    string(e.variant.severity),
		Name:        e.variant.key,
		Internal:    e.variant.internal,
		I18nMessage: &msg,
		I18nKey:     e.variant.i18nKey,
		Cause:       causeMessage(e.cause),
	}
	if len(e.params) > 0 {
		view.I18nParams = copyParams(e.params)
	}
	if !isEmpty(e.extra) {
		view.Extra = e.extra
	}
	return view, nil
}

// ErrorResult returns the response envelope {error, message}.
func (e *Error) ErrorResult() (apis.Envelope, error) {
	view, err := e.APIError()
	if err != nil {
		return apis.Envelope{}, err
	}
	msg, err := e.Message()
	if err != nil {
		return apis.Envelope{}, err
	}
	return apis.Envelope{Error: view, Message: msg}, nil
}

func causeMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

// isNilValue reports whether err is a non-nil interface holding a nil value.
func isNilValue(err error) bool {
	rv := reflect.ValueOf(err)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

func isEmpty(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map, reflect.Slice, reflect.Array, reflect.String:
		return rv.Len() == 0
	case reflect.Pointer, reflect.Interface:
		return rv.IsNil()
	}
	return false
}
