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

package kctest

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http/httptest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/kcerrors"
)

type tHelper interface{ Helper() }

// AssertError asserts that actual is an instance of expected equal to
// expected.New("", opts...): same variant, status, message override,
// params and extra.
func AssertError(t assert.TestingT, expected *kcerrors.Variant, actual error, opts ...kcerrors.Option) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	var e *kcerrors.Error
	if !errors.As(actual, &e) {
		return assert.Fail(t, fmt.Sprintf("Expected %v to be %s, but it was not.", actual, expected))
	}
	if !assert.Truef(t, e.Variant().IsA(expected), "Expected %s to be %s, but it was not.", e.Variant(), expected) {
		return false
	}
	want, err := expected.New("", opts...)
	if !assert.NoError(t, err) {
		return false
	}
	ok := assert.Same(t, expected, e.Variant(), "variant")
	ok = assert.Equal(t, want.Status(), e.Status(), "status") && ok
	ok = assert.Equal(t, want.MessageOverride(), e.MessageOverride(), "message") && ok
	ok = assert.Equal(t, want.LocalizationParams(), e.LocalizationParams(), "params") && ok
	ok = assert.Equal(t, want.Extra(), e.Extra(), "extra") && ok
	return ok
}

// RequireError is AssertError followed by FailNow on failure.
func RequireError(t require.TestingT, expected *kcerrors.Variant, actual error, opts ...kcerrors.Option) {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	if !AssertError(t, expected, actual, opts...) {
		t.FailNow()
	}
}

// AssertErrorJSON asserts that actual is the JSON envelope of
// expected.New("", opts...). Documents are compared after parsing.
func AssertErrorJSON(t assert.TestingT, expected *kcerrors.Variant, actual string, opts ...kcerrors.Option) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	want, ok := envelopeJSON(t, expected, opts...)
	if !ok {
		return false
	}
	return assert.JSONEq(t, want, actual, "Expected %s to be JSON for %s, but it was not.", actual, expected)
}

// AssertResponseError asserts that rec holds the response for
// expected.New("", opts...): its status code and, unless the variant is
// header-only, its JSON envelope.
func AssertResponseError(t assert.TestingT, expected *kcerrors.Variant, rec *httptest.ResponseRecorder, opts ...kcerrors.Option) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
	want, err := expected.New("", opts...)
	if !assert.NoError(t, err) {
		return false
	}
	if !assert.Equal(t, want.StatusCode(), rec.Code, "Expected response to be %s, but was not.", expected) {
		return false
	}
	if want.HeaderOnly() {
		return assert.Empty(t, rec.Body.String(), "header-only response has a body")
	}
	return AssertErrorJSON(t, expected, rec.Body.String(), opts...)
}

func envelopeJSON(t assert.TestingT, v *kcerrors.Variant, opts ...kcerrors.Option) (string, bool) {
	e, err := v.New("", opts...)
	if !assert.NoError(t, err) {
		return "", false
	}
	env, err := e.ErrorResult()
	if !assert.NoError(t, err) {
		return "", false
	}
	b, err := json.Marshal(env)
	if !assert.NoError(t, err) {
		return "", false
	}
	return string(b), true
}
