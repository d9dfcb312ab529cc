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

package kcerrors_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"dirpx.dev/kcerrors"
	"dirpx.dev/kcerrors/status"
)

type nilErr struct{}

func (*nilErr) Error() string { return "nil error" }

func variantFor(t *testing.T, opts ...kcerrors.CatalogOption) *kcerrors.Variant {
	t.Helper()
	b := kcerrors.NewBuilder(kcerrors.NewCatalog(opts...))
	root, err := b.Hierarchy(kcerrors.HierarchySpec{Class: "Base", Binding: &kcerrors.BindPolicy{}})
	require.NoError(t, err)
	return mustDefine(t, b, root, kcerrors.Spec{Key: "child_not_found", Params: []string{"id"}})
}

func TestNew_MessagePrecedence(t *testing.T) {
	v := variantFor(t)

	e, err := v.New("positional", kcerrors.WithMessage("option"))
	require.NoError(t, err)
	require.Equal(t, "positional", e.MessageOverride())
	require.Equal(t, "positional", e.Error())

	e, err = v.New("", kcerrors.WithMessage("option"))
	require.NoError(t, err)
	require.Equal(t, "option", e.Error())
}

func TestNew_StatusDefaultsToVariant(t *testing.T) {
	v := variantFor(t)

	e, err := v.New("")
	require.NoError(t, err)
	require.Equal(t, status.Code(400), e.Status())
	require.Equal(t, 400, e.StatusCode())

	e, err = v.New("", kcerrors.WithStatus(status.Named("conflict", 409)))
	require.NoError(t, err)
	require.Equal(t, 409, e.StatusCode())

	e, err = v.New("", kcerrors.WithStatus(status.Named("missing", 0)))
	require.NoError(t, err)
	require.Equal(t, 500, e.StatusCode())
}

func TestNew_ParamsMergeOrder(t *testing.T) {
	v := variantFor(t)
	cause := errors.New("boom")

	e, err := v.New("",
		kcerrors.WithParams(map[string]any{"cause": "p", "query": "p", "x": 1, "base": true}),
		kcerrors.WithCause(cause),
		kcerrors.WithQuery(map[string]any{"a": 1}),
		kcerrors.WithParam("x", 2),
		kcerrors.WithExtraParams(map[string]any{"y": "z"}),
	)
	require.NoError(t, err)
	require.Equal(t, map[string]any{
		"base":  true,
		"cause": "boom",
		"query": "a: 1",
		"x":     2,
		"y":     "z",
	}, e.LocalizationParams())
	require.Same(t, cause, e.Cause())
	require.ErrorIs(t, e, cause)

	e, err = v.New("", kcerrors.WithCause(cause), kcerrors.WithParam("cause", "mine"))
	require.NoError(t, err)
	require.Equal(t, "mine", e.LocalizationParams()["cause"])
}

func TestNew_InvalidCause(t *testing.T) {
	v := variantFor(t)
	var typed *nilErr

	_, err := v.New("", kcerrors.WithCause(typed))
	require.ErrorIs(t, err, kcerrors.ErrInvalidCause)

	e, err := v.New("", kcerrors.WithCause(nil))
	require.NoError(t, err)
	require.Nil(t, e.Cause())
	require.NotContains(t, e.LocalizationParams(), "cause")
}

func TestMessage_Untranslated(t *testing.T) {
	v := variantFor(t)
	e, err := v.New("", kcerrors.WithParam("id", 7))
	require.NoError(t, err)

	m, err := e.Message()
	require.NoError(t, err)
	require.False(t, m.Translated)
	require.Equal(t, "kcerrors.child_not_found", m.Key)
	require.Equal(t, map[string]any{"id": 7}, m.Params)
	require.Equal(t, "kcerrors.child_not_found", e.Error())

	b, err := json.Marshal(m)
	require.NoError(t, err)
	require.JSONEq(t, `["kcerrors.child_not_found", {"id": 7}]`, string(b))
}

func TestMessage_TranslatedAndMemoized(t *testing.T) {
	var calls atomic.Int32
	var locales []language.Tag
	var mu sync.Mutex
	tr := kcerrors.TranslatorFunc(func(key string, params map[string]any, locale language.Tag) (string, error) {
		calls.Add(1)
		mu.Lock()
		locales = append(locales, locale)
		mu.Unlock()
		return fmt.Sprintf("%s %v (%s)", key, params["id"], locale), nil
	})
	v := variantFor(t, kcerrors.WithTranslator(tr))
	e, err := v.New("", kcerrors.WithParam("id", 7))
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m, err := e.I18nMessage()
			assert.NoError(t, err)
			assert.Equal(t, "kcerrors.child_not_found 7 (und)", m.Text)
		}()
	}
	wg.Wait()
	require.EqualValues(t, 1, calls.Load())

	m, err := e.I18nMessageIn(language.French)
	require.NoError(t, err)
	require.Equal(t, "kcerrors.child_not_found 7 (fr)", m.Text)
	_, err = e.MessageIn(language.French)
	require.NoError(t, err)
	require.EqualValues(t, 3, calls.Load())
	require.Equal(t, language.French, locales[len(locales)-1])

	require.Equal(t, "kcerrors.child_not_found 7 (und)", e.Error())
	require.EqualValues(t, 3, calls.Load())
}

func TestMessage_TranslatorErrorPropagates(t *testing.T) {
	missing := errors.New("translation missing")
	tr := kcerrors.TranslatorFunc(func(string, map[string]any, language.Tag) (string, error) {
		return "", missing
	})
	v := variantFor(t, kcerrors.WithTranslator(tr))
	e, err := v.New("")
	require.NoError(t, err)

	_, err = e.Message()
	require.ErrorIs(t, err, missing)
	_, err = e.ErrorResult()
	require.ErrorIs(t, err, missing)
	require.Equal(t, "kcerrors.child_not_found", e.Error())

	// An explicit message does not go through the translator.
	e, err = v.New("explicit")
	require.NoError(t, err)
	m, err := e.Message()
	require.NoError(t, err)
	require.Equal(t, "explicit", m.Text)
}

func TestErrorResult_JSON(t *testing.T) {
	v := variantFor(t)
	e, err := v.New("")
	require.NoError(t, err)

	env, err := e.ErrorResult()
	require.NoError(t, err)
	b, err := json.Marshal(env)
	require.NoError(t, err)
	require.JSONEq(t, `{
		"error": {
			"status": 400,
			"severity": "error",
			"name": "child_not_found",
			"internal": false,
			"i18n_message": ["kcerrors.child_not_found", {}],
			"i18n_key": "kcerrors.child_not_found"
		},
		"message": ["kcerrors.child_not_found", {}]
	}`, string(b))
}

func TestErrorResult_JSONFull(t *testing.T) {
	tr := kcerrors.TranslatorFunc(func(key string, _ map[string]any, _ language.Tag) (string, error) {
		return "translated " + key, nil
	})
	cat := kcerrors.NewCatalog(kcerrors.WithStatusCatalog(status.HTTP()), kcerrors.WithTranslator(tr))
	b := kcerrors.NewBuilder(cat)
	root, err := b.Hierarchy(kcerrors.HierarchySpec{Class: "Base", Binding: &kcerrors.BindPolicy{}})
	require.NoError(t, err)
	v := mustDefine(t, b, root, kcerrors.Spec{Key: "secret", Internal: true, Status: status.Named("not_found", 404)})

	e, err := v.New("custom",
		kcerrors.WithCause(errors.New("db down")),
		kcerrors.WithExtra(map[string]any{"id": 1}),
	)
	require.NoError(t, err)
	env, err := e.ErrorResult()
	require.NoError(t, err)
	out, err := json.Marshal(env)
	require.NoError(t, err)
	require.JSONEq(t, `{
		"error": {
			"message": "custom",
			"status": "not_found",
			"severity": "error",
			"name": "secret",
			"internal": true,
			"i18n_message": "translated kcerrors.secret",
			"i18n_key": "kcerrors.secret",
			"i18n_params": {"cause": "db down"},
			"cause": "db down",
			"extra": {"id": 1}
		},
		"message": "custom"
	}`, string(out))

	// Empty extra is omitted.
	e, err = v.New("", kcerrors.WithExtra(map[string]any{}))
	require.NoError(t, err)
	view, err := e.APIError()
	require.NoError(t, err)
	require.Nil(t, view.Extra)
}

func TestError_IsAndMatch(t *testing.T) {
	b, root := plainRoot(t)
	parent := mustDefine(t, b, root, kcerrors.Spec{Key: "parent"})
	child := mustDefine(t, b, parent, kcerrors.Spec{Key: "child"})
	other := mustDefine(t, b, root, kcerrors.Spec{Key: "other"})

	pe, err := parent.New("")
	require.NoError(t, err)
	ce, err := child.New("")
	require.NoError(t, err)

	require.True(t, errors.Is(ce, pe))
	require.False(t, errors.Is(pe, ce))

	wrapped := fmt.Errorf("handler: %w", ce)
	require.True(t, parent.Match(wrapped))
	require.True(t, root.Match(wrapped))
	require.True(t, b.Catalog().Base().Match(wrapped))
	require.False(t, other.Match(wrapped))
	require.False(t, parent.Match(errors.New("plain")))

	var target *kcerrors.Error
	require.True(t, errors.As(wrapped, &target))
	require.Same(t, child, target.Variant())
}

func TestError_Accessors(t *testing.T) {
	b, root := plainRoot(t)
	v := mustDefine(t, b, root, kcerrors.Spec{Key: "quiet", HeaderOnly: true, Severity: kcerrors.SeverityInfo})
	e, err := v.New("", kcerrors.WithExtra("x"))
	require.NoError(t, err)

	require.Equal(t, "quiet", e.Name())
	require.Equal(t, "quiet", e.ErrorKey())
	require.Equal(t, "base.quiet", e.ErrorPath())
	require.Equal(t, "kcerrors.quiet", e.LocalizationKey())
	require.True(t, e.HeaderOnly())
	require.False(t, e.Internal())
	require.Equal(t, kcerrors.SeverityInfo, e.Severity())
	require.Equal(t, "info", e.ErrorSeverity())
	require.Equal(t, "x", e.Extra())
}

func TestError_Inspect(t *testing.T) {
	v := variantFor(t)
	e, err := v.New("oops", kcerrors.WithCause(errors.New("root cause")))
	require.NoError(t, err)

	require.Equal(t,
		`#<Base.ChildNotFound: name=child_not_found status=400 message="oops" i18n_key=kcerrors.child_not_found i18n_params=map[cause:root cause] extra=<nil> cause=root cause>`,
		e.Inspect())
}

func TestSeverity(t *testing.T) {
	s, err := kcerrors.ParseSeverity("WARN")
	require.NoError(t, err)
	require.Equal(t, kcerrors.SeverityWarning, s)
	require.Equal(t, "warning", s.Level().String())

	_, err = kcerrors.ParseSeverity("loud")
	require.ErrorIs(t, err, kcerrors.ErrInvalidSeverity)
	require.Equal(t, "error", kcerrors.Severity("loud").Level().String())
}
