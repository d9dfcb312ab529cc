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
	"golang.org/x/text/language"

	"dirpx.dev/kcerrors/apis"
)

// Translator resolves a localization key into a message.
//
// locale is language.Und when the caller did not ask for a specific
// locale. Errors are returned to the caller unchanged.
type Translator interface {
	Translate(key string, params map[string]any, locale language.Tag) (string, error)
}

// TranslatorFunc adapts a function to Translator.
type TranslatorFunc func(key string, params map[string]any, locale language.Tag) (string, error)

// Translate implements Translator.
func (f TranslatorFunc) Translate(key string, params map[string]any, locale language.Tag) (string, error) {
	return f(key, params, locale)
}

// Message is a resolved message: translated text, or the untranslated
// (key, params) pair when no translator is configured.
type Message = apis.Message

// resolve translates key with t, or returns the untranslated pair.
func resolve(t Translator, key string, params map[string]any, locale language.Tag) (Message, error) {
	if t == nil {
		return Message{Key: key, Params: copyParams(params)}, nil
	}
	text, err := t.Translate(key, copyParams(params), locale)
	if err != nil {
		return Message{}, err
	}
	return Message{Text: text, Key: key, Params: copyParams(params), Translated: true}, nil
}

func copyParams(in map[string]any) map[string]any {
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
