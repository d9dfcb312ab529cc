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

import (
	"encoding/json"
	"errors"

	"dirpx.dev/kcerrors/status"
)

// ErrorView is the "error" member of the transport envelope.
//
// Empty members are omitted; Internal is always present.
type ErrorView struct {
	// Message is the explicit message override of the instance, if any.
	Message string `json:"message,omitempty"`

	// Status is the instance status, symbolic or numeric.
	Status status.Status `json:"status"`

	// Severity is the logging severity of the variant.
	Severity string `json:"severity,omitempty"`

	// Name is the variant key, e.g. "user_not_found".
	Name string `json:"name"`

	// Internal advises clients not to show the message to end users.
	Internal bool `json:"internal"`

	// I18nMessage is the translated message or the untranslated
	// (key, params) pair.
	I18nMessage *Message `json:"i18n_message,omitempty"`

	// I18nKey is the localization key, e.g. "kcerrors.user_not_found".
	I18nKey string `json:"i18n_key,omitempty"`

	// I18nParams holds the localization parameters of the instance.
	I18nParams map[string]any `json:"i18n_params,omitempty"`

	// Cause is the message of the wrapped cause.
	Cause string `json:"cause,omitempty"`

	// Extra is caller supplied data for API consumers.
	Extra any `json:"extra,omitempty"`
}

// Envelope is the response body for a rendered error.
type Envelope struct {
	Error   ErrorView `json:"error"`
	Message Message   `json:"message"`
}

// Message is a resolved error message.
//
// When Translated is set, Text holds the final message. Otherwise no
// translator produced text and the message is represented by its
// localization Key and Params; it serializes as the JSON array
// [key, params].
type Message struct {
	Text       string
	Key        string
	Params     map[string]any
	Translated bool
}

// ErrMessageInvalid is returned when a JSON message is neither a string nor
// a [key, params] pair.
var ErrMessageInvalid = errors.New("kcerrors: invalid message")

// String returns Text for translated messages and the localization key
// otherwise.
func (m Message) String() string {
	if m.Translated {
		return m.Text
	}
	return m.Key
}

// MarshalJSON implements json.Marshaler.
func (m Message) MarshalJSON() ([]byte, error) {
	if m.Translated {
		return json.Marshal(m.Text)
	}
	params := m.Params
	if params == nil {
		params = map[string]any{}
	}
	return json.Marshal([]any{m.Key, params})
}

// UnmarshalJSON implements json.Unmarshaler.
func (m *Message) UnmarshalJSON(b []byte) error {
	var text string
	if err := json.Unmarshal(b, &text); err == nil {
		*m = Message{Text: text, Translated: true}
		return nil
	}
	var pair []json.RawMessage
	if err := json.Unmarshal(b, &pair); err != nil || len(pair) != 2 {
		return ErrMessageInvalid
	}
	var out Message
	if err := json.Unmarshal(pair[0], &out.Key); err != nil {
		return ErrMessageInvalid
	}
	if err := json.Unmarshal(pair[1], &out.Params); err != nil {
		return ErrMessageInvalid
	}
	*m = out
	return nil
}
