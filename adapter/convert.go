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

package adapter

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/text/language"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/protobuf/types/known/structpb"

	"dirpx.dev/kcerrors"
	"dirpx.dev/kcerrors/apis"
)

// Fields returns structured log fields describing e.
//
// The message is not included; loggers attach it themselves so that it can
// be resolved in the log locale.
func Fields(e *kcerrors.Error) logrus.Fields {
	if e == nil {
		return logrus.Fields{}
	}
	v := e.Variant()
	f := logrus.Fields{
		"error_name":  e.ErrorKey(),
		"error_path":  e.ErrorPath(),
		"error_class": v.QualifiedName(),
		"status":      e.Status().String(),
		"severity":    e.ErrorSeverity(),
		"i18n_key":    e.LocalizationKey(),
	}
	if p := e.LocalizationParams(); len(p) > 0 {
		f["i18n_params"] = p
	}
	if c := e.Cause(); c != nil {
		f[logrus.ErrorKey] = c
	}
	if v.Internal() {
		f["internal"] = true
	}
	return f
}

// ToDescriptor converts a variant together with its resolved transport
// status into a portable VariantDescriptor.
func ToDescriptor(v *kcerrors.Variant, st apis.Status) apis.VariantDescriptor {
	if v == nil {
		return apis.VariantDescriptor{}
	}
	d := v.Descriptor()
	d.HTTPStatus = st.HTTP
	d.GRPCCode = int(st.GRPC)
	return d
}

// ToErrorInfo builds a google.rpc.ErrorInfo for e.
//
// Reason is the upper-cased variant key and Domain is the localization key
// base of the variant, so "kcerrors" unless a hierarchy chose its own.
func ToErrorInfo(e *kcerrors.Error, st apis.Status) *errdetails.ErrorInfo {
	if e == nil {
		return nil
	}
	v := e.Variant()
	md := map[string]string{
		"path":           e.ErrorPath(),
		"qualified_name": v.QualifiedName(),
		"status":         e.Status().String(),
		"http_status":    strconv.Itoa(st.HTTP),
		"severity":       e.ErrorSeverity(),
		"i18n_key":       e.LocalizationKey(),
	}
	for k, val := range e.LocalizationParams() {
		md["param."+k] = fmt.Sprint(val)
	}
	return &errdetails.ErrorInfo{
		Reason:   strings.ToUpper(e.ErrorKey()),
		Domain:   v.LocalizationKeyBase(),
		Metadata: md,
	}
}

// ToLocalizedMessage resolves the message of e in locale.
//
// Untranslated messages carry the localization key as text.
func ToLocalizedMessage(e *kcerrors.Error, locale language.Tag) (*errdetails.LocalizedMessage, error) {
	if e == nil {
		return nil, nil
	}
	m, err := e.MessageIn(locale)
	if err != nil {
		return nil, err
	}
	return &errdetails.LocalizedMessage{
		Locale:  locale.String(),
		Message: m.String(),
	}, nil
}

// ToStruct converts an envelope into a protobuf Struct by way of its JSON
// form, so both transports expose identical documents.
func ToStruct(env apis.Envelope) (*structpb.Struct, error) {
	b, err := json.Marshal(env)
	if err != nil {
		return nil, fmt.Errorf("adapter: marshal envelope: %w", err)
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("adapter: decode envelope: %w", err)
	}
	s, err := structpb.NewStruct(m)
	if err != nil {
		return nil, fmt.Errorf("adapter: envelope struct: %w", err)
	}
	return s, nil
}
