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

import "dirpx.dev/kcerrors/status"

// VariantDescriptor is a flat, transport-friendly description of a defined
// error variant.
//
// It is what reporting and introspection endpoints expose; it never carries
// instance data.
type VariantDescriptor struct {
	// Name is the display name, e.g. "UserNotFound".
	Name string `json:"name"`

	// Key is the normalized key, e.g. "user_not_found".
	Key string `json:"key"`

	// QualifiedName is the dotted display path including the namespace,
	// e.g. "My.Base.UserNotFound".
	QualifiedName string `json:"qualified_name"`

	// Path is the dotted key path from the root, e.g. "base.user_not_found".
	Path string `json:"path"`

	// Parent is the qualified name of the parent variant. Empty for the base.
	Parent string `json:"parent,omitempty"`

	// I18nKey is the localization key.
	I18nKey string `json:"i18n_key"`

	// I18nParams lists the documented localization parameter names.
	I18nParams []string `json:"i18n_params,omitempty"`

	// Status is the default status of the variant.
	Status status.Status `json:"status"`

	// Severity is the default severity of the variant.
	Severity string `json:"severity"`

	HeaderOnly bool `json:"header_only,omitempty"`
	Internal   bool `json:"internal,omitempty"`

	// HTTPStatus is the resolved HTTP status. 0 means "not resolved".
	HTTPStatus int `json:"http_status,omitempty"`

	// GRPCCode is the resolved gRPC code as integer. 0 means "not resolved".
	GRPCCode int `json:"grpc_code,omitempty"`
}
