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

package grpcx

import (
	"context"
	"encoding/json"
	"errors"

	"golang.org/x/text/language"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc"
	gstatus "google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/protoadapt"
	"google.golang.org/protobuf/types/known/structpb"

	"dirpx.dev/kcerrors"
	"dirpx.dev/kcerrors/adapter"
	"dirpx.dev/kcerrors/apis"
	"dirpx.dev/kcerrors/mapper"
)

// UnaryServerInterceptor returns a gRPC UnaryServerInterceptor that maps
// kcerrors instances into gRPC statuses.
//
// The status carries three details: a google.rpc.ErrorInfo, a
// google.rpc.LocalizedMessage resolved in locale, and the JSON envelope as a
// google.protobuf.Struct (omitted for header-only variants). A nil mapper
// uses mapper.New defaults. Errors that are not kcerrors instances are
// returned unchanged.
func UnaryServerInterceptor(m apis.Mapper, locale language.Tag) grpc.UnaryServerInterceptor {
	if m == nil {
		m, _ = mapper.New()
	}
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		resp, err := handler(ctx, req)
		if err == nil {
			return resp, nil
		}
		var e *kcerrors.Error
		if !errors.As(err, &e) {
			return nil, err
		}
		return nil, ToStatus(e, m, locale).Err()
	}
}

// ToStatus converts e into a gRPC status. Details that cannot be produced
// are left out; the code and message are always set.
func ToStatus(e *kcerrors.Error, m apis.Mapper, locale language.Tag) *gstatus.Status {
	st := m.Status(e.ErrorPath(), e.StatusCode())
	base := gstatus.New(st.GRPC, e.Error())

	details := []protoadapt.MessageV1{adapter.ToErrorInfo(e, st)}
	if lm, err := adapter.ToLocalizedMessage(e, locale); err == nil {
		details = append(details, lm)
	}
	if !e.HeaderOnly() {
		if env, err := e.ErrorResult(); err == nil {
			if s, err := adapter.ToStruct(env); err == nil {
				details = append(details, s)
			}
		}
	}

	with, err := base.WithDetails(details...)
	if err != nil {
		return base
	}
	return with
}

// ExtractErrorInfo pulls the google.rpc.ErrorInfo out of a gRPC error, if
// present. Useful in tests and client code.
func ExtractErrorInfo(err error) (*errdetails.ErrorInfo, bool) {
	for _, d := range details(err) {
		if v, ok := d.(*errdetails.ErrorInfo); ok {
			return v, true
		}
	}
	return nil, false
}

// ExtractLocalizedMessage pulls the google.rpc.LocalizedMessage out of a
// gRPC error, if present.
func ExtractLocalizedMessage(err error) (*errdetails.LocalizedMessage, bool) {
	for _, d := range details(err) {
		if v, ok := d.(*errdetails.LocalizedMessage); ok {
			return v, true
		}
	}
	return nil, false
}

// ExtractEnvelope decodes the envelope detail of a gRPC error.
func ExtractEnvelope(err error) (apis.Envelope, bool) {
	for _, d := range details(err) {
		s, ok := d.(*structpb.Struct)
		if !ok {
			continue
		}
		b, merr := protojson.Marshal(s)
		if merr != nil {
			return apis.Envelope{}, false
		}
		var env apis.Envelope
		if json.Unmarshal(b, &env) != nil {
			return apis.Envelope{}, false
		}
		return env, true
	}
	return apis.Envelope{}, false
}

func details(err error) []any {
	if err == nil {
		return nil
	}
	st, ok := gstatus.FromError(err)
	if !ok {
		return nil
	}
	return st.Details()
}
