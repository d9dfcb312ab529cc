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

package mapper

import (
	"net/http"

	"google.golang.org/grpc/codes"
)

// defaultGRPC defines the built-in gRPC code for well-known HTTP statuses.
// Statuses missing here resolve to the gRPC fallback unless a prefix rule
// or an option covers them.
var defaultGRPC = map[int]codes.Code{
	// 4xx: client, protocol and resource issues.
	http.StatusBadRequest:            codes.InvalidArgument,
	http.StatusUnauthorized:          codes.Unauthenticated,
	http.StatusPaymentRequired:       codes.FailedPrecondition,
	http.StatusForbidden:             codes.PermissionDenied,
	http.StatusNotFound:              codes.NotFound,
	http.StatusMethodNotAllowed:      codes.Unimplemented,
	http.StatusNotAcceptable:         codes.InvalidArgument,
	http.StatusRequestTimeout:        codes.DeadlineExceeded,
	http.StatusConflict:              codes.Aborted,
	http.StatusGone:                  codes.NotFound, // gRPC has no 410; NotFound is the closest practical choice.
	http.StatusPreconditionFailed:    codes.FailedPrecondition,
	http.StatusRequestEntityTooLarge: codes.ResourceExhausted,
	http.StatusUnsupportedMediaType:  codes.InvalidArgument,
	http.StatusTeapot:                codes.Unimplemented,
	http.StatusUnprocessableEntity:   codes.InvalidArgument,
	http.StatusLocked:                codes.Aborted,
	http.StatusTooEarly:              codes.FailedPrecondition,
	http.StatusPreconditionRequired:  codes.FailedPrecondition,
	http.StatusTooManyRequests:       codes.ResourceExhausted,
	// Note: 499 is a non-standard but widely used code (nginx) for "client closed request".
	499: codes.Canceled,

	// 5xx: server, dependency and transient issues.
	http.StatusInternalServerError: codes.Internal,
	http.StatusNotImplemented:      codes.Unimplemented,
	http.StatusBadGateway:          codes.Unavailable,
	http.StatusServiceUnavailable:  codes.Unavailable,
	http.StatusGatewayTimeout:      codes.DeadlineExceeded,
	http.StatusInsufficientStorage: codes.ResourceExhausted,
}
