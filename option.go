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

import "dirpx.dev/kcerrors/status"

// Option configures an instance created by Variant.New.
type Option func(*options)

type options struct {
	message string
	status  status.Status
	params  map[string]any
	cause   error
	extra   any
	query   any
	// rest holds caller keys that are merged last.
	rest map[string]any
}

// WithMessage sets the message override. A non-empty positional message
// passed to New wins over it.
func WithMessage(msg string) Option {
	return func(o *options) { o.message = msg }
}

// WithStatus overrides the variant default status.
func WithStatus(st status.Status) Option {
	return func(o *options) { o.status = st }
}

// WithParams sets the base translation parameters. Later WithParams calls
// are merged over earlier ones.
func WithParams(params map[string]any) Option {
	return func(o *options) {
		if o.params == nil {
			o.params = make(map[string]any, len(params))
		}
		for k, v := range params {
			o.params[k] = v
		}
	}
}

// WithCause records the error that caused this one. Its message becomes
// the "cause" parameter.
func WithCause(err error) Option {
	return func(o *options) { o.cause = err }
}

// WithExtra attaches data returned to API consumers.
func WithExtra(extra any) Option {
	return func(o *options) { o.extra = extra }
}

// WithQuery flattens q with Stringify into the "query" parameter. A nil
// query is ignored.
func WithQuery(q any) Option {
	return func(o *options) { o.query = q }
}

// WithParam adds one translation parameter. It takes precedence over
// WithParams, the cause and the query.
func WithParam(key string, value any) Option {
	return func(o *options) {
		if o.rest == nil {
			o.rest = make(map[string]any)
		}
		o.rest[key] = value
	}
}

// WithExtraParams adds several translation parameters with the precedence
// of WithParam.
func WithExtraParams(kv map[string]any) Option {
	return func(o *options) {
		if len(kv) == 0 {
			return
		}
		if o.rest == nil {
			o.rest = make(map[string]any, len(kv))
		}
		for k, v := range kv {
			o.rest[k] = v
		}
	}
}
