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

package httpx

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"golang.org/x/text/language"

	"dirpx.dev/kcerrors"
	"dirpx.dev/kcerrors/adapter"
	"dirpx.dev/kcerrors/apis"
)

const contentType = "application/json; charset=utf-8"

// Writer turns errors into HTTP responses.
//
// The zero value is usable: statuses come from the instance, logs go to the
// logrus standard logger and messages are logged untranslated.
type Writer struct {
	// Mapper, when set, projects the instance status to the final HTTP
	// status using the variant path.
	Mapper apis.Mapper

	// Logger receives one entry per rendered error.
	Logger logrus.FieldLogger

	// LogLocale is the locale log messages are resolved in, independent of
	// the locale the client asked for.
	LogLocale language.Tag

	// PostError runs after the response has been written.
	PostError func(r *http.Request, e *kcerrors.Error)
}

// Write renders err to rw.
//
// Instances of kcerrors variants are logged at their severity and written
// either header-only or as a JSON envelope. Other errors are logged at error
// level and answered with a bare 500. The returned error is non-nil only
// when the envelope could not be produced or encoded.
func (w Writer) Write(rw http.ResponseWriter, r *http.Request, err error) error {
	if err == nil {
		return nil
	}
	var e *kcerrors.Error
	if !errors.As(err, &e) {
		w.logger().WithError(err).Error("unhandled error")
		http.Error(rw, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return nil
	}

	w.log(e)
	code := w.statusCode(e)

	if e.HeaderOnly() {
		rw.WriteHeader(code)
		w.post(r, e)
		return nil
	}

	env, rerr := e.ErrorResult()
	if rerr != nil {
		w.logger().WithFields(adapter.Fields(e)).WithError(rerr).Error("cannot render error")
		http.Error(rw, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return rerr
	}
	body, rerr := json.Marshal(env)
	if rerr != nil {
		http.Error(rw, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return rerr
	}

	rw.Header().Set("Content-Type", contentType)
	rw.WriteHeader(code)
	_, _ = rw.Write(body)
	w.post(r, e)
	return nil
}

// WriteVariant creates an instance of v and writes it.
func (w Writer) WriteVariant(rw http.ResponseWriter, r *http.Request, v *kcerrors.Variant, opts ...kcerrors.Option) error {
	e, err := v.New("", opts...)
	if err != nil {
		return w.Write(rw, r, err)
	}
	return w.Write(rw, r, e)
}

// HandlerFunc is an httprouter handler that may fail.
type HandlerFunc func(rw http.ResponseWriter, r *http.Request, ps httprouter.Params) error

// Handle adapts h to httprouter, rendering any returned error with w.
func (w Writer) Handle(h HandlerFunc) httprouter.Handle {
	return func(rw http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		if err := h(rw, r, ps); err != nil {
			_ = w.Write(rw, r, err)
		}
	}
}

func (w Writer) statusCode(e *kcerrors.Error) int {
	code := e.StatusCode()
	if w.Mapper != nil {
		code = w.Mapper.HTTPStatus(e.ErrorPath(), code)
	}
	return code
}

func (w Writer) log(e *kcerrors.Error) {
	level := e.Severity().Level()
	// panic and fatal severities are logged, never acted upon
	if level < logrus.ErrorLevel {
		level = logrus.ErrorLevel
	}
	entry := w.logger().WithFields(adapter.Fields(e))

	msg := e.LocalizationKey()
	if m, err := e.MessageIn(w.LogLocale); err == nil {
		msg = m.String()
	}
	entry.Log(level, msg)

	if c := e.Cause(); c != nil {
		entry.Log(level, "caused by: "+c.Error())
	}
}

func (w Writer) logger() logrus.FieldLogger {
	if w.Logger != nil {
		return w.Logger
	}
	return logrus.StandardLogger()
}

func (w Writer) post(r *http.Request, e *kcerrors.Error) {
	if w.PostError != nil {
		w.PostError(r, e)
	}
}
