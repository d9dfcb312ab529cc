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
	"fmt"

	"github.com/sirupsen/logrus"
)

// Severity is the level at which instances of a variant are logged. Valid
// severities are the logrus level names.
type Severity string

const (
	SeverityPanic   Severity = "panic"
	SeverityFatal   Severity = "fatal"
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
	SeverityDebug   Severity = "debug"
	SeverityTrace   Severity = "trace"
)

// DefaultSeverity applies when neither the definition nor an enclosing
// severity scope sets one.
const DefaultSeverity = SeverityError

// ParseSeverity validates s and returns its canonical form ("warn" becomes
// "warning").
func ParseSeverity(s string) (Severity, error) {
	lvl, err := logrus.ParseLevel(s)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidSeverity, s)
	}
	return Severity(lvl.String()), nil
}

// Level returns the logrus level of s. Unknown severities log at error.
func (s Severity) Level() logrus.Level {
	lvl, err := logrus.ParseLevel(string(s))
	if err != nil {
		return logrus.ErrorLevel
	}
	return lvl
}

func (s Severity) String() string { return string(s) }
