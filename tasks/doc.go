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

// Package tasks holds the kcerror command line: listing defined variants,
// generating a translation stub and serving both over HTTP.
//
// Flags can also be set from the environment with the KCERROR_ prefix,
// e.g. KCERROR_DEFINITIONS=errors.yaml.
package tasks
