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

// Package loader builds variant hierarchies from definition documents.
//
// Documents are read with viper, so YAML, JSON and TOML all work. A YAML
// document looks like:
//
//	status_catalog:
//	  http: true
//	  extra:
//	    card_declined: 402
//	hierarchies:
//	  - class: Accounts
//	    namespace: My
//	    binding: {methods: true, errors: false}
//	    errors:
//	      - key: user_not_found
//	        status: not_found
//	        params: [id]
//	      - scope: warning
//	        errors:
//	          - class: quota
//	            status: too_many_requests
//
// A node with scope and no identifier is a severity scope: its children are
// defined under the enclosing parent with that default severity.
package loader
