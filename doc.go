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

// Package kcerrors defines typed hierarchies of error variants.
//
// A variant is a named failure category ("user not found", "payment
// declined") carrying a default HTTP status, a severity, localization
// metadata and two rendering flags. Variants form a tree: every hierarchy
// root descends from the base variant Error, and children inherit the
// localization key base, header-only and internal flags of their ancestors.
//
// Hierarchies are defined at startup through a Builder and stored in a
// Catalog:
//
//	cat := kcerrors.NewCatalog(kcerrors.WithStatusCatalog(status.HTTP()))
//	b := kcerrors.NewBuilder(cat)
//	root, _ := b.Hierarchy(kcerrors.HierarchySpec{Class: "MyErrors"})
//	bind, _ := cat.Binding(root)
//	notFound, _ := bind.Constructor("not_found")
//	userNotFound, _ := notFound(root, kcerrors.Spec{Class: "user"})
//	cat.Freeze()
//
// Request code then creates instances from variants:
//
//	err, _ := userNotFound.New("", kcerrors.WithParam("id", 42))
//
// Instances render into the envelope of package apis and are matched with
// errors.Is or Variant.Match.
package kcerrors
