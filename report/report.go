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

package report

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"dirpx.dev/kcerrors"
)

// Tree maps a parent to its children. The nil key is the synthetic root.
type Tree map[*kcerrors.Variant][]*kcerrors.Variant

// BuildTree groups variants by parent. A variant whose parent is not in the
// list hangs off the synthetic root.
func BuildTree(variants []*kcerrors.Variant) Tree {
	present := make(map[*kcerrors.Variant]bool, len(variants))
	for _, v := range variants {
		if v != nil {
			present[v] = true
		}
	}
	t := make(Tree)
	for _, v := range variants {
		if v == nil {
			continue
		}
		var parent *kcerrors.Variant
		if p := v.Parent(); present[p] {
			parent = p
		}
		t[parent] = append(t[parent], v)
	}
	return t
}

// Len returns the number of variants in t.
func (t Tree) Len() int {
	n := 0
	for _, kids := range t {
		n += len(kids)
	}
	return n
}

// children returns the children of v sorted by qualified name.
func (t Tree) children(v *kcerrors.Variant) []*kcerrors.Variant {
	kids := append([]*kcerrors.Variant(nil), t[v]...)
	sort.SliceStable(kids, func(i, j int) bool {
		return kids[i].QualifiedName() < kids[j].QualifiedName()
	})
	return kids
}

// walk visits t depth first, calling fn with each variant and the prefix
// of its line.
func (t Tree) walk(fn func(v *kcerrors.Variant, prefix string) error) error {
	var visit func(v *kcerrors.Variant, prefix string) error
	visit = func(v *kcerrors.Variant, prefix string) error {
		if err := fn(v, prefix); err != nil {
			return err
		}
		kids := t.children(v)
		indent := branchReplacer.Replace(prefix) + "  "
		for i, kid := range kids {
			mark := "|"
			if i == len(kids)-1 {
				mark = "`"
			}
			if err := visit(kid, indent+mark); err != nil {
				return err
			}
		}
		return nil
	}
	for _, root := range t.children(nil) {
		if err := visit(root, ""); err != nil {
			return err
		}
	}
	return nil
}

var branchReplacer = strings.NewReplacer("|", " ", "`", " ")

// PrintTree writes one line per variant: the prefix, "- " and the qualified
// name, followed by the parameter names when showParams is set.
func PrintTree(w io.Writer, t Tree, showParams bool) error {
	if t.Len() == 0 {
		_, err := fmt.Fprintln(w, "No defined errors.")
		return err
	}
	return t.walk(func(v *kcerrors.Variant, prefix string) error {
		line := prefix + "- " + v.QualifiedName()
		if params := v.LocalizationParams(); showParams && len(params) > 0 {
			line += " (" + strings.Join(params, ", ") + ")"
		}
		_, err := fmt.Fprintln(w, line)
		return err
	})
}

// Stub holds placeholder translations grouped by localization key base,
// then by variant key.
type Stub map[string]map[string]string

// BuildTranslationStub produces one placeholder per variant of t.
func BuildTranslationStub(t Tree) Stub {
	s := make(Stub)
	_ = t.walk(func(v *kcerrors.Variant, _ string) error {
		group := s[v.LocalizationKeyBase()]
		if group == nil {
			group = make(map[string]string)
			s[v.LocalizationKeyBase()] = group
		}
		group[v.Key()] = placeholder(v.Key(), v.LocalizationParams())
		return nil
	})
	return s
}

func placeholder(key string, params []string) string {
	if len(params) == 0 {
		return "Translation for " + key + " with no params."
	}
	vars := make([]string, len(params))
	for i, p := range params {
		vars[i] = "%{" + p + "}"
	}
	return "Translation for " + key + " with " + strings.Join(vars, " ") + "."
}

// Render returns the stub as a YAML document rooted at "kc". Groups and
// keys are sorted; values use folded block scalars.
func (s Stub) Render() string {
	var b strings.Builder
	b.WriteString("kc:")
	for _, group := range sortedKeys(s) {
		b.WriteString("\n  " + group + ":")
		entries := s[group]
		for _, key := range sortedKeys(entries) {
			b.WriteString("\n    " + key + ": >-\n      " + entries[key])
		}
	}
	b.WriteString("\n")
	return b.String()
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// catalogTree builds the tree of every variant in c, the base included.
// A catalog without hierarchies yields an empty tree.
func catalogTree(c *kcerrors.Catalog) Tree {
	snap := c.Snapshot()
	if snap.Len() == 0 {
		return Tree{}
	}
	variants := append([]*kcerrors.Variant{snap.Base()}, snap.Variants()...)
	return BuildTree(variants)
}

// List writes the tree of c to w.
func List(w io.Writer, c *kcerrors.Catalog, showParams bool) error {
	return PrintTree(w, catalogTree(c), showParams)
}

// GenerateTranslationStub renders the translation stub of c. When path is
// non-empty the document is also written to that file.
func GenerateTranslationStub(c *kcerrors.Catalog, path string) (string, error) {
	text := BuildTranslationStub(catalogTree(c)).Render()
	if path == "" {
		return text, nil
	}
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return "", fmt.Errorf("report: write translation stub: %w", err)
	}
	return text, nil
}
