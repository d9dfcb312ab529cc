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

package loader

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/viper"

	"dirpx.dev/kcerrors"
	"dirpx.dev/kcerrors/status"
)

// ErrInvalidDocument is returned for documents that cannot be decoded or
// describe an impossible hierarchy.
var ErrInvalidDocument = errors.New("loader: invalid document")

// Document is a decoded definition document.
type Document struct {
	StatusCatalog StatusCatalogSpec `mapstructure:"status_catalog"`
	Hierarchies   []HierarchyNode   `mapstructure:"hierarchies"`
}

// StatusCatalogSpec selects the status catalog of the document. HTTP adds
// the standard HTTP statuses; Extra adds or overrides named codes.
type StatusCatalogSpec struct {
	HTTP  bool           `mapstructure:"http"`
	Extra map[string]int `mapstructure:"extra"`
}

// HierarchyNode describes one root and its descendants.
type HierarchyNode struct {
	Class     string       `mapstructure:"class"`
	Namespace string       `mapstructure:"namespace"`
	KeyBase   string       `mapstructure:"key_base"`
	Status    string       `mapstructure:"status"`
	Severity  string       `mapstructure:"severity"`
	Binding   *BindingSpec `mapstructure:"binding"`
	Errors    []Node       `mapstructure:"errors"`
}

// BindingSpec mirrors kcerrors.BindPolicy.
type BindingSpec struct {
	Methods bool `mapstructure:"methods"`
	Errors  bool `mapstructure:"errors"`
}

// Node describes one variant, or a severity scope when Scope is set and
// neither Key nor Class is.
type Node struct {
	Key        string   `mapstructure:"key"`
	Class      string   `mapstructure:"class"`
	Status     string   `mapstructure:"status"`
	Severity   string   `mapstructure:"severity"`
	HeaderOnly bool     `mapstructure:"header_only"`
	Internal   bool     `mapstructure:"internal"`
	Params     []string `mapstructure:"params"`
	Scope      string   `mapstructure:"scope"`
	Errors     []Node   `mapstructure:"errors"`
}

func (n Node) isScope() bool { return n.Scope != "" && n.Key == "" && n.Class == "" }

// LoadFile reads a document; the format follows the file extension.
func LoadFile(path string) (*Document, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("loader: read %s: %w", path, err)
	}
	return decode(v)
}

// Load reads a document of the given format ("yaml", "json", "toml") from r.
func Load(r io.Reader, format string) (*Document, error) {
	v := viper.New()
	v.SetConfigType(format)
	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	return decode(v)
}

// LoadBytes is Load over an in-memory document.
func LoadBytes(b []byte, format string) (*Document, error) {
	return Load(bytes.NewReader(b), format)
}

func decode(v *viper.Viper) (*Document, error) {
	var doc Document
	if err := v.Unmarshal(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	return &doc, nil
}

// Statuses returns the status catalog the document asks for, or nil.
func (d *Document) Statuses() (*status.Catalog, error) {
	spec := d.StatusCatalog
	if !spec.HTTP && len(spec.Extra) == 0 {
		return nil, nil
	}
	if spec.HTTP && len(spec.Extra) == 0 {
		return status.HTTP(), nil
	}
	entries := make(map[string]int)
	if spec.HTTP {
		std := status.HTTP()
		for _, n := range std.Names() {
			st, _ := std.Lookup(n)
			entries[n] = st.Int()
		}
	}
	for n, code := range spec.Extra {
		entries[status.Normalize(n)] = code
	}
	sc, err := status.NewCatalog(entries)
	if err != nil {
		return nil, fmt.Errorf("%w: status_catalog: %v", ErrInvalidDocument, err)
	}
	return sc, nil
}

// Catalog creates a catalog configured by the document, applies the
// hierarchies and freezes it. opts are applied after the document's own
// status catalog, so callers may override it.
func (d *Document) Catalog(opts ...kcerrors.CatalogOption) (*kcerrors.Catalog, error) {
	sc, err := d.Statuses()
	if err != nil {
		return nil, err
	}
	var all []kcerrors.CatalogOption
	if sc != nil {
		all = append(all, kcerrors.WithStatusCatalog(sc))
	}
	c := kcerrors.NewCatalog(append(all, opts...)...)
	if err := d.Apply(kcerrors.NewBuilder(c)); err != nil {
		return nil, err
	}
	c.Freeze()
	return c, nil
}

// Apply defines every hierarchy of the document with b. It stops at the
// first failure; variants defined before it stay in the catalog.
func (d *Document) Apply(b *kcerrors.Builder) error {
	for i, h := range d.Hierarchies {
		st, err := parseStatus(b.Catalog(), h.Status)
		if err != nil {
			return fmt.Errorf("hierarchies[%d]: %w", i, err)
		}
		spec := kcerrors.HierarchySpec{
			Class:     h.Class,
			Namespace: h.Namespace,
			KeyBase:   h.KeyBase,
			Status:    st,
			Severity:  kcerrors.Severity(h.Severity),
		}
		if h.Binding != nil {
			spec.Binding = &kcerrors.BindPolicy{Methods: h.Binding.Methods, Errors: h.Binding.Errors}
		}
		if _, err := b.Hierarchy(spec, blocks(h.Errors)...); err != nil {
			return fmt.Errorf("hierarchies[%d] %s: %w", i, h.Class, err)
		}
	}
	return nil
}

func blocks(nodes []Node) []kcerrors.Block {
	out := make([]kcerrors.Block, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.block())
	}
	return out
}

func (n Node) block() kcerrors.Block {
	return func(b *kcerrors.Builder, parent *kcerrors.Variant) error {
		if n.isScope() {
			return b.WithSeverity(kcerrors.Severity(n.Scope), func(b *kcerrors.Builder) error {
				for _, child := range blocks(n.Errors) {
					if err := child(b, parent); err != nil {
						return err
					}
				}
				return nil
			})
		}
		st, err := parseStatus(b.Catalog(), n.Status)
		if err != nil {
			return err
		}
		_, err = b.Define(parent, kcerrors.Spec{
			Key:        n.Key,
			Class:      n.Class,
			Status:     st,
			Severity:   kcerrors.Severity(n.Severity),
			HeaderOnly: n.HeaderOnly,
			Internal:   n.Internal,
			Params:     n.Params,
		}, blocks(n.Errors)...)
		return err
	}
}

// parseStatus resolves a status against the catalog's status table, or the
// HTTP table when the catalog has none.
func parseStatus(c *kcerrors.Catalog, s string) (status.Status, error) {
	if s == "" {
		return status.Status{}, nil
	}
	sc := c.StatusCatalog()
	if sc == nil {
		sc = status.HTTP()
	}
	st, err := sc.Parse(s)
	if err != nil {
		return status.Status{}, fmt.Errorf("%w: status %q: %v", ErrInvalidDocument, s, err)
	}
	return st, nil
}
