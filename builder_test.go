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

package kcerrors_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"dirpx.dev/kcerrors"
	"dirpx.dev/kcerrors/status"
)

// plainRoot returns a catalog without status catalog and an unbound-style
// root named Base.
func plainRoot(t *testing.T) (*kcerrors.Builder, *kcerrors.Variant) {
	t.Helper()
	b := kcerrors.NewBuilder(kcerrors.NewCatalog())
	root, err := b.Hierarchy(kcerrors.HierarchySpec{Class: "Base"})
	require.NoError(t, err)
	return b, root
}

func mustDefine(t *testing.T, b *kcerrors.Builder, parent *kcerrors.Variant, spec kcerrors.Spec) *kcerrors.Variant {
	t.Helper()
	v, err := b.Define(parent, spec)
	require.NoError(t, err)
	return v
}

func TestDefine_Identifiers(t *testing.T) {
	b, root := plainRoot(t)

	_, err := b.Define(root, kcerrors.Spec{})
	require.ErrorIs(t, err, kcerrors.ErrMissingIdentifier)
	require.Contains(t, err.Error(), "define what error?")

	_, err = b.Define(root, kcerrors.Spec{Status: status.Code(404)})
	require.ErrorIs(t, err, kcerrors.ErrMissingIdentifier)
	require.Contains(t, err.Error(), "one of key or class must be provided")

	_, err = b.Define(root, kcerrors.Spec{Key: "a", Class: "b"})
	require.ErrorIs(t, err, kcerrors.ErrConflictingIdentifier)
	require.Contains(t, err.Error(), "conflicts with class:b")

	_, err = b.Define(root, kcerrors.Spec{Key: "!!!"})
	require.ErrorIs(t, err, kcerrors.ErrMissingIdentifier)
}

func TestDefine_KeyNormalization(t *testing.T) {
	b, root := plainRoot(t)

	v := mustDefine(t, b, root, kcerrors.Spec{Key: "  child--not found! "})
	require.Equal(t, "child_not_found", v.Key())
	require.Equal(t, "ChildNotFound", v.Name())
	require.Equal(t, "Base.ChildNotFound", v.QualifiedName())
	require.Equal(t, "base.child_not_found", v.Path())
	require.Equal(t, "kcerrors.child_not_found", v.LocalizationKey())
	require.Same(t, root, v.Parent())
	require.Same(t, root, v.Root())
}

func TestDefine_SecondIdenticalCallIsDuplicate(t *testing.T) {
	specs := []kcerrors.Spec{
		{Key: "other_child"},
		{Class: "user"},
		{Class: "user", Status: status.Named("missing", 0)},
		{Key: "with_params", Params: []string{"a", "b"}, Severity: kcerrors.SeverityInfo},
	}
	for _, spec := range specs {
		b, root := plainRoot(t)
		first := mustDefine(t, b, root, spec)

		_, err := b.Define(root, spec)
		require.ErrorIs(t, err, kcerrors.ErrDuplicateVariant)
		require.Contains(t, err.Error(), "key:"+first.Key()+" already exists as "+first.QualifiedName())
		if spec.Class != "" {
			require.Contains(t, err.Error(), "with class:"+spec.Class)
		}
	}
}

func TestDefine_DuplicateThroughAncestor(t *testing.T) {
	b, root := plainRoot(t)
	mustDefine(t, b, root, kcerrors.Spec{Key: "taken"})
	child := mustDefine(t, b, root, kcerrors.Spec{Key: "child"})

	_, err := b.Define(child, kcerrors.Spec{Key: "taken"})
	require.ErrorIs(t, err, kcerrors.ErrDuplicateVariant)

	// Siblings of the ancestor chain are not checked.
	other := mustDefine(t, b, child, kcerrors.Spec{Key: "leaf"})
	v := mustDefine(t, b, root, kcerrors.Spec{Key: "sibling"})
	got := mustDefine(t, b, v, kcerrors.Spec{Key: "leaf"})
	require.NotSame(t, other, got)
}

func TestDefine_ClassDerivation(t *testing.T) {
	b, root := plainRoot(t)
	parent := mustDefine(t, b, root, kcerrors.Spec{Key: "child_not_found"})

	v := mustDefine(t, b, parent, kcerrors.Spec{Class: "user"})
	require.Equal(t, "user_child_not_found", v.Key())
	require.Equal(t, "UserChildNotFound", v.Name())
	require.Equal(t, "user", v.Class())

	named := mustDefine(t, b, parent, kcerrors.Spec{Class: "user", Status: status.Named("not_found", 404)})
	require.Equal(t, "user_not_found", named.Key())
	require.Equal(t, "UserNotFound", named.Name())
	require.Equal(t, status.Named("not_found", 404), named.DefaultStatus())
}

func TestDefine_DefaultStatus(t *testing.T) {
	b, root := plainRoot(t)
	v := mustDefine(t, b, root, kcerrors.Spec{Key: "x"})
	require.Equal(t, status.Code(400), v.DefaultStatus())
	require.False(t, v.DefaultStatus().IsNamed())

	cat := kcerrors.NewCatalog(kcerrors.WithStatusCatalog(status.HTTP()))
	b2 := kcerrors.NewBuilder(cat)
	root2, err := b2.Hierarchy(kcerrors.HierarchySpec{Class: "Base", Binding: &kcerrors.BindPolicy{}})
	require.NoError(t, err)
	v2 := mustDefine(t, b2, root2, kcerrors.Spec{Key: "x"})
	require.Equal(t, status.Named("bad_request", 400), v2.DefaultStatus())

	v3 := mustDefine(t, b2, root2, kcerrors.Spec{Key: "y", Status: status.Code(409)})
	require.Equal(t, status.Code(409), v3.DefaultStatus())
}

func TestWithSeverity_Nesting(t *testing.T) {
	b, root := plainRoot(t)

	var outer, inner, after *kcerrors.Variant
	err := b.WithSeverity("warn", func(b *kcerrors.Builder) error {
		outer = mustDefine(t, b, root, kcerrors.Spec{Key: "outer"})
		if err := b.WithSeverity(kcerrors.SeverityInfo, func(b *kcerrors.Builder) error {
			inner = mustDefine(t, b, root, kcerrors.Spec{Key: "inner"})
			return nil
		}); err != nil {
			return err
		}
		after = mustDefine(t, b, root, kcerrors.Spec{Key: "after"})
		return nil
	})
	require.NoError(t, err)
	outside := mustDefine(t, b, root, kcerrors.Spec{Key: "outside"})
	explicit := mustDefine(t, b, root, kcerrors.Spec{Key: "explicit", Severity: kcerrors.SeverityDebug})

	require.Equal(t, kcerrors.SeverityWarning, outer.DefaultSeverity())
	require.Equal(t, kcerrors.SeverityInfo, inner.DefaultSeverity())
	require.Equal(t, kcerrors.SeverityWarning, after.DefaultSeverity())
	require.Equal(t, kcerrors.SeverityError, outside.DefaultSeverity())
	require.Equal(t, kcerrors.SeverityDebug, explicit.DefaultSeverity())
	require.Equal(t, kcerrors.DefaultSeverity, b.Severity())
}

func TestWithSeverity_RestoresOnError(t *testing.T) {
	b, root := plainRoot(t)
	boom := kcerrors.ErrFrozen

	err := b.WithSeverity(kcerrors.SeverityInfo, func(*kcerrors.Builder) error { return boom })
	require.ErrorIs(t, err, boom)
	require.Equal(t, kcerrors.SeverityError, mustDefine(t, b, root, kcerrors.Spec{Key: "x"}).DefaultSeverity())

	require.ErrorIs(t, b.WithSeverity(kcerrors.SeverityInfo, nil), kcerrors.ErrMissingBlock)
	require.ErrorIs(t, b.WithSeverity("loud", func(*kcerrors.Builder) error { return nil }), kcerrors.ErrInvalidSeverity)

	_, err = b.Define(root, kcerrors.Spec{Key: "bad", Severity: "loud"})
	require.ErrorIs(t, err, kcerrors.ErrInvalidSeverity)
}

func TestDefine_FlagsAreInherited(t *testing.T) {
	b, root := plainRoot(t)
	h := mustDefine(t, b, root, kcerrors.Spec{Key: "head", HeaderOnly: true})
	i := mustDefine(t, b, h, kcerrors.Spec{Key: "hidden", Internal: true})
	leaf := mustDefine(t, b, i, kcerrors.Spec{Key: "leaf"})

	require.True(t, leaf.HeaderOnly())
	require.True(t, leaf.Internal())
	require.False(t, h.Internal())
	require.False(t, root.HeaderOnly())
}

func TestDefine_ParamsAreNotInherited(t *testing.T) {
	b, root := plainRoot(t)
	p := mustDefine(t, b, root, kcerrors.Spec{Key: "p", Params: []string{"id"}})
	c := mustDefine(t, b, p, kcerrors.Spec{Key: "c"})

	require.Equal(t, []string{"id"}, p.LocalizationParams())
	require.Empty(t, c.LocalizationParams())
}

func TestDefine_ChildBlocks(t *testing.T) {
	b, root := plainRoot(t)

	var sub *kcerrors.Variant
	v, err := b.Define(root, kcerrors.Spec{Key: "other_child"}, func(b *kcerrors.Builder, parent *kcerrors.Variant) error {
		var err error
		sub, err = b.Define(parent, kcerrors.Spec{Key: "sub_child"})
		return err
	})
	require.NoError(t, err)
	require.Same(t, v, sub.Parent())
	require.Equal(t, "Base.OtherChild.SubChild", sub.QualifiedName())

	_, err = b.Define(root, kcerrors.Spec{Key: "broken"}, func(b *kcerrors.Builder, parent *kcerrors.Variant) error {
		_, err := b.Define(parent, kcerrors.Spec{})
		return err
	})
	require.ErrorIs(t, err, kcerrors.ErrMissingIdentifier)
	_, ok := b.Catalog().Lookup("Base.Broken")
	require.True(t, ok, "variants registered before a failing block stay registered")
}

func TestDefine_ForeignParent(t *testing.T) {
	b, _ := plainRoot(t)
	_, other := plainRoot(t)

	_, err := b.Define(other, kcerrors.Spec{Key: "x"})
	require.ErrorIs(t, err, kcerrors.ErrInvalidExtensionTarget)
	_, err = b.Define(nil, kcerrors.Spec{Key: "x"})
	require.ErrorIs(t, err, kcerrors.ErrInvalidExtensionTarget)
}

func TestDefine_UnderBase(t *testing.T) {
	b := kcerrors.NewBuilder(kcerrors.NewCatalog())
	v := mustDefine(t, b, b.Catalog().Base(), kcerrors.Spec{Key: "generic"})

	require.Equal(t, "Error.Generic", v.QualifiedName())
	require.Equal(t, "error.generic", v.Path())
	require.Nil(t, v.Root())
	require.False(t, v.IsRoot())
}

func TestRegister_QualifiedNameCollisions(t *testing.T) {
	t.Run("root after base child", func(t *testing.T) {
		b := kcerrors.NewBuilder(kcerrors.NewCatalog())
		generic := mustDefine(t, b, b.Catalog().Base(), kcerrors.Spec{Key: "generic"})

		_, err := b.Hierarchy(kcerrors.HierarchySpec{Class: "Generic", Namespace: "Error"})
		require.ErrorIs(t, err, kcerrors.ErrDuplicateVariant)

		got, ok := b.Catalog().Lookup("Error.Generic")
		require.True(t, ok)
		require.Same(t, generic, got)
	})

	t.Run("base child after root", func(t *testing.T) {
		b := kcerrors.NewBuilder(kcerrors.NewCatalog())
		root, err := b.Hierarchy(kcerrors.HierarchySpec{Class: "Generic", Namespace: "Error"})
		require.NoError(t, err)

		_, err = b.Define(b.Catalog().Base(), kcerrors.Spec{Key: "generic"})
		require.ErrorIs(t, err, kcerrors.ErrDuplicateVariant)

		got, ok := b.Catalog().Lookup("Error.Generic")
		require.True(t, ok)
		require.Same(t, root, got)
	})

	t.Run("root after nested child", func(t *testing.T) {
		b := kcerrors.NewBuilder(kcerrors.NewCatalog())
		my, err := b.Hierarchy(kcerrors.HierarchySpec{Class: "My"})
		require.NoError(t, err)
		mustDefine(t, b, my, kcerrors.Spec{Key: "base"})

		_, err = b.Hierarchy(kcerrors.HierarchySpec{Class: "Base", Namespace: "My"})
		require.ErrorIs(t, err, kcerrors.ErrDuplicateVariant)
	})
}

func TestHierarchy(t *testing.T) {
	b := kcerrors.NewBuilder(kcerrors.NewCatalog())
	root, err := b.Hierarchy(kcerrors.HierarchySpec{Class: "MyErrors", Namespace: "Billing", KeyBase: "billing"})
	require.NoError(t, err)

	require.True(t, root.IsRoot())
	require.Same(t, b.Catalog().Base(), root.Parent())
	require.Equal(t, "Billing.MyErrors", root.QualifiedName())
	require.Equal(t, "my_errors", root.Path())
	require.Equal(t, "billing.my_errors", root.LocalizationKey())

	child := mustDefine(t, b, root, kcerrors.Spec{Key: "declined"})
	require.Equal(t, "billing", child.LocalizationKeyBase())
	require.Equal(t, "billing.declined", child.LocalizationKey())
	require.Equal(t, "Billing", child.Namespace())

	_, err = b.Hierarchy(kcerrors.HierarchySpec{Class: "MyErrors", Namespace: "Billing"})
	require.ErrorIs(t, err, kcerrors.ErrAlreadyBound)
	require.Contains(t, err.Error(), "is already a root hierarchy")

	_, err = b.Hierarchy(kcerrors.HierarchySpec{})
	require.ErrorIs(t, err, kcerrors.ErrMissingIdentifier)
}

func TestCatalog_Freeze(t *testing.T) {
	b, root := plainRoot(t)
	mustDefine(t, b, root, kcerrors.Spec{Key: "a"})
	b.Catalog().Freeze()
	require.True(t, b.Catalog().Frozen())

	_, err := b.Define(root, kcerrors.Spec{Key: "b"})
	require.ErrorIs(t, err, kcerrors.ErrFrozen)

	s1 := b.Catalog().Snapshot()
	s2 := b.Catalog().Snapshot()
	require.Same(t, s1, s2)
	require.Equal(t, 2, s1.Len())
	require.Equal(t, []*kcerrors.Variant{root}, s1.Roots())
}

func TestCatalog_SnapshotIsolation(t *testing.T) {
	b, root := plainRoot(t)
	snap := b.Catalog().Snapshot()
	mustDefine(t, b, root, kcerrors.Spec{Key: "later"})

	require.Equal(t, 1, snap.Len())
	require.Equal(t, 2, b.Catalog().Snapshot().Len())
	_, ok := snap.Lookup("Base.Later")
	require.False(t, ok)
}

func TestSnapshot_ChildrenSorted(t *testing.T) {
	b, root := plainRoot(t)
	mustDefine(t, b, root, kcerrors.Spec{Key: "zeta"})
	mustDefine(t, b, root, kcerrors.Spec{Key: "alpha"})

	kids := b.Catalog().Snapshot().Children(root)
	require.Len(t, kids, 2)
	require.Equal(t, "Alpha", kids[0].Name())
	require.Equal(t, "Zeta", kids[1].Name())
}
