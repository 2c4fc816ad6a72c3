// Copyright 2025 The Keel Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or
// implied. See the License for the specific language governing
// permissions and limitations under the License.

package memo

import (
	"testing"

	"github.com/keeldb/keel/pkg/sql/opt"
	"github.com/stretchr/testify/require"
)

func scanExpr(table string) *GroupExpression {
	return NewGroupExpression(&ScanOp{Table: table}, nil)
}

func joinExpr(op opt.Operator, left, right opt.GroupID) *GroupExpression {
	return NewGroupExpression(NewJoinOp(op, nil), []opt.GroupID{left, right})
}

func TestInsertExpressionDedup(t *testing.T) {
	m := New()

	first := m.InsertExpression(scanExpr("a"), false)
	require.Equal(t, opt.GroupID(0), first.Group())
	require.Equal(t, 1, m.GroupCount())
	require.Equal(t, 1, m.ExprCount())

	// A structurally identical expression collapses to the existing
	// representative: same group id, and neither the group count nor the
	// expression count moves.
	dup := scanExpr("a")
	second := m.InsertExpression(dup, false)
	require.Same(t, first, second)
	require.Equal(t, opt.GroupID(0), dup.Group())
	require.Equal(t, 1, m.GroupCount())
	require.Equal(t, 1, m.ExprCount())
	require.Equal(t, 1, m.GetGroupByID(0).ExprCount())

	// A different table is a different expression.
	other := m.InsertExpression(scanExpr("b"), false)
	require.Equal(t, opt.GroupID(1), other.Group())
	require.Equal(t, 2, m.GroupCount())
	require.Equal(t, 2, m.ExprCount())
}

func TestInsertExpressionSharedChildren(t *testing.T) {
	m := New()
	left := m.InsertExpression(scanExpr("a"), false)
	right := m.InsertExpression(scanExpr("b"), false)

	// Join expressions built independently over the same child groups
	// compare equal regardless of which subtree proposed them.
	j1 := m.InsertExpression(joinExpr(opt.InnerNLJoinOp, left.Group(), right.Group()), false)
	j2 := m.InsertExpression(joinExpr(opt.InnerNLJoinOp, left.Group(), right.Group()), false)
	require.Same(t, j1, j2)
	require.Equal(t, 3, m.GroupCount())

	// The commuted join is structurally different. Inserted with an
	// explicit target, it becomes a second alternative in the same group.
	commuted := m.InsertExpressionToGroup(
		joinExpr(opt.InnerNLJoinOp, right.Group(), left.Group()), j1.Group(), false)
	require.NotSame(t, j1, commuted)
	require.Equal(t, j1.Group(), commuted.Group())
	require.Equal(t, 3, m.GroupCount())
	require.Equal(t, 2, m.GetGroupByID(j1.Group()).ExprCount())
}

func TestInsertExpressionLeaf(t *testing.T) {
	m := New()
	origin := m.AddNewGroup()

	// Leaf insertion never allocates memo state; it only tags the leaf with
	// its origin group and hands the same object back.
	leaf := NewGroupExpression(&LeafOp{OriginGroup: origin}, nil)
	res := m.InsertExpression(leaf, false)
	require.Same(t, leaf, res)
	require.Equal(t, origin, res.Group())
	require.Equal(t, 1, m.GroupCount())
	require.Equal(t, 0, m.ExprCount())
	require.Equal(t, 0, m.GetGroupByID(origin).ExprCount())

	// An explicit target is allowed when it agrees with the origin.
	leaf2 := NewGroupExpression(&LeafOp{OriginGroup: origin}, nil)
	res = m.InsertExpressionToGroup(leaf2, origin, false)
	require.Same(t, leaf2, res)

	// A disagreeing target is a caller bug.
	other := m.AddNewGroup()
	leaf3 := NewGroupExpression(&LeafOp{OriginGroup: origin}, nil)
	require.Panics(t, func() {
		m.InsertExpressionToGroup(leaf3, other, false)
	})
}

func TestAddNewGroupDenseIDs(t *testing.T) {
	m := New()
	for i := 0; i < 5; i++ {
		require.Equal(t, opt.GroupID(i), m.AddNewGroup())
		require.Equal(t, i+1, m.GroupCount())
	}
}

func TestInsertExpressionTargetGroupMismatch(t *testing.T) {
	m := New()
	a := m.InsertExpression(scanExpr("a"), false)
	b := m.InsertExpression(scanExpr("b"), false)
	require.NotEqual(t, a.Group(), b.Group())

	// Re-proposing an existing expression with the wrong explicit target
	// must fail loudly rather than corrupt the equivalence classes.
	require.Panics(t, func() {
		m.InsertExpressionToGroup(scanExpr("a"), b.Group(), false)
	})
}

func TestInsertExpressionEnforced(t *testing.T) {
	m := New()
	input := m.InsertExpression(scanExpr("a"), false)

	sort := NewGroupExpression(
		&SortOp{Cols: []opt.ColumnID{1}}, []opt.GroupID{input.Group()})
	res := m.InsertExpressionToGroup(sort, input.Group(), true)
	require.Same(t, sort, res)
	require.True(t, res.Enforced())

	g := m.GetGroupByID(input.Group())
	require.Equal(t, 1, g.ExprCount())
	require.Equal(t, 1, g.EnforcerCount())
	require.Same(t, sort, g.Enforcer(0))
	require.Equal(t, 2, m.ExprCount())
}

func TestGetGroupByIDOutOfRange(t *testing.T) {
	m := New()
	require.Panics(t, func() { m.GetGroupByID(0) })
	require.Panics(t, func() { m.GetGroupByID(opt.UndefinedGroup) })

	id := m.AddNewGroup()
	require.Equal(t, id, m.GetGroupByID(id).ID())
	require.Panics(t, func() { m.GetGroupByID(id + 1) })
}

func TestFingerprintIncludesPayload(t *testing.T) {
	colA := opt.NewTableColumn(1, "t", 0, "a")
	pred := func(v interface{}) *OperatorExpression {
		return NewOperatorExpression(&EqOp{},
			NewOperatorExpression(&VariableOp{Col: colA}),
			NewOperatorExpression(&ConstOp{Value: v}))
	}

	m := New()
	input := m.InsertExpression(scanExpr("t"), false)

	f1 := m.InsertExpression(NewGroupExpression(
		&FilterOp{Predicate: pred(1)}, []opt.GroupID{input.Group()}), false)
	f2 := m.InsertExpression(NewGroupExpression(
		&FilterOp{Predicate: pred(2)}, []opt.GroupID{input.Group()}), false)

	// Same operator and child groups, different predicate payloads: the
	// fingerprints must not collide.
	require.NotEqual(t, f1.Fingerprint(), f2.Fingerprint())
	require.NotEqual(t, f1.Group(), f2.Group())

	f3 := m.InsertExpression(NewGroupExpression(
		&FilterOp{Predicate: pred(1)}, []opt.GroupID{input.Group()}), false)
	require.Same(t, f1, f3)
}
