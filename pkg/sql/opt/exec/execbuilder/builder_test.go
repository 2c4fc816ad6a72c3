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

package execbuilder_test

import (
	"context"
	"testing"

	"github.com/keeldb/keel/pkg/sql/opt"
	"github.com/keeldb/keel/pkg/sql/opt/cat"
	"github.com/keeldb/keel/pkg/sql/opt/exec"
	"github.com/keeldb/keel/pkg/sql/opt/exec/execbuilder"
	"github.com/keeldb/keel/pkg/sql/opt/memo"
	"github.com/keeldb/keel/pkg/sql/opt/testutils/testcat"
	"github.com/stretchr/testify/require"
)

// testExpr is the compiled form produced by the test scalar builder: just
// the canonical rendering of the source subtree.
type testExpr string

func (e testExpr) String() string { return string(e) }

// testScalarBuilder compiles a scalar subtree to its string rendering. Nil
// subtrees compile to nil, meaning "always true".
type testScalarBuilder struct{}

func (testScalarBuilder) BuildScalar(e *memo.OperatorExpression) (exec.Expr, error) {
	if e == nil {
		return nil, nil
	}
	return testExpr(e.String()), nil
}

func intCol(name string) cat.Column {
	return cat.Column{Name: name, Type: cat.Int}
}

func newTestBuilder() *execbuilder.Builder {
	catalog := testcat.New()
	catalog.CreateTable("t", intCol("a"), intCol("b"), intCol("c"))
	catalog.CreateTable("u", intCol("c"), intCol("d"))
	return execbuilder.New(catalog, testScalarBuilder{})
}

func variable(col opt.Column) *memo.OperatorExpression {
	return memo.NewOperatorExpression(&memo.VariableOp{Col: col})
}

func eq(left, right *memo.OperatorExpression) *memo.OperatorExpression {
	return memo.NewOperatorExpression(&memo.EqOp{}, left, right)
}

func constVal(v interface{}) *memo.OperatorExpression {
	return memo.NewOperatorExpression(&memo.ConstOp{Value: v})
}

func scan(table string, pred *memo.OperatorExpression, cols ...opt.Column) *memo.OperatorExpression {
	return memo.NewOperatorExpression(&memo.ScanOp{Table: table, Cols: cols, Predicate: pred})
}

func columnIDs(s *exec.Schema) []opt.ColumnID {
	ids := make([]opt.ColumnID, s.ColumnCount())
	for i := range ids {
		ids[i] = s.Column(i).ID()
	}
	return ids
}

var joinVariants = []struct {
	op        opt.Operator
	joinType  exec.JoinType
	algorithm exec.JoinAlgorithm
}{
	{opt.InnerNLJoinOp, exec.InnerJoin, exec.NestedLoopJoin},
	{opt.LeftNLJoinOp, exec.LeftOuterJoin, exec.NestedLoopJoin},
	{opt.RightNLJoinOp, exec.RightOuterJoin, exec.NestedLoopJoin},
	{opt.OuterNLJoinOp, exec.FullOuterJoin, exec.NestedLoopJoin},
	{opt.InnerHashJoinOp, exec.InnerJoin, exec.HashJoin},
	{opt.LeftHashJoinOp, exec.LeftOuterJoin, exec.HashJoin},
	{opt.RightHashJoinOp, exec.RightOuterJoin, exec.HashJoin},
	{opt.OuterHashJoinOp, exec.FullOuterJoin, exec.HashJoin},
}

// TestBuildJoinColumnOrder checks the fixed left-then-right output column
// contract across every join variant.
func TestBuildJoinColumnOrder(t *testing.T) {
	b := newTestBuilder()

	colA := opt.NewTableColumn(1, "t", 0, "a")
	colB := opt.NewTableColumn(2, "t", 1, "b")
	colC := opt.NewTableColumn(3, "u", 0, "c")
	colD := opt.NewTableColumn(4, "u", 1, "d")

	for _, tc := range joinVariants {
		t.Run(tc.op.String(), func(t *testing.T) {
			join := memo.NewOperatorExpression(
				memo.NewJoinOp(tc.op, eq(variable(colA), variable(colC))),
				scan("t", nil, colA, colB),
				scan("u", nil, colC, colD),
			)

			node, err := b.Build(context.Background(), join)
			require.NoError(t, err)

			joinNode, ok := node.(*exec.JoinNode)
			require.True(t, ok)
			require.Equal(t, tc.joinType, joinNode.JoinType)
			require.Equal(t, tc.algorithm, joinNode.Algorithm)
			require.Equal(t, tc.op, joinNode.Op())
			require.Equal(t,
				[]opt.ColumnID{1, 2, 3, 4}, columnIDs(joinNode.Schema()))
			require.Equal(t, opt.ScanOp, joinNode.Child(0).Op())
			require.Equal(t, opt.ScanOp, joinNode.Child(1).Op())
			require.Equal(t, "(eq (variable a:1) (variable c:3))",
				joinNode.Predicate.String())
		})
	}
}

// TestBuildProjectFilterScan lowers a full compute/filter/scan pipeline and
// checks every node of the resulting plan.
func TestBuildProjectFilterScan(t *testing.T) {
	b := newTestBuilder()

	colA := opt.NewTableColumn(1, "t", 0, "a")
	colB := opt.NewTableColumn(2, "t", 1, "b")
	colC := opt.NewTableColumn(3, "t", 2, "c")

	p1 := eq(variable(colA), constVal(1))
	p2 := eq(variable(colB), constVal(2))

	tree := memo.NewOperatorExpression(
		&memo.ComputeExprsOp{Targets: []memo.TargetExpr{
			{Col: colB, Expr: variable(colB)},
			{Col: colC, Expr: variable(colC)},
		}},
		memo.NewOperatorExpression(
			&memo.FilterOp{Predicate: p2},
			scan("t", p1, colA, colB, colC),
		),
	)

	node, err := b.Build(context.Background(), tree)
	require.NoError(t, err)

	project, ok := node.(*exec.ProjectNode)
	require.True(t, ok)
	require.Equal(t, []opt.ColumnID{2, 3}, columnIDs(project.Schema()))
	require.Len(t, project.Projection.Targets, 2)
	require.Equal(t, 0, project.Projection.Targets[0].Ordinal)
	require.Equal(t, "(variable b:2)", project.Projection.Targets[0].Expr.String())
	require.Equal(t, 1, project.Projection.Targets[1].Ordinal)
	require.Equal(t, "(variable c:3)", project.Projection.Targets[1].Expr.String())

	filter, ok := project.Child(0).(*exec.FilterNode)
	require.True(t, ok)
	require.Equal(t, p2.String(), filter.Predicate.String())
	require.Equal(t, []opt.ColumnID{1, 2, 3}, columnIDs(filter.Schema()))

	scanNode, ok := filter.Child(0).(*exec.ScanNode)
	require.True(t, ok)
	require.Equal(t, "t", scanNode.Table.Name())
	require.Equal(t, []int{0, 1, 2}, scanNode.ColumnOrdinals)
	require.Equal(t, p1.String(), scanNode.Predicate.String())
	require.Equal(t, []opt.ColumnID{1, 2, 3}, columnIDs(scanNode.Schema()))
}

// TestBuildScanWithoutPredicate checks that an absent predicate lowers to a
// nil (always true) expression rather than an error.
func TestBuildScanWithoutPredicate(t *testing.T) {
	b := newTestBuilder()
	colA := opt.NewTableColumn(1, "t", 0, "a")

	node, err := b.Build(context.Background(), scan("t", nil, colA))
	require.NoError(t, err)
	scanNode, ok := node.(*exec.ScanNode)
	require.True(t, ok)
	require.Nil(t, scanNode.Predicate)
}

func TestBuildUnsupportedOperator(t *testing.T) {
	b := newTestBuilder()
	colA := opt.NewTableColumn(1, "t", 0, "a")
	input := scan("t", nil, colA)

	for _, tree := range []*memo.OperatorExpression{
		memo.NewOperatorExpression(&memo.ProjectOp{Cols: []opt.Column{colA}}, input),
		memo.NewOperatorExpression(&memo.SortOp{Cols: []opt.ColumnID{1}}, input),
		memo.NewOperatorExpression(&memo.LeafOp{OriginGroup: 0}),
	} {
		node, err := b.Build(context.Background(), tree)
		require.Nil(t, node)
		require.ErrorContains(t, err, "unsupported operator")
	}
}

func TestBuildChildCountMismatch(t *testing.T) {
	b := newTestBuilder()
	colA := opt.NewTableColumn(1, "t", 0, "a")

	// Filter with no input.
	_, err := b.Build(context.Background(),
		memo.NewOperatorExpression(&memo.FilterOp{}))
	require.ErrorContains(t, err, "expects 1 children, found 0")

	// Join with a single input.
	_, err = b.Build(context.Background(),
		memo.NewOperatorExpression(
			memo.NewJoinOp(opt.InnerNLJoinOp, nil), scan("t", nil, colA)))
	require.ErrorContains(t, err, "expects 2 children, found 1")
}

func TestBuildColumnNotInInput(t *testing.T) {
	b := newTestBuilder()
	colA := opt.NewTableColumn(1, "t", 0, "a")
	colX := opt.NewTableColumn(99, "u", 1, "d")

	_, err := b.Build(context.Background(),
		memo.NewOperatorExpression(
			&memo.FilterOp{Predicate: eq(variable(colX), constVal(1))},
			scan("t", nil, colA)))
	require.ErrorContains(t, err, "not produced by the input")

	_, err = b.Build(context.Background(),
		memo.NewOperatorExpression(
			&memo.ComputeExprsOp{Targets: []memo.TargetExpr{
				{Col: colX, Expr: variable(colX)},
			}},
			scan("t", nil, colA)))
	require.ErrorContains(t, err, "not produced by the input")
}

func TestBuildScanValidation(t *testing.T) {
	b := newTestBuilder()

	// Unknown table.
	_, err := b.Build(context.Background(),
		scan("missing", nil, opt.NewTableColumn(1, "missing", 0, "a")))
	require.ErrorContains(t, err, `no table named "missing"`)

	// Column from another table.
	_, err = b.Build(context.Background(),
		scan("t", nil, opt.NewTableColumn(1, "u", 0, "c")))
	require.ErrorContains(t, err, "not a column of table")

	// Ordinal out of range.
	_, err = b.Build(context.Background(),
		scan("t", nil, opt.NewTableColumn(1, "t", 7, "a")))
	require.ErrorContains(t, err, "not a column of table")

	// Synthesized columns cannot come out of a scan.
	_, err = b.Build(context.Background(),
		scan("t", nil, opt.NewSynthesizedColumn(1, "a")))
	require.ErrorContains(t, err, "non-table column")
}
