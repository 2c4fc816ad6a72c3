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

package exec

import (
	"github.com/keeldb/keel/pkg/sql/opt"
	"github.com/keeldb/keel/pkg/sql/opt/cat"
)

// ScanNode reads rows from a table.
type ScanNode struct {
	Table cat.Table

	// ColumnOrdinals are the table ordinals of the columns the scan
	// produces, in output order.
	ColumnOrdinals []int

	// Predicate restricts the rows returned; nil means all rows qualify.
	Predicate Expr

	schema Schema
}

// NewScanNode returns a scan over table producing cols, which must be
// columns of table.
func NewScanNode(table cat.Table, cols []opt.Column, ordinals []int, predicate Expr) *ScanNode {
	return &ScanNode{
		Table:          table,
		ColumnOrdinals: ordinals,
		Predicate:      predicate,
		schema:         MakeSchema(cols),
	}
}

// Op is part of the Node interface.
func (n *ScanNode) Op() opt.Operator { return opt.ScanOp }

// ChildCount is part of the Node interface.
func (n *ScanNode) ChildCount() int { return 0 }

// Child is part of the Node interface.
func (n *ScanNode) Child(i int) Node { panic("scan has no children") }

// Schema is part of the Node interface.
func (n *ScanNode) Schema() *Schema { return &n.schema }

// Target is one projection target: the ordinal position of the output
// column and the scalar expression that computes it.
type Target struct {
	Ordinal int
	Expr    Expr
}

// Projection is an ordered target list, one entry per output column.
type Projection struct {
	Targets []Target
}

// ProjectNode computes a new set of output columns from its input.
type ProjectNode struct {
	Projection Projection

	input  Node
	schema Schema
}

// NewProjectNode returns a projection of input. cols names the output
// columns, in the same order as the projection targets.
func NewProjectNode(input Node, projection Projection, cols []opt.Column) *ProjectNode {
	return &ProjectNode{
		Projection: projection,
		input:      input,
		schema:     MakeSchema(cols),
	}
}

// Op is part of the Node interface.
func (n *ProjectNode) Op() opt.Operator { return opt.ComputeExprsOp }

// ChildCount is part of the Node interface.
func (n *ProjectNode) ChildCount() int { return 1 }

// Child is part of the Node interface.
func (n *ProjectNode) Child(i int) Node {
	if i != 0 {
		panic("projection has one child")
	}
	return n.input
}

// Schema is part of the Node interface.
func (n *ProjectNode) Schema() *Schema { return &n.schema }

// FilterNode removes input rows that do not satisfy the predicate. Its
// output schema is its input's schema, unchanged.
type FilterNode struct {
	Predicate Expr

	input Node
}

// NewFilterNode returns a filter over input.
func NewFilterNode(input Node, predicate Expr) *FilterNode {
	return &FilterNode{Predicate: predicate, input: input}
}

// Op is part of the Node interface.
func (n *FilterNode) Op() opt.Operator { return opt.FilterOp }

// ChildCount is part of the Node interface.
func (n *FilterNode) ChildCount() int { return 1 }

// Child is part of the Node interface.
func (n *FilterNode) Child(i int) Node {
	if i != 0 {
		panic("filter has one child")
	}
	return n.input
}

// Schema is part of the Node interface.
func (n *FilterNode) Schema() *Schema { return n.input.Schema() }

// JoinNode joins its two inputs. Its output columns are the left input's
// columns followed by the right input's columns, in that order.
type JoinNode struct {
	JoinType  JoinType
	Algorithm JoinAlgorithm

	// Predicate is the join condition; nil means a cross product.
	Predicate Expr

	left, right Node
	op          opt.Operator
	schema      Schema
}

// NewJoinNode returns a join of left and right lowered from the given join
// operator. cols must be the concatenation of the children's output
// columns, left first.
func NewJoinNode(
	op opt.Operator,
	joinType JoinType,
	algorithm JoinAlgorithm,
	left, right Node,
	predicate Expr,
	cols []opt.Column,
) *JoinNode {
	return &JoinNode{
		JoinType:  joinType,
		Algorithm: algorithm,
		Predicate: predicate,
		left:      left,
		right:     right,
		op:        op,
		schema:    MakeSchema(cols),
	}
}

// Op is part of the Node interface.
func (n *JoinNode) Op() opt.Operator { return n.op }

// ChildCount is part of the Node interface.
func (n *JoinNode) ChildCount() int { return 2 }

// Child is part of the Node interface. Child 0 is the left input.
func (n *JoinNode) Child(i int) Node {
	switch i {
	case 0:
		return n.left
	case 1:
		return n.right
	}
	panic("join has two children")
}

// Schema is part of the Node interface.
func (n *JoinNode) Schema() *Schema { return &n.schema }
