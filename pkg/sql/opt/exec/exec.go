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

// Package exec defines the executable plan nodes produced by the optimizer.
// The execution engine consumes these nodes; the optimizer's execbuilder
// package produces them by lowering a chosen operator tree.
package exec

import (
	"github.com/cockroachdb/errors"
	"github.com/keeldb/keel/pkg/sql/opt"
)

// Node is a node in an executable plan tree. Every node owns its children
// and exposes the schema of the rows it produces.
type Node interface {
	// Op returns the operator this node was lowered from.
	Op() opt.Operator

	// ChildCount returns the number of child plan nodes.
	ChildCount() int

	// Child returns the ith child plan node, where i < ChildCount.
	Child(i int) Node

	// Schema returns the output schema of the node.
	Schema() *Schema
}

// Schema describes the ordered output columns of a plan node.
type Schema struct {
	cols []opt.Column
}

// MakeSchema returns a schema over the given columns. The slice is captured,
// not copied.
func MakeSchema(cols []opt.Column) Schema {
	return Schema{cols: cols}
}

// ColumnCount returns the number of columns in the schema.
func (s *Schema) ColumnCount() int { return len(s.cols) }

// Column returns the ith column of the schema.
func (s *Schema) Column(i int) opt.Column { return s.cols[i] }

// Columns returns the ordered column list. Callers must not modify it.
func (s *Schema) Columns() []opt.Column { return s.cols }

// ColumnOrdinal returns the position of the column with the given id, or
// false if the schema does not contain it.
func (s *Schema) ColumnOrdinal(id opt.ColumnID) (int, bool) {
	for i, c := range s.cols {
		if c.ID() == id {
			return i, true
		}
	}
	return 0, false
}

// JoinType describes which unmatched rows a join preserves.
type JoinType uint8

const (
	InnerJoin JoinType = iota
	LeftOuterJoin
	RightOuterJoin
	FullOuterJoin
)

var joinTypeNames = [...]string{
	InnerJoin:      "inner",
	LeftOuterJoin:  "left outer",
	RightOuterJoin: "right outer",
	FullOuterJoin:  "full outer",
}

func (t JoinType) String() string { return joinTypeNames[t] }

// JoinAlgorithm is the physical method of joining.
type JoinAlgorithm uint8

const (
	NestedLoopJoin JoinAlgorithm = iota
	HashJoin
)

var joinAlgorithmNames = [...]string{
	NestedLoopJoin: "nested loop",
	HashJoin:       "hash",
}

func (a JoinAlgorithm) String() string { return joinAlgorithmNames[a] }

// JoinOpInfo maps a join operator to its type and algorithm.
func JoinOpInfo(op opt.Operator) (JoinType, JoinAlgorithm, error) {
	switch op {
	case opt.InnerNLJoinOp:
		return InnerJoin, NestedLoopJoin, nil
	case opt.LeftNLJoinOp:
		return LeftOuterJoin, NestedLoopJoin, nil
	case opt.RightNLJoinOp:
		return RightOuterJoin, NestedLoopJoin, nil
	case opt.OuterNLJoinOp:
		return FullOuterJoin, NestedLoopJoin, nil
	case opt.InnerHashJoinOp:
		return InnerJoin, HashJoin, nil
	case opt.LeftHashJoinOp:
		return LeftOuterJoin, HashJoin, nil
	case opt.RightHashJoinOp:
		return RightOuterJoin, HashJoin, nil
	case opt.OuterHashJoinOp:
		return FullOuterJoin, HashJoin, nil
	}
	return 0, 0, errors.AssertionFailedf("%s is not a join operator", op)
}
