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

package opt

import "github.com/cockroachdb/redact"

// Operator describes the type of operation that a memo expression performs.
// This is a closed set: the memo and the plan builder switch exhaustively
// over it, and any operator without a lowering rule is rejected explicitly
// rather than silently ignored.
type Operator uint8

const (
	// UnknownOp should never be used; it exists so the zero value of
	// Operator is invalid.
	UnknownOp Operator = iota

	// LeafOp is a placeholder that stands in for an already-memoized
	// subtree. It references the group that produced it, and is used to
	// re-enter the memo from a pattern produced by a transformation rule.
	LeafOp

	// Relational operators.
	ScanOp
	ProjectOp
	ComputeExprsOp
	FilterOp
	SortOp
	InnerNLJoinOp
	LeftNLJoinOp
	RightNLJoinOp
	OuterNLJoinOp
	InnerHashJoinOp
	LeftHashJoinOp
	RightHashJoinOp
	OuterHashJoinOp

	// Scalar operators, used in predicate and projection subtrees.
	VariableOp
	ConstOp
	EqOp
	AndOp

	// NumOperators tracks the count of operators.
	NumOperators
)

var opNames = [NumOperators]string{
	UnknownOp:       "unknown",
	LeafOp:          "leaf",
	ScanOp:          "scan",
	ProjectOp:       "project",
	ComputeExprsOp:  "compute-exprs",
	FilterOp:        "filter",
	SortOp:          "sort",
	InnerNLJoinOp:   "inner-nl-join",
	LeftNLJoinOp:    "left-nl-join",
	RightNLJoinOp:   "right-nl-join",
	OuterNLJoinOp:   "outer-nl-join",
	InnerHashJoinOp: "inner-hash-join",
	LeftHashJoinOp:  "left-hash-join",
	RightHashJoinOp: "right-hash-join",
	OuterHashJoinOp: "outer-hash-join",
	VariableOp:      "variable",
	ConstOp:         "const",
	EqOp:            "eq",
	AndOp:           "and",
}

func (op Operator) String() string {
	if op >= NumOperators {
		return "operator-unknown"
	}
	return opNames[op]
}

// SafeValue implements the redact.SafeValue interface. Operator names never
// contain user data.
func (op Operator) SafeValue() {}

var _ redact.SafeValue = UnknownOp

// IsJoin returns true if the operator is one of the join variants, nested
// loop or hash.
func (op Operator) IsJoin() bool {
	switch op {
	case InnerNLJoinOp, LeftNLJoinOp, RightNLJoinOp, OuterNLJoinOp,
		InnerHashJoinOp, LeftHashJoinOp, RightHashJoinOp, OuterHashJoinOp:
		return true
	}
	return false
}

// IsScalar returns true if the operator produces a scalar value rather than
// a set of rows. Scalar operators appear only inside predicate and
// projection subtrees.
func (op Operator) IsScalar() bool {
	switch op {
	case VariableOp, ConstOp, EqOp, AndOp:
		return true
	}
	return false
}

// IsRelational returns true if the operator produces a set of rows.
func (op Operator) IsRelational() bool {
	return op != UnknownOp && op != LeafOp && !op.IsScalar()
}
