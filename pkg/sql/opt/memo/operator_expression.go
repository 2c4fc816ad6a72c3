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
	"bytes"
)

// OperatorExpression is a node in an owned operator tree: one operator
// variant plus its ordered relational children. The binder produces one
// tree per query, and transformation rules produce fragments of new trees
// whose leaves reference existing memo groups (see LeafOp).
//
// The tree's shape is immutable after construction. The memo and the plan
// builder both consume it read-only, so a single tree can be shared between
// insertion paths without copying.
type OperatorExpression struct {
	op       Op
	children []*OperatorExpression
}

// NewOperatorExpression returns a new expression with the given operator
// and relational children.
func NewOperatorExpression(op Op, children ...*OperatorExpression) *OperatorExpression {
	return &OperatorExpression{op: op, children: children}
}

// Op returns the expression's operator variant.
func (e *OperatorExpression) Op() Op { return e.op }

// ChildCount returns the number of relational children.
func (e *OperatorExpression) ChildCount() int { return len(e.children) }

// Child returns the ith child, where i < ChildCount.
func (e *OperatorExpression) Child(i int) *OperatorExpression { return e.children[i] }

// Children returns the ordered child list. Callers must not modify it.
func (e *OperatorExpression) Children() []*OperatorExpression { return e.children }

// String returns a compact single-line rendering of the expression tree,
// for debugging and error messages.
func (e *OperatorExpression) String() string {
	var buf bytes.Buffer
	e.formatScalar(&buf)
	return buf.String()
}

// formatScalar writes a canonical s-expression rendering of the tree into
// buf. The rendering is deterministic, so it can double as the payload
// encoding used by expression fingerprints.
func (e *OperatorExpression) formatScalar(buf *bytes.Buffer) {
	buf.WriteByte('(')
	buf.WriteString(e.op.Operator().String())
	e.op.appendFingerprint(buf)
	for _, c := range e.children {
		buf.WriteByte(' ')
		c.formatScalar(buf)
	}
	buf.WriteByte(')')
}
