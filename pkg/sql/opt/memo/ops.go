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
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/keeldb/keel/pkg/sql/opt"
)

// Op is one operator variant together with its kind-specific payload. The
// set of implementations is closed: they all live in this file, and code
// that consumes operators switches over the concrete types (or over
// Operator()) exhaustively.
//
// Relational inputs of an operator are carried as children of the owning
// OperatorExpression (and become child group references once the expression
// is memoized). Scalar subtrees that parameterize an operator, like
// predicates and projection targets, are part of the payload instead; they
// contribute to the operator's fingerprint so that structural
// deduplication distinguishes, say, two filters with different predicates
// over the same input.
type Op interface {
	// Operator returns the kind of this operator.
	Operator() opt.Operator

	// appendFingerprint appends a canonical encoding of the payload to buf.
	// Two payloads append equal encodings iff they are semantically
	// identical. Child groups are not included; the owning GroupExpression
	// appends those itself.
	appendFingerprint(buf *bytes.Buffer)
}

// LeafOp stands in for an already-memoized subtree. Transformation rules
// produce trees whose leaves reference the groups the rule matched against;
// inserting a leaf never creates new memo state.
type LeafOp struct {
	// OriginGroup is the group this leaf re-enters.
	OriginGroup opt.GroupID
}

// Operator is part of the Op interface.
func (o *LeafOp) Operator() opt.Operator { return opt.LeafOp }

func (o *LeafOp) appendFingerprint(buf *bytes.Buffer) {
	fmt.Fprintf(buf, " group=%d", o.OriginGroup)
}

// ScanOp returns rows from a table, optionally filtered by a pushed-down
// predicate.
type ScanOp struct {
	// Table is the name of the table to scan, resolved against the catalog
	// when the plan is built.
	Table string

	// Cols are the columns the scan produces, in output order. Each must be
	// a table column of Table.
	Cols []opt.Column

	// Predicate restricts the rows returned. A nil predicate means all rows
	// qualify.
	Predicate *OperatorExpression
}

// Operator is part of the Op interface.
func (o *ScanOp) Operator() opt.Operator { return opt.ScanOp }

func (o *ScanOp) appendFingerprint(buf *bytes.Buffer) {
	fmt.Fprintf(buf, " %s", o.Table)
	appendColsFingerprint(buf, o.Cols)
	appendScalarFingerprint(buf, "pred", o.Predicate)
}

// ProjectOp narrows its input to a subset of columns without computing
// anything. It has no lowering rule yet; the plan builder rejects it.
//
// TODO: lower ProjectOp to a pass-through projection once the rule engine
// starts generating it.
type ProjectOp struct {
	// Cols are the columns to retain, in output order.
	Cols []opt.Column
}

// Operator is part of the Op interface.
func (o *ProjectOp) Operator() opt.Operator { return opt.ProjectOp }

func (o *ProjectOp) appendFingerprint(buf *bytes.Buffer) {
	appendColsFingerprint(buf, o.Cols)
}

// TargetExpr is a single projection target: the scalar expression to
// compute, and the column that names its result.
type TargetExpr struct {
	Col  opt.Column
	Expr *OperatorExpression
}

// ComputeExprsOp computes one output column per target from the rows of its
// single relational input.
type ComputeExprsOp struct {
	// Targets are the projection targets, in output order.
	Targets []TargetExpr
}

// Operator is part of the Op interface.
func (o *ComputeExprsOp) Operator() opt.Operator { return opt.ComputeExprsOp }

func (o *ComputeExprsOp) appendFingerprint(buf *bytes.Buffer) {
	buf.WriteString(" targets=(")
	for i := range o.Targets {
		if i > 0 {
			buf.WriteByte(',')
		}
		fmt.Fprintf(buf, "%s=", o.Targets[i].Col)
		o.Targets[i].Expr.formatScalar(buf)
	}
	buf.WriteByte(')')
}

// FilterOp removes the rows of its single relational input that do not
// satisfy the predicate. It does not change the input's columns.
type FilterOp struct {
	Predicate *OperatorExpression
}

// Operator is part of the Op interface.
func (o *FilterOp) Operator() opt.Operator { return opt.FilterOp }

func (o *FilterOp) appendFingerprint(buf *bytes.Buffer) {
	appendScalarFingerprint(buf, "pred", o.Predicate)
}

// SortOp orders the rows of its single relational input. It is an enforcer:
// it adds a physical property (ordering) without changing which rows are
// computed, so it can be a member of the same group as its input.
type SortOp struct {
	// Cols are the ordering columns, most significant first.
	Cols []opt.ColumnID
}

// Operator is part of the Op interface.
func (o *SortOp) Operator() opt.Operator { return opt.SortOp }

func (o *SortOp) appendFingerprint(buf *bytes.Buffer) {
	if len(o.Cols) == 0 {
		return
	}
	buf.WriteString(" ordering=(")
	for i, c := range o.Cols {
		if i > 0 {
			buf.WriteByte(',')
		}
		fmt.Fprintf(buf, "%d", c)
	}
	buf.WriteByte(')')
}

// JoinOp joins its two relational inputs. The variant determines both the
// join type (inner, left, right, outer) and the algorithm (nested loop or
// hash); all variants share the same payload shape.
type JoinOp struct {
	variant opt.Operator

	// On is the join predicate. A nil predicate means a cross product.
	On *OperatorExpression
}

// NewJoinOp returns a join payload for the given variant, which must be one
// of the join operators.
func NewJoinOp(variant opt.Operator, on *OperatorExpression) *JoinOp {
	if !variant.IsJoin() {
		panic(errors.AssertionFailedf("%s is not a join operator", variant))
	}
	return &JoinOp{variant: variant, On: on}
}

// Operator is part of the Op interface.
func (o *JoinOp) Operator() opt.Operator { return o.variant }

func (o *JoinOp) appendFingerprint(buf *bytes.Buffer) {
	appendScalarFingerprint(buf, "on", o.On)
}

// VariableOp is a scalar reference to a column of the operator's input.
type VariableOp struct {
	Col opt.Column
}

// Operator is part of the Op interface.
func (o *VariableOp) Operator() opt.Operator { return opt.VariableOp }

func (o *VariableOp) appendFingerprint(buf *bytes.Buffer) {
	fmt.Fprintf(buf, " %s", o.Col)
}

// ConstOp is a scalar literal.
type ConstOp struct {
	Value interface{}
}

// Operator is part of the Op interface.
func (o *ConstOp) Operator() opt.Operator { return opt.ConstOp }

func (o *ConstOp) appendFingerprint(buf *bytes.Buffer) {
	fmt.Fprintf(buf, " %v", o.Value)
}

// EqOp is scalar equality over its two scalar children.
type EqOp struct{}

// Operator is part of the Op interface.
func (o *EqOp) Operator() opt.Operator { return opt.EqOp }

func (o *EqOp) appendFingerprint(*bytes.Buffer) {}

// AndOp is scalar conjunction over its scalar children.
type AndOp struct{}

// Operator is part of the Op interface.
func (o *AndOp) Operator() opt.Operator { return opt.AndOp }

func (o *AndOp) appendFingerprint(*bytes.Buffer) {}

func appendColsFingerprint(buf *bytes.Buffer, cols []opt.Column) {
	if len(cols) == 0 {
		return
	}
	buf.WriteString(" cols=(")
	for i, c := range cols {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(c.String())
	}
	buf.WriteByte(')')
}

func appendScalarFingerprint(buf *bytes.Buffer, label string, e *OperatorExpression) {
	if e == nil {
		return
	}
	fmt.Fprintf(buf, " %s=", label)
	e.formatScalar(buf)
}
