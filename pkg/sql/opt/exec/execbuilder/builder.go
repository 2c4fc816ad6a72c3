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

// Package execbuilder lowers a fully-decided operator tree (the one chosen
// after exploration and costing) into a tree of executable plan nodes.
package execbuilder

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/redact"
	"github.com/keeldb/keel/pkg/sql/opt"
	"github.com/keeldb/keel/pkg/sql/opt/cat"
	"github.com/keeldb/keel/pkg/sql/opt/exec"
	"github.com/keeldb/keel/pkg/sql/opt/memo"
)

// Builder constructs a tree of execution nodes (exec.Node) from an operator
// expression tree. The builder itself holds only its collaborators; all
// per-lowering state is threaded through build as parameters and return
// values, so a single Builder is safe to reuse and to call reentrantly.
type Builder struct {
	catalog cat.Catalog
	scalar  exec.ScalarBuilder
}

// New returns a builder that resolves tables through catalog and compiles
// scalar subtrees through scalar.
func New(catalog cat.Catalog, scalar exec.ScalarBuilder) *Builder {
	return &Builder{catalog: catalog, scalar: scalar}
}

// execPlan is the result of lowering one subtree: the plan node, plus the
// ordered list of columns it outputs. The column list is the context that
// downstream siblings need — a join's output schema and a projection's
// column references are defined in terms of the child's output columns, not
// anything local to the parent node. It travels as a return value, never as
// builder state, so nested recursive calls cannot clobber each other.
type execPlan struct {
	root exec.Node

	// outputCols are the columns produced by root, in output order.
	outputCols []opt.Column
}

// Build lowers the operator tree rooted at e and returns the root of the
// resulting plan tree.
//
// Errors returned from Build are compilation errors: an operator kind with
// no lowering rule, an operator with the wrong number of inputs, or a
// scalar subtree referencing a column its input does not produce. The
// surrounding layer is responsible for turning them into user-facing query
// errors.
func (b *Builder) Build(ctx context.Context, e *memo.OperatorExpression) (exec.Node, error) {
	ep, err := b.build(ctx, e)
	if err != nil {
		return nil, err
	}
	return ep.root, nil
}

func (b *Builder) build(ctx context.Context, e *memo.OperatorExpression) (execPlan, error) {
	switch t := e.Op().(type) {
	case *memo.ScanOp:
		if err := checkInputs(e, 0); err != nil {
			return execPlan{}, err
		}
		return b.buildScan(ctx, t)

	case *memo.ComputeExprsOp:
		if err := checkInputs(e, 1); err != nil {
			return execPlan{}, err
		}
		return b.buildComputeExprs(ctx, t, e.Child(0))

	case *memo.FilterOp:
		if err := checkInputs(e, 1); err != nil {
			return execPlan{}, err
		}
		return b.buildFilter(ctx, t, e.Child(0))

	case *memo.JoinOp:
		if err := checkInputs(e, 2); err != nil {
			return execPlan{}, err
		}
		return b.buildJoin(ctx, t, e.Child(0), e.Child(1))
	}

	return execPlan{}, errors.Newf(
		"unsupported operator %s: no lowering rule", redact.Safe(e.Op().Operator()))
}

// checkInputs verifies that e has exactly the number of relational inputs
// its operator requires.
func checkInputs(e *memo.OperatorExpression, n int) error {
	if e.ChildCount() != n {
		return errors.Newf("operator %s expects %d children, found %d",
			redact.Safe(e.Op().Operator()), redact.Safe(n), redact.Safe(e.ChildCount()))
	}
	return nil
}

// buildScalar compiles the scalar subtree e through the external scalar
// builder, after verifying that every column it references is produced by
// the input, described by inputCols. A nil subtree compiles to a nil
// expression, which plan nodes interpret as "always true".
func (b *Builder) buildScalar(
	e *memo.OperatorExpression, op opt.Operator, inputCols []opt.Column,
) (exec.Expr, error) {
	if e == nil {
		return nil, nil
	}
	if err := checkColumnRefs(e, op, inputCols); err != nil {
		return nil, err
	}
	return b.scalar.BuildScalar(e)
}

// checkColumnRefs walks the scalar subtree e and verifies that each
// variable references a column present in inputCols.
func checkColumnRefs(e *memo.OperatorExpression, op opt.Operator, inputCols []opt.Column) error {
	if v, ok := e.Op().(*memo.VariableOp); ok {
		if !containsColumn(inputCols, v.Col.ID()) {
			return errors.Newf("column %s is not produced by the input of operator %s",
				v.Col, redact.Safe(op))
		}
	}
	for i := 0; i < e.ChildCount(); i++ {
		if err := checkColumnRefs(e.Child(i), op, inputCols); err != nil {
			return err
		}
	}
	return nil
}

func containsColumn(cols []opt.Column, id opt.ColumnID) bool {
	for _, c := range cols {
		if c.ID() == id {
			return true
		}
	}
	return false
}
