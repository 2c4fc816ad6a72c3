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

package execbuilder

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/keeldb/keel/pkg/sql/opt"
	"github.com/keeldb/keel/pkg/sql/opt/exec"
	"github.com/keeldb/keel/pkg/sql/opt/memo"
)

func (b *Builder) buildScan(ctx context.Context, scan *memo.ScanOp) (execPlan, error) {
	tab, err := b.catalog.ResolveTable(ctx, scan.Table)
	if err != nil {
		return execPlan{}, err
	}

	// Map the scan's output columns to table ordinals, verifying that each
	// one really is a column of the scanned table.
	ordinals := make([]int, len(scan.Cols))
	for i, col := range scan.Cols {
		tc, ok := col.(*opt.TableColumn)
		if !ok {
			return execPlan{}, errors.Newf(
				"scan of %q cannot produce non-table column %s", scan.Table, col)
		}
		if tc.Table() != tab.Name() || tc.Ordinal() < 0 || tc.Ordinal() >= tab.ColumnCount() ||
			tab.Column(tc.Ordinal()).Name != tc.ColName() {
			return execPlan{}, errors.Newf(
				"column %s is not a column of table %q", col, scan.Table)
		}
		ordinals[i] = tc.Ordinal()
	}

	predicate, err := b.buildScalar(scan.Predicate, opt.ScanOp, scan.Cols)
	if err != nil {
		return execPlan{}, err
	}

	return execPlan{
		root:       exec.NewScanNode(tab, scan.Cols, ordinals, predicate),
		outputCols: scan.Cols,
	}, nil
}

func (b *Builder) buildComputeExprs(
	ctx context.Context, project *memo.ComputeExprsOp, input *memo.OperatorExpression,
) (execPlan, error) {
	inputPlan, err := b.build(ctx, input)
	if err != nil {
		return execPlan{}, err
	}

	outputCols := make([]opt.Column, len(project.Targets))
	targets := make([]exec.Target, len(project.Targets))
	for i, target := range project.Targets {
		compiled, err := b.buildScalar(target.Expr, opt.ComputeExprsOp, inputPlan.outputCols)
		if err != nil {
			return execPlan{}, err
		}
		outputCols[i] = target.Col
		targets[i] = exec.Target{Ordinal: i, Expr: compiled}
	}

	node := exec.NewProjectNode(inputPlan.root, exec.Projection{Targets: targets}, outputCols)
	return execPlan{root: node, outputCols: outputCols}, nil
}

func (b *Builder) buildFilter(
	ctx context.Context, filter *memo.FilterOp, input *memo.OperatorExpression,
) (execPlan, error) {
	inputPlan, err := b.build(ctx, input)
	if err != nil {
		return execPlan{}, err
	}

	predicate, err := b.buildScalar(filter.Predicate, opt.FilterOp, inputPlan.outputCols)
	if err != nil {
		return execPlan{}, err
	}

	// A filter passes its input's columns through unchanged.
	node := exec.NewFilterNode(inputPlan.root, predicate)
	return execPlan{root: node, outputCols: inputPlan.outputCols}, nil
}

func (b *Builder) buildJoin(
	ctx context.Context, join *memo.JoinOp, left, right *memo.OperatorExpression,
) (execPlan, error) {
	leftPlan, err := b.build(ctx, left)
	if err != nil {
		return execPlan{}, err
	}
	rightPlan, err := b.build(ctx, right)
	if err != nil {
		return execPlan{}, err
	}

	// The join's output columns are the left input's columns followed by the
	// right input's columns. This ordering is a fixed contract: downstream
	// operators address join output by position.
	outputCols := make([]opt.Column, 0, len(leftPlan.outputCols)+len(rightPlan.outputCols))
	outputCols = append(outputCols, leftPlan.outputCols...)
	outputCols = append(outputCols, rightPlan.outputCols...)

	op := join.Operator()
	predicate, err := b.buildScalar(join.On, op, outputCols)
	if err != nil {
		return execPlan{}, err
	}

	joinType, algorithm, err := exec.JoinOpInfo(op)
	if err != nil {
		return execPlan{}, err
	}

	node := exec.NewJoinNode(
		op, joinType, algorithm, leftPlan.root, rightPlan.root, predicate, outputCols)
	return execPlan{root: node, outputCols: outputCols}, nil
}
