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

import "github.com/keeldb/keel/pkg/sql/opt"

// Group is an equivalence class: a set of expressions that are guaranteed
// to compute the same result, identified by a dense id assigned by the
// memo. A group grows monotonically during exploration; expressions are
// only ever added, never removed or reordered.
//
// Enforcer expressions (see GroupExpression.Enforced) are kept apart from
// the alternatives: they are valid members of the class, but they add a
// physical property on top of the group's computation rather than proposing
// another way to perform it.
type Group struct {
	id opt.GroupID

	exprs     []*GroupExpression
	enforcers []*GroupExpression
}

// ID returns the group's id.
func (g *Group) ID() opt.GroupID { return g.id }

// ExprCount returns the number of alternative (non-enforcer) expressions.
func (g *Group) ExprCount() int { return len(g.exprs) }

// Expr returns the ith alternative expression, in insertion order.
func (g *Group) Expr(i int) *GroupExpression { return g.exprs[i] }

// EnforcerCount returns the number of enforcer expressions.
func (g *Group) EnforcerCount() int { return len(g.enforcers) }

// Enforcer returns the ith enforcer expression, in insertion order.
func (g *Group) Enforcer(i int) *GroupExpression { return g.enforcers[i] }

// AddExpression appends expr to the group's alternatives, or to its
// enforcer set if enforced. It performs no deduplication: that is the
// memo's job, and groups must only ever be mutated through
// Memo.InsertExpression so that the dedup index and the group contents stay
// consistent.
func (g *Group) AddExpression(expr *GroupExpression, enforced bool) {
	expr.enforced = enforced
	if enforced {
		g.enforcers = append(g.enforcers, expr)
	} else {
		g.exprs = append(g.exprs, expr)
	}
}
