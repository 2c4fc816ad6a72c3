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
	"github.com/cockroachdb/errors"
	"github.com/keeldb/keel/pkg/sql/opt"
)

// Memo is a data structure for efficiently storing a forest of query plans.
// Conceptually, the memo is composed of a numbered set of equivalence
// classes called groups, where each group contains a set of logically
// equivalent expressions. The different expressions in a single group are
// called group expressions (memo-ized expressions). A group expression has
// a list of child groups as its children rather than a list of individual
// expressions, so the forest is composed of every possible combination of
// parent expression with its children, recursively applied.
//
// Uniqueness is determined by an expression's fingerprint: its operator,
// payload, and ordered list of child groups. For example, after inserting
// the operator tree for
//
//	SELECT * FROM a JOIN b ON a.x = b.x
//
// the memo contains three groups:
//
//	2: [inner-nl-join on=(eq (variable x:1) (variable x:2)) [0 1]]
//	1: [scan b cols=(x:2)]
//	0: [scan a cols=(x:1)]
//
// When a transformation rule proposes the commuted join, the new expression
// lands in group 2 beside the original:
//
//	2: [inner-nl-join ... [0 1]] [inner-nl-join ... [1 0]]
//
// Routing every insertion through the fingerprint index is what keeps the
// search space polynomial: no matter how many exploration paths propose the
// same expression, it is stored once, and all parents share it through its
// group id.
//
// A Memo is scoped to one optimization request. Insertions may be
// reentrant (a rule may trigger nested insertions while it runs), but the
// memo is not safe for concurrent mutation from multiple goroutines;
// callers that parallelize exploration must confine each memo to one
// goroutine or serialize access externally.
type Memo struct {
	// groups is the arena of all groups, indexed by GroupID.
	groups []Group

	// exprMap is the structural-dedup index: fingerprint to the canonical
	// representative. Every entry belongs to exactly one group's expression
	// set and vice versa.
	exprMap map[string]*GroupExpression
}

// New returns an empty memo.
func New() *Memo {
	return &Memo{exprMap: make(map[string]*GroupExpression)}
}

// InsertExpression inserts gexpr into the memo, letting the memo choose the
// owning group. See InsertExpressionToGroup.
func (m *Memo) InsertExpression(gexpr *GroupExpression, enforced bool) *GroupExpression {
	return m.InsertExpressionToGroup(gexpr, opt.UndefinedGroup, enforced)
}

// InsertExpressionToGroup inserts gexpr into the memo and returns the
// canonical representative of its equivalence class. All search-space
// growth goes through here.
//
// If gexpr is a leaf, no memo state is created: the leaf's origin group is
// authoritative, gexpr is tagged with it, and gexpr itself is returned.
//
// Otherwise the expression is looked up by fingerprint. On a hit, the
// existing representative is returned and the caller's instance is
// discarded (after tagging it with the representative's group, so the
// caller can still read the id off its own object). On a miss, gexpr is
// registered as the representative and added to targetGroup, or to a newly
// allocated group if targetGroup is UndefinedGroup.
//
// Passing an explicit targetGroup that disagrees with where the expression
// already lives (or with a leaf's origin group) means the caller computed
// the wrong equivalence class; that is a bug, not a recoverable condition,
// and it panics with an assertion failure.
func (m *Memo) InsertExpressionToGroup(
	gexpr *GroupExpression, targetGroup opt.GroupID, enforced bool,
) *GroupExpression {
	if leaf, ok := gexpr.Op().(*LeafOp); ok {
		if targetGroup != opt.UndefinedGroup && targetGroup != leaf.OriginGroup {
			panic(errors.AssertionFailedf(
				"leaf originates in group %d but was inserted into group %d",
				leaf.OriginGroup, targetGroup))
		}
		gexpr.setGroup(leaf.OriginGroup)
		return gexpr
	}

	if existing, ok := m.exprMap[gexpr.Fingerprint()]; ok {
		if targetGroup != opt.UndefinedGroup && targetGroup != existing.Group() {
			panic(errors.AssertionFailedf(
				"expression %s is in group %d but was inserted into group %d",
				errors.Safe(existing.Fingerprint()), existing.Group(), targetGroup))
		}
		gexpr.setGroup(existing.Group())
		return existing
	}

	m.exprMap[gexpr.Fingerprint()] = gexpr
	groupID := targetGroup
	if groupID == opt.UndefinedGroup {
		groupID = m.AddNewGroup()
	}
	m.GetGroupByID(groupID).AddExpression(gexpr, enforced)
	gexpr.setGroup(groupID)
	return gexpr
}

// AddNewGroup allocates a new empty group and returns its id. Ids are dense
// and assigned in allocation order: the nth call returns n-1.
func (m *Memo) AddNewGroup() opt.GroupID {
	id := opt.GroupID(len(m.groups))
	m.groups = append(m.groups, Group{id: id})
	return id
}

// GetGroupByID returns the group with the given id. The id must have been
// returned by a previous AddNewGroup call on this memo.
func (m *Memo) GetGroupByID(id opt.GroupID) *Group {
	if id < 0 || int(id) >= len(m.groups) {
		panic(errors.AssertionFailedf(
			"group %d is out of range, memo has %d groups", id, len(m.groups)))
	}
	return &m.groups[id]
}

// Groups returns the arena of all groups, indexed by GroupID. Callers must
// not modify it.
func (m *Memo) Groups() []Group { return m.groups }

// GroupCount returns the number of groups in the memo.
func (m *Memo) GroupCount() int { return len(m.groups) }

// ExprCount returns the number of distinct expressions in the memo's dedup
// index.
func (m *Memo) ExprCount() int { return len(m.exprMap) }
