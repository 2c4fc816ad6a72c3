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

// GroupExpression is an expression as stored in the memo: one operator
// variant whose children are group ids rather than owned subtrees.
// Expressing children as group references is what makes structural equality
// meaningful across syntactically different subtrees — once two subtrees
// have been normalized into the same group, any parents built over them
// compare equal and collapse into one memo entry.
//
// Two GroupExpressions are structurally equal iff their operator kind,
// operator payload, and ordered child group id list all match. The
// fingerprint is a canonical string encoding of exactly those three parts,
// and the memo's dedup index is keyed on it.
type GroupExpression struct {
	op       Op
	children []opt.GroupID

	// group is the id of the owning group. It starts as UndefinedGroup and
	// is assigned exactly once, by the memo.
	group opt.GroupID

	// enforced marks expressions that enforce a physical property (e.g. an
	// explicit sort) rather than proposing an alternative computation.
	enforced bool

	// fingerprint caches the canonical encoding. The child group list never
	// changes after construction, so the cache never goes stale.
	fingerprint string
}

// NewGroupExpression returns a new expression with the given operator and
// ordered child groups. The expression belongs to no group until it is
// inserted into a memo.
func NewGroupExpression(op Op, children []opt.GroupID) *GroupExpression {
	return &GroupExpression{op: op, children: children, group: opt.UndefinedGroup}
}

// Op returns the expression's operator variant.
func (e *GroupExpression) Op() Op { return e.op }

// ChildCount returns the number of child groups.
func (e *GroupExpression) ChildCount() int { return len(e.children) }

// ChildGroup returns the id of the ith child group.
func (e *GroupExpression) ChildGroup(i int) opt.GroupID { return e.children[i] }

// Group returns the id of the owning group, or UndefinedGroup if the
// expression has not been inserted into a memo yet.
func (e *GroupExpression) Group() opt.GroupID { return e.group }

// Enforced returns true if the expression is a property enforcer rather
// than an alternative formulation of the group's computation.
func (e *GroupExpression) Enforced() bool { return e.enforced }

// setGroup assigns the owning group. The assignment happens at most once;
// re-assigning to a different group means the memo's dedup index and group
// membership have diverged, which is a bug.
func (e *GroupExpression) setGroup(id opt.GroupID) {
	if e.group != opt.UndefinedGroup && e.group != id {
		panic(errors.AssertionFailedf(
			"expression %s is already in group %d, cannot move to group %d",
			errors.Safe(e.Fingerprint()), e.group, id))
	}
	e.group = id
}

// Fingerprint returns the canonical string encoding of (operator kind,
// payload, ordered child group ids). Structurally equal expressions have
// equal fingerprints and vice versa.
func (e *GroupExpression) Fingerprint() string {
	if e.fingerprint == "" {
		var buf bytes.Buffer
		buf.WriteString(e.op.Operator().String())
		e.op.appendFingerprint(&buf)
		if len(e.children) > 0 {
			buf.WriteString(" [")
			for i, c := range e.children {
				if i > 0 {
					buf.WriteByte(' ')
				}
				fmt.Fprintf(&buf, "%d", c)
			}
			buf.WriteByte(']')
		}
		e.fingerprint = buf.String()
	}
	return e.fingerprint
}

func (e *GroupExpression) String() string {
	return "[" + e.Fingerprint() + "]"
}
