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
	"fmt"

	"github.com/emicklei/dot"
)

// ToDot renders the memo as a Graphviz directed graph, one node per group
// and one edge per (expression, child group) reference. Useful for
// eyeballing how exploration is sharing subexpressions across alternatives.
func (m *Memo) ToDot() string {
	g := dot.NewGraph(dot.Directed)
	nodes := make([]dot.Node, len(m.groups))
	for i := range m.groups {
		grp := &m.groups[i]
		label := fmt.Sprintf("G%d", grp.ID())
		for j := 0; j < grp.ExprCount(); j++ {
			label += "\n" + grp.Expr(j).Fingerprint()
		}
		for j := 0; j < grp.EnforcerCount(); j++ {
			label += "\n" + grp.Enforcer(j).Fingerprint() + " (enforcer)"
		}
		nodes[i] = g.Node(fmt.Sprintf("G%d", grp.ID())).Attr("label", label).Attr("shape", "box")
	}
	for i := range m.groups {
		grp := &m.groups[i]
		forEach := func(e *GroupExpression) {
			for c := 0; c < e.ChildCount(); c++ {
				g.Edge(nodes[i], nodes[e.ChildGroup(c)])
			}
		}
		for j := 0; j < grp.ExprCount(); j++ {
			forEach(grp.Expr(j))
		}
		for j := 0; j < grp.EnforcerCount(); j++ {
			forEach(grp.Enforcer(j))
		}
	}
	return g.String()
}
