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
)

// String returns a human-readable rendering of the memo for testing and
// debugging. Groups are printed highest id first, so the root of the most
// recently inserted tree appears at the top. Within a group, alternatives
// appear in insertion order, followed by enforcers.
func (m *Memo) String() string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "memo (groups=%d, exprs=%d)\n", m.GroupCount(), m.ExprCount())
	for i := len(m.groups) - 1; i >= 0; i-- {
		g := &m.groups[i]
		fmt.Fprintf(&buf, "  %d:", g.ID())
		for j := 0; j < g.ExprCount(); j++ {
			fmt.Fprintf(&buf, " %s", g.Expr(j))
		}
		for j := 0; j < g.EnforcerCount(); j++ {
			fmt.Fprintf(&buf, " %s!", g.Enforcer(j))
		}
		buf.WriteByte('\n')
	}
	return buf.String()
}
