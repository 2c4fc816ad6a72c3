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

import "testing"

func TestOperatorNames(t *testing.T) {
	// Every operator must have a distinct, non-empty name: fingerprints
	// and error messages depend on it.
	seen := make(map[string]Operator)
	for op := UnknownOp; op < NumOperators; op++ {
		name := op.String()
		if name == "" {
			t.Errorf("operator %d has no name", op)
		}
		if prev, ok := seen[name]; ok {
			t.Errorf("operators %d and %d share the name %q", prev, op, name)
		}
		seen[name] = op
	}
	if NumOperators.String() != "operator-unknown" {
		t.Errorf("out-of-range operator should format as unknown")
	}
}

func TestOperatorClasses(t *testing.T) {
	for op := UnknownOp; op < NumOperators; op++ {
		if op.IsJoin() && !op.IsRelational() {
			t.Errorf("join operator %s must be relational", op)
		}
		if op.IsScalar() && op.IsRelational() {
			t.Errorf("operator %s cannot be both scalar and relational", op)
		}
	}

	if LeafOp.IsRelational() || LeafOp.IsScalar() {
		t.Errorf("leaf is neither relational nor scalar")
	}
	if !InnerHashJoinOp.IsJoin() || FilterOp.IsJoin() {
		t.Errorf("IsJoin misclassifies operators")
	}
}
