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

package exec

import (
	"fmt"

	"github.com/keeldb/keel/pkg/sql/opt/memo"
)

// Expr is a compiled scalar expression, ready for evaluation by the
// execution engine. A nil Expr in a plan node means the predicate is absent
// and all rows qualify.
type Expr interface {
	fmt.Stringer
}

// ScalarBuilder compiles a scalar operator subtree into an executable
// expression. The implementation lives in the surrounding layer; the plan
// builder consumes it through this interface.
type ScalarBuilder interface {
	// BuildScalar compiles e. A nil input returns a nil Expr with no error:
	// an absent predicate compiles to "always true".
	BuildScalar(e *memo.OperatorExpression) (Expr, error)
}
