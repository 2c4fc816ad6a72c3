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

// Package opt contains the basic vocabulary shared by the packages that make
// up the cost-based optimizer: the closed set of operators, group identifiers
// used to address equivalence classes in the memo, and the column model used
// to track provenance of values through a plan.
//
// The optimizer is structured as a set of collaborating packages:
//
//   - opt/cat defines the interfaces through which the optimizer consumes
//     table and column metadata from the catalog.
//   - opt/memo stores the search space: a forest of operator trees
//     deduplicated into equivalence classes (groups).
//   - opt/exec defines the executable plan nodes that the optimizer
//     produces, and opt/exec/execbuilder lowers a chosen operator tree into
//     those nodes.
//
// Parsing, transformation rules, costing, search, and execution live in
// surrounding layers and interact with these packages through the types
// defined here.
package opt
