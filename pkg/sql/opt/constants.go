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

// GroupID identifies an equivalence class of expressions in the memo. The
// memo assigns ids densely, starting at zero, in allocation order, so a
// GroupID doubles as an index into the memo's group arena.
type GroupID int32

// UndefinedGroup is the id of a group that has not been assigned yet.
// Passing UndefinedGroup as the target of an insertion asks the memo to
// choose the owning group itself.
const UndefinedGroup GroupID = -1
