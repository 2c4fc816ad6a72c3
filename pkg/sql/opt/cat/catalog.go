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

// Package cat contains the interfaces through which the optimizer consumes
// metadata from the catalog. The optimizer never mutates the catalog; it
// only resolves names and reads table and column descriptors in order to
// build scan column lists and plan output schemas. The concrete
// implementation lives in the surrounding layer (or in testutils/testcat
// for tests).
package cat

import "context"

// StableID is a permanent identifier for a catalog object. It stays the
// same across renames, unlike the object's name.
type StableID uint64

// Catalog is the interface to the metadata provider. Implementations must
// be safe for use by a single optimization request at a time; the optimizer
// never calls them concurrently for one request.
type Catalog interface {
	// ResolveTable returns the table with the given name, or an error if no
	// such table exists.
	ResolveTable(ctx context.Context, name string) (Table, error)
}

// Table is an interface to a database table.
type Table interface {
	// ID returns the table's stable identifier.
	ID() StableID

	// Name returns the table's name.
	Name() string

	// ColumnCount returns the number of columns in the table.
	ColumnCount() int

	// Column returns the ith column, where i < ColumnCount.
	Column(i int) *Column
}

// Column describes a single table column.
type Column struct {
	Name     string
	Type     ColumnType
	Nullable bool
}

// ColumnType is the SQL data type of a column. Only the types the optimizer
// needs to distinguish are represented.
type ColumnType uint8

const (
	Unknown ColumnType = iota
	Bool
	Int
	Float
	String
	Bytes
	Timestamp
)

var typeNames = [...]string{
	Unknown:   "unknown",
	Bool:      "bool",
	Int:       "int",
	Float:     "float",
	String:    "string",
	Bytes:     "bytes",
	Timestamp: "timestamp",
}

func (t ColumnType) String() string {
	if int(t) >= len(typeNames) {
		return "unknown"
	}
	return typeNames[t]
}
