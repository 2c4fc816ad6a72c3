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

import "fmt"

// ColumnID uniquely identifies a column within the scope of one
// optimization request. The id is stable across the operators that pass the
// column along, which is what allows the plan builder to track the
// provenance of a value through projections, filters, and joins.
type ColumnID int32

// Column is a single column flowing between operators. There are two
// kinds: columns backed by a catalog table, and columns synthesized by a
// projection from a scalar expression. Both carry a ColumnID as their
// stable identity; equality of columns is equality of ids.
type Column interface {
	fmt.Stringer

	// ID returns the column's stable identity.
	ID() ColumnID

	// ColName returns the column's name, for display and error messages.
	ColName() string

	column()
}

// TableColumn is a Column backed by a catalog table.
type TableColumn struct {
	id    ColumnID
	table string
	ord   int
	name  string
}

// NewTableColumn returns a column for ordinal ord of the named table.
func NewTableColumn(id ColumnID, table string, ord int, name string) *TableColumn {
	return &TableColumn{id: id, table: table, ord: ord, name: name}
}

// ID is part of the Column interface.
func (c *TableColumn) ID() ColumnID { return c.id }

// ColName is part of the Column interface.
func (c *TableColumn) ColName() string { return c.name }

// Table returns the name of the table the column belongs to.
func (c *TableColumn) Table() string { return c.table }

// Ordinal returns the position of the column within its table.
func (c *TableColumn) Ordinal() int { return c.ord }

func (c *TableColumn) String() string {
	return fmt.Sprintf("%s:%d", c.name, c.id)
}

func (c *TableColumn) column() {}

// SynthesizedColumn is a Column produced by a projection from a scalar
// expression. It has no backing table; only the projection that computes it
// can produce its value.
type SynthesizedColumn struct {
	id   ColumnID
	name string
}

// NewSynthesizedColumn returns a new synthesized column with the given name.
func NewSynthesizedColumn(id ColumnID, name string) *SynthesizedColumn {
	return &SynthesizedColumn{id: id, name: name}
}

// ID is part of the Column interface.
func (c *SynthesizedColumn) ID() ColumnID { return c.id }

// ColName is part of the Column interface.
func (c *SynthesizedColumn) ColName() string { return c.name }

func (c *SynthesizedColumn) String() string {
	return fmt.Sprintf("%s:%d", c.name, c.id)
}

func (c *SynthesizedColumn) column() {}
