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

// Package testcat implements an in-memory cat.Catalog for use in tests.
package testcat

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/keeldb/keel/pkg/sql/opt/cat"
)

// Catalog is an in-memory implementation of cat.Catalog.
type Catalog struct {
	tables map[string]*Table
	nextID cat.StableID
}

var _ cat.Catalog = &Catalog{}

// New returns an empty test catalog.
func New() *Catalog {
	return &Catalog{tables: make(map[string]*Table), nextID: 1}
}

// CreateTable adds a table with the given columns to the catalog and
// returns it.
func (c *Catalog) CreateTable(name string, cols ...cat.Column) *Table {
	tab := &Table{id: c.nextID, name: name, cols: cols}
	c.nextID++
	c.tables[name] = tab
	return tab
}

// ResolveTable is part of the cat.Catalog interface.
func (c *Catalog) ResolveTable(_ context.Context, name string) (cat.Table, error) {
	if tab, ok := c.tables[name]; ok {
		return tab, nil
	}
	return nil, errors.Newf("no table named %q", name)
}

// Table is an in-memory implementation of cat.Table.
type Table struct {
	id   cat.StableID
	name string
	cols []cat.Column
}

var _ cat.Table = &Table{}

// ID is part of the cat.Table interface.
func (t *Table) ID() cat.StableID { return t.id }

// Name is part of the cat.Table interface.
func (t *Table) Name() string { return t.name }

// ColumnCount is part of the cat.Table interface.
func (t *Table) ColumnCount() int { return len(t.cols) }

// Column is part of the cat.Table interface.
func (t *Table) Column(i int) *cat.Column { return &t.cols[i] }
