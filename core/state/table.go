// Copyright 2024 The Erigon Authors
// This file is part of Erigon.
//
// Erigon is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Erigon is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with Erigon. If not, see <http://www.gnu.org/licenses/>.

package state

// Table is the reference in-memory backend for one object kind: a primary
// map keyed by ID plus any number of secondary Indexers. All mutating
// calls record their inverse onto the owning Store's innermost open
// session so a later Undo() restores both the primary map and every
// index.
type Table[O Object] struct {
	store   *Store
	name    string
	objects map[ID]O
	nextID  ID
	indexes []Indexer[O]
}

// NewTable registers a new table of kind O on store. name is used only for
// diagnostics (panics, logging), not for lookup.
func NewTable[O Object](store *Store, name string) *Table[O] {
	return &Table[O]{store: store, name: name, objects: make(map[ID]O)}
}

// AddIndex registers a secondary ordering. Must be called before any
// objects are created; existing indexes are not retroactively populated.
func (t *Table[O]) AddIndex(idx Indexer[O]) {
	t.indexes = append(t.indexes, idx)
}

func (t *Table[O]) Find(id ID) (O, bool) {
	o, ok := t.objects[id]
	return o, ok
}

func (t *Table[O]) Get(id ID) (O, error) {
	o, ok := t.objects[id]
	if !ok {
		var zero O
		return zero, ErrNotFound
	}
	return o, nil
}

// Create allocates the next id for this table, applies init to a zero
// value, stores it, and indexes it. The id is stable for the object's
// lifetime.
func (t *Table[O]) Create(init func(*O)) O {
	id := t.nextID
	t.nextID++
	var o O
	init(&o)
	setObjectID(&o, id)
	t.objects[id] = o
	for _, idx := range t.indexes {
		idx.Insert(o)
	}
	t.store.record(func() {
		delete(t.objects, id)
		for _, idx := range t.indexes {
			idx.Remove(o)
		}
		if t.nextID == id+1 {
			t.nextID = id
		}
	})
	return o
}

// Modify applies mutator to a copy of the current object and replaces it
// in the table, re-homing every secondary index.
func (t *Table[O]) Modify(o O, mutator func(*O)) O {
	id := o.ObjectID()
	old, ok := t.objects[id]
	if !ok {
		panic("state: modify of an object not present in its table")
	}
	updated := old
	mutator(&updated)
	setObjectID(&updated, id)
	t.objects[id] = updated
	for _, idx := range t.indexes {
		idx.Update(old, updated)
	}
	t.store.record(func() {
		t.objects[id] = old
		for _, idx := range t.indexes {
			idx.Update(updated, old)
		}
	})
	return updated
}

// Remove deletes o from the table and every secondary index.
func (t *Table[O]) Remove(o O) {
	id := o.ObjectID()
	old, ok := t.objects[id]
	if !ok {
		panic("state: remove of an object not present in its table")
	}
	delete(t.objects, id)
	for _, idx := range t.indexes {
		idx.Remove(old)
	}
	t.store.record(func() {
		t.objects[id] = old
		for _, idx := range t.indexes {
			idx.Insert(old)
		}
	})
}

// Len reports the number of live objects, used by invariant checks that
// walk an entire table (e.g. total-balance reconciliation).
func (t *Table[O]) Len() int { return len(t.objects) }

// Range calls fn for every object in unspecified order. fn must not
// mutate the table.
func (t *Table[O]) Range(fn func(O) bool) {
	for _, o := range t.objects {
		if !fn(o) {
			return
		}
	}
}

// setObjectID assigns the id via a type assertion against a mutable
// identity setter; concrete object types implement mutableObject so the
// table can stamp ids without reflection.
func setObjectID[O Object](o *O, id ID) {
	if m, ok := any(o).(mutableObject); ok {
		m.setObjectID(id)
	}
}

// mutableObject is implemented by object types alongside Object so Table
// can assign a freshly allocated id. Kept unexported: only this package's
// generic Table needs it.
type mutableObject interface {
	setObjectID(ID)
}
