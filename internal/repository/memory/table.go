package memory

import (
	"sort"

	"github.com/google/uuid"
)

type record[T any] struct {
	seq int64
	val T
}

// table keeps rows by id. Inside a transaction, touched records which ids were
// written so commit can replay only those onto the live table.
type table[T any] struct {
	rows    map[uuid.UUID]record[T]
	touched map[uuid.UUID]struct{}
}

func newTable[T any]() *table[T] {
	return &table[T]{rows: make(map[uuid.UUID]record[T])}
}

func (t *table[T]) clone() *table[T] {
	c := &table[T]{
		rows:    make(map[uuid.UUID]record[T], len(t.rows)),
		touched: make(map[uuid.UUID]struct{}),
	}
	for id, r := range t.rows {
		c.rows[id] = r
	}
	return c
}

func (t *table[T]) get(id uuid.UUID) (T, bool) {
	r, ok := t.rows[id]
	return r.val, ok
}

// put keeps the original insertion sequence when a row is overwritten.
func (t *table[T]) put(id uuid.UUID, seq int64, val T) {
	if existing, ok := t.rows[id]; ok {
		seq = existing.seq
	}
	t.rows[id] = record[T]{seq: seq, val: val}
	t.mark(id)
}

func (t *table[T]) del(id uuid.UUID) {
	delete(t.rows, id)
	t.mark(id)
}

func (t *table[T]) mark(id uuid.UUID) {
	if t.touched != nil {
		t.touched[id] = struct{}{}
	}
}

// list returns rows in insertion order, optionally filtered.
func (t *table[T]) list(keep func(T) bool) []T {
	recs := make([]record[T], 0, len(t.rows))
	for _, r := range t.rows {
		if keep == nil || keep(r.val) {
			recs = append(recs, r)
		}
	}
	sort.Slice(recs, func(i, j int) bool { return recs[i].seq < recs[j].seq })
	out := make([]T, len(recs))
	for i, r := range recs {
		out[i] = r.val
	}
	return out
}

func (t *table[T]) apply(tx *table[T]) {
	for id := range tx.touched {
		if r, ok := tx.rows[id]; ok {
			t.rows[id] = r
		} else {
			delete(t.rows, id)
		}
	}
}
