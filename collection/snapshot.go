package collection

import (
	"github.com/vmihailenco/msgpack/v5"

	"github.com/Sistemium/js-data/record"
)

// snapshot is the serialized form of a collection.
type snapshot struct {
	Name    string          `msgpack:"name"`
	IDField string          `msgpack:"idField"`
	Records []record.Record `msgpack:"records"`
}

// Snapshot encodes the collection's records in insertion order using
// msgpack. Index definitions are not part of the snapshot; Restore
// rebuilds whatever indexes exist on the receiving collection.
func (c *Collection) Snapshot() ([]byte, error) {
	c.mu.RLock()
	s := snapshot{
		Name:    c.name,
		IDField: c.idField,
		Records: c.all(),
	}
	c.mu.RUnlock()
	return msgpack.Marshal(s)
}

// Restore replaces the collection's contents with a previously taken
// snapshot and rebuilds all existing secondary indexes. Records without
// an id are rejected with ErrInvalidID.
func (c *Collection) Restore(data []byte) error {
	var s snapshot
	if err := msgpack.Unmarshal(data, &s); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	idField := c.idField
	if s.IDField != "" {
		idField = s.IDField
	}
	records := make(map[any]record.Record, len(s.Records))
	order := make([]any, 0, len(s.Records))
	for _, rec := range s.Records {
		id := record.Get(rec, idField)
		if !isComparable(id) {
			return &InvalidIDError{Collection: c.name, Value: id}
		}
		if _, ok := records[id]; !ok {
			order = append(order, id)
		}
		records[id] = rec
	}
	c.idField = idField
	c.records = records
	c.order = order
	for field := range c.indexes {
		ix := newIndex(field)
		for _, id := range order {
			ix.add(records[id], id)
		}
		c.indexes[field] = ix
	}
	c.invalidate()
	return nil
}
