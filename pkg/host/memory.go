package host

import (
	"fmt"
	"sort"
	"sync"
)

// MemoryDocument is a document keeping elements in memory.
type MemoryDocument struct {
	lock     sync.Mutex
	name     string
	next     int
	elements map[ElementId]*Element
	pending  map[ElementId]*Element
	tx       *memoryTransaction
}

var _ Document = (*MemoryDocument)(nil)

func NewMemoryDocument(name string) *MemoryDocument {
	return &MemoryDocument{
		name:     name,
		elements: map[ElementId]*Element{},
	}
}

func (d *MemoryDocument) Name() string {
	return d.name
}

func (d *MemoryDocument) Begin(name string) (Transaction, error) {
	d.lock.Lock()
	defer d.lock.Unlock()

	if d.tx != nil {
		return nil, fmt.Errorf("%w: %s", ErrTransactionActive, d.tx.name)
	}
	d.tx = &memoryTransaction{doc: d, name: name}
	d.pending = map[ElementId]*Element{}
	log.Debug("transaction {{name}} started for {{doc}}", "name", name, "doc", d.name)
	return d.tx, nil
}

func (d *MemoryDocument) CreateElement(kind Kind, category string, geometry *Geometry, owner int) (ElementId, error) {
	d.lock.Lock()
	defer d.lock.Unlock()

	if d.tx == nil {
		return NoElement, ErrNoTransaction
	}
	d.next++
	id := ElementId(fmt.Sprintf("e%d", d.next))
	d.pending[id] = &Element{
		Id:       id,
		Kind:     kind,
		Category: category,
		Geometry: geometry.Copy(),
		Owner:    owner,
	}
	return id, nil
}

func (d *MemoryDocument) SetParameter(id ElementId, category, name string, value ParameterValue, source int) error {
	d.lock.Lock()
	defer d.lock.Unlock()

	if d.tx == nil {
		return ErrNoTransaction
	}
	e := d.pending[id]
	if e == nil {
		old := d.elements[id]
		if old == nil {
			return fmt.Errorf("%w: %s", ErrUnknownElement, id)
		}
		e = old.Copy()
		d.pending[id] = e
	}
	e.SetParameter(Parameter{Category: category, Name: name, Value: value, Source: source})
	return nil
}

func (d *MemoryDocument) LookupElement(id ElementId) (*Element, error) {
	d.lock.Lock()
	defer d.lock.Unlock()

	if e := d.pending[id]; e != nil {
		return e.Copy(), nil
	}
	return d.elements[id].Copy(), nil
}

// Elements provides all elements ordered by creation.
func (d *MemoryDocument) Elements() ([]*Element, error) {
	d.lock.Lock()
	defer d.lock.Unlock()

	all := map[ElementId]*Element{}
	for id, e := range d.elements {
		all[id] = e
	}
	for id, e := range d.pending {
		all[id] = e
	}
	var result []*Element
	for _, e := range all {
		result = append(result, e.Copy())
	}
	sort.Slice(result, func(i, j int) bool {
		return sequence(result[i].Id) < sequence(result[j].Id)
	})
	return result, nil
}

func sequence(id ElementId) int {
	var n int
	fmt.Sscanf(string(id), "e%d", &n)
	return n
}

type memoryTransaction struct {
	doc  *MemoryDocument
	name string
	done bool
}

func (t *memoryTransaction) Name() string {
	return t.name
}

func (t *memoryTransaction) Commit() error {
	t.doc.lock.Lock()
	defer t.doc.lock.Unlock()

	if t.done {
		return fmt.Errorf("transaction %s already finished", t.name)
	}
	for id, e := range t.doc.pending {
		t.doc.elements[id] = e
	}
	log.Debug("transaction {{name}} committed {{amount}} elements", "name", t.name, "amount", len(t.doc.pending))
	t.finish()
	return nil
}

func (t *memoryTransaction) Rollback() error {
	t.doc.lock.Lock()
	defer t.doc.lock.Unlock()

	if t.done {
		return nil
	}
	log.Debug("transaction {{name}} rolled back", "name", t.name)
	t.finish()
	return nil
}

func (t *memoryTransaction) finish() {
	t.done = true
	t.doc.pending = nil
	t.doc.tx = nil
}
