package dbdoc

import (
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/mandelsoft/goutils/errors"
	"github.com/mandelsoft/logging"

	"github.com/mandelsoft/ifcimport/pkg/database"
	"github.com/mandelsoft/ifcimport/pkg/host"
)

var log = logging.DynamicLogger(logging.DefaultContext(), host.REALM)

// Document is a host document persisting its elements in a database.
// The document name is used as namespace for the element objects.
// Modifications are buffered by the transaction and written on commit.
type Document struct {
	lock    sync.Mutex
	name    string
	db      database.Database[Object]
	tx      *transaction
	pending map[host.ElementId]*host.Element
	order   []host.ElementId
}

var _ host.Document = (*Document)(nil)

func New(name string, db database.Database[Object]) (*Document, error) {
	if name == "" {
		return nil, fmt.Errorf("document name required")
	}
	return &Document{name: name, db: db}, nil
}

// Open creates a document on a database described by a
// specification.
func Open(name string, spec database.Specification[Object]) (*Document, error) {
	db, err := spec.Create(Scheme)
	if err != nil {
		return nil, err
	}
	return New(name, db)
}

func (d *Document) Name() string {
	return d.name
}

// Watch registers a handler for stored elements of this document.
func (d *Document) Watch(h database.EventHandler, current bool) error {
	return d.db.RegisterHandler(h, current, TYPE_ELEMENT, d.name)
}

func (d *Document) Unwatch(h database.EventHandler) {
	d.db.UnregisterHandler(h, TYPE_ELEMENT, d.name)
}

func (d *Document) Begin(name string) (host.Transaction, error) {
	d.lock.Lock()
	defer d.lock.Unlock()

	if d.tx != nil {
		return nil, fmt.Errorf("%w: %s", host.ErrTransactionActive, d.tx.name)
	}
	d.tx = &transaction{doc: d, name: name}
	d.pending = map[host.ElementId]*host.Element{}
	d.order = nil
	return d.tx, nil
}

func (d *Document) CreateElement(kind host.Kind, category string, geometry *host.Geometry, owner int) (host.ElementId, error) {
	d.lock.Lock()
	defer d.lock.Unlock()

	if d.tx == nil {
		return host.NoElement, host.ErrNoTransaction
	}
	id := host.ElementId(uuid.New().String())
	d.pending[id] = &host.Element{
		Id:       id,
		Kind:     kind,
		Category: category,
		Geometry: geometry.Copy(),
		Owner:    owner,
	}
	d.order = append(d.order, id)
	return id, nil
}

func (d *Document) SetParameter(id host.ElementId, category, name string, value host.ParameterValue, source int) error {
	d.lock.Lock()
	defer d.lock.Unlock()

	if d.tx == nil {
		return host.ErrNoTransaction
	}
	e := d.pending[id]
	if e == nil {
		o, err := d.db.GetObject(database.NewObjectId(TYPE_ELEMENT, d.name, string(id)))
		if err != nil {
			if errors.Is(err, database.ErrNotExist) {
				return fmt.Errorf("%w: %s", host.ErrUnknownElement, id)
			}
			return err
		}
		e = o.(*Element).HostElement()
		d.pending[id] = e
		d.order = append(d.order, id)
	}
	e.SetParameter(host.Parameter{Category: category, Name: name, Value: value, Source: source})
	return nil
}

func (d *Document) LookupElement(id host.ElementId) (*host.Element, error) {
	d.lock.Lock()
	defer d.lock.Unlock()

	if e := d.pending[id]; e != nil {
		return e.Copy(), nil
	}
	if id.IsNone() {
		return nil, nil
	}
	o, err := d.db.GetObject(database.NewObjectId(TYPE_ELEMENT, d.name, string(id)))
	if err != nil {
		if errors.Is(err, database.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	return o.(*Element).HostElement(), nil
}

// Elements provides the stored elements ordered by id followed by
// the elements of an active transaction.
func (d *Document) Elements() ([]*host.Element, error) {
	d.lock.Lock()
	defer d.lock.Unlock()

	list, err := d.db.ListObjects(TYPE_ELEMENT, d.name)
	if err != nil {
		return nil, err
	}
	var result []*host.Element
	for _, o := range list {
		if d.pending[host.ElementId(o.GetName())] == nil {
			result = append(result, o.(*Element).HostElement())
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Id < result[j].Id })
	for _, id := range d.order {
		result = append(result, d.pending[id].Copy())
	}
	return result, nil
}

func (d *Document) commit() (int, error) {
	written := 0
	for _, id := range d.order {
		e := d.pending[id]
		o := NewElement(d.name, e)
		modified, err := database.CreateOrModify(d.db, &o, func(cur *Element) bool {
			if cur.Hash == o.Hash {
				return false
			}
			cur.SetSpec(e)
			return true
		})
		if err != nil {
			return written, errors.Wrapf(err, "storing element %s", id)
		}
		if modified {
			written++
		}
	}
	return written, nil
}

type transaction struct {
	doc  *Document
	name string
	done bool
}

func (t *transaction) Name() string {
	return t.name
}

// Commit writes all buffered elements. Elements written before
// a failure are kept.
func (t *transaction) Commit() error {
	t.doc.lock.Lock()
	defer t.doc.lock.Unlock()

	if t.done {
		return fmt.Errorf("transaction %s already finished", t.name)
	}
	n, err := t.doc.commit()
	t.finish()
	if err != nil {
		return err
	}
	log.Info("transaction {{name}} stored {{amount}} elements in {{doc}}", "name", t.name, "amount", n, "doc", t.doc.name)
	return nil
}

func (t *transaction) Rollback() error {
	t.doc.lock.Lock()
	defer t.doc.lock.Unlock()

	if t.done {
		return nil
	}
	log.Debug("transaction {{name}} discarded {{amount}} elements", "name", t.name, "amount", len(t.doc.pending))
	t.finish()
	return nil
}

func (t *transaction) finish() {
	t.done = true
	t.doc.pending = nil
	t.doc.order = nil
	t.doc.tx = nil
}
