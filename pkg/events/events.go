package events

import (
	"slices"
	"sync"

	"github.com/mandelsoft/goutils/general"
)

type Id interface {
	GetType() string
	GetNamespace() string
}

type ObjectLister[I Id] interface {
	ListObjectIds(typ string, ns string, atomic ...func()) ([]I, error)
}

type EventHandler[I Id] interface {
	HandleEvent(I)
}

type HandlerRegistration[I Id] interface {
	// RegisterHandler registers a handler for a type (empty for all types)
	// and a set of namespaces (none for all namespaces).
	// If current is set, the handler gets events for all existing
	// objects before events for new changes are delivered.
	RegisterHandler(h EventHandler[I], current bool, kind string, nss ...string) error
	UnregisterHandler(h EventHandler[I], kind string, nss ...string)
}

type HandlerRegistry[I Id] interface {
	HandlerRegistration[I]
	EventHandler[I]

	TriggerEvent(I)
}

type eventhandlers[I Id] []*wrapper[I]
type namespaces[I Id] map[string]eventhandlers[I]

// KeyFunc provides a pure comparable Id implementation
// usable as map key for any element providing the Id interface.
type KeyFunc[I Id] func(id I) I

type registry[I Id] struct {
	lock   sync.Mutex
	key    KeyFunc[I]
	types  map[string]namespaces[I]
	lister ObjectLister[I]
}

var _ HandlerRegistry[Id] = (*registry[Id])(nil)

func NewHandlerRegistry[I Id](l ObjectLister[I], k ...KeyFunc[I]) HandlerRegistry[I] {
	return &registry[I]{
		key:    general.OptionalDefaulted[KeyFunc[I]](func(id I) I { return id }, k...),
		types:  map[string]namespaces[I]{},
		lister: l,
	}
}

func (r *registry[I]) HandleEvent(id I) {
	r.TriggerEvent(id)
}

func index[I Id](list []*wrapper[I], h EventHandler[I]) int {
	return slices.IndexFunc(list, func(w *wrapper[I]) bool { return w.handler == h })
}

func (r *registry[I]) RegisterHandler(h EventHandler[I], current bool, kind string, nss ...string) error {
	if len(nss) == 0 {
		nss = []string{""}
	}

	for _, ns := range nss {
		w := newHandler(h)
		registered := false
		atomic := func() {
			r.lock.Lock()
			defer r.lock.Unlock()
			nsmap := r.types[kind]
			if nsmap == nil {
				nsmap = namespaces[I]{}
				r.types[kind] = nsmap
			}
			if index(nsmap[ns], h) < 0 {
				nsmap[ns] = append(nsmap[ns], w)
				registered = true
			}
		}

		var list []I
		if current && r.lister != nil {
			var err error
			list, err = r.lister.ListObjectIds(kind, ns, atomic)
			if err != nil {
				r.UnregisterHandler(h, kind, ns)
				return err
			}
		} else {
			atomic()
		}
		if registered {
			w.Rampup(list)
		}
	}
	return nil
}

func (r *registry[I]) UnregisterHandler(h EventHandler[I], kind string, nss ...string) {
	if len(nss) == 0 {
		nss = []string{""}
	}
	r.lock.Lock()
	defer r.lock.Unlock()

	for _, ns := range nss {
		nsmap := r.types[kind]
		if nsmap == nil {
			continue
		}
		handlers := nsmap[ns]
		if i := index(handlers, h); i >= 0 {
			handlers = slices.Delete(handlers, i, i+1)
		}
		if len(handlers) > 0 {
			nsmap[ns] = handlers
		} else {
			delete(nsmap, ns)
		}
		if len(nsmap) == 0 {
			delete(r.types, kind)
		}
	}
}

func (r *registry[I]) getHandlers(id I) []*wrapper[I] {
	r.lock.Lock()
	defer r.lock.Unlock()

	var handlers []*wrapper[I]
	for _, kind := range []string{"", id.GetType()} {
		nsmap := r.types[kind]
		if len(nsmap) == 0 {
			continue
		}
		if ns := id.GetNamespace(); ns != "" {
			handlers = append(handlers, nsmap[ns]...)
		}
		handlers = append(handlers, nsmap[""]...)
	}
	return handlers
}

func (r *registry[I]) TriggerEvent(id I) {
	id = r.key(id)
	for _, h := range r.getHandlers(id) {
		h.HandleEvent(id)
	}
}

// wrapper handles the rampup of a handler.
// It queues new events until events for the existing ids are
// propagated.
type wrapper[I Id] struct {
	lock    sync.Mutex
	rampup  bool
	queue   []I
	handler EventHandler[I]
}

var _ EventHandler[Id] = (*wrapper[Id])(nil)

func newHandler[I Id](h EventHandler[I]) *wrapper[I] {
	return &wrapper[I]{
		handler: h,
		rampup:  true,
	}
}

func (w *wrapper[I]) Rampup(ids []I) {
	w.lock.Lock()
	defer w.lock.Unlock()

	for _, id := range ids {
		w.handler.HandleEvent(id)
	}
	for _, id := range w.queue {
		w.handler.HandleEvent(id)
	}
	w.rampup = false
	w.queue = nil
}

func (w *wrapper[I]) HandleEvent(id I) {
	w.lock.Lock()
	defer w.lock.Unlock()

	if w.rampup {
		w.queue = append(w.queue, id)
	} else {
		w.handler.HandleEvent(id)
	}
}
