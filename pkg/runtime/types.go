package runtime

import (
	"fmt"
	"reflect"
	"sort"
	"sync"

	"github.com/mandelsoft/goutils/generics"
)

type Initializer[T any] func(o T)

// Factory creates a new uninitialized object.
type Factory[T any] func() T

// SchemeTypes is a set of type definitions
// mapping type names to object factories.
// This mapping is used to provide a simple
// object creation by type name.
type SchemeTypes[T any] interface {
	TypeNames() []string
	HasType(t string) bool
	CreateObject(typ string, init ...Initializer[T]) (T, error)
}

// TypeScheme is a set types with a registration possibility.
type TypeScheme[T any] interface {
	SchemeTypes[T]

	// Register registers a prototype. Objects are created
	// as new instances of the struct type the prototype points to.
	Register(name string, proto T) error
	// RegisterFactory registers an explicit factory.
	RegisterFactory(name string, f Factory[T]) error
}

type types[E any] struct {
	lock      sync.RWMutex
	factories map[string]Factory[E]
}

var _ TypeScheme[Object] = (*types[Object])(nil)

func NewTypeScheme[E any]() TypeScheme[E] {
	return newTypes[E]()
}

func newTypes[E any]() *types[E] {
	return &types[E]{factories: map[string]Factory[E]{}}
}

func (s *types[E]) Register(name string, proto E) error {
	t := reflect.TypeOf(proto)
	if t == nil || t.Kind() != reflect.Pointer {
		return fmt.Errorf("proto type for %s must be pointer", name)
	}
	t = t.Elem()
	if t.Kind() != reflect.Struct {
		return fmt.Errorf("proto type for %s must be pointer to struct", name)
	}
	return s.RegisterFactory(name, func() E {
		return reflect.New(t).Interface().(E)
	})
}

func (s *types[E]) RegisterFactory(name string, f Factory[E]) error {
	if f == nil {
		return fmt.Errorf("no factory for type %s", name)
	}
	s.lock.Lock()
	defer s.lock.Unlock()

	if s.factories[name] != nil {
		return fmt.Errorf("type %s already registered", name)
	}
	s.factories[name] = f
	return nil
}

func (s *types[E]) HasType(t string) bool {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.factories[t] != nil
}

func (s *types[E]) CreateObject(typ string, init ...Initializer[E]) (E, error) {
	var _nil E

	s.lock.RLock()
	f := s.factories[typ]
	s.lock.RUnlock()

	if f == nil {
		return _nil, fmt.Errorf("unknown object type %q", typ)
	}

	o := f()
	if t, ok := any(o).(Object); ok {
		t.SetType(typ)
	}
	for _, i := range init {
		i(o)
	}
	return o, nil
}

func (s *types[E]) TypeNames() []string {
	s.lock.RLock()
	defer s.lock.RUnlock()

	var names []string
	for n := range s.factories {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

type ElementType[P any] interface {
	Object
	*P
}

func Register[T any, P ElementType[T], E any](s TypeScheme[E], name string) error {
	var proto T

	p, ok := (any(&proto)).(E)
	if !ok {
		return fmt.Errorf("*%s does not implement scheme interface %s", generics.TypeOf[T](), generics.TypeOf[E]())
	}
	return s.Register(name, p)
}

func MustRegister[T any, P ElementType[T], E any](s TypeScheme[E], name string) {
	err := Register[T, P, E](s, name)
	if err != nil {
		panic(err)
	}
}

func MustRegisterFactory[E any](s TypeScheme[E], name string, f Factory[E]) {
	err := s.RegisterFactory(name, f)
	if err != nil {
		panic(err)
	}
}
