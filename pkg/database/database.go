package database

import (
	"github.com/mandelsoft/ifcimport/pkg/runtime"
)

type SchemeTypes[O Object] interface {
	runtime.SchemeTypes[O]
}

// Database is a store for typed objects identified by
// type, namespace and name.
type Database[O Object] interface {
	SchemeTypes() SchemeTypes[O]

	HandlerRegistration
	ObjectLister
	ListObjects(typ string, ns string) ([]O, error)

	GetObject(ObjectId) (O, error)
	SetObject(O) error
	DeleteObject(ObjectId) (bool, error)
}

type Specification[O Object] interface {
	Create(enc Encoding[O]) (Database[O], error)
}
