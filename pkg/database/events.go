package database

import (
	"github.com/mandelsoft/ifcimport/pkg/events"
)

type ObjectLister = events.ObjectLister[ObjectId]
type EventHandler = events.EventHandler[ObjectId]
type HandlerRegistration = events.HandlerRegistration[ObjectId]
type HandlerRegistry = events.HandlerRegistry[ObjectId]

func NewHandlerRegistry(l ObjectLister) HandlerRegistry {
	return events.NewHandlerRegistry[ObjectId](l, NewObjectIdFor)
}
