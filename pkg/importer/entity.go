package importer

import (
	"fmt"

	"github.com/mandelsoft/ifcimport/pkg/host"
	"github.com/mandelsoft/ifcimport/pkg/ifcfile"
	"github.com/mandelsoft/ifcimport/pkg/runtime"
)

type State int

const (
	STATE_UNPROCESSED State = iota
	STATE_PROCESSED
	STATE_POSTPROCESSED
	STATE_CREATING
	STATE_CREATED
	STATE_CREATION_FAILED
)

var stateNames = map[State]string{
	STATE_UNPROCESSED:     "Unprocessed",
	STATE_PROCESSED:       "Processed",
	STATE_POSTPROCESSED:   "PostProcessed",
	STATE_CREATING:        "Creating",
	STATE_CREATED:         "Created",
	STATE_CREATION_FAILED: "CreationFailed",
}

func (s State) String() string {
	if n, ok := stateNames[s]; ok {
		return n
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Entity is a materialized record of the imported file.
// The kind of an entity is its registration name in the dispatch table.
type Entity interface {
	runtime.Object

	Id() int
	EntityType() string
	GlobalId() string
	Name() string
	Description() string

	State() State
	IsValidForCreation() bool
	CreatedElementId() host.ElementId

	// Process extracts the attributes and relations of the record.
	Process(s *Session) Result
	// PostProcess resolves relations not handled by Process.
	// It may be called multiple times.
	PostProcess(s *Session) error

	entity() *EntityBase
}

// EntityBase provides the attributes shared by all entity kinds.
type EntityBase struct {
	runtime.TypeMeta

	id          int
	typ         string
	handle      ifcfile.Handle
	globalId    string
	name        string
	description string

	state   State
	invalid bool
	created host.ElementId
}

func (e *EntityBase) init(h ifcfile.Handle, typ string) {
	e.id = h.StepId()
	e.typ = typ
	e.handle = h
}

func (e *EntityBase) entity() *EntityBase {
	return e
}

func (e *EntityBase) Id() int {
	return e.id
}

func (e *EntityBase) Handle() ifcfile.Handle {
	return e.handle
}

func (e *EntityBase) EntityType() string {
	return e.typ
}

func (e *EntityBase) GlobalId() string {
	return e.globalId
}

func (e *EntityBase) Name() string {
	return e.name
}

func (e *EntityBase) Description() string {
	return e.description
}

func (e *EntityBase) State() State {
	return e.state
}

func (e *EntityBase) IsValidForCreation() bool {
	return !e.invalid
}

func (e *EntityBase) CreatedElementId() host.ElementId {
	return e.created
}

func (e *EntityBase) String() string {
	return fmt.Sprintf("#%d(%s)", e.id, e.typ)
}

// processRoot extracts the attributes of rooted entities.
func (e *EntityBase) processRoot(s *Session) Result {
	e.globalId = s.Text(e.handle, "GlobalId")
	if e.globalId == "" {
		return Failed(fmt.Errorf("%w GlobalId", ErrMissingAttribute))
	}
	e.name = s.Text(e.handle, "Name")
	e.description = s.Text(e.handle, "Description")
	return Imported
}

func (e *EntityBase) Process(s *Session) Result {
	return Imported
}

func (e *EntityBase) PostProcess(s *Session) error {
	return nil
}
