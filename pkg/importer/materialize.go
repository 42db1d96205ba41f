package importer

import (
	"fmt"

	"github.com/modern-go/reflect2"

	"github.com/mandelsoft/ifcimport/pkg/ifcfile"
	"github.com/mandelsoft/ifcimport/pkg/report"
)

// Materialize provides the entity for a record. Every record is
// materialized at most once per session. The entity is registered
// before it is processed, so cyclic relations reached while
// processing it resolve to the same instance.
// Records which have been skipped or have failed once keep their
// result for the rest of the session.
func (s *Session) Materialize(h ifcfile.Handle, expected string) (Entity, Result) {
	if reflect2.IsNil(h) {
		log.Debug("null entity (expected {{expected}})", "expected", expected)
		return nil, Skipped("null reference")
	}
	id := h.StepId()
	if e := s.entities[id]; e != nil {
		return e, Imported
	}
	if r, ok := s.rejected[id]; ok {
		return nil, r
	}

	typ := s.file.EntityType(h)
	if expected != "" && !s.file.IsSubtypeOf(h, expected) {
		s.report.Warn(id, typ, "unexpected entity type, expected %s", expected)
		return nil, Skipped("unexpected type %s", typ)
	}

	kind := s.kindFor(typ)
	if kind == "" {
		s.report.Once("unsupported:"+typ, report.INFO, id, typ, "entity type %s not supported", typ)
		return s.reject(id, Skipped("unsupported type %s", typ))
	}
	e, err := kinds.CreateObject(kind)
	if err != nil {
		return s.reject(id, Failed(err))
	}
	b := e.entity()
	b.init(h, typ)
	if d, ok := e.(ObjectDefinition); ok {
		d.definition().self = d
	}

	s.entities[id] = e
	s.processed++
	s.progress.Processed(typ)
	log.Trace("processing {{entity}}", "entity", b)

	r := e.Process(s)
	if !r.IsImported() {
		delete(s.entities, id)
		b.invalid = true
		if r.IsFailed() {
			s.report.Error(id, typ, "cannot import: %s", r.Reason)
		} else {
			log.Debug("skipped {{entity}}: {{reason}}", "entity", b, "reason", r.Reason)
		}
		return s.reject(id, r)
	}
	b.state = STATE_PROCESSED
	return e, r
}

func (s *Session) reject(id int, r Result) (Entity, Result) {
	s.rejected[id] = r
	return nil, r
}

// MaterializeAs materializes a record as a dedicated entity kind.
func MaterializeAs[T Entity](s *Session, h ifcfile.Handle, expected string) (T, Result) {
	var _nil T

	e, r := s.Materialize(h, expected)
	if e == nil {
		return _nil, r
	}
	t, ok := e.(T)
	if !ok {
		s.report.Warn(e.Id(), e.EntityType(), "unexpected kind %s", e.GetType())
		return _nil, Skipped("unexpected kind %s", e.GetType())
	}
	return t, r
}

// MaterializeAll materializes a list of records. Records which cannot
// be materialized are omitted.
func MaterializeAll[T Entity](s *Session, handles []ifcfile.Handle, expected string) []T {
	var r []T
	for _, h := range handles {
		if e, res := MaterializeAs[T](s, h, expected); res.IsImported() {
			r = append(r, e)
		}
	}
	return r
}

func describe(e Entity) string {
	if e == nil {
		return "<none>"
	}
	return fmt.Sprintf("#%d(%s)", e.Id(), e.EntityType())
}
