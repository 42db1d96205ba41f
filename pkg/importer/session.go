package importer

import (
	"fmt"
	"strings"

	"github.com/mandelsoft/goutils/errors"
	"github.com/mandelsoft/goutils/maputils"

	"github.com/mandelsoft/ifcimport/pkg/host"
	"github.com/mandelsoft/ifcimport/pkg/idmap"
	"github.com/mandelsoft/ifcimport/pkg/ifcfile"
	"github.com/mandelsoft/ifcimport/pkg/progress"
	"github.com/mandelsoft/ifcimport/pkg/report"
	"github.com/mandelsoft/ifcimport/pkg/schema"
)

// Session is the context of one import run. It owns all state
// created for the file and must not be reused for another run.
type Session struct {
	file     ifcfile.File
	tracker  *schema.Tracker
	options  Options
	excluded exclusions
	report   *report.Report
	progress progress.Sink
	ids      idmap.Store
	source   string

	entities map[int]Entity
	rejected map[int]Result
	kinds    map[string]string

	points     map[int]host.Vector
	directions map[int]host.Vector
	placements map[int]host.Transform

	processed int
}

// NewSession creates a session for a file. Diagnostics are reported
// to a fresh report, id mappings are kept in memory.
func NewSession(file ifcfile.File, opts Options) *Session {
	s := &Session{
		file:     file,
		tracker:  schema.NewTracker(file.Schema()),
		options:  opts,
		excluded: newExclusions(opts.Exclude),
		progress: progress.Nop,
		ids:      idmap.NewMemory(),
		source:   file.Name(),

		entities: map[int]Entity{},
		rejected: map[int]Result{},
		kinds:    map[string]string{},

		points:     map[int]host.Vector{},
		directions: map[int]host.Vector{},
		placements: map[int]host.Transform{},
	}
	s.report = report.New(log, s)
	return s
}

// WithProgress sets the progress sink.
func (s *Session) WithProgress(p progress.Sink) *Session {
	if p != nil {
		s.progress = p
	}
	return s
}

// WithIdMap sets the id mapping store and the source key
// used for the file.
func (s *Session) WithIdMap(ids idmap.Store, source string) *Session {
	if ids != nil {
		s.ids = ids
	}
	if source != "" {
		s.source = source
	}
	return s
}

// Diagnostic forwards report diagnostics to the progress sink.
func (s *Session) Diagnostic(d report.Diagnostic) {
	s.progress.Diagnostic(d.Severity.String())
}

func (s *Session) File() ifcfile.File {
	return s.file
}

func (s *Session) Options() Options {
	return s.options
}

func (s *Session) Report() *report.Report {
	return s.report
}

func (s *Session) Schema() schema.Version {
	return s.tracker.Version()
}

func (s *Session) Tracker() *schema.Tracker {
	return s.tracker
}

// GetInstances delegates to the file. Results are not cached.
func (s *Session) GetInstances(typ string, includeSubtypes bool) []ifcfile.Handle {
	return s.file.Instances(typ, includeSubtypes)
}

func (s *Session) SchemaVersionAtLeast(v schema.Version) bool {
	return s.tracker.AtLeast(v)
}

// DowngradeSchemaTo switches the interpretation of the file to an
// older dialect of the ambiguous IFC4 tier.
func (s *Session) DowngradeSchemaTo(v schema.Version) error {
	old := s.tracker.Version()
	if err := s.tracker.DowngradeTo(v); err != nil {
		return err
	}
	s.file.SetSchema(v)
	s.kinds = map[string]string{}
	s.report.Info(0, "", "schema downgraded from %s to %s", old, v)
	return nil
}

// Processed provides the number of entities processed so far.
func (s *Session) Processed() int {
	return s.processed
}

// Entity looks up a materialized entity. It never materializes.
func (s *Session) Entity(id int) Entity {
	return s.entities[id]
}

// Entities provides all materialized entities ordered by id.
func (s *Session) Entities() []Entity {
	ids := maputils.OrderedKeys(s.entities)
	r := make([]Entity, len(ids))
	for i, id := range ids {
		r[i] = s.entities[id]
	}
	return r
}

// Rejected provides the materialization result of a record
// that has been skipped or has failed.
func (s *Session) Rejected(id int) (Result, bool) {
	r, ok := s.rejected[id]
	return r, ok
}

// Failed provides the ids of records whose materialization failed.
func (s *Session) Failed() []int {
	return s.rejectedIds(FAILED)
}

// Skipped provides the ids of records which have been skipped.
func (s *Session) Skipped() []int {
	return s.rejectedIds(SKIPPED)
}

func (s *Session) rejectedIds(k ResultKind) []int {
	var r []int
	for _, id := range maputils.OrderedKeys(s.rejected) {
		if s.rejected[id].Kind == k {
			r = append(r, id)
		}
	}
	return r
}

// Dispose drops all state of the session.
func (s *Session) Dispose() {
	s.entities = map[int]Entity{}
	s.rejected = map[int]Result{}
	s.kinds = map[string]string{}
	s.points = map[int]host.Vector{}
	s.directions = map[int]host.Vector{}
	s.placements = map[int]host.Transform{}
}

////////////////////////////////////////////////////////////////////////////////
// attribute access

// Attribute reads an attribute of a record. If the attribute is
// defined for the schema version but missing in the record, the file
// is assumed to use an older dialect of the ambiguous IFC4 tier and
// the lookup is retried after a downgrade.
func (s *Session) Attribute(h ifcfile.Handle, name string) (ifcfile.Value, error) {
	v, err := s.file.Attribute(h, name)
	for errors.Is(err, ifcfile.ErrAttributeUndefined) && s.file.HasAttribute(h, name) && s.tracker.CanDowngrade() {
		prev, _ := s.tracker.Previous()
		if derr := s.DowngradeSchemaTo(prev); derr != nil {
			return v, err
		}
		v, err = s.file.Attribute(h, name)
	}
	return v, err
}

// Value reads an optional attribute. Undefined attributes are unset.
func (s *Session) Value(h ifcfile.Handle, name string) ifcfile.Value {
	v, err := s.Attribute(h, name)
	if err != nil {
		if errors.Is(err, ifcfile.ErrAttributeUndefined) {
			log.Trace("attribute {{attr}} of #{{id}} undefined", "attr", name, "id", h.StepId())
		} else {
			s.report.Warn(h.StepId(), h.Type(), "cannot read attribute %s: %s", name, err)
		}
		return ifcfile.Unset
	}
	return v
}

func (s *Session) Text(h ifcfile.Handle, name string) string {
	t, _ := s.Value(h, name).Text()
	return t
}

func (s *Session) Enum(h ifcfile.Handle, name string) string {
	t, _ := s.Value(h, name).Enum()
	return t
}

func (s *Session) Real(h ifcfile.Handle, name string) (float64, bool) {
	return s.Value(h, name).Real()
}

func (s *Session) Integer(h ifcfile.Handle, name string) (int64, bool) {
	return s.Value(h, name).Integer()
}

// Ref resolves a reference attribute.
func (s *Session) Ref(h ifcfile.Handle, name string) ifcfile.Handle {
	return s.resolve(h, s.Value(h, name))
}

// Refs resolves the references of an aggregate attribute.
// Unset and unresolvable elements are omitted.
func (s *Session) Refs(h ifcfile.Handle, name string) []ifcfile.Handle {
	l, _ := s.Value(h, name).List()
	var r []ifcfile.Handle
	for _, e := range l {
		if ref := s.resolve(h, e); ref != nil {
			r = append(r, ref)
		}
	}
	return r
}

// Reals provides the numbers of an aggregate attribute.
func (s *Session) Reals(h ifcfile.Handle, name string) []float64 {
	l, _ := s.Value(h, name).List()
	var r []float64
	for _, e := range l {
		if f, ok := e.Real(); ok {
			r = append(r, f)
		}
	}
	return r
}

func (s *Session) resolve(from ifcfile.Handle, v ifcfile.Value) ifcfile.Handle {
	id, ok := v.Ref()
	if !ok {
		return nil
	}
	h := s.file.Instance(id)
	if h == nil {
		s.report.Once(fmt.Sprintf("dangling:%d", id), report.WARNING, from.StepId(), from.Type(),
			"reference to unknown instance #%d", id)
	}
	return h
}

// IsSubtypeOf checks a type name against the type tree of the file.
func (s *Session) IsSubtypeOf(typ, super string) bool {
	for t := typ; t != ""; t = s.file.Supertype(t) {
		if strings.EqualFold(t, super) {
			return true
		}
	}
	return false
}

// Excluded checks whether a type or one of its supertypes is
// excluded by the options.
func (s *Session) Excluded(typ, predefined string) (string, bool) {
	for t := typ; t != ""; t = s.file.Supertype(t) {
		if c, ok := s.excluded.Excludes(t, predefined); ok {
			return c, true
		}
	}
	return "", false
}
