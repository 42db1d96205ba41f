package importer

import (
	"fmt"

	"k8s.io/apimachinery/pkg/util/sets"

	"github.com/mandelsoft/ifcimport/pkg/host"
)

// Pass1 materializes the object graph reachable from the first
// project of the file. Further projects are ignored.
func (s *Session) Pass1() (*Project, error) {
	s.progress.Pass(1)
	projects := s.GetInstances("IfcProject", false)
	if len(projects) == 0 {
		return nil, ErrNoProject
	}
	if len(projects) > 1 {
		s.report.Warn(0, "", "file contains %d projects, only #%d is imported", len(projects), projects[0].StepId())
	}
	p, r := MaterializeAs[*Project](s, projects[0], "IfcProject")
	if !r.IsImported() {
		return nil, fmt.Errorf("%w: project #%d %s", ErrNoProject, projects[0].StepId(), r)
	}
	log.Info("pass 1 processed {{count}} entities", "count", s.processed)
	return p, nil
}

// Pass2 post processes all materialized entities until no entity
// without post processing is left. Post processing may materialize
// new entities, which are handled by a further sweep.
// It returns the number of sweeps.
func (s *Session) Pass2() int {
	s.progress.Pass(2)
	handled := sets.New[int]()
	sweeps := 0
	for {
		var pending []Entity
		for _, e := range s.Entities() {
			if !handled.Has(e.Id()) {
				pending = append(pending, e)
			}
		}
		if len(pending) == 0 {
			break
		}
		sweeps++
		before := len(s.entities)
		for _, e := range pending {
			handled.Insert(e.Id())
			if err := e.PostProcess(s); err != nil {
				s.report.Warn(e.Id(), e.EntityType(), "post processing failed: %s", err)
			}
			if b := e.entity(); b.state == STATE_PROCESSED {
				b.state = STATE_POSTPROCESSED
			}
		}
		log.Debug("sweep {{sweep}} post processed {{count}} entities, {{new}} new entities",
			"sweep", sweeps, "count", len(pending), "new", len(s.entities)-before)
	}
	return sweeps
}

// Pass3 creates the host elements for the project tree. Afterwards
// all remaining root entities not composed into another entity,
// like groups and systems, are created.
func (s *Session) Pass3(doc host.Document, project *Project) {
	s.progress.Pass(3)
	s.CreateElement(doc, project)
	for _, e := range s.Entities() {
		o, ok := e.(ObjectDefinition)
		if !ok || o.definition().decomposes != 0 {
			continue
		}
		if _, ok := o.(*Project); ok {
			continue
		}
		s.CreateElement(doc, o)
	}
}
