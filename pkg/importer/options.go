package importer

import (
	"fmt"
	"regexp"
	"strings"

	"k8s.io/apimachinery/pkg/util/sets"
)

// Options are the global options of an import run.
type Options struct {
	// Exclude lists the categories not to import. A category is an
	// entity type name, optionally followed by a predefined type
	// (IfcWall.SHEAR). Excluding a type excludes its subtypes.
	Exclude []string `json:"exclude,omitempty"`
	// DuplicateContainerGeometry enables the duplication of the
	// geometry of sub elements into containers grouping them.
	DuplicateContainerGeometry bool `json:"duplicateContainerGeometry"`
	// PlainPropertyNames uses property names without the
	// property set name as parameter names.
	PlainPropertyNames bool `json:"plainPropertyNames,omitempty"`
	// IdMapping is the location of the id mapping store.
	// Empty uses a store kept in memory.
	IdMapping string `json:"idMapping,omitempty"`
}

func DefaultOptions() Options {
	return Options{
		DuplicateContainerGeometry: true,
	}
}

var category = regexp.MustCompile(`^(?i)ifc[a-z0-9_]+(\.[a-z0-9_]+)?$`)

func (o *Options) Validate() error {
	for _, e := range o.Exclude {
		if !category.MatchString(e) {
			return fmt.Errorf("invalid excluded category %q", e)
		}
	}
	return nil
}

// exclusions is the set of excluded categories in upper case.
type exclusions sets.Set[string]

func newExclusions(list []string) exclusions {
	s := sets.New[string]()
	for _, e := range list {
		s.Insert(strings.ToUpper(strings.TrimSpace(e)))
	}
	return exclusions(s)
}

// Excludes checks a type or the type qualified by a predefined type.
func (e exclusions) Excludes(typ, predefined string) (string, bool) {
	s := sets.Set[string](e)
	if s.Len() == 0 {
		return "", false
	}
	if predefined != "" {
		c := strings.ToUpper(typ + "." + predefined)
		if s.Has(c) {
			return c, true
		}
	}
	c := strings.ToUpper(typ)
	return c, s.Has(c)
}
