package filesystem

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/mandelsoft/ifcimport/pkg/database"
)

var name = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_.-]*$`)

// CheckName checks whether a name can be used as file name.
func CheckName(n string) bool {
	return name.MatchString(n)
}

// CheckNamespace checks a slash separated namespace path.
func CheckNamespace(ns string) bool {
	for _, n := range strings.Split(ns, "/") {
		if !CheckName(n) {
			return false
		}
	}
	return true
}

func CheckId(id database.ObjectId) error {
	if !CheckName(id.GetType()) {
		return fmt.Errorf("invalid type name %q", id.GetType())
	}
	if id.GetNamespace() != "" && !CheckNamespace(id.GetNamespace()) {
		return fmt.Errorf("invalid namespace %q", id.GetNamespace())
	}
	if !CheckName(id.GetName()) {
		return fmt.Errorf("invalid object name %q", id.GetName())
	}
	return nil
}

func Path(o database.ObjectId) string {
	return fmt.Sprintf("%s/%s/%s.yaml", o.GetType(), o.GetNamespace(), o.GetName())
}
