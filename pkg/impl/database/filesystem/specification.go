package filesystem

import (
	"github.com/mandelsoft/goutils/general"
	"github.com/mandelsoft/vfs/pkg/osfs"
	"github.com/mandelsoft/vfs/pkg/vfs"

	"github.com/mandelsoft/ifcimport/pkg/database"
)

type Specification[O database.Object] struct {
	Path       string
	FileSystem vfs.FileSystem
}

var _ database.Specification[database.Object] = (*Specification[database.Object])(nil)

func NewSpecification[O database.Object](path string, fss ...vfs.FileSystem) *Specification[O] {
	return &Specification[O]{
		Path:       path,
		FileSystem: general.OptionalDefaulted[vfs.FileSystem](osfs.New(), fss...),
	}
}

func (s *Specification[O]) Create(enc database.Encoding[O]) (database.Database[O], error) {
	return New[O](enc, s.Path, s.FileSystem)
}
