package filesystem

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/mandelsoft/goutils/errors"
	"github.com/mandelsoft/goutils/general"
	"github.com/mandelsoft/vfs/pkg/osfs"
	"github.com/mandelsoft/vfs/pkg/vfs"
	"sigs.k8s.io/yaml"

	"github.com/mandelsoft/ifcimport/pkg/database"
)

// Database stores objects as YAML documents in a filesystem
// using the path <type>/<namespace>/<name>.yaml.
type Database[O database.Object] struct {
	lock     sync.Mutex
	encoding database.Encoding[O]
	path     string
	fs       vfs.FileSystem
	database.HandlerRegistry
}

var _ database.Database[database.Object] = (*Database[database.Object])(nil)

func New[O database.Object](enc database.Encoding[O], path string, fss ...vfs.FileSystem) (database.Database[O], error) {
	fs := general.OptionalDefaulted[vfs.FileSystem](osfs.OsFs, fss...)

	err := fs.MkdirAll(path, 0o0700)
	if err != nil && !errors.Is(err, vfs.ErrExist) {
		return nil, err
	}

	d := &Database[O]{encoding: enc, path: path, fs: fs}
	d.HandlerRegistry = database.NewHandlerRegistry(d)
	return d, nil
}

func (d *Database[O]) SchemeTypes() database.SchemeTypes[O] {
	return d.encoding
}

func (d *Database[O]) ListObjectIds(typ string, ns string, atomic ...func()) ([]database.ObjectId, error) {
	d.lock.Lock()
	defer d.lock.Unlock()

	for _, a := range atomic {
		a()
	}
	var result []database.ObjectId
	err := d.walk(typ, ns, ns == "", func(id database.ObjectId) error {
		result = append(result, id)
		return nil
	})
	return result, err
}

func (d *Database[O]) ListObjects(typ, ns string) ([]O, error) {
	d.lock.Lock()
	defer d.lock.Unlock()

	var result []O
	err := d.walk(typ, ns, ns == "", func(id database.ObjectId) error {
		o, err := d.get(id)
		if err != nil {
			return err
		}
		result = append(result, o)
		return nil
	})
	return result, err
}

func (d *Database[O]) walk(typ, ns string, closure bool, f func(id database.ObjectId) error) error {
	if typ == "" {
		types, err := vfs.ReadDir(d.fs, d.path)
		if err != nil {
			return err
		}
		for _, t := range types {
			if t.IsDir() {
				err = d.walk(t.Name(), ns, closure, f)
				if err != nil {
					return err
				}
			}
		}
		return nil
	}

	list, err := vfs.ReadDir(d.fs, d.Path(filepath.Join(typ, ns)))
	if err != nil {
		if errors.Is(err, vfs.ErrNotExist) {
			return nil
		}
		return err
	}
	for _, e := range list {
		if e.IsDir() {
			if closure {
				err := d.walk(typ, filepath.Join(ns, e.Name()), closure, f)
				if err != nil {
					return err
				}
			}
			continue
		}
		if strings.HasSuffix(e.Name(), ".yaml") {
			err := f(database.NewObjectId(typ, filepath.ToSlash(ns), strings.TrimSuffix(e.Name(), ".yaml")))
			if err != nil {
				return err
			}
		}
	}
	return nil
}

func (d *Database[O]) GetObject(id database.ObjectId) (O, error) {
	d.lock.Lock()
	defer d.lock.Unlock()
	return d.get(id)
}

func (d *Database[O]) get(id database.ObjectId) (O, error) {
	var _nil O

	path := d.OPath(id)
	data, err := vfs.ReadFile(d.fs, path)
	if err != nil {
		if errors.Is(err, vfs.ErrNotExist) {
			return _nil, fmt.Errorf("%w: %s", database.ErrNotExist, database.StringId(id))
		}
		return _nil, err
	}
	o, err := d.encoding.Decode(data)
	if err != nil {
		return _nil, errors.Wrapf(err, "decoding %s", path)
	}

	if !database.EqualObjectId(o, id) {
		return _nil, fmt.Errorf("corrupted database: %s does not contain object with id %s", path, database.StringId(id))
	}
	return o, nil
}

// SetObject stores an object. For objects featuring a generation
// the stored generation must match the generation of the given object.
// It is incremented on successful writes.
func (d *Database[O]) SetObject(o O) error {
	if err := CheckId(o); err != nil {
		return err
	}

	err := d.set(o)
	if err == nil {
		d.TriggerEvent(o)
	}
	return err
}

func (d *Database[O]) set(o O) error {
	d.lock.Lock()
	defer d.lock.Unlock()

	path := d.OPath(o)

	if g, ok := any(o).(database.GenerationAccess); ok {
		gen := int64(-1)
		old, err := d.get(o)
		if err == nil {
			gen = database.GetGeneration(old)
		} else if !errors.Is(err, database.ErrNotExist) {
			return err
		}
		if gen >= 0 && gen != g.GetGeneration() {
			return database.ErrModified
		}
		g.SetGeneration(gen + 1)
	}

	data, err := yaml.Marshal(o)
	if err != nil {
		return err
	}
	err = d.fs.MkdirAll(filepath.Dir(path), 0o700)
	if err != nil {
		return err
	}
	err = vfs.WriteFile(d.fs, path, data, 0o600)
	if err != nil {
		return err
	}
	log.Trace("stored {{id}}", "id", database.StringId(o))
	return nil
}

func (d *Database[O]) DeleteObject(id database.ObjectId) (bool, error) {
	d.lock.Lock()
	err := d.fs.Remove(d.OPath(id))
	d.lock.Unlock()

	if err != nil {
		if errors.Is(err, vfs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	d.TriggerEvent(database.NewObjectIdFor(id))
	return true, nil
}

func (d *Database[O]) Path(path string) string {
	return filepath.Join(d.path, path)
}

func (d *Database[O]) OPath(id database.ObjectId) string {
	return filepath.Join(d.path, Path(id))
}
