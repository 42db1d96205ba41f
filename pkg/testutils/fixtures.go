package testutils

import (
	"path/filepath"

	"github.com/mandelsoft/goutils/errors"
	"github.com/mandelsoft/vfs/pkg/composefs"
	"github.com/mandelsoft/vfs/pkg/layerfs"
	"github.com/mandelsoft/vfs/pkg/osfs"
	"github.com/mandelsoft/vfs/pkg/projectionfs"
	"github.com/mandelsoft/vfs/pkg/readonlyfs"
	"github.com/mandelsoft/vfs/pkg/vfs"
)

// Fixtures provides a temporary filesystem with the given fixture
// directories of the OS filesystem mounted under /<base name>.
// Writes to a fixture are kept in the temporary layer, the
// fixture directories are never modified.
// The filesystem must be released with vfs.Cleanup.
func Fixtures(dirs ...string) (vfs.FileSystem, error) {
	tmpfs, err := osfs.NewTempFileSystem()
	if err != nil {
		return nil, err
	}
	defer func() {
		if tmpfs != nil {
			vfs.Cleanup(tmpfs)
		}
	}()

	fs := composefs.New(tmpfs, "/tmp")
	for _, d := range dirs {
		abs, err := filepath.Abs(d)
		if err != nil {
			return nil, err
		}
		mnt := "/" + filepath.Base(abs)
		if err := tmpfs.MkdirAll(mnt, 0o700); err != nil {
			return nil, err
		}
		fixture, err := projectionfs.New(osfs.OsFs, abs)
		if err != nil {
			return nil, errors.Wrapf(err, "fixture %q", d)
		}
		layer, err := projectionfs.New(tmpfs, mnt)
		if err != nil {
			return nil, err
		}
		if err := fs.Mount(mnt, layerfs.New(layer, readonlyfs.New(fixture))); err != nil {
			return nil, errors.Wrapf(err, "mount fixture %q", d)
		}
	}
	tmpfs = nil
	return fs, nil
}
