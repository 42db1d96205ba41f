package ifcfile

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/mandelsoft/goutils/errors"
	"github.com/mandelsoft/goutils/general"
	"github.com/mandelsoft/vfs/pkg/osfs"
	"github.com/mandelsoft/vfs/pkg/vfs"
)

type Format string

const (
	FORMAT_STEP Format = "step"
	FORMAT_XML  Format = "xml"
	FORMAT_ZIP  Format = "zip"
)

var ErrUnknownFormat = errors.New("unknown file format")

// DetectFormat determines the container format by the file extension.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ifc", ".stp", ".step":
		return FORMAT_STEP, nil
	case ".ifcxml", ".xml":
		return FORMAT_XML, nil
	case ".ifczip", ".zip":
		return FORMAT_ZIP, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, path)
}

// Open reads a file in one of the supported container formats.
// ZIP containers must contain exactly one STEP or ifcXML entry, which is
// extracted to a temporary filesystem that is removed before Open returns.
func Open(path string, fss ...vfs.FileSystem) (File, error) {
	fs := general.OptionalDefaulted(vfs.FileSystem(osfs.OsFs), fss...)
	f, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}
	switch f {
	case FORMAT_ZIP:
		return openZip(fs, path)
	default:
		return openPlain(fs, path, f, filepath.Base(path))
	}
}

func openPlain(fs vfs.FileSystem, path string, f Format, name string) (File, error) {
	file, err := fs.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	m, err := Read(name, f, file)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// Read parses a plain (non-ZIP) file content.
func Read(name string, f Format, r io.Reader) (*Model, error) {
	switch f {
	case FORMAT_STEP:
		return ReadSTEP(name, r)
	case FORMAT_XML:
		return ReadXML(name, r)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, f)
}

func openZip(fs vfs.FileSystem, path string) (File, error) {
	data, err := vfs.ReadFile(fs, path)
	if err != nil {
		return nil, err
	}
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, errors.Wrapf(err, "invalid ZIP container %s", path)
	}

	var entry *zip.File
	for _, e := range zr.File {
		if e.FileInfo().IsDir() {
			continue
		}
		if entry != nil {
			return nil, fmt.Errorf("ZIP container %s must contain a single file", path)
		}
		entry = e
	}
	if entry == nil {
		return nil, fmt.Errorf("ZIP container %s is empty", path)
	}
	format, err := DetectFormat(entry.Name)
	if err != nil || format == FORMAT_ZIP {
		return nil, fmt.Errorf("%w: ZIP entry %q", ErrUnknownFormat, entry.Name)
	}

	tmp, err := osfs.NewTempFileSystem()
	if err != nil {
		return nil, err
	}
	defer vfs.Cleanup(tmp)

	name := filepath.Base(entry.Name)
	err = extract(tmp, entry, name)
	if err != nil {
		return nil, errors.Wrapf(err, "extracting %s", entry.Name)
	}
	log.Debug("extracted {{entry}} from {{file}}", "entry", entry.Name, "file", path)
	return openPlain(tmp, name, format, name)
}

func extract(fs vfs.FileSystem, e *zip.File, name string) error {
	r, err := e.Open()
	if err != nil {
		return err
	}
	defer r.Close()

	w, err := fs.Create(name)
	if err != nil {
		return err
	}
	_, err = io.Copy(w, r)
	if cerr := w.Close(); err == nil {
		err = cerr
	}
	return err
}
