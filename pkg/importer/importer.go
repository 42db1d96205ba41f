package importer

import (
	"context"

	"github.com/mandelsoft/goutils/errors"
	"github.com/mandelsoft/goutils/general"
	"github.com/mandelsoft/vfs/pkg/osfs"
	"github.com/mandelsoft/vfs/pkg/vfs"

	"github.com/mandelsoft/ifcimport/pkg/host"
	"github.com/mandelsoft/ifcimport/pkg/idmap"
	"github.com/mandelsoft/ifcimport/pkg/ifcfile"
	"github.com/mandelsoft/ifcimport/pkg/progress"
	"github.com/mandelsoft/ifcimport/pkg/report"
	"github.com/mandelsoft/ifcimport/pkg/schema"
)

// Summary describes the outcome of an import.
type Summary struct {
	File     string
	Detected schema.Version
	Schema   schema.Version
	// Processed is the number of materialized entities.
	Processed int
	// Created is the number of created host elements.
	Created int
	// Sweeps is the number of post processing sweeps.
	Sweeps int
	Report *report.Report
}

func (s *Summary) Errors() int {
	return s.Report.Errors()
}

func (s *Summary) Warnings() int {
	return s.Report.Warnings()
}

// Importer imports files into host documents.
type Importer struct {
	options  Options
	ids      idmap.Store
	progress progress.Sink
}

func New(opts Options) *Importer {
	return &Importer{options: opts, progress: progress.Nop}
}

// WithIdMap sets the id mapping store used to reuse elements
// of former imports.
func (i *Importer) WithIdMap(ids idmap.Store) *Importer {
	i.ids = ids
	return i
}

func (i *Importer) WithProgress(p progress.Sink) *Importer {
	i.progress = progress.Multi(p)
	return i
}

// ImportPath imports a file in any supported container format.
// The file digest is used as source key for the id mapping.
func (i *Importer) ImportPath(ctx context.Context, doc host.Document, path string, fss ...vfs.FileSystem) (*Summary, error) {
	fs := general.OptionalDefaulted[vfs.FileSystem](osfs.OsFs, fss...)

	digest, err := idmap.DigestFile(fs, path)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot read %s", path)
	}
	file, err := ifcfile.Open(path, fs)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return i.importFile(ctx, doc, file, digest)
}

// Import imports a parsed file. All modifications are done in one
// transaction, which is rolled back on file level errors.
func (i *Importer) Import(ctx context.Context, doc host.Document, file ifcfile.File) (*Summary, error) {
	return i.importFile(ctx, doc, file, file.Name())
}

func (i *Importer) importFile(ctx context.Context, doc host.Document, file ifcfile.File, source string) (*Summary, error) {
	if err := i.options.Validate(); err != nil {
		return nil, err
	}
	s := NewSession(file, i.options).WithProgress(i.progress).WithIdMap(i.ids, source)
	defer s.Dispose()

	summary := &Summary{
		File:     file.Name(),
		Detected: s.Schema(),
		Report:   s.Report(),
	}
	log.Info("importing {{file}} with schema {{schema}}", "file", file.Name(), "schema", s.Schema())

	tx, err := doc.Begin("import " + file.Name())
	if err != nil {
		return summary, errors.Wrapf(err, "cannot start transaction")
	}
	defer tx.Rollback()

	project, err := s.Pass1()
	if err != nil {
		return summary, err
	}
	if err := ctx.Err(); err != nil {
		return summary, err
	}
	summary.Sweeps = s.Pass2()
	if err := ctx.Err(); err != nil {
		return summary, err
	}
	s.Pass3(doc, project)

	if err := tx.Commit(); err != nil {
		return summary, errors.Wrapf(err, "cannot commit import")
	}

	summary.Schema = s.Schema()
	summary.Processed = s.Processed()
	for _, e := range s.Entities() {
		if !e.CreatedElementId().IsNone() {
			summary.Created++
		}
	}
	log.Info("imported {{file}}: {{created}} elements, {{errors}} errors, {{warnings}} warnings",
		"file", file.Name(), "created", summary.Created, "errors", summary.Errors(), "warnings", summary.Warnings())
	return summary, nil
}
