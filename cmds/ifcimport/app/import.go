package app

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/mandelsoft/goutils/errors"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"

	"github.com/mandelsoft/ifcimport/pkg/config"
	"github.com/mandelsoft/ifcimport/pkg/database"
	"github.com/mandelsoft/ifcimport/pkg/host"
	"github.com/mandelsoft/ifcimport/pkg/idmap"
	"github.com/mandelsoft/ifcimport/pkg/importer"
	"github.com/mandelsoft/ifcimport/pkg/progress"
	"github.com/mandelsoft/ifcimport/pkg/source"
)

type Import struct {
	cmd *cobra.Command

	mainopts *Options
	name     string
	events   bool
}

func NewImport(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file> <options>",
		Short: "import an IFC file",
		Long: `
Import an IFC file given by a local path or an S3 location
(s3://bucket/key). Without a document directory the elements are
only kept in memory and the import acts as a check of the file.
`,
		Args: cobra.ExactArgs(1),
	}
	TweakCommand(cmd)

	c := &Import{
		cmd:      cmd,
		mainopts: opts,
	}
	c.cmd.RunE = func(cmd *cobra.Command, args []string) error { return c.Run(cmd.Context(), args[0]) }

	flags := cmd.Flags()
	flags.StringP("document", "d", "", "document directory")
	flags.StringVarP(&c.name, "name", "n", "model", "document name")
	flags.StringSliceP("exclude", "x", nil, "excluded categories (<type>[.<predefined type>])")
	flags.Bool("duplicate-geometry", true, "duplicate the geometry of sub elements into containers")
	flags.Bool("plain-property-names", false, "use property names without property set prefix")
	flags.String("idmap", "", "id mapping store (SQLite file or postgres:// URL)")
	flags.String("metrics", "", "file to write the import metrics to")
	flags.String("s3-endpoint", "", "endpoint for S3 compatible object stores")
	flags.BoolVarP(&c.events, "events", "e", false, "report stored elements")

	opts.bind(flags, config.KEY_DOCUMENT, "document")
	opts.bind(flags, config.KEY_EXCLUDE, "exclude")
	opts.bind(flags, config.KEY_DUPLICATE, "duplicate-geometry")
	opts.bind(flags, config.KEY_PLAIN_NAMES, "plain-property-names")
	opts.bind(flags, config.KEY_ID_MAPPING, "idmap")
	opts.bind(flags, config.KEY_METRICS_OUTPUT, "metrics")
	opts.bind(flags, config.KEY_S3_ENDPOINT, "s3-endpoint")
	return cmd
}

func (c *Import) Run(ctx context.Context, location string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg := c.mainopts.Config()
	out := c.cmd.OutOrStdout()

	src, err := source.NewResolver(cfg.S3, c.mainopts.fs).Get(ctx, location)
	if err != nil {
		return err
	}
	defer src.Close()

	ids, err := idmap.Open(ctx, cfg.Import.IdMapping)
	if err != nil {
		return err
	}
	defer ids.Close()

	var doc host.Document
	if cfg.Document == "" {
		doc = host.NewMemoryDocument(c.name)
	} else {
		dbdoc, err := c.mainopts.OpenDocument(cfg.Document, c.name)
		if err != nil {
			return err
		}
		if c.events {
			h := &stored{out: out}
			if err := dbdoc.Watch(h, false); err != nil {
				return err
			}
			defer dbdoc.Unwatch(h)
		}
		doc = dbdoc
	}

	reg := prometheus.NewRegistry()
	imp := importer.New(cfg.Import).
		WithIdMap(ids).
		WithProgress(progress.NewMetrics(reg))

	log.Info("importing {{location}}", "location", location)
	summary, err := imp.ImportPath(ctx, doc, src.Path, src.FileSystem)
	if summary != nil && summary.Report != nil {
		if werr := summary.Report.Write(out); werr != nil && err == nil {
			err = werr
		}
	}
	if err != nil {
		return errors.Wrapf(err, "import of %s failed", location)
	}
	fmt.Fprintf(out, "imported %s (%s, detected %s): %d entities, %d elements\n",
		location, summary.Schema, summary.Detected, summary.Processed, summary.Created)

	if cfg.Metrics != "" {
		return c.writeMetrics(reg, cfg.Metrics)
	}
	return nil
}

func (c *Import) writeMetrics(g prometheus.Gatherer, path string) error {
	mfs, err := g.Gather()
	if err != nil {
		return err
	}
	f, err := c.mainopts.fs.Create(path)
	if err != nil {
		return errors.Wrapf(err, "cannot write metrics")
	}
	err = writeText(f, mfs)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}

func writeText(w io.Writer, mfs []*dto.MetricFamily) error {
	for _, mf := range mfs {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}

// stored reports elements written to the document.
type stored struct {
	lock sync.Mutex
	out  io.Writer
}

func (h *stored) HandleEvent(id database.ObjectId) {
	h.lock.Lock()
	defer h.lock.Unlock()
	fmt.Fprintf(h.out, "stored %s\n", id.GetName())
}
