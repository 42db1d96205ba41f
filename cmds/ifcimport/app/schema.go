package app

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mandelsoft/ifcimport/pkg/ifcfile"
	"github.com/mandelsoft/ifcimport/pkg/source"
)

type Schema struct {
	cmd *cobra.Command

	mainopts *Options
}

func NewSchema(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schema {<file>}",
		Short: "show the schema version of IFC files",
		Args:  cobra.MinimumNArgs(1),
	}
	TweakCommand(cmd)

	c := &Schema{
		cmd:      cmd,
		mainopts: opts,
	}
	c.cmd.RunE = func(cmd *cobra.Command, args []string) error { return c.Run(cmd.Context(), args) }
	return cmd
}

func (c *Schema) Run(ctx context.Context, args []string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	r := source.NewResolver(c.mainopts.Config().S3, c.mainopts.fs)
	for _, a := range args {
		v, n, err := c.schema(ctx, r, a)
		if err != nil {
			return err
		}
		fmt.Fprintf(c.cmd.OutOrStdout(), "%s: %s (%d instances)\n", a, v, n)
	}
	return nil
}

func (c *Schema) schema(ctx context.Context, r *source.Resolver, location string) (string, int, error) {
	src, err := r.Get(ctx, location)
	if err != nil {
		return "", 0, err
	}
	defer src.Close()

	f, err := ifcfile.Open(src.Path, src.FileSystem)
	if err != nil {
		return "", 0, err
	}
	defer f.Close()
	return f.Schema().String(), f.Size(), nil
}
