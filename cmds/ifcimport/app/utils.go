package app

import (
	"github.com/spf13/cobra"

	"github.com/mandelsoft/ifcimport/pkg/host/dbdoc"
	"github.com/mandelsoft/ifcimport/pkg/impl/database/filesystem"
)

func TweakCommand(cmd *cobra.Command) {
	cmd.DisableFlagsInUseLine = true
	cmd.SilenceUsage = true
}

// OpenDocument opens a document stored in a directory.
func (o *Options) OpenDocument(dir, name string) (*dbdoc.Document, error) {
	return dbdoc.Open(name, filesystem.NewSpecification[dbdoc.Object](dir, o.fs))
}
