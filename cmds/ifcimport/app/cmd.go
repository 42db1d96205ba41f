package app

import (
	"os"

	"github.com/mandelsoft/goutils/general"
	"github.com/mandelsoft/logging"
	"github.com/mandelsoft/vfs/pkg/osfs"
	"github.com/mandelsoft/vfs/pkg/vfs"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/mandelsoft/ifcimport/pkg/config"
)

type Options struct {
	fs     vfs.FileSystem
	lctx   logging.Context
	config string
	viper  *viper.Viper
	cfg    *config.Config
}

// Config provides the effective configuration. It is available
// after the command line has been parsed.
func (o *Options) Config() *config.Config {
	return o.cfg
}

func (o *Options) Complete(cmd *cobra.Command) error {
	if o.config != "" {
		if err := config.ReadFile(o.viper, o.config, o.fs); err != nil {
			return err
		}
	}
	cfg, err := config.Get(o.viper)
	if err != nil {
		return err
	}
	o.cfg = cfg
	return ConfigureLogging(o.lctx, cmd.ErrOrStderr(), cfg.Log)
}

func (o *Options) bind(flags *pflag.FlagSet, key, flag string) {
	if err := o.viper.BindPFlag(key, flags.Lookup(flag)); err != nil {
		panic(err)
	}
}

func New(fss ...vfs.FileSystem) *cobra.Command {
	opts := &Options{
		fs:    general.OptionalDefaulted[vfs.FileSystem](osfs.OsFs, fss...),
		lctx:  logging.DefaultContext(),
		viper: config.New(),
	}

	maincmd := &cobra.Command{
		Use:   "ifcimport <options> <cmd> <args>",
		Short: "import IFC building models",
		Long: `
This command imports IFC building models (STEP, ifcXML or ZIP
containers) into a document of host elements. Settings are taken
from a config file, from IFCIMPORT_ environment variables and from
the command line.
`,
		TraverseChildren: true,
		SilenceUsage:     true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.Complete(cmd)
		},
	}

	flags := maincmd.PersistentFlags()
	flags.StringVarP(&opts.config, "config", "c", os.Getenv("IFCIMPORT_CONFIG"), "config file")
	flags.StringP("log-level", "L", "info", "log level")
	flags.StringSlice("debug", nil, "realm prefixes logged with debug level")
	opts.bind(flags, config.KEY_LOG_LEVEL, "log-level")
	opts.bind(flags, config.KEY_LOG_DEBUG, "debug")

	maincmd.AddCommand(NewImport(opts))
	maincmd.AddCommand(NewSchema(opts))
	maincmd.AddCommand(NewList(opts))
	return maincmd
}
