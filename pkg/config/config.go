// Package config loads the configuration of the importer.
//
// A configuration file is a YAML document. References to environment
// variables (${NAME}, ${NAME:-default}) are substituted before the
// document is parsed. Every setting can be overridden by an environment
// variable with the prefix IFCIMPORT_, for example
// IFCIMPORT_IMPORT_EXCLUDE="IfcSpace IfcOpeningElement".
package config

import (
	"strings"

	"github.com/drone/envsubst"
	"github.com/mandelsoft/goutils/errors"
	"github.com/mandelsoft/goutils/general"
	"github.com/mandelsoft/vfs/pkg/osfs"
	"github.com/mandelsoft/vfs/pkg/vfs"
	"github.com/spf13/viper"

	"github.com/mandelsoft/ifcimport/pkg/importer"
)

const ENV_PREFIX = "IFCIMPORT"

const (
	KEY_EXCLUDE        = "import.exclude"
	KEY_DUPLICATE      = "import.duplicateContainerGeometry"
	KEY_PLAIN_NAMES    = "import.plainPropertyNames"
	KEY_ID_MAPPING     = "import.idMapping"
	KEY_DOCUMENT       = "document"
	KEY_LOG_LEVEL      = "log.level"
	KEY_LOG_DEBUG      = "log.debug"
	KEY_S3_REGION      = "s3.region"
	KEY_S3_ENDPOINT    = "s3.endpoint"
	KEY_S3_PATH_STYLE  = "s3.pathStyle"
	KEY_METRICS_OUTPUT = "metrics"
)

// Config is the complete configuration of an import run.
type Config struct {
	Import importer.Options `json:"import"`
	// Document is the directory of the target document.
	Document string    `json:"document,omitempty"`
	Log      LogConfig `json:"log"`
	S3       S3Config  `json:"s3"`
	// Metrics is the file the metrics are written to after an import.
	Metrics string `json:"metrics,omitempty"`
}

type LogConfig struct {
	Level string `json:"level,omitempty"`
	// Debug lists realm prefixes logged with debug level.
	Debug []string `json:"debug,omitempty"`
}

type S3Config struct {
	Region    string `json:"region,omitempty"`
	Endpoint  string `json:"endpoint,omitempty"`
	PathStyle bool   `json:"pathStyle,omitempty"`
}

// New provides a viper instance with defaults and environment
// overrides. It can be used to bind command line flags.
func New() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(ENV_PREFIX)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	def := importer.DefaultOptions()
	v.SetDefault(KEY_EXCLUDE, def.Exclude)
	v.SetDefault(KEY_DUPLICATE, def.DuplicateContainerGeometry)
	v.SetDefault(KEY_PLAIN_NAMES, def.PlainPropertyNames)
	v.SetDefault(KEY_ID_MAPPING, def.IdMapping)
	v.SetDefault(KEY_DOCUMENT, "")
	v.SetDefault(KEY_LOG_LEVEL, "info")
	v.SetDefault(KEY_LOG_DEBUG, []string{})
	v.SetDefault(KEY_S3_REGION, "us-east-1")
	v.SetDefault(KEY_S3_ENDPOINT, "")
	v.SetDefault(KEY_S3_PATH_STYLE, false)
	v.SetDefault(KEY_METRICS_OUTPUT, "")
	return v
}

// ReadFile reads a configuration file into a viper instance.
func ReadFile(v *viper.Viper, path string, fss ...vfs.FileSystem) error {
	fs := general.OptionalDefaulted[vfs.FileSystem](osfs.OsFs, fss...)

	data, err := vfs.ReadFile(fs, path)
	if err != nil {
		return errors.Wrapf(err, "cannot read config %s", path)
	}
	expanded, err := envsubst.EvalEnv(string(data))
	if err != nil {
		return errors.Wrapf(err, "invalid environment reference in config %s", path)
	}
	if err := v.ReadConfig(strings.NewReader(expanded)); err != nil {
		return errors.Wrapf(err, "invalid config %s", path)
	}
	return nil
}

// Get provides the configuration of a viper instance.
func Get(v *viper.Viper) (*Config, error) {
	c := &Config{
		Import: importer.Options{
			Exclude:                    v.GetStringSlice(KEY_EXCLUDE),
			DuplicateContainerGeometry: v.GetBool(KEY_DUPLICATE),
			PlainPropertyNames:         v.GetBool(KEY_PLAIN_NAMES),
			IdMapping:                  v.GetString(KEY_ID_MAPPING),
		},
		Document: v.GetString(KEY_DOCUMENT),
		Log: LogConfig{
			Level: v.GetString(KEY_LOG_LEVEL),
			Debug: v.GetStringSlice(KEY_LOG_DEBUG),
		},
		S3: S3Config{
			Region:    v.GetString(KEY_S3_REGION),
			Endpoint:  v.GetString(KEY_S3_ENDPOINT),
			PathStyle: v.GetBool(KEY_S3_PATH_STYLE),
		},
		Metrics: v.GetString(KEY_METRICS_OUTPUT),
	}
	if len(c.Import.Exclude) == 0 {
		c.Import.Exclude = nil
	}
	if len(c.Log.Debug) == 0 {
		c.Log.Debug = nil
	}
	if err := c.Import.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Load reads an optional configuration file and applies the
// environment overrides.
func Load(path string, fss ...vfs.FileSystem) (*Config, error) {
	v := New()
	if path != "" {
		if err := ReadFile(v, path, fss...); err != nil {
			return nil, err
		}
	}
	return Get(v)
}
