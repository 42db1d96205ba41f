package app

import (
	"fmt"
	"io"

	"github.com/mandelsoft/logging"
	"github.com/mandelsoft/logging/logrusl"
	"github.com/mandelsoft/logging/logrusr"

	"github.com/mandelsoft/ifcimport/pkg/config"
)

var REALM = logging.DefineRealm("ifcimport/cli", "command line interface")

var log = logging.DynamicLogger(logging.DefaultContext(), REALM)

// ConfigureLogging sets a human readable base logger writing to w
// and the level rules of the configuration.
func ConfigureLogging(lctx logging.Context, w io.Writer, cfg config.LogConfig) error {
	l, err := logging.ParseLevel(cfg.Level)
	if err != nil {
		return fmt.Errorf("invalid log level %q", cfg.Level)
	}
	logcfg := logrusl.Human(true).WithWriter(w)
	lctx.SetBaseLogger(logrusr.New(logcfg.NewLogrus()))
	lctx.AddRule(logging.NewConditionRule(l, logging.NewRealmPrefix("ifcimport")))
	lctx.AddRule(logging.NewConditionRule(l, logging.NewRealmPrefix("database")))
	for _, r := range cfg.Debug {
		lctx.AddRule(logging.NewConditionRule(logging.DebugLevel, logging.NewRealmPrefix(r)))
	}
	return nil
}
