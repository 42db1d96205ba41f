package app

import (
	"fmt"
	"strings"

	"github.com/mandelsoft/goutils/sliceutils"
	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"

	"github.com/mandelsoft/ifcimport/pkg/host"
)

type List struct {
	cmd *cobra.Command

	mainopts *Options
	name     string
	output   string
	kinds    []string
}

func NewList(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list <document directory> <options>",
		Short: "list the elements of a document",
		Args:  cobra.ExactArgs(1),
	}
	TweakCommand(cmd)

	c := &List{
		cmd:      cmd,
		mainopts: opts,
	}
	c.cmd.RunE = func(cmd *cobra.Command, args []string) error { return c.Run(args[0]) }
	flags := cmd.Flags()
	flags.StringVarP(&c.name, "name", "n", "model", "document name")
	flags.StringVarP(&c.output, "output", "o", "", "output format (yaml)")
	flags.StringSliceVarP(&c.kinds, "kind", "k", nil, "element kinds to list")
	return cmd
}

func (c *List) Run(dir string) error {
	doc, err := c.mainopts.OpenDocument(dir, c.name)
	if err != nil {
		return err
	}
	elems, err := doc.Elements()
	if err != nil {
		return err
	}
	if len(c.kinds) > 0 {
		elems = sliceutils.Filter(elems, func(e *host.Element) bool {
			for _, k := range c.kinds {
				if strings.EqualFold(k, string(e.Kind)) {
					return true
				}
			}
			return false
		})
	}

	out := c.cmd.OutOrStdout()
	switch c.output {
	case "yaml":
		data, err := yaml.Marshal(elems)
		if err != nil {
			return err
		}
		_, err = out.Write(data)
		return err
	case "":
		for _, e := range elems {
			name := ""
			if p := e.Parameter("IfcName"); p != nil {
				name = p.Text()
			}
			fmt.Fprintf(out, "%s %-12s %-28s #%-6d %s\n", e.Id, e.Kind, e.Category, e.Owner, name)
		}
		return nil
	default:
		return fmt.Errorf("invalid output format %q", c.output)
	}
}
