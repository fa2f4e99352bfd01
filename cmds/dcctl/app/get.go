package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mandelsoft/datacontainer/pkg/model"
)

type Get struct {
	cmd *cobra.Command

	mainopts *Options
	output   string
}

func NewGet(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get {<model>} <options>",
		Short: "get models (root models if no model is given)",
	}
	TweakCommand(cmd)

	c := &Get{
		cmd:      cmd,
		mainopts: opts,
	}
	c.cmd.RunE = func(cmd *cobra.Command, args []string) error { return c.Run(args) }
	flags := cmd.Flags()
	flags.StringVarP(&c.output, "output", "o", "", "output format (json, yaml)")
	return cmd
}

func (c *Get) Run(args []string) error {
	dc, err := c.mainopts.Container()
	if err != nil {
		return err
	}
	prop := dc.Specification().SortingProperty

	var list *model.Collection
	if len(args) == 0 {
		list, err = dc.Collector().CollectRoots(prop)
		if err != nil {
			return err
		}
	} else {
		list = model.NewCollection()
		for _, arg := range args {
			m, err := c.mainopts.GetModel(arg)
			if err != nil {
				return fmt.Errorf("%s: %w", arg, err)
			}
			list.Push(m)
		}
	}
	return Output(c.cmd.OutOrStdout(), c.output, list, len(args) == 1, Columns(list, prop)...)
}
