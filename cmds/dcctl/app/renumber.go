package app

import (
	"fmt"

	"github.com/spf13/cobra"
)

type Renumber struct {
	cmd *cobra.Command

	mainopts *Options
	output   string
}

func NewRenumber(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "renumber <model> <options>",
		Short: "reassign evenly spaced order keys to the siblings of a model",
		Args:  cobra.ExactArgs(1),
	}
	TweakCommand(cmd)

	c := &Renumber{
		cmd:      cmd,
		mainopts: opts,
	}
	c.cmd.RunE = func(cmd *cobra.Command, args []string) error { return c.Run(args) }
	flags := cmd.Flags()
	flags.StringVarP(&c.output, "output", "o", "", "output format (json, yaml)")
	return cmd
}

func (c *Renumber) Run(args []string) error {
	dc, err := c.mainopts.Container()
	if err != nil {
		return err
	}
	m, err := c.mainopts.GetModel(args[0])
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}
	changed, err := dc.Paste().RenumberSiblingsOf(m)
	if err != nil {
		return err
	}
	return Output(c.cmd.OutOrStdout(), c.output, changed, false, Columns(changed, dc.Specification().SortingProperty)...)
}
