package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mandelsoft/datacontainer/pkg/model"
)

type Move struct {
	cmd *cobra.Command

	mainopts *Options
	after    string
	into     string
	root     bool
	output   string
}

func NewMove(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "move {<model>} <options>",
		Short: "move models behind an anchor model or into a parent model",
		Args:  cobra.MinimumNArgs(1),
	}
	TweakCommand(cmd)

	c := &Move{
		cmd:      cmd,
		mainopts: opts,
	}
	c.cmd.RunE = func(cmd *cobra.Command, args []string) error { return c.Run(args) }
	flags := cmd.Flags()
	flags.StringVarP(&c.after, "after", "a", "", "anchor model")
	flags.StringVarP(&c.into, "into", "i", "", "parent model")
	flags.BoolVarP(&c.root, "root", "r", false, "move to the root models")
	flags.StringVarP(&c.output, "output", "o", "", "output format (json, yaml)")
	return cmd
}

func (c *Move) Run(args []string) error {
	n := 0
	for _, b := range []bool{c.after != "", c.into != "", c.root} {
		if b {
			n++
		}
	}
	if n != 1 {
		return fmt.Errorf("exactly one of --after, --into or --root required")
	}

	dc, err := c.mainopts.Container()
	if err != nil {
		return err
	}

	list := model.NewCollection()
	for _, arg := range args {
		m, err := c.mainopts.GetModel(arg)
		if err != nil {
			return fmt.Errorf("%s: %w", arg, err)
		}
		list.Push(m)
	}

	var saved *model.Collection
	switch {
	case c.root:
		saved, err = dc.Paste().IntoRoot(list)
	case c.into != "":
		var parent *model.Model
		parent, err = c.mainopts.GetModel(c.into)
		if err != nil {
			return fmt.Errorf("%s: %w", c.into, err)
		}
		saved, err = dc.Paste().Into(list, parent)
	default:
		var anchor *model.Model
		anchor, err = c.mainopts.GetModel(c.after)
		if err != nil {
			return fmt.Errorf("%s: %w", c.after, err)
		}
		saved, err = dc.Paste().After(list, anchor)
	}
	if err != nil {
		return err
	}
	return Output(c.cmd.OutOrStdout(), c.output, saved, false, Columns(saved, dc.Specification().SortingProperty)...)
}
