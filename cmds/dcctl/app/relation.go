package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mandelsoft/datacontainer/pkg/model"
)

// Relation shows models related to a given model.
type Relation struct {
	cmd *cobra.Command

	mainopts *Options
	kind     string
	output   string
	provider string
}

func NewRelation(opts *Options, kind string, short string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   kind + " <model> <options>",
		Short: short,
		Args:  cobra.ExactArgs(1),
	}
	TweakCommand(cmd)

	c := &Relation{
		cmd:      cmd,
		mainopts: opts,
		kind:     kind,
	}
	c.cmd.RunE = func(cmd *cobra.Command, args []string) error { return c.Run(args) }
	flags := cmd.Flags()
	flags.StringVarP(&c.output, "output", "o", "", "output format (json, yaml)")
	if kind == "children" {
		flags.StringVarP(&c.provider, "provider", "p", "", "child provider")
	}
	return cmd
}

func (c *Relation) Run(args []string) error {
	dc, err := c.mainopts.Container()
	if err != nil {
		return err
	}
	m, err := c.mainopts.GetModel(args[0])
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}
	prop := dc.Specification().SortingProperty
	col := dc.Collector()

	var list *model.Collection
	switch c.kind {
	case "parent":
		p, err := col.ParentOf(m)
		if err != nil {
			return err
		}
		list = model.NewCollection()
		if p != nil {
			list.Push(p)
		}
	case "siblings":
		list, err = col.CollectSiblingsOf(m, prop)
	case "children":
		provider := c.provider
		if provider == "" {
			provider = m.GetProviderName()
		}
		list, err = col.CollectDirectChildrenOf(m, provider, prop)
	case "ancestors":
		list, err = col.AssembleParentsFor(m)
	default:
		err = fmt.Errorf("unknown relation %q", c.kind)
	}
	if err != nil {
		return err
	}
	return Output(c.cmd.OutOrStdout(), c.output, list, c.kind == "parent" && list.Len() == 1, Columns(list, prop)...)
}
