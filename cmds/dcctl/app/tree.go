package app

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"k8s.io/apimachinery/pkg/util/sets"

	"github.com/mandelsoft/datacontainer/pkg/collector"
	"github.com/mandelsoft/datacontainer/pkg/model"
)

type Tree struct {
	cmd *cobra.Command

	mainopts *Options
	field    string
}

func NewTree(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tree {<model>} <options>",
		Short: "show the model hierarchy (starting with the root models if no model is given)",
	}
	TweakCommand(cmd)

	c := &Tree{
		cmd:      cmd,
		mainopts: opts,
	}
	c.cmd.RunE = func(cmd *cobra.Command, args []string) error { return c.Run(args) }
	flags := cmd.Flags()
	flags.StringVarP(&c.field, "field", "f", "", "property shown for each model")
	return cmd
}

func (c *Tree) Run(args []string) error {
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
	visited := sets.New[string]()
	for _, m := range list.Models() {
		err := c.print(c.cmd.OutOrStdout(), dc.Collector(), m, prop, "", visited)
		if err != nil {
			return err
		}
	}
	return nil
}

func (c *Tree) print(w io.Writer, col *collector.Collector, m *model.Model, prop string, gap string, visited sets.Set[string]) error {
	key := m.ModelId().Serialize()
	line := gap + key
	if c.field != "" && m.HasProperty(c.field) {
		line += fmt.Sprintf(" (%s)", cast.ToString(m.GetProperty(c.field)))
	}
	if visited.Has(key) {
		fmt.Fprintf(w, "%s <cycle>\n", line)
		return nil
	}
	visited.Insert(key)
	fmt.Fprintf(w, "%s\n", line)

	for _, cond := range col.Manager().Definition().ChildConditions(m.GetProviderName()) {
		children, err := col.CollectDirectChildrenOf(m, cond.DestinationName(), prop)
		if err != nil {
			return err
		}
		for _, ch := range children.Models() {
			err := c.print(w, col, ch, prop, gap+strings.Repeat(" ", 2), visited)
			if err != nil {
				return err
			}
		}
	}
	return nil
}
