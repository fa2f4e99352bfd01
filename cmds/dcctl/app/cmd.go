package app

import (
	"fmt"

	"github.com/mandelsoft/logging"
	"github.com/mandelsoft/vfs/pkg/osfs"
	"github.com/mandelsoft/vfs/pkg/vfs"
	"github.com/spf13/cobra"

	"github.com/mandelsoft/datacontainer/pkg/container"
	"github.com/mandelsoft/datacontainer/pkg/model"
	"github.com/mandelsoft/datacontainer/pkg/relationship"
	"github.com/mandelsoft/datacontainer/pkg/utils"
)

type Options struct {
	relationship string
	store        string
	storeType    string
	logLevel     string
	fs           vfs.FileSystem

	container *container.Container
}

// Container provides the data container described by the global
// options. It is created once per command execution.
func (o *Options) Container() (*container.Container, error) {
	if o.container != nil {
		return o.container, nil
	}
	spec, err := relationship.ReadSpecification(o.relationship, o.fs)
	if err != nil {
		return nil, fmt.Errorf("cannot read relationship configuration: %w", err)
	}
	store, err := container.StoreSpecification(o.storeType, o.store, o.fs)
	if err != nil {
		return nil, err
	}
	o.container, err = container.New(spec, store)
	return o.container, err
}

func (o *Options) Close() error {
	if o.container == nil {
		return nil
	}
	err := o.container.Close()
	o.container = nil
	return err
}

// GetModel resolves a model argument. Plain ids are taken from the
// root provider.
func (o *Options) GetModel(arg string) (*model.Model, error) {
	c, err := o.Container()
	if err != nil {
		return nil, err
	}
	if model.IsSerializedId(arg) {
		return c.Collector().GetModel(arg)
	}
	return c.Collector().GetModel(arg, c.Specification().RootProvider)
}

func (o *Options) configureLogging() error {
	if o.logLevel == "" {
		return nil
	}
	l, err := logging.ParseLevel(o.logLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q", o.logLevel)
	}
	logging.DefaultContext().AddRule(logging.NewConditionRule(l, logging.NewRealmPrefix("datacontainer")))
	return nil
}

func New(fss ...vfs.FileSystem) *cobra.Command {
	opts := &Options{
		fs: utils.OptionalDefaulted(vfs.FileSystem(osfs.OsFs), fss...),
	}
	cfg := GetConfig(opts.fs)

	maincmd := &cobra.Command{
		Use:   "dcctl <options> <cmd> <args>",
		Short: "manipulate a data container",
		Long: `
This command can be used to inspect and rearrange the models
of a data container. The relationships between the models are
described by a relationship configuration, the models are kept
in a filesystem or sqlite store.

Models are given by their serialized id <provider>::<id>, plain
ids refer to models of the root provider.
`,
		Run:              nil,
		TraverseChildren: true,
		SilenceUsage:     true,
		SilenceErrors:    true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.configureLogging()
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return opts.Close()
		},
	}

	flags := maincmd.PersistentFlags()

	flags.StringVarP(&opts.relationship, "config", "c", value(cfg.Relationship), "relationship configuration")
	flags.StringVarP(&opts.store, "store", "s", value(cfg.Store), "store directory or sqlite data source")
	flags.StringVarP(&opts.storeType, "store-type", "t", value(cfg.StoreType), "store type (filesystem, sqlite)")
	flags.StringVarP(&opts.logLevel, "log-level", "L", "", "log level")

	maincmd.AddCommand(NewGet(opts))
	maincmd.AddCommand(NewRelation(opts, "parent", "show the parent of a model"))
	maincmd.AddCommand(NewRelation(opts, "siblings", "show the siblings of a model"))
	maincmd.AddCommand(NewRelation(opts, "children", "show the direct children of a model"))
	maincmd.AddCommand(NewRelation(opts, "ancestors", "show the ancestors of a model"))
	maincmd.AddCommand(NewTree(opts))
	maincmd.AddCommand(NewMove(opts))
	maincmd.AddCommand(NewRenumber(opts))
	return maincmd
}

func TweakCommand(cmd *cobra.Command) {
	cmd.DisableFlagsInUseLine = true
}
