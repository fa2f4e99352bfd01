// Package container assembles a data container from a
// relationship specification and a model store.
package container

import (
	"fmt"
	"io"

	"github.com/mandelsoft/vfs/pkg/vfs"

	"github.com/mandelsoft/datacontainer/pkg/collector"
	"github.com/mandelsoft/datacontainer/pkg/impl/provider/filesystem"
	"github.com/mandelsoft/datacontainer/pkg/impl/provider/memory"
	"github.com/mandelsoft/datacontainer/pkg/impl/provider/sqlite"
	"github.com/mandelsoft/datacontainer/pkg/model"
	"github.com/mandelsoft/datacontainer/pkg/paste"
	"github.com/mandelsoft/datacontainer/pkg/provider"
	"github.com/mandelsoft/datacontainer/pkg/relationship"
)

const (
	StoreFilesystem = "filesystem"
	StoreSqlite     = "sqlite"
	StoreMemory     = "memory"
)

// StoreSpecification returns the provider specification for a
// store type and its location (directory or data source name).
func StoreSpecification(typ, location string, fss ...vfs.FileSystem) (provider.Specification, error) {
	switch typ {
	case "", StoreFilesystem:
		if location == "" {
			location = "."
		}
		return filesystem.NewSpecification(location, fss...), nil
	case StoreSqlite:
		if location == "" {
			return nil, model.InvalidArgument("sqlite store requires a data source name")
		}
		return sqlite.NewSpecification(location), nil
	case StoreMemory:
		return memory.NewSpecification(), nil
	default:
		return nil, model.InvalidArgument("unknown store type %q", typ)
	}
}

type Container struct {
	spec      *relationship.Specification
	env       provider.Environment
	manager   *relationship.Manager
	collector *collector.Collector
	paste     *paste.Controller
}

func New(spec *relationship.Specification, store provider.Specification) (*Container, error) {
	mgr, err := spec.Manager()
	if err != nil {
		return nil, err
	}
	env, err := store.Create()
	if err != nil {
		return nil, fmt.Errorf("cannot create store: %w", err)
	}
	return NewFor(spec, mgr, env), nil
}

func NewFor(spec *relationship.Specification, mgr *relationship.Manager, env provider.Environment) *Container {
	var opts []collector.Option
	if spec.ParentProvider != "" {
		opts = append(opts, collector.WithParentProvider(spec.ParentProvider))
	}
	c := collector.New(env, mgr, spec.RootProvider, opts...)
	log.Debug("data container for {{provider}} in mode {{mode}}", "provider", spec.RootProvider, "mode", spec.Mode)
	return &Container{
		spec:      spec,
		env:       env,
		manager:   mgr,
		collector: c,
		paste:     paste.New(c, spec.SortingProperty),
	}
}

func (c *Container) Specification() *relationship.Specification {
	return c.spec
}

func (c *Container) Environment() provider.Environment {
	return c.env
}

func (c *Container) Manager() *relationship.Manager {
	return c.manager
}

func (c *Container) Collector() *collector.Collector {
	return c.collector
}

func (c *Container) Paste() *paste.Controller {
	return c.paste
}

// View returns a collector fetching only the configured fields
// together with the properties required by the relationships.
func (c *Container) View() *collector.Collector {
	if len(c.spec.Fields) == 0 {
		return c.collector
	}
	opts := []collector.Option{collector.WithFields(c.spec.Fields...)}
	if c.spec.ParentProvider != "" {
		opts = append(opts, collector.WithParentProvider(c.spec.ParentProvider))
	}
	return collector.New(c.env, c.manager, c.spec.RootProvider, opts...)
}

// Check probes the store if it supports health checks.
func (c *Container) Check() error {
	if h, ok := c.env.(interface{ Check() error }); ok {
		return h.Check()
	}
	return nil
}

func (c *Container) Close() error {
	if cl, ok := c.env.(io.Closer); ok {
		return cl.Close()
	}
	return nil
}
