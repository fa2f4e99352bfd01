package filesystem

import (
	"github.com/mandelsoft/vfs/pkg/osfs"
	"github.com/mandelsoft/vfs/pkg/vfs"

	"github.com/mandelsoft/datacontainer/pkg/provider"
	"github.com/mandelsoft/datacontainer/pkg/utils"
)

type Specification struct {
	Path       string
	FileSystem vfs.FileSystem
}

var _ provider.Specification = (*Specification)(nil)

func NewSpecification(path string, fss ...vfs.FileSystem) *Specification {
	return &Specification{
		Path:       path,
		FileSystem: utils.OptionalDefaulted(osfs.New(), fss...),
	}
}

func (s *Specification) Create() (provider.Environment, error) {
	return New(s.Path, s.FileSystem)
}
