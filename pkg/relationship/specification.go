package relationship

import (
	"fmt"
	"os"

	"github.com/drone/envsubst"
	"github.com/mandelsoft/vfs/pkg/vfs"
	"sigs.k8s.io/yaml"

	"github.com/mandelsoft/datacontainer/pkg/filter"
)

// Specification is the serializable description of the
// relationships of a data container.
type Specification struct {
	Mode            Mode                       `json:"mode,omitempty"`
	RootProvider    string                     `json:"rootProvider"`
	ParentProvider  string                     `json:"parentProvider,omitempty"`
	SortingProperty string                     `json:"sortingProperty,omitempty"`
	Fields          []string                   `json:"fields,omitempty"`
	RootCondition   *RootConditionSpec         `json:"rootCondition,omitempty"`
	ChildConditions []ParentChildConditionSpec `json:"childConditions,omitempty"`
}

type RootConditionSpec struct {
	Provider string       `json:"provider,omitempty"`
	Filter   filter.List  `json:"filter,omitempty"`
	Setters  []RootSetter `json:"setters,omitempty"`
}

type ParentChildConditionSpec struct {
	Source      string        `json:"source"`
	Destination string        `json:"destination"`
	Filter      []FilterRule  `json:"filter"`
	Inverse     []InverseRule `json:"inverse,omitempty"`
	Setters     []Setter      `json:"setters,omitempty"`
}

// ParseSpecification parses a YAML or JSON specification. Variables
// of the form ${NAME} are substituted before parsing, values are
// taken from the given variable maps, and finally from the
// process environment.
func ParseSpecification(data []byte, vars ...map[string]string) (*Specification, error) {
	expanded, err := envsubst.Eval(string(data), func(name string) string {
		for _, m := range vars {
			if v, ok := m[name]; ok {
				return v
			}
		}
		return os.Getenv(name)
	})
	if err != nil {
		return nil, fmt.Errorf("cannot substitute variables: %w", err)
	}

	var spec Specification
	if err := yaml.UnmarshalStrict([]byte(expanded), &spec); err != nil {
		return nil, fmt.Errorf("invalid relationship specification: %w", err)
	}
	mode, err := ParseMode(string(spec.Mode))
	if err != nil {
		return nil, err
	}
	spec.Mode = mode
	return &spec, nil
}

func ReadSpecification(path string, fs vfs.FileSystem, vars ...map[string]string) (*Specification, error) {
	data, err := vfs.ReadFile(fs, path)
	if err != nil {
		return nil, err
	}
	spec, err := ParseSpecification(data, vars...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return spec, nil
}

// Definition creates the relationship definition.
func (s *Specification) Definition() (*Definition, error) {
	var conds []Condition
	if s.RootCondition != nil {
		provider := s.RootCondition.Provider
		if provider == "" {
			provider = s.RootProvider
		}
		conds = append(conds, NewRootCondition(provider, s.RootCondition.Filter, s.RootCondition.Setters...))
	}
	for _, c := range s.ChildConditions {
		conds = append(conds, NewParentChildCondition(c.Source, c.Destination, c.Filter, c.Inverse, c.Setters...))
	}
	return NewDefinition(conds...)
}

// Manager creates a relationship manager for the specification.
func (s *Specification) Manager() (*Manager, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	def, err := s.Definition()
	if err != nil {
		return nil, err
	}
	return NewManager(def, s.Mode), nil
}

func (s *Specification) Validate() error {
	if s.RootProvider == "" {
		return ConfigurationErrorf(nil, "root provider required")
	}
	if s.Mode == ModeParentedList && s.ParentProvider == "" {
		return ConfigurationErrorf([]string{s.RootProvider}, "parent provider required for mode %s", s.Mode)
	}
	if s.Mode == ModeHierarchical && s.RootCondition == nil {
		return ConfigurationErrorf([]string{s.RootProvider}, "root condition required for mode %s", s.Mode)
	}
	return nil
}
