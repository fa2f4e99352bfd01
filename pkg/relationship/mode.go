package relationship

import (
	"fmt"
	"strings"
)

// Mode describes how the models of a data container are related.
type Mode string

const (
	// ModeFlat is a plain list of models of one provider.
	ModeFlat Mode = "flat"
	// ModeParentedList is a list of models belonging to
	// a parent model of another provider.
	ModeParentedList Mode = "parented"
	// ModeHierarchical is a tree of models, potentially
	// spanning multiple providers.
	ModeHierarchical Mode = "hierarchical"
)

func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(s)) {
	case ModeFlat, "":
		return ModeFlat, nil
	case ModeParentedList, "parented_list", "parentedlist":
		return ModeParentedList, nil
	case ModeHierarchical:
		return ModeHierarchical, nil
	}
	return "", fmt.Errorf("unknown mode %q", s)
}

func (m Mode) IsHierarchical() bool {
	return m == ModeHierarchical
}

func (m Mode) String() string {
	return string(m)
}
