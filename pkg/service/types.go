package service

import (
	"github.com/mandelsoft/datacontainer/pkg/model"
)

type Error struct {
	Error string `json:"error"`
}

type Items struct {
	Items []*model.Model `json:"items"`
}

// PasteRequest moves the models given by their serialized ids.
// Exactly one target must be given: After (behind an anchor),
// Into (to the front of the children of a parent) or Root (to
// the front of the root models).
type PasteRequest struct {
	Models []string `json:"models"`
	After  string   `json:"after,omitempty"`
	Into   string   `json:"into,omitempty"`
	Root   bool     `json:"root,omitempty"`
}

func (r *PasteRequest) Validate() error {
	if len(r.Models) == 0 {
		return model.InvalidArgument("no models to paste")
	}
	n := 0
	if r.After != "" {
		n++
	}
	if r.Into != "" {
		n++
	}
	if r.Root {
		n++
	}
	if n != 1 {
		return model.InvalidArgument("exactly one of after, into or root required")
	}
	return nil
}
