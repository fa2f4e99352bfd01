package filesystem

import (
	"github.com/mandelsoft/datacontainer/pkg/model"
	"github.com/mandelsoft/datacontainer/pkg/utils"
)

// Record is the persisted form of a model.
type Record struct {
	Id         string           `json:"id"`
	Provider   string           `json:"provider"`
	Modified   *utils.Timestamp `json:"modified,omitempty"`
	Properties map[string]any   `json:"properties,omitempty"`
}

func NewRecord(m *model.Model) *Record {
	return &Record{
		Id:         m.GetId(),
		Provider:   m.GetProviderName(),
		Modified:   utils.NewTimestampP(),
		Properties: m.Properties(),
	}
}

func (r *Record) Model() *model.Model {
	return model.NewWithProperties(r.Provider, r.Id, r.Properties)
}

// Hash is the content hash ignoring the modification time.
func (r *Record) Hash() string {
	return utils.HashData(map[string]any{
		"id":         r.Id,
		"provider":   r.Provider,
		"properties": r.Properties,
	})
}
