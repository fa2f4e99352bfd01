package model

import (
	"fmt"
	"strings"
)

// IdSeparator separates the provider name from the
// model id in a serialized model id.
const IdSeparator = "::"

type IdSource interface {
	GetId() string
	GetProviderName() string
}

// ModelId identifies a model across all providers.
type ModelId struct {
	ProviderName string `json:"provider"`
	Id           string `json:"id"`
}

var _ IdSource = ModelId{}

func NewModelId(provider, id string) ModelId {
	return ModelId{ProviderName: provider, Id: id}
}

func NewModelIdFor(src IdSource) ModelId {
	return ModelId{ProviderName: src.GetProviderName(), Id: src.GetId()}
}

// ParseModelId parses a serialized model id of the form <provider>::<id>.
func ParseModelId(serialized string) (ModelId, error) {
	provider, id, ok := strings.Cut(serialized, IdSeparator)
	if !ok || provider == "" || id == "" {
		return ModelId{}, fmt.Errorf("%w: %q", ErrInvalidModelId, serialized)
	}
	return ModelId{ProviderName: provider, Id: id}, nil
}

// IsSerializedId checks whether the given string looks like a
// serialized model id.
func IsSerializedId(s string) bool {
	_, err := ParseModelId(s)
	return err == nil
}

func (i ModelId) GetId() string {
	return i.Id
}

func (i ModelId) GetProviderName() string {
	return i.ProviderName
}

func (i ModelId) Serialize() string {
	return i.ProviderName + IdSeparator + i.Id
}

func (i ModelId) String() string {
	return i.Serialize()
}

func EqualId(a, b IdSource) bool {
	return a.GetId() == b.GetId() && a.GetProviderName() == b.GetProviderName()
}
