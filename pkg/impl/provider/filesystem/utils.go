package filesystem

import (
	"fmt"
	"regexp"

	"github.com/mandelsoft/datacontainer/pkg/model"
)

var nameExp = regexp.MustCompile("^[a-zA-Z0-9][a-zA-Z0-9_-]*$")

// CheckName checks whether a provider name or model id
// can be used as file name.
func CheckName(n string) bool {
	return nameExp.MatchString(n)
}

func Path(id model.IdSource) string {
	return fmt.Sprintf("%s/%s.yaml", id.GetProviderName(), id.GetId())
}
