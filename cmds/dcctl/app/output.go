package app

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/goccy/go-json"
	"github.com/spf13/cast"
	"sigs.k8s.io/yaml"

	"github.com/mandelsoft/datacontainer/pkg/model"
	"github.com/mandelsoft/datacontainer/pkg/service"
	"github.com/mandelsoft/datacontainer/pkg/utils"
)

// Output prints a model list in the requested format. The table
// format shows the model id and the given property columns.
func Output(w io.Writer, format string, list *model.Collection, single bool, columns ...string) error {
	var elems interface{}

	if single {
		elems = list.First()
	} else {
		items := list.Models()
		if items == nil {
			items = []*model.Model{}
		}
		elems = &service.Items{Items: items}
	}

	switch strings.ToLower(strings.TrimSpace(format)) {
	case "":
		return PrintModelList(w, list, columns...)
	case "json":
		data, err := json.Marshal(elems)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\n", string(data))
	case "yaml":
		data, err := yaml.Marshal(elems)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s", string(data))
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
	return nil
}

func PrintModelList(w io.Writer, list *model.Collection, columns ...string) error {
	if list.Len() == 0 {
		fmt.Fprintf(w, "no model found\n")
		return nil
	}
	fieldList := MapFields(list, columns)
	columnList := append([]string{"ID"}, utils.TransformSlice(columns, strings.ToUpper)...)

	max := make([]int, len(columnList))
	for i, s := range columnList {
		max[i] = len(s)
	}
	for _, cols := range fieldList {
		for i, s := range cols {
			if max[i] < len(s) {
				max[i] = len(s)
			}
		}
	}

	f := formatString(max)
	printLine(w, columnList, f)
	for _, cols := range fieldList {
		printLine(w, cols, f)
	}
	return nil
}

func printLine(w io.Writer, cols []string, msg string) {
	fmt.Fprintf(w, "%s\n", strings.TrimRight(fmt.Sprintf(msg, utils.ConvertSlice[any](cols)...), " "))
}

func formatString(max []int) string {
	msg := ""
	for _, l := range max {
		msg += fmt.Sprintf("%%-%ds ", l)
	}
	return msg[:len(msg)-1]
}

func MapFields(list *model.Collection, columns []string) [][]string {
	var r [][]string
	for _, m := range list.Models() {
		l := []string{m.ModelId().Serialize()}
		for _, c := range columns {
			l = append(l, cast.ToString(m.GetProperty(c)))
		}
		r = append(r, l)
	}
	return r
}

// Columns returns the property columns shown for a model list:
// the sorting property followed by the remaining properties in
// alphabetical order.
func Columns(list *model.Collection, sortingProperty string) []string {
	var names []string
	for _, m := range list.Models() {
		for _, n := range m.PropertyNames() {
			if n != sortingProperty && !slices.Contains(names, n) {
				names = append(names, n)
			}
		}
	}
	slices.Sort(names)
	if sortingProperty != "" {
		names = append([]string{sortingProperty}, names...)
	}
	return names
}
