package sorting_test

import (
	. "github.com/mandelsoft/datacontainer/pkg/testutils"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/mandelsoft/datacontainer/pkg/model"
	me "github.com/mandelsoft/datacontainer/pkg/sorting"
)

var _ = Describe("renumber", func() {
	It("spaces keys", func() {
		sibs := model.NewCollection(item("a", 7), item("b", 3), item("c", 3), item("d", 256))
		r := Must(me.Renumber(sibs, SORTING, 0))
		Expect(ids(r)).To(Equal([]string{"b", "c", "a", "d"}))
		Expect(keys(r)).To(Equal(map[string]int64{"b": 128, "c": 256, "a": 384, "d": 512}))
		Expect(keys(sibs)["a"]).To(Equal(int64(7)))
	})

	It("returns changed models only", func() {
		sibs := model.NewCollection(item("a", 10), item("b", 20), item("c", 35))
		r := Must(me.Renumber(sibs, SORTING, 10))
		Expect(keys(r)).To(Equal(map[string]int64{"c": 30}))
	})

	It("sets missing keys", func() {
		sibs := model.NewCollection(model.New("pages", "a"), item("b", 128))
		Expect(keys(Must(me.Renumber(sibs, SORTING, 128)))).To(Equal(map[string]int64{"a": 128, "b": 256}))
	})

	It("rejects non numeric keys", func() {
		sibs := model.NewCollection(model.NewWithProperties("pages", "a", map[string]any{SORTING: "x"}))
		_, err := me.Renumber(sibs, SORTING, 128)
		Expect(err).To(HaveOccurred())
	})
})
