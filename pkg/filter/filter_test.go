package filter_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/mandelsoft/datacontainer/pkg/filter"
	"github.com/mandelsoft/datacontainer/pkg/model"
)

var _ = Describe("filter", func() {
	m := model.NewWithProperties("pages", "5", map[string]any{
		"pid":     "1",
		"sorting": float64(256),
		"title":   "Home page",
	})

	Context("comparisons", func() {
		It("compares numbers loosely", func() {
			Expect(filter.Equal("pid", 1).Match(m)).To(BeTrue())
			Expect(filter.Equal("pid", "1").Match(m)).To(BeTrue())
			Expect(filter.Equal("id", 5).Match(m)).To(BeTrue())
			Expect(filter.Greater("sorting", 128).Match(m)).To(BeTrue())
			Expect(filter.Less("sorting", 128).Match(m)).To(BeFalse())
		})

		It("compares strings", func() {
			Expect(filter.Equal("title", "Home page").Match(m)).To(BeTrue())
			Expect(filter.Less("title", "Z").Match(m)).To(BeTrue())
		})

		It("handles unset properties", func() {
			Expect(filter.Equal("missing", nil).Match(m)).To(BeTrue())
			Expect(filter.Equal("missing", 0).Match(m)).To(BeFalse())
		})
	})

	Context("composites", func() {
		It("evaluates IN", func() {
			Expect(filter.In("pid", 0, 1).Match(m)).To(BeTrue())
			Expect(filter.In("pid", 2, 3).Match(m)).To(BeFalse())
		})

		It("evaluates LIKE", func() {
			Expect(filter.Like("title", "Home*").Match(m)).To(BeTrue())
			Expect(filter.Like("title", "H?me page").Match(m)).To(BeTrue())
			Expect(filter.Like("title", "home*").Match(m)).To(BeFalse())
			Expect(filter.Like("title", "Home.page").Match(m)).To(BeFalse())
		})

		It("evaluates AND and OR", func() {
			Expect(filter.Match(m, filter.Equal("pid", 1), filter.Equal("id", "5"))).To(BeTrue())
			Expect(filter.Match(m, filter.Equal("pid", 1), filter.Equal("id", "6"))).To(BeFalse())
			Expect(filter.Or(filter.Equal("pid", 2), filter.Equal("id", "5")).Match(m)).To(BeTrue())
			Expect(filter.And(filter.Equal("pid", 2), filter.Equal("id", "5")).Match(m)).To(BeFalse())
			Expect(filter.Match(m)).To(BeTrue())
		})
	})

	Context("validation", func() {
		It("rejects incomplete filters", func() {
			Expect(filter.Equal("", 1).Validate()).To(HaveOccurred())
			Expect(filter.Filter{Operation: "~"}.Validate()).To(HaveOccurred())
			Expect(filter.And(filter.Like("a", "x*"), filter.In("b")).Validate()).To(Succeed())
			Expect(filter.List{filter.Equal("a", 1), filter.Filter{Operation: filter.OpLike, Property: "b", Value: 1}}.Validate()).To(HaveOccurred())
		})
	})
})
