package collector_test

import (
	. "github.com/mandelsoft/datacontainer/pkg/testutils"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	me "github.com/mandelsoft/datacontainer/pkg/collector"
	"github.com/mandelsoft/datacontainer/pkg/filter"
	"github.com/mandelsoft/datacontainer/pkg/impl/provider/memory"
	"github.com/mandelsoft/datacontainer/pkg/model"
	"github.com/mandelsoft/datacontainer/pkg/provider"
	"github.com/mandelsoft/datacontainer/pkg/relationship"
)

func page(id string, pid, sorting int) *model.Model {
	return model.NewWithProperties("pages", id, map[string]any{"pid": pid, "sorting": sorting, "title": "page " + id})
}

func cat(id string, parent any, sorting int) *model.Model {
	return model.NewWithProperties("cats", id, map[string]any{"parent": parent, "sorting": sorting})
}

func article(id string, c string, sorting int) *model.Model {
	return model.NewWithProperties("articles", id, map[string]any{"cat": c, "sorting": sorting})
}

func ids(col *model.Collection) []string {
	return col.Ids()
}

var catsToArticles = relationship.NewParentChildCondition("cats", "articles",
	[]relationship.FilterRule{{Local: "cat", Remote: "id"}}, nil,
	relationship.Setter{ToField: "cat", FromField: "id"})

func catTree() *relationship.Manager {
	def := Must(relationship.NewDefinition(
		relationship.NewRootCondition("cats", filter.List{filter.Equal("parent", 0)}, relationship.RootSetter{Property: "parent", Value: 0}),
		relationship.NewParentChildCondition("cats", "cats",
			[]relationship.FilterRule{{Local: "parent", Remote: "id"}}, nil,
			relationship.Setter{ToField: "parent", FromField: "id"}),
		catsToArticles,
	))
	return relationship.NewManager(def, relationship.ModeHierarchical)
}

func pageTree() *relationship.Manager {
	def := Must(relationship.NewDefinition(
		relationship.NewRootCondition("pages", filter.List{filter.Equal("pid", 0)}, relationship.RootSetter{Property: "pid", Value: 0}),
		relationship.NewParentChildCondition("pages", "pages",
			[]relationship.FilterRule{{Local: "pid", Remote: "id"}},
			[]relationship.InverseRule{{Local: "id", Remote: "pid"}},
			relationship.Setter{ToField: "pid", FromField: "id"}),
	))
	return relationship.NewManager(def, relationship.ModeHierarchical)
}

var _ = Describe("model collector", func() {
	var env *memory.Environment

	BeforeEach(func() {
		env = memory.NewEnvironment()
		MustBeSuccessful(env.Add(
			page("1", 0, 128), page("2", 1, 128), page("3", 0, 256), page("4", 2, 128), page("5", 1, 256),
			cat("c1", 0, 128), cat("c2", 0, 256), cat("c3", "c1", 128),
			cat("x1", "x2", 128), cat("x2", "x1", 128),
			article("a1", "c3", 256), article("a2", "c2", 128), article("a3", "c3", 128),
		))
	})

	Context("get model", func() {
		var c *me.Collector

		BeforeEach(func() {
			c = me.New(env, pageTree(), "pages")
		})

		It("gets by serialized id", func() {
			m := Must(c.GetModel("pages::2"))
			Expect(m.ModelId()).To(Equal(model.NewModelId("pages", "2")))
			Expect(m.GetProperty("title")).To(Equal("page 2"))
		})

		It("gets by id and provider", func() {
			m := Must(c.GetModel("4", "pages"))
			Expect(m.GetProperty("pid")).To(Equal(2))
		})

		It("prefers serialized ids over the provider name", func() {
			m := Must(c.GetModel("pages::2", "pages"))
			Expect(m.ModelId()).To(Equal(model.NewModelId("pages", "2")))
			_, err := c.GetModel("pages::2", "news")
			Expect(err).To(MatchError(model.ErrInvalidArgument))
		})

		It("rejects invalid ids", func() {
			_, err := c.GetModel("4")
			Expect(err).To(MatchError(model.ErrInvalidArgument))
			_, err = c.GetModel("", "pages")
			Expect(err).To(MatchError(model.ErrInvalidArgument))
			_, err = c.GetModel("pages::")
			Expect(err).To(MatchError(model.ErrInvalidArgument))
		})

		It("reports missing models", func() {
			_, err := c.GetModel("pages::99")
			Expect(err).To(MatchError(provider.ErrNotExist))
		})

		It("restricts fields", func() {
			c = me.New(env, pageTree(), "pages", me.WithFields("title"))
			m := Must(c.GetModel("pages::2"))
			Expect(m.PropertyNames()).To(ConsistOf("pid", "title"))
		})
	})

	Context("direct parent search", func() {
		var c *me.Collector

		BeforeEach(func() {
			c = me.New(env, pageTree(), "pages")
			env.ResetFetches()
		})

		It("fetches the parent with a single request", func() {
			p := Must(c.SearchParentOf(page("4", 2, 128)))
			Expect(p.GetId()).To(Equal("2"))
			Expect(env.Fetches()).To(Equal(1))
		})

		It("returns nil for orphans", func() {
			Expect(c.SearchParentOf(page("9", 99, 128))).To(BeNil())
		})

		It("rejects root models", func() {
			_, err := c.SearchParentOf(page("1", 0, 128))
			Expect(err).To(MatchError(model.ErrInvalidArgument))
		})

		It("rejects non-hierarchical relationships", func() {
			c = me.New(env, relationship.NewManager(pageTree().Definition(), relationship.ModeFlat), "pages")
			_, err := c.SearchParentOf(page("4", 2, 128))
			Expect(err).To(MatchError(model.ErrInvalidArgument))
		})

		It("collects siblings", func() {
			Expect(ids(Must(c.CollectSiblingsOf(page("5", 1, 256), "sorting")))).To(Equal([]string{"2", "5"}))
			Expect(ids(Must(c.CollectSiblingsOf(page("3", 0, 256), "sorting")))).To(Equal([]string{"1", "3"}))
		})

		It("assembles parents", func() {
			Expect(ids(Must(c.AssembleParentsFor(page("4", 2, 128))))).To(Equal([]string{"2", "1"}))
			Expect(Must(c.AssembleParentsFor(page("1", 0, 128))).Len()).To(Equal(0))
		})
	})

	Context("recursive parent search", func() {
		var c *me.Collector

		BeforeEach(func() {
			c = me.New(env, catTree(), "cats")
		})

		It("finds the immediate parent across providers", func() {
			Expect(Must(c.SearchParentOf(article("a1", "c3", 0))).GetId()).To(Equal("c3"))
			Expect(Must(c.SearchParentOf(article("a2", "c2", 0))).GetId()).To(Equal("c2"))
			Expect(Must(c.SearchParentOf(cat("c3", "c1", 0))).GetId()).To(Equal("c1"))
		})

		It("returns nil for unreachable models", func() {
			Expect(c.SearchParentOf(article("a9", "cx", 0))).To(BeNil())
		})

		It("searches in the given candidates", func() {
			a1 := article("a1", "c3", 0)
			Expect(c.SearchParentOfIn(a1, model.NewCollection(cat("c2", 0, 0)))).To(BeNil())
			Expect(Must(c.SearchParentOfIn(a1, model.NewCollection(cat("c2", 0, 0), cat("c1", 0, 0)))).GetId()).To(Equal("c3"))
		})

		It("terminates on cycles", func() {
			Expect(c.SearchParentOfIn(article("a9", "cx", 0), model.NewCollection(cat("x1", "x2", 0)))).To(BeNil())
			Expect(c.AssembleAllChildrenFrom(cat("x1", "x2", 0), "cats")).To(Equal([]string{"x1", "x2"}))
		})

		It("collects siblings", func() {
			Expect(ids(Must(c.CollectSiblingsOf(article("a1", "c3", 256), "sorting")))).To(Equal([]string{"a3", "a1"}))
			Expect(ids(Must(c.CollectSiblingsOf(cat("c2", 0, 256), "sorting")))).To(Equal([]string{"c1", "c2"}))
		})

		It("reports siblings of orphans as not found", func() {
			_, err := c.CollectSiblingsOf(article("a9", "cx", 0), "")
			Expect(err).To(MatchError(provider.ErrNotExist))
		})

		It("assembles all children", func() {
			Expect(c.AssembleAllChildrenFrom(cat("c1", 0, 0), "articles")).To(ConsistOf("a1", "a3"))
			Expect(c.AssembleAllChildrenFrom(cat("c1", 0, 0), "cats")).To(Equal([]string{"c1", "c3"}))
			Expect(c.AssembleAllChildrenFrom(article("a2", "c2", 0), "articles")).To(Equal([]string{"a2"}))
		})

		It("collects children", func() {
			Expect(ids(Must(c.CollectChildrenOf(cat("c1", 0, 0))))).To(Equal([]string{"c3"}))
			Expect(ids(Must(c.CollectChildrenOf(cat("c3", "c1", 0), "articles")))).To(ConsistOf("a1", "a3"))
			Expect(ids(Must(c.CollectDirectChildrenOf(cat("c3", "c1", 0), "articles", "sorting")))).To(Equal([]string{"a3", "a1"}))
			_, err := c.CollectDirectChildrenOf(cat("c3", "c1", 0), "news", "")
			Expect(err).To(MatchError(relationship.ErrConfiguration))
		})

		It("collects roots", func() {
			Expect(ids(Must(c.CollectRoots("sorting")))).To(Equal([]string{"c1", "c2"}))
		})

		It("assembles parents", func() {
			Expect(ids(Must(c.AssembleParentsFor(article("a1", "c3", 0))))).To(Equal([]string{"c3", "c1"}))
		})
	})

	Context("lists", func() {
		It("collects all models of flat lists", func() {
			c := me.New(env, relationship.NewManager(nil, relationship.ModeFlat), "articles")
			Expect(ids(Must(c.CollectSiblingsOf(article("a1", "c3", 0), "sorting")))).To(Equal([]string{"a2", "a3", "a1"}))
			Expect(c.ParentOf(article("a1", "c3", 0))).To(BeNil())
		})

		It("collects siblings of parented lists", func() {
			mgr := relationship.NewManager(Must(relationship.NewDefinition(catsToArticles)), relationship.ModeParentedList)
			c := me.New(env, mgr, "articles", me.WithParentProvider("cats"))
			Expect(ids(Must(c.CollectSiblingsOf(article("a1", "c3", 0), "sorting")))).To(Equal([]string{"a3", "a1"}))
			Expect(Must(c.ParentOf(article("a2", "c2", 0))).GetId()).To(Equal("c2"))
		})

		It("uses inverse rules for parented lists", func() {
			cond := relationship.NewParentChildCondition("cats", "articles",
				[]relationship.FilterRule{{Local: "cat", Remote: "id"}},
				[]relationship.InverseRule{{Local: "id", Remote: "cat"}},
				relationship.Setter{ToField: "cat", FromField: "id"})
			mgr := relationship.NewManager(Must(relationship.NewDefinition(cond)), relationship.ModeParentedList)
			c := me.New(env, mgr, "articles", me.WithParentProvider("cats"))
			env.ResetFetches()
			Expect(Must(c.ParentOf(article("a1", "c3", 0))).GetId()).To(Equal("c3"))
			Expect(env.Fetches()).To(Equal(1))
		})

		It("requires a parent provider for parented lists", func() {
			mgr := relationship.NewManager(Must(relationship.NewDefinition(catsToArticles)), relationship.ModeParentedList)
			c := me.New(env, mgr, "articles")
			_, err := c.CollectSiblingsOf(article("a1", "c3", 0), "")
			Expect(err).To(MatchError(relationship.ErrConfiguration))
		})
	})
})
