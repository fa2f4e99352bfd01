package relationship_test

import (
	. "github.com/mandelsoft/datacontainer/pkg/testutils"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/mandelsoft/datacontainer/pkg/filter"
	"github.com/mandelsoft/datacontainer/pkg/model"
	me "github.com/mandelsoft/datacontainer/pkg/relationship"
)

func root() *me.RootCondition {
	return me.NewRootCondition("pages", filter.List{filter.Equal("pid", 0)}, me.RootSetter{Property: "pid", Value: 0})
}

func pagesToPages() *me.ParentChildCondition {
	return me.NewParentChildCondition("pages", "pages",
		[]me.FilterRule{{Local: "pid", Remote: "id"}},
		[]me.InverseRule{{Local: "id", Remote: "pid"}},
		me.Setter{ToField: "pid", FromField: "id"},
	)
}

func pagesToNews() *me.ParentChildCondition {
	return me.NewParentChildCondition("pages", "news",
		[]me.FilterRule{{Local: "page", Remote: "id"}, {Local: "published", RemoteValue: true}},
		nil,
		me.Setter{ToField: "page", FromField: "id"},
		me.Setter{ToField: "published", Value: true},
	)
}

func page(id string, pid any) *model.Model {
	return model.NewWithProperties("pages", id, map[string]any{"pid": pid})
}

var _ = Describe("relationship manager", func() {
	var def *me.Definition

	BeforeEach(func() {
		def = Must(me.NewDefinition(root(), pagesToPages(), pagesToNews()))
	})

	Context("definition", func() {
		It("looks up conditions", func() {
			Expect(def.RootCondition()).NotTo(BeNil())
			Expect(def.ChildConditions("pages")).To(HaveLen(2))
			Expect(def.ChildConditions("news")).To(BeEmpty())
			Expect(def.ParentConditions("news")).To(HaveLen(1))
			Expect(def.ChildCondition("pages", "news").DestinationName()).To(Equal("news"))
			Expect(def.ChildCondition("news", "pages")).To(BeNil())
			Expect(def.ProviderNames()).To(Equal([]string{"pages", "news"}))
			Expect(def.Conditions()).To(HaveLen(3))
		})

		It("rejects duplicates", func() {
			Expect(def.Add(root())).To(MatchError(me.ErrConfiguration))
			Expect(def.Add(pagesToNews())).To(MatchError(me.ErrConfiguration))
		})

		It("rejects invalid conditions", func() {
			_, err := me.NewDefinition(me.NewParentChildCondition("pages", "news", nil, nil))
			Expect(err).To(MatchError(me.ErrConfiguration))
			_, err = me.NewDefinition(me.NewParentChildCondition("pages", "news", []me.FilterRule{{Local: "x", Operation: "~"}}, nil))
			Expect(err).To(MatchError(me.ErrConfiguration))
		})
	})

	Context("roots", func() {
		It("ignores root conditions outside of hierarchical mode", func() {
			mgr := me.NewManager(Must(me.NewDefinition()), me.ModeFlat)
			m := page("1", 5)
			Expect(mgr.IsRoot(m)).To(BeFalse())
			MustBeSuccessful(mgr.SetRoot(m))
			MustBeSuccessful(mgr.SetAllRoot(model.NewCollection(m)))
			Expect(m.GetProperty("pid")).To(Equal(5))
		})

		It("requires a root condition in hierarchical mode", func() {
			mgr := me.NewManager(Must(me.NewDefinition(pagesToPages())), me.ModeHierarchical)
			_, err := mgr.IsRoot(page("1", 0))
			Expect(err).To(MatchError(me.ErrConfiguration))
			Expect(mgr.SetRoot(page("1", 0))).To(MatchError(me.ErrConfiguration))
		})

		It("matches and applies the root condition", func() {
			mgr := me.NewManager(def, me.ModeHierarchical)
			m := page("2", 1)
			Expect(mgr.IsRoot(m)).To(BeFalse())
			MustBeSuccessful(mgr.SetRoot(m))
			Expect(mgr.IsRoot(m)).To(BeTrue())
			Expect(mgr.IsRoot(page("3", "0"))).To(BeTrue())
			Expect(mgr.IsRoot(model.NewWithProperties("news", "1", map[string]any{"pid": 0}))).To(BeFalse())
		})

		It("fails fast on bulk operations", func() {
			mgr := me.NewManager(def, me.ModeHierarchical)
			a, b, c := page("a", 1), model.New("news", "b"), page("c", 1)
			err := mgr.SetAllRoot(model.NewCollection(a, b, c))
			Expect(err).To(MatchError(model.ErrInvalidArgument))
			Expect(a.GetProperty("pid")).To(Equal(0))
			Expect(c.GetProperty("pid")).To(Equal(1))
		})
	})

	Context("parents", func() {
		var mgr *me.Manager

		BeforeEach(func() {
			mgr = me.NewManager(def, me.ModeHierarchical)
		})

		It("sets the parent", func() {
			child := page("2", 0)
			MustBeSuccessful(mgr.SetParent(child, page("7", 0)))
			Expect(child.GetProperty("pid")).To(Equal("7"))
			Expect(mgr.IsChildOf(page("7", 0), child)).To(BeTrue())

			news := model.New("news", "n1")
			MustBeSuccessful(mgr.SetParentForAll(model.NewCollection(news), page("7", 0)))
			Expect(news.Properties()).To(Equal(map[string]any{"page": "7", "published": true}))
			Expect(mgr.IsChildOf(page("7", 0), news)).To(BeTrue())
			Expect(mgr.IsChildOf(page("8", 0), news)).To(BeFalse())
		})

		It("reports missing conditions", func() {
			err := mgr.SetParent(page("1", 0), model.New("news", "n1"))
			Expect(err).To(MatchError(me.ErrConfiguration))
			var cerr *me.ConfigurationError
			Expect(err).To(BeAssignableToTypeOf(cerr))
			Expect(err.(*me.ConfigurationError).Providers).To(Equal([]string{"news", "pages"}))

			err = mgr.SetSameParent(page("1", 0), page("2", 0), "news")
			Expect(err).To(MatchError(me.ErrConfiguration))
		})

		It("copies the parent", func() {
			src := model.NewWithProperties("news", "n1", map[string]any{"page": "3", "published": true, "headline": "x"})
			a := model.NewWithProperties("news", "n2", map[string]any{"page": "4", "headline": "y"})
			b := model.NewWithProperties("news", "n3", map[string]any{"page": "5"})
			MustBeSuccessful(mgr.SetSameParentForAll(model.NewCollection(a, b), src, "pages"))
			Expect(a.Properties()).To(Equal(map[string]any{"page": "3", "published": true, "headline": "y"}))
			Expect(b.GetProperty("page")).To(Equal("3"))
		})
	})

	Context("conditions", func() {
		It("builds filters", func() {
			c := pagesToPages()
			Expect(c.GetFilter(page("4", 1))).To(Equal(filter.List{filter.Equal("pid", "4")}))
			Expect(c.GetInverseFilter(page("4", 1))).To(Equal(filter.List{filter.Equal("id", 1)}))
			Expect(c.IsSelfReferencing()).To(BeTrue())
			Expect(pagesToNews().InverseFilterArray()).To(BeEmpty())
		})

		It("requires setters", func() {
			c := me.NewParentChildCondition("pages", "news", []me.FilterRule{{Local: "page", Remote: "id"}}, nil)
			Expect(c.ApplyTo(page("1", 0), model.New("news", "n"))).To(MatchError(me.ErrConfiguration))
			r := me.NewRootCondition("pages", nil)
			Expect(r.ApplyTo(page("1", 0))).To(MatchError(me.ErrConfiguration))
		})
	})
})
